package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/config"
	"github.com/nrunner/nrunner/results"
)

// Scene is one screen of the game. Scenes are rebuilt from scratch on every
// transition.
type Scene interface {
	Update(dt float64) error
	Draw(screen *ebiten.Image)
}

// Disposer is implemented by scenes that hold resources to release on exit,
// such as playing music.
type Disposer interface {
	Dispose()
}

// Scene order: title, the two levels, then the leaderboard, looping back to
// the title.
const (
	sceneTitle = iota
	sceneNGame
	sceneNGame3
	sceneLeaderboard
	sceneCount
)

type Game struct {
	cfg     *config.Config
	watcher *config.Watcher
	results *results.Store

	current Scene
	index   int
	pending int // next scene index, -1 when no transition is queued
}

func NewGame(cfg *config.Config, watcher *config.Watcher) *Game {
	g := &Game{
		cfg:     cfg,
		watcher: watcher,
		results: results.NewStore(),
		pending: -1,
	}
	g.current = g.buildScene(sceneTitle)
	return g
}

// NextScene queues a transition to the following scene. Applied after the
// current update finishes so a scene never updates after queuing its exit.
func (g *Game) NextScene() {
	g.pending = (g.index + 1) % sceneCount
}

// GoToScene queues a transition to a specific scene.
func (g *Game) GoToScene(index int) {
	if index < 0 || index >= sceneCount {
		index = sceneTitle
	}
	g.pending = index
}

func (g *Game) buildScene(index int) Scene {
	switch index {
	case sceneNGame:
		return NewLevelScene(g, LevelParams{
			ID:        "ngame",
			File:      "ngame.json",
			MusicPath: "sounds/level1.mp3",
		})
	case sceneNGame3:
		return NewLevelScene(g, LevelParams{
			ID:        "ngame3",
			File:      "ngame3.json",
			Wrap:      true,
			TimeLimit: g.cfg.Match.TimeLimitSeconds,
			MusicPath: "sounds/level3.mp3",
		})
	case sceneLeaderboard:
		return NewLeaderboardScene(g)
	default:
		return NewTitleScene(g)
	}
}

func (g *Game) Update() error {
	g.drainConfig()

	if err := g.current.Update(common.FrameSeconds); err != nil {
		return err
	}

	if g.pending >= 0 {
		if d, ok := g.current.(Disposer); ok {
			d.Dispose()
		}
		g.index = g.pending
		g.pending = -1
		g.current = g.buildScene(g.index)
	}
	return nil
}

// drainConfig picks up hot-reloaded tuning. The new values take effect when
// the next scene is built.
func (g *Game) drainConfig() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.watcher.Configs:
			if !ok {
				g.watcher = nil
				return
			}
			g.cfg = cfg
			log.Printf("config reloaded")
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("config reload failed: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
