package main

import (
	"fmt"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nrunner/nrunner/assets"
	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/levels"
	"github.com/nrunner/nrunner/obj"
	"github.com/nrunner/nrunner/phys"
	"github.com/nrunner/nrunner/results"
)

// LevelParams selects a level and its match rules.
type LevelParams struct {
	ID        string
	File      string
	Wrap      bool
	TimeLimit float64 // seconds; 0 means untimed
	MusicPath string
}

// LevelScene runs one level: physics, characters, hazards, the goal, and the
// winner/timer HUD. The world renders to an offscreen image at level size and
// scales up to the screen.
type LevelScene struct {
	game   *Game
	params LevelParams

	world  *phys.World
	filter *phys.OneWayFilter
	level  *levels.Level

	inputs     []*obj.Input
	characters []*obj.Character
	platforms  []*obj.Platform
	bombs      []*obj.Bomb
	goal       *obj.Goal
	wallRects  []levels.Rect
	particles  *ParticleSystem

	renderer *ebiten.Image

	elapsed     float64
	winnerTimes map[int]float64 // seconds each winner banner has been shown
	completed   map[int]float64 // player -> completion time

	music       *audio.Player
	tick        *audio.Player
	tickPlaying bool

	debug bool
}

func NewLevelScene(game *Game, params LevelParams) *LevelScene {
	cfg := game.cfg

	s := &LevelScene{
		game:        game,
		params:      params,
		world:       phys.NewWorld(cfg.Physics.Gravity),
		filter:      phys.NewOneWayFilter(),
		particles:   NewParticleSystem(),
		winnerTimes: make(map[int]float64),
		completed:   make(map[int]float64),
		music:       assets.MusicPlayer(params.MusicPath),
		tick:        assets.SoundPlayer("sounds/tick.mp3"),
	}
	s.world.InstallFilter(s.filter)

	lvl, err := levels.Load(params.File)
	if err != nil {
		log.Printf("level %s: %v", params.ID, err)
		return s
	}
	s.level = lvl

	s.wallRects = lvl.WallRects()
	for _, r := range s.wallRects {
		wall := s.world.CreateStaticBody(r.Pos, r.Size)
		wall.SetTag(phys.TagWall)
	}

	for _, e := range lvl.EntitiesByName(levels.EntityPlatform) {
		r := lvl.EntityRect(e)
		s.platforms = append(s.platforms, obj.NewPlatform(s.world, r.Pos, r.Size))
	}

	if goals := lvl.EntitiesByName(levels.EntityGoal); len(goals) > 0 {
		r := lvl.EntityRect(goals[0])
		s.goal = obj.NewGoal(s.world, r.Pos, r.Size)
	} else {
		log.Printf("level %s: no goal marker, level cannot be won", params.ID)
	}

	for _, e := range lvl.EntitiesByName(levels.EntityBomb) {
		r := lvl.EntityRect(e)
		s.bombs = append(s.bombs, obj.NewBomb(s.world, r.Pos, r.Size))
	}

	starts := lvl.EntitiesByName(levels.EntityStart)
	if len(starts) > cfg.Match.MaxPlayers {
		starts = starts[:cfg.Match.MaxPlayers]
	}
	for i, e := range starts {
		input := obj.NewInput(i)
		s.inputs = append(s.inputs, input)

		c := obj.NewCharacter(s.world, s.filter, input, obj.CharacterParams{
			Player:   i,
			Spawn:    lvl.ConvertToPixels(common.V(float64(e.X), float64(e.Y))),
			Size:     common.V(cfg.Character.Width, cfg.Character.Height),
			Density:  cfg.Character.Density,
			Friction: cfg.Character.Friction,
			Movement: phys.MovementParams{
				MaxSpeed:     cfg.Movement.MaxSpeed,
				Accel:        cfg.Movement.Accel,
				JumpSpeed:    cfg.Movement.JumpSpeed,
				JumpCutSpeed: cfg.Movement.JumpCutSpeed,
				ProbeDepth:   cfg.Movement.ProbeDepth,
			},
			FallThroughSeconds: cfg.Movement.FallThroughSeconds,
			AttackWindow:       cfg.Combat.WindowSeconds,
			AttackRadius:       cfg.Combat.Radius,
			AttackReach:        cfg.Combat.Reach,
			KnockbackX:         cfg.Combat.KnockbackX,
			KnockbackY:         cfg.Combat.KnockbackY,
			LevelSize:          lvl.Size(),
			RespawnMargin:      cfg.Match.RespawnMargin,
			Wrap:               params.Wrap,
			SkinDir:            cfg.Skin(i).Dir,
		})
		c.OnWin = s.addWinner
		c.OnBombHit = s.particles.SpawnBurst
		s.characters = append(s.characters, c)
	}

	if s.music != nil {
		s.music.Play()
	}
	return s
}

// addWinner records a finish time once per player and starts the banner.
func (s *LevelScene) addWinner(player int) {
	if _, ok := s.completed[player]; ok {
		return
	}
	s.completed[player] = s.elapsed
	s.winnerTimes[player] = 0
	s.game.results.Set(s.params.ID, player, s.elapsed)
}

func (s *LevelScene) Update(dt float64) error {
	s.elapsed += dt

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		s.debug = !s.debug
	}

	s.updateAudio()

	for _, in := range s.inputs {
		in.Update()
	}
	for _, c := range s.characters {
		c.Update(dt)
	}
	s.particles.Update(dt)
	s.world.Step(dt)

	for p := range s.winnerTimes {
		s.winnerTimes[p] += dt
		if s.winnerTimes[p] > s.game.cfg.Match.WinnerDisplaySeconds {
			delete(s.winnerTimes, p)
		}
	}

	if s.timedOut() {
		for _, c := range s.characters {
			if _, ok := s.completed[c.Player()]; !ok {
				s.game.results.Set(s.params.ID, c.Player(), results.DNF)
			}
		}
		s.game.NextScene()
		return nil
	}

	if s.allFinished() && len(s.winnerTimes) == 0 {
		s.game.NextScene()
		return nil
	}

	for _, in := range s.inputs {
		if in.StartPressed {
			s.game.NextScene()
			break
		}
	}
	return nil
}

func (s *LevelScene) timedOut() bool {
	return s.params.TimeLimit > 0 && s.elapsed >= s.params.TimeLimit
}

func (s *LevelScene) allFinished() bool {
	return len(s.characters) > 0 && len(s.completed) == len(s.characters)
}

// updateAudio swaps the level music for the clock tick when the timer runs
// low.
func (s *LevelScene) updateAudio() {
	if s.params.TimeLimit <= 0 {
		return
	}
	remaining := s.params.TimeLimit - s.elapsed
	lowTime := remaining <= s.game.cfg.Match.LowTimeSeconds && remaining > 0

	if lowTime {
		if s.music != nil && s.music.IsPlaying() {
			s.music.Pause()
		}
		if s.tick != nil && !s.tick.IsPlaying() {
			_ = s.tick.Rewind()
			s.tick.Play()
			s.tickPlaying = true
		}
	} else if s.tickPlaying {
		if s.tick != nil {
			s.tick.Pause()
		}
		s.tickPlaying = false
	}
}

func (s *LevelScene) Draw(screen *ebiten.Image) {
	if s.level == nil {
		screen.Fill(color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff})
		drawTextCentered(screen, "level failed to load", 32, 300, 2, colorWhite, colorBlack)
		return
	}
	// The offscreen target is created on first draw so the scene itself can
	// run headless.
	if s.renderer == nil {
		s.renderer = ebiten.NewImage(int(s.level.Size().X), int(s.level.Size().Y))
	}

	s.renderer.Fill(color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff})

	for _, r := range s.wallRects {
		vector.DrawFilledRect(s.renderer,
			float32(r.Pos.X-r.Size.X/2), float32(r.Pos.Y-r.Size.Y/2),
			float32(r.Size.X), float32(r.Size.Y),
			color.RGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff}, false)
	}
	for _, p := range s.platforms {
		p.Draw(s.renderer)
	}
	for _, b := range s.bombs {
		b.Draw(s.renderer)
	}
	if s.goal != nil {
		s.goal.Draw(s.renderer)
	}
	for _, c := range s.characters {
		c.Draw(s.renderer)
	}
	s.particles.Draw(s.renderer)

	if s.debug {
		s.world.DebugDraw(s.renderer)
	}

	op := &ebiten.DrawImageOptions{}
	size := s.level.Size()
	op.GeoM.Scale(float64(screen.Bounds().Dx())/size.X, float64(screen.Bounds().Dy())/size.Y)
	screen.DrawImage(s.renderer, op)

	s.drawHUD(screen)
}

func (s *LevelScene) drawHUD(screen *ebiten.Image) {
	winners := make([]int, 0, len(s.winnerTimes))
	for p := range s.winnerTimes {
		winners = append(winners, p)
	}
	sort.Ints(winners)

	y := 50.0
	for _, p := range winners {
		msg := fmt.Sprintf("Player %d Won!", p+1)
		drawTextCentered(screen, msg, 96, y, 3, obj.PlayerColor(p), colorBlack)
		y += 110
	}

	if s.params.TimeLimit > 0 {
		remaining := s.params.TimeLimit - s.elapsed
		if remaining < 0 {
			remaining = 0
		}
		timerColor := colorWhite
		if remaining < s.game.cfg.Match.LowTimeSeconds {
			timerColor = color.RGBA{R: 0xe6, G: 0x29, B: 0x37, A: 0xff}
		}
		msg := fmt.Sprintf("Time: %d:%02d", int(remaining)/60, int(remaining)%60)
		drawTextCentered(screen, msg, 64, 20, 2, timerColor, colorBlack)
	}
}

func (s *LevelScene) Dispose() {
	if s.music != nil {
		s.music.Pause()
	}
	if s.tick != nil {
		s.tick.Pause()
	}
}
