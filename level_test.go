package main

import (
	"testing"

	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/config"
	"github.com/nrunner/nrunner/results"
)

func testGame(t *testing.T) *Game {
	t.Helper()
	cfg, err := config.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	return &Game{cfg: cfg, results: results.NewStore(), pending: -1}
}

func TestLevelSceneBuildsFromLevelData(t *testing.T) {
	g := testGame(t)
	s := NewLevelScene(g, LevelParams{ID: "ngame", File: "ngame.json"})

	if s.level == nil {
		t.Fatalf("level should load")
	}
	if len(s.characters) != 4 {
		t.Fatalf("want 4 characters, got %d", len(s.characters))
	}
	if s.goal == nil {
		t.Fatalf("goal marker should build a goal")
	}
	if len(s.platforms) == 0 {
		t.Fatalf("platform markers should build platforms")
	}
	if len(s.bombs) != 0 {
		t.Fatalf("the arena level has no bombs, got %d", len(s.bombs))
	}
}

func TestLevelSceneRaceVariantHasBombs(t *testing.T) {
	g := testGame(t)
	s := NewLevelScene(g, LevelParams{ID: "ngame3", File: "ngame3.json", Wrap: true})

	if len(s.bombs) == 0 {
		t.Fatalf("the race level should have bombs")
	}
}

func TestLevelSceneMissingFileIsTolerated(t *testing.T) {
	g := testGame(t)
	s := NewLevelScene(g, LevelParams{ID: "broken", File: "nope.json"})

	if s.level != nil {
		t.Fatalf("missing level file should leave the scene empty")
	}
	// The empty scene still updates without panicking.
	if err := s.Update(common.FrameSeconds); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestWinnerRecordsCompletionTime(t *testing.T) {
	g := testGame(t)
	s := NewLevelScene(g, LevelParams{ID: "ngame", File: "ngame.json"})

	s.elapsed = 42.5
	s.addWinner(1)

	if got := g.results.Time("ngame", 1); got != 42.5 {
		t.Fatalf("completion time = %v, want 42.5", got)
	}

	// A second goal touch must not overwrite the first time.
	s.elapsed = 60
	s.addWinner(1)
	if got := g.results.Time("ngame", 1); got != 42.5 {
		t.Fatalf("first completion time should stand, got %v", got)
	}
}

func TestTimeoutAssignsDNF(t *testing.T) {
	g := testGame(t)
	s := NewLevelScene(g, LevelParams{ID: "ngame3", File: "ngame3.json", Wrap: true, TimeLimit: 0.1})

	// One player finished before the limit.
	s.elapsed = 0.05
	s.addWinner(0)

	for i := 0; i < 20 && g.pending < 0; i++ {
		if err := s.Update(common.FrameSeconds); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if g.pending < 0 {
		t.Fatalf("scene should queue a transition after the time limit")
	}

	if got := g.results.Time("ngame3", 0); got != 0.05 {
		t.Fatalf("finisher time = %v, want 0.05", got)
	}
	for p := 1; p < 4; p++ {
		if got := g.results.Time("ngame3", p); got != results.DNF {
			t.Fatalf("player %d should be DNF, got %v", p, got)
		}
	}
}

func TestAllFinishedAdvancesAfterBanners(t *testing.T) {
	g := testGame(t)
	s := NewLevelScene(g, LevelParams{ID: "ngame3", File: "ngame3.json", Wrap: true, TimeLimit: 120})

	for _, c := range s.characters {
		s.addWinner(c.Player())
	}
	if g.pending >= 0 {
		t.Fatalf("no transition should be queued before banners expire")
	}

	// Banners show for the configured display window, then the scene moves
	// on.
	steps := int(g.cfg.Match.WinnerDisplaySeconds/common.FrameSeconds) + 10
	for i := 0; i < steps && g.pending < 0; i++ {
		if err := s.Update(common.FrameSeconds); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if g.pending < 0 {
		t.Fatalf("scene should advance once every player finished and banners cleared")
	}
}

func TestGameAppliesTransitionAfterUpdate(t *testing.T) {
	g := testGame(t)
	level := NewLevelScene(g, LevelParams{ID: "ngame", File: "ngame.json"})
	g.current = level
	g.index = sceneNGame

	g.NextScene()
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if g.index != sceneNGame3 {
		t.Fatalf("index = %d, want %d", g.index, sceneNGame3)
	}
	if g.current == Scene(level) {
		t.Fatalf("scene should be rebuilt on transition")
	}
	if g.pending != -1 {
		t.Fatalf("pending should clear after the transition, got %d", g.pending)
	}
}

func TestGameLoopsBackToTitle(t *testing.T) {
	g := testGame(t)
	g.index = sceneLeaderboard
	g.NextScene()
	if g.pending != sceneTitle {
		t.Fatalf("leaderboard should loop back to the title, got %d", g.pending)
	}
}
