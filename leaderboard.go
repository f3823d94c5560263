package main

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nrunner/nrunner/assets"
	"github.com/nrunner/nrunner/obj"
	"github.com/nrunner/nrunner/results"
)

// leaderboardLevels is the race order used to aggregate totals.
var leaderboardLevels = []string{"ngame", "ngame3"}

// playerResult is one leaderboard row. Total is DNF when any level went
// unfinished.
type playerResult struct {
	Player int
	Times  []float64 // per level, same order as leaderboardLevels
	Total  float64
}

// buildResults aggregates the store into sorted rows: finishers by ascending
// total time, then everyone who did not finish.
func buildResults(store *results.Store) []playerResult {
	var rows []playerResult
	for _, p := range store.Players() {
		row := playerResult{Player: p, Total: 0}
		for _, lvl := range leaderboardLevels {
			t := store.Time(lvl, p)
			row.Times = append(row.Times, t)
			if t < 0 {
				row.Total = results.DNF
			} else if row.Total >= 0 {
				row.Total += t
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Total, rows[j].Total
		if a < 0 {
			return false
		}
		if b < 0 {
			return true
		}
		return a < b
	})
	return rows
}

// formatTime renders seconds as M:SS.ss, or DNF for negative values.
func formatTime(seconds float64) string {
	if seconds < 0 {
		return "DNF"
	}
	minutes := int(seconds) / 60
	return fmt.Sprintf("%d:%05.2f", minutes, seconds-float64(minutes*60))
}

func rankLabel(i int) string {
	switch i {
	case 0:
		return "1st"
	case 1:
		return "2nd"
	case 2:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", i+1)
	}
}

// LeaderboardScene shows the final standings across both levels.
type LeaderboardScene struct {
	game *Game
	rows []playerResult

	input      *obj.Input
	background *ebiten.Image
	music      *audio.Player
}

func NewLeaderboardScene(game *Game) *LeaderboardScene {
	s := &LeaderboardScene{
		game:       game,
		rows:       buildResults(game.results),
		input:      obj.NewInput(0),
		background: assets.Image("startscreen.png"),
		music:      assets.MusicPlayer("sounds/end.mp3"),
	}
	if s.music != nil {
		s.music.Play()
	}
	return s
}

func (s *LeaderboardScene) Update(dt float64) error {
	s.input.Update()
	if s.input.StartPressed {
		s.game.results.Clear()
		s.game.GoToScene(sceneTitle)
	}
	return nil
}

func (s *LeaderboardScene) Draw(screen *ebiten.Image) {
	if s.background != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(
			float64(screen.Bounds().Dx())/float64(s.background.Bounds().Dx()),
			float64(screen.Bounds().Dy())/float64(s.background.Bounds().Dy()),
		)
		screen.DrawImage(s.background, op)
	} else {
		screen.Fill(color.RGBA{R: 0x32, G: 0x96, B: 0x32, A: 0xff})
	}
	dimScreen(screen)

	drawTextCentered(screen, "Final Results", 96, 50, 4, colorTitle, colorBlack)

	y := 220.0
	for i, row := range s.rows {
		line := fmt.Sprintf("%s - Player %d: %s", rankLabel(i), row.Player+1, formatTime(row.Total))
		drawTextCentered(screen, line, 56, y, 2, obj.PlayerColor(row.Player), colorBlack)

		breakdown := ""
		for li, t := range row.Times {
			if li > 0 {
				breakdown += " | "
			}
			breakdown += fmt.Sprintf("L%d: %s", li+1, formatTime(t))
		}
		drawTextCentered(screen, breakdown, 32, y+64, 1,
			color.RGBA{R: 0xc8, G: 0xc8, B: 0xc8, A: 0xff}, colorBlack)

		y += 120
	}

	drawTextCentered(screen, "Thank you for playing!", 40,
		float64(screen.Bounds().Dy())-80, 2, colorWhite, colorBlack)
}

func dimScreen(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0,
		float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy()),
		color.RGBA{A: 150}, false)
}

func (s *LeaderboardScene) Dispose() {
	if s.music != nil {
		s.music.Pause()
	}
}
