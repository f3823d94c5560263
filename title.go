package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/nrunner/nrunner/assets"
	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/obj"
)

// TitleScene shows the game name and waits for any player to start.
type TitleScene struct {
	game  *Game
	ui    *ebitenui.UI
	input *obj.Input

	background *ebiten.Image
	music      *audio.Player
}

func NewTitleScene(game *Game) *TitleScene {
	s := &TitleScene{
		game:       game,
		input:      obj.NewInput(0),
		background: assets.Image("startscreen.png"),
		music:      assets.MusicPlayer("sounds/title.mp3"),
	}
	s.ui = s.buildUI()

	if s.music != nil {
		s.music.Play()
	}
	return s
}

// buildUI makes a small centered start button under the title text.
func (s *TitleScene) buildUI() *ebitenui.UI {
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x14, G: 0x32, B: 0x14, A: 0xc8})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x28, G: 0x50, B: 0x28, A: 0xc8})
	face := assets.Font(28)
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	startBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnHover}),
		widget.ButtonOpts.Text("Start Game", &face, btnTextColor),
		widget.ButtonOpts.TextPadding(&widget.Insets{Top: 10, Bottom: 10, Left: 30, Right: 30}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionEnd,
			StretchVertical:    false,
		})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.game.NextScene()
		}),
	)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Bottom: 60}),
		)),
	)
	root.AddChild(startBtn)

	return &ebitenui.UI{Container: root}
}

func (s *TitleScene) Update(dt float64) error {
	s.ui.Update()

	s.input.Update()
	if s.input.StartPressed {
		s.game.NextScene()
	}
	return nil
}

func (s *TitleScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen)

	title := "N Game Runner"
	w, h := text.Measure(title, assets.Font(96), 0)
	x := (float64(screen.Bounds().Dx()) - w) / 2
	y := (float64(screen.Bounds().Dy())-h)/2 - 100
	drawTextOutlined(screen, title, 96, x, y, 4, colorTitle, colorOutline)

	subtitle := "Press Start or Enter to Start the Game"
	drawTextCentered(screen, subtitle, 36, float64(common.BaseHeight)/2+100, 2, colorWhite, colorOutline)

	s.ui.Draw(screen)
}

func (s *TitleScene) drawBackground(screen *ebiten.Image) {
	if s.background == nil {
		screen.Fill(color.RGBA{R: 0x66, G: 0xbf, B: 0xff, A: 0xff})
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(screen.Bounds().Dx())/float64(s.background.Bounds().Dx()),
		float64(screen.Bounds().Dy())/float64(s.background.Bounds().Dy()),
	)
	screen.DrawImage(s.background, op)
}

func (s *TitleScene) Dispose() {
	if s.music != nil {
		s.music.Pause()
	}
}
