package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input polls one player's controls. The keyboard is shared by everyone at
// the table; each player slot additionally reads its own gamepad.
type Input struct {
	player int

	// MoveX is the horizontal axis in [-1, 1].
	MoveX float64
	// JumpPressed is true only on the frame jump was pressed.
	JumpPressed bool
	// JumpHeld is true while jump is held.
	JumpHeld bool
	// DownPressed is true on the frame the drop-through control was pressed.
	DownPressed bool
	// AttackPressed is true on the frame the attack control was pressed.
	AttackPressed bool
	// StartPressed is true on the frame enter/start was pressed.
	StartPressed bool

	gamepads []ebiten.GamepadID
}

func NewInput(player int) *Input {
	return &Input{player: player}
}

// Update polls the keyboard and this player's gamepad for the current frame.
func (i *Input) Update() {
	if i == nil {
		return
	}

	i.gamepads = ebiten.AppendGamepadIDs(i.gamepads[:0])
	gid, hasPad := i.gamepad()

	var moveX float64
	if hasPad {
		const deadzone = 0.1
		axis := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if axis < -deadzone || axis > deadzone {
			moveX = axis
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || i.padHeld(ebiten.StandardGamepadButtonLeftRight) {
		moveX = 1
	} else if ebiten.IsKeyPressed(ebiten.KeyA) || i.padHeld(ebiten.StandardGamepadButtonLeftLeft) {
		moveX = -1
	}
	i.MoveX = moveX

	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeyW) || i.padPressed(ebiten.StandardGamepadButtonRightBottom)
	i.JumpHeld = ebiten.IsKeyPressed(ebiten.KeyW) || i.padHeld(ebiten.StandardGamepadButtonRightBottom)

	downAxis := false
	if hasPad {
		downAxis = ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical) > 0.5
	}
	i.DownPressed = inpututil.IsKeyJustPressed(ebiten.KeyS) || i.padPressed(ebiten.StandardGamepadButtonLeftBottom) || downAxis

	i.AttackPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || i.padPressed(ebiten.StandardGamepadButtonRightRight)
	i.StartPressed = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || i.padPressed(ebiten.StandardGamepadButtonCenterRight)
}

func (i *Input) gamepad() (ebiten.GamepadID, bool) {
	if i.player < 0 || i.player >= len(i.gamepads) {
		return 0, false
	}
	return i.gamepads[i.player], true
}

func (i *Input) padHeld(b ebiten.StandardGamepadButton) bool {
	gid, ok := i.gamepad()
	return ok && ebiten.IsStandardGamepadButtonPressed(gid, b)
}

func (i *Input) padPressed(b ebiten.StandardGamepadButton) bool {
	gid, ok := i.gamepad()
	return ok && inpututil.IsStandardGamepadButtonJustPressed(gid, b)
}
