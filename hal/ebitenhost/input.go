//go:build cgo

package ebitenhost

import (
	"log/slog"

	"nxui/hal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Keyboard layout for the handheld controller. Letter keys follow the face
// button positions; arrows are the d-pad.
var keyboardMap = map[ebiten.Key]hal.Key{
	ebiten.KeyX:          hal.KeyA,
	ebiten.KeyZ:          hal.KeyB,
	ebiten.KeyS:          hal.KeyX,
	ebiten.KeyA:          hal.KeyY,
	ebiten.KeyQ:          hal.KeyL,
	ebiten.KeyW:          hal.KeyR,
	ebiten.Key1:          hal.KeyZL,
	ebiten.Key2:          hal.KeyZR,
	ebiten.KeyEnter:      hal.KeyPlus,
	ebiten.KeyBackspace:  hal.KeyMinus,
	ebiten.KeyArrowLeft:  hal.KeyDLeft,
	ebiten.KeyArrowUp:    hal.KeyDUp,
	ebiten.KeyArrowRight: hal.KeyDRight,
	ebiten.KeyArrowDown:  hal.KeyDDown,
}

var gamepadMap = []struct {
	b ebiten.StandardGamepadButton
	k hal.Key
}{
	{ebiten.StandardGamepadButtonRightRight, hal.KeyA},
	{ebiten.StandardGamepadButtonRightBottom, hal.KeyB},
	{ebiten.StandardGamepadButtonRightTop, hal.KeyX},
	{ebiten.StandardGamepadButtonRightLeft, hal.KeyY},
	{ebiten.StandardGamepadButtonFrontTopLeft, hal.KeyL},
	{ebiten.StandardGamepadButtonFrontTopRight, hal.KeyR},
	{ebiten.StandardGamepadButtonFrontBottomLeft, hal.KeyZL},
	{ebiten.StandardGamepadButtonFrontBottomRight, hal.KeyZR},
	{ebiten.StandardGamepadButtonCenterRight, hal.KeyPlus},
	{ebiten.StandardGamepadButtonCenterLeft, hal.KeyMinus},
	{ebiten.StandardGamepadButtonLeftLeft, hal.KeyDLeft},
	{ebiten.StandardGamepadButtonLeftTop, hal.KeyDUp},
	{ebiten.StandardGamepadButtonLeftRight, hal.KeyDRight},
	{ebiten.StandardGamepadButtonLeftBottom, hal.KeyDDown},
	{ebiten.StandardGamepadButtonLeftStick, hal.KeyLStick},
	{ebiten.StandardGamepadButtonRightStick, hal.KeyRStick},
}

// pollInput copies the current window input state into in. It runs on the
// window thread once per tick.
func pollInput(in *hal.VirtualInput) {
	var held hal.Key
	for _, k := range inpututil.AppendPressedKeys(nil) {
		held |= keyboardMap[k]
	}
	in.SetHeld(hal.ControllerHandheld, held)

	for _, id := range inpututil.AppendJustConnectedGamepadIDs(nil) {
		slog.Info("window: gamepad connected", "id", id, "name", ebiten.GamepadName(id))
	}

	ids := ebiten.AppendGamepadIDs(nil)
	var pad hal.Key
	connected := false
	for _, id := range ids {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		connected = true
		for _, m := range gamepadMap {
			if ebiten.IsStandardGamepadButtonPressed(id, m.b) {
				pad |= m.k
			}
		}
		break
	}
	in.SetConnected(hal.ControllerPlayer1, connected)
	in.SetHeld(hal.ControllerPlayer1, pad)

	var touches []hal.TouchData
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, touchAt(x, y))
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		touches = append(touches, touchAt(ebiten.CursorPosition()))
	}
	in.SetTouches(touches...)
}

func touchAt(x, y int) hal.TouchData {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return hal.TouchData{X: uint32(x), Y: uint32(y), DiameterX: 1, DiameterY: 1}
}
