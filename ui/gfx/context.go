package gfx

import (
	"fmt"

	"nxui/hal"
)

// RenderContext is the input snapshot of one frame. It is built once per
// frame before any event is evaluated and is not modified afterwards.
type RenderContext struct {
	KeysDown hal.Key
	KeysUp   hal.Key
	KeysHeld hal.Key
	// Touch is set only while KeyTouch is held.
	Touch *hal.TouchData
}

// NewRenderContext samples the input source. Player 1 is used when connected,
// the handheld controller otherwise.
func NewRenderContext(in hal.InputSource) (*RenderContext, error) {
	id := hal.ControllerHandheld
	if in.IsControllerConnected(hal.ControllerPlayer1) {
		id = hal.ControllerPlayer1
	}
	c, err := in.Controller(id)
	if err != nil {
		return nil, fmt.Errorf("render context: %w", err)
	}

	ctx := &RenderContext{
		KeysDown: c.ButtonsDown(),
		KeysUp:   c.ButtonsUp(),
		KeysHeld: c.ButtonsHeld(),
	}
	if ctx.KeysHeld.Contains(hal.KeyTouch) {
		td, err := in.TouchSample(0)
		if err != nil {
			return nil, fmt.Errorf("render context: touch: %w", err)
		}
		ctx.Touch = &td
	}
	return ctx, nil
}
