package object

import (
	"image"

	"nxui/hal"
	"nxui/ui/gfx"
)

// Event is a trigger with a callback.
type Event interface {
	// Matches reports whether the event fires for the frame input. bounds is
	// the owner's click area.
	Matches(ctx *gfx.RenderContext, bounds image.Rectangle) bool
	Callback() Callback
}

// KeyMode selects which key set of the frame a KeyEvent inspects.
type KeyMode uint8

const (
	KeyDown KeyMode = iota
	KeyUp
	KeyHeld
)

func (m KeyMode) String() string {
	switch m {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyHeld:
		return "held"
	default:
		return "unknown"
	}
}

// KeyEvent fires when the selected key set contains every key of Keys. An
// empty Keys never fires.
type KeyEvent struct {
	Keys hal.Key
	Mode KeyMode
	cb   Callback
}

func NewKeyEvent(keys hal.Key, mode KeyMode, cb Callback) *KeyEvent {
	return &KeyEvent{Keys: keys, Mode: mode, cb: cb}
}

func (e *KeyEvent) Callback() Callback { return e.cb }

func (e *KeyEvent) Matches(ctx *gfx.RenderContext, _ image.Rectangle) bool {
	var set hal.Key
	switch e.Mode {
	case KeyDown:
		set = ctx.KeysDown
	case KeyUp:
		set = ctx.KeysUp
	case KeyHeld:
		set = ctx.KeysHeld
	default:
		return false
	}
	return set.Contains(e.Keys)
}

// TouchEvent fires while a touch lies inside the owner's click bounds.
type TouchEvent struct {
	cb Callback
}

func NewTouchEvent(cb Callback) *TouchEvent { return &TouchEvent{cb: cb} }

func (e *TouchEvent) Callback() Callback { return e.cb }

func (e *TouchEvent) Matches(ctx *gfx.RenderContext, bounds image.Rectangle) bool {
	if ctx.Touch == nil {
		return false
	}
	return image.Pt(int(ctx.Touch.X), int(ctx.Touch.Y)).In(bounds)
}

// EventTable is an append-only list of events.
type EventTable struct {
	events []Event
}

func (t *EventTable) Register(e Event) { t.events = append(t.events, e) }

func (t *EventTable) Len() int { return len(t.events) }

// Dispatch runs the callback of every matching event in registration order
// and returns how many fired. Callbacks registered while dispatching are
// evaluated from the next frame on.
func (t *EventTable) Dispatch(ctx *gfx.RenderContext, bounds image.Rectangle) int {
	fired := 0
	for _, e := range t.events {
		if !e.Matches(ctx, bounds) {
			continue
		}
		fired++
		if cb := e.Callback(); cb != nil {
			cb()
		}
	}
	return fired
}
