// Package object defines drawable, event-driven scene objects.
package object

import (
	"image"

	"nxui/hal"
	"nxui/ui/gfx"
)

// Callback is invoked synchronously on the loop goroutine when its event
// fires.
type Callback func()

// Object is anything a scene can hold.
type Object interface {
	X() int32
	Y() int32
	Width() uint32
	Height() uint32
	// OnRender draws the object for the current frame.
	OnRender(r *gfx.Renderer)
	// OnEventHandle evaluates the object's events against the frame input.
	OnEventHandle(ctx *gfx.RenderContext)
	Events() *EventTable
}

// Base carries geometry and events. Embed it and provide OnRender to build an
// object.
type Base struct {
	x, y   int32
	w, h   uint32
	events EventTable
}

func NewBase(x, y int32, w, h uint32) Base {
	return Base{x: x, y: y, w: w, h: h}
}

func (b *Base) X() int32       { return b.x }
func (b *Base) Y() int32       { return b.y }
func (b *Base) Width() uint32  { return b.w }
func (b *Base) Height() uint32 { return b.h }

func (b *Base) SetX(x int32)       { b.x = x }
func (b *Base) SetY(y int32)       { b.y = y }
func (b *Base) SetWidth(w uint32)  { b.w = w }
func (b *Base) SetHeight(h uint32) { b.h = h }

func (b *Base) SetPosition(x, y int32) { b.x, b.y = x, y }
func (b *Base) SetSize(w, h uint32)    { b.w, b.h = w, h }

func (b *Base) Position() (x, y int32)       { return b.x, b.y }
func (b *Base) Size() (width, height uint32) { return b.w, b.h }

// ClickBounds is the area that receives touches.
func (b *Base) ClickBounds() image.Rectangle {
	return image.Rect(int(b.x), int(b.y), int(b.x)+int(b.w), int(b.y)+int(b.h))
}

func (b *Base) Events() *EventTable { return &b.events }

// OnRender draws nothing.
func (b *Base) OnRender(*gfx.Renderer) {}

// OnEventHandle fires every matching event in registration order.
func (b *Base) OnEventHandle(ctx *gfx.RenderContext) {
	b.events.Dispatch(ctx, b.ClickBounds())
}

func (b *Base) RegisterEvent(e Event) { b.events.Register(e) }

// OnKeysDown fires cb on frames where all of keys were newly pressed.
func (b *Base) OnKeysDown(keys hal.Key, cb Callback) {
	b.RegisterEvent(NewKeyEvent(keys, KeyDown, cb))
}

// OnKeysUp fires cb on frames where all of keys were released.
func (b *Base) OnKeysUp(keys hal.Key, cb Callback) {
	b.RegisterEvent(NewKeyEvent(keys, KeyUp, cb))
}

// OnKeysHeld fires cb on every frame all of keys are held.
func (b *Base) OnKeysHeld(keys hal.Key, cb Callback) {
	b.RegisterEvent(NewKeyEvent(keys, KeyHeld, cb))
}

// OnTouched fires cb on every frame the screen is touched inside the click
// bounds.
func (b *Base) OnTouched(cb Callback) {
	b.RegisterEvent(NewTouchEvent(cb))
}
