package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Renderer)(nil)

// Size implements drivers.Displayer so tinyfont and driver-level drawing
// code can target the scratch buffer.
func (r *Renderer) Size() (x, y int16) {
	return int16(r.width), int16(r.height)
}

// SetPixel blends c over the pixel (drivers.Displayer).
func (r *Renderer) SetPixel(x, y int16, c color.RGBA) {
	r.BlendPixel(int(x), int(y), FromRGBA(c))
}

// Display is a no-op: frames are presented by End.
func (r *Renderer) Display() error { return nil }

// FillRectangle blends c over a rectangle, clipped to the surface.
func (r *Renderer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r.DrawRect(int(x), int(y), int(width), int(height), FromRGBA(c))
	return nil
}
