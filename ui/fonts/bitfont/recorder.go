package bitfont

import (
	"image"
	"image/color"
)

type pixel struct {
	x, y  int16
	value uint8
}

// recorder is a drivers.Displayer that remembers what a glyph draws.
type recorder struct {
	pixels []pixel
}

func (r *recorder) Size() (x, y int16) { return 0x7FFF, 0x7FFF }

func (r *recorder) SetPixel(x, y int16, c color.RGBA) {
	// Glyphs are drawn in white; dimmed channels carry antialiasing.
	v := uint16(max(c.R, c.G, c.B)) * uint16(c.A) / 0xFF
	r.pixels = append(r.pixels, pixel{x: x, y: y, value: uint8(v)})
}

func (r *recorder) Display() error { return nil }

func (r *recorder) bitmap() *bitmap {
	bm := &bitmap{}
	if len(r.pixels) == 0 {
		return bm
	}
	b := image.Rect(int(r.pixels[0].x), int(r.pixels[0].y), int(r.pixels[0].x)+1, int(r.pixels[0].y)+1)
	for _, p := range r.pixels[1:] {
		b = b.Union(image.Rect(int(p.x), int(p.y), int(p.x)+1, int(p.y)+1))
	}
	bm.bounds = b
	bm.alpha = make([]uint8, b.Dx()*b.Dy())
	for _, p := range r.pixels {
		i := (int(p.y)-b.Min.Y)*b.Dx() + int(p.x) - b.Min.X
		bm.alpha[i] = max(bm.alpha[i], p.value)
	}
	return bm
}
