package gfx

import "image/color"

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// FromRGBA converts a stdlib color. The value is taken as is, without
// un-premultiplying.
func FromRGBA(c color.RGBA) Color { return Color(c) }

// RGBA returns the stdlib equivalent of c.
func (c Color) RGBA() color.RGBA { return color.RGBA(c) }

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// Decode unpacks a framebuffer word: r in the low byte, a in the high byte.
func Decode(raw uint32) Color {
	return Color{
		R: uint8(raw),
		G: uint8(raw >> 8),
		B: uint8(raw >> 16),
		A: uint8(raw >> 24),
	}
}

// Encode packs c into a framebuffer word. Decode(c.Encode()) == c.
func (c Color) Encode() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

func blendChannel(src, dst, alpha uint32) uint8 {
	return uint8((src*alpha + dst*(0xFF-alpha)) / 0xFF)
}

// BlendOver composites c over dst using c.A as coverage. The framebuffer has
// no stored alpha, so the result is always opaque.
func (c Color) BlendOver(dst Color) Color {
	a := uint32(c.A)
	return RGB(
		blendChannel(uint32(c.R), uint32(dst.R), a),
		blendChannel(uint32(c.G), uint32(dst.G), a),
		blendChannel(uint32(c.B), uint32(dst.B), a),
	)
}

// Blend is BlendOver as a function: src over dst.
func Blend(src, dst Color) Color { return src.BlendOver(dst) }
