package gfx

import "image"

// Point is a position in pixel space with sub-pixel precision.
type Point struct {
	X, Y float32
}

// VMetrics are the vertical metrics of a font at a given scale, in pixels.
// Descent is positive below the baseline.
type VMetrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// Glyph is a positioned glyph produced by Font.Layout.
type Glyph interface {
	// PixelBounds is the pixel box covered by the glyph, relative to the
	// layout origin. ok is false for glyphs without an outline (spaces).
	PixelBounds() (r image.Rectangle, ok bool)
	// Draw calls fn for every pixel of the bounding box with coordinates
	// relative to its top-left corner and the antialiasing coverage in [0,1].
	Draw(fn func(x, y int, coverage float32))
}

// Font is a font resource. Fonts are borrowed by the renderer and must
// outlive it.
type Font interface {
	// Layout positions the glyphs of a single line. scale is the pixel
	// height of the font; origin is the baseline start.
	Layout(text string, scale float32, origin Point) []Glyph
	VerticalMetrics(scale float32) VMetrics
}
