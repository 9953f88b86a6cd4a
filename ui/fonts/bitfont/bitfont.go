// Package bitfont adapts tinyfont bitmap fonts to the renderer. Glyphs are
// magnified by whole pixels to approach the requested scale.
package bitfont

import (
	"image"
	"image/color"
	"math"
	"sync"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"nxui/ui/gfx"
)

var white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Font wraps a tinyfont.Fonter. Fonters reuse their glyph value between
// calls, so access is serialized.
type Font struct {
	mu     sync.Mutex
	fonter tinyfont.Fonter
	cache  map[rune]*bitmap
	ascent int
}

var _ gfx.Font = (*Font)(nil)

// New wraps f.
func New(f tinyfont.Fonter) *Font {
	ft := &Font{fonter: f, cache: make(map[rune]*bitmap)}
	// Cap height stands in for the ascent.
	if info := f.GetGlyph('M').Info(); info.YOffset < 0 {
		ft.ascent = -int(info.YOffset)
	} else {
		ft.ascent = int(f.GetYAdvance())
	}
	return ft
}

// Default returns Proggy TinySZ 8pt.
func Default() *Font { return New(&proggy.TinySZ8pt7b) }

// Fonter returns the wrapped font for direct use with tinyfont.
func (f *Font) Fonter() tinyfont.Fonter { return f.fonter }

// Magnification returns the integer zoom used for scale.
func (f *Font) Magnification(scale float32) int {
	ya := float64(f.fonter.GetYAdvance())
	if ya == 0 {
		return 1
	}
	return max(1, int(math.Round(float64(scale)/ya)))
}

func (f *Font) VerticalMetrics(scale float32) gfx.VMetrics {
	k := f.Magnification(scale)
	asc := f.ascent * k
	desc := max(0, int(f.fonter.GetYAdvance())*k-asc)
	return gfx.VMetrics{Ascent: float32(asc), Descent: float32(desc)}
}

func (f *Font) Layout(text string, scale float32, origin gfx.Point) []gfx.Glyph {
	f.mu.Lock()
	defer f.mu.Unlock()

	k := f.Magnification(scale)
	x, y := int(origin.X), int(origin.Y)
	glyphs := make([]gfx.Glyph, 0, len(text))
	for _, r := range text {
		bm := f.raster(r)
		glyphs = append(glyphs, &glyph{bm: bm, x: x, y: y, k: k})
		x += int(bm.advance) * k
	}
	return glyphs
}

// raster draws r once at the origin and caches its pixels. f.mu must be held.
func (f *Font) raster(r rune) *bitmap {
	if bm, ok := f.cache[r]; ok {
		return bm
	}
	g := f.fonter.GetGlyph(r)
	rec := &recorder{}
	g.Draw(rec, 0, 0, white)
	bm := rec.bitmap()
	bm.advance = g.Info().XAdvance
	f.cache[r] = bm
	return bm
}

// bitmap is a glyph at 1x relative to its baseline origin.
type bitmap struct {
	bounds  image.Rectangle
	alpha   []uint8
	advance uint8
}

type glyph struct {
	bm   *bitmap
	x, y int
	k    int
}

func (g *glyph) PixelBounds() (image.Rectangle, bool) {
	b := g.bm.bounds
	if b.Empty() {
		return image.Rectangle{}, false
	}
	return image.Rect(
		g.x+b.Min.X*g.k, g.y+b.Min.Y*g.k,
		g.x+b.Max.X*g.k, g.y+b.Max.Y*g.k,
	), true
}

func (g *glyph) Draw(fn func(x, y int, coverage float32)) {
	w, h := g.bm.bounds.Dx(), g.bm.bounds.Dy()
	for y := 0; y < h*g.k; y++ {
		for x := 0; x < w*g.k; x++ {
			a := g.bm.alpha[(y/g.k)*w+x/g.k]
			fn(x, y, float32(a)/0xFF)
		}
	}
}
