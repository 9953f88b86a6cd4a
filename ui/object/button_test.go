package object

import (
	"image"
	"testing"

	"nxui/hal"
	"nxui/ui/gfx"
)

type solidGlyph struct{ r image.Rectangle }

func (g solidGlyph) PixelBounds() (image.Rectangle, bool) { return g.r, true }
func (g solidGlyph) Draw(fn func(x, y int, v float32)) {
	for y := 0; y < g.r.Dy(); y++ {
		for x := 0; x < g.r.Dx(); x++ {
			fn(x, y, 1)
		}
	}
}

// blockFont draws each rune as a 2x4 solid block on the baseline.
type blockFont struct{}

func (blockFont) Layout(text string, _ float32, o gfx.Point) []gfx.Glyph {
	var gs []gfx.Glyph
	x := int(o.X)
	for range text {
		gs = append(gs, solidGlyph{image.Rect(x, int(o.Y)-4, x+2, int(o.Y))})
		x += 3
	}
	return gs
}

func (blockFont) VerticalMetrics(float32) gfx.VMetrics { return gfx.VMetrics{Ascent: 4} }

func newRenderer(t *testing.T, w, h int) *gfx.Renderer {
	t.Helper()
	s, err := hal.NewMemorySurface(hal.SurfaceConfig{Width: w, Height: h}, nil)
	if err != nil {
		t.Fatalf("NewMemorySurface() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	r, err := gfx.NewRenderer(s)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	r.Clear(gfx.RGB(0, 0, 0))
	return r
}

func count(r *gfx.Renderer, c gfx.Color) int {
	n := 0
	for y := 0; y < int(r.Height()); y++ {
		for x := 0; x < int(r.Width()); x++ {
			if p, _ := r.Pixel(x, y); p == c {
				n++
			}
		}
	}
	return n
}

func TestButtonRender(t *testing.T) {
	r := newRenderer(t, 64, 32)
	b := NewButton(2, 2, 40, 20, "hi")
	b.OnRender(r)
	if got := count(r, DefaultButtonColor); got != 40*20 {
		t.Fatalf("button pixels = %d, want %d", got, 40*20)
	}

	// The label is drawn once the font is set and registered.
	white := gfx.RGB(0xFF, 0xFF, 0xFF)
	b.SetFont("block")
	b.OnRender(r)
	if got := count(r, white); got != 0 {
		t.Fatalf("label pixels with unregistered font = %d, want 0", got)
	}
	r.LoadFont(blockFont{}, "block")
	b.OnRender(r)
	if got := count(r, white); got != 2*2*4 {
		t.Fatalf("label pixels = %d, want 16", got)
	}
	// Centred vertically: (20-4)/2 = 8 below the top.
	if p, _ := r.Pixel(2+buttonPadding, 2+8); p != white {
		t.Fatalf("label origin pixel = %v, want white", p)
	}
}

func TestButtonClipped(t *testing.T) {
	r := newRenderer(t, 16, 16)
	b := NewButton(-10, 10, 20, 20, "")
	b.SetColor(gfx.RGB(0, 0xFF, 0))
	b.OnRender(r)
	if got := count(r, gfx.RGB(0, 0xFF, 0)); got != 10*6 {
		t.Fatalf("clipped button pixels = %d, want 60", got)
	}
}

func TestLabelRender(t *testing.T) {
	r := newRenderer(t, 32, 16)
	l := NewLabel(1, 1, "ab\nc", "block", 4)
	l.SetColor(gfx.RGB(0xFF, 0, 0))
	l.OnRender(r)
	if got := count(r, gfx.RGB(0xFF, 0, 0)); got != 0 {
		t.Fatalf("label without font drew %d pixels", got)
	}
	r.LoadFont(blockFont{}, "block")
	l.OnRender(r)
	if got := count(r, gfx.RGB(0xFF, 0, 0)); got != 3*8 {
		t.Fatalf("label pixels = %d, want 24", got)
	}
}
