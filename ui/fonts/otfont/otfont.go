// Package otfont provides antialiased TrueType/OpenType fonts for the
// renderer, backed by golang.org/x/image/font/opentype.
package otfont

import (
	"fmt"
	"image"
	"os"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"nxui/ui/gfx"
)

// maxFaces bounds the per-scale face cache.
const maxFaces = 16

// Font is a parsed font. Scales are pixel heights: ascent plus descent of the
// laid out text equals the scale.
//
// Font is safe for concurrent use.
type Font struct {
	name string
	otf  *opentype.Font
	// ppemPerPixel converts a pixel height into pixels per em.
	ppemPerPixel float64

	mu    sync.Mutex
	faces map[float32]font.Face
}

var _ gfx.Font = (*Font)(nil)

// Parse parses TrueType or OpenType data. The data must not be modified while
// the font is in use.
func Parse(data []byte) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("otfont: parse: %w", err)
	}
	upem := otf.UnitsPerEm()
	var buf sfnt.Buffer
	m, err := otf.Metrics(&buf, fixed.I(int(upem)), font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("otfont: metrics: %w", err)
	}
	height := float64(m.Ascent+m.Descent) / 64
	if height <= 0 {
		return nil, fmt.Errorf("otfont: invalid vertical metrics")
	}

	name, err := otf.Name(&buf, sfnt.NameIDFull)
	if err != nil {
		name = ""
	}
	return &Font{
		name:         name,
		otf:          otf,
		ppemPerPixel: float64(upem) / height,
		faces:        make(map[float32]font.Face),
	}, nil
}

// Load reads and parses a font file.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("otfont: %w", err)
	}
	return Parse(data)
}

// Default returns Go Regular.
func Default() (*Font, error) {
	return Parse(goregular.TTF)
}

// Name is the full font name from the name table, if any.
func (f *Font) Name() string { return f.name }

// face returns the cached face for scale. f.mu must be held.
func (f *Font) face(scale float32) (font.Face, error) {
	if fc, ok := f.faces[scale]; ok {
		return fc, nil
	}
	fc, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    float64(scale) * f.ppemPerPixel,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("otfont: face %.1f: %w", scale, err)
	}
	if len(f.faces) >= maxFaces {
		for k, old := range f.faces {
			old.Close()
			delete(f.faces, k)
		}
	}
	f.faces[scale] = fc
	return fc, nil
}

func (f *Font) VerticalMetrics(scale float32) gfx.VMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	fc, err := f.face(scale)
	if err != nil {
		gfx.Logger().Warn("otfont: metrics", "err", err)
		return gfx.VMetrics{}
	}
	m := fc.Metrics()
	return gfx.VMetrics{
		Ascent:  toFloat(m.Ascent),
		Descent: toFloat(m.Descent),
		LineGap: toFloat(m.Height - m.Ascent - m.Descent),
	}
}

// Layout positions the glyphs of one line with kerning applied. Missing
// glyphs are skipped without advancing.
func (f *Font) Layout(text string, scale float32, origin gfx.Point) []gfx.Glyph {
	f.mu.Lock()
	defer f.mu.Unlock()
	fc, err := f.face(scale)
	if err != nil {
		gfx.Logger().Warn("otfont: layout", "err", err)
		return nil
	}

	dot := fixed.Point26_6{X: toFixed(origin.X), Y: toFixed(origin.Y)}
	glyphs := make([]gfx.Glyph, 0, len(text))
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			dot.X += fc.Kern(prev, r)
		}
		dr, mask, mp, adv, ok := fc.Glyph(dot, r)
		if !ok {
			continue
		}
		g := &glyph{bounds: dr}
		if !dr.Empty() {
			// The face reuses its mask between calls.
			g.mask = image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
			draw.Draw(g.mask, g.mask.Bounds(), mask, mp, draw.Src)
		}
		glyphs = append(glyphs, g)
		dot.X += adv
		prev = r
	}
	return glyphs
}

// Close releases the cached faces.
func (f *Font) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, fc := range f.faces {
		fc.Close()
		delete(f.faces, k)
	}
	return nil
}

type glyph struct {
	bounds image.Rectangle
	mask   *image.Alpha
}

func (g *glyph) PixelBounds() (image.Rectangle, bool) {
	return g.bounds, g.mask != nil
}

func (g *glyph) Draw(fn func(x, y int, coverage float32)) {
	if g.mask == nil {
		return
	}
	w, h := g.bounds.Dx(), g.bounds.Dy()
	for y := 0; y < h; y++ {
		row := g.mask.Pix[y*g.mask.Stride : y*g.mask.Stride+w]
		for x, a := range row {
			fn(x, y, float32(a)/0xFF)
		}
	}
}

func toFixed(v float32) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func toFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }
