package gfx

import "strings"

// DrawText draws text with its first baseline at y + ascent. Lines are
// separated by '\n'; each line moves the baseline down by the font ascent.
// Glyph coverage is used as alpha.
func (r *Renderer) DrawText(f Font, text string, c Color, size float32, x, y int) {
	if f == nil {
		return
	}
	vm := f.VerticalMetrics(size)
	for _, line := range splitLines(text) {
		r.drawLine(f, line, c, size, vm, x, y)
		y += int(vm.Ascent)
	}
}

// DrawTextNamed is DrawText with a font from the registry.
func (r *Renderer) DrawTextNamed(name, text string, c Color, size float32, x, y int) bool {
	f, ok := r.FindFont(name)
	if !ok {
		Logger().Warn("gfx: font not loaded", "font", name)
		return false
	}
	r.DrawText(f, text, c, size, x, y)
	return true
}

func (r *Renderer) drawLine(f Font, line string, c Color, size float32, vm VMetrics, x, y int) {
	for _, g := range f.Layout(line, size, Point{X: 0, Y: vm.Ascent}) {
		bb, ok := g.PixelBounds()
		if !ok {
			continue
		}
		g.Draw(func(gx, gy int, v float32) {
			r.BlendPixel(x+gx+bb.Min.X, y+gy+bb.Min.Y, c.WithAlpha(coverageAlpha(v)))
		})
	}
}

func coverageAlpha(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v * 255)
}

// splitLines splits on '\n', drops a trailing '\r' from each line and ignores
// a final empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
