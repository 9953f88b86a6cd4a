package app

import (
	"image/color"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"tinygo.org/x/tinyfont"

	"nxui/ui/gfx"
	"nxui/ui/object"
)

// slider is a box that travels back and forth between two x positions.
type slider struct {
	object.Base
	from, to float32
	period   float32
	step     float32
	fn       ease.TweenFunc
	tween    *gween.Tween
	color    gfx.Color
	paused   bool
}

func newSlider(from, to, y int32, size uint32, period, step time.Duration, c gfx.Color) *slider {
	s := &slider{
		Base:   object.NewBase(from, y, size, size),
		from:   float32(from),
		to:     float32(to),
		period: float32(period.Seconds()),
		step:   float32(step.Seconds()),
		fn:     ease.InOutQuad,
		color:  c,
	}
	s.tween = gween.New(s.from, s.to, s.period, s.fn)
	return s
}

func (s *slider) TogglePause() { s.paused = !s.paused }

// OnEventHandle advances the animation by one frame and then dispatches the
// registered events.
func (s *slider) OnEventHandle(ctx *gfx.RenderContext) {
	if !s.paused {
		x, done := s.tween.Update(s.step)
		s.SetX(int32(x))
		if done {
			s.from, s.to = s.to, s.from
			s.tween = gween.New(s.from, s.to, s.period, s.fn)
		}
	}
	s.Base.OnEventHandle(ctx)
}

func (s *slider) OnRender(r *gfx.Renderer) {
	r.DrawRect(int(s.X()), int(s.Y()), int(s.Width()), int(s.Height()), s.color)
}

// status draws a single line with a tinyfont font straight onto the
// renderer, which doubles as a drivers.Displayer.
type status struct {
	object.Base
	font tinyfont.Fonter
	text func() string
	fg   color.RGBA
}

func newStatus(x, y int32, f tinyfont.Fonter, text func() string) *status {
	return &status{
		Base: object.NewBase(x, y, 0, uint32(f.GetYAdvance())),
		font: f,
		text: text,
		fg:   color.RGBA{A: 0xFF},
	}
}

func (s *status) OnRender(r *gfx.Renderer) {
	// WriteLine takes the baseline.
	base := int16(s.Y()) + int16(s.font.GetYAdvance())
	tinyfont.WriteLine(r, s.font, int16(s.X()), base, s.text(), s.fg)
}
