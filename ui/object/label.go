package object

import "nxui/ui/gfx"

// Label draws text with a registered font. Its size is the text box used for
// touch events; it does not clip the text.
type Label struct {
	Base
	text  string
	font  string
	color gfx.Color
	size  float32
}

func NewLabel(x, y int32, text, font string, size float32) *Label {
	return &Label{
		Base:  NewBase(x, y, 0, uint32(size)),
		text:  text,
		font:  font,
		color: gfx.RGB(0, 0, 0),
		size:  size,
	}
}

func (l *Label) Text() string         { return l.text }
func (l *Label) SetText(text string)  { l.text = text }
func (l *Label) SetColor(c gfx.Color) { l.color = c }
func (l *Label) SetFont(name string)  { l.font = name }

func (l *Label) OnRender(r *gfx.Renderer) {
	if f, ok := r.FindFont(l.font); ok {
		r.DrawText(f, l.text, l.color, l.size, int(l.x), int(l.y))
	}
}
