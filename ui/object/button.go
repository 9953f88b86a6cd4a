package object

import "nxui/ui/gfx"

const (
	buttonPadding = 8
	// Label height relative to the button height when no size is set.
	buttonTextRatio = 0.5
)

var DefaultButtonColor = gfx.RGB(0xFF, 0x00, 0xFF)

// Button is a flat rectangle with an optional single-line label.
type Button struct {
	Base
	text      string
	color     gfx.Color
	font      string
	textColor gfx.Color
	textSize  float32
}

func NewButton(x, y int32, w, h uint32, text string) *Button {
	return &Button{
		Base:      NewBase(x, y, w, h),
		text:      text,
		color:     DefaultButtonColor,
		textColor: gfx.RGB(0xFF, 0xFF, 0xFF),
	}
}

func (b *Button) Text() string             { return b.text }
func (b *Button) SetText(text string)      { b.text = text }
func (b *Button) Color() gfx.Color         { return b.color }
func (b *Button) SetColor(c gfx.Color)     { b.color = c }
func (b *Button) SetTextColor(c gfx.Color) { b.textColor = c }
func (b *Button) SetTextSize(size float32) { b.textSize = size }

// SetFont selects the renderer font used for the label by name.
func (b *Button) SetFont(name string) { b.font = name }

func (b *Button) OnRender(r *gfx.Renderer) {
	x, y := int(b.x), int(b.y)
	r.DrawRect(x, y, int(b.w), int(b.h), b.color)
	if b.text == "" || b.font == "" {
		return
	}
	f, ok := r.FindFont(b.font)
	if !ok {
		return
	}
	size := b.textSize
	if size <= 0 {
		size = float32(b.h) * buttonTextRatio
	}
	vm := f.VerticalMetrics(size)
	ty := y + (int(b.h)-int(vm.Ascent+vm.Descent))/2
	r.DrawText(f, b.text, b.textColor, size, x+buttonPadding, ty)
}
