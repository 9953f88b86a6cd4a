package app

import (
	"fmt"
	"time"

	"nxui/hal"
	"nxui/ui/gfx"
	"nxui/ui/object"
	"nxui/ui/scene"
)

var (
	colorAccent = gfx.RGB(0xFF, 0x8C, 0x00)
	colorTint   = gfx.RGBA(0x00, 0x80, 0xFF, 0xC0)
	colorInk    = gfx.RGB(0x20, 0x20, 0x20)
)

const slideTime = 1500 * time.Millisecond

const help = "A: recolor  touch: press  Left/Right: scene  Y: pause  +: exit"

// buildScenes adds the home and blending scenes. Navigation keys live on an
// invisible object shared by both scenes.
func (a *App) buildScenes() {
	r := a.gui.Renderer()
	w, h := int32(r.Width()), int32(r.Height())

	nav := &object.Base{}
	nav.OnKeysDown(hal.KeyPlus, a.gui.Close)
	nav.OnKeysDown(hal.KeyDRight, func() { a.switchScene(1) })
	nav.OnKeysDown(hal.KeyDLeft, func() { a.switchScene(-1) })

	bar := newStatus(16, h-24, a.mono.Fonter(), func() string {
		return fmt.Sprintf("frame %d  scene %d/%d", a.gui.Frames(), a.gui.CurrentScene()+1, len(a.gui.Scenes()))
	})

	home := scene.New()
	home.AddObject(nav)
	home.AddObject(object.NewLabel(40, 24, "nxui", FontSans, 48))
	hint := object.NewLabel(40, 88, help, FontMono, 16)
	hint.SetColor(colorInk)
	home.AddObject(hint)

	first := object.NewButton(40, 140, 360, 120, "Button A")
	first.SetFont(FontSans)
	first.OnKeysDown(hal.KeyA, func() {
		if first.Color() == object.DefaultButtonColor {
			first.SetColor(colorAccent)
		} else {
			first.SetColor(object.DefaultButtonColor)
		}
	})
	home.AddObject(first)

	touches := 0
	second := object.NewButton(240, 200, 360, 120, "Touch me")
	second.SetFont(FontSans)
	second.SetColor(colorTint)
	second.OnTouched(func() {
		touches++
		second.SetText(fmt.Sprintf("Touched %d", touches))
	})
	home.AddObject(second)

	box := newSlider(40, max(40, w-40-64), 380, 64, slideTime, a.cfg.FrameTime, colorAccent)
	box.OnKeysDown(hal.KeyY, box.TogglePause)
	home.AddObject(box)
	home.AddObject(bar)
	a.gui.AddScene(home)

	blend := scene.New()
	blend.AddObject(nav)
	blend.AddObject(object.NewLabel(40, 24, "Blending", FontSans, 48))
	for i := int32(0); i < 4; i++ {
		stripe := object.NewButton(40, 100+i*60, uint32(max(0, w-80)), 30, "")
		stripe.SetColor(gfx.RGB(0, 0, 0))
		blend.AddObject(stripe)
	}
	const steps = 8
	for i := int32(0); i < steps; i++ {
		cell := object.NewButton(40+i*(w-80)/steps, 90, uint32(max(0, (w-80)/steps-8)), 240, "")
		cell.SetColor(gfx.RGBA(0xFF, 0x00, 0x00, uint8((i+1)*0xFF/steps)))
		blend.AddObject(cell)
	}
	blend.AddObject(bar)
	a.gui.AddScene(blend)
}

// switchScene moves by delta scenes, wrapping around.
func (a *App) switchScene(delta int) {
	n := len(a.gui.Scenes())
	a.gui.SetCurrentScene(((a.gui.CurrentScene()+delta)%n + n) % n)
}
