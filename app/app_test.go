package app

import (
	"bytes"
	"image"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nxui/hal"
	"nxui/ui/fonts/bitfont"
	"nxui/ui/gfx"
	"nxui/ui/object"
)

type rig struct {
	s       *hal.MemorySurface
	in      *hal.VirtualInput
	app     *App
	onFrame func(n uint64)
}

func newRig(t *testing.T) *rig {
	t.Helper()
	rg := &rig{}
	s, err := hal.NewMemorySurface(hal.SurfaceConfig{Width: 640, Height: 480}, hal.PresenterFunc(func(hal.Frame) error {
		if rg.onFrame != nil {
			rg.onFrame(rg.s.Presented() + 1)
		}
		rg.s.Vsync()
		return nil
	}))
	if err != nil {
		t.Fatalf("NewMemorySurface() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	rg.s = s
	if rg.in, err = hal.NewVirtualInput(hal.ControllerHandheld); err != nil {
		t.Fatalf("NewVirtualInput() error = %v", err)
	}
	if rg.app, err = New(s, rg.in, Config{}); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return rg
}

func (rg *rig) run(t *testing.T) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- rg.app.Run() }()
	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		rg.app.Close()
		rg.s.Close()
		t.Fatalf("Run() did not return")
		return nil
	}
}

func TestNavigation(t *testing.T) {
	rg := newRig(t)
	rg.onFrame = func(n uint64) {
		switch n {
		case 1:
			rg.in.Press(hal.ControllerHandheld, hal.KeyDRight)
		case 2:
			rg.in.Release(hal.ControllerHandheld, hal.KeyDRight)
		case 3:
			rg.in.Press(hal.ControllerHandheld, hal.KeyPlus)
		}
	}
	if err := rg.run(t); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	g := rg.app.Gui()
	if g.CurrentScene() != 1 {
		t.Fatalf("CurrentScene() = %d, want 1", g.CurrentScene())
	}
	if g.Frames() != 4 || rg.s.Presented() != 4 {
		t.Fatalf("Frames() = %d, Presented() = %d, want 4", g.Frames(), rg.s.Presented())
	}
}

func TestSwitchSceneWraps(t *testing.T) {
	rg := newRig(t)
	rg.app.switchScene(-1)
	if got := rg.app.Gui().CurrentScene(); got != 1 {
		t.Fatalf("CurrentScene() = %d, want 1", got)
	}
	rg.app.switchScene(1)
	if got := rg.app.Gui().CurrentScene(); got != 0 {
		t.Fatalf("CurrentScene() = %d, want 0", got)
	}
}

func TestSlider(t *testing.T) {
	s := newSlider(0, 100, 10, 8, time.Second, 250*time.Millisecond, gfx.RGB(0, 0, 0))
	ctx := &gfx.RenderContext{}
	for i := 0; i < 4; i++ {
		s.OnEventHandle(ctx)
	}
	if s.X() != 100 {
		t.Fatalf("X() after full period = %d, want 100", s.X())
	}
	s.OnEventHandle(ctx)
	if s.X() >= 100 {
		t.Fatalf("X() = %d, want slider on its way back", s.X())
	}

	s.OnKeysDown(hal.KeyY, s.TogglePause)
	s.OnEventHandle(&gfx.RenderContext{KeysDown: hal.KeyY})
	x := s.X()
	s.OnEventHandle(ctx)
	if s.X() != x {
		t.Fatalf("X() moved from %d to %d while paused", x, s.X())
	}
}

func TestStatusDrawsThroughDisplayer(t *testing.T) {
	surf, err := hal.NewMemorySurface(hal.SurfaceConfig{Width: 200, Height: 40}, nil)
	if err != nil {
		t.Fatalf("NewMemorySurface() error = %v", err)
	}
	defer surf.Close()
	r, err := gfx.NewRenderer(surf)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	white := gfx.RGB(0xFF, 0xFF, 0xFF)
	r.Clear(white)

	st := newStatus(4, 4, bitfont.Default().Fonter(), func() string { return "frame 1" })
	st.OnRender(r)

	var inked image.Rectangle
	for y := 0; y < 40; y++ {
		for x := 0; x < 200; x++ {
			if p, _ := r.Pixel(x, y); p != white {
				inked = inked.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	if inked.Empty() {
		t.Fatalf("status drew nothing")
	}
	if inked.Min.X < 4 || inked.Min.Y < 4 {
		t.Fatalf("status ink %v starts before its position", inked)
	}
}

type faulty struct{ object.Base }

func (faulty) OnRender(*gfx.Renderer) { panic("boom") }

func TestRunReportsFault(t *testing.T) {
	var buf bytes.Buffer
	gfx.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer gfx.SetLogger(nil)

	rg := newRig(t)
	rg.app.Gui().Scenes()[0].AddObject(&faulty{})

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_ = rg.app.Run()
	}()
	if recovered != "boom" {
		t.Fatalf("recover() = %v, want boom", recovered)
	}
	out := buf.String()
	if !strings.Contains(out, "app: fault") || !strings.Contains(out, "panic=boom") {
		t.Fatalf("log output missing fault report:\n%s", out)
	}
	if !strings.Contains(out, "stack=") {
		t.Fatalf("log output missing stack lines:\n%s", out)
	}
}

func TestNewMissingFont(t *testing.T) {
	s, err := hal.NewMemorySurface(hal.SurfaceConfig{Width: 64, Height: 64}, nil)
	if err != nil {
		t.Fatalf("NewMemorySurface() error = %v", err)
	}
	defer s.Close()
	in, _ := hal.NewVirtualInput(hal.ControllerHandheld)
	if _, err := New(s, in, Config{FontPath: filepath.Join(t.TempDir(), "none.ttf")}); err == nil {
		t.Fatalf("New() with missing font error = nil")
	}
}
