// Package app is the demo application: a few scenes exercising buttons,
// labels, blending, touch input and tweened motion.
package app

import (
	"fmt"
	"runtime/debug"
	"time"

	"nxui/hal"
	"nxui/ui"
	"nxui/ui/fonts/bitfont"
	"nxui/ui/fonts/otfont"
)

// Font registry names.
const (
	FontSans = "sans"
	FontMono = "mono"
)

type Config struct {
	// FontPath is a TrueType/OpenType file used for FontSans. Go Regular is
	// used when empty.
	FontPath string
	// FrameTime is the animation step per presented frame (default 1/60 s).
	FrameTime time.Duration
}

// App owns the Gui and its fonts.
type App struct {
	gui  *ui.Gui
	cfg  Config
	sans *otfont.Font
	mono *bitfont.Font
}

var _ hal.Runner = (*App)(nil)

// New builds the demo scenes on s. Nothing is drawn until Run.
func New(s hal.Surface, in hal.InputSource, cfg Config) (*App, error) {
	if cfg.FrameTime <= 0 {
		cfg.FrameTime = time.Second / 60
	}
	g, err := ui.New(s, in)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	var sans *otfont.Font
	if cfg.FontPath != "" {
		sans, err = otfont.Load(cfg.FontPath)
	} else {
		sans, err = otfont.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	mono := bitfont.Default()

	r := g.Renderer()
	r.LoadFont(sans, FontSans)
	r.LoadFont(mono, FontMono)

	a := &App{gui: g, cfg: cfg, sans: sans, mono: mono}
	a.buildScenes()
	return a, nil
}

// Gui exposes the main loop.
func (a *App) Gui() *ui.Gui { return a.gui }

// Run shows the scenes until Close. A panic in a callback is logged with its
// stack and propagated.
func (a *App) Run() error {
	defer func() {
		if v := recover(); v != nil {
			reportFault(v, a.gui.Frames(), debug.Stack())
			panic(v)
		}
	}()
	defer a.sans.Close()
	return a.gui.Show()
}

func (a *App) Close() { a.gui.Close() }
