//go:build cgo

// Package ebitenhost runs the UI in a desktop window: queued frames are shown
// in an ebiten window, its refresh drives vsync and keyboard, gamepad, touch
// and mouse feed a virtual input source.
package ebitenhost

import (
	"errors"
	"image"
	"log/slog"
	"sync"

	"nxui/hal"
	"nxui/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// Config controls the window.
type Config struct {
	Width  int
	Height int
	// Scale is the initial window size multiplier (default 1).
	Scale float64
	Title string
	// TPS is the refresh (and vsync) rate (default 60).
	TPS int
}

// Run opens the window and runs the application until either the window is
// closed or the application stops. It blocks the calling goroutine, which
// must be the main one.
func Run(newApp hal.NewAppFunc, cfg Config) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "nxui"
	}

	p := &windowPresenter{img: image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))}
	s, err := hal.NewMemorySurface(hal.SurfaceConfig{Width: cfg.Width, Height: cfg.Height}, p)
	if err != nil {
		return err
	}
	in, err := hal.NewVirtualInput(hal.ControllerPlayer1, hal.ControllerHandheld)
	if err != nil {
		return err
	}
	// Player 1 appears once a gamepad is plugged in.
	in.SetConnected(hal.ControllerPlayer1, false)

	app, err := newApp(s, in)
	if err != nil {
		return err
	}

	g := &game{
		surface:   s,
		in:        in,
		presenter: p,
		w:         cfg.Width,
		h:         cfg.Height,
		done:      make(chan error, 1),
	}
	go func() { g.done <- app.Run() }()

	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(int(float64(cfg.Width)*cfg.Scale), int(float64(cfg.Height)*cfg.Scale))
	ebiten.SetTPS(cfg.TPS)
	slog.Info("window: start", "width", cfg.Width, "height", cfg.Height, "tps", cfg.TPS)

	runErr := ebiten.RunGame(g)
	if !g.stopped {
		// Window closed by the user: stop the loop and unblock its waits.
		app.Close()
		s.Close()
		g.appErr = <-g.done
		if errors.Is(g.appErr, hal.ErrClosed) {
			g.appErr = nil
		}
	}
	slog.Info("window: stop", "presented", s.Presented())
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return runErr
	}
	return g.appErr
}

type game struct {
	surface   *hal.MemorySurface
	in        *hal.VirtualInput
	presenter *windowPresenter
	fbImg     *ebiten.Image
	w, h      int

	done    chan error
	appErr  error
	stopped bool
}

func (g *game) Update() error {
	pollInput(g.in)
	g.surface.Vsync()

	select {
	case err := <-g.done:
		g.appErr = err
		g.stopped = true
		return ebiten.Termination
	default:
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.w, g.h)
	}
	g.presenter.upload(g.fbImg)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}

// windowPresenter keeps the latest queued frame for the window thread.
type windowPresenter struct {
	mu      sync.Mutex
	img     *image.RGBA
	dirty   bool
	dropped uint64
	scratch []byte
}

func (p *windowPresenter) Present(f hal.Frame) error {
	lin, err := f.Linear(p.scratch)
	p.scratch = lin
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dirty {
		p.dropped++
		slog.Debug("window: frame replaced before upload", "dropped", p.dropped)
	}
	f.CopyRGBA(p.img, lin)
	p.dirty = true
	return nil
}

func (p *windowPresenter) upload(dst *ebiten.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dirty {
		return
	}
	dst.WritePixels(p.img.Pix)
	p.dirty = false
}
