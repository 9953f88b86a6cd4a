// Package ui runs the retained-mode main loop: every frame the current
// scene's objects handle input, then draw, then the frame is presented.
package ui

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"nxui/hal"
	"nxui/ui/gfx"
	"nxui/ui/scene"
)

// SetLogger sets the logger used by the ui packages. nil disables logging.
func SetLogger(l *slog.Logger) { gfx.SetLogger(l) }

// Gui owns the renderer and the scenes of one surface.
//
// Show runs on a single goroutine. Close and IsShown may be called from any
// goroutine; everything else belongs to the goroutine running Show.
type Gui struct {
	surface  hal.Surface
	input    hal.InputSource
	renderer *gfx.Renderer

	scenes     []*scene.Scene
	clearColor gfx.Color
	current    atomic.Int64
	shown      atomic.Bool
	frames     uint64
}

// New creates a Gui drawing to s and reading input from in.
func New(s hal.Surface, in hal.InputSource) (*Gui, error) {
	r, err := gfx.NewRenderer(s)
	if err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}
	return &Gui{
		surface:    s,
		input:      in,
		renderer:   r,
		clearColor: gfx.RGB(0xFF, 0xFF, 0xFF),
	}, nil
}

// AddScene appends sc and returns its index.
func (g *Gui) AddScene(sc *scene.Scene) int {
	g.scenes = append(g.scenes, sc)
	return len(g.scenes) - 1
}

func (g *Gui) Scenes() []*scene.Scene { return g.scenes }

func (g *Gui) SetClearColor(c gfx.Color) { g.clearColor = c }

// SetCurrentScene selects the scene shown from the next frame on. An index
// without a scene ends Show.
func (g *Gui) SetCurrentScene(i int) { g.current.Store(int64(i)) }

func (g *Gui) CurrentScene() int { return int(g.current.Load()) }

// Renderer exposes the renderer for font registration.
func (g *Gui) Renderer() *gfx.Renderer { return g.renderer }

func (g *Gui) IsShown() bool { return g.shown.Load() }

// Frames returns the number of frames presented by Show.
func (g *Gui) Frames() uint64 { return g.frames }

// Close stops Show before its next frame.
func (g *Gui) Close() { g.shown.Store(false) }

// Show runs the main loop until Close is called or the current scene index
// has no scene. Errors from the input source or the surface end the loop.
func (g *Gui) Show() error {
	g.shown.Store(true)
	log := gfx.Logger()
	log.Info("ui: show", "scenes", len(g.scenes), "scene", g.CurrentScene())

	for g.shown.Load() {
		idx := g.CurrentScene()
		if idx < 0 || idx >= len(g.scenes) {
			log.Info("ui: no scene to show", "scene", idx, "frames", g.frames)
			return nil
		}
		if err := g.frame(g.scenes[idx]); err != nil {
			g.shown.Store(false)
			log.Error("ui: frame failed", "scene", idx, "frame", g.frames, "err", err)
			return err
		}
		g.frames++
		log.Debug("ui: frame", "scene", idx, "frame", g.frames)
	}

	log.Info("ui: closed", "frames", g.frames)
	return nil
}

func (g *Gui) frame(sc *scene.Scene) error {
	ctx, err := gfx.NewRenderContext(g.input)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	for _, o := range sc.Objects() {
		o.OnEventHandle(ctx)
	}

	if err := g.renderer.Start(g.surface); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	g.renderer.Clear(g.clearColor)
	for _, o := range sc.Objects() {
		o.OnRender(g.renderer)
	}
	if err := g.renderer.End(g.surface); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
