package hal

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"
)

// Runner is an application driven by a host: Run blocks until the
// application stops, Close asks it to stop.
type Runner interface {
	Run() error
	Close()
}

// NewAppFunc builds the application on top of the host collaborators.
type NewAppFunc func(s Surface, in *VirtualInput) (Runner, error)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width  int
	Height int
	// Hz is the simulated vsync rate.
	Hz int
	// Frames stops the application after N presented frames (0 = run until
	// the application stops or ctx is cancelled).
	Frames uint64
	// Screenshot, when set, receives the last presented frame as PNG.
	Screenshot string
	// Script is called after every simulated vsync with the number of
	// presented frames, to drive input.
	Script func(frame uint64, in *VirtualInput)
}

// RunHeadless runs the application without opening a window. Frames are
// presented on an in-memory display.
func RunHeadless(ctx context.Context, newApp NewAppFunc, cfg HeadlessConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	disp := NewImageDisplay(cfg.Width, cfg.Height)
	s, err := NewMemorySurface(SurfaceConfig{Width: cfg.Width, Height: cfg.Height}, NewDisplayerPresenter(disp))
	if err != nil {
		return err
	}
	defer s.Close()

	in, err := NewVirtualInput(ControllerHandheld)
	if err != nil {
		return err
	}
	app, err := newApp(s, in)
	if err != nil {
		return err
	}

	slog.Info("headless: start", "width", cfg.Width, "height", cfg.Height, "hz", cfg.Hz, "frames", cfg.Frames)

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	t := time.NewTicker(d)
	defer t.Stop()

	closing := false
	for {
		select {
		case <-ctx.Done():
			app.Close()
			s.Close()
			<-done
			return ctx.Err()
		case err := <-done:
			slog.Info("headless: stop", "presented", s.Presented())
			if err != nil {
				return err
			}
			return writeScreenshot(cfg.Screenshot, disp)
		case <-t.C:
			s.Vsync()
			n := s.Presented()
			if cfg.Script != nil {
				cfg.Script(n, in)
			}
			if cfg.Frames > 0 && n >= cfg.Frames && !closing {
				closing = true
				app.Close()
			}
		}
	}
}

func writeScreenshot(path string, disp *ImageDisplay) (err error) {
	if path == "" {
		return nil
	}
	if disp.Frames() == 0 {
		return errors.New("screenshot: no frame presented")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, disp.Snapshot()); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	slog.Info("headless: screenshot written", "path", path)
	return nil
}
