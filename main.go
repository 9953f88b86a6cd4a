package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"nxui/app"
	"nxui/hal"
	"nxui/hal/ebitenhost"
	"nxui/internal/buildinfo"
	"nxui/ui"
)

func main() {
	var (
		hcfg     hal.HeadlessConfig
		wcfg     ebitenhost.Config
		acfg     app.Config
		headless bool
		level    string
		version  bool
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Width, "width", 1280, "Surface width in pixels.")
	flag.IntVar(&hcfg.Height, "height", 720, "Surface height in pixels.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Vsync rate.")
	flag.Uint64Var(&hcfg.Frames, "frames", 0, "Stop after N frames in headless mode (0 = run until interrupted).")
	flag.StringVar(&hcfg.Screenshot, "screenshot", "", "Write the last headless frame to this PNG file.")
	flag.Float64Var(&wcfg.Scale, "scale", 1, "Window scale.")
	flag.StringVar(&acfg.FontPath, "font", "", "TrueType/OpenType font for labels (default Go Regular).")
	flag.StringVar(&level, "log-level", "info", "debug|info|warn|error.")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	log, err := newLogger(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(log)
	ui.SetLogger(log)
	log.Info("nxui: start", "build", buildinfo.Short(), "headless", headless)

	newApp := func(s hal.Surface, in *hal.VirtualInput) (hal.Runner, error) {
		return app.New(s, in, acfg)
	}

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	wcfg.Width, wcfg.Height, wcfg.TPS = hcfg.Width, hcfg.Height, hcfg.Hz
	wcfg.Title = "nxui"
	if err := ebitenhost.Run(newApp, wcfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}
