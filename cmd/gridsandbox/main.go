// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command gridsandbox draws a grid of shapes, text and random images.
//
// By default it renders a fixed number of frames offscreen and saves the
// last one as PNG. With -window it runs the frame loop in a gogpu window.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/sandbox"
	"github.com/gogpu/sandbox/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "configuration file (default: user config dir)")
		frames     = flag.Uint64("frames", 60, "frames to render in headless mode")
		rate       = flag.Int("fps", 30, "target frame rate in headless mode")
		output     = flag.String("output", "gridsandbox.png", "PNG file written after the last headless frame")
		window     = flag.Bool("window", false, "open a window instead of rendering headless")
		offline    = flag.Bool("offline", false, "do not fetch remote images")
		demo       = flag.Bool("demo", true, "draw the ungridded demo shapes")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	sandbox.SetLogger(logger)
	gg.SetLogger(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	fonts, err := sandbox.NewFontBook()
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := sessionOptions{offline: *offline, demo: *demo}
	if *window {
		if err := runWindow(ctx, cfg, fonts, opts); err != nil {
			log.Fatalf("Window: %v", err)
		}
		return
	}

	opts.frames = *frames
	if err := runHeadless(ctx, cfg, fonts, opts, *rate, *output); err != nil {
		log.Fatalf("Headless: %v", err)
	}
	log.Printf("Saved %s (%dx%d)", *output, cfg.Surface.Width, cfg.Surface.Height)
}

type sessionOptions struct {
	offline bool
	demo    bool
	frames  uint64
}

// session is one grid with its loader and frame driver.
type session struct {
	driver *sandbox.Driver
	loader *sandbox.Loader
}

func newSession(cfg *config.Config, canvas sandbox.Canvas, opts sessionOptions) (*session, error) {
	grid := sandbox.CreateGrid(canvas, cfg.Grid.Rows, cfg.Grid.Columns, cfg.BorderColor())

	source := sandbox.NewPicsumSource(cfg.Images.BaseURL, cfg.Images.Timeout.Duration)
	var loaderOpts []sandbox.LoaderOption
	if cfg.Images.Width > 0 && cfg.Images.Height > 0 {
		loaderOpts = append(loaderOpts, sandbox.WithImageSize(cfg.Images.Width, cfg.Images.Height))
	}
	loader := sandbox.NewLoader(source, loaderOpts...)

	var reloader *sandbox.Reloader
	if !opts.offline {
		reloader = sandbox.NewReloader(loader, cfg.Images.ReloadMin.Duration, cfg.Images.ReloadMax.Duration)
	}
	if err := cfg.SeedCells(grid, reloader); err != nil {
		_ = loader.Close()
		return nil, err
	}

	driverOpts := []sandbox.DriverOption{
		sandbox.WithLoader(loader, reloader),
		sandbox.WithBackground(cfg.Background()),
		sandbox.WithRenderOptions(cfg.RenderOptions()),
		sandbox.WithFPSOverlay(cfg.Overlay.ShowFPS, cfg.OverlayFont(), cfg.Overlay.Color),
		sandbox.WithFrameLimit(opts.frames),
	}
	if opts.demo {
		driverOpts = append(driverOpts, sandbox.WithScene(drawDemo))
	}
	return &session{
		driver: sandbox.NewDriver(canvas, grid, driverOpts...),
		loader: loader,
	}, nil
}

func (s *session) Close() error {
	return s.loader.Close()
}

func runHeadless(ctx context.Context, cfg *config.Config, fonts *sandbox.FontBook, opts sessionOptions, rate int, output string) error {
	canvas := sandbox.NewCanvas(cfg.Surface.Width, cfg.Surface.Height, fonts)
	s, err := newSession(cfg, canvas, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if rate <= 0 {
		rate = 30
	}
	if err := s.driver.Run(ctx, time.Second/time.Duration(rate)); err != nil {
		return err
	}

	// Give loads started during the run a chance to land in the saved frame.
	waitCtx, cancel := context.WithTimeout(ctx, cfg.Images.Timeout.Duration)
	defer cancel()
	if err := s.loader.Wait(waitCtx); err != nil {
		log.Printf("Images still loading (%d pending): %v", s.driver.Grid().Pending(), err)
	}
	if err := s.driver.Frame(ctx, time.Now()); err != nil {
		return err
	}
	return canvas.SavePNG(output)
}

// drawDemo draws the free-standing shapes on top of the grid.
func drawDemo(c sandbox.Canvas) error {
	if err := sandbox.DrawRectangle(c, 190, 190, 70, 70, "aqua"); err != nil {
		return err
	}
	if err := sandbox.DrawCircle(c, 200, 200, 50, 0, 2*math.Pi, "red", false); err != nil {
		return err
	}
	return sandbox.DrawText(c, "Hello World", 250, 300, sandbox.WithFont("24px", "Arial"))
}
