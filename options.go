// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import "github.com/gogpu/gg"

// DriverOption configures a Driver during creation.
//
// Example:
//
//	d := sandbox.NewDriver(canvas, grid,
//	    sandbox.WithLoader(loader, reloader),
//	    sandbox.WithBackground(sandbox.MustParseColor("white")))
type DriverOption func(*driverOptions)

// driverOptions holds optional configuration for a Driver.
type driverOptions struct {
	loader     *Loader
	reloader   *Reloader
	background gg.RGBA
	render     RenderOptions
	scene      func(Canvas) error
	showFPS    bool
	fpsFont    Font
	fpsColor   string
	fpsX, fpsY float64
	frameLimit uint64
	onFrame    func(frame uint64) error
}

// defaultDriverOptions returns the default driver options.
func defaultDriverOptions() driverOptions {
	return driverOptions{
		background: gg.White,
		render:     DefaultRenderOptions(),
		showFPS:    true,
		fpsFont:    Font{Size: "16px", Family: "Arial"},
		fpsColor:   "black",
		fpsX:       10,
		fpsY:       20,
	}
}

// WithLoader lets the driver apply completed image loads and run the
// reload schedule at the start of every frame. reloader may be nil.
func WithLoader(l *Loader, reloader *Reloader) DriverOption {
	return func(o *driverOptions) {
		o.loader = l
		o.reloader = reloader
	}
}

// WithBackground sets the color the surface is cleared to every frame.
func WithBackground(col gg.RGBA) DriverOption {
	return func(o *driverOptions) {
		o.background = col
	}
}

// WithRenderOptions sets the grid render options.
func WithRenderOptions(opts RenderOptions) DriverOption {
	return func(o *driverOptions) {
		o.render = opts
	}
}

// WithScene adds shapes drawn after the grid and before the FPS overlay.
func WithScene(fn func(Canvas) error) DriverOption {
	return func(o *driverOptions) {
		o.scene = fn
	}
}

// WithFPSOverlay configures the frames-per-second text. An empty color
// keeps the default.
func WithFPSOverlay(show bool, font Font, color string) DriverOption {
	return func(o *driverOptions) {
		o.showFPS = show
		if font.Size != "" && font.Family != "" {
			o.fpsFont = font
		}
		if color != "" {
			o.fpsColor = color
		}
	}
}

// WithFrameLimit makes Run return after n frames. Zero means no limit.
func WithFrameLimit(n uint64) DriverOption {
	return func(o *driverOptions) {
		o.frameLimit = n
	}
}

// WithFrameHook calls fn after every frame rendered by Run.
// A non-nil error stops Run and is returned from it.
func WithFrameHook(fn func(frame uint64) error) DriverOption {
	return func(o *driverOptions) {
		o.onFrame = fn
	}
}
