// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Driver runs the frame cycle: apply finished loads, clear the surface,
// update timing, render the grid, the scene and the FPS overlay.
// All steps of a frame run in order on the caller's goroutine.
type Driver struct {
	canvas Canvas
	grid   *Grid
	opts   driverOptions

	prev   time.Time
	fps    float64
	frames uint64
}

// NewDriver creates a driver rendering g onto c.
func NewDriver(c Canvas, g *Grid, opts ...DriverOption) *Driver {
	o := defaultDriverOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Driver{canvas: c, grid: g, opts: o}
}

// Grid returns the grid being rendered.
func (d *Driver) Grid() *Grid { return d.grid }

// Canvas returns the surface being rendered to.
func (d *Driver) Canvas() Canvas { return d.canvas }

// FPS returns the instantaneous frame rate measured by the last frame.
func (d *Driver) FPS() float64 { return d.fps }

// Frames returns the number of frames rendered.
func (d *Driver) Frames() uint64 { return d.frames }

// GridLines reports whether grid lines are drawn.
func (d *Driver) GridLines() bool { return d.opts.render.GridLines }

// SetGridLines turns the grid line overlay on or off.
func (d *Driver) SetGridLines(on bool) { d.opts.render.GridLines = on }

// Frame renders one frame stamped now. ctx bounds the image loads the
// reload schedule starts. A render error aborts the frame and is returned.
func (d *Driver) Frame(ctx context.Context, now time.Time) error {
	if d.opts.loader != nil {
		d.opts.loader.Apply()
	}
	if d.opts.reloader != nil {
		d.opts.reloader.Tick(ctx, now)
	}

	d.canvas.Clear(d.opts.background)

	if !d.prev.IsZero() {
		if dt := now.Sub(d.prev).Seconds(); dt > 0 {
			d.fps = 1 / dt
		}
	}
	d.prev = now

	if err := d.grid.Draw(d.canvas, d.opts.render); err != nil {
		return fmt.Errorf("sandbox: frame %d: %w", d.frames, err)
	}
	if d.opts.scene != nil {
		if err := d.opts.scene(d.canvas); err != nil {
			return fmt.Errorf("sandbox: frame %d: scene: %w", d.frames, err)
		}
	}
	if d.opts.showFPS {
		label := fmt.Sprintf("FPS: %d", int(math.Round(d.fps)))
		if err := DrawText(d.canvas, label, d.opts.fpsX, d.opts.fpsY,
			WithFont(d.opts.fpsFont.Size, d.opts.fpsFont.Family),
			WithTextColor(d.opts.fpsColor)); err != nil {
			return fmt.Errorf("sandbox: frame %d: fps overlay: %w", d.frames, err)
		}
	}

	d.frames++
	return nil
}

// Run renders a frame every interval until ctx is done, the frame limit is
// reached, or a frame or frame hook fails. Cancellation is not an error.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	now := time.Now()
	for {
		if err := d.Frame(ctx, now); err != nil {
			return err
		}
		if d.opts.onFrame != nil {
			if err := d.opts.onFrame(d.frames); err != nil {
				return err
			}
		}
		if d.opts.frameLimit > 0 && d.frames >= d.opts.frameLimit {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case now = <-ticker.C:
		}
	}
}
