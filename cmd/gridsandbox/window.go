// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log"
	"time"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/sandbox"
	"github.com/gogpu/sandbox/config"
)

// runWindow drives the frame loop from the window's VSync. The canvas keeps
// the configured size; window resizes are not followed.
//
// Space pauses and resumes the animation.
func runWindow(ctx context.Context, cfg *config.Config, fonts *sandbox.FontBook, opts sessionOptions) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("gridsandbox").
		WithSize(cfg.Surface.Width, cfg.Surface.Height).
		WithContinuousRender(false))

	var (
		canvas    *ggcanvas.Canvas
		s         *session
		animToken *gogpu.AnimationToken
		failed    bool
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if failed {
			return
		}
		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			canvas, err = ggcanvas.New(provider, cfg.Surface.Width, cfg.Surface.Height)
			if err != nil {
				log.Printf("Failed to create canvas: %v", err)
				failed = true
				return
			}
			s, err = newSession(cfg, sandbox.NewContextCanvas(canvas.Context(), fonts), opts)
			if err != nil {
				log.Printf("Failed to build grid: %v", err)
				failed = true
				return
			}
			log.Printf("Backend: %s, canvas %dx%d", dc.Backend(), cfg.Surface.Width, cfg.Surface.Height)
			animToken = app.StartAnimation()
		}

		var frameErr error
		if err := canvas.Draw(func(*gg.Context) {
			frameErr = s.driver.Frame(ctx, time.Now())
		}); err != nil {
			log.Printf("Draw error: %v", err)
		}
		if frameErr != nil {
			log.Printf("Frame %d aborted: %v", s.driver.Frames(), frameErr)
		}

		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			log.Printf("Render error: %v", err)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key != gpucontext.KeySpace {
			return
		}
		if animToken != nil {
			animToken.Stop()
			animToken = nil
			log.Printf("Paused")
			return
		}
		animToken = app.StartAnimation()
		log.Printf("Resumed")
	})

	app.OnClose(func() {
		if animToken != nil {
			animToken.Stop()
		}
		if s != nil {
			_ = s.Close()
		}
		// Release accelerator resources while the device is still alive.
		if a := gg.Accelerator(); a != nil {
			a.Close()
		}
	})

	return app.Run()
}
