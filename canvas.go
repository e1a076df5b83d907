// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
)

// Canvas is the drawing surface primitives and cells paint onto.
//
// Like an HTML canvas, fill color, stroke color, line width and font are
// surface state: they persist across calls until overridden.
type Canvas interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height float64)

	SetFillColor(col gg.RGBA)
	SetStrokeColor(col gg.RGBA)
	SetLineWidth(width float64)
	SetFont(f Font) error

	// Clear paints the whole surface with col, ignoring the fill state.
	Clear(col gg.RGBA)

	FillRect(x, y, w, h float64) error
	StrokeRect(x, y, w, h float64) error

	// Arc fills or strokes the circular arc from startAngle to endAngle (radians).
	Arc(cx, cy, radius, startAngle, endAngle float64, filled bool) error

	// FillText draws s with its baseline at (x, y).
	FillText(s string, x, y float64) error

	// MeasureText returns the advance width and line height of s in the current font.
	MeasureText(s string) (width, height float64)

	// DrawImage draws img scaled to the rectangle (x, y, w, h).
	DrawImage(img *gg.ImageBuf, x, y, w, h float64) error
}

// ContextCanvas implements Canvas on top of a gg.Context.
type ContextCanvas struct {
	dc     *gg.Context
	fonts  *FontBook
	fill   gg.RGBA
	stroke gg.RGBA
}

var _ Canvas = (*ContextCanvas)(nil)

var errNilImage = errors.New("sandbox: draw image: nil image")

// NewCanvas creates an offscreen canvas of the given size.
func NewCanvas(width, height int, fonts *FontBook) *ContextCanvas {
	return NewContextCanvas(gg.NewContext(width, height), fonts)
}

// NewContextCanvas wraps an existing gg.Context, e.g. the one owned by a
// ggcanvas.Canvas in a window. The default font is "10px sans-serif", as
// on an HTML canvas.
func NewContextCanvas(dc *gg.Context, fonts *FontBook) *ContextCanvas {
	c := &ContextCanvas{
		dc:     dc,
		fonts:  fonts,
		fill:   gg.Black,
		stroke: gg.Black,
	}
	dc.SetLineWidth(1)
	if err := c.SetFont(Font{Size: "10px", Family: "sans-serif"}); err != nil {
		Logger().Warn("default font unavailable", "err", err)
	}
	return c
}

// Context returns the underlying gg.Context.
func (c *ContextCanvas) Context() *gg.Context {
	return c.dc
}

// Size returns the surface dimensions in pixels.
func (c *ContextCanvas) Size() (float64, float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

func (c *ContextCanvas) SetFillColor(col gg.RGBA)   { c.fill = col }
func (c *ContextCanvas) SetStrokeColor(col gg.RGBA) { c.stroke = col }
func (c *ContextCanvas) SetLineWidth(width float64) { c.dc.SetLineWidth(width) }

// SetFont resolves f through the canvas FontBook and makes it current.
func (c *ContextCanvas) SetFont(f Font) error {
	if c.fonts == nil {
		return fmt.Errorf("%w: no font book", ErrInvalidFont)
	}
	face, err := c.fonts.Face(f)
	if err != nil {
		return err
	}
	c.dc.SetFont(face)
	return nil
}

func (c *ContextCanvas) Clear(col gg.RGBA) {
	c.dc.ClearWithColor(col)
}

func (c *ContextCanvas) FillRect(x, y, w, h float64) error {
	c.dc.ClearPath()
	c.dc.DrawRectangle(x, y, w, h)
	c.useColor(c.fill)
	return c.dc.Fill()
}

func (c *ContextCanvas) StrokeRect(x, y, w, h float64) error {
	c.dc.ClearPath()
	c.dc.DrawRectangle(x, y, w, h)
	c.useColor(c.stroke)
	return c.dc.Stroke()
}

func (c *ContextCanvas) Arc(cx, cy, radius, startAngle, endAngle float64, filled bool) error {
	c.dc.ClearPath()
	c.dc.DrawArc(cx, cy, radius, startAngle, endAngle)
	if filled {
		c.useColor(c.fill)
		return c.dc.Fill()
	}
	c.useColor(c.stroke)
	return c.dc.Stroke()
}

// FillText draws s in the current fill color. A canvas without a font draws nothing.
func (c *ContextCanvas) FillText(s string, x, y float64) error {
	c.useColor(c.fill)
	c.dc.DrawString(s, x, y)
	return nil
}

func (c *ContextCanvas) MeasureText(s string) (float64, float64) {
	return c.dc.MeasureString(s)
}

func (c *ContextCanvas) DrawImage(img *gg.ImageBuf, x, y, w, h float64) error {
	if img == nil {
		return errNilImage
	}
	c.dc.DrawImageEx(img, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       1.0,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

// SavePNG writes the surface to a PNG file.
func (c *ContextCanvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// gg shares one brush between fill and stroke, so the color is applied per operation.
func (c *ContextCanvas) useColor(col gg.RGBA) {
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
}
