// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"errors"

	"github.com/gogpu/gg"
)

// canvasCall records one drawing operation issued to a recordingCanvas,
// together with the surface state it was issued under.
type canvasCall struct {
	Op        string
	Args      []float64
	Color     gg.RGBA
	LineWidth float64
	Font      Font
	Text      string
	Filled    bool
	Image     *gg.ImageBuf
}

var errCanvasFailure = errors.New("canvas failure")

// recordingCanvas is a Canvas that records operations instead of drawing.
// Text is measured as 8px per byte with a 16px line height.
type recordingCanvas struct {
	width, height float64

	fill, stroke gg.RGBA
	lineWidth    float64
	font         Font

	calls  []canvasCall
	failOn string
}

var _ Canvas = (*recordingCanvas)(nil)

func newRecordingCanvas(width, height float64) *recordingCanvas {
	return &recordingCanvas{width: width, height: height, lineWidth: 1}
}

func (r *recordingCanvas) Size() (float64, float64) { return r.width, r.height }

func (r *recordingCanvas) SetFillColor(col gg.RGBA)   { r.fill = col }
func (r *recordingCanvas) SetStrokeColor(col gg.RGBA) { r.stroke = col }
func (r *recordingCanvas) SetLineWidth(width float64) { r.lineWidth = width }

func (r *recordingCanvas) SetFont(f Font) error {
	if _, err := ParseFontSize(f.Size); err != nil {
		return err
	}
	r.font = f
	return nil
}

func (r *recordingCanvas) Clear(col gg.RGBA) {
	r.calls = append(r.calls, canvasCall{Op: "Clear", Color: col})
}

func (r *recordingCanvas) record(c canvasCall) error {
	c.LineWidth = r.lineWidth
	c.Font = r.font
	r.calls = append(r.calls, c)
	if r.failOn == c.Op {
		return errCanvasFailure
	}
	return nil
}

func (r *recordingCanvas) FillRect(x, y, w, h float64) error {
	return r.record(canvasCall{Op: "FillRect", Args: []float64{x, y, w, h}, Color: r.fill, Filled: true})
}

func (r *recordingCanvas) StrokeRect(x, y, w, h float64) error {
	return r.record(canvasCall{Op: "StrokeRect", Args: []float64{x, y, w, h}, Color: r.stroke})
}

func (r *recordingCanvas) Arc(cx, cy, radius, startAngle, endAngle float64, filled bool) error {
	col := r.stroke
	if filled {
		col = r.fill
	}
	return r.record(canvasCall{
		Op:     "Arc",
		Args:   []float64{cx, cy, radius, startAngle, endAngle},
		Color:  col,
		Filled: filled,
	})
}

func (r *recordingCanvas) FillText(s string, x, y float64) error {
	return r.record(canvasCall{Op: "FillText", Args: []float64{x, y}, Color: r.fill, Text: s})
}

func (r *recordingCanvas) MeasureText(s string) (float64, float64) {
	return float64(8 * len(s)), 16
}

func (r *recordingCanvas) DrawImage(img *gg.ImageBuf, x, y, w, h float64) error {
	return r.record(canvasCall{Op: "DrawImage", Args: []float64{x, y, w, h}, Image: img})
}

// ops returns the recorded operation names in order.
func (r *recordingCanvas) ops() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Op
	}
	return out
}

// callsOf returns the recorded calls of one operation.
func (r *recordingCanvas) callsOf(op string) []canvasCall {
	var out []canvasCall
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *recordingCanvas) reset() {
	r.calls = nil
}
