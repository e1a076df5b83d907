// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import "github.com/gogpu/gg"

// DrawRectangle fills an axis-aligned rectangle. An empty color selects
// DefaultRectangleColor; an unparsable one is logged and replaced by it.
func DrawRectangle(c Canvas, x, y, w, h float64, color string) error {
	c.SetFillColor(resolveColor(color, DefaultRectangleColor))
	return c.FillRect(x, y, w, h)
}

// DrawCircle strokes, or fills when filled is set, the arc of the circle
// centered at (cx, cy) from startAngle to endAngle in radians.
// An empty or unparsable color draws in black.
func DrawCircle(c Canvas, cx, cy, radius, startAngle, endAngle float64, color string, filled bool) error {
	col := resolveColor(color, "black")
	if filled {
		c.SetFillColor(col)
	} else {
		c.SetStrokeColor(col)
	}
	return c.Arc(cx, cy, radius, startAngle, endAngle, filled)
}

type textOptions struct {
	font  Font
	color string
}

// TextOption configures a DrawText call.
type TextOption func(*textOptions)

// WithFont selects the font. It only takes effect when both size and
// family are non-empty.
func WithFont(size, family string) TextOption {
	return func(o *textOptions) {
		o.font = Font{Size: size, Family: family}
	}
}

// WithTextColor sets the fill color used for the text.
func WithTextColor(color string) TextOption {
	return func(o *textOptions) {
		o.color = color
	}
}

// DrawText draws text with its baseline at (x, y). Font and color given
// through options stay active on the canvas for later calls; without them
// the canvas keeps whatever state it had.
func DrawText(c Canvas, text string, x, y float64, opts ...TextOption) error {
	var o textOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.font.Size != "" && o.font.Family != "" {
		if err := c.SetFont(o.font); err != nil {
			return err
		}
	}
	if o.color != "" {
		col, err := ParseColor(o.color)
		if err != nil {
			Logger().Warn("ignoring text color", "color", o.color, "err", err)
		} else {
			c.SetFillColor(col)
		}
	}
	return c.FillText(text, x, y)
}

// resolveColor parses color, falling back to def for empty or invalid input.
func resolveColor(color, def string) gg.RGBA {
	if color == "" {
		return MustParseColor(def)
	}
	col, err := ParseColor(color)
	if err != nil {
		Logger().Warn("invalid color, using default", "color", color, "default", def, "err", err)
		return MustParseColor(def)
	}
	return col
}
