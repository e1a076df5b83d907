// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// DefaultRectangleColor is the fill used by DrawRectangle when no color is given.
const DefaultRectangleColor = "rgba(255, 0, 0, 0.1)"

// ParseColor parses a CSS color string into a gg.RGBA.
// Supported forms: "#rgb", "#rgba", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)",
// "rgba(r, g, b, a)", "transparent" and the SVG/CSS named colors.
// Channel values in rgb()/rgba() are 0-255, alpha is 0-1.
func ParseColor(s string) (gg.RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return gg.RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColor)
	case v == "transparent":
		return gg.Transparent, nil
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v[1:], s)
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		return parseFuncColor(v, s)
	}
	if c, ok := colornames.Map[v]; ok {
		return gg.FromColor(c), nil
	}
	return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParseColor is like ParseColor but panics on error.
// Intended for package-level color constants.
func MustParseColor(s string) gg.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHexColor(hex, orig string) (gg.RGBA, error) {
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	return gg.Hex(hex), nil
}

func parseFuncColor(v, orig string) (gg.RGBA, error) {
	open := strings.IndexByte(v, '(')
	if !strings.HasSuffix(v, ")") {
		return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}
	name := v[:open]
	parts := strings.Split(v[open+1:len(v)-1], ",")

	want := 3
	if name == "rgba" {
		want = 4
	}
	if len(parts) != want {
		return gg.RGBA{}, fmt.Errorf("%w: %q: want %d components", ErrInvalidColor, orig, want)
	}

	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return gg.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		if i < 3 {
			f /= 255
		}
		ch[i] = min(max(f, 0), 1)
	}
	return gg.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
