// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// baseFontSize is the CSS "medium" size in pixels; "100%" and "1em" resolve to it.
const baseFontSize = 16.0

// Font selects a face by CSS-like size and family, e.g. {"24px", "Arial"}.
type Font struct {
	Size   string
	Family string
}

// String returns the font in CSS shorthand form ("24px Arial").
func (f Font) String() string {
	return strings.TrimSpace(f.Size + " " + f.Family)
}

// ParseFontSize converts a CSS font size ("24px", "12pt", "100%", "1.5em",
// or a bare number of pixels) to pixels.
func ParseFontSize(s string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	scale := 1.0
	switch {
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
	case strings.HasSuffix(v, "pt"):
		v = strings.TrimSuffix(v, "pt")
		scale = 4.0 / 3.0
	case strings.HasSuffix(v, "%"):
		v = strings.TrimSuffix(v, "%")
		scale = baseFontSize / 100
	case strings.HasSuffix(v, "em"):
		v = strings.TrimSuffix(v, "em")
		scale = baseFontSize
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: size %q", ErrInvalidFont, s)
	}
	return n * scale, nil
}

type faceKey struct {
	family string
	size   float64
}

// FontBook resolves Font values to gg text faces.
// Unregistered families fall back to Go Regular, so "Arial" renders with
// the Go fonts on every platform.
//
// FontBook is safe for concurrent use.
type FontBook struct {
	mu       sync.RWMutex
	sources  map[string]*text.FontSource
	fallback *text.FontSource
	faces    *text.Cache[faceKey, text.Face]
}

// NewFontBook creates a FontBook with the Go fonts registered for the
// generic families.
func NewFontBook() (*FontBook, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("sandbox: load go regular: %w", err)
	}
	mono, err := text.NewFontSource(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("sandbox: load go mono: %w", err)
	}

	b := &FontBook{
		sources:  make(map[string]*text.FontSource),
		fallback: regular,
		faces:    text.NewCache[faceKey, text.Face](64),
	}
	for _, family := range []string{"sans-serif", "serif", "arial", "helvetica"} {
		b.sources[family] = regular
	}
	for _, family := range []string{"monospace", "courier", "courier new"} {
		b.sources[family] = mono
	}
	return b, nil
}

// Register adds a TTF/OTF font under the given family name.
func (b *FontBook) Register(family string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("%w: family %q: %w", ErrInvalidFont, family, err)
	}
	key := normalizeFamily(family)

	b.mu.Lock()
	b.sources[key] = src
	b.mu.Unlock()
	b.faces.Clear()
	return nil
}

// Face returns the face for f, creating and caching it on first use.
func (b *FontBook) Face(f Font) (text.Face, error) {
	size, err := ParseFontSize(f.Size)
	if err != nil {
		return nil, err
	}
	key := faceKey{family: normalizeFamily(f.Family), size: size}
	return b.faces.GetOrCreate(key, func() text.Face {
		return b.source(key.family).Face(size)
	}), nil
}

func (b *FontBook) source(family string) *text.FontSource {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if src, ok := b.sources[family]; ok {
		return src
	}
	return b.fallback
}

func normalizeFamily(family string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(family), `"'`))
}
