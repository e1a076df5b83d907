// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import "github.com/gogpu/gg"

// GridItem is one rectangular cell of a Grid.
//
// Geometry is fixed at creation. Content is written either directly with
// SetContent or by a Loader on the goroutine that drives the frames; a
// GridItem is not safe for concurrent mutation.
type GridItem struct {
	X, Y          float64
	Width, Height float64
	Row, Col      int

	// Color is the border color. Circle content strokes with it too.
	Color gg.RGBA

	content    Content
	pending    bool
	generation uint64
}

// NewGridItem creates a cell with no content.
func NewGridItem(height, width, x, y float64, row, col int, color gg.RGBA) *GridItem {
	return &GridItem{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Row:    row,
		Col:    col,
		Color:  color,
	}
}

// Content returns the current content, or nil when unset.
func (it *GridItem) Content() Content {
	return it.content
}

// ContentKind returns the kind of the current content, KindNone when unset.
func (it *GridItem) ContentKind() ContentKind {
	if it.content == nil {
		return KindNone
	}
	return it.content.Kind()
}

// SetContent assigns content directly. Any load still in flight for the
// cell is superseded and its result will be dropped.
func (it *GridItem) SetContent(c Content) {
	it.generation++
	it.content = c
	it.pending = false
}

// ClearContent removes the content; the cell draws only its border.
func (it *GridItem) ClearContent() {
	it.SetContent(nil)
}

// ContentPending reports whether a load is in flight for the cell.
func (it *GridItem) ContentPending() bool {
	return it.pending
}

// IsContentReady reports whether the content is final.
func (it *GridItem) IsContentReady() bool {
	return !it.pending
}

// Generation returns the number of content writes started on the cell.
func (it *GridItem) Generation() uint64 {
	return it.generation
}

// beginLoad marks the cell pending and returns the generation the load
// must match when it completes.
func (it *GridItem) beginLoad() uint64 {
	it.generation++
	it.pending = true
	return it.generation
}

// completeLoad applies a load result if gen is still current.
func (it *GridItem) completeLoad(gen uint64, c Content) bool {
	if gen != it.generation {
		return false
	}
	it.content = c
	it.pending = false
	return true
}

// Center returns the center point of the cell.
func (it *GridItem) Center() (x, y float64) {
	return it.X + it.Width/2, it.Y + it.Height/2
}

// Draw paints the cell content. A cell without content draws nothing.
// Pending cells draw their previous content, if any.
func (it *GridItem) Draw(c Canvas) error {
	if it.content == nil {
		return nil
	}
	if err := it.content.draw(c, it); err != nil {
		return &CellError{Row: it.Row, Col: it.Col, Err: err}
	}
	return nil
}
