// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// DefaultGridLineColor is the overlay color used for grid lines.
var DefaultGridLineColor = MustParseColor("lightgray")

// Grid is a rows×columns partition of a drawing surface.
// Items are stored in row-major order: the cell at (row, col) is
// Items[row*Columns+col].
type Grid struct {
	Rows, Columns         int
	CellWidth, CellHeight float64
	Items                 []*GridItem
}

// CreateGrid partitions the surface of c into rows×columns cells of equal
// floating-point size, all bordered with color. Non-positive dimensions
// yield an empty grid.
func CreateGrid(c Canvas, rows, columns int, color gg.RGBA) *Grid {
	g := &Grid{Rows: rows, Columns: columns}
	if rows <= 0 || columns <= 0 {
		g.Rows, g.Columns = 0, 0
		return g
	}

	width, height := c.Size()
	g.CellWidth = width / float64(columns)
	g.CellHeight = height / float64(rows)

	g.Items = make([]*GridItem, 0, rows*columns)
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			x := float64(col) * g.CellWidth
			y := float64(row) * g.CellHeight
			g.Items = append(g.Items, NewGridItem(g.CellHeight, g.CellWidth, x, y, row, col, color))
		}
	}

	Logger().Debug("grid created", "rows", rows, "columns", columns,
		"cellWidth", g.CellWidth, "cellHeight", g.CellHeight)
	return g
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.Items)
}

// At returns the cell at the zero-based row and column.
func (g *Grid) At(row, col int) (*GridItem, bool) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Columns {
		return nil, false
	}
	return g.Items[row*g.Columns+col], true
}

// Cell returns the cell at the one-based row and column, the way cells are
// addressed in configuration files.
func (g *Grid) Cell(row, col int) (*GridItem, error) {
	it, ok := g.At(row-1, col-1)
	if !ok {
		return nil, &CellError{Row: row, Col: col, Err: ErrCellOutOfRange}
	}
	return it, nil
}

// Pending returns the number of cells with a load in flight.
func (g *Grid) Pending() int {
	n := 0
	for _, it := range g.Items {
		if it.ContentPending() {
			n++
		}
	}
	return n
}

// RenderOptions controls Grid.Draw.
type RenderOptions struct {
	// GridLines strokes each cell border after drawing its content.
	GridLines bool

	// LineColor is the grid line color; nil selects DefaultGridLineColor.
	LineColor *gg.RGBA

	// LineWidth is the grid line width; zero selects 1.
	LineWidth float64
}

// DefaultRenderOptions returns options with grid lines enabled.
func DefaultRenderOptions() RenderOptions {
	lineColor := DefaultGridLineColor
	return RenderOptions{
		GridLines: true,
		LineColor: &lineColor,
		LineWidth: 1,
	}
}

// Draw renders every cell in row-major order, each followed by its border
// when grid lines are enabled. The first error aborts the pass.
func (g *Grid) Draw(c Canvas, opts RenderOptions) error {
	lineColor := DefaultGridLineColor
	if opts.LineColor != nil {
		lineColor = *opts.LineColor
	}
	lineWidth := opts.LineWidth
	if lineWidth <= 0 {
		lineWidth = 1
	}

	for _, it := range g.Items {
		if err := it.Draw(c); err != nil {
			return fmt.Errorf("sandbox: draw grid: %w", err)
		}
		if !opts.GridLines {
			continue
		}
		c.SetLineWidth(lineWidth)
		c.SetStrokeColor(lineColor)
		x, y, w, h := lineRect(it, lineWidth)
		if err := c.StrokeRect(x, y, w, h); err != nil {
			return fmt.Errorf("sandbox: draw grid lines: %w", &CellError{Row: it.Row, Col: it.Col, Err: err})
		}
	}
	return nil
}

// lineRect returns the border rectangle of it. Lines of odd integer width
// are snapped to pixel centers so a 1px line covers one pixel column
// instead of two half-covered ones. Each edge snaps from the floor of
// the cell edge, so neighbors share the same line.
func lineRect(it *GridItem, lineWidth float64) (x, y, w, h float64) {
	if lineWidth != math.Trunc(lineWidth) || int(lineWidth)%2 == 0 {
		return it.X, it.Y, it.Width, it.Height
	}
	left, top := math.Floor(it.X), math.Floor(it.Y)
	right, bottom := math.Floor(it.X+it.Width), math.Floor(it.Y+it.Height)
	return left + 0.5, top + 0.5, right - left, bottom - top
}
