// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sandbox is a small canvas sandbox built on gg: it lays a surface
// out as a grid of cells, fills cells with shapes, text or random remote
// images, and redraws everything in a simple frame loop.
//
// # Overview
//
//	fonts, _ := sandbox.NewFontBook()
//	canvas := sandbox.NewCanvas(500, 500, fonts)
//
//	grid := sandbox.CreateGrid(canvas, 5, 5, sandbox.MustParseColor("lightgray"))
//	cell, _ := grid.At(2, 2)
//	cell.SetContent(sandbox.TextContent{Text: "Hello"})
//
//	loader := sandbox.NewLoader(sandbox.NewPicsumSource("", 0))
//	defer loader.Close()
//	other, _ := grid.At(1, 1)
//	loader.Load(ctx, other)
//
//	d := sandbox.NewDriver(canvas, grid, sandbox.WithLoader(loader, nil))
//	_ = d.Frame(ctx, time.Now())
//	_ = canvas.SavePNG("grid.png")
//
// # Canvas
//
// Everything draws through the [Canvas] interface, passed explicitly.
// [ContextCanvas] implements it on a gg.Context, either offscreen or the
// context owned by a ggcanvas.Canvas inside a gogpu window.
//
// # Cells
//
// A [GridItem] holds at most one [Content]: [ImageContent],
// [RectangleContent], [CircleContent], [TextContent] or [ErrorContent].
// The set is closed, so drawing never meets an unknown content kind;
// string tags from configuration are checked by [ParseContentKind].
//
// # Concurrency
//
// Grid cells are owned by the goroutine that renders frames. [Loader]
// fetches images on background goroutines and queues the results;
// [Loader.Apply], called at the start of every [Driver.Frame], writes them
// to the cells. Every content write bumps the cell generation, and a load
// result is only applied if the generation it started with is still
// current, so a newer load or a direct assignment always wins.
//
// # Coordinate System
//
// Origin at the top-left corner, x to the right, y down, angles in radians.
package sandbox
