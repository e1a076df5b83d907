// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"errors"
	"fmt"
)

// Sandbox errors.
var (
	// ErrUnknownContentType is returned when a content tag names no known content kind.
	ErrUnknownContentType = errors.New("sandbox: unknown content type")

	// ErrInvalidColor is returned when a color string cannot be parsed.
	ErrInvalidColor = errors.New("sandbox: invalid color")

	// ErrInvalidFont is returned when a font size or family cannot be resolved.
	ErrInvalidFont = errors.New("sandbox: invalid font")

	// ErrCellOutOfRange is returned when a row/column pair lies outside the grid.
	ErrCellOutOfRange = errors.New("sandbox: cell out of range")

	// ErrImageFetch is returned by an ImageSource when the remote image cannot be loaded.
	ErrImageFetch = errors.New("sandbox: image fetch failed")

	// ErrLoaderClosed is reported for loads issued after Loader.Close.
	ErrLoaderClosed = errors.New("sandbox: loader closed")
)

// CellError identifies the grid cell an error belongs to.
type CellError struct {
	Row, Col int
	Err      error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell (%d,%d): %v", e.Row, e.Col, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
