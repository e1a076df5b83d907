// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
)

// ContentKind tags the content held by a GridItem.
type ContentKind uint8

// Content kinds. KindNone means the cell has no content and draws only its border.
const (
	KindNone ContentKind = iota
	KindImage
	KindRectangle
	KindCircle
	KindText
	KindError
)

var kindNames = [...]string{
	KindNone:      "",
	KindImage:     "image",
	KindRectangle: "rectangle",
	KindCircle:    "circle",
	KindText:      "text",
	KindError:     "error",
}

func (k ContentKind) String() string {
	if int(k) < len(kindNames) {
		if k == KindNone {
			return "none"
		}
		return kindNames[k]
	}
	return fmt.Sprintf("ContentKind(%d)", uint8(k))
}

// ParseContentKind maps a content tag ("image", "rectangle", "circle",
// "text", "error") to its kind. An empty tag is KindNone.
func ParseContentKind(s string) (ContentKind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == v {
			return ContentKind(k), nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownContentType, s)
}

// Content is the payload of a grid cell. The set of implementations is
// closed: ImageContent, RectangleContent, CircleContent, TextContent and
// ErrorContent.
type Content interface {
	Kind() ContentKind
	draw(c Canvas, it *GridItem) error
}

// Cell text is drawn in a fixed style regardless of the cell color.
var (
	cellTextFont  = Font{Size: "100%", Family: "Arial"}
	cellTextColor = gg.Red
)

// ImageContent draws an image stretched to the cell bounds.
type ImageContent struct {
	Image *gg.ImageBuf
}

func (ImageContent) Kind() ContentKind { return KindImage }

func (ic ImageContent) draw(c Canvas, it *GridItem) error {
	return c.DrawImage(ic.Image, it.X, it.Y, it.Width, it.Height)
}

// RectangleContent fills the cell with a color.
type RectangleContent struct {
	Color gg.RGBA
}

func (RectangleContent) Kind() ContentKind { return KindRectangle }

func (rc RectangleContent) draw(c Canvas, it *GridItem) error {
	c.SetFillColor(rc.Color)
	return c.FillRect(it.X, it.Y, it.Width, it.Height)
}

// CircleContent strokes the largest circle centered in the cell.
// The stroke uses the cell border color; Color is carried along but not
// used for drawing.
type CircleContent struct {
	Color gg.RGBA
}

func (CircleContent) Kind() ContentKind { return KindCircle }

func (CircleContent) draw(c Canvas, it *GridItem) error {
	cx, cy := it.Center()
	radius := math.Floor(min(it.Width, it.Height) / 2)
	c.SetStrokeColor(it.Color)
	return c.Arc(cx, cy, radius, 0, 2*math.Pi, false)
}

// TextContent draws a string centered horizontally with its baseline at
// the vertical middle of the cell.
type TextContent struct {
	Text string
}

func (TextContent) Kind() ContentKind { return KindText }

func (tc TextContent) draw(c Canvas, it *GridItem) error {
	if err := c.SetFont(cellTextFont); err != nil {
		return err
	}
	w, _ := c.MeasureText(tc.Text)
	c.SetFillColor(cellTextColor)
	return c.FillText(tc.Text, it.X+(it.Width-w)/2, it.Y+it.Height/2)
}

// ErrorContent marks a cell whose content failed to load. It draws nothing,
// but the cell's Content is non-nil after a failure: it returns the
// ErrorContent holding the load error, and ContentKind returns KindError.
type ErrorContent struct {
	Err error
}

func (ErrorContent) Kind() ContentKind { return KindError }

func (ErrorContent) draw(Canvas, *GridItem) error { return nil }

// NewContent builds content of the given kind from a string value:
// a color for rectangles and circles, the text for text cells, a local
// file path for images, and a message for error cells.
func NewContent(kind ContentKind, value string) (Content, error) {
	switch kind {
	case KindRectangle:
		col, err := ParseColor(value)
		if err != nil {
			return nil, err
		}
		return RectangleContent{Color: col}, nil
	case KindCircle:
		var col gg.RGBA
		if value != "" {
			var err error
			if col, err = ParseColor(value); err != nil {
				return nil, err
			}
		}
		return CircleContent{Color: col}, nil
	case KindText:
		return TextContent{Text: value}, nil
	case KindImage:
		img, err := gg.LoadImage(value)
		if err != nil {
			return nil, fmt.Errorf("sandbox: load image %q: %w", value, err)
		}
		return ImageContent{Image: img}, nil
	case KindError:
		return ErrorContent{Err: errors.New(value)}, nil
	case KindNone:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownContentType, kind)
}
