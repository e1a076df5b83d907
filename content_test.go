// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem() *GridItem {
	return NewGridItem(80, 120, 40, 20, 1, 2, MustParseColor("gray"))
}

func TestGridItem_DrawUnsetContent(t *testing.T) {
	c := newRecordingCanvas(500, 500)
	it := testItem()

	require.NoError(t, it.Draw(c))
	assert.Empty(t, c.calls)
}

func TestGridItem_DrawImage(t *testing.T) {
	img, err := gg.NewImageBuf(10, 10, gg.FormatRGBA8)
	require.NoError(t, err)

	c := newRecordingCanvas(500, 500)
	it := testItem()
	it.SetContent(ImageContent{Image: img})

	require.NoError(t, it.Draw(c))
	calls := c.callsOf("DrawImage")
	require.Len(t, calls, 1)
	assert.Equal(t, []float64{40, 20, 120, 80}, calls[0].Args)
	assert.Same(t, img, calls[0].Image)
}

func TestGridItem_DrawRectangle(t *testing.T) {
	c := newRecordingCanvas(500, 500)
	it := testItem()
	it.SetContent(RectangleContent{Color: MustParseColor("aqua")})

	require.NoError(t, it.Draw(c))
	calls := c.callsOf("FillRect")
	require.Len(t, calls, 1)
	assert.Equal(t, []float64{40, 20, 120, 80}, calls[0].Args)
	assert.Equal(t, MustParseColor("aqua"), calls[0].Color)
}

func TestGridItem_DrawCircleUsesBorderColor(t *testing.T) {
	c := newRecordingCanvas(500, 500)
	it := testItem()
	it.SetContent(CircleContent{Color: MustParseColor("red")})

	require.NoError(t, it.Draw(c))
	calls := c.callsOf("Arc")
	require.Len(t, calls, 1)

	call := calls[0]
	assert.Equal(t, MustParseColor("gray"), call.Color, "stroke uses the cell color, not the content")
	assert.NotEqual(t, MustParseColor("red"), call.Color)
	assert.False(t, call.Filled)
	assert.Equal(t, []float64{100, 60, 40, 0, 2 * math.Pi}, call.Args)
}

func TestGridItem_DrawCircleRadiusFloors(t *testing.T) {
	c := newRecordingCanvas(500, 500)
	it := NewGridItem(71.5, 90, 0, 0, 0, 0, MustParseColor("black"))
	it.SetContent(CircleContent{})

	require.NoError(t, it.Draw(c))
	assert.Equal(t, 35.0, c.callsOf("Arc")[0].Args[2])
}

func TestGridItem_DrawText(t *testing.T) {
	c := newRecordingCanvas(500, 500)
	c.SetFillColor(MustParseColor("blue"))
	it := testItem()
	it.SetContent(TextContent{Text: "Hi!"})

	require.NoError(t, it.Draw(c))
	calls := c.callsOf("FillText")
	require.Len(t, calls, 1)

	call := calls[0]
	assert.Equal(t, "Hi!", call.Text)
	// 3 bytes * 8px = 24px wide, centered in 120px starting at x=40.
	assert.Equal(t, []float64{40 + (120-24)/2.0, 20 + 40}, call.Args)
	assert.Equal(t, gg.Red, call.Color, "text style ignores cell and canvas color")
	assert.Equal(t, Font{Size: "100%", Family: "Arial"}, call.Font)
}

func TestGridItem_DrawErrorContent(t *testing.T) {
	c := newRecordingCanvas(500, 500)
	it := testItem()
	it.SetContent(ErrorContent{Err: errors.New("boom")})

	require.NoError(t, it.Draw(c))
	assert.Empty(t, c.calls)
	assert.Equal(t, KindError, it.ContentKind())
}

func TestGridItem_DrawPropagatesCanvasError(t *testing.T) {
	c := newRecordingCanvas(500, 500)
	c.failOn = "Arc"
	it := testItem()
	it.SetContent(CircleContent{})

	err := it.Draw(c)
	require.ErrorIs(t, err, errCanvasFailure)
	var cellErr *CellError
	require.ErrorAs(t, err, &cellErr)
	assert.Equal(t, 1, cellErr.Row)
	assert.Equal(t, 2, cellErr.Col)
}

func TestGridItem_SetContent(t *testing.T) {
	it := testItem()
	assert.True(t, it.IsContentReady())
	assert.Zero(t, it.Generation())

	gen := it.beginLoad()
	assert.False(t, it.IsContentReady())
	assert.True(t, it.ContentPending())

	it.SetContent(TextContent{Text: "direct"})
	assert.True(t, it.IsContentReady())
	assert.Greater(t, it.Generation(), gen)

	assert.False(t, it.completeLoad(gen, ErrorContent{}), "superseded load must not apply")
	assert.Equal(t, TextContent{Text: "direct"}, it.Content())

	it.ClearContent()
	assert.Nil(t, it.Content())
	assert.Equal(t, KindNone, it.ContentKind())
}

func TestParseContentKind(t *testing.T) {
	tests := []struct {
		in   string
		want ContentKind
	}{
		{"image", KindImage},
		{"rectangle", KindRectangle},
		{"Circle", KindCircle},
		{" text ", KindText},
		{"error", KindError},
		{"", KindNone},
	}
	for _, tt := range tests {
		got, err := ParseContentKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseContentKind("triangle")
	require.ErrorIs(t, err, ErrUnknownContentType)
	assert.Contains(t, err.Error(), "triangle")
}

func TestContentKind_String(t *testing.T) {
	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "circle", KindCircle.String())
	assert.Equal(t, "ContentKind(42)", ContentKind(42).String())
}

func TestNewContent(t *testing.T) {
	c, err := NewContent(KindRectangle, "#ff0000")
	require.NoError(t, err)
	assert.Equal(t, RectangleContent{Color: gg.RGBA{R: 1, G: 0, B: 0, A: 1}}, c)

	c, err = NewContent(KindCircle, "")
	require.NoError(t, err)
	assert.Equal(t, KindCircle, c.Kind())

	c, err = NewContent(KindText, "hello")
	require.NoError(t, err)
	assert.Equal(t, TextContent{Text: "hello"}, c)

	c, err = NewContent(KindNone, "")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = NewContent(KindRectangle, "not-a-color")
	require.ErrorIs(t, err, ErrInvalidColor)

	_, err = NewContent(KindImage, "testdata/does-not-exist.png")
	require.Error(t, err)

	_, err = NewContent(ContentKind(99), "")
	require.ErrorIs(t, err, ErrUnknownContentType)
}
