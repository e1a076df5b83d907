// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sandbox

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas(t *testing.T, w, h int) *ContextCanvas {
	t.Helper()
	fonts, err := NewFontBook()
	require.NoError(t, err)
	return NewCanvas(w, h, fonts)
}

// pixel returns the 8-bit channels of the canvas pixel at (x, y).
func pixel(c *ContextCanvas, x, y int) [4]uint8 {
	r, g, b, a := c.Context().Image().At(x, y).RGBA()
	return [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestContextCanvas_Size(t *testing.T) {
	c := newTestCanvas(t, 320, 200)
	w, h := c.Size()
	assert.Equal(t, 320.0, w)
	assert.Equal(t, 200.0, h)
}

func TestContextCanvas_ClearAndFillRect(t *testing.T) {
	c := newTestCanvas(t, 100, 100)
	c.Clear(gg.White)
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(c, 50, 50))

	c.SetFillColor(gg.Red)
	require.NoError(t, c.FillRect(20, 20, 40, 40))
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, pixel(c, 40, 40))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(c, 5, 5))
}

func TestContextCanvas_FillAndStrokeKeepSeparateColors(t *testing.T) {
	c := newTestCanvas(t, 100, 100)
	c.Clear(gg.White)
	c.SetFillColor(gg.Blue)
	c.SetStrokeColor(gg.Red)
	c.SetLineWidth(4)

	require.NoError(t, c.StrokeRect(10, 10, 80, 80))
	require.NoError(t, c.FillRect(30, 30, 40, 40))

	assert.Equal(t, [4]uint8{255, 0, 0, 255}, pixel(c, 10, 50), "border stroked in the stroke color")
	assert.Equal(t, [4]uint8{0, 0, 255, 255}, pixel(c, 50, 50), "interior filled in the fill color")
}

func TestContextCanvas_Arc(t *testing.T) {
	c := newTestCanvas(t, 100, 100)
	c.Clear(gg.White)
	c.SetFillColor(gg.Green)
	require.NoError(t, c.Arc(50, 50, 30, 0, 2*math.Pi, true))

	center := pixel(c, 50, 50)
	assert.Equal(t, uint8(0), center[0])
	assert.Greater(t, center[1], uint8(100))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(c, 2, 2))
}

func TestContextCanvas_DrawImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}

	c := newTestCanvas(t, 100, 100)
	c.Clear(gg.White)
	require.NoError(t, c.DrawImage(gg.ImageBufFromImage(src), 20, 20, 40, 40))

	assert.Equal(t, [4]uint8{0, 0, 255, 255}, pixel(c, 40, 40), "image is stretched to the target rectangle")
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pixel(c, 80, 80))

	require.ErrorIs(t, c.DrawImage(nil, 0, 0, 10, 10), errNilImage)
}

func TestContextCanvas_Text(t *testing.T) {
	c := newTestCanvas(t, 200, 60)
	c.Clear(gg.White)

	require.NoError(t, c.SetFont(Font{Size: "24px", Family: "Arial"}))
	w, h := c.MeasureText("Hello")
	assert.Greater(t, w, 0.0)
	assert.Greater(t, h, 0.0)

	wide, _ := c.MeasureText("Hello World")
	assert.Greater(t, wide, w)

	c.SetFillColor(gg.Black)
	require.NoError(t, c.FillText("Hello", 10, 40))

	inked := false
	for y := 10; y < 45 && !inked; y++ {
		for x := 10; x < 10+int(w); x++ {
			if pixel(c, x, y)[0] < 128 {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "text should put dark pixels on the surface")

	require.ErrorIs(t, c.SetFont(Font{Size: "?", Family: "Arial"}), ErrInvalidFont)
}

func TestContextCanvas_SetFontWithoutBook(t *testing.T) {
	c := NewCanvas(10, 10, nil)
	require.ErrorIs(t, c.SetFont(Font{Size: "10px", Family: "serif"}), ErrInvalidFont)
}

func TestContextCanvas_SavePNG(t *testing.T) {
	c := newTestCanvas(t, 16, 16)
	c.Clear(gg.White)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, c.SavePNG(path))

	img, err := gg.LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width())
}
