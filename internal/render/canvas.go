// Package render turns collected history into LED-matrix frames: widgets map
// values through a response curve into lit pixels on a fixed-size grayscale
// canvas, and the compositor sequences widgets into left and right panels.
package render

import (
	"image"
)

// Physical size of one LED-matrix module.
const (
	DefaultWidth  = 9
	DefaultHeight = 34
)

// Size is a canvas size in pixels.
type Size struct {
	W, H int
}

// DefaultSize is the size of one matrix module.
var DefaultSize = Size{W: DefaultWidth, H: DefaultHeight}

// Canvas is a grayscale pixel buffer. Writes outside the canvas are ignored.
type Canvas struct {
	img *image.Gray
}

// NewCanvas creates a cleared canvas.
func NewCanvas(size Size) *Canvas {
	return &Canvas{img: image.NewGray(image.Rect(0, 0, size.W, size.H))}
}

// Size returns the canvas size.
func (c *Canvas) Size() Size {
	b := c.img.Bounds()
	return Size{W: b.Dx(), H: b.Dy()}
}

// Clear resets every pixel to the background (off).
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

// Set writes one pixel.
func (c *Canvas) Set(x, y int, v uint8) {
	if x < 0 || y < 0 {
		return
	}
	b := c.img.Bounds()
	if x >= b.Max.X || y >= b.Max.Y {
		return
	}
	c.img.Pix[c.img.PixOffset(x, y)] = v
}

// At returns one pixel, 0 outside the canvas.
func (c *Canvas) At(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}.In(c.img.Bounds())) {
		return 0
	}
	return c.img.Pix[c.img.PixOffset(x, y)]
}

// Lit returns the number of non-zero pixels.
func (c *Canvas) Lit() int {
	n := 0
	for _, p := range c.img.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// Scale multiplies every pixel by level/255. Level 0 blanks the canvas; at
// any other level lit pixels stay lit.
func (c *Canvas) Scale(level uint8) {
	if level == 255 {
		return
	}
	if level == 0 {
		clear(c.img.Pix)
		return
	}
	for i, p := range c.img.Pix {
		if p == 0 {
			continue
		}
		v := uint8((uint32(p)*uint32(level) + 127) / 255)
		if v == 0 {
			v = 1
		}
		c.img.Pix[i] = v
	}
}

// Clone returns an independent copy.
func (c *Canvas) Clone() *Canvas {
	img := image.NewGray(c.img.Rect)
	copy(img.Pix, c.img.Pix)
	return &Canvas{img: img}
}

// Image exposes the underlying buffer.
func (c *Canvas) Image() *image.Gray {
	return c.img
}

// Column returns the pixels of column x from top to bottom.
func (c *Canvas) Column(x int) []uint8 {
	h := c.Size().H
	out := make([]uint8, h)
	for y := 0; y < h; y++ {
		out[y] = c.At(x, y)
	}
	return out
}
