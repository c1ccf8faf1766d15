package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
)

// ErrCellRewritten reports a second write to a canvas cell
var ErrCellRewritten = errors.New("canvas cell written twice")

// RGB is an 8-bit color triple
type RGB struct {
	R, G, B uint8
}

// Canvas is the shared output buffer. Each cell may be written once.
type Canvas struct {
	width, height int

	mu      sync.Mutex
	cells   []RGB
	written []bool
	count   int
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:   width,
		height:  height,
		cells:   make([]RGB, width*height),
		written: make([]bool, width*height),
	}
}

// Width returns the number of columns
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the number of rows
func (c *Canvas) Height() int {
	return c.height
}

// Set stores the color of cell (row, col). The lock is held only for the store.
func (c *Canvas) Set(row, col int, px RGB) error {
	if row < 0 || row >= c.height || col < 0 || col >= c.width {
		return fmt.Errorf("canvas cell (%d, %d) outside %dx%d", row, col, c.width, c.height)
	}
	idx := row*c.width + col

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.written[idx] {
		return fmt.Errorf("%w: (%d, %d)", ErrCellRewritten, row, col)
	}
	c.cells[idx] = px
	c.written[idx] = true
	c.count++
	return nil
}

// At returns the color of cell (row, col)
func (c *Canvas) At(row, col int) RGB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cells[row*c.width+col]
}

// Complete reports whether every cell has been written
func (c *Canvas) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count == len(c.cells)
}

// Written returns the number of cells written so far
func (c *Canvas) Written() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Image converts the canvas to an opaque RGBA image, row 0 at the top
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))

	c.mu.Lock()
	defer c.mu.Unlock()
	for row := 0; row < c.height; row++ {
		for col := 0; col < c.width; col++ {
			px := c.cells[row*c.width+col]
			img.SetRGBA(col, row, color.RGBA{R: px.R, G: px.G, B: px.B, A: 255})
		}
	}
	return img
}
