package core

import (
	"errors"
	"fmt"
)

// ErrInvalidSize reports a grid with a non-positive width or height.
var ErrInvalidSize = errors.New("grid dimensions must be positive")

// Grid stores a 2D raster of cell values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a zeroed grid with the given dimensions.
func NewGrid[T any](w, h int) (*Grid[T], error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}, nil
}

// FilledGrid allocates a grid with every cell set to v.
func FilledGrid[T any](w, h int, v T) (*Grid[T], error) {
	g, err := NewGrid[T](w, h)
	if err != nil {
		return nil, err
	}
	g.Fill(v)
	return g, nil
}

// Size reports the grid dimensions.
func (g *Grid[T]) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid[T]) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// At returns the value at (x, y) with toroidal wrapping.
func (g *Grid[T]) At(x, y int) T {
	x, y = g.Wrap(x, y)
	return g.data[g.Index(x, y)]
}

// Set stores v at (x, y) with toroidal wrapping.
func (g *Grid[T]) Set(x, y int, v T) {
	x, y = g.Wrap(x, y)
	g.data[g.Index(x, y)] = v
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{W: g.W, H: g.H, data: append([]T(nil), g.data...)}
}
