package core

// Grid stores a 2D grid of cell values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) addresses a cell.
func (g *Grid[T]) In(x, y int) bool { return x >= 0 && x < g.W && y >= 0 && y < g.H }

// At returns the value at (x, y), or the zero value outside the grid.
func (g *Grid[T]) At(x, y int) T {
	if !g.In(x, y) {
		var zero T
		return zero
	}
	return g.data[g.Index(x, y)]
}

// Set stores v at (x, y); writes outside the grid are ignored.
func (g *Grid[T]) Set(x, y int, v T) {
	if g.In(x, y) {
		g.data[g.Index(x, y)] = v
	}
}

// Clear fills the grid with zero values.
func (g *Grid[T]) Clear() {
	clear(g.data)
}
