package model

import (
	"fmt"
	"iter"
	"math"
)

// Grid is a fixed-size two dimensional container addressed by (row, column)
type Grid[T any] struct {
	rows  int
	cols  int
	cells []T // row-major
}

// NewGrid builds a grid from a non-empty rectangular sequence of rows
func NewGrid[T any](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: grid must not be empty", ErrInvalidGrid)
	}

	cols := len(rows[0])
	cells := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidGrid, i, len(row), cols)
		}
		cells = append(cells, row...)
	}

	return &Grid[T]{rows: len(rows), cols: cols, cells: cells}, nil
}

// NewSquareGrid builds a square grid from a flat row-major sequence whose length is a perfect square
func NewSquareGrid[T any](flat []T) (*Grid[T], error) {
	size := int(math.Sqrt(float64(len(flat))))
	for size*size < len(flat) {
		size++
	}
	if len(flat) == 0 || size*size != len(flat) {
		return nil, fmt.Errorf("%w: %d cells do not form a square", ErrInvalidGrid, len(flat))
	}

	cells := make([]T, len(flat))
	copy(cells, flat)
	return &Grid[T]{rows: size, cols: size, cells: cells}, nil
}

// Rows returns the number of rows
func (g *Grid[T]) Rows() int {
	return g.rows
}

// Cols returns the number of columns
func (g *Grid[T]) Cols() int {
	return g.cols
}

// Contains reports whether (row, col) lies inside the grid
func (g *Grid[T]) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Get returns the cell at (row, col)
func (g *Grid[T]) Get(row, col int) (T, error) {
	if !g.Contains(row, col) {
		var zero T
		return zero, fmt.Errorf("%w: (%d, %d) outside %dx%d grid", ErrOutOfRange, row, col, g.rows, g.cols)
	}
	return g.cells[row*g.cols+col], nil
}

// All iterates every cell in row-major order
func (g *Grid[T]) All() iter.Seq2[Position, T] {
	return func(yield func(Position, T) bool) {
		for i, cell := range g.cells {
			if !yield(Position{Row: i / g.cols, Col: i % g.cols}, cell) {
				return
			}
		}
	}
}

// Row returns a copy of the given row
func (g *Grid[T]) Row(row int) []T {
	if row < 0 || row >= g.rows {
		return nil
	}
	result := make([]T, g.cols)
	copy(result, g.cells[row*g.cols:(row+1)*g.cols])
	return result
}

// Column returns a copy of the given column
func (g *Grid[T]) Column(col int) []T {
	if col < 0 || col >= g.cols {
		return nil
	}
	result := make([]T, g.rows)
	for row := 0; row < g.rows; row++ {
		result[row] = g.cells[row*g.cols+col]
	}
	return result
}

// Transpose returns a new grid with rows and columns swapped
func (g *Grid[T]) Transpose() *Grid[T] {
	cells := make([]T, len(g.cells))
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cells[col*g.rows+row] = g.cells[row*g.cols+col]
		}
	}
	return &Grid[T]{rows: g.cols, cols: g.rows, cells: cells}
}
