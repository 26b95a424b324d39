package model

import "fmt"

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"`    // 0-indexed from top
	Col int `json:"column"` // 0-indexed from left
}

// String renders the position as "(row, col)"
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Neighbours returns the four orthogonally adjacent positions, which may lie off the board
func (p Position) Neighbours() []Position {
	return []Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
}

// Orientation is the direction of a line scan
type Orientation int

const (
	Horizontal Orientation = iota // along a row
	Vertical                      // along a column
)

// step returns the unit offset for moving forward along the orientation
func (o Orientation) step() Position {
	if o == Horizontal {
		return Position{Col: 1}
	}
	return Position{Row: 1}
}

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}
