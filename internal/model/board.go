package model

import "fmt"

// Board is the shared playing surface of one game
type Board struct {
	grid *Grid[*Field]
}

// NewBoard creates an empty board from a row-major matrix of field types
func NewBoard(layout [][]FieldType) (*Board, error) {
	if err := ValidateLayout(layout); err != nil {
		return nil, err
	}

	rows := make([][]*Field, len(layout))
	for r, types := range layout {
		rows[r] = make([]*Field, len(types))
		for c, t := range types {
			rows[r][c] = &Field{Position: Position{Row: r, Col: c}, Type: t}
		}
	}

	grid, err := NewGrid(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}
	return &Board{grid: grid}, nil
}

// ValidateLayout checks that a layout is non-empty, rectangular and uses known field types
func ValidateLayout(layout [][]FieldType) error {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return fmt.Errorf("%w: layout is empty", ErrInvalidLayout)
	}
	for r, row := range layout {
		if len(row) != len(layout[0]) {
			return fmt.Errorf("%w: row %d has %d fields, expected %d", ErrInvalidLayout, r, len(row), len(layout[0]))
		}
		for c, t := range row {
			if !t.Valid() {
				return fmt.Errorf("%w: unknown field type %d at (%d, %d)", ErrInvalidLayout, t, r, c)
			}
		}
	}
	return nil
}

// Rows returns the number of rows
func (b *Board) Rows() int {
	return b.grid.Rows()
}

// Cols returns the number of columns
func (b *Board) Cols() int {
	return b.grid.Cols()
}

// Contains reports whether the position is on the board
func (b *Board) Contains(pos Position) bool {
	return b.grid.Contains(pos.Row, pos.Col)
}

// Field returns the field at the given position
func (b *Board) Field(pos Position) (*Field, error) {
	field, err := b.grid.Get(pos.Row, pos.Col)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, pos)
	}
	return field, nil
}

// Occupied reports whether the position is on the board and holds a tile
func (b *Board) Occupied(pos Position) bool {
	field, err := b.Field(pos)
	return err == nil && field.Occupied()
}

// CenterField returns the single center field; boards with an even dimension have none
func (b *Board) CenterField() (*Field, error) {
	if b.Rows()%2 == 0 || b.Cols()%2 == 0 {
		return nil, fmt.Errorf("%w: %dx%d board", ErrNoCenterField, b.Rows(), b.Cols())
	}
	return b.Field(Position{Row: b.Rows() / 2, Col: b.Cols() / 2})
}

// Fields returns every field in row-major order
func (b *Board) Fields() []*Field {
	fields := make([]*Field, 0, b.Rows()*b.Cols())
	for _, f := range b.grid.All() {
		fields = append(fields, f)
	}
	return fields
}

// IsEmpty reports whether no tile has been placed yet
func (b *Board) IsEmpty() bool {
	for _, f := range b.grid.All() {
		if f.Occupied() {
			return false
		}
	}
	return true
}

// LineScan returns the contiguous run of occupied fields through start
// along the given orientation, ordered by increasing coordinate. The start
// field is always included.
func (b *Board) LineScan(start Position, o Orientation) ([]*Field, error) {
	first, err := b.Field(start)
	if err != nil {
		return nil, err
	}

	step := o.step()

	// walk backwards to the first occupied field of the run
	head := start
	for {
		prev := Position{Row: head.Row - step.Row, Col: head.Col - step.Col}
		if !b.Occupied(prev) {
			break
		}
		head = prev
	}

	var run []*Field
	for pos := head; ; pos = (Position{Row: pos.Row + step.Row, Col: pos.Col + step.Col}) {
		if pos == start {
			run = append(run, first)
			continue
		}
		if !b.Occupied(pos) {
			break
		}
		field, _ := b.Field(pos)
		run = append(run, field)
	}
	return run, nil
}

// PlaceTiles writes tiles to their positions and marks them recently placed.
// Legality is checked by the engine before calling this.
func (b *Board) PlaceTiles(tiles map[Position]*Tile) {
	for pos, tile := range tiles {
		field, err := b.Field(pos)
		if err != nil {
			continue
		}
		field.Tile = tile
		field.RecentlyPlaced = true
	}
}

// ClearRecentlyPlaced resets the recently placed flag on every field
func (b *Board) ClearRecentlyPlaced() {
	for _, f := range b.grid.All() {
		f.RecentlyPlaced = false
	}
}

// DefaultLayout returns the standard 15x15 bonus layout
func DefaultLayout() [][]FieldType {
	const (
		s  = FieldStandard
		dl = FieldDoubleLetter
		tl = FieldTripleLetter
		dw = FieldDoubleWord
		tw = FieldTripleWord
	)
	return [][]FieldType{
		{tw, s, s, dl, s, s, s, tw, s, s, s, dl, s, s, tw},
		{s, dw, s, s, s, tl, s, s, s, tl, s, s, s, dw, s},
		{s, s, dw, s, s, s, dl, s, dl, s, s, s, dw, s, s},
		{dl, s, s, dw, s, s, s, dl, s, s, s, dw, s, s, dl},
		{s, s, s, s, dw, s, s, s, s, s, dw, s, s, s, s},
		{s, tl, s, s, s, tl, s, s, s, tl, s, s, s, tl, s},
		{s, s, dl, s, s, s, dl, s, dl, s, s, s, dl, s, s},
		{tw, s, s, dl, s, s, s, dw, s, s, s, dl, s, s, tw},
		{s, s, dl, s, s, s, dl, s, dl, s, s, s, dl, s, s},
		{s, tl, s, s, s, tl, s, s, s, tl, s, s, s, tl, s},
		{s, s, s, s, dw, s, s, s, s, s, dw, s, s, s, s},
		{dl, s, s, dw, s, s, s, dl, s, s, s, dw, s, s, dl},
		{s, s, dw, s, s, s, dl, s, dl, s, s, s, dw, s, s},
		{s, dw, s, s, s, tl, s, s, s, tl, s, s, s, dw, s},
		{tw, s, s, dl, s, s, s, tw, s, s, s, dl, s, s, tw},
	}
}
