package model

// FieldType is the fixed bonus of a board cell
type FieldType int

const (
	FieldStandard FieldType = iota
	FieldDoubleLetter
	FieldTripleLetter
	FieldDoubleWord
	FieldTripleWord
)

// Valid reports whether the value is a known field type
func (t FieldType) Valid() bool {
	return t >= FieldStandard && t <= FieldTripleWord
}

func (t FieldType) String() string {
	switch t {
	case FieldDoubleLetter:
		return "double_letter"
	case FieldTripleLetter:
		return "triple_letter"
	case FieldDoubleWord:
		return "double_word"
	case FieldTripleWord:
		return "triple_word"
	default:
		return "standard"
	}
}

// LetterMultiplier returns the factor applied to a freshly placed tile's points
func LetterMultiplier(t FieldType) int {
	switch t {
	case FieldDoubleLetter:
		return 2
	case FieldTripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier returns the factor applied to a word covering a freshly placed tile
func WordMultiplier(t FieldType) int {
	switch t {
	case FieldDoubleWord:
		return 2
	case FieldTripleWord:
		return 3
	default:
		return 1
	}
}

// Field is one board cell
type Field struct {
	Position       Position
	Type           FieldType
	Tile           *Tile
	RecentlyPlaced bool // set during the turn the tile was placed
}

// Occupied reports whether a tile has been placed on the field
func (f *Field) Occupied() bool {
	return f.Tile != nil
}
