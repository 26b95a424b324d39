package model

// BlankSymbol is the symbol printed on blank tiles before they are assigned a letter
const BlankSymbol = "?"

// Tile is a lettered piece. Identity, symbol and points never change after
// creation; only a blank's assigned symbol is set, once, when it is played.
type Tile struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	Points      int    `json:"points"`
	BlankSymbol string `json:"blank_symbol,omitempty"`
}

// IsBlank reports whether the tile is a wildcard
func (t *Tile) IsBlank() bool {
	return t.Points == 0
}

// Letter returns the symbol the tile stands for on the board
func (t *Tile) Letter() string {
	if t.IsBlank() && t.BlankSymbol != "" {
		return t.BlankSymbol
	}
	return t.Symbol
}

// Placement assigns one tile from a rack to a board position
type Placement struct {
	TileID      string
	Position    Position
	BlankSymbol string // only for blank tiles
}
