package model

import "slices"

// PlayerID uniquely identifies a player within a room
type PlayerID string

// Player is a game participant: identity, rack and per-turn score log
type Player struct {
	ID     PlayerID
	Name   string
	Tiles  []*Tile // rack
	Scores []int   // one entry per completed turn
}

// NewPlayer creates a player with an empty rack
func NewPlayer(id PlayerID, name string) *Player {
	return &Player{ID: id, Name: name, Tiles: []*Tile{}, Scores: []int{}}
}

// TotalScore returns the sum of the score log
func (p *Player) TotalScore() int {
	total := 0
	for _, s := range p.Scores {
		total += s
	}
	return total
}

// Tile returns the rack tile with the given id
func (p *Player) Tile(id string) (*Tile, bool) {
	for _, t := range p.Tiles {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// MissingTiles returns the ids not present on the rack, in input order
func (p *Player) MissingTiles(ids []string) []string {
	var missing []string
	for _, id := range ids {
		if _, ok := p.Tile(id); !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// AddScore appends one turn's score
func (p *Player) AddScore(score int) {
	p.Scores = append(p.Scores, score)
}

// AddTiles puts tiles on the rack
func (p *Player) AddTiles(tiles []*Tile) {
	p.Tiles = append(p.Tiles, tiles...)
}

// RemoveTiles takes the tiles with the given ids off the rack
func (p *Player) RemoveTiles(ids []string) {
	p.Tiles = slices.DeleteFunc(p.Tiles, func(t *Tile) bool {
		return slices.Contains(ids, t.ID)
	})
}

// ReplaceTiles swaps the given rack tiles for new ones
func (p *Player) ReplaceTiles(old []string, replacements []*Tile) {
	p.RemoveTiles(old)
	p.AddTiles(replacements)
}
