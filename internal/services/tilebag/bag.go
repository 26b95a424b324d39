package tilebag

import (
	"slices"

	"github.com/google/uuid"

	"github.com/mcoot/scrabblegame-go/internal/dependencies/random"
	"github.com/mcoot/scrabblegame-go/internal/model"
)

// Bag is the consumable multiset of tiles of one game
type Bag struct {
	all       []*model.Tile
	remaining []*model.Tile
	symbols   []string // non-blank symbols, table order
	random    random.Random
}

// New creates a full bag for the given language
func New(lang model.Language, random random.Random) (*Bag, error) {
	letters, err := Letters(lang)
	if err != nil {
		return nil, err
	}

	b := &Bag{random: random}
	for _, l := range letters {
		if l.Symbol != model.BlankSymbol {
			b.symbols = append(b.symbols, l.Symbol)
		}
		for range l.Count {
			b.all = append(b.all, &model.Tile{
				ID:     uuid.NewString(),
				Symbol: l.Symbol,
				Points: l.Points,
			})
		}
	}
	b.remaining = slices.Clone(b.all)

	return b, nil
}

// Size returns the number of tiles the bag was created with
func (b *Bag) Size() int {
	return len(b.all)
}

// RemainingCount returns the number of tiles left to draw
func (b *Bag) RemainingCount() int {
	return len(b.remaining)
}

// Symbols returns the letters a blank tile may stand for
func (b *Bag) Symbols() []string {
	return slices.Clone(b.symbols)
}

// ValidSymbol reports whether a blank may be assigned the symbol
func (b *Bag) ValidSymbol(symbol string) bool {
	return slices.Contains(b.symbols, symbol)
}

// Draw removes up to n tiles chosen uniformly at random. It returns fewer
// tiles when the bag runs low and never fails.
func (b *Bag) Draw(n int) []*model.Tile {
	n = min(n, len(b.remaining))
	drawn := make([]*model.Tile, 0, max(n, 0))
	for range n {
		idx := b.random.Intn(len(b.remaining))
		last := len(b.remaining) - 1
		drawn = append(drawn, b.remaining[idx])
		b.remaining[idx] = b.remaining[last]
		b.remaining[last] = nil
		b.remaining = b.remaining[:last]
	}
	return drawn
}

// Exchange draws replacements for the given tiles, then returns the given
// tiles to the bag. The returned tiles cannot be redrawn by the same call.
func (b *Bag) Exchange(tiles []*model.Tile) []*model.Tile {
	drawn := b.Draw(len(tiles))
	for _, t := range tiles {
		t.BlankSymbol = ""
		b.remaining = append(b.remaining, t)
	}
	return drawn
}
