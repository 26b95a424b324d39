package tilebag

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrabblegame-go/internal/dependencies/mocks"
	"github.com/mcoot/scrabblegame-go/internal/model"
)

type BagSuite struct {
	suite.Suite
	random *mocks.MockRandom
	bag    *Bag
}

func TestBagSuite(t *testing.T) {
	suite.Run(t, new(BagSuite))
}

func (s *BagSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	bag, err := New(model.LanguagePolish, s.random)
	s.Require().NoError(err)
	s.bag = bag
}

func (s *BagSuite) TestPolishBagComposition() {
	s.Equal(100, s.bag.Size())
	s.Equal(100, s.bag.RemainingCount())

	counts := make(map[string]int)
	points := 0
	for _, t := range s.bag.all {
		counts[t.Symbol]++
		points += t.Points
	}
	s.Equal(2, counts[model.BlankSymbol])
	s.Equal(9, counts["A"])
	s.Equal(1, counts["Ź"])
	s.Len(counts, 33)
	s.Equal(190, points)
}

func (s *BagSuite) TestTileIDsAreUnique() {
	seen := make(map[string]bool)
	for _, t := range s.bag.all {
		s.False(seen[t.ID], "duplicate id %s", t.ID)
		seen[t.ID] = true
	}
}

func (s *BagSuite) TestUnsupportedLanguage() {
	_, err := New(model.Language("klingon"), s.random)
	s.ErrorIs(err, model.ErrUnsupportedLanguage)
}

func (s *BagSuite) TestSymbolsExcludeBlank() {
	symbols := s.bag.Symbols()
	s.Len(symbols, 32)
	s.NotContains(symbols, model.BlankSymbol)
	s.True(s.bag.ValidSymbol("Ż"))
	s.False(s.bag.ValidSymbol(model.BlankSymbol))
	s.False(s.bag.ValidSymbol("Q"))
}

// Draw tests

func (s *BagSuite) TestDrawRemovesTiles() {
	tiles := s.bag.Draw(7)
	s.Len(tiles, 7)
	s.Equal(93, s.bag.RemainingCount())

	for _, drawn := range tiles {
		for _, left := range s.bag.remaining {
			s.NotSame(drawn, left)
		}
	}
}

func (s *BagSuite) TestDrawUsesRandomIndex() {
	s.random.QueueIntn(2)
	expected := s.bag.remaining[2]

	tiles := s.bag.Draw(1)
	s.Same(expected, tiles[0])
}

func (s *BagSuite) TestDrawReturnsFewerWhenLow() {
	s.bag.Draw(98)

	tiles := s.bag.Draw(7)
	s.Len(tiles, 2)
	s.Equal(0, s.bag.RemainingCount())
	s.Empty(s.bag.Draw(1))
}

// Exchange tests

func (s *BagSuite) TestExchangeKeepsCount() {
	hand := s.bag.Draw(5)
	before := s.bag.RemainingCount()

	replacements := s.bag.Exchange(hand)
	s.Len(replacements, 5)
	s.Equal(before, s.bag.RemainingCount())

	for _, r := range replacements {
		for _, h := range hand {
			s.NotSame(h, r)
		}
	}
}

func (s *BagSuite) TestExchangeReturnsTilesToBag() {
	hand := s.bag.Draw(3)
	s.bag.Exchange(hand)

	for _, h := range hand {
		s.Contains(s.bag.remaining, h)
	}
}
