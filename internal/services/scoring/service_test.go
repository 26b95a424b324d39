package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrabblegame-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	cfg     model.GameConfig
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.cfg = model.DefaultGameConfig()
}

func (s *ServiceSuite) newBoard(layout [][]model.FieldType) *model.Board {
	board, err := model.NewBoard(layout)
	s.Require().NoError(err)
	return board
}

func uniform(size int, t model.FieldType) [][]model.FieldType {
	layout := make([][]model.FieldType, size)
	for r := range layout {
		layout[r] = make([]model.FieldType, size)
		for c := range layout[r] {
			layout[r][c] = t
		}
	}
	return layout
}

type letter struct {
	pos    model.Position
	symbol string
	points int
}

// put writes tiles as a committed earlier turn
func (s *ServiceSuite) put(board *model.Board, letters ...letter) {
	s.play(board, letters...)
	board.ClearRecentlyPlaced()
}

// play writes tiles as the current turn and returns their positions
func (s *ServiceSuite) play(board *model.Board, letters ...letter) []model.Position {
	tiles := make(map[model.Position]*model.Tile)
	positions := make([]model.Position, 0, len(letters))
	for i, l := range letters {
		tiles[l.pos] = &model.Tile{ID: string(rune('a' + i)), Symbol: l.symbol, Points: l.points}
		positions = append(positions, l.pos)
	}
	board.PlaceTiles(tiles)
	return positions
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

// ScorePlacement tests

func (s *ServiceSuite) TestTwoTilesOnDoubleLetterFields() {
	board := s.newBoard(uniform(3, model.FieldDoubleLetter))
	placed := s.play(board, letter{pos(1, 0), "A", 1}, letter{pos(1, 1), "E", 1})

	result, err := s.service.ScorePlacement(board, placed, s.cfg)
	s.Require().NoError(err)

	s.Require().Len(result.Words, 1)
	s.Equal("AE", result.Words[0].Text())
	s.Equal(4, result.Total)
	s.False(result.Bingo)
}

func (s *ServiceSuite) TestWordBonusMultipliesWholeWord() {
	layout := uniform(3, model.FieldStandard)
	layout[0][0] = model.FieldDoubleWord
	layout[0][2] = model.FieldTripleWord
	board := s.newBoard(layout)

	placed := s.play(board,
		letter{pos(0, 0), "K", 2},
		letter{pos(0, 1), "O", 1},
		letter{pos(0, 2), "T", 2},
	)

	result, err := s.service.ScorePlacement(board, placed, s.cfg)
	s.Require().NoError(err)
	s.Equal((2+1+2)*2*3, result.Total)
}

func (s *ServiceSuite) TestBonusesOfOldTilesDoNotReapply() {
	layout := uniform(3, model.FieldStandard)
	layout[1][0] = model.FieldTripleWord
	layout[1][1] = model.FieldTripleLetter
	board := s.newBoard(layout)

	s.put(board, letter{pos(1, 0), "D", 2}, letter{pos(1, 1), "O", 1})
	placed := s.play(board, letter{pos(1, 2), "M", 2})

	result, err := s.service.ScorePlacement(board, placed, s.cfg)
	s.Require().NoError(err)

	s.Require().Len(result.Words, 1)
	s.Equal("DOM", result.Words[0].Text())
	s.Equal(5, result.Total)
}

func (s *ServiceSuite) TestNewTileLetterBonusWithOldTiles() {
	layout := uniform(3, model.FieldStandard)
	layout[2][1] = model.FieldTripleLetter
	board := s.newBoard(layout)

	s.put(board, letter{pos(0, 1), "K", 2}, letter{pos(1, 1), "O", 1})
	placed := s.play(board, letter{pos(2, 1), "T", 2})

	result, err := s.service.ScorePlacement(board, placed, s.cfg)
	s.Require().NoError(err)
	s.Equal(2+1+2*3, result.Total)
}

func (s *ServiceSuite) TestPlacementFormingCrossWords() {
	board := s.newBoard(uniform(5, model.FieldStandard))

	s.put(board, letter{pos(1, 1), "A", 1}, letter{pos(1, 2), "B", 3})
	// "CD" horizontally under "AB" forms AC and BD vertically
	placed := s.play(board, letter{pos(2, 1), "C", 2}, letter{pos(2, 2), "D", 2})

	result, err := s.service.ScorePlacement(board, placed, s.cfg)
	s.Require().NoError(err)

	s.ElementsMatch([]string{"CD", "AC", "BD"}, result.WordTexts())
	s.Equal((2+2)+(1+2)+(3+2), result.Total)
}

func (s *ServiceSuite) TestSingleIsolatedTileFormsNoWord() {
	board := s.newBoard(uniform(3, model.FieldDoubleWord))
	placed := s.play(board, letter{pos(1, 1), "A", 1})

	result, err := s.service.ScorePlacement(board, placed, s.cfg)
	s.Require().NoError(err)
	s.Empty(result.Words)
	s.Equal(0, result.Total)
}

func (s *ServiceSuite) TestMinWordLengthFiltersShortRuns() {
	board := s.newBoard(uniform(5, model.FieldStandard))
	placed := s.play(board, letter{pos(0, 0), "A", 1}, letter{pos(0, 1), "B", 3})

	s.cfg.MinWordLength = 3
	result, err := s.service.ScorePlacement(board, placed, s.cfg)
	s.Require().NoError(err)
	s.Empty(result.Words)
}

func (s *ServiceSuite) TestBingoAddsFlatBonusAfterWordScores() {
	layout := uniform(3, model.FieldStandard)
	layout[0][0] = model.FieldDoubleWord
	board := s.newBoard(layout)

	s.cfg.TilesPerRound = 2
	placed := s.play(board, letter{pos(0, 0), "A", 1}, letter{pos(0, 1), "B", 3})

	result, err := s.service.ScorePlacement(board, placed, s.cfg)
	s.Require().NoError(err)
	s.True(result.Bingo)
	s.Equal((1+3)*2+model.BingoBonus, result.Total)
}

func (s *ServiceSuite) TestBlankScoresZeroButShowsAssignedLetter() {
	board := s.newBoard(uniform(3, model.FieldTripleLetter))
	tiles := map[model.Position]*model.Tile{
		pos(0, 0): {ID: "blank", Symbol: model.BlankSymbol, Points: 0, BlankSymbol: "Ż"},
		pos(0, 1): {ID: "a", Symbol: "A", Points: 1},
	}
	board.PlaceTiles(tiles)

	result, err := s.service.ScorePlacement(board, []model.Position{pos(0, 0), pos(0, 1)}, s.cfg)
	s.Require().NoError(err)
	s.Equal([]string{"ŻA"}, result.WordTexts())
	s.Equal(3, result.Total)
}

// ScoreWord tests

func (s *ServiceSuite) TestScoreWordEmpty() {
	s.Equal(0, ScoreWord(nil))
}
