package scoring

import (
	"slices"
	"strings"

	"github.com/mcoot/scrabblegame-go/internal/model"
)

// Word is one contiguous run of tiles formed by a placement
type Word struct {
	Fields []*model.Field
	Score  int
}

// Text returns the letters of the word
func (w Word) Text() string {
	var sb strings.Builder
	for _, f := range w.Fields {
		if f.Tile != nil {
			sb.WriteString(f.Tile.Letter())
		}
	}
	return sb.String()
}

// Result is the complete scoring of one placement
type Result struct {
	Words []Word
	Bingo bool
	Total int
}

// WordTexts returns the letters of every scored word
func (r *Result) WordTexts() []string {
	texts := make([]string, 0, len(r.Words))
	for _, w := range r.Words {
		texts = append(texts, w.Text())
	}
	return texts
}

// Service provides scoring of tile placements
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// ScorePlacement discovers and scores the words formed by tiles just written
// to the given positions. The tiles must already be on the board and flagged
// as recently placed.
func (s *Service) ScorePlacement(board *model.Board, placed []model.Position, cfg model.GameConfig) (*Result, error) {
	words, err := s.FindWords(board, placed, cfg.MinWordLength)
	if err != nil {
		return nil, err
	}

	result := &Result{Words: words}
	for i := range result.Words {
		result.Words[i].Score = ScoreWord(result.Words[i].Fields)
		result.Total += result.Words[i].Score
	}

	if len(placed) == cfg.TilesPerRound {
		result.Bingo = true
		result.Total += model.BingoBonus
	}

	return result, nil
}

// FindWords returns one horizontal run per distinct row and one vertical run
// per distinct column among the placed positions, dropping runs shorter than
// minLength.
func (s *Service) FindWords(board *model.Board, placed []model.Position, minLength int) ([]Word, error) {
	var words []Word

	scan := func(key func(model.Position) int, o model.Orientation) error {
		seen := make(map[int]bool)
		for _, pos := range sortedPositions(placed) {
			if seen[key(pos)] {
				continue
			}
			seen[key(pos)] = true

			run, err := board.LineScan(pos, o)
			if err != nil {
				return err
			}
			if len(run) >= minLength {
				words = append(words, Word{Fields: run})
			}
		}
		return nil
	}

	if err := scan(func(p model.Position) int { return p.Row }, model.Horizontal); err != nil {
		return nil, err
	}
	if err := scan(func(p model.Position) int { return p.Col }, model.Vertical); err != nil {
		return nil, err
	}

	return words, nil
}

// ScoreWord scores a single word. Tiles already on the board count their
// raw points; freshly placed tiles take their field's letter bonus, and the
// word bonuses of freshly placed fields multiply the whole word.
func ScoreWord(fields []*model.Field) int {
	oldPoints, newPoints := 0, 0
	multiplier := 1

	for _, f := range fields {
		if f.Tile == nil {
			continue
		}
		if f.RecentlyPlaced {
			newPoints += f.Tile.Points * model.LetterMultiplier(f.Type)
			multiplier *= model.WordMultiplier(f.Type)
		} else {
			oldPoints += f.Tile.Points
		}
	}

	return (oldPoints + newPoints) * multiplier
}

func sortedPositions(positions []model.Position) []model.Position {
	sorted := slices.Clone(positions)
	slices.SortFunc(sorted, func(a, b model.Position) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return sorted
}

// Interface for dependency injection
type ServiceInterface interface {
	ScorePlacement(board *model.Board, placed []model.Position, cfg model.GameConfig) (*Result, error)
	FindWords(board *model.Board, placed []model.Position, minLength int) ([]Word, error)
}

var _ ServiceInterface = (*Service)(nil)
