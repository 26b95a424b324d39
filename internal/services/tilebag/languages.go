package tilebag

import (
	"fmt"

	"github.com/mcoot/scrabblegame-go/internal/model"
)

// LetterSpec describes one row of a language's tile table
type LetterSpec struct {
	Symbol string
	Points int
	Count  int
}

var polish = []LetterSpec{
	{model.BlankSymbol, 0, 2},

	{"A", 1, 9}, {"E", 1, 7}, {"I", 1, 8}, {"N", 1, 5}, {"O", 1, 6},
	{"R", 1, 4}, {"S", 1, 4}, {"W", 1, 4}, {"Z", 1, 5},

	{"C", 2, 3}, {"D", 2, 3}, {"K", 2, 3}, {"L", 2, 3}, {"M", 2, 3},
	{"P", 2, 3}, {"T", 2, 3}, {"Y", 2, 4},

	{"B", 3, 2}, {"G", 3, 2}, {"H", 3, 2}, {"J", 3, 2}, {"Ł", 3, 2}, {"U", 3, 2},

	{"Ą", 5, 1}, {"Ę", 5, 1}, {"F", 5, 1}, {"Ó", 5, 1}, {"Ś", 5, 1}, {"Ż", 5, 1},

	{"Ć", 6, 1},
	{"Ń", 7, 1},
	{"Ź", 9, 1},
}

// Letters returns the tile table for a language
func Letters(lang model.Language) ([]LetterSpec, error) {
	switch lang {
	case model.LanguagePolish:
		return polish, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedLanguage, lang)
	}
}
