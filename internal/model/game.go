package model

import "fmt"

// GameState represents the current phase of a game
type GameState string

const (
	GameStateNotStarted GameState = "not_started"
	GameStateInProgress GameState = "in_progress"
	GameStateFinished   GameState = "finished"
)

// Language selects the tile set of a game
type Language string

const (
	LanguagePolish Language = "polish"
)

// Bingo bonus for using every tile of a turn in one placement
const BingoBonus = 50

// GameConfig holds the rules of one game
type GameConfig struct {
	TilesPerRound int
	MinPlayers    int
	MaxPlayers    int
	MinWordLength int
	Language      Language
	Layout        [][]FieldType
}

// DefaultGameConfig returns the standard rules on the standard board
func DefaultGameConfig() GameConfig {
	return GameConfig{
		TilesPerRound: 7,
		MinPlayers:    1,
		MaxPlayers:    4,
		MinWordLength: 2,
		Language:      LanguagePolish,
		Layout:        DefaultLayout(),
	}
}

// Validate checks the config for internal consistency
func (c GameConfig) Validate() error {
	switch {
	case c.TilesPerRound < 1:
		return fmt.Errorf("%w: tiles per round must be at least 1, got %d", ErrInvalidConfig, c.TilesPerRound)
	case c.MinPlayers < 1:
		return fmt.Errorf("%w: min players must be at least 1, got %d", ErrInvalidConfig, c.MinPlayers)
	case c.MaxPlayers < c.MinPlayers:
		return fmt.Errorf("%w: max players %d below min players %d", ErrInvalidConfig, c.MaxPlayers, c.MinPlayers)
	case c.MinWordLength < 1:
		return fmt.Errorf("%w: min word length must be at least 1, got %d", ErrInvalidConfig, c.MinWordLength)
	case c.MinWordLength > c.TilesPerRound:
		return fmt.Errorf("%w: min word length %d exceeds tiles per round %d", ErrInvalidConfig, c.MinWordLength, c.TilesPerRound)
	}
	if err := ValidateLayout(c.Layout); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(c.Layout)%2 == 0 || len(c.Layout[0])%2 == 0 {
		return fmt.Errorf("%w: board needs odd dimensions to have a center field", ErrInvalidConfig)
	}
	return nil
}

// MoveKind identifies one of the three move types
type MoveKind string

const (
	MovePlace    MoveKind = "place"
	MoveExchange MoveKind = "exchange"
	MoveSkip     MoveKind = "skip"
)
