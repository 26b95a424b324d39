package game

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mcoot/scrabblegame-go/internal/dependencies/random"
	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/services/scoring"
	"github.com/mcoot/scrabblegame-go/internal/services/tilebag"
)

// Game is the rules engine of one match: board, players, bag and turn
// counter. It is not safe for concurrent use; the owning room serializes
// access.
type Game struct {
	config  model.GameConfig
	board   *model.Board
	bag     *tilebag.Bag
	players []*model.Player
	state   model.GameState

	moveCount int
	scoreless int // consecutive skips and exchanges

	scoring *scoring.Service
	random  random.Random
	logger  *slog.Logger
}

// New creates a not-started game with an empty board and a full bag
func New(cfg model.GameConfig, scoringService *scoring.Service, random random.Random, logger *slog.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	board, err := model.NewBoard(cfg.Layout)
	if err != nil {
		return nil, err
	}

	bag, err := tilebag.New(cfg.Language, random)
	if err != nil {
		return nil, err
	}

	return &Game{
		config:  cfg,
		board:   board,
		bag:     bag,
		players: []*model.Player{},
		state:   model.GameStateNotStarted,
		scoring: scoringService,
		random:  random,
		logger:  logger,
	}, nil
}

// Config returns the rules of the game
func (g *Game) Config() model.GameConfig {
	return g.config
}

// Board returns the board
func (g *Game) Board() *model.Board {
	return g.board
}

// State returns the current phase
func (g *Game) State() model.GameState {
	return g.state
}

// Players returns the players in turn order
func (g *Game) Players() []*model.Player {
	return slices.Clone(g.players)
}

// Player returns the registered player with the given id
func (g *Game) Player(id model.PlayerID) (*model.Player, bool) {
	for _, p := range g.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// MoveCount returns the number of committed moves
func (g *Game) MoveCount() int {
	return g.moveCount
}

// RoundCount returns the 1-based round number, or 0 before the game starts
func (g *Game) RoundCount() int {
	if g.state == model.GameStateNotStarted || len(g.players) == 0 {
		return 0
	}
	return g.moveCount/len(g.players) + 1
}

// RemainingTiles returns the number of tiles left in the bag
func (g *Game) RemainingTiles() int {
	return g.bag.RemainingCount()
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() (*model.Player, error) {
	if err := g.checkInProgress(); err != nil {
		return nil, err
	}
	return g.players[g.moveCount%len(g.players)], nil
}

// AddPlayer registers a player before the game starts
func (g *Game) AddPlayer(player *model.Player) error {
	if g.state != model.GameStateNotStarted {
		return model.NewGameError(model.ErrInvalidOperation,
			"Cannot add players after the game has started.",
			model.Details{"player_id": player.ID, "player_name": player.Name})
	}
	if _, ok := g.Player(player.ID); ok {
		return model.NewGameError(model.ErrPlayerAlreadyExists,
			fmt.Sprintf("Player %s already exists.", player.Name),
			model.Details{"player_id": player.ID, "player_name": player.Name})
	}

	g.players = append(g.players, player)
	return nil
}

// Start deals racks, fixes a random turn order and opens the first turn
func (g *Game) Start() error {
	if g.state != model.GameStateNotStarted {
		return model.NewGameError(model.ErrGameAlreadyStarted, "Game has already started.", nil)
	}

	count := len(g.players)
	if count < g.config.MinPlayers {
		return model.NewGameError(model.ErrGameStartFailure,
			fmt.Sprintf("Not enough players to start the game. Minimum is %d.", g.config.MinPlayers),
			model.Details{"players": count, "min_players": g.config.MinPlayers})
	}
	if count > g.config.MaxPlayers {
		return model.NewGameError(model.ErrGameStartFailure,
			fmt.Sprintf("Too many players to start the game. Maximum is %d.", g.config.MaxPlayers),
			model.Details{"players": count, "max_players": g.config.MaxPlayers})
	}

	needed := count * g.config.TilesPerRound
	if g.bag.RemainingCount() < needed {
		return model.NewGameError(model.ErrGameStartFailure,
			"Not enough tiles in the bag to start the game.",
			model.Details{
				"tiles":           g.bag.RemainingCount(),
				"needed_tiles":    needed,
				"players":         count,
				"tiles_per_round": g.config.TilesPerRound,
			})
	}

	g.shufflePlayers()
	for _, p := range g.players {
		p.AddTiles(g.bag.Draw(g.config.TilesPerRound))
	}

	g.moveCount = 0
	g.scoreless = 0
	g.state = model.GameStateInProgress

	g.logger.Info("game started",
		slog.Int("players", count),
		slog.Int("tiles_remaining", g.bag.RemainingCount()),
	)
	return nil
}

// Winners returns the players with the highest total score
func (g *Game) Winners() []*model.Player {
	var winners []*model.Player
	best := 0
	for _, p := range g.players {
		switch total := p.TotalScore(); {
		case len(winners) == 0 || total > best:
			winners = []*model.Player{p}
			best = total
		case total == best:
			winners = append(winners, p)
		}
	}
	return winners
}

// shufflePlayers randomises the turn order
func (g *Game) shufflePlayers() {
	g.random.Shuffle(len(g.players), func(i, j int) {
		g.players[i], g.players[j] = g.players[j], g.players[i]
	})
}

func (g *Game) checkInProgress() error {
	switch g.state {
	case model.GameStateNotStarted:
		return model.NewGameError(model.ErrGameNotInProgress, "Game has not started yet.", nil)
	case model.GameStateFinished:
		return model.NewGameError(model.ErrGameFinished, "Game has already finished.", nil)
	}
	return nil
}

// Interface for dependency injection
type GameInterface interface {
	Config() model.GameConfig
	Board() *model.Board
	State() model.GameState
	Players() []*model.Player
	Player(id model.PlayerID) (*model.Player, bool)
	MoveCount() int
	RoundCount() int
	RemainingTiles() int
	CurrentPlayer() (*model.Player, error)
	AddPlayer(player *model.Player) error
	Start() error
	Winners() []*model.Player
	PlaceTiles(playerID model.PlayerID, placements []model.Placement) (*MoveResult, error)
	ExchangeTiles(playerID model.PlayerID, tileIDs []string) (*MoveResult, error)
	SkipTurn(playerID model.PlayerID) (*MoveResult, error)
}

var _ GameInterface = (*Game)(nil)
