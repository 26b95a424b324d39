package game

import (
	"log/slog"

	"github.com/mcoot/scrabblegame-go/internal/model"
)

// MoveResult describes a committed move
type MoveResult struct {
	Kind       model.MoveKind
	PlayerID   model.PlayerID
	MoveNumber int // 1-based
	Score      int
	TileCount  int
	Words      []string
	Bingo      bool
	Finished   bool // the move ended the game
}

// PlaceTiles puts tiles from the acting player's rack on the board, scores
// the words formed and refills the rack.
func (g *Game) PlaceTiles(playerID model.PlayerID, placements []model.Placement) (*MoveResult, error) {
	return g.playerMove(playerID, func(player *model.Player) (*MoveResult, error) {
		if err := g.validatePlacement(player, placements); err != nil {
			return nil, err
		}
		return g.commitPlacement(player, placements)
	})
}

// ExchangeTiles swaps rack tiles for fresh ones from the bag
func (g *Game) ExchangeTiles(playerID model.PlayerID, tileIDs []string) (*MoveResult, error) {
	return g.playerMove(playerID, func(player *model.Player) (*MoveResult, error) {
		if err := g.validateTileCount(len(tileIDs)); err != nil {
			return nil, err
		}
		if dup, ok := firstDuplicate(tileIDs); ok {
			return nil, model.NewGameError(model.ErrInvalidMove,
				"Each tile can be used only once per move.",
				model.Details{"tile_id": dup})
		}
		if missing := player.MissingTiles(tileIDs); len(missing) > 0 {
			return nil, model.NewGameError(model.ErrInvalidOperation,
				"Tiles do not belong to player.",
				model.Details{"tile_ids": missing})
		}
		if g.bag.RemainingCount() < len(tileIDs) {
			return nil, model.NewGameError(model.ErrInvalidMove,
				"Not enough tiles in the bag to exchange.",
				model.Details{"tiles": len(tileIDs), "remaining_tiles": g.bag.RemainingCount()})
		}

		tiles := make([]*model.Tile, 0, len(tileIDs))
		for _, id := range tileIDs {
			t, _ := player.Tile(id)
			tiles = append(tiles, t)
		}

		player.AddScore(0)
		player.ReplaceTiles(tileIDs, g.bag.Exchange(tiles))
		g.recordScoreless()

		return &MoveResult{Kind: model.MoveExchange, TileCount: len(tileIDs)}, nil
	})
}

// SkipTurn passes the turn without playing
func (g *Game) SkipTurn(playerID model.PlayerID) (*MoveResult, error) {
	return g.playerMove(playerID, func(player *model.Player) (*MoveResult, error) {
		player.AddScore(0)
		g.recordScoreless()
		return &MoveResult{Kind: model.MoveSkip}, nil
	})
}

// playerMove runs the turn gate, the move body and the post-turn step. A
// body that fails must leave the game untouched.
func (g *Game) playerMove(playerID model.PlayerID, body func(*model.Player) (*MoveResult, error)) (*MoveResult, error) {
	player, err := g.checkTurn(playerID)
	if err != nil {
		return nil, err
	}

	result, err := body(player)
	if err != nil {
		g.logger.Debug("move rejected",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	g.afterTurn()

	result.PlayerID = player.ID
	result.MoveNumber = g.moveCount
	result.Finished = g.state == model.GameStateFinished

	g.logger.Info("move committed",
		slog.String("player_id", string(player.ID)),
		slog.String("kind", string(result.Kind)),
		slog.Int("score", result.Score),
		slog.Int("move_count", g.moveCount),
	)
	return result, nil
}

// checkTurn is the turn gate shared by all moves
func (g *Game) checkTurn(playerID model.PlayerID) (*model.Player, error) {
	if err := g.checkInProgress(); err != nil {
		return nil, err
	}

	player, ok := g.Player(playerID)
	if !ok {
		return nil, model.NewGameError(model.ErrPlayerNotFound,
			"Player not found in game.",
			model.Details{"player_id": playerID})
	}

	current := g.players[g.moveCount%len(g.players)]
	if current.ID != player.ID {
		return nil, model.NewGameError(model.ErrInvalidMove,
			"It is not your turn.",
			model.Details{
				"current_player_id":   current.ID,
				"current_player_name": current.Name,
				"player_id":           player.ID,
				"player_name":         player.Name,
			})
	}

	return player, nil
}

func (g *Game) afterTurn() {
	g.board.ClearRecentlyPlaced()
	g.moveCount++
}

// recordScoreless counts a skip or exchange; a full two rounds of them ends the game
func (g *Game) recordScoreless() {
	g.scoreless++
	if g.scoreless >= 2*len(g.players) {
		g.finish("all players passed")
	}
}

func (g *Game) finish(reason string) {
	g.state = model.GameStateFinished
	g.logger.Info("game finished",
		slog.String("reason", reason),
		slog.Int("move_count", g.moveCount+1),
	)
}

func (g *Game) validateTileCount(n int) error {
	if n == 0 {
		return model.NewGameError(model.ErrInvalidMove, "No tiles provided.", nil)
	}
	if n > g.config.TilesPerRound {
		return model.NewGameError(model.ErrInvalidMove,
			"Too many tiles provided.",
			model.Details{"max_tiles": g.config.TilesPerRound, "tiles": n})
	}
	return nil
}

func firstDuplicate[T comparable](values []T) (T, bool) {
	seen := make(map[T]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return v, true
		}
		seen[v] = true
	}
	var zero T
	return zero, false
}
