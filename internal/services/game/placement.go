package game

import (
	"slices"

	"github.com/mcoot/scrabblegame-go/internal/model"
)

// validatePlacement runs every placement rule in order without touching state
func (g *Game) validatePlacement(player *model.Player, placements []model.Placement) error {
	if err := g.validateTileCount(len(placements)); err != nil {
		return err
	}

	positions := make([]model.Position, len(placements))
	tileIDs := make([]string, len(placements))
	for i, p := range placements {
		positions[i] = p.Position
		tileIDs[i] = p.TileID
	}

	if dup, ok := firstDuplicate(tileIDs); ok {
		return model.NewGameError(model.ErrInvalidMove,
			"Each tile can be used only once per move.",
			model.Details{"tile_id": dup})
	}
	if dup, ok := firstDuplicate(positions); ok {
		return model.NewGameError(model.ErrInvalidMove,
			"Tiles must be placed on distinct fields.",
			model.Details{"position": dup})
	}

	if err := g.checkFieldsAvailable(positions); err != nil {
		return err
	}
	if err := checkOneLine(positions); err != nil {
		return err
	}
	if err := g.checkContinuous(positions); err != nil {
		return err
	}
	if err := g.checkConnected(positions); err != nil {
		return err
	}

	if missing := player.MissingTiles(tileIDs); len(missing) > 0 {
		return model.NewGameError(model.ErrInvalidOperation,
			"Tiles do not belong to player.",
			model.Details{"tile_ids": missing})
	}

	return g.checkBlankSymbols(player, placements)
}

func (g *Game) checkFieldsAvailable(positions []model.Position) error {
	for _, pos := range positions {
		field, err := g.board.Field(pos)
		if err != nil {
			return model.NewGameError(model.ErrInvalidMove,
				"Field does not exist on board.",
				model.Details{
					"position":   pos,
					"board_size": map[string]int{"rows": g.board.Rows(), "columns": g.board.Cols()},
				})
		}
		if field.Occupied() {
			return model.NewGameError(model.ErrInvalidMove,
				"Field is already occupied.",
				model.Details{"position": pos, "tile_id": field.Tile.ID})
		}
	}
	return nil
}

func checkOneLine(positions []model.Position) error {
	sameRow, sameCol := true, true
	for _, pos := range positions[1:] {
		sameRow = sameRow && pos.Row == positions[0].Row
		sameCol = sameCol && pos.Col == positions[0].Col
	}
	if !sameRow && !sameCol {
		return model.NewGameError(model.ErrInvalidMove,
			"Tiles must be placed in one line, horizontally or vertically.",
			model.Details{"positions": positions})
	}
	return nil
}

// checkContinuous requires every cell between the outermost placed tiles
// to be either newly placed or already occupied
func (g *Game) checkContinuous(positions []model.Position) error {
	first, last := positions[0], positions[0]
	for _, pos := range positions {
		first = model.Position{Row: min(first.Row, pos.Row), Col: min(first.Col, pos.Col)}
		last = model.Position{Row: max(last.Row, pos.Row), Col: max(last.Col, pos.Col)}
	}

	for row := first.Row; row <= last.Row; row++ {
		for col := first.Col; col <= last.Col; col++ {
			pos := model.Position{Row: row, Col: col}
			if !slices.Contains(positions, pos) && !g.board.Occupied(pos) {
				return model.NewGameError(model.ErrInvalidMove,
					"Tiles must be placed in a continuous line.",
					model.Details{"empty_position": pos})
			}
		}
	}
	return nil
}

// checkConnected enforces the first-or-connects rule
func (g *Game) checkConnected(positions []model.Position) error {
	if g.board.IsEmpty() {
		center, err := g.board.CenterField()
		if err != nil {
			return model.NewGameError(model.ErrGameInternal, "Board has no center field.", nil)
		}
		if !slices.Contains(positions, center.Position) {
			return model.NewGameError(model.ErrInvalidMove,
				"First placement must go through the center field.",
				model.Details{"center_field": center.Position, "positions": positions})
		}
		return nil
	}

	for _, pos := range positions {
		for _, n := range pos.Neighbours() {
			if g.board.Occupied(n) {
				return nil
			}
		}
	}
	return model.NewGameError(model.ErrInvalidMove,
		"Tiles must be placed next to already placed tiles.",
		model.Details{"positions": positions})
}

func (g *Game) checkBlankSymbols(player *model.Player, placements []model.Placement) error {
	for _, p := range placements {
		tile, _ := player.Tile(p.TileID)
		switch {
		case !tile.IsBlank() && p.BlankSymbol != "":
			return model.NewGameError(model.ErrInvalidOperation,
				"Only blank tiles can be assigned a symbol.",
				model.Details{"tile_id": tile.ID, "symbol": p.BlankSymbol})
		case tile.IsBlank() && p.BlankSymbol != "" && !g.bag.ValidSymbol(p.BlankSymbol):
			return model.NewGameError(model.ErrInvalidOperation,
				"Invalid symbol for blank tile.",
				model.Details{"tile_id": tile.ID, "symbol": p.BlankSymbol, "valid_symbols": g.bag.Symbols()})
		}
	}
	return nil
}

// commitPlacement applies a validated placement
func (g *Game) commitPlacement(player *model.Player, placements []model.Placement) (*MoveResult, error) {
	tiles := make(map[model.Position]*model.Tile, len(placements))
	positions := make([]model.Position, 0, len(placements))
	tileIDs := make([]string, 0, len(placements))
	for _, p := range placements {
		tile, _ := player.Tile(p.TileID)
		if tile.IsBlank() {
			tile.BlankSymbol = p.BlankSymbol
		}
		tiles[p.Position] = tile
		positions = append(positions, p.Position)
		tileIDs = append(tileIDs, p.TileID)
	}

	g.board.PlaceTiles(tiles)

	score, err := g.scoring.ScorePlacement(g.board, positions, g.config)
	if err != nil {
		// positions were validated, so this is an invariant violation
		return nil, model.NewGameError(model.ErrGameInternal, "Failed to score placement.",
			model.Details{"positions": positions})
	}

	player.AddScore(score.Total)
	player.ReplaceTiles(tileIDs, g.bag.Draw(len(placements)))
	g.scoreless = 0

	if g.bag.RemainingCount() == 0 && len(player.Tiles) == 0 {
		g.finish("player used last tiles")
	}

	return &MoveResult{
		Kind:      model.MovePlace,
		Score:     score.Total,
		TileCount: len(placements),
		Words:     score.WordTexts(),
		Bingo:     score.Bingo,
	}, nil
}
