package game

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/scrabblegame-go/internal/dependencies/mocks"
	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/services/scoring"
	"github.com/mcoot/scrabblegame-go/internal/testutil"
)

type MovesSuite struct {
	suite.Suite
	random *mocks.MockRandom
	game   *Game
	alice  *model.Player
	bob    *model.Player
}

func TestMovesSuite(t *testing.T) {
	suite.Run(t, new(MovesSuite))
}

func (s *MovesSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	g, err := New(model.DefaultGameConfig(), scoring.New(), s.random, testutil.NopLogger())
	s.Require().NoError(err)
	s.game = g

	s.alice = model.NewPlayer("p-alice", "Alice")
	s.bob = model.NewPlayer("p-bob", "Bob")
	s.Require().NoError(s.game.AddPlayer(s.alice))
	s.Require().NoError(s.game.AddPlayer(s.bob))
	s.random.QueueIntn(1)
	s.Require().NoError(s.game.Start())
}

// rack replaces a player's rack with known tiles
func (s *MovesSuite) rack(player *model.Player, tiles ...*model.Tile) {
	player.Tiles = tiles
}

func tile(id, symbol string, points int) *model.Tile {
	return &model.Tile{ID: id, Symbol: symbol, Points: points}
}

func at(id string, row, col int) model.Placement {
	return model.Placement{TileID: id, Position: model.Position{Row: row, Col: col}}
}

// preoccupy writes a tile straight onto the board as if played earlier
func (s *MovesSuite) preoccupy(row, col int) {
	s.game.Board().PlaceTiles(map[model.Position]*model.Tile{
		{Row: row, Col: col}: tile("old", "O", 1),
	})
	s.game.Board().ClearRecentlyPlaced()
}

func (s *MovesSuite) requireGameError(err error, kind error, message string) *model.GameError {
	s.Require().ErrorIs(err, kind)
	var gameErr *model.GameError
	s.Require().ErrorAs(err, &gameErr)
	if message != "" {
		s.Equal(message, gameErr.Message)
	}
	return gameErr
}

// PlaceTiles tests

func (s *MovesSuite) TestPlaceScoresAndRefillsRack() {
	s.rack(s.alice, tile("a", "A", 1), tile("e", "E", 1), tile("k", "K", 2))
	remaining := s.game.RemainingTiles()

	result, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 7, 7), at("e", 7, 8)})
	s.Require().NoError(err)

	// (7, 7) is a double word field
	s.Equal(4, result.Score)
	s.Equal([]string{"AE"}, result.Words)
	s.Equal(model.MovePlace, result.Kind)
	s.Equal([]int{4}, s.alice.Scores)
	s.Len(s.alice.Tiles, 3)
	s.Equal(remaining-2, s.game.RemainingTiles())
	_, held := s.alice.Tile("a")
	s.False(held)

	s.Equal(1, s.game.MoveCount())
	field, _ := s.game.Board().Field(model.Position{Row: 7, Col: 7})
	s.Equal("a", field.Tile.ID)
	s.False(field.RecentlyPlaced)
}

func (s *MovesSuite) TestFirstMoveMustCoverCenter() {
	s.rack(s.alice, tile("a", "A", 1))

	_, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 0, 0)})
	gameErr := s.requireGameError(err, model.ErrInvalidMove, "First placement must go through the center field.")
	s.Equal(model.Position{Row: 7, Col: 7}, gameErr.Details["center_field"])

	_, err = s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 7, 7)})
	s.Require().NoError(err)
}

func (s *MovesSuite) TestPlacementMustBeContinuous() {
	s.rack(s.alice, tile("a", "A", 1), tile("b", "B", 3))

	_, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 0, 0), at("b", 0, 2)})
	gameErr := s.requireGameError(err, model.ErrInvalidMove, "Tiles must be placed in a continuous line.")
	s.Equal(model.Position{Row: 0, Col: 1}, gameErr.Details["empty_position"])
}

func (s *MovesSuite) TestPlacementBridgingOccupiedFieldIsContinuous() {
	s.preoccupy(0, 1)
	s.rack(s.alice, tile("a", "A", 1), tile("b", "B", 3))

	result, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 0, 0), at("b", 0, 2)})
	s.Require().NoError(err)
	s.Equal([]string{"AOB"}, result.Words)
	// (0, 0) is triple word
	s.Equal((1+1+3)*3, result.Score)
}

func (s *MovesSuite) TestLaterMovesMustConnect() {
	s.preoccupy(7, 7)
	s.rack(s.alice, tile("a", "A", 1), tile("b", "B", 3))

	_, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 3, 3), at("b", 3, 4)})
	s.requireGameError(err, model.ErrInvalidMove, "Tiles must be placed next to already placed tiles.")

	_, err = s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 7, 8), at("b", 7, 9)})
	s.Require().NoError(err)
}

func (s *MovesSuite) TestPlacementMustBeInOneLine() {
	s.rack(s.alice, tile("a", "A", 1), tile("b", "B", 3))

	_, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 7, 7), at("b", 8, 8)})
	s.requireGameError(err, model.ErrInvalidMove, "Tiles must be placed in one line, horizontally or vertically.")
}

func (s *MovesSuite) TestPlacementRejectsMissingField() {
	s.rack(s.alice, tile("a", "A", 1))

	_, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 15, 7)})
	gameErr := s.requireGameError(err, model.ErrInvalidMove, "Field does not exist on board.")
	s.Equal(model.Position{Row: 15, Col: 7}, gameErr.Details["position"])
}

func (s *MovesSuite) TestPlacementRejectsOccupiedField() {
	s.preoccupy(7, 7)
	s.rack(s.alice, tile("a", "A", 1))

	_, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 7, 7)})
	gameErr := s.requireGameError(err, model.ErrInvalidMove, "Field is already occupied.")
	s.Equal("old", gameErr.Details["tile_id"])
}

func (s *MovesSuite) TestPlacementRejectsEmptyAndOversized() {
	_, err := s.game.PlaceTiles(s.alice.ID, nil)
	s.requireGameError(err, model.ErrInvalidMove, "No tiles provided.")

	placements := make([]model.Placement, 8)
	for i := range placements {
		placements[i] = at(string(rune('a'+i)), 7, i)
	}
	_, err = s.game.PlaceTiles(s.alice.ID, placements)
	gameErr := s.requireGameError(err, model.ErrInvalidMove, "Too many tiles provided.")
	s.Equal(7, gameErr.Details["max_tiles"])
	s.Equal(8, gameErr.Details["tiles"])
}

func (s *MovesSuite) TestPlacementRejectsDuplicates() {
	s.rack(s.alice, tile("a", "A", 1), tile("b", "B", 3))

	_, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 7, 7), at("a", 7, 8)})
	s.requireGameError(err, model.ErrInvalidMove, "Each tile can be used only once per move.")

	_, err = s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 7, 7), at("b", 7, 7)})
	s.requireGameError(err, model.ErrInvalidMove, "Tiles must be placed on distinct fields.")
}

func (s *MovesSuite) TestPlacementRejectsTilesNotOnRack() {
	s.rack(s.alice, tile("a", "A", 1))

	_, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 7, 7), at("zz", 7, 8)})
	gameErr := s.requireGameError(err, model.ErrInvalidOperation, "Tiles do not belong to player.")
	s.Equal([]string{"zz"}, gameErr.Details["tile_ids"])
}

func (s *MovesSuite) TestBlankSymbolAssignment() {
	s.rack(s.alice, tile("blank", model.BlankSymbol, 0), tile("a", "A", 1))

	bad := at("blank", 7, 7)
	bad.BlankSymbol = "Q"
	_, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{bad})
	gameErr := s.requireGameError(err, model.ErrInvalidOperation, "Invalid symbol for blank tile.")
	s.Contains(gameErr.Details["valid_symbols"], "Ż")

	notBlank := at("a", 7, 7)
	notBlank.BlankSymbol = "E"
	_, err = s.game.PlaceTiles(s.alice.ID, []model.Placement{notBlank})
	s.requireGameError(err, model.ErrInvalidOperation, "Only blank tiles can be assigned a symbol.")

	good := at("blank", 7, 7)
	good.BlankSymbol = "Ż"
	result, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{good, at("a", 7, 8)})
	s.Require().NoError(err)
	s.Equal([]string{"ŻA"}, result.Words)
	s.Equal(2, result.Score)

	field, _ := s.game.Board().Field(model.Position{Row: 7, Col: 7})
	s.Equal("Ż", field.Tile.Letter())
}

func (s *MovesSuite) TestBlankWithoutSymbolIsPlaced() {
	s.rack(s.alice, tile("blank", model.BlankSymbol, 0), tile("a", "A", 1))

	result, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("blank", 7, 7), at("a", 7, 8)})
	s.Require().NoError(err)
	s.Equal(2, result.Score)

	field, _ := s.game.Board().Field(model.Position{Row: 7, Col: 7})
	s.Require().NotNil(field.Tile)
	s.True(field.Tile.IsBlank())
	s.Empty(field.Tile.BlankSymbol)
}

func (s *MovesSuite) TestRejectedMoveLeavesStateUntouched() {
	s.rack(s.alice, tile("a", "A", 1), tile("b", "B", 3))
	remaining := s.game.RemainingTiles()

	attempts := [][]model.Placement{
		{at("a", 0, 0), at("b", 0, 2)},
		{at("a", 7, 7), at("b", 8, 8)},
		{at("a", 7, 7), at("missing", 7, 8)},
	}
	for _, placements := range attempts {
		_, err := s.game.PlaceTiles(s.alice.ID, placements)
		s.Require().Error(err)
	}

	s.Equal(0, s.game.MoveCount())
	s.True(s.game.Board().IsEmpty())
	s.Len(s.alice.Tiles, 2)
	s.Empty(s.alice.Scores)
	s.Equal(remaining, s.game.RemainingTiles())
}

func (s *MovesSuite) TestBingoBonus() {
	tiles := make([]*model.Tile, 7)
	placements := make([]model.Placement, 7)
	for i := range tiles {
		id := string(rune('a' + i))
		tiles[i] = tile(id, "A", 1)
		placements[i] = at(id, 7, 4+i)
	}
	s.rack(s.alice, tiles...)

	result, err := s.game.PlaceTiles(s.alice.ID, placements)
	s.Require().NoError(err)

	// only (7, 7) carries a bonus on this stretch
	s.True(result.Bingo)
	s.Equal(7*2+model.BingoBonus, result.Score)
	s.Len(s.alice.Tiles, 7)
}

func (s *MovesSuite) TestPlacementEmptyingBagAndRackFinishesGame() {
	s.game.bag.Draw(s.game.RemainingTiles())
	s.rack(s.alice, tile("a", "A", 1), tile("e", "E", 1))

	result, err := s.game.PlaceTiles(s.alice.ID, []model.Placement{at("a", 7, 7), at("e", 7, 8)})
	s.Require().NoError(err)

	s.True(result.Finished)
	s.Empty(s.alice.Tiles)
	s.Equal(model.GameStateFinished, s.game.State())
}

// ExchangeTiles tests

func (s *MovesSuite) TestExchangeIsScoreNeutral() {
	var rackIDs []string
	for _, t := range s.alice.Tiles {
		rackIDs = append(rackIDs, t.ID)
	}
	ids := rackIDs[:3]
	remaining := s.game.RemainingTiles()

	result, err := s.game.ExchangeTiles(s.alice.ID, ids)
	s.Require().NoError(err)

	s.Equal(model.MoveExchange, result.Kind)
	s.Equal([]int{0}, s.alice.Scores)
	s.Len(s.alice.Tiles, 7)
	s.Equal(remaining, s.game.RemainingTiles())
	s.Empty(s.alice.MissingTiles(rackIDs[3:]))
	s.Equal(ids, s.alice.MissingTiles(ids))
	s.Equal(1, s.game.MoveCount())
}

func (s *MovesSuite) TestExchangeValidation() {
	_, err := s.game.ExchangeTiles(s.alice.ID, nil)
	s.requireGameError(err, model.ErrInvalidMove, "No tiles provided.")

	_, err = s.game.ExchangeTiles(s.alice.ID, []string{"1", "2", "3", "4", "5", "6", "7", "8"})
	s.requireGameError(err, model.ErrInvalidMove, "Too many tiles provided.")

	_, err = s.game.ExchangeTiles(s.alice.ID, []string{"not-mine"})
	s.requireGameError(err, model.ErrInvalidOperation, "Tiles do not belong to player.")

	_, err = s.game.ExchangeTiles(s.bob.ID, []string{s.bob.Tiles[0].ID})
	s.requireGameError(err, model.ErrInvalidMove, "It is not your turn.")

	s.Equal(0, s.game.MoveCount())
	s.Empty(s.alice.Scores)
}

func (s *MovesSuite) TestExchangeNeedsEnoughTilesInBag() {
	s.game.bag.Draw(s.game.RemainingTiles() - 1)

	_, err := s.game.ExchangeTiles(s.alice.ID, []string{s.alice.Tiles[0].ID, s.alice.Tiles[1].ID})
	gameErr := s.requireGameError(err, model.ErrInvalidMove, "Not enough tiles in the bag to exchange.")
	s.Equal(1, gameErr.Details["remaining_tiles"])
	s.Len(s.alice.Tiles, 7)
}
