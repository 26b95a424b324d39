package protocol

import (
	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/services/game"
)

// TileData is a tile on the wire. Position is only set on placements.
type TileData struct {
	ID          string          `json:"id"`
	Symbol      string          `json:"symbol,omitempty"`
	Points      int             `json:"points"`
	Position    *model.Position `json:"position,omitempty"`
	BlankSymbol string          `json:"blank_symbol,omitempty"`
}

// FieldData is one board field on the wire
type FieldData struct {
	Row    int             `json:"row"`
	Column int             `json:"column"`
	Type   model.FieldType `json:"type"`
	Tile   *TileData       `json:"tile,omitempty"`
}

// BoardData is the full board on the wire
type BoardData struct {
	Rows    int         `json:"rows"`
	Columns int         `json:"columns"`
	Fields  []FieldData `json:"fields"`
}

// PlayerData is a player on the wire. Tiles is only set for the rack owner.
type PlayerData struct {
	ID     model.PlayerID `json:"id"`
	Name   string         `json:"name"`
	Tiles  []TileData     `json:"tiles,omitempty"`
	Scores []int          `json:"scores"`
}

// MoveData describes the move that led to a next_turn
type MoveData struct {
	MoveNumber int            `json:"move_number"`
	PlayerID   model.PlayerID `json:"player_id"`
	Kind       model.MoveKind `json:"kind"`
	Score      int            `json:"score"`
	TileCount  int            `json:"tile_count"`
	Words      []string       `json:"words,omitempty"`
	Bingo      bool           `json:"bingo,omitempty"`
}

// GameStateData is the personalised game view sent in new_game, next_turn and rejoin_game
type GameStateData struct {
	Player          PlayerData      `json:"player"`
	CurrentPlayerID model.PlayerID  `json:"current_player_id"`
	Players         []PlayerData    `json:"players"`
	Board           BoardData       `json:"board"`
	State           model.GameState `json:"state"`
	Round           int             `json:"round"`
	MoveCount       int             `json:"move_count"`
	RemainingTiles  int             `json:"remaining_tiles"`
	LastMove        *MoveData       `json:"last_move,omitempty"`
}

// RejoinGameData is the game view sent to a rejoining user
type RejoinGameData struct {
	GameStateData
	SessionID model.SessionID `json:"session_id"`
}

// NewRoomData answers create_room
type NewRoomData struct {
	RoomNumber model.RoomNumber `json:"room_number"`
	SessionID  model.SessionID  `json:"session_id"`
	Player     PlayerData       `json:"player"`
}

// JoinRoomData answers join_room
type JoinRoomData struct {
	RoomNumber model.RoomNumber `json:"room_number"`
	SessionID  model.SessionID  `json:"session_id"`
	Player     PlayerData       `json:"player"`
	Players    []PlayerData     `json:"players"`
}

// RejoinRoomData answers rejoin
type RejoinRoomData struct {
	RoomNumber model.RoomNumber `json:"room_number"`
	SessionID  model.SessionID  `json:"session_id"`
	Player     PlayerData       `json:"player"`
	Players    []PlayerData     `json:"players"`
}

// PlayerEventData announces a player joining or rejoining to the rest of the room
type PlayerEventData struct {
	Player PlayerData `json:"player"`
}

// GameFinishedData announces the end of a game
type GameFinishedData struct {
	Players   []PlayerData     `json:"players"`
	WinnerIDs []model.PlayerID `json:"winner_ids"`
}

// ErrorData reports a failed action to the issuing connection
type ErrorData struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details model.Details `json:"details,omitempty"`
}

// Tile converts a tile; blanks carry their assigned symbol once placed
func Tile(t *model.Tile) TileData {
	return TileData{
		ID:          t.ID,
		Symbol:      t.Symbol,
		Points:      t.Points,
		BlankSymbol: t.BlankSymbol,
	}
}

// Player converts a player; the rack is included only when withTiles is set
func Player(p *model.Player, withTiles bool) PlayerData {
	data := PlayerData{
		ID:     p.ID,
		Name:   p.Name,
		Scores: append([]int{}, p.Scores...),
	}
	if withTiles {
		data.Tiles = make([]TileData, len(p.Tiles))
		for i, t := range p.Tiles {
			data.Tiles[i] = Tile(t)
		}
	}
	return data
}

// Players converts players without their racks
func Players(players []*model.Player) []PlayerData {
	data := make([]PlayerData, len(players))
	for i, p := range players {
		data[i] = Player(p, false)
	}
	return data
}

// Board converts the board in row-major order
func Board(b *model.Board) BoardData {
	fields := b.Fields()
	data := BoardData{Rows: b.Rows(), Columns: b.Cols(), Fields: make([]FieldData, len(fields))}
	for i, f := range fields {
		data.Fields[i] = FieldData{Row: f.Position.Row, Column: f.Position.Col, Type: f.Type}
		if f.Tile != nil {
			tile := Tile(f.Tile)
			data.Fields[i].Tile = &tile
		}
	}
	return data
}

// Move converts a committed move result
func Move(r *game.MoveResult) *MoveData {
	if r == nil {
		return nil
	}
	return &MoveData{
		MoveNumber: r.MoveNumber,
		PlayerID:   r.PlayerID,
		Kind:       r.Kind,
		Score:      r.Score,
		TileCount:  r.TileCount,
		Words:      r.Words,
		Bingo:      r.Bingo,
	}
}

// GameState builds the view of a game addressed to viewer
func GameState(g *game.Game, viewer *model.Player, lastMove *game.MoveResult) GameStateData {
	data := GameStateData{
		Player:         Player(viewer, true),
		Players:        Players(g.Players()),
		Board:          Board(g.Board()),
		State:          g.State(),
		Round:          g.RoundCount(),
		MoveCount:      g.MoveCount(),
		RemainingTiles: g.RemainingTiles(),
		LastMove:       Move(lastMove),
	}
	if current, err := g.CurrentPlayer(); err == nil {
		data.CurrentPlayerID = current.ID
	}
	return data
}

// GameFinished builds the end-of-game announcement
func GameFinished(g *game.Game) GameFinishedData {
	winners := g.Winners()
	data := GameFinishedData{
		Players:   Players(g.Players()),
		WinnerIDs: make([]model.PlayerID, len(winners)),
	}
	for i, w := range winners {
		data.WinnerIDs[i] = w.ID
	}
	return data
}
