package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/protocol"
)

func newTestOutput(format string) (*Output, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Output{format: format, w: &buf}, &buf
}

func TestPrintRoomText(t *testing.T) {
	out, buf := newTestOutput("text")
	out.Print(Room{
		Number: 3,
		Users: []User{
			{PlayerID: "p1", PlayerName: "alice", Connected: true},
			{PlayerID: "p2", PlayerName: "bob"},
		},
		Game: &GameInfo{
			State:           "in_progress",
			Round:           2,
			MoveCount:       3,
			RemainingTiles:  80,
			CurrentPlayerID: "p2",
			TurnOrder:       []string{"p1", "p2"},
			Scores:          map[string]int{"p1": 12, "p2": 0},
		},
	})

	text := buf.String()
	assert.Contains(t, text, "Room: 3")
	assert.Contains(t, text, "bob (p2) (disconnected)")
	assert.Contains(t, text, "Game: in_progress, round 2, 3 moves, 80 tiles left")
	assert.Contains(t, text, "p1: 12 points")
}

func TestPrintRoomListEmpty(t *testing.T) {
	out, buf := newTestOutput("text")
	out.Print(RoomList{})
	assert.Equal(t, "No rooms\n", buf.String())
}

func TestPrintJSON(t *testing.T) {
	out, buf := newTestOutput("json")
	out.Print(HealthResult{Status: "ok", Rooms: 2})

	var got HealthResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, HealthResult{Status: "ok", Rooms: 2}, got)
}

func TestPrintGameList(t *testing.T) {
	out, buf := newTestOutput("text")
	out.Print(GameList{RoomNumber: 1, Games: []model.GameSummary{{
		MoveCount:   4,
		Winners:     []model.PlayerID{"p2"},
		FinalScores: map[model.PlayerID]int{"p2": 30, "p1": 10},
	}}})

	assert.Equal(t, "Room 1 finished games (1):\n  1. 4 moves, winners: p2\n     p1: 10\n     p2: 30\n", buf.String())
}

func TestPrintEnvelopeGameState(t *testing.T) {
	out, buf := newTestOutput("text")

	state := protocol.GameStateData{
		Player: protocol.PlayerData{ID: "p1", Name: "alice", Tiles: []protocol.TileData{
			{ID: "t1", Symbol: "A", Points: 1},
			{ID: "t2", Symbol: "?", Points: 0},
		}},
		CurrentPlayerID: "p1",
		Players: []protocol.PlayerData{
			{ID: "p1", Name: "alice", Scores: []int{4, 6}},
			{ID: "p2", Name: "bob", Scores: []int{0}},
		},
		Board: protocol.BoardData{Rows: 3, Columns: 3, Fields: []protocol.FieldData{
			{Row: 0, Column: 0, Type: model.FieldTripleWord},
			{Row: 1, Column: 1, Type: model.FieldDoubleWord, Tile: &protocol.TileData{ID: "x", Symbol: "K", Points: 2}},
			{Row: 2, Column: 2, Tile: &protocol.TileData{ID: "y", Symbol: "?", BlankSymbol: "Ó"}},
		}},
		State:          model.GameStateInProgress,
		Round:          2,
		RemainingTiles: 50,
		LastMove:       &protocol.MoveData{MoveNumber: 3, PlayerID: "p2", Kind: model.MovePlace, Score: 9, Words: []string{"KOT"}},
	}
	frame, err := protocol.Encode(protocol.TypeNextTurn, state)
	require.NoError(t, err)
	require.NoError(t, out.PrintEnvelope(decodeEnvelope(t, frame)))

	text := buf.String()
	assert.Contains(t, text, "Move 3 by bob: place for 9 points [KOT]")
	assert.Contains(t, text, "  0 | =  .  . |")
	assert.Contains(t, text, "  1 | .  K  . |")
	assert.Contains(t, text, "  2 | .  .  ó |")
	assert.Contains(t, text, "* alice: 10")
	assert.Contains(t, text, "  bob: 0")
	assert.Contains(t, text, "Rack: t1:A(1) t2:?(0)")
	assert.Contains(t, text, "Your turn")
}

func TestPrintEnvelopeError(t *testing.T) {
	out, buf := newTestOutput("text")
	frame, err := protocol.Encode(protocol.TypeError, protocol.ErrorData{Code: "invalid_move", Message: "Not your turn."})
	require.NoError(t, err)
	require.NoError(t, out.PrintEnvelope(decodeEnvelope(t, frame)))
	assert.Equal(t, "! Not your turn. (invalid_move)\n", buf.String())
}

func TestPrintEnvelopeGameFinished(t *testing.T) {
	out, buf := newTestOutput("text")
	frame, err := protocol.Encode(protocol.TypeGameFinished, protocol.GameFinishedData{
		Players:   []protocol.PlayerData{{ID: "p1", Name: "alice", Scores: []int{5}}},
		WinnerIDs: []model.PlayerID{"p1"},
	})
	require.NoError(t, err)
	require.NoError(t, out.PrintEnvelope(decodeEnvelope(t, frame)))
	assert.Equal(t, "Game finished\n  alice: 5\nWinner: alice\n", buf.String())
}

func TestPrintSessionList(t *testing.T) {
	out, buf := newTestOutput("text")
	seen := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	out.Print(SessionList{RoomNumber: 2, Sessions: []SessionInfo{
		{RoomNumber: 2, PlayerID: "p1", PlayerName: "alice", LastSeenAt: seen},
	}})

	assert.Equal(t, "Room 2 sessions (1):\n  - alice (p1), last seen 2024-01-01T12:00:00Z\n", buf.String())
}
