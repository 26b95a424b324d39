package model

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
)

// RoomNumber is the external identifier of a room
type RoomNumber int

// SessionID is the durable identifier binding a user to one room
type SessionID string

// Digest returns the blake2b-256 hex digest used to key persisted session records
func (id SessionID) Digest() string {
	sum := blake2b.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

// SessionRecord is the persisted view of a user's session
type SessionRecord struct {
	Digest     string     `json:"digest"`
	RoomNumber RoomNumber `json:"room_number"`
	PlayerID   PlayerID   `json:"player_id"`
	PlayerName string     `json:"player_name"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSeenAt time.Time  `json:"last_seen_at"`
}

// MoveRecord is one committed move in a room's move log
type MoveRecord struct {
	RoomNumber RoomNumber `json:"room_number"`
	MoveNumber int        `json:"move_number"`
	PlayerID   PlayerID   `json:"player_id"`
	Kind       MoveKind   `json:"kind"`
	Score      int        `json:"score"`
	TileCount  int        `json:"tile_count"`
	Words      []string   `json:"words,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// GameSummary is a lightweight record of a finished game
type GameSummary struct {
	RoomNumber  RoomNumber       `json:"room_number"`
	FinalScores map[PlayerID]int `json:"final_scores"`
	Winners     []PlayerID       `json:"winners"`
	MoveCount   int              `json:"move_count"`
	FinishedAt  time.Time        `json:"finished_at"`
}
