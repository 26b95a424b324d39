package redis

import (
	"fmt"

	"github.com/mcoot/scrabblegame-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "scrabble"

// sessionKey returns the Redis key for a session record
func sessionKey(digest string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, digest)
}

// roomSessionsIndexKey returns the Redis key for the SET of session keys in a room
func roomSessionsIndexKey(room model.RoomNumber) string {
	return fmt.Sprintf("%s:idx:sessions_for_room:%d", keyPrefix, room)
}

// movesKey returns the Redis key for a room's move LIST
func movesKey(room model.RoomNumber) string {
	return fmt.Sprintf("%s:moves:%d", keyPrefix, room)
}

// summariesKey returns the Redis key for a room's game summary LIST
func summariesKey(room model.RoomNumber) string {
	return fmt.Sprintf("%s:summaries:%d", keyPrefix, room)
}
