package response

import (
	"slices"
	"time"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/services/room"
)

// Health is the health check response
type Health struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

// User represents a room user in API responses. Session ids are never exposed.
type User struct {
	PlayerID   model.PlayerID `json:"player_id"`
	PlayerName string         `json:"player_name"`
	Connected  bool           `json:"connected"`
	JoinedAt   time.Time      `json:"joined_at"`
}

// Game represents a room's game in API responses
type Game struct {
	State           model.GameState        `json:"state"`
	MoveCount       int                    `json:"move_count"`
	Round           int                    `json:"round"`
	RemainingTiles  int                    `json:"remaining_tiles"`
	CurrentPlayerID model.PlayerID         `json:"current_player_id,omitempty"`
	TurnOrder       []model.PlayerID       `json:"turn_order"`
	Scores          map[model.PlayerID]int `json:"scores"`
}

// Room represents a room in API responses
type Room struct {
	Number    model.RoomNumber `json:"number"`
	CreatedAt time.Time        `json:"created_at"`
	Users     []User           `json:"users"`
	Game      *Game            `json:"game,omitempty"`
}

// RoomFromSnapshot converts a room snapshot
func RoomFromSnapshot(s *room.Snapshot) Room {
	resp := Room{
		Number:    s.Number,
		CreatedAt: s.CreatedAt,
		Users:     make([]User, len(s.Users)),
	}
	for i, u := range s.Users {
		resp.Users[i] = User{
			PlayerID:   u.PlayerID,
			PlayerName: u.PlayerName,
			Connected:  u.Connected,
			JoinedAt:   u.JoinedAt,
		}
	}
	if g := s.Game; g != nil {
		resp.Game = &Game{
			State:           g.State,
			MoveCount:       g.MoveCount,
			Round:           g.Round,
			RemainingTiles:  g.RemainingTiles,
			CurrentPlayerID: g.CurrentPlayerID,
			TurnOrder:       g.TurnOrder,
			Scores:          g.Scores,
		}
	}
	return resp
}

// RoomList is the response for listing rooms
type RoomList struct {
	Rooms []Room `json:"rooms"`
}

// RoomListFromSnapshots converts room snapshots
func RoomListFromSnapshots(snaps []*room.Snapshot) RoomList {
	list := RoomList{Rooms: make([]Room, len(snaps))}
	for i, s := range snaps {
		list.Rooms[i] = RoomFromSnapshot(s)
	}
	return list
}

// MoveList is the move log of a room
type MoveList struct {
	RoomNumber model.RoomNumber    `json:"room_number"`
	Moves      []*model.MoveRecord `json:"moves"`
}

// GameList is the finished games of a room
type GameList struct {
	RoomNumber model.RoomNumber     `json:"room_number"`
	Games      []*model.GameSummary `json:"games"`
}

// Session is a persisted session looked up by its id
type Session struct {
	RoomNumber model.RoomNumber `json:"room_number"`
	PlayerID   model.PlayerID   `json:"player_id"`
	PlayerName string           `json:"player_name"`
	CreatedAt  time.Time        `json:"created_at"`
	LastSeenAt time.Time        `json:"last_seen_at"`
}

// SessionFromRecord converts a session record, leaving out its digest
func SessionFromRecord(r *model.SessionRecord) Session {
	return Session{
		RoomNumber: r.RoomNumber,
		PlayerID:   r.PlayerID,
		PlayerName: r.PlayerName,
		CreatedAt:  r.CreatedAt,
		LastSeenAt: r.LastSeenAt,
	}
}

// SessionList is the persisted sessions of a room
type SessionList struct {
	RoomNumber model.RoomNumber `json:"room_number"`
	Sessions   []Session        `json:"sessions"`
}

// SessionListFromRecords converts session records ordered by creation time
func SessionListFromRecords(room model.RoomNumber, records []*model.SessionRecord) SessionList {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b *model.SessionRecord) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	list := SessionList{RoomNumber: room, Sessions: make([]Session, len(sorted))}
	for i, r := range sorted {
		list.Sessions[i] = SessionFromRecord(r)
	}
	return list
}
