package room

import (
	"time"

	"github.com/mcoot/scrabblegame-go/internal/model"
)

// Snapshot is a point-in-time copy of a room that is safe to read without
// holding the room lock. Racks are never included.
type Snapshot struct {
	Number    model.RoomNumber
	CreatedAt time.Time
	Users     []UserSnapshot
	Game      *GameSnapshot
}

// UserSnapshot is the public view of one user
type UserSnapshot struct {
	PlayerID   model.PlayerID
	PlayerName string
	Connected  bool
	JoinedAt   time.Time
}

// GameSnapshot is the public view of a room's game
type GameSnapshot struct {
	State           model.GameState
	MoveCount       int
	Round           int
	RemainingTiles  int
	CurrentPlayerID model.PlayerID
	Scores          map[model.PlayerID]int
	TurnOrder       []model.PlayerID
}

// Snapshot copies the current state of one room
func (m *Manager) Snapshot(number model.RoomNumber) (*Snapshot, error) {
	var snap *Snapshot
	err := m.Do(number, func(room *Room) error {
		snap = room.snapshot()
		return nil
	})
	return snap, err
}

// Snapshots copies every room, ordered by number
func (m *Manager) Snapshots() []*Snapshot {
	rooms := m.Rooms()
	snaps := make([]*Snapshot, 0, len(rooms))
	for _, room := range rooms {
		room.mu.Lock()
		snaps = append(snaps, room.snapshot())
		room.mu.Unlock()
	}
	return snaps
}

func (r *Room) snapshot() *Snapshot {
	snap := &Snapshot{
		Number:    r.Number,
		CreatedAt: r.CreatedAt,
		Users:     make([]UserSnapshot, len(r.users)),
	}
	for i, u := range r.users {
		snap.Users[i] = UserSnapshot{
			PlayerID:   u.Player.ID,
			PlayerName: u.Player.Name,
			Connected:  u.Connected(),
			JoinedAt:   u.JoinedAt,
		}
	}

	if r.game == nil {
		return snap
	}

	g := r.game
	gs := &GameSnapshot{
		State:          g.State(),
		MoveCount:      g.MoveCount(),
		Round:          g.RoundCount(),
		RemainingTiles: g.RemainingTiles(),
		Scores:         make(map[model.PlayerID]int),
	}
	for _, p := range g.Players() {
		gs.Scores[p.ID] = p.TotalScore()
		gs.TurnOrder = append(gs.TurnOrder, p.ID)
	}
	if current, err := g.CurrentPlayer(); err == nil {
		gs.CurrentPlayerID = current.ID
	}
	snap.Game = gs
	return snap
}
