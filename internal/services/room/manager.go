package room

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/scrabblegame-go/internal/dependencies/clock"
	"github.com/mcoot/scrabblegame-go/internal/model"
)

// Manager owns every room of the server. The manager lock guards only the
// room and session directories; room contents are guarded by each room's
// own lock, and the two are never held together.
type Manager struct {
	mu       sync.RWMutex
	rooms    map[model.RoomNumber]*Room
	sessions map[model.SessionID]model.RoomNumber

	newSessionID func() model.SessionID
	clock        clock.Clock
	logger       *slog.Logger
}

// NewManager creates an empty room manager
func NewManager(clock clock.Clock, logger *slog.Logger) *Manager {
	return &Manager{
		rooms:    make(map[model.RoomNumber]*Room),
		sessions: make(map[model.SessionID]model.RoomNumber),
		newSessionID: func() model.SessionID {
			return model.SessionID(uuid.NewString())
		},
		clock:  clock,
		logger: logger.With(slog.String("component", "room_manager")),
	}
}

// CreateRoom registers a new empty room
func (m *Manager) CreateRoom(number model.RoomNumber) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rooms[number]; exists {
		return nil, model.NewSessionError(model.ErrRoomAlreadyExists,
			fmt.Sprintf("Room %d already exists.", number),
			model.Details{"room_number": number})
	}

	room := newRoom(number, m.clock.Now())
	m.rooms[number] = room

	m.logger.Info("room created", slog.Int("room_number", int(number)))
	return room, nil
}

// Room returns the room with the given number
func (m *Manager) Room(number model.RoomNumber) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	room, ok := m.rooms[number]
	if !ok {
		return nil, model.RoomNotFoundError(number)
	}
	return room, nil
}

// Rooms returns every room ordered by number
func (m *Manager) Rooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	numbers := slices.Sorted(maps.Keys(m.rooms))
	rooms := make([]*Room, len(numbers))
	for i, n := range numbers {
		rooms[i] = m.rooms[n]
	}
	return rooms
}

// JoinRoom adds a player on the given connection to a room under a fresh session
func (m *Manager) JoinRoom(number model.RoomNumber, conn Connection, player *model.Player) (*User, error) {
	user := &User{
		Player:    player,
		SessionID: m.newSessionID(),
		Room:      number,
		JoinedAt:  m.clock.Now(),
		conn:      conn,
	}

	err := m.Do(number, func(room *Room) error {
		return room.addUser(user)
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[user.SessionID] = number
	m.mu.Unlock()

	m.logger.Info("player joined room",
		slog.Int("room_number", int(number)),
		slog.String("player_id", string(player.ID)),
		slog.String("connection_id", conn.ID()),
	)
	return user, nil
}

// Rejoin rebinds an existing session of the room to a new connection. The
// user's player, rack and scores are left as they are.
func (m *Manager) Rejoin(number model.RoomNumber, sessionID model.SessionID, conn Connection) (*User, error) {
	var user *User
	err := m.Do(number, func(room *Room) error {
		u, ok := room.UserBySession(sessionID)
		if !ok {
			return model.PlayerNotInRoomError(number)
		}
		if bound, ok := room.UserByConnection(conn.ID()); ok && bound != u {
			return room.duplicatedConnectionError(bound)
		}
		u.conn = conn
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("player rejoined room",
		slog.Int("room_number", int(number)),
		slog.String("player_id", string(user.Player.ID)),
		slog.String("connection_id", conn.ID()),
	)
	return user, nil
}

// FindRoomBySession returns the room owning a session
func (m *Manager) FindRoomBySession(sessionID model.SessionID) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	number, ok := m.sessions[sessionID]
	if !ok {
		return nil, model.NoActiveConnectionError()
	}
	room, ok := m.rooms[number]
	if !ok {
		return nil, model.NoActiveConnectionError()
	}
	return room, nil
}

// Do runs fn while holding the room's lock
func (m *Manager) Do(number model.RoomNumber, fn func(*Room) error) error {
	room, err := m.Room(number)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	return fn(room)
}

// DoBySession resolves the session to its room and user and runs fn while
// holding the room's lock. The session must be bound to connID.
func (m *Manager) DoBySession(sessionID model.SessionID, connID string, fn func(*Room, *User) error) error {
	room, err := m.FindRoomBySession(sessionID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	user, ok := room.UserBySession(sessionID)
	if !ok || !user.connectedTo(connID) {
		return model.NoActiveConnectionError()
	}
	return fn(room, user)
}

// Disconnect clears the connection from every user bound to it and returns
// those users. Users and their game state stay in their rooms.
func (m *Manager) Disconnect(connID string) []*User {
	var dropped []*User
	for _, room := range m.Rooms() {
		room.mu.Lock()
		if user, ok := room.UserByConnection(connID); ok {
			user.conn = nil
			dropped = append(dropped, user)
		}
		room.mu.Unlock()
	}

	for _, u := range dropped {
		m.logger.Info("player disconnected",
			slog.Int("room_number", int(u.Room)),
			slog.String("player_id", string(u.Player.ID)),
			slog.String("connection_id", connID),
		)
	}
	return dropped
}

// Interface for dependency injection
type ManagerInterface interface {
	CreateRoom(number model.RoomNumber) (*Room, error)
	Room(number model.RoomNumber) (*Room, error)
	Rooms() []*Room
	JoinRoom(number model.RoomNumber, conn Connection, player *model.Player) (*User, error)
	Rejoin(number model.RoomNumber, sessionID model.SessionID, conn Connection) (*User, error)
	FindRoomBySession(sessionID model.SessionID) (*Room, error)
	Do(number model.RoomNumber, fn func(*Room) error) error
	DoBySession(sessionID model.SessionID, connID string, fn func(*Room, *User) error) error
	Disconnect(connID string) []*User
	Snapshot(number model.RoomNumber) (*Snapshot, error)
	Snapshots() []*Snapshot
}

var _ ManagerInterface = (*Manager)(nil)
