package room

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/services/game"
)

// Connection is the transport endpoint a user is reachable through
type Connection interface {
	ID() string
	Send(data []byte) error
}

// User binds a player to a room through a durable session
type User struct {
	Player    *model.Player
	SessionID model.SessionID
	Room      model.RoomNumber
	JoinedAt  time.Time

	conn Connection
}

// Connection returns the user's current connection, or nil while disconnected
func (u *User) Connection() Connection {
	return u.conn
}

// Connected reports whether the user currently has a live connection
func (u *User) Connected() bool {
	return u.conn != nil
}

func (u *User) connectedTo(connID string) bool {
	return u.conn != nil && u.conn.ID() == connID
}

// Room groups users and at most one game. Its methods expect the caller to
// hold the room through Manager.Do or Manager.DoBySession.
type Room struct {
	Number    model.RoomNumber
	CreatedAt time.Time

	mu    sync.Mutex
	users []*User
	game  *game.Game
}

func newRoom(number model.RoomNumber, now time.Time) *Room {
	return &Room{Number: number, CreatedAt: now, users: []*User{}}
}

// Users returns every user in join order
func (r *Room) Users() []*User {
	return slices.Clone(r.users)
}

// ConnectedUsers returns the users that currently have a connection
func (r *Room) ConnectedUsers() []*User {
	connected := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		if u.Connected() {
			connected = append(connected, u)
		}
	}
	return connected
}

// Players returns the players of every user in join order
func (r *Room) Players() []*model.Player {
	players := make([]*model.Player, len(r.users))
	for i, u := range r.users {
		players[i] = u.Player
	}
	return players
}

// Game returns the room's game, or nil before one is started
func (r *Room) Game() *game.Game {
	return r.game
}

// SetGame attaches a game to the room; a room holds one game for its lifetime
func (r *Room) SetGame(g *game.Game) error {
	if r.game != nil {
		return model.NewGameError(model.ErrGameAlreadyStarted,
			fmt.Sprintf("Game in room %d has already started.", r.Number),
			model.Details{"room_number": r.Number})
	}
	r.game = g
	return nil
}

// UserBySession looks up a user by session id
func (r *Room) UserBySession(id model.SessionID) (*User, bool) {
	for _, u := range r.users {
		if u.SessionID == id {
			return u, true
		}
	}
	return nil, false
}

// UserByConnection looks up the user currently bound to a connection
func (r *Room) UserByConnection(connID string) (*User, bool) {
	for _, u := range r.users {
		if u.connectedTo(connID) {
			return u, true
		}
	}
	return nil, false
}

func (r *Room) duplicatedConnectionError(bound *User) error {
	return model.NewSessionError(model.ErrDuplicatedConnection,
		fmt.Sprintf("You are already connected to this room as %s.", bound.Player.Name),
		model.Details{"room_number": r.Number, "player_name": bound.Player.Name})
}

func (r *Room) addUser(user *User) error {
	for _, u := range r.users {
		if user.conn != nil && u.connectedTo(user.conn.ID()) {
			return r.duplicatedConnectionError(u)
		}
	}
	for _, u := range r.users {
		if u.Player.ID == user.Player.ID {
			return model.NewSessionError(model.ErrInvalidPlayerData,
				fmt.Sprintf("Player with ID '%s' already exists.", user.Player.ID),
				model.Details{"room_number": r.Number, "player_id": user.Player.ID})
		}
	}
	for _, u := range r.users {
		if u.Player.Name == user.Player.Name {
			return model.NewSessionError(model.ErrInvalidPlayerData,
				fmt.Sprintf("Player with name '%s' already exists.", user.Player.Name),
				model.Details{"room_number": r.Number, "player_name": user.Player.Name})
		}
	}

	r.users = append(r.users, user)
	return nil
}
