package model

import (
	"errors"
	"fmt"
)

// Game-domain error kinds
var (
	ErrGameInternal        = errors.New("game internal error")
	ErrGameStartFailure    = errors.New("game start failure")
	ErrGameAlreadyStarted  = errors.New("game already started")
	ErrGameNotInProgress   = errors.New("game not in progress")
	ErrGameFinished        = errors.New("game finished")
	ErrInvalidMove         = errors.New("invalid move")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerAlreadyExists = errors.New("player already exists")
)

// Session-domain error kinds
var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrNoActiveConnection   = errors.New("no active connection")
	ErrRoomAlreadyExists    = errors.New("room already exists")
	ErrNoActiveGame         = errors.New("no active game")
	ErrInvalidPlayerData    = errors.New("invalid player data")
	ErrPlayerNotInRoom      = errors.New("player not in room")
	ErrDuplicatedConnection = errors.New("duplicated connection")
	ErrSessionInternal      = errors.New("session internal error")
)

// Lower-level errors, never surfaced to clients directly
var (
	ErrInvalidGrid         = errors.New("invalid grid")
	ErrOutOfRange          = errors.New("index out of range")
	ErrFieldNotFound       = errors.New("field does not exist on board")
	ErrNoCenterField       = errors.New("board has no center field")
	ErrInvalidLayout       = errors.New("invalid board layout")
	ErrInvalidConfig       = errors.New("invalid game config")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrSessionNotFound     = errors.New("session not found")
)

// Details carries structured, client-displayable context for an error
type Details map[string]any

// GameError is a rules engine failure
type GameError struct {
	Kind    error
	Message string
	Details Details
}

// NewGameError creates a GameError of the given kind
func NewGameError(kind error, message string, details Details) *GameError {
	return &GameError{Kind: kind, Message: message, Details: details}
}

func (e *GameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GameError) Unwrap() error {
	return e.Kind
}

// SessionError is a room or session failure
type SessionError struct {
	Kind    error
	Message string
	Details Details
}

// NewSessionError creates a SessionError of the given kind
func NewSessionError(kind error, message string, details Details) *SessionError {
	return &SessionError{Kind: kind, Message: message, Details: details}
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SessionError) Unwrap() error {
	return e.Kind
}

// RoomNotFoundError reports a missing room
func RoomNotFoundError(number RoomNumber) *SessionError {
	return NewSessionError(ErrRoomNotFound,
		fmt.Sprintf("Room %d does not exist.", number),
		Details{"room_number": number})
}

// NoActiveConnectionError reports an action from a connection that has no room
func NoActiveConnectionError() *SessionError {
	return NewSessionError(ErrNoActiveConnection, "You are not connected to any room.", nil)
}

// NoActiveGameError reports a game action in a room without a game
func NoActiveGameError(number RoomNumber) *SessionError {
	return NewSessionError(ErrNoActiveGame,
		fmt.Sprintf("There is no active game in room %d.", number),
		Details{"room_number": number})
}

// PlayerNotInRoomError reports a session that does not belong to the room
func PlayerNotInRoomError(number RoomNumber) *SessionError {
	return NewSessionError(ErrPlayerNotInRoom,
		fmt.Sprintf("Player not found in room %d.", number),
		Details{"room_number": number})
}
