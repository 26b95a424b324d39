package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mcoot/scrabblegame-go/internal/model"
)

// MaxPlayerNameLength bounds player names in runes
const MaxPlayerNameLength = 32

// Inbound is a decoded and validated client message
type Inbound interface {
	MessageType() MessageType
	Validate() error
}

// CreateRoom asks for a new room with the sender as its first player
type CreateRoom struct {
	RoomNumber model.RoomNumber `json:"room_number"`
	PlayerName string           `json:"player_name"`
}

// JoinRoom asks to join an existing room as a new player
type JoinRoom struct {
	RoomNumber model.RoomNumber `json:"room_number"`
	PlayerName string           `json:"player_name"`
}

// Rejoin rebinds an existing session to the sending connection
type Rejoin struct {
	RoomNumber model.RoomNumber `json:"room_number"`
	SessionID  model.SessionID  `json:"session_id"`
}

// StartGame starts the room's game
type StartGame struct {
	RoomNumber model.RoomNumber `json:"room_number"`
	SessionID  model.SessionID  `json:"session_id"`
}

// PlaceTiles places rack tiles on the board
type PlaceTiles struct {
	SessionID model.SessionID `json:"session_id"`
	TilesData []TileData      `json:"tiles_data"`
}

// ExchangeTiles swaps rack tiles with the bag
type ExchangeTiles struct {
	SessionID model.SessionID `json:"session_id"`
	TilesData []TileData      `json:"tiles_data"`
}

// SkipTurn passes the turn
type SkipTurn struct {
	SessionID model.SessionID `json:"session_id"`
}

func (CreateRoom) MessageType() MessageType    { return TypeCreateRoom }
func (JoinRoom) MessageType() MessageType      { return TypeJoinRoom }
func (Rejoin) MessageType() MessageType        { return TypeRejoin }
func (StartGame) MessageType() MessageType     { return TypeStartGame }
func (PlaceTiles) MessageType() MessageType    { return TypePlaceTiles }
func (ExchangeTiles) MessageType() MessageType { return TypeExchangeTiles }
func (SkipTurn) MessageType() MessageType      { return TypeSkipTurn }

func (m CreateRoom) Validate() error {
	if err := validateRoomNumber(m.RoomNumber); err != nil {
		return err
	}
	return validatePlayerName(m.PlayerName)
}

func (m JoinRoom) Validate() error {
	if err := validateRoomNumber(m.RoomNumber); err != nil {
		return err
	}
	return validatePlayerName(m.PlayerName)
}

func (m Rejoin) Validate() error {
	if err := validateRoomNumber(m.RoomNumber); err != nil {
		return err
	}
	return validateSessionID(m.SessionID)
}

func (m StartGame) Validate() error {
	if err := validateRoomNumber(m.RoomNumber); err != nil {
		return err
	}
	return validateSessionID(m.SessionID)
}

func (m PlaceTiles) Validate() error {
	if err := validateSessionID(m.SessionID); err != nil {
		return err
	}
	for i, t := range m.TilesData {
		if t.ID == "" {
			return fmt.Errorf("%w: tiles_data[%d] is missing id", ErrMalformedMessage, i)
		}
		if t.Position == nil {
			return fmt.Errorf("%w: tiles_data[%d] is missing position", ErrMalformedMessage, i)
		}
	}
	return nil
}

func (m ExchangeTiles) Validate() error {
	if err := validateSessionID(m.SessionID); err != nil {
		return err
	}
	for i, t := range m.TilesData {
		if t.ID == "" {
			return fmt.Errorf("%w: tiles_data[%d] is missing id", ErrMalformedMessage, i)
		}
	}
	return nil
}

func (m SkipTurn) Validate() error {
	return validateSessionID(m.SessionID)
}

// Placements converts the tiles data into engine placements
func (m PlaceTiles) Placements() []model.Placement {
	placements := make([]model.Placement, len(m.TilesData))
	for i, t := range m.TilesData {
		placements[i] = model.Placement{TileID: t.ID, Position: *t.Position, BlankSymbol: t.BlankSymbol}
	}
	return placements
}

// TileIDs returns the ids of the tiles to exchange
func (m ExchangeTiles) TileIDs() []string {
	ids := make([]string, len(m.TilesData))
	for i, t := range m.TilesData {
		ids[i] = t.ID
	}
	return ids
}

// Decode parses one client frame into its typed message and validates it
func Decode(frame []byte) (Inbound, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	switch env.Type {
	case TypeCreateRoom:
		return decodeData[CreateRoom](env)
	case TypeJoinRoom:
		return decodeData[JoinRoom](env)
	case TypeRejoin:
		return decodeData[Rejoin](env)
	case TypeStartGame:
		return decodeData[StartGame](env)
	case TypePlaceTiles:
		return decodeData[PlaceTiles](env)
	case TypeExchangeTiles:
		return decodeData[ExchangeTiles](env)
	case TypeSkipTurn:
		return decodeData[SkipTurn](env)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, env.Type)
	}
}

func decodeData[T Inbound](env Envelope) (Inbound, error) {
	var msg T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("%w: %s has no data", ErrMalformedMessage, env.Type)
	}

	dec := json.NewDecoder(bytes.NewReader(env.Data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedMessage, env.Type, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

func validateRoomNumber(n model.RoomNumber) error {
	if n <= 0 {
		return fmt.Errorf("%w: room_number must be positive", ErrMalformedMessage)
	}
	return nil
}

func validatePlayerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: player_name is required", ErrMalformedMessage)
	}
	if trimmed != name {
		return fmt.Errorf("%w: player_name has surrounding whitespace", ErrMalformedMessage)
	}
	if utf8.RuneCountInString(name) > MaxPlayerNameLength {
		return fmt.Errorf("%w: player_name longer than %d characters", ErrMalformedMessage, MaxPlayerNameLength)
	}
	return nil
}

func validateSessionID(id model.SessionID) error {
	if id == "" {
		return fmt.Errorf("%w: session_id is required", ErrMalformedMessage)
	}
	return nil
}
