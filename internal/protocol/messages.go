// Package protocol defines the websocket wire format: a typed envelope, one
// decoder per inbound message and the outbound payloads built from game state.
package protocol

import (
	"encoding/json"
	"errors"
)

// MessageType names the payload carried by an envelope
type MessageType string

// Inbound message types
const (
	TypeCreateRoom    MessageType = "create_room"
	TypeJoinRoom      MessageType = "join_room"
	TypeRejoin        MessageType = "rejoin"
	TypeStartGame     MessageType = "start_game"
	TypePlaceTiles    MessageType = "place_tiles"
	TypeExchangeTiles MessageType = "exchange_tiles"
	TypeSkipTurn      MessageType = "skip_turn"
)

// Outbound message types. join_room is also sent back to the joiner.
const (
	TypeError          MessageType = "error"
	TypeNewRoomCreated MessageType = "new_room_created"
	TypeNewPlayer      MessageType = "new_player"
	TypeRejoinRoom     MessageType = "rejoin_room"
	TypeRejoinGame     MessageType = "rejoin_game"
	TypePlayerRejoined MessageType = "player_rejoined"
	TypeNewGame        MessageType = "new_game"
	TypeNextTurn       MessageType = "next_turn"
	TypeGameFinished   MessageType = "game_finished"
)

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrMalformedMessage   = errors.New("malformed message")
)

// Envelope is the frame shape in both directions
type Envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode wraps a payload in an envelope and marshals it
func Encode(msgType MessageType, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Data: raw})
}
