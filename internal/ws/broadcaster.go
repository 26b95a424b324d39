package ws

import (
	"log/slog"

	"github.com/mcoot/scrabblegame-go/internal/protocol"
	"github.com/mcoot/scrabblegame-go/internal/services/room"
)

// Broadcaster encodes outbound messages and fans them out to a room's users.
// A failed send is logged and never stops delivery to the other users.
type Broadcaster struct {
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		logger: logger.With(slog.String("component", "ws-broadcaster")),
	}
}

// Send delivers one message to one connection
func (b *Broadcaster) Send(conn room.Connection, msgType protocol.MessageType, data any) error {
	frame, err := protocol.Encode(msgType, data)
	if err != nil {
		b.logger.Error("failed to encode message",
			slog.String("type", string(msgType)),
			slog.String("error", err.Error()))
		return err
	}
	return conn.Send(frame)
}

// Broadcast sends the same message to every connected user of the room except skip
func (b *Broadcaster) Broadcast(r *room.Room, msgType protocol.MessageType, data any, skip *room.User) {
	frame, err := protocol.Encode(msgType, data)
	if err != nil {
		b.logger.Error("failed to encode broadcast",
			slog.Int("room_number", int(r.Number)),
			slog.String("type", string(msgType)),
			slog.String("error", err.Error()))
		return
	}
	b.fanOut(r, msgType, skip, func(*room.User) ([]byte, error) {
		return frame, nil
	})
}

// BroadcastEach sends every connected user of the room its own message built by view
func (b *Broadcaster) BroadcastEach(r *room.Room, msgType protocol.MessageType, view func(*room.User) any) {
	b.fanOut(r, msgType, nil, func(u *room.User) ([]byte, error) {
		return protocol.Encode(msgType, view(u))
	})
}

func (b *Broadcaster) fanOut(r *room.Room, msgType protocol.MessageType, skip *room.User, build func(*room.User) ([]byte, error)) {
	sent, dropped := 0, 0
	for _, u := range r.ConnectedUsers() {
		if u == skip {
			continue
		}

		frame, err := build(u)
		if err == nil {
			err = u.Connection().Send(frame)
		}
		if err != nil {
			dropped++
			b.logger.Warn("failed to deliver message",
				slog.Int("room_number", int(r.Number)),
				slog.String("player_id", string(u.Player.ID)),
				slog.String("type", string(msgType)),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}

	if dropped > 0 {
		b.logger.Warn("broadcast partial failure",
			slog.Int("room_number", int(r.Number)),
			slog.String("type", string(msgType)),
			slog.Int("sent", sent),
			slog.Int("dropped", dropped))
	}
}
