package storage

import (
	"context"

	"github.com/mcoot/scrabblegame-go/internal/model"
)

// Storage defines the interface for data persistence. Live game state is
// held in memory by the room manager; storage keeps the session directory,
// the move log and finished game summaries.
type Storage interface {
	// Session operations, keyed by SessionID.Digest()
	SaveSession(ctx context.Context, session *model.SessionRecord) error
	GetSession(ctx context.Context, digest string) (*model.SessionRecord, error)
	ListSessionsForRoom(ctx context.Context, room model.RoomNumber) ([]*model.SessionRecord, error)
	DeleteSessionsForRoom(ctx context.Context, room model.RoomNumber) error

	// Move log operations
	AppendMove(ctx context.Context, move *model.MoveRecord) error
	ListMoves(ctx context.Context, room model.RoomNumber) ([]*model.MoveRecord, error)

	// Game summary operations
	SaveGameSummary(ctx context.Context, summary *model.GameSummary) error
	ListGameSummaries(ctx context.Context, room model.RoomNumber) ([]*model.GameSummary, error)

	Close() error
}
