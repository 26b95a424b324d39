package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	sessions     map[string]*model.SessionRecord
	roomSessions map[model.RoomNumber][]string
	moves        map[model.RoomNumber][]*model.MoveRecord
	summaries    map[model.RoomNumber][]*model.GameSummary
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions:     make(map[string]*model.SessionRecord),
		roomSessions: make(map[model.RoomNumber][]string),
		moves:        make(map[model.RoomNumber][]*model.MoveRecord),
		summaries:    make(map[model.RoomNumber][]*model.GameSummary),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Close() error {
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.Digest]; !exists {
		s.roomSessions[session.RoomNumber] = append(s.roomSessions[session.RoomNumber], session.Digest)
	}
	stored := *session
	s.sessions[session.Digest] = &stored
	return nil
}

func (s *Storage) GetSession(ctx context.Context, digest string) (*model.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[digest]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	out := *session
	return &out, nil
}

func (s *Storage) ListSessionsForRoom(ctx context.Context, room model.RoomNumber) ([]*model.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	digests := s.roomSessions[room]
	sessions := make([]*model.SessionRecord, 0, len(digests))
	for _, d := range digests {
		out := *s.sessions[d]
		sessions = append(sessions, &out)
	}
	return sessions, nil
}

func (s *Storage) DeleteSessionsForRoom(ctx context.Context, room model.RoomNumber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.roomSessions[room] {
		delete(s.sessions, d)
	}
	delete(s.roomSessions, room)
	return nil
}

// Move log operations

func (s *Storage) AppendMove(ctx context.Context, move *model.MoveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *move
	stored.Words = slices.Clone(move.Words)
	s.moves[move.RoomNumber] = append(s.moves[move.RoomNumber], &stored)
	return nil
}

func (s *Storage) ListMoves(ctx context.Context, room model.RoomNumber) ([]*model.MoveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	moves := make([]*model.MoveRecord, 0, len(s.moves[room]))
	for _, m := range s.moves[room] {
		out := *m
		moves = append(moves, &out)
	}
	return moves, nil
}

// Game summary operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *summary
	s.summaries[summary.RoomNumber] = append(s.summaries[summary.RoomNumber], &stored)
	return nil
}

func (s *Storage) ListGameSummaries(ctx context.Context, room model.RoomNumber) ([]*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]*model.GameSummary, 0, len(s.summaries[room]))
	for _, g := range s.summaries[room] {
		out := *g
		summaries = append(summaries, &out)
	}
	return summaries, nil
}
