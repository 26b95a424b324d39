package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (creating if missing) the database file and applies migrations
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL", cfg.Path, cfg.BusyTimeoutMillis)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer at a time
	db.SetMaxOpenConns(1)

	if err := migrate(db, logger.With(slog.String("component", "sqlite"))); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.SessionRecord) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions (digest, room_number, player_id, player_name, created_at, last_seen_at)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(digest) DO UPDATE SET
            room_number  = excluded.room_number,
            player_id    = excluded.player_id,
            player_name  = excluded.player_name,
            last_seen_at = excluded.last_seen_at`,
		session.Digest, session.RoomNumber, session.PlayerID, session.PlayerName,
		formatTime(session.CreatedAt), formatTime(session.LastSeenAt),
	)
	return err
}

func (s *Storage) GetSession(ctx context.Context, digest string) (*model.SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT digest, room_number, player_id, player_name, created_at, last_seen_at
        FROM sessions WHERE digest = ?`, digest)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrSessionNotFound
	}
	return session, err
}

func (s *Storage) ListSessionsForRoom(ctx context.Context, room model.RoomNumber) ([]*model.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT digest, room_number, player_id, player_name, created_at, last_seen_at
        FROM sessions WHERE room_number = ?
        ORDER BY created_at ASC`, room)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []*model.SessionRecord{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *Storage) DeleteSessionsForRoom(ctx context.Context, room model.RoomNumber) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE room_number = ?`, room)
	return err
}

// Move log operations

func (s *Storage) AppendMove(ctx context.Context, move *model.MoveRecord) error {
	words, err := json.Marshal(move.Words)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO moves (room_number, move_number, player_id, kind, score, tile_count, words, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		move.RoomNumber, move.MoveNumber, move.PlayerID, move.Kind,
		move.Score, move.TileCount, string(words), formatTime(move.CreatedAt),
	)
	return err
}

func (s *Storage) ListMoves(ctx context.Context, room model.RoomNumber) ([]*model.MoveRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT room_number, move_number, player_id, kind, score, tile_count, words, created_at
        FROM moves WHERE room_number = ?
        ORDER BY move_number ASC, id ASC`, room)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moves := []*model.MoveRecord{}
	for rows.Next() {
		var (
			m         model.MoveRecord
			words     string
			createdAt string
		)
		if err := rows.Scan(&m.RoomNumber, &m.MoveNumber, &m.PlayerID, &m.Kind,
			&m.Score, &m.TileCount, &words, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(words), &m.Words); err != nil {
			return nil, fmt.Errorf("decode words of move %d: %w", m.MoveNumber, err)
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		moves = append(moves, &m)
	}
	return moves, rows.Err()
}

// Game summary operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	scores, err := json.Marshal(summary.FinalScores)
	if err != nil {
		return err
	}
	winners, err := json.Marshal(summary.Winners)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO game_summaries (room_number, final_scores, winners, move_count, finished_at)
        VALUES (?, ?, ?, ?, ?)`,
		summary.RoomNumber, string(scores), string(winners), summary.MoveCount, formatTime(summary.FinishedAt),
	)
	return err
}

func (s *Storage) ListGameSummaries(ctx context.Context, room model.RoomNumber) ([]*model.GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT room_number, final_scores, winners, move_count, finished_at
        FROM game_summaries WHERE room_number = ?
        ORDER BY id ASC`, room)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []*model.GameSummary{}
	for rows.Next() {
		var (
			g          model.GameSummary
			scores     string
			winners    string
			finishedAt string
		)
		if err := rows.Scan(&g.RoomNumber, &scores, &winners, &g.MoveCount, &finishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(scores), &g.FinalScores); err != nil {
			return nil, fmt.Errorf("decode final scores: %w", err)
		}
		if err := json.Unmarshal([]byte(winners), &g.Winners); err != nil {
			return nil, fmt.Errorf("decode winners: %w", err)
		}
		if g.FinishedAt, err = parseTime(finishedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, &g)
	}
	return summaries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*model.SessionRecord, error) {
	var (
		session    model.SessionRecord
		createdAt  string
		lastSeenAt string
	)
	if err := row.Scan(&session.Digest, &session.RoomNumber, &session.PlayerID,
		&session.PlayerName, &createdAt, &lastSeenAt); err != nil {
		return nil, err
	}

	var err error
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if session.LastSeenAt, err = parseTime(lastSeenAt); err != nil {
		return nil, err
	}
	return &session, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
