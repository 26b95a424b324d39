package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.SessionRecord) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := sessionKey(session.Digest)
	indexKey := roomSessionsIndexKey(session.RoomNumber)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.SessionTTL)
	pipe.SAdd(ctx, indexKey, key)
	if s.cfg.SessionTTL > 0 {
		pipe.Expire(ctx, indexKey, s.cfg.SessionTTL) // Keep index TTL in sync
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSession(ctx context.Context, digest string) (*model.SessionRecord, error) {
	data, err := s.client.Get(ctx, sessionKey(digest)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.SessionRecord
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) ListSessionsForRoom(ctx context.Context, room model.RoomNumber) ([]*model.SessionRecord, error) {
	keys, err := s.client.SMembers(ctx, roomSessionsIndexKey(room)).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.SessionRecord{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	sessions := make([]*model.SessionRecord, 0, len(values))
	for _, val := range values {
		raw, ok := val.(string)
		if !ok {
			continue // Session may have expired
		}
		var session model.SessionRecord
		if err := json.Unmarshal([]byte(raw), &session); err != nil {
			continue // Skip invalid data
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

func (s *Storage) DeleteSessionsForRoom(ctx context.Context, room model.RoomNumber) error {
	indexKey := roomSessionsIndexKey(room)

	keys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}

	// Delete all sessions and the index in one pipeline
	pipe := s.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, indexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// Move log operations

func (s *Storage) AppendMove(ctx context.Context, move *model.MoveRecord) error {
	data, err := json.Marshal(move)
	if err != nil {
		return err
	}
	return s.appendToList(ctx, movesKey(move.RoomNumber), data, s.cfg.MoveLogTTL)
}

func (s *Storage) ListMoves(ctx context.Context, room model.RoomNumber) ([]*model.MoveRecord, error) {
	return readList[model.MoveRecord](ctx, s.client, movesKey(room))
}

// Game summary operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.appendToList(ctx, summariesKey(summary.RoomNumber), data, s.cfg.SummaryTTL)
}

func (s *Storage) ListGameSummaries(ctx context.Context, room model.RoomNumber) ([]*model.GameSummary, error) {
	return readList[model.GameSummary](ctx, s.client, summariesKey(room))
}

func (s *Storage) appendToList(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func readList[T any](ctx context.Context, client *redis.Client, key string) ([]*T, error) {
	values, err := client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*T, 0, len(values))
	for _, raw := range values {
		var item T
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			continue // Skip invalid data
		}
		items = append(items, &item)
	}
	return items, nil
}
