package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mcoot/scrabblegame-go/internal/api"
	"github.com/mcoot/scrabblegame-go/internal/dependencies/clock"
	"github.com/mcoot/scrabblegame-go/internal/dependencies/random"
	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/services/room"
	"github.com/mcoot/scrabblegame-go/internal/services/scoring"
	"github.com/mcoot/scrabblegame-go/internal/storage"
	"github.com/mcoot/scrabblegame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/scrabblegame-go/internal/storage/redis"
	sqlitestorage "github.com/mcoot/scrabblegame-go/internal/storage/sqlite"
	"github.com/mcoot/scrabblegame-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Logger *slog.Logger

	// Rules every new game is started with
	GameConfig model.GameConfig

	// Services
	ScoringService *scoring.Service
	RoomManager    *room.Manager

	// Transport
	Broadcaster      *ws.Broadcaster
	Dispatcher       *ws.Dispatcher
	WebSocketHandler *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds SQLite settings (optional, defaults to sqlite.DefaultConfig())
	SQLiteConfig *sqlitestorage.Config
	// GameConfig holds the game rules (optional, defaults to model.DefaultGameConfig())
	GameConfig *model.GameConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	gameCfg := model.DefaultGameConfig()
	if cfg.GameConfig != nil {
		gameCfg = *cfg.GameConfig
	}
	if err := gameCfg.Validate(); err != nil {
		return nil, err
	}

	store, err := newStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clock.New(), random.New(), gameCfg, logger), nil
}

func newStorage(cfg Config, logger *slog.Logger) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if cfg.SQLiteConfig != nil {
			sqliteCfg = *cfg.SQLiteConfig
		}
		return sqlitestorage.New(sqliteCfg, logger)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, gameCfg model.GameConfig, logger *slog.Logger) *App {
	scoringService := scoring.New()
	roomManager := room.NewManager(clk, logger)
	broadcaster := ws.NewBroadcaster(logger)
	dispatcher := ws.NewDispatcher(ws.DispatcherConfig{
		Rooms:       roomManager,
		Storage:     store,
		Broadcaster: broadcaster,
		GameConfig:  gameCfg,
		Scoring:     scoringService,
		Random:      rnd,
		Clock:       clk,
		Logger:      logger,
	})

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		Logger:           logger,
		GameConfig:       gameCfg,
		ScoringService:   scoringService,
		RoomManager:      roomManager,
		Broadcaster:      broadcaster,
		Dispatcher:       dispatcher,
		WebSocketHandler: ws.NewHandler(dispatcher, logger),
	}
}

// Router builds the HTTP handler serving the API and the websocket
func (a *App) Router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Logger:    a.Logger,
		Rooms:     a.RoomManager,
		Storage:   a.Storage,
		WebSocket: a.WebSocketHandler,
	})
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
