// Package config reads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mcoot/scrabblegame-go/internal/api"
	"github.com/mcoot/scrabblegame-go/internal/factory"
	"github.com/mcoot/scrabblegame-go/internal/model"
	"github.com/mcoot/scrabblegame-go/internal/services/tilebag"
	redisstorage "github.com/mcoot/scrabblegame-go/internal/storage/redis"
	sqlitestorage "github.com/mcoot/scrabblegame-go/internal/storage/sqlite"
)

// Log output formats
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config holds everything the server binary needs
type Config struct {
	Host string
	Port int

	StorageType string
	RedisURL    string
	SQLitePath  string

	LogLevel  slog.Level
	LogFormat string

	Game model.GameConfig
}

// Load reads a .env file if one exists and then the process environment.
// Variables already set in the environment win over the file.
func Load(filenames ...string) (*Config, error) {
	_ = godotenv.Load(filenames...)
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}

	cfg := &Config{
		Host:        getenv("HOST"),
		Port:        env.int("PORT", 8080),
		StorageType: env.string("STORAGE_TYPE", factory.StorageTypeMemory),
		RedisURL:    getenv("REDIS_URL"),
		SQLitePath:  env.string("SQLITE_PATH", sqlitestorage.DefaultConfig().Path),
		LogFormat:   strings.ToLower(env.string("LOG_FORMAT", LogFormatJSON)),
	}

	game := model.DefaultGameConfig()
	game.TilesPerRound = env.int("GAME_TILES_PER_ROUND", game.TilesPerRound)
	game.MinPlayers = env.int("GAME_MIN_PLAYERS", game.MinPlayers)
	game.MaxPlayers = env.int("GAME_MAX_PLAYERS", game.MaxPlayers)
	game.MinWordLength = env.int("GAME_MIN_WORD_LENGTH", game.MinWordLength)
	game.Language = model.Language(env.string("GAME_LANGUAGE", string(game.Language)))
	cfg.Game = game

	if env.err != nil {
		return nil, env.err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env.string("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.LogFormat {
	case LogFormatJSON, LogFormatText:
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be 'json' or 'text'", cfg.LogFormat)
	}

	switch cfg.StorageType {
	case factory.StorageTypeMemory, factory.StorageTypeSQLite:
	case factory.StorageTypeRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_TYPE %q", cfg.StorageType)
	}

	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}
	if _, err := tilebag.Letters(cfg.Game.Language); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Logger creates the application logger writing to w
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// FactoryConfig converts the settings into the application factory config
func (c *Config) FactoryConfig(logger *slog.Logger) factory.Config {
	game := c.Game
	cfg := factory.Config{
		Logger:      logger,
		StorageType: c.StorageType,
		GameConfig:  &game,
	}

	switch c.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		sqliteCfg.Path = c.SQLitePath
		cfg.SQLiteConfig = &sqliteCfg
	}
	return cfg
}

// ServerConfig converts the settings into the HTTP server config
func (c *Config) ServerConfig() api.ServerConfig {
	cfg := api.DefaultServerConfig()
	cfg.Host = c.Host
	cfg.Port = c.Port
	return cfg
}

// envReader reads typed values and keeps the first parse error
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) string(key, fallback string) string {
	if v := e.getenv(key); v != "" {
		return v
	}
	return fallback
}

func (e *envReader) int(key string, fallback int) int {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if e.err == nil {
			e.err = fmt.Errorf("invalid %s: %w", key, err)
		}
		return fallback
	}
	return n
}
