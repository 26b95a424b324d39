package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionFile string
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("SCRABBLE_SERVER", "http://localhost:8080"),
		SessionFile: getEnvOrDefault("SCRABBLE_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
		Verbose:     false,
	}
}

// SavedSession is the last room session handed out by the server
type SavedSession struct {
	RoomNumber int    `json:"room_number"`
	SessionID  string `json:"session_id"`
	PlayerName string `json:"player_name"`
}

// ErrNoSavedSession is returned when no session file exists
var ErrNoSavedSession = errors.New("no saved session; create or join a room first")

// LoadSession reads the saved session
func (c *Config) LoadSession() (*SavedSession, error) {
	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSavedSession
		}
		return nil, err
	}

	var s SavedSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSession writes the session to the session file
func (c *Config) SaveSession(s SavedSession) error {
	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.SessionFile, data, 0600)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scrabble/session.json"
	}
	return filepath.Join(home, ".scrabble", "session.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
