// Package config loads board's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const appName = "board"

// Config represents config.toml.
type Config struct {
	Store Store `toml:"store"`
	Board Board `toml:"board"`
	Log   Log   `toml:"log"`
}

// Store selects where and how groups are persisted.
type Store struct {
	Path   string `toml:"path"`
	Driver string `toml:"driver"`
}

// Board holds presentation and id settings.
type Board struct {
	// Locale picks default titles and control labels ("en" or "ru").
	Locale     string `toml:"locale"`
	DateLayout string `toml:"date_layout"`
	IDStrategy string `toml:"id_strategy"`
}

// Log configures the rotating log file.
type Log struct {
	Path  string `toml:"path"`
	Debug bool   `toml:"debug"`
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dataDir, err := DataDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Store: Store{
			Path:   filepath.Join(dataDir, "board.db"),
			Driver: "sqlite3",
		},
		Board: Board{
			Locale:     "en",
			DateLayout: "02.01.06",
			IDStrategy: "timestamp",
		},
		Log: Log{
			Path: filepath.Join(dataDir, "board.log"),
		},
	}, nil
}

// Load reads path on top of the defaults. An empty path means the default
// location; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Log.Path = expandHome(cfg.Log.Path)
	cfg.Board.Locale = strings.ToLower(strings.TrimSpace(cfg.Board.Locale))
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/board/config.toml.
func DefaultPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appName, "config.toml"), nil
}

// DataDir returns the directory holding the database and log file.
func DataDir() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, appName), nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
