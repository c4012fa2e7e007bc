// Package config manages the wavefeed configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/wavefeed/wavefeed/internal/feed"
)

// Config holds user settings from ~/.wavefeed/config.toml.
type Config struct {
	ServerURL string `toml:"server_url"` // Waveform server base URL
	PageSize  int    `toml:"page_size"`  // activity page size
	Language  string `toml:"language"`   // UI language tag, empty = detect
	LogFile   string `toml:"log_file"`   // TUI log destination, empty = off
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ServerURL: "http://localhost:8085",
		PageSize:  feed.DefaultPageSize,
	}
}

// Dir returns the path to the .wavefeed directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wavefeed"), nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, filling missing keys from defaults. A
// missing file is not an error: defaults are persisted on first run so
// the user has something to edit.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// Best effort; defaults still apply if the write fails.
		_ = saveTo(path, cfg)
		return cfg, nil
	} else if err != nil {
		return Config{}, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = feed.DefaultPageSize
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = Default().ServerURL
	}
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return saveTo(path, cfg)
}

func saveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
