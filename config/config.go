package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"sse-journal/book"
	"sse-journal/utils"
)

// Config is read from the environment. Relative file names are resolved
// against DataDir.
type Config struct {
	DataDir       string `env:"JOURNAL_DATA_DIR"`
	LogFile       string `env:"JOURNAL_LOG_FILE" envDefault:"sse-journal.log"`
	MinPages      int    `env:"JOURNAL_MIN_PAGES" envDefault:"3"`
	SettingsFile  string `env:"JOURNAL_SETTINGS_FILE" envDefault:"settings.json"`
	VariablesFile string `env:"JOURNAL_VARIABLES_FILE" envDefault:"variables.json"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = utils.DefaultDataDir()
	}
	if cfg.MinPages < book.MinFloor {
		cfg.MinPages = book.MinFloor
	}
	return &cfg, nil
}

func (c *Config) LogPath() string       { return utils.ResolvePath(c.DataDir, c.LogFile) }
func (c *Config) SettingsPath() string  { return utils.ResolvePath(c.DataDir, c.SettingsFile) }
func (c *Config) VariablesPath() string { return utils.ResolvePath(c.DataDir, c.VariablesFile) }

// OpenLog creates the data directory and returns a logger appending to the
// log file, along with the file to close.
func (c *Config) OpenLog() (*log.Logger, *os.File, error) {
	path := c.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return log.New(f, "", log.LstdFlags), f, nil
}
