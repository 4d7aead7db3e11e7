// Package config loads server settings from MATCHDAY_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// HistoryBackend selects the season.HistoryStore implementation.
type HistoryBackend string

const (
	BackendMemory HistoryBackend = "memory"
	BackendSQLite HistoryBackend = "sqlite"
)

// Config controls the matchday server.
type Config struct {
	Port           int            `env:"MATCHDAY_PORT"            envDefault:"8080"`
	HistoryBackend HistoryBackend `env:"MATCHDAY_HISTORY_BACKEND" envDefault:"memory"`
	HistoryDSN     string         `env:"MATCHDAY_HISTORY_DSN"     envDefault:":memory:"`
	HomeName       string         `env:"MATCHDAY_HOME_NAME"       envDefault:"Asnières"`
	AwayName       string         `env:"MATCHDAY_AWAY_NAME"       envDefault:"Adversaire"`
	UnknownPlayers []string       `env:"MATCHDAY_UNKNOWN_PLAYER_NAMES" envSeparator:"," envDefault:"inconnu,joueur inconnu"`
	AllowedOrigins []string       `env:"MATCHDAY_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`
	RedisURL       string         `env:"MATCHDAY_REDIS_URL"`
	RedisStream    string         `env:"MATCHDAY_REDIS_STREAM"    envDefault:"matchday.changes"`
	LogLevel       string         `env:"MATCHDAY_LOG_LEVEL"       envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.HistoryBackend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown history backend %q", c.HistoryBackend)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Level returns the zerolog level, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
