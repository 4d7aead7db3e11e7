package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, BackendMemory, cfg.HistoryBackend)
	assert.Equal(t, ":memory:", cfg.HistoryDSN)
	assert.Equal(t, "Asnières", cfg.HomeName)
	assert.Equal(t, "Adversaire", cfg.AwayName)
	assert.Equal(t, []string{"inconnu", "joueur inconnu"}, cfg.UnknownPlayers)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "matchday.changes", cfg.RedisStream)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MATCHDAY_PORT", "9090")
	t.Setenv("MATCHDAY_HISTORY_BACKEND", "sqlite")
	t.Setenv("MATCHDAY_HOME_NAME", "Colombes")
	t.Setenv("MATCHDAY_UNKNOWN_PLAYER_NAMES", "unknown,n/a")
	t.Setenv("MATCHDAY_ALLOWED_ORIGINS", "https://score.example.org")
	t.Setenv("MATCHDAY_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.HistoryBackend)
	assert.Equal(t, "Colombes", cfg.HomeName)
	assert.Equal(t, []string{"unknown", "n/a"}, cfg.UnknownPlayers)
	assert.Equal(t, []string{"https://score.example.org"}, cfg.AllowedOrigins)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port not a number", "MATCHDAY_PORT", "eighty"},
		{"port out of range", "MATCHDAY_PORT", "70000"},
		{"unknown backend", "MATCHDAY_HISTORY_BACKEND", "postgres"},
		{"unknown log level", "MATCHDAY_LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
