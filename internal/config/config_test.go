package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.DatabasePath)
	assert.Equal(t, 256, cfg.MaxWebSocketClients)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DATABASE_PATH", "/tmp/todos.db")
	t.Setenv("MAX_WEBSOCKET_CLIENTS", "10")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/todos.db", cfg.DatabasePath)
	assert.Equal(t, 10, cfg.MaxWebSocketClients)
	assert.Equal(t, "5s", cfg.ShutdownTimeout.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"zero websocket clients", "MAX_WEBSOCKET_CLIENTS", "0", "MAX_WEBSOCKET_CLIENTS must be positive"},
		{"negative websocket clients", "MAX_WEBSOCKET_CLIENTS", "-5", "MAX_WEBSOCKET_CLIENTS must be positive"},
		{"bad log format", "LOG_FORMAT", "xml", "LOG_FORMAT must be"},
		{"zero shutdown timeout", "SHUTDOWN_TIMEOUT", "0s", "SHUTDOWN_TIMEOUT must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
