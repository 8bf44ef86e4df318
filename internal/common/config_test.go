package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8085, config.Server.Port)
	assert.Equal(t, "./data", config.Storage.Path)
	assert.Equal(t, "gemini-3-flash-preview", config.Clients.Gemini.Model)
	assert.Equal(t, 0.5, config.Clients.Gemini.RateLimit)
	assert.Equal(t, "info", config.Logging.Level)
	assert.True(t, config.Refresh.Enabled)
	assert.Equal(t, "@every 5m", config.Refresh.Schedule)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8085, config.Server.Port)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ooh.toml")
	content := `
environment = "production"

[server]
port = 9090

[storage]
path = "/var/lib/ooh"

[clients.gemini]
model = "gemini-3-pro-preview"
rate_limit = 1.0

[refresh]
enabled = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "/var/lib/ooh", config.Storage.Path)
	assert.Equal(t, "gemini-3-pro-preview", config.Clients.Gemini.Model)
	assert.Equal(t, 1.0, config.Clients.Gemini.RateLimit)
	assert.False(t, config.Refresh.Enabled)
	// Untouched sections keep their defaults.
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("server = [not toml"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("OOH_SERVER_PORT", "7000")
	t.Setenv("OOH_LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "test-key", config.Clients.Gemini.APIKey)
	assert.Equal(t, 7000, config.Server.Port)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadConfigEnvOverridesIgnoreBadPort(t *testing.T) {
	t.Setenv("OOH_SERVER_PORT", "not-a-port")

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8085, config.Server.Port)
}
