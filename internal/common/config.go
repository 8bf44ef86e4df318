package common

import (
	"fmt"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the terminal engine.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
	Refresh     RefreshConfig `toml:"refresh"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the durable store location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds external client configuration.
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig configures the generative data provider client.
type GeminiConfig struct {
	APIKey    string  `toml:"api_key"`
	Model     string  `toml:"model"`
	RateLimit float64 `toml:"rate_limit"` // requests per second
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// RefreshConfig controls the background refresh scheduler.
type RefreshConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // cron spec, e.g. "@every 5m"
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8085,
		},
		Storage: StorageConfig{
			Path: "./data",
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:     "gemini-3-flash-preview",
				RateLimit: 0.5,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Refresh: RefreshConfig{
			Enabled:  true,
			Schedule: "@every 5m",
		},
	}
}

// LoadConfig reads a TOML config file over the defaults, then applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies OOH_* environment variables on top of the file.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		config.Clients.Gemini.APIKey = v
	}
	if v := os.Getenv("OOH_GEMINI_MODEL"); v != "" {
		config.Clients.Gemini.Model = v
	}
	if v := os.Getenv("OOH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("OOH_STORAGE_PATH"); v != "" {
		config.Storage.Path = v
	}
	if v := os.Getenv("OOH_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
