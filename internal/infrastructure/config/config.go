package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Canvas    CanvasConfig
	Provider  ProviderConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"3001"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// CanvasConfig holds the engine-side connection configuration: where the
// generation backend lives and how reconnection behaves.
type CanvasConfig struct {
	Endpoint    string        `envconfig:"CANVAS_WS_URL" default:"ws://localhost:3001/ws"`
	BackoffBase time.Duration `envconfig:"CANVAS_BACKOFF_BASE" default:"1s"`
	BackoffCap  time.Duration `envconfig:"CANVAS_BACKOFF_CAP" default:"10s"`
	MaxAttempts int           `envconfig:"CANVAS_MAX_RECONNECTS" default:"5"`
}

// ProviderConfig holds generation provider configuration. An empty APIKey
// selects the offline mock provider.
type ProviderConfig struct {
	BaseURL string        `envconfig:"PROVIDER_BASE_URL" default:"https://api.openai.com/v1"`
	APIKey  string        `envconfig:"PROVIDER_API_KEY" default:""`
	Model   string        `envconfig:"PROVIDER_MODEL" default:"gpt-5.2"`
	Timeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"90s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "3001",
			Host: "0.0.0.0",
		},
		Canvas: CanvasConfig{
			Endpoint:    "ws://localhost:3001/ws",
			BackoffBase: time.Second,
			BackoffCap:  10 * time.Second,
			MaxAttempts: 5,
		},
		Provider: ProviderConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-5.2",
			Timeout: 90 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
