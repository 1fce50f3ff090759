package announce

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config carries everything a run needs. It is populated from the
// environment once at startup and passed in explicitly so the pipeline can
// be exercised with fixtures.
type Config struct {
	BotToken      string `env:"BOT_TOKEN"`
	ChannelID     string `env:"CHANNEL_ID"`
	FeedURL       string `env:"FEED_URL"`
	LookaheadDays int    `env:"LOOKAHEAD_DAYS, default=7"`
	MaxEvents     int    `env:"MAX_EVENTS, default=100"`
	ListenAddr    string `env:"LISTEN_ADDR, default=:8080"`
	LogLevel      string `env:"LOG_LEVEL, default=INFO"`
}

// ConfigError indicates missing or invalid configuration. It is raised
// before any network call is attempted.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// LoadConfig reads the configuration from the environment.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("processing environment: %w", err)
	}
	return cfg, nil
}

// Validate checks the required fields are usable.
func (c Config) Validate() error {
	if c.BotToken == "" {
		return &ConfigError{Field: "BOT_TOKEN", Reason: "is required"}
	}
	if c.ChannelID == "" {
		return &ConfigError{Field: "CHANNEL_ID", Reason: "is required"}
	}
	if c.LookaheadDays <= 0 {
		return &ConfigError{Field: "LOOKAHEAD_DAYS", Reason: "must be positive"}
	}
	if c.MaxEvents <= 0 {
		return &ConfigError{Field: "MAX_EVENTS", Reason: "must be positive"}
	}
	return nil
}
