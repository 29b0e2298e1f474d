package domain

import "time"

// Config represents the application configuration
type Config struct {
	Channels           []ChannelSpec      `mapstructure:"channels"`
	DefaultDirectories []string           `mapstructure:"default_directories"`
	CookiesFile        string             `mapstructure:"cookies_file"`
	Download           DownloadConfig     `mapstructure:"download"`
	History            HistoryConfig      `mapstructure:"history"`
	Notification       NotificationConfig `mapstructure:"notification"`
	Logging            LoggingConfig      `mapstructure:"logging"`
	Server             ServerConfig       `mapstructure:"server"`
}

// DownloadConfig contains the run-level download parameters
type DownloadConfig struct {
	MaxConcurrent    int `mapstructure:"max_concurrent"`
	RateLimitSeconds int `mapstructure:"rate_limit_seconds"`
}

// RateLimit returns the per-slot cooldown as a duration
func (c DownloadConfig) RateLimit() time.Duration {
	return time.Duration(c.RateLimitSeconds) * time.Second
}

// HistoryConfig contains cross-run history persistence configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	Dir        string `mapstructure:"dir"`         // directory for per-category log files
}

// ServerConfig contains status API server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Download: DownloadConfig{
			MaxConcurrent:    3,
			RateLimitSeconds: 5,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/.yt-archiver/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
			Dir:        "$HOME/.yt-archiver/logs",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
	}
}
