package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/yt-archiver-go/internal/domain"
)

// LoadConfig loads configuration from file and environment. It requires at
// least one configured channel and is what archive runs use.
func LoadConfig(configPath string) (*domain.Config, error) {
	return loadConfig(configPath, true)
}

// LoadInspectionConfig loads configuration for commands that only read the
// history database or serve the status API. It tolerates an empty channels
// section.
func LoadInspectionConfig(configPath string) (*domain.Config, error) {
	return loadConfig(configPath, false)
}

func loadConfig(configPath string, requireChannels bool) (*domain.Config, error) {
	// Start with default config
	config := domain.DefaultConfig()

	// Set up viper
	v := viper.New()
	v.SetConfigType("json")

	// If config path is provided, use it
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.yt-archiver")
		v.AddConfigPath("/etc/yt-archiver")
	}

	// Read environment variables
	v.SetEnvPrefix("YT_ARCHIVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	// Unmarshal into config struct
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand environment variables in paths
	config = expandPaths(config)

	// Validate config
	if err := validateConfig(config, requireChannels); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	for i := range config.Channels {
		config.Channels[i].OutputDir = expandPath(config.Channels[i].OutputDir)
	}
	for i := range config.DefaultDirectories {
		config.DefaultDirectories[i] = expandPath(config.DefaultDirectories[i])
	}
	config.CookiesFile = expandPath(config.CookiesFile)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)
	config.Logging.Dir = expandPath(config.Logging.Dir)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	// Expand environment variables
	path = os.ExpandEnv(path)

	// Expand home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	// Replace $HOME
	if strings.Contains(path, "$HOME") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = strings.ReplaceAll(path, "$HOME", home)
		}
	}

	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config, requireChannels bool) error {
	if requireChannels && len(config.Channels) == 0 {
		return fmt.Errorf("no channels configured")
	}

	for i, channel := range config.Channels {
		if strings.TrimSpace(channel.Reference) == "" {
			return fmt.Errorf("channel %d has an empty url", i)
		}
	}

	if config.Download.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1")
	}

	if config.Download.RateLimitSeconds < 0 {
		return fmt.Errorf("rate_limit_seconds cannot be negative")
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}

// ResolveOutputDir picks the output directory for a channel: its own
// download_directory when set, otherwise the first default directory that
// exists on disk.
func ResolveOutputDir(config *domain.Config, channel domain.ChannelSpec) (string, error) {
	if channel.OutputDir != "" {
		return channel.OutputDir, nil
	}

	for _, dir := range config.DefaultDirectories {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	return "", fmt.Errorf("no usable output directory for %s: channel has no download_directory and no default directory exists", channel.Reference)
}
