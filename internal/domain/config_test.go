package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Empty(t, config.Channels)
	assert.Equal(t, 3, config.Download.MaxConcurrent)
	assert.Equal(t, 5, config.Download.RateLimitSeconds)
	assert.True(t, config.History.Enabled)
	assert.NotEmpty(t, config.History.DatabasePath)
	assert.False(t, config.Notification.Enabled)
	assert.Equal(t, "notify-send", config.Notification.Method)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestDownloadConfig_RateLimit(t *testing.T) {
	config := DownloadConfig{RateLimitSeconds: 5}
	assert.Equal(t, 5*time.Second, config.RateLimit())

	zero := DownloadConfig{RateLimitSeconds: 0}
	assert.Equal(t, time.Duration(0), zero.RateLimit())
}
