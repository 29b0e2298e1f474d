package infrastructure

import (
	"fmt"
	"os/exec"

	"github.com/yourusername/yt-archiver-go/internal/domain"
	"go.uber.org/zap"
)

// NotificationService handles sending desktop notifications
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		config: config,
		logger: logger,
	}
}

// Send sends a notification
func (n *NotificationService) Send(title, message string) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	switch n.config.Method {
	case "osascript":
		return n.sendOSAScript(title, message)
	case "notify-send":
		return n.sendNotifySend(title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return nil
	}
}

// sendOSAScript sends notification using macOS osascript
func (n *NotificationService) sendOSAScript(title, message string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
	cmd := exec.Command("osascript", "-e", script)

	if err := cmd.Run(); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", "osascript"),
			zap.Error(err))
		return err
	}

	return nil
}

// sendNotifySend sends notification using Linux notify-send
func (n *NotificationService) sendNotifySend(title, message string) error {
	cmd := exec.Command("notify-send", title, message)

	if err := cmd.Run(); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", "notify-send"),
			zap.Error(err))
		return err
	}

	return nil
}

// NotifyRunCompleted sends the end-of-run notification
func (n *NotificationService) NotifyRunCompleted(summary *domain.RunSummary) {
	title := "Archive Run Completed"
	if summary.AllChannelsFailed() {
		title = "Archive Run Failed"
	}

	message := fmt.Sprintf("%d channels: %d downloaded, %d skipped, %d failed",
		summary.Channels,
		summary.Succeeded,
		summary.SkippedAspect+summary.SkippedExisting,
		summary.Failed)

	n.Send(title, message)
}

// NotifyChannelFailed sends a notification when a channel cannot be processed
func (n *NotificationService) NotifyChannelFailed(channel string, err error) {
	n.Send("Channel Failed", fmt.Sprintf("%s: %v", truncateString(channel, 40), err))
}

// truncateString truncates a string to the specified length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
