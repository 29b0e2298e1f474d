package app

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/yourusername/yt-archiver-go/internal/domain"
	"github.com/yourusername/yt-archiver-go/pkg/logger"
	"go.uber.org/zap"
)

// ErrNoChannelsProcessed reports total failure: every configured channel
// failed before producing a listing. The only run outcome that warrants a
// non-zero exit.
var ErrNoChannelsProcessed = errors.New("no channel could be processed")

// RunNotifier receives run-level notifications
type RunNotifier interface {
	NotifyRunCompleted(summary *domain.RunSummary)
	NotifyChannelFailed(channel string, err error)
}

// RunCoordinator drives a whole archive run: channels strictly in
// configuration order, one at a time, each through the ChannelProcessor.
// Per-channel failures never stop the run.
type RunCoordinator struct {
	processor *ChannelProcessor
	config    *domain.Config
	notifier  RunNotifier
	logs      *logger.LoggerAdapter
}

// NewRunCoordinator creates a new run coordinator. notifier may be nil.
func NewRunCoordinator(
	processor *ChannelProcessor,
	config *domain.Config,
	notifier RunNotifier,
	logs *logger.LoggerAdapter,
) *RunCoordinator {
	return &RunCoordinator{
		processor: processor,
		config:    config,
		notifier:  notifier,
		logs:      logs,
	}
}

// Run processes every configured channel and returns the aggregated
// summary. The returned error is ErrNoChannelsProcessed when not a single
// channel got as far as a listing, nil otherwise.
func (rc *RunCoordinator) Run(ctx context.Context) (*domain.RunSummary, error) {
	summary := &domain.RunSummary{RunID: uuid.New().String()}

	rc.logs.LogRunEvent("run_started",
		zap.String("run_id", summary.RunID),
		zap.Int("channels", len(rc.config.Channels)),
		zap.Int("max_concurrent", rc.config.Download.MaxConcurrent),
		zap.Int("rate_limit_seconds", rc.config.Download.RateLimitSeconds))

	for i, channel := range rc.config.Channels {
		rc.logs.Run().Info("Processing channel",
			zap.Int("index", i+1),
			zap.Int("total", len(rc.config.Channels)),
			zap.String("channel", channel.Reference))

		outputDir, err := ResolveOutputDir(rc.config, channel)
		if err == nil {
			err = os.MkdirAll(outputDir, 0755)
		}
		if err != nil {
			if rc.notifier != nil {
				rc.notifier.NotifyChannelFailed(channel.Reference, err)
			}
			summary.Merge(rc.channelSetupFailure(channel, err))
			continue
		}

		channelSummary := rc.processor.ProcessChannel(ctx, channel, outputDir)
		if channelSummary.ChannelFailed && rc.notifier != nil {
			rc.notifier.NotifyChannelFailed(channel.Reference, errors.New(channelSummary.FailureReason))
		}
		summary.Merge(channelSummary)
	}

	rc.logs.LogRunEvent("run_completed",
		zap.String("run_id", summary.RunID),
		zap.Int("channels", summary.Channels),
		zap.Int("channels_failed", summary.ChannelsFailed),
		zap.Int("listed", summary.Listed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("skipped_aspect", summary.SkippedAspect),
		zap.Int("skipped_existing", summary.SkippedExisting),
		zap.Int("failed", summary.Failed))

	if rc.notifier != nil {
		rc.notifier.NotifyRunCompleted(summary)
	}

	if summary.AllChannelsFailed() {
		return summary, ErrNoChannelsProcessed
	}
	return summary, nil
}

// channelSetupFailure records a channel that failed before processing could
// start, for example with no usable output directory.
func (rc *RunCoordinator) channelSetupFailure(channel domain.ChannelSpec, err error) domain.ChannelSummary {
	rc.logs.LogError("Channel setup failed",
		zap.String("channel", channel.Reference),
		zap.Error(err))
	rc.logs.LogRunEvent("channel_failed",
		zap.String("channel", channel.Reference),
		zap.String("reason", "setup"))

	return domain.ChannelSummary{
		Channel:       channel.Reference,
		ChannelFailed: true,
		FailureReason: err.Error(),
	}
}
