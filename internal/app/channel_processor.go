package app

import (
	"context"

	"github.com/yourusername/yt-archiver-go/internal/domain"
	"github.com/yourusername/yt-archiver-go/pkg/logger"
	"go.uber.org/zap"
)

// ChannelProcessor takes one channel end to end: resolve the reference, list
// videos shallowly, classify and deduplicate, then push the remainder
// through the bounded worker pool. Failures at the channel level (bad
// reference, unreachable listing) mark the whole channel failed; the run
// moves on.
type ChannelProcessor struct {
	lister      domain.VideoLister
	downloadMgr *DownloadManager
	store       domain.ArchiveStore
	repo        domain.HistoryRepository
	config      *domain.DownloadConfig
	logs        *logger.LoggerAdapter
}

// NewChannelProcessor creates a new channel processor. repo may be nil when
// history persistence is disabled.
func NewChannelProcessor(
	lister domain.VideoLister,
	downloadMgr *DownloadManager,
	store domain.ArchiveStore,
	repo domain.HistoryRepository,
	config *domain.DownloadConfig,
	logs *logger.LoggerAdapter,
) *ChannelProcessor {
	return &ChannelProcessor{
		lister:      lister,
		downloadMgr: downloadMgr,
		store:       store,
		repo:        repo,
		config:      config,
		logs:        logs,
	}
}

// ProcessChannel archives one channel into outputDir and returns its
// summary. Submission follows listing order; completions are unordered and
// folded in commutatively. Videos skipped by the aspect filter or the
// archive store never occupy a pool slot.
func (cp *ChannelProcessor) ProcessChannel(ctx context.Context, channel domain.ChannelSpec, outputDir string) domain.ChannelSummary {
	summary := domain.ChannelSummary{Channel: channel.Reference}

	channelURL, err := domain.ResolveChannelURL(channel.Reference)
	if err != nil {
		cp.failChannel(&summary, "invalid channel reference", err)
		return summary
	}

	cp.logs.LogRunEvent("channel_started",
		zap.String("channel", channel.Reference),
		zap.String("url", channelURL),
		zap.String("dir", outputDir))

	videos, err := cp.lister.List(ctx, channelURL)
	if err != nil {
		cp.failChannel(&summary, "listing unavailable", err)
		return summary
	}

	videos = dedupeByID(videos)
	summary.Listed = len(videos)

	pool := NewWorkerPool(cp.config.MaxConcurrent, cp.config.RateLimit())
	pool.Start(ctx)

	statuses := make(chan domain.RecordStatus, len(videos))

	for _, video := range videos {
		record := domain.NewDownloadRecord(video, channel.Reference, outputDir)
		cp.saveRecord(record)

		if domain.ClassifyAspect(video) == domain.SkipAspect {
			record.MarkSkippedAspect()
			cp.updateRecord(record)
			summary.Count(domain.StatusSkippedAspect)
			cp.logs.LogDownloadEvent("video_skipped",
				zap.String("video_id", video.ID),
				zap.String("reason", "aspect_ratio"))
			continue
		}

		exists, err := cp.store.Exists(outputDir, video.ID)
		if err != nil {
			// An unreadable store must not lose videos: log and download.
			cp.logs.LogError("Archive store lookup failed",
				zap.String("video_id", video.ID),
				zap.String("dir", outputDir),
				zap.Error(err))
		}
		if exists {
			record.MarkSkippedExisting()
			cp.updateRecord(record)
			summary.Count(domain.StatusSkippedExisting)
			cp.logs.LogDownloadEvent("video_skipped",
				zap.String("video_id", video.ID),
				zap.String("reason", "already_archived"))
			continue
		}

		rec, vid := record, video
		pool.Submit(func(ctx context.Context) {
			cp.downloadMgr.ProcessDownload(ctx, rec, vid)
			statuses <- rec.Status
		})
	}

	pool.Shutdown()
	close(statuses)

	for status := range statuses {
		summary.Count(status)
	}

	cp.logs.LogRunEvent("channel_completed",
		zap.String("channel", channel.Reference),
		zap.Int("listed", summary.Listed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("skipped_aspect", summary.SkippedAspect),
		zap.Int("skipped_existing", summary.SkippedExisting),
		zap.Int("failed", summary.Failed))

	return summary
}

// failChannel marks the summary channel-fatal and logs the cause
func (cp *ChannelProcessor) failChannel(summary *domain.ChannelSummary, reason string, err error) {
	summary.ChannelFailed = true
	summary.FailureReason = err.Error()

	cp.logs.LogError("Channel processing failed",
		zap.String("channel", summary.Channel),
		zap.String("reason", reason),
		zap.Error(err))
	cp.logs.LogRunEvent("channel_failed",
		zap.String("channel", summary.Channel),
		zap.String("reason", reason))
}

func (cp *ChannelProcessor) saveRecord(record *domain.DownloadRecord) {
	if cp.repo == nil {
		return
	}
	if err := cp.repo.Save(record); err != nil {
		cp.logs.LogError("Failed to save download record",
			zap.String("id", record.ID),
			zap.Error(err))
	}
}

func (cp *ChannelProcessor) updateRecord(record *domain.DownloadRecord) {
	if cp.repo == nil {
		return
	}
	if err := cp.repo.Update(record); err != nil {
		cp.logs.LogError("Failed to update download record",
			zap.String("id", record.ID),
			zap.Error(err))
	}
}

// dedupeByID drops repeated listing entries, keeping first occurrence order.
// At most one record may exist per video within a run.
func dedupeByID(videos []domain.VideoDescriptor) []domain.VideoDescriptor {
	seen := make(map[string]bool, len(videos))
	out := videos[:0]
	for _, v := range videos {
		if v.ID == "" || seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		out = append(out, v)
	}
	return out
}
