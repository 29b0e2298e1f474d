package app

import (
	"context"

	"github.com/yourusername/yt-archiver-go/internal/domain"
	"github.com/yourusername/yt-archiver-go/pkg/logger"
	"go.uber.org/zap"
)

// maxDownloadAttempts bounds the attempt sequence for one video. There is no
// backoff between attempts.
const maxDownloadAttempts = 3

// DownloadManager runs the download attempt sequence for single videos:
// media, metadata, and transcript fetched as one unit, retried as a whole on
// failure, with the terminal status written back to the record.
type DownloadManager struct {
	fetcher domain.VideoFetcher
	store   domain.ArchiveStore
	repo    domain.HistoryRepository
	logs    *logger.LoggerAdapter
}

// NewDownloadManager creates a new download manager. repo may be nil when
// history persistence is disabled.
func NewDownloadManager(
	fetcher domain.VideoFetcher,
	store domain.ArchiveStore,
	repo domain.HistoryRepository,
	logs *logger.LoggerAdapter,
) *DownloadManager {
	return &DownloadManager{
		fetcher: fetcher,
		store:   store,
		repo:    repo,
		logs:    logs,
	}
}

// ProcessDownload downloads one video into its output directory. The record
// always ends terminal: Succeeded, or Failed after the attempt bound. The
// returned error is the final *domain.DownloadError for a failed video, nil
// otherwise; callers treat it as a status, not a reason to abort.
func (dm *DownloadManager) ProcessDownload(ctx context.Context, record *domain.DownloadRecord, video domain.VideoDescriptor) error {
	record.MarkDownloading()
	dm.persist(record)

	dm.logs.LogDownloadEvent("download_started",
		zap.String("id", record.ID),
		zap.String("video_id", video.ID),
		zap.String("title", video.Title),
		zap.String("dir", record.OutputDir))

	result := RunWithRetry(ctx, maxDownloadAttempts, func(ctx context.Context) error {
		return dm.fetcher.Fetch(ctx, video, record.OutputDir)
	}, func(attempt int, err error) {
		dm.logs.Download().Warn("Download attempt failed",
			zap.String("video_id", video.ID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxDownloadAttempts),
			zap.Error(err))
	})

	if result.Succeeded() {
		if err := dm.store.Record(record.OutputDir, video.ID); err != nil {
			dm.logs.LogError("Failed to record archive marker",
				zap.String("video_id", video.ID),
				zap.String("dir", record.OutputDir),
				zap.Error(err))
		}

		record.MarkSucceeded(result.Attempts)
		dm.persist(record)

		dm.logs.LogDownloadEvent("download_completed",
			zap.String("id", record.ID),
			zap.String("video_id", video.ID),
			zap.Int("attempts", result.Attempts))
		return nil
	}

	finalErr := &domain.DownloadError{
		VideoID:  video.ID,
		Attempts: result.Attempts,
		Err:      result.Err,
	}

	record.MarkFailed(result.Err, result.Attempts)
	dm.persist(record)

	dm.logs.LogError("Download failed after retries",
		zap.String("id", record.ID),
		zap.String("video_id", video.ID),
		zap.Int("attempts", result.Attempts),
		zap.Error(result.Err))

	return finalErr
}

// persist writes the record through the history repository. History is
// best-effort: failures are logged, never propagated into the run.
func (dm *DownloadManager) persist(record *domain.DownloadRecord) {
	if dm.repo == nil {
		return
	}
	if err := dm.repo.Update(record); err != nil {
		dm.logs.LogError("Failed to update download record",
			zap.String("id", record.ID),
			zap.Error(err))
	}
}
