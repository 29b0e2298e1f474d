package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/yourusername/yt-archiver-go/internal/domain"
	"go.uber.org/zap"
)

// subtitleLangs scopes transcripts to English variants, dropping live chat.
const subtitleLangs = "en.*,en,-live_chat"

// YtdlpFetcher downloads a video's media, metadata, and transcript into a
// directory through yt-dlp: merged mkv, info JSON, description file, and
// subtitles written next to each other. One Fetch call is one attempt; any
// failure fails the attempt as a whole.
type YtdlpFetcher struct {
	cookiesFile string
	logsDir     string
	logger      *zap.Logger
}

// NewYtdlpFetcher creates a new fetcher. cookiesFile may be empty; logsDir
// receives the per-day raw output logs.
func NewYtdlpFetcher(cookiesFile, logsDir string, logger *zap.Logger) *YtdlpFetcher {
	return &YtdlpFetcher{
		cookiesFile: cookiesFile,
		logsDir:     logsDir,
		logger:      logger,
	}
}

// Fetch downloads one video into outputDir
func (f *YtdlpFetcher) Fetch(ctx context.Context, video domain.VideoDescriptor, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dl := ytdlp.New().
		Output(filepath.Join(outputDir, "%(title)s [%(id)s].%(ext)s")).
		Format("bestvideo+bestaudio/best").
		MergeOutputFormat("mkv").
		WriteInfoJSON().
		WriteDescription().
		WriteSubs().
		WriteAutoSubs().
		SubLangs(subtitleLangs).
		NoPlaylist().
		CacheDir(filepath.Join(outputDir, ".cache")).
		Quiet().
		NoWarnings()

	if f.cookiesFile != "" && fileExists(f.cookiesFile) {
		dl = dl.Cookies(f.cookiesFile)
	}

	dl.ProgressFunc(time.Second, func(update ytdlp.ProgressUpdate) {
		if update.TotalBytes > 0 {
			percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
			f.logger.Debug("Download progress",
				zap.String("video_id", video.ID),
				zap.Float64("percent", percent))
		}
	})

	downloadLog, err := f.openLogFile()
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer downloadLog.Close()

	f.writeLogHeader(downloadLog, video)

	result, err := dl.Run(ctx, video.WatchURL())
	if result != nil {
		if result.Stdout != "" {
			downloadLog.WriteString(result.Stdout + "\n")
		}
		if result.Stderr != "" {
			downloadLog.WriteString(result.Stderr + "\n")
		}
	}

	if err != nil {
		f.writeLogFooter(downloadLog, false, fmt.Sprintf("yt-dlp failed: %v", err))
		return fmt.Errorf("yt-dlp failed: %w", err)
	}

	f.writeLogFooter(downloadLog, true, fmt.Sprintf("Downloaded: %s", video.ID))
	return nil
}

// openLogFile opens the download log file for today. All raw yt-dlp output
// goes to this single file.
func (f *YtdlpFetcher) openLogFile() (*os.File, error) {
	if err := os.MkdirAll(f.logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	dateStr := time.Now().Format("20060102")
	downloadPath := filepath.Join(f.logsDir, "download-"+dateStr+".log")
	return os.OpenFile(downloadPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// writeLogHeader writes the download start marker
func (f *YtdlpFetcher) writeLogHeader(file *os.File, video domain.VideoDescriptor) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	file.WriteString(fmt.Sprintf("\n=== [%s] Download: %s ===\n", timestamp, video.ID))
	file.WriteString(fmt.Sprintf("URL: %s\n", video.WatchURL()))
}

// writeLogFooter writes the download end marker
func (f *YtdlpFetcher) writeLogFooter(file *os.File, success bool, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	file.WriteString(fmt.Sprintf("[%s] %s: %s\n", timestamp, status, message))
	file.WriteString("=== END ===\n\n")
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
