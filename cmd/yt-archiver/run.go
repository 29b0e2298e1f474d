package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/yt-archiver-go/internal/app"
	"github.com/yourusername/yt-archiver-go/internal/domain"
	"github.com/yourusername/yt-archiver-go/internal/infrastructure"
	"github.com/yourusername/yt-archiver-go/pkg/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a full archive run over the configured channels",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := loadRunConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := executeRun(config); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().Int("max-concurrent", 0, "Override maximum concurrent downloads per channel")
	runCmd.Flags().Int("rate-limit", 0, "Override per-slot cooldown in seconds")
}

// loadRunConfig loads the configuration and applies run flag overrides
func loadRunConfig(cmd *cobra.Command) (*domain.Config, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("max-concurrent") {
		value, _ := cmd.Flags().GetInt("max-concurrent")
		if value < 1 {
			return nil, fmt.Errorf("max-concurrent must be at least 1")
		}
		config.Download.MaxConcurrent = value
	}

	if cmd.Flags().Changed("rate-limit") {
		value, _ := cmd.Flags().GetInt("rate-limit")
		if value < 0 {
			return nil, fmt.Errorf("rate-limit must not be negative")
		}
		config.Download.RateLimitSeconds = value
	}

	return config, nil
}

func executeRun(config *domain.Config) error {
	if err := os.MkdirAll(config.Logging.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	multiLog, err := logger.NewMultiLogger(logger.MultiLoggerConfig{
		Level:   config.Logging.Level,
		LogsDir: config.Logging.Dir,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer multiLog.Close()

	logAdapter := logger.NewLoggerAdapter(multiLog)
	log := logAdapter.Run()

	log.Info("Starting archive run",
		zap.String("version", version),
		zap.Int("channels", len(config.Channels)),
		zap.Int("max_concurrent", config.Download.MaxConcurrent),
		zap.Int("rate_limit_seconds", config.Download.RateLimitSeconds))

	var repo domain.HistoryRepository
	if config.History.Enabled {
		sqliteRepo, err := infrastructure.NewSQLiteHistoryRepository(config.History.DatabasePath)
		if err != nil {
			log.Warn("Continuing without history: repository unavailable", zap.Error(err))
		} else {
			defer sqliteRepo.Close()
			repo = sqliteRepo
		}
	}

	store := infrastructure.NewDiskArchiveStore()
	lister := infrastructure.NewYtdlpLister(config.CookiesFile, logAdapter.Run())
	fetcher := infrastructure.NewYtdlpFetcher(config.CookiesFile, config.Logging.Dir, logAdapter.Download())
	notifier := infrastructure.NewNotificationService(&config.Notification, logAdapter.Run())

	downloadMgr := app.NewDownloadManager(fetcher, store, repo, logAdapter)
	processor := app.NewChannelProcessor(lister, downloadMgr, store, repo, &config.Download, logAdapter)
	coordinator := app.NewRunCoordinator(processor, config, notifier, logAdapter)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := coordinator.Run(ctx)
	printRunSummary(summary)

	return err
}

func printRunSummary(summary *domain.RunSummary) {
	fmt.Printf("Archive run complete: %d channel(s)\n", summary.Channels)
	fmt.Printf("  Listed:           %d\n", summary.Listed)
	fmt.Printf("  Succeeded:        %d\n", summary.Succeeded)
	fmt.Printf("  Skipped (aspect): %d\n", summary.SkippedAspect)
	fmt.Printf("  Skipped (exists): %d\n", summary.SkippedExisting)
	fmt.Printf("  Failed:           %d\n", summary.Failed)
	if summary.ChannelsFailed > 0 {
		fmt.Printf("  Channels failed:  %d\n", summary.ChannelsFailed)
	}
}
