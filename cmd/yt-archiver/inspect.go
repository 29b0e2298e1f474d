package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/yt-archiver-go/internal/app"
	"github.com/yourusername/yt-archiver-go/internal/infrastructure"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive statistics from the history database",
	Run: func(cmd *cobra.Command, args []string) {
		repo := openHistory()
		defer repo.Close()

		stats, err := repo.GetStats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Archive Statistics:")
		fmt.Printf("  Total:             %d\n", stats.Total)
		fmt.Printf("  Pending:           %d\n", stats.Pending)
		fmt.Printf("  Downloading:       %d\n", stats.Downloading)
		fmt.Printf("  Succeeded:         %d\n", stats.Succeeded)
		fmt.Printf("  Skipped (aspect):  %d\n", stats.SkippedAspect)
		fmt.Printf("  Skipped (exists):  %d\n", stats.SkippedExisting)
		fmt.Printf("  Failed:            %d\n", stats.Failed)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent download records",
	Run: func(cmd *cobra.Command, args []string) {
		repo := openHistory()
		defer repo.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		filters := make(map[string]interface{})
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			filters["status"] = status
		}
		if channel, _ := cmd.Flags().GetString("channel"); channel != "" {
			filters["channel"] = channel
		}

		records, err := repo.FindRecent(limit, filters)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VIDEO\tCHANNEL\tTITLE\tSTATUS\tATTEMPTS\tUPDATED")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				r.VideoID,
				truncate(r.Channel, 24),
				truncate(r.Title, 40),
				r.Status,
				r.Attempts,
				r.UpdatedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of records to show")
	historyCmd.Flags().StringP("status", "s", "", "Filter by status")
	historyCmd.Flags().String("channel", "", "Filter by channel reference")
}

// openHistory opens the history repository from the configured path
func openHistory() *infrastructure.SQLiteHistoryRepository {
	config, err := app.LoadInspectionConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !config.History.Enabled {
		fmt.Fprintln(os.Stderr, "Error: history is disabled in the configuration")
		os.Exit(1)
	}

	repo, err := infrastructure.NewSQLiteHistoryRepository(config.History.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return repo
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
