package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/yt-archiver-go/internal/domain"
)

const version = "1.0.0"

var (
	configPath string
	rootCmd    = &cobra.Command{
		Use:   "yt-archiver",
		Short: "YT-Archiver - Channel archiver for YouTube",
		Long: `A command-line tool that archives YouTube channels: resolves each
configured channel reference, lists its videos, filters out portrait clips,
and downloads everything not archived yet.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [reference]",
	Short: "Resolve a channel reference to its canonical listing URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url, err := domain.ResolveChannelURL(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(url)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("yt-archiver %s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
