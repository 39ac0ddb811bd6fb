package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	configPath   string
	snapshotPath string
	cachePath    string
	userID       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Filter, sort and query note snapshots with a local SQLite cache",
	Long: `sift operates on note snapshots exported from a hosted backend.
It filters, sorts and queries them in memory and mirrors them into a
best-effort local cache so fresh reads can skip the network.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default .sift.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "Note snapshot file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "SQLite cache path (empty disables the cache)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "Owning user id")
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
