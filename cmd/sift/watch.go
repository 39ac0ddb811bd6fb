package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/sift/pkg/adapters/feed"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the snapshot file and keep the cache in sync",
	Long: `Watch the snapshot file for changes and funnel every detected
insert, update and delete into the local cache. Runs until interrupted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := resolveSettings()
		if err != nil {
			fatal("Error resolving settings", err)
		}
		if settings.cachePath == "" {
			fatal("Error starting watch", fmt.Errorf("watch needs a cache (use --cache or .sift.yaml)"))
		}

		service, err := buildService(settings)
		if err != nil {
			fatal("Error initializing sift", err)
		}
		defer service.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher := feed.NewWatcher(settings.snapshot, feed.WithLogger(slog.Default()))
		events, err := watcher.Watch(ctx)
		if err != nil {
			fatal("Error watching snapshot", err)
		}

		slog.Info("watching snapshot", "path", settings.snapshot)
		for ev := range events {
			if err := service.ApplyChange(ctx, ev); err != nil {
				slog.Warn("apply change", "type", ev.Type, "id", ev.ID, "error", err)
				continue
			}
			slog.Info("applied change", "type", ev.Type, "id", ev.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
