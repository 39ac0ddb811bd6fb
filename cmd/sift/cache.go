package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/sift/pkg/adapters/sqlite"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local note cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show last sync time and staleness per partition",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cache := openCache()
		defer cache.Close()

		ctx := context.Background()
		for _, archived := range []bool{false, true} {
			name := "active"
			if archived {
				name = "archived"
			}
			last := cache.LastSync(ctx, archived)
			if last.IsZero() {
				fmt.Printf("%s: never populated (stale)\n", name)
				continue
			}
			state := "fresh"
			if cache.Stale(ctx, archived) {
				state = "stale"
			}
			fmt.Printf("%s: last sync %s (%s)\n", name, last.Format("2006-01-02 15:04:05"), state)
		}
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe all cached notes and sync metadata",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cache := openCache()
		defer cache.Close()

		if !cache.Clear(context.Background()) {
			fatal("Error clearing cache", errors.New("cache clear failed"))
		}
		fmt.Println("cache cleared")
	},
}

func openCache() *sqlite.Cache {
	settings, err := resolveCacheSettings()
	if err != nil {
		fatal("Error resolving settings", err)
	}
	cache, err := sqlite.Open(settings.cachePath, sqlite.WithLogger(slog.Default()))
	if err != nil {
		fatal("Error opening cache", err)
	}
	return cache
}

// resolveCacheSettings is resolveSettings without the snapshot requirement;
// cache subcommands only need the cache path.
func resolveCacheSettings() (resolved, error) {
	cfg, err := loadConfig()
	if err != nil {
		return resolved{}, err
	}
	r := resolved{cachePath: firstNonEmpty(cachePath, cfg.CachePath)}
	if r.cachePath == "" {
		return resolved{}, errors.New("no cache path given (use --cache or .sift.yaml)")
	}
	return r, nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
