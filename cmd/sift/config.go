package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/sift"
	"github.com/aretw0/sift/pkg/adapters/feed"
	"github.com/aretw0/sift/pkg/adapters/memory"
	"github.com/aretw0/sift/pkg/core"
)

const defaultConfigFile = ".sift.yaml"

// fileConfig mirrors the optional .sift.yaml. Flags win over file values.
type fileConfig struct {
	Snapshot    string `yaml:"snapshot"`
	CachePath   string `yaml:"cache_path"`
	User        string `yaml:"user"`
	DefaultSort string `yaml:"default_sort"`
	StaleAfter  string `yaml:"stale_after"`
}

// loadConfig reads the config file. A missing default file is not an error.
func loadConfig() (fileConfig, error) {
	path := configPath
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	var cfg fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// resolved merges flags over the config file into effective settings.
type resolved struct {
	snapshot    string
	cachePath   string
	user        string
	defaultSort core.SortField
	staleAfter  time.Duration
}

func resolveSettings() (resolved, error) {
	cfg, err := loadConfig()
	if err != nil {
		return resolved{}, err
	}

	r := resolved{
		snapshot:    firstNonEmpty(snapshotPath, cfg.Snapshot),
		cachePath:   firstNonEmpty(cachePath, cfg.CachePath),
		user:        firstNonEmpty(userID, cfg.User),
		defaultSort: core.SortByUpdatedAt,
	}
	if cfg.DefaultSort != "" {
		field, err := core.ParseSortField(cfg.DefaultSort)
		if err != nil {
			return resolved{}, fmt.Errorf("config default_sort: %w", err)
		}
		r.defaultSort = field
	}
	if cfg.StaleAfter != "" {
		d, err := time.ParseDuration(cfg.StaleAfter)
		if err != nil {
			return resolved{}, fmt.Errorf("config stale_after: %w", err)
		}
		r.staleAfter = d
	}
	if r.snapshot == "" {
		return resolved{}, errors.New("no snapshot file given (use --snapshot or .sift.yaml)")
	}
	return r, nil
}

// buildService loads the snapshot into an in-memory store and wires the
// service, with the SQLite cache when a cache path is configured.
func buildService(r resolved) (*core.Service, error) {
	notes, err := feed.LoadSnapshot(r.snapshot)
	if err != nil {
		return nil, err
	}

	opts := []sift.Option{sift.WithLogger(slog.Default())}
	if r.cachePath != "" {
		opts = append(opts, sift.WithCachePath(r.cachePath))
	}
	if r.staleAfter > 0 {
		opts = append(opts, sift.WithStaleAfter(r.staleAfter))
	}
	return sift.New(memory.NewStore(notes...), opts...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
