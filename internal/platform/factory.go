package platform

import (
	"github.com/aretw0/sift/pkg/adapters/sqlite"
	"github.com/aretw0/sift/pkg/core"
)

// New wires a core.Service from a snapshot source and options.
//
//	svc, err := sift.New(remote, sift.WithCachePath(".sift/cache.db"))
func New(snapshots core.Snapshots, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	cache := o.cache
	if cache == nil && o.cachePath != "" {
		cacheOpts := []sqlite.Option{}
		if o.logger != nil {
			cacheOpts = append(cacheOpts, sqlite.WithLogger(o.logger))
		}
		if o.staleAfter > 0 {
			cacheOpts = append(cacheOpts, sqlite.WithStaleAfter(o.staleAfter))
		}
		if o.clock != nil {
			cacheOpts = append(cacheOpts, sqlite.WithClock(o.clock))
		}
		c, err := sqlite.Open(o.cachePath, cacheOpts...)
		if err != nil {
			return nil, err
		}
		cache = c
	}

	svcOpts := []core.ServiceOption{}
	if o.logger != nil {
		svcOpts = append(svcOpts, core.WithServiceLogger(o.logger))
	}
	if o.clock != nil {
		svcOpts = append(svcOpts, core.WithServiceClock(o.clock))
	}
	return core.NewService(snapshots, cache, svcOpts...), nil
}
