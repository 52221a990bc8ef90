// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelhouse/internal/cache"
	"github.com/tomtom215/reelhouse/internal/config"
	"github.com/tomtom215/reelhouse/internal/logging"
)

// memoryCleanupInterval is how often the in-memory backend drops expired entries.
const memoryCleanupInterval = time.Minute

// initCacheBackend builds the configured backend. It returns nil for
// CACHE_BACKEND=none. A Redis server that does not answer the startup ping
// is logged and kept: the breaker opens and requests fall through to the
// database until it comes back.
func initCacheBackend(ctx context.Context, cfg *config.CacheConfig) (cache.Backend, error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		redisBackend, err := cache.NewRedisBackend(cfg.RedisURL, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		if err := redisBackend.Ping(pingCtx); err != nil {
			logging.Warn().Err(err).Msg("Redis is unreachable, cache lookups will miss until it recovers")
		}
		return cache.NewBreakerBackend(redisBackend, cache.BreakerSettings{
			Failures: uint32(cfg.BreakerFailures), //nolint:gosec // validated non-negative
			Timeout:  cfg.BreakerTimeout,
		}), nil

	case config.CacheBackendBadger:
		return cache.OpenBadgerBackend(cfg.BadgerPath)

	case config.CacheBackendMemory:
		return cache.NewMemoryBackend(memoryCleanupInterval), nil

	case config.CacheBackendNone, "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
