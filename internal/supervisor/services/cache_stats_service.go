// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package services

import (
	"context"
	"time"

	"github.com/tomtom215/reelhouse/internal/cache"
	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/metrics"
)

// DefaultStatsInterval is used when NewCacheStatsService gets a
// non-positive interval.
const DefaultStatsInterval = time.Minute

// PoolStatter reports database pool usage. Satisfied by *database.DB.
type PoolStatter interface {
	PoolStats() (acquired, idle, total int32)
}

// valueLogCollector is implemented by backends that need periodic GC.
type valueLogCollector interface {
	RunGC() error
}

type unwrapper interface {
	Unwrap() cache.Backend
}

// CacheStatsService publishes cache key counts and pool usage as gauges on
// every tick. A nil pool is skipped.
type CacheStatsService struct {
	cache    *cache.ResponseCache
	pool     PoolStatter
	interval time.Duration
	name     string
}

// NewCacheStatsService creates the reporter.
func NewCacheStatsService(rc *cache.ResponseCache, pool PoolStatter, interval time.Duration) *CacheStatsService {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &CacheStatsService{
		cache:    rc,
		pool:     pool,
		interval: interval,
		name:     "cache-stats",
	}
}

// Serve implements suture.Service. It samples once immediately, then on
// each tick until ctx is canceled.
func (s *CacheStatsService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.collect(ctx)
		}
	}
}

func (s *CacheStatsService) collect(ctx context.Context) {
	if s.pool != nil {
		acquired, idle, total := s.pool.PoolStats()
		metrics.DBPoolConnections.WithLabelValues("acquired").Set(float64(acquired))
		metrics.DBPoolConnections.WithLabelValues("idle").Set(float64(idle))
		metrics.DBPoolConnections.WithLabelValues("total").Set(float64(total))
	}

	if !s.cache.Enabled() {
		return
	}

	stats := s.cache.Stats(ctx)
	for ns, n := range stats.KeysByPattern {
		metrics.CacheKeys.WithLabelValues(ns).Set(float64(n))
	}

	backend := s.cache.Backend()
	if u, ok := backend.(unwrapper); ok {
		backend = u.Unwrap()
	}
	if gc, ok := backend.(valueLogCollector); ok {
		if err := gc.RunGC(); err != nil {
			logging.Warn().Err(err).Str("backend", backend.Name()).Msg("Cache value log GC failed")
		}
	}
}

// String implements fmt.Stringer.
func (s *CacheStatsService) String() string {
	return s.name
}
