// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelhouse/internal/cache"
	"github.com/tomtom215/reelhouse/internal/metrics"
)

var _ suture.Service = (*CacheStatsService)(nil)

type fakePool struct{ acquired, idle, total int32 }

func (p fakePool) PoolStats() (int32, int32, int32) { return p.acquired, p.idle, p.total }

// gcBackend is a memory backend that counts GC runs.
type gcBackend struct {
	*cache.MemoryBackend
	runs atomic.Int32
}

func (g *gcBackend) RunGC() error {
	g.runs.Add(1)
	return nil
}

func newMemoryCache(t *testing.T) *cache.ResponseCache {
	t.Helper()
	backend := cache.NewMemoryBackend(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })
	return cache.NewResponseCache(backend, time.Second)
}

func TestCacheStatsService_Collect(t *testing.T) {
	rc := newMemoryCache(t)
	ctx := t.Context()
	entry := cache.Entry{Status: 200, Body: []byte(`{}`)}
	rc.Set(ctx, cache.Key(cache.NamespaceSeries, "/api/series", ""), entry, time.Minute)
	rc.Set(ctx, cache.Key(cache.NamespaceSeries, "/api/series", "page=2"), entry, time.Minute)
	rc.Set(ctx, cache.Key(cache.NamespaceFeedbackDetail, "/api/feedback/FB1", ""), entry, time.Minute)

	svc := NewCacheStatsService(rc, fakePool{acquired: 2, idle: 3, total: 5}, time.Hour)
	svc.collect(ctx)

	keys := map[string]float64{
		cache.NamespaceSeries:         2,
		cache.NamespaceFeedbackDetail: 1,
		cache.NamespaceEpisode:        0,
	}
	for ns, want := range keys {
		if got := testutil.ToFloat64(metrics.CacheKeys.WithLabelValues(ns)); got != want {
			t.Errorf("cache keys[%s] = %v, want %v", ns, got, want)
		}
	}

	pool := map[string]float64{"acquired": 2, "idle": 3, "total": 5}
	for state, want := range pool {
		if got := testutil.ToFloat64(metrics.DBPoolConnections.WithLabelValues(state)); got != want {
			t.Errorf("pool[%s] = %v, want %v", state, got, want)
		}
	}
}

func TestCacheStatsService_DisabledCache(t *testing.T) {
	svc := NewCacheStatsService(cache.NewResponseCache(nil, 0), nil, 0)
	if svc.interval != DefaultStatsInterval {
		t.Errorf("interval = %v, want %v", svc.interval, DefaultStatsInterval)
	}
	// Must not panic with neither a cache nor a pool.
	svc.collect(t.Context())
}

func TestCacheStatsService_RunsGCThroughBreaker(t *testing.T) {
	gc := &gcBackend{MemoryBackend: cache.NewMemoryBackend(time.Minute)}
	t.Cleanup(func() { _ = gc.Close() })
	rc := cache.NewResponseCache(cache.NewBreakerBackend(gc, cache.BreakerSettings{}), time.Second)

	svc := NewCacheStatsService(rc, nil, time.Hour)
	svc.collect(t.Context())
	svc.collect(t.Context())

	if got := gc.runs.Load(); got != 2 {
		t.Errorf("GC runs = %d, want 2", got)
	}
}

func TestCacheStatsService_BadgerBackend(t *testing.T) {
	backend, err := cache.OpenBadgerBackend(t.TempDir())
	if err != nil {
		t.Fatalf("OpenBadgerBackend() error = %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })

	rc := cache.NewResponseCache(backend, time.Second)
	rc.Set(t.Context(), cache.Key(cache.NamespaceEpisode, "/api/episodes", ""), cache.Entry{Status: 200, Body: []byte(`[]`)}, time.Minute)

	NewCacheStatsService(rc, nil, time.Hour).collect(t.Context())

	if got := testutil.ToFloat64(metrics.CacheKeys.WithLabelValues(cache.NamespaceEpisode)); got != 1 {
		t.Errorf("cache keys[episode] = %v, want 1", got)
	}
}

func TestCacheStatsService_Serve(t *testing.T) {
	gc := &gcBackend{MemoryBackend: cache.NewMemoryBackend(time.Minute)}
	t.Cleanup(func() { _ = gc.Close() })
	svc := NewCacheStatsService(cache.NewResponseCache(gc, time.Second), nil, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(time.Second)
	for gc.runs.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if got := gc.runs.Load(); got < 3 {
		t.Errorf("GC runs = %d, want at least 3 (initial sample plus ticks)", got)
	}
	if svc.String() != "cache-stats" {
		t.Errorf("String() = %q", svc.String())
	}
}
