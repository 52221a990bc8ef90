// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelhouse/internal/metrics"
)

func newTestResponseCache(t *testing.T) (*ResponseCache, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })
	return NewResponseCache(backend, time.Second), backend
}

func TestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		path   string
		query  string
		want   string
	}{
		{"no query", "series", "/api/series", "", "series:/api/series:"},
		{"with query", "series", "/api/series", "page=2&per_page=5", "series:/api/series:page=2&per_page=5"},
		{"detail", "episode_detail", "/api/episodes/EP1", "", "episode_detail:/api/episodes/EP1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Key(tt.prefix, tt.path, tt.query); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}

	// Query strings are not normalized
	if Key("series", "/api/series", "a=1&b=2") == Key("series", "/api/series", "b=2&a=1") {
		t.Error("differently ordered query strings must produce different keys")
	}
	if Key("series", "/api/series", "x=1") != Key("series", "/api/series", "x=1") {
		t.Error("identical requests must produce identical keys")
	}
}

func TestPatternCoversNamespaceOnly(t *testing.T) {
	t.Parallel()

	for _, ns := range Namespaces {
		key := Key(ns, "/api/x", "q=1")
		for _, other := range Namespaces {
			want := ns == other
			if got := Match(Pattern(other), key); got != want {
				t.Errorf("Match(%q, %q) = %v, want %v", Pattern(other), key, got, want)
			}
		}
	}
}

func TestResponseCache_RoundTrip(t *testing.T) {
	rc, _ := newTestResponseCache(t)
	ctx := context.Background()
	key := Key(NamespaceSeries, "/api/series", "")

	if _, ok := rc.Get(ctx, key); ok {
		t.Fatal("expected miss on empty cache")
	}

	want := Entry{Status: 200, Body: json.RawMessage(`{"series":[],"total":0}`), ContentType: "application/json"}
	rc.Set(ctx, key, want, time.Minute)

	got, ok := rc.Get(ctx, key)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got.Status != want.Status || string(got.Body) != string(want.Body) || got.ContentType != want.ContentType {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	stats := rc.Stats(ctx)
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", stats.Hits, stats.Misses)
	}
}

func TestResponseCache_RecordsPrefixMetrics(t *testing.T) {
	rc, _ := newTestResponseCache(t)
	ctx := context.Background()

	hits := metrics.CacheHits.WithLabelValues(NamespaceFeedbackDetail)
	misses := metrics.CacheMisses.WithLabelValues(NamespaceFeedbackDetail)
	h0, m0 := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	key := Key(NamespaceFeedbackDetail, "/api/feedback/FB1", "")
	rc.Get(ctx, key)
	rc.Set(ctx, key, Entry{Status: 200, Body: json.RawMessage(`{}`)}, time.Minute)
	rc.Get(ctx, key)

	if testutil.ToFloat64(hits)-h0 != 1 || testutil.ToFloat64(misses)-m0 != 1 {
		t.Error("expected one hit and one miss under feedback_detail")
	}
}

func TestResponseCache_Invalidate(t *testing.T) {
	rc, backend := newTestResponseCache(t)
	ctx := context.Background()

	entry := Entry{Status: 200, Body: json.RawMessage(`{}`)}
	keys := map[string]string{
		NamespaceSeries:       Key(NamespaceSeries, "/api/series", ""),
		NamespaceSeriesDetail: Key(NamespaceSeriesDetail, "/api/series/WS1", ""),
		NamespaceEpisode:      Key(NamespaceEpisode, "/api/episodes", ""),
		NamespaceFeedback:     Key(NamespaceFeedback, "/api/feedback", ""),
	}
	for _, k := range keys {
		rc.Set(ctx, k, entry, time.Minute)
	}

	// An episode write invalidates the episode and series namespaces
	rc.Invalidate(ctx,
		Pattern(NamespaceEpisode), Pattern(NamespaceEpisodeDetail),
		Pattern(NamespaceSeries), Pattern(NamespaceSeriesDetail))

	for ns, k := range keys {
		_, ok, _ := backend.Get(ctx, k)
		wantKept := ns == NamespaceFeedback
		if ok != wantKept {
			t.Errorf("%s present = %v, want %v", ns, ok, wantKept)
		}
	}

	if n := rc.DeletePattern(ctx, Pattern(NamespaceSeries)); n != 0 {
		t.Errorf("DeletePattern with no matches = %d, want 0", n)
	}
}

func TestResponseCache_ClearAllAndStats(t *testing.T) {
	rc, _ := newTestResponseCache(t)
	ctx := context.Background()

	entry := Entry{Status: 200, Body: json.RawMessage(`{}`)}
	rc.Set(ctx, Key(NamespaceSeries, "/api/series", ""), entry, time.Minute)
	rc.Set(ctx, Key(NamespaceSeries, "/api/series", "page=2"), entry, time.Minute)
	rc.Set(ctx, Key(NamespaceEpisodeDetail, "/api/episodes/EP1", ""), entry, time.Minute)

	stats := rc.Stats(ctx)
	if stats.Status != "connected" || stats.Backend != "memory" {
		t.Errorf("status/backend = %q/%q", stats.Status, stats.Backend)
	}
	if stats.TotalKeys != 3 {
		t.Errorf("TotalKeys = %d, want 3", stats.TotalKeys)
	}
	if stats.KeysByPattern[NamespaceSeries] != 2 || stats.KeysByPattern[NamespaceEpisodeDetail] != 1 {
		t.Errorf("KeysByPattern = %v", stats.KeysByPattern)
	}
	if len(stats.KeysByPattern) != len(Namespaces) {
		t.Errorf("KeysByPattern has %d namespaces, want %d", len(stats.KeysByPattern), len(Namespaces))
	}

	if err := rc.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if rc.Stats(ctx).TotalKeys != 0 {
		t.Error("keys remain after ClearAll")
	}
}

func TestResponseCache_BackendFaultIsMiss(t *testing.T) {
	backend := newFaultyBackend()
	defer backend.Close()
	rc := NewResponseCache(backend, time.Second)
	ctx := context.Background()
	key := Key(NamespaceSeries, "/api/series", "")

	rc.Set(ctx, key, Entry{Status: 200, Body: json.RawMessage(`{}`)}, time.Minute)
	backend.down.Store(true)

	errCounter := metrics.CacheErrors.WithLabelValues("faulty", "get")
	before := testutil.ToFloat64(errCounter)

	if _, ok := rc.Get(ctx, key); ok {
		t.Error("faulty backend must read as a miss")
	}
	if testutil.ToFloat64(errCounter)-before != 1 {
		t.Error("backend fault not counted")
	}

	// None of these may panic or block
	rc.Set(ctx, key, Entry{Status: 200}, time.Minute)
	rc.Delete(ctx, key)
	if n := rc.DeletePattern(ctx, "series:*"); n != 0 {
		t.Errorf("DeletePattern on fault = %d", n)
	}
	if err := rc.ClearAll(ctx); err == nil {
		t.Error("ClearAll should report the fault")
	}
	if stats := rc.Stats(ctx); stats.TotalKeys != 0 {
		t.Errorf("Stats on fault = %+v", stats)
	}

	backend.down.Store(false)
	if _, ok := rc.Get(ctx, key); !ok {
		t.Error("entry should be readable once the backend recovers")
	}
}

func TestResponseCache_TimeoutIsMiss(t *testing.T) {
	backend := slowBackend{NewMemoryBackend(time.Minute)}
	defer backend.Close()
	rc := NewResponseCache(backend, 30*time.Millisecond)

	start := time.Now()
	if _, ok := rc.Get(context.Background(), "series:/api/series:"); ok {
		t.Error("timed out Get must be a miss")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Get took %v, timeout not applied", elapsed)
	}
}

func TestResponseCache_UndecodableEntryIsMiss(t *testing.T) {
	rc, backend := newTestResponseCache(t)
	ctx := context.Background()
	key := Key(NamespaceSeries, "/api/series", "")

	_ = backend.Set(ctx, key, []byte("not json"), time.Minute)

	if _, ok := rc.Get(ctx, key); ok {
		t.Error("undecodable entry must be a miss")
	}
	if _, ok, _ := backend.Get(ctx, key); ok {
		t.Error("undecodable entry should be removed")
	}
}

func TestResponseCache_Disabled(t *testing.T) {
	rc := NewResponseCache(nil, 0)
	ctx := context.Background()

	if rc.Enabled() {
		t.Fatal("nil backend should disable the cache")
	}
	rc.Set(ctx, "k", Entry{Status: 200}, time.Minute)
	if _, ok := rc.Get(ctx, "k"); ok {
		t.Error("disabled cache must always miss")
	}
	if rc.DeletePattern(ctx, "*") != 0 {
		t.Error("disabled DeletePattern should remove nothing")
	}
	if err := rc.ClearAll(ctx); err != nil {
		t.Errorf("ClearAll on disabled cache = %v", err)
	}
	if s := rc.Stats(ctx); s.Status != "disabled" {
		t.Errorf("Status = %q, want disabled", s.Status)
	}

	var nilCache *ResponseCache
	if nilCache.Enabled() {
		t.Error("nil *ResponseCache should report disabled")
	}
}

func TestResponseCache_BreakerOpenReportsDegraded(t *testing.T) {
	inner := newFaultyBackend()
	inner.down.Store(true)
	breaker := NewBreakerBackend(inner, BreakerSettings{Failures: 1, Timeout: time.Hour})
	defer breaker.Close()
	rc := NewResponseCache(breaker, time.Second)
	ctx := context.Background()

	rc.Get(ctx, "series:/api/series:")
	if s := rc.Stats(ctx); s.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", s.Status)
	}
}
