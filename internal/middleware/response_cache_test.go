// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/reelhouse/internal/cache"
)

func newTestCache(t *testing.T) (*cache.ResponseCache, *cache.MemoryBackend) {
	t.Helper()
	backend := cache.NewMemoryBackend(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })
	return cache.NewResponseCache(backend, time.Second), backend
}

// countingHandler answers with status and body and counts its calls.
func countingHandler(calls *atomic.Int64, status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestCacheResponse_MissThenHit(t *testing.T) {
	rc, _ := newTestCache(t)
	var calls atomic.Int64
	handler := CacheResponse(rc, cache.NamespaceSeries, time.Minute)(
		countingHandler(&calls, http.StatusOK, `{"series":[{"webseries_id":"WS1"}],"total":1}`))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/series?page=1", nil))
	if rec.Header().Get(CacheHeader) != "MISS" {
		t.Errorf("first request X-Cache = %q, want MISS", rec.Header().Get(CacheHeader))
	}

	rec2 := httptest.NewRecorder()
	handler(rec2, httptest.NewRequest("GET", "/api/series?page=1", nil))
	if rec2.Header().Get(CacheHeader) != "HIT" {
		t.Errorf("second request X-Cache = %q, want HIT", rec2.Header().Get(CacheHeader))
	}
	if calls.Load() != 1 {
		t.Errorf("handler called %d times, want 1", calls.Load())
	}
	if rec2.Code != http.StatusOK {
		t.Errorf("cached status = %d", rec2.Code)
	}
	if rec2.Body.String() != rec.Body.String() {
		t.Errorf("cached body = %q, want %q", rec2.Body.String(), rec.Body.String())
	}
	if ct := rec2.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("cached Content-Type = %q", ct)
	}
}

func TestCacheResponse_DifferentQueryIsDifferentKey(t *testing.T) {
	rc, _ := newTestCache(t)
	var calls atomic.Int64
	handler := CacheResponse(rc, cache.NamespaceSeries, time.Minute)(
		countingHandler(&calls, http.StatusOK, `{}`))

	for _, target := range []string{"/api/series?page=1", "/api/series?page=2", "/api/series?page=1"} {
		handler(httptest.NewRecorder(), httptest.NewRequest("GET", target, nil))
	}
	if calls.Load() != 2 {
		t.Errorf("handler called %d times, want 2", calls.Load())
	}
}

func TestCacheResponse_OnlyStores200(t *testing.T) {
	statuses := []int{http.StatusCreated, http.StatusNotFound, http.StatusBadRequest, http.StatusInternalServerError}

	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			rc, backend := newTestCache(t)
			var calls atomic.Int64
			handler := CacheResponse(rc, cache.NamespaceSeriesDetail, time.Minute)(
				countingHandler(&calls, status, `{"error":"x"}`))

			handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/series/WS1", nil))
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest("GET", "/api/series/WS1", nil))

			if calls.Load() != 2 {
				t.Errorf("handler called %d times, want 2", calls.Load())
			}
			if rec.Code != status {
				t.Errorf("status = %d, want %d", rec.Code, status)
			}
			if n, _ := backend.Keys(context.Background(), "*"); n != 0 {
				t.Errorf("%d entries stored for status %d", n, status)
			}
		})
	}
}

func TestCacheResponse_DisabledPassesThrough(t *testing.T) {
	rc := cache.NewResponseCache(nil, 0)
	var calls atomic.Int64
	handler := CacheResponse(rc, cache.NamespaceEpisode, time.Minute)(
		countingHandler(&calls, http.StatusOK, `{}`))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest("GET", "/api/episodes", nil))
		if rec.Header().Get(CacheHeader) != "" {
			t.Errorf("disabled cache set X-Cache = %q", rec.Header().Get(CacheHeader))
		}
	}
	if calls.Load() != 2 {
		t.Errorf("handler called %d times, want 2", calls.Load())
	}
}

func TestInvalidateOnSuccess(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantCleared bool
	}{
		{"created clears", http.StatusCreated, true},
		{"ok clears", http.StatusOK, true},
		{"bad request keeps", http.StatusBadRequest, false},
		{"forbidden keeps", http.StatusForbidden, false},
		{"not found keeps", http.StatusNotFound, false},
		{"server error keeps", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, backend := newTestCache(t)
			ctx := context.Background()
			seriesKey := cache.Key(cache.NamespaceSeries, "/api/series", "")
			detailKey := cache.Key(cache.NamespaceSeriesDetail, "/api/series/WS1", "")
			feedbackKey := cache.Key(cache.NamespaceFeedback, "/api/feedback", "")
			for _, k := range []string{seriesKey, detailKey, feedbackKey} {
				rc.Set(ctx, k, cache.Entry{Status: 200, Body: []byte(`{}`)}, time.Minute)
			}

			var calls atomic.Int64
			handler := InvalidateOnSuccess(rc, cache.Pattern(cache.NamespaceSeries), cache.Pattern(cache.NamespaceSeriesDetail))(
				countingHandler(&calls, tt.status, `{}`))
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest("POST", "/api/series", nil))

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			for _, k := range []string{seriesKey, detailKey} {
				_, present, _ := backend.Get(ctx, k)
				if present == tt.wantCleared {
					t.Errorf("%s present = %v, wantCleared = %v", k, present, tt.wantCleared)
				}
			}
			if _, present, _ := backend.Get(ctx, feedbackKey); !present {
				t.Error("unrelated namespace was invalidated")
			}
		})
	}
}

func TestInvalidateOnSuccess_SurvivesClientDisconnect(t *testing.T) {
	rc, backend := newTestCache(t)
	bg := context.Background()
	key := cache.Key(cache.NamespaceEpisode, "/api/episodes", "")
	rc.Set(bg, key, cache.Entry{Status: 200, Body: []byte(`{}`)}, time.Minute)

	ctx, cancel := context.WithCancel(bg)
	handler := InvalidateOnSuccess(rc, cache.Pattern(cache.NamespaceEpisode))(
		func(w http.ResponseWriter, _ *http.Request) {
			cancel() // client goes away after the write committed
			w.WriteHeader(http.StatusCreated)
		})
	handler(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/episodes", nil).WithContext(ctx))

	if _, present, _ := backend.Get(bg, key); present {
		t.Error("invalidation skipped after client disconnect")
	}
}

func TestCacheThenInvalidate_ReadYourWrite(t *testing.T) {
	rc, _ := newTestCache(t)
	version := "v1"

	read := CacheResponse(rc, cache.NamespaceSeries, time.Minute)(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title":"` + version + `"}`))
	})
	write := InvalidateOnSuccess(rc, cache.Pattern(cache.NamespaceSeries))(func(w http.ResponseWriter, _ *http.Request) {
		version = "v2"
		w.WriteHeader(http.StatusOK)
	})

	read(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/series", nil))
	write(httptest.NewRecorder(), httptest.NewRequest("PUT", "/api/series/WS1", nil))

	rec := httptest.NewRecorder()
	read(rec, httptest.NewRequest("GET", "/api/series", nil))
	if rec.Body.String() != `{"title":"v2"}` {
		t.Errorf("read after write = %s, want v2", rec.Body.String())
	}
	if rec.Header().Get(CacheHeader) != "MISS" {
		t.Errorf("X-Cache = %q, want MISS after invalidation", rec.Header().Get(CacheHeader))
	}
}
