// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package metrics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantType  string
	}{
		{"successful select", "select", "web_series", nil, ""},
		{"no rows", "select", "episode", pgx.ErrNoRows, "no_rows"},
		{"unique violation", "insert", "feedback", &pgconn.PgError{Code: "23505"}, "sqlstate_23505"},
		{"wrapped fk violation", "delete", "country", fmt.Errorf("delete country: %w", &pgconn.PgError{Code: "23503"}), "sqlstate_23503"},
		{"timeout", "update", "producer", context.DeadlineExceeded, "timeout"},
		{"other", "select", "telecast", errors.New("connection reset"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantType == "" {
				RecordDBQuery(tt.operation, tt.table, time.Millisecond, nil)
				return
			}
			counter := DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.wantType)
			before := testutil.ToFloat64(counter)
			RecordDBQuery(tt.operation, tt.table, time.Millisecond, tt.err)
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("error counter delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/series/{id}", "404")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/api/series/{id}", "404", 15*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("request counter delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CacheHits.WithLabelValues("series_detail")
	misses := CacheMisses.WithLabelValues("series_detail")
	h0, m0 := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup("series_detail", true)
	RecordCacheLookup("series_detail", false)
	RecordCacheLookup("series_detail", false)

	if got := testutil.ToFloat64(hits) - h0; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses) - m0; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordCacheErrorAndInvalidation(t *testing.T) {
	errCounter := CacheErrors.WithLabelValues("redis", "get")
	invCounter := CacheInvalidations.WithLabelValues("series:*")
	e0, i0 := testutil.ToFloat64(errCounter), testutil.ToFloat64(invCounter)

	RecordCacheError("redis", "get")
	RecordCacheInvalidation("series:*")

	if testutil.ToFloat64(errCounter)-e0 != 1 {
		t.Error("cache error not counted")
	}
	if testutil.ToFloat64(invCounter)-i0 != 1 {
		t.Error("invalidation not counted")
	}
}

func TestRecordAuthFailure(t *testing.T) {
	counter := AuthFailures.WithLabelValues("inactive")
	before := testutil.ToFloat64(counter)
	RecordAuthFailure("inactive")
	if testutil.ToFloat64(counter)-before != 1 {
		t.Error("auth failure not counted")
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				RecordDBQuery("select", "concurrent", time.Duration(j)*time.Millisecond, nil)
				RecordAPIRequest("GET", "/api/concurrent", "200", time.Millisecond)
				RecordCacheLookup("concurrent", j%2 == 0)
				TrackActiveRequest(true)
				TrackActiveRequest(false)
			}
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("concurrent")); got != float64(numGoroutines*10) {
		t.Errorf("hits = %v, want %d", got, numGoroutines*10)
	}
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		DBQueryDuration,
		DBQueryErrors,
		DBPoolConnections,
		APIRequestsTotal,
		APIRequestDuration,
		APIActiveRequests,
		APIRateLimitHits,
		CacheHits,
		CacheMisses,
		CacheErrors,
		CacheInvalidations,
		CacheKeys,
		AuthFailures,
		CircuitBreakerState,
		CircuitBreakerRequests,
		CircuitBreakerTransitions,
		AppInfo,
	}

	for i, c := range collectors {
		if c == nil {
			t.Errorf("collector %d is nil", i)
			continue
		}
		ch := make(chan *prometheus.Desc, 10)
		c.Describe(ch)
		close(ch)
		if len(ch) == 0 {
			t.Errorf("collector %d describes no metrics", i)
		}
	}
}
