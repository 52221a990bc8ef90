// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelhouse/internal/cache"
	"github.com/tomtom215/reelhouse/internal/logging"
)

// CacheHeader reports whether a response was served from the cache.
const CacheHeader = "X-Cache"

const defaultContentType = "application/json"

// CacheResponse serves GET responses from rc under the given key prefix.
//
// On a hit the stored status and body are written and the handler is not
// called. On a miss the handler runs and its response is stored for ttl,
// but only when the status is exactly 200. Cache faults are misses.
//
// Example:
//
//	r.With(chiMiddleware(middleware.CacheResponse(rc, cache.NamespaceSeries, 5*time.Minute))).
//	    Get("/series", h.ListSeries)
func CacheResponse(rc *cache.ResponseCache, prefix string, ttl time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !rc.Enabled() {
				next(w, r)
				return
			}

			key := cache.Key(prefix, r.URL.Path, r.URL.RawQuery)

			if entry, ok := rc.Get(r.Context(), key); ok {
				contentType := entry.ContentType
				if contentType == "" {
					contentType = defaultContentType
				}
				w.Header().Set("Content-Type", contentType)
				w.Header().Set(CacheHeader, "HIT")
				w.WriteHeader(entry.Status)
				_, _ = w.Write(entry.Body)
				return
			}

			w.Header().Set(CacheHeader, "MISS")
			capture := newCaptureResponseWriter(w)
			next(capture, r)

			if capture.statusCode != http.StatusOK {
				return
			}

			rc.Set(context.WithoutCancel(r.Context()), key, cache.Entry{
				Status:      capture.statusCode,
				Body:        capture.body.Bytes(),
				ContentType: w.Header().Get("Content-Type"),
			}, ttl)
		}
	}
}

// InvalidateOnSuccess deletes the given patterns after the handler has run,
// and only when it answered with a 2xx status. A rejected or failed write
// leaves the cache untouched.
//
// Invalidation runs on a context detached from the client, so a client that
// disconnects after a committed write still gets the cache cleared.
func InvalidateOnSuccess(rc *cache.ResponseCache, patterns ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			wrapper := newStatusResponseWriter(w)
			next(wrapper, r)

			if wrapper.statusCode < 200 || wrapper.statusCode >= 300 {
				return
			}

			ctx := context.WithoutCancel(r.Context())
			rc.Invalidate(ctx, patterns...)
			logging.Ctx(ctx).Debug().Strs("patterns", patterns).Int("status", wrapper.statusCode).Msg("Invalidated cache after write")
		}
	}
}
