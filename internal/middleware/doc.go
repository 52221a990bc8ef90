// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package middleware provides HTTP middleware for Prometheus instrumentation and
the response cache.

Middleware here has the signature func(http.HandlerFunc) http.HandlerFunc;
the api package adapts it to chi with chiMiddleware.

Key Components:

  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - CacheResponse: read-through cache for GET routes; sets X-Cache: HIT or MISS
    and stores only 200 responses
  - InvalidateOnSuccess: deletes cache namespaces after a 2xx write

Usage Example:

	r.With(chiMiddleware(middleware.CacheResponse(rc, cache.NamespaceSeriesDetail, 5*time.Minute))).
	    Get("/series/{id}", h.GetSeries)

	r.With(chiMiddleware(middleware.InvalidateOnSuccess(rc, "series:*", "series_detail:*"))).
	    Post("/series", h.CreateSeries)
*/
package middleware
