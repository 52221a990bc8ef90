// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package cache provides the API response cache and its storage backends.

# Overview

ResponseCache stores rendered GET responses (status, body and content type)
under keys of the form

	<namespace>:<path>:<raw query>

and deletes them by glob pattern when the underlying data changes. It sits in
front of a Backend:

  - MemoryBackend: in-process map with TTL and background cleanup (default)
  - RedisBackend: shared cache for multi-instance deployments (go-redis)
  - BadgerBackend: embedded persistent cache (BadgerDB)
  - BreakerBackend: circuit breaker wrapper for a remote backend (gobreaker)

# Failure Model

The cache is an optimization, never a dependency. ResponseCache turns every
backend fault into a miss (Get) or a no-op (Set, Delete, DeletePattern),
logs it, and counts it in reelhouse_cache_errors_total. Each backend call is
bounded by a timeout. A ResponseCache with no backend is disabled and behaves
as a permanently empty cache.

# Namespaces

	series, series_detail      GET /api/series, /api/series/{id}
	episode, episode_detail    GET /api/episodes, /api/episodes/{id}
	feedback, feedback_detail  GET /api/feedback, /api/feedback/{id}

Writes invalidate whole namespaces with Pattern(ns), which is "<ns>:*".

# Pattern Syntax

All backends use Redis glob rules (see Match). In particular '*' matches
'/', so "series:*" covers "series:/api/series/WS1:".

# Usage Example

	rc := cache.NewResponseCache(cache.NewMemoryBackend(time.Minute), 5*time.Second)

	key := cache.Key(cache.NamespaceSeries, r.URL.Path, r.URL.RawQuery)
	if entry, ok := rc.Get(ctx, key); ok {
	    // serve entry.Body with entry.Status
	}

	rc.Set(ctx, key, cache.Entry{Status: 200, Body: body}, 5*time.Minute)
	rc.Invalidate(ctx, cache.Pattern(cache.NamespaceSeries), cache.Pattern(cache.NamespaceSeriesDetail))
*/
package cache
