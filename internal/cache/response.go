// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package cache

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/metrics"
)

// Cache namespaces. Each is the key prefix of one cached route family.
const (
	NamespaceSeries         = "series"
	NamespaceSeriesDetail   = "series_detail"
	NamespaceEpisode        = "episode"
	NamespaceEpisodeDetail  = "episode_detail"
	NamespaceFeedback       = "feedback"
	NamespaceFeedbackDetail = "feedback_detail"
)

// Namespaces lists every namespace, in the order stats report them.
var Namespaces = []string{
	NamespaceSeries,
	NamespaceSeriesDetail,
	NamespaceEpisode,
	NamespaceEpisodeDetail,
	NamespaceFeedback,
	NamespaceFeedbackDetail,
}

// Pattern returns the glob covering every key in namespace.
func Pattern(namespace string) string {
	return namespace + ":*"
}

// DefaultTimeout bounds each backend operation when none is configured.
const DefaultTimeout = 5 * time.Second

// Entry is a cached HTTP response. It is stored as a single JSON blob, so a
// reader sees either the previous entry or the new one, never a mix.
type Entry struct {
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
	ContentType string          `json:"content_type,omitempty"`
}

// Key builds the cache key for a request. The raw query string is used as
// sent: "?a=1&b=2" and "?b=2&a=1" are different keys.
func Key(prefix, path, rawQuery string) string {
	return prefix + ":" + path + ":" + rawQuery
}

// Stats is a point-in-time view of the response cache. KeysByPattern is
// keyed by namespace name.
type Stats struct {
	Status        string         `json:"status"`
	Backend       string         `json:"backend"`
	Hits          int64          `json:"hits"`
	Misses        int64          `json:"misses"`
	TotalKeys     int            `json:"total_keys"`
	KeysByPattern map[string]int `json:"keys_by_pattern"`
}

// ResponseCache stores rendered API responses in a Backend.
//
// It never surfaces a backend fault to its caller: a failed or timed-out Get
// is a miss, and a failed Set or Delete is dropped after being logged and
// counted. A ResponseCache with a nil backend is disabled and behaves the
// same way, so handlers need no special casing.
type ResponseCache struct {
	backend Backend
	timeout time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewResponseCache creates a response cache over backend. A nil backend
// disables caching. timeout bounds each backend call (DefaultTimeout when zero).
func NewResponseCache(backend Backend, timeout time.Duration) *ResponseCache {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ResponseCache{backend: backend, timeout: timeout}
}

// Enabled reports whether a backend is configured.
func (c *ResponseCache) Enabled() bool {
	return c != nil && c.backend != nil
}

// Backend returns the underlying backend, or nil when disabled.
func (c *ResponseCache) Backend() Backend {
	if c == nil {
		return nil
	}
	return c.backend
}

// Get returns the entry stored under key. Faults and undecodable entries
// are reported as a miss.
func (c *ResponseCache) Get(ctx context.Context, key string) (Entry, bool) {
	if !c.Enabled() {
		return Entry{}, false
	}

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prefix := keyPrefix(key)
	raw, found, err := c.backend.Get(opCtx, key)
	if err != nil {
		c.fault(ctx, "get", key, err)
		c.recordLookup(prefix, false)
		return Entry{}, false
	}
	if !found {
		c.recordLookup(prefix, false)
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		_ = c.backend.Delete(opCtx, key)
		c.recordLookup(prefix, false)
		return Entry{}, false
	}

	c.recordLookup(prefix, true)
	return entry, true
}

// Set stores entry under key for ttl. Faults are logged and dropped.
func (c *ResponseCache) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.backend.Set(opCtx, key, data, ttl); err != nil {
		c.fault(ctx, "set", key, err)
	}
}

// Delete removes a single key.
func (c *ResponseCache) Delete(ctx context.Context, key string) {
	if !c.Enabled() {
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.backend.Delete(opCtx, key); err != nil {
		c.fault(ctx, "delete", key, err)
	}
}

// DeletePattern removes every key matching glob and returns how many were
// removed. A fault or an empty match removes nothing and returns 0.
func (c *ResponseCache) DeletePattern(ctx context.Context, glob string) int {
	if !c.Enabled() {
		return 0
	}

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	removed, err := c.backend.DeletePattern(opCtx, glob)
	if err != nil {
		c.fault(ctx, "delete_pattern", glob, err)
		return 0
	}

	metrics.RecordCacheInvalidation(glob)
	if removed > 0 {
		logging.Ctx(ctx).Debug().Str("pattern", glob).Int("removed", removed).Msg("Cache invalidated")
	}
	return removed
}

// Invalidate deletes each of the given patterns.
func (c *ResponseCache) Invalidate(ctx context.Context, patterns ...string) {
	for _, p := range patterns {
		c.DeletePattern(ctx, p)
	}
}

// ClearAll removes every entry. Unlike the other operations it reports
// backend faults, because an administrator asked for it explicitly.
func (c *ResponseCache) ClearAll(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.backend.Clear(opCtx); err != nil {
		c.fault(ctx, "clear", "*", err)
		return err
	}
	metrics.RecordCacheInvalidation("*")
	return nil
}

// Stats returns hit and miss counters and the live key count per namespace.
// A count that cannot be read is reported as 0.
func (c *ResponseCache) Stats(ctx context.Context) Stats {
	stats := Stats{Status: "disabled", KeysByPattern: make(map[string]int, len(Namespaces))}
	if !c.Enabled() {
		return stats
	}

	stats.Status = "connected"
	if b, ok := c.backend.(*BreakerBackend); ok && b.State() == gobreaker.StateOpen {
		stats.Status = "degraded"
	}
	stats.Backend = c.backend.Name()
	stats.Hits = c.hits.Load()
	stats.Misses = c.misses.Load()
	stats.TotalKeys = c.countKeys(ctx, "*")

	for _, ns := range Namespaces {
		stats.KeysByPattern[ns] = c.countKeys(ctx, Pattern(ns))
	}
	return stats
}

func (c *ResponseCache) countKeys(ctx context.Context, glob string) int {
	opCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	n, err := c.backend.Keys(opCtx, glob)
	if err != nil {
		c.fault(ctx, "keys", glob, err)
		return 0
	}
	return n
}

func (c *ResponseCache) recordLookup(prefix string, hit bool) {
	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	metrics.RecordCacheLookup(prefix, hit)
}

// fault logs and counts a backend error. The detail stays in the log.
func (c *ResponseCache) fault(ctx context.Context, op, key string, err error) {
	metrics.RecordCacheError(c.backend.Name(), op)
	logging.Ctx(ctx).Warn().Err(err).
		Str("backend", c.backend.Name()).
		Str("op", op).
		Str("key", key).
		Msg("Cache backend fault, continuing without cache")
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
