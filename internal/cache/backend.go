// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package cache

import (
	"context"
	"errors"
	"time"
)

// Backend is a byte-oriented key/value store with per-key TTL and
// glob-pattern deletion. Implementations must be safe for concurrent use.
//
// A Set with ttl <= 0 stores the value without expiry.
type Backend interface {
	// Get returns the stored value. A missing or expired key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value atomically.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching glob and returns how many were removed.
	DeletePattern(ctx context.Context, glob string) (int, error)

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Keys counts the live keys matching glob.
	Keys(ctx context.Context, glob string) (int, error)

	// Name identifies the backend in logs and metrics.
	Name() string

	// Close releases the backend's resources.
	Close() error
}

// ErrClosed is returned by operations on a closed backend.
var ErrClosed = errors.New("cache: backend closed")
