// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry is a stored value with its expiry. A zero expiresAt never expires.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryBackend is a thread-safe in-process Backend with TTL support.
//
// Expired entries are removed lazily on Get and by a background cleanup
// loop that runs until Close is called. Values are copied on the way in and
// out so callers can never mutate a stored entry.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	evictions int64

	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryBackend creates a memory backend whose cleanup loop runs every
// cleanupInterval (5 minutes when zero or negative).
//
// Example:
//
//	backend := cache.NewMemoryBackend(time.Minute)
//	defer backend.Close()
func NewMemoryBackend(cleanupInterval time.Duration) *MemoryBackend {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}

	m := &MemoryBackend{
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}

	go m.cleanupLoop(cleanupInterval)

	return m
}

// Name implements Backend.
func (m *MemoryBackend) Name() string {
	return "memory"
}

// Get implements Backend.
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, exists := m.entries[key]
	m.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	if entry.expired(time.Now()) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have replaced it
		if current, ok := m.entries[key]; ok && current.expired(time.Now()) {
			delete(m.entries, key)
			m.evictions++
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	return cloneBytes(entry.value), true, nil
}

// Set implements Backend.
func (m *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: cloneBytes(value)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete implements Backend.
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// DeletePattern implements Backend.
func (m *MemoryBackend) DeletePattern(_ context.Context, glob string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key := range m.entries {
		if Match(glob, key) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Clear implements Backend.
func (m *MemoryBackend) Clear(_ context.Context) error {
	m.mu.Lock()
	m.evictions += int64(len(m.entries))
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Keys implements Backend. Expired entries that have not been cleaned up
// yet are not counted.
func (m *MemoryBackend) Keys(_ context.Context, glob string) (int, error) {
	now := time.Now()

	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for key, entry := range m.entries {
		if !entry.expired(now) && Match(glob, key) {
			count++
		}
	}
	return count, nil
}

// Len returns the number of stored entries, including expired entries
// awaiting cleanup.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Evictions returns the number of entries removed by expiry or Clear.
func (m *MemoryBackend) Evictions() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.evictions
}

// Close stops the cleanup loop. The backend remains usable afterwards.
func (m *MemoryBackend) Close() error {
	m.closeOnce.Do(func() { close(m.stop) })
	return nil
}

// cleanupLoop periodically removes expired entries
func (m *MemoryBackend) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

// cleanup removes all expired entries
func (m *MemoryBackend) cleanup() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
			m.evictions++
		}
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

var _ Backend = (*MemoryBackend)(nil)
