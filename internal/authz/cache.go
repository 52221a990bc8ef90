// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package authz

import (
	"sync"
	"time"
)

type decisionKey struct {
	role, resource, action string
}

type decision struct {
	allowed   bool
	expiresAt time.Time
}

// decisionCache memoizes Enforce results. The key space is bounded by
// roles x guarded routes, so stale entries are overwritten on the next miss
// instead of being swept.
type decisionCache struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	items map[decisionKey]decision
}

func newDecisionCache(ttl time.Duration) *decisionCache {
	return &decisionCache{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[decisionKey]decision),
	}
}

func (c *decisionCache) get(role, resource, action string) (allowed, ok bool) {
	c.mu.RLock()
	d, found := c.items[decisionKey{role, resource, action}]
	c.mu.RUnlock()

	if !found || !c.now().Before(d.expiresAt) {
		return false, false
	}
	return d.allowed, true
}

func (c *decisionCache) set(role, resource, action string, allowed bool) {
	c.mu.Lock()
	c.items[decisionKey{role, resource, action}] = decision{
		allowed:   allowed,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// purge drops every decision, e.g. after the policy changes.
func (c *decisionCache) purge() {
	c.mu.Lock()
	clear(c.items)
	c.mu.Unlock()
}

func (c *decisionCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
