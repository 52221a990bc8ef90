// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"time"

	"github.com/tomtom215/reelhouse/internal/cache"
	"github.com/tomtom215/reelhouse/internal/config"
)

// TokenIssuer mints session tokens. *auth.JWTManager implements it.
type TokenIssuer interface {
	GenerateAccessToken(accountID string) (string, error)
	GenerateRefreshToken(accountID string) (string, error)
}

// PasswordHasher hashes and verifies passwords. *auth.PasswordHasher
// implements it.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) bool
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_health.go: health endpoints
//   - handlers_auth.go: register, login, refresh, me
//   - handlers_series.go, handlers_episodes.go, handlers_feedback.go: cached catalog resources
//   - handlers_houses.go, handlers_producers.go: production houses and producers
//   - handlers_relations.go: affiliations, telecasts, contracts, subtitles, releases
//   - handlers_admin.go: users, countries, stats, logs, maintenance, cache
type Handler struct {
	store     Store
	cache     *cache.ResponseCache
	tokens    TokenIssuer
	passwords PasswordHasher

	defaultPageSize  int
	relationPageSize int
	maxPageSize      int

	startTime time.Time
	now       func() time.Time
}

// NewHandler creates the API handler set.
//
// rc may be disabled (nil backend); the cache endpoints then answer 503 and
// the read-through middleware passes requests straight to the handlers.
//
// Example:
//
//	handler := api.NewHandler(db, rc, jwtManager, auth.NewPasswordHasher(cfg.Security.BcryptCost), cfg)
//	router := api.NewRouter(handler, guard, authMiddleware, rc, chiMw)
func NewHandler(store Store, rc *cache.ResponseCache, tokens TokenIssuer, passwords PasswordHasher, cfg *config.Config) *Handler {
	h := &Handler{
		store:            store,
		cache:            rc,
		tokens:           tokens,
		passwords:        passwords,
		defaultPageSize:  20,
		relationPageSize: 100,
		maxPageSize:      100,
		startTime:        time.Now(),
		now:              time.Now,
	}
	if cfg != nil {
		if cfg.API.DefaultPageSize > 0 {
			h.defaultPageSize = cfg.API.DefaultPageSize
		}
		if cfg.API.RelationPageSize > 0 {
			h.relationPageSize = cfg.API.RelationPageSize
		}
		if cfg.API.MaxPageSize > 0 {
			h.maxPageSize = cfg.API.MaxPageSize
		}
	}
	if h.cache == nil {
		h.cache = cache.NewResponseCache(nil, 0)
	}
	return h
}
