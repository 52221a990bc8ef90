// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// MinJWTSecretLength is the minimum JWT secret length accepted in production.
const MinJWTSecretLength = 32

// Bcrypt cost bounds accepted by golang.org/x/crypto/bcrypt.
const (
	MinBcryptCost = 4
	MaxBcryptCost = 31
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateAPI()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS (%d)", c.Database.MaxConns)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
		}
	case CacheBackendBadger:
		if c.Cache.BadgerPath == "" {
			return fmt.Errorf("CACHE_BADGER_PATH is required when CACHE_BACKEND=badger")
		}
	case CacheBackendMemory, CacheBackendNone:
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of redis, badger, memory, none (got %q)", c.Cache.Backend)
	}
	if c.Cache.Enabled() && c.Cache.Timeout <= 0 {
		return fmt.Errorf("CACHE_TIMEOUT must be positive")
	}
	if c.Cache.BreakerFailures < 0 {
		return fmt.Errorf("cache.breaker_failures must not be negative")
	}
	return nil
}

// validateSecurity validates token, hashing and rate limit settings.
func (c *Config) validateSecurity() error {
	if c.IsProduction() && len(c.Security.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters when ENVIRONMENT=production", MinJWTSecretLength)
	}
	if c.Security.AccessTokenTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be positive")
	}
	if c.Security.RefreshTokenTTL <= 0 {
		return fmt.Errorf("JWT_REFRESH_TTL must be positive")
	}
	if c.Security.RefreshTokenTTL <= c.Security.AccessTokenTTL {
		return fmt.Errorf("JWT_REFRESH_TTL (%s) must be longer than JWT_ACCESS_TTL (%s)",
			c.Security.RefreshTokenTTL, c.Security.AccessTokenTTL)
	}
	if c.Security.BcryptCost < MinBcryptCost || c.Security.BcryptCost > MaxBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", MinBcryptCost, MaxBcryptCost)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.MaxPageSize < 1 {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be at least 1")
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be between 1 and API_MAX_PAGE_SIZE (%d)", c.API.MaxPageSize)
	}
	if c.API.RelationPageSize < 1 || c.API.RelationPageSize > c.API.MaxPageSize {
		return fmt.Errorf("API_RELATION_PAGE_SIZE must be between 1 and API_MAX_PAGE_SIZE (%d)", c.API.MaxPageSize)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
// Production mode is determined by the ENVIRONMENT environment variable.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// EnsureJWTSecret fills an empty JWT secret with a random one outside production.
// Tokens signed with a generated secret do not survive a restart. It reports
// whether a secret was generated so the caller can warn about it.
func (c *Config) EnsureJWTSecret() (bool, error) {
	if c.Security.JWTSecret != "" {
		return false, nil
	}
	if c.IsProduction() {
		return false, fmt.Errorf("JWT_SECRET is required when ENVIRONMENT=production")
	}
	buf := make([]byte, MinJWTSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return false, fmt.Errorf("generate JWT secret: %w", err)
	}
	c.Security.JWTSecret = hex.EncodeToString(buf)
	return true, nil
}
