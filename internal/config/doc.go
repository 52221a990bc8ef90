// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

// Package config loads and validates Reelhouse configuration.
//
// Configuration is layered with Koanf v2: struct defaults, then an optional
// YAML file (CONFIG_PATH, config.yaml, config.yml or /etc/reelhouse/config.yaml),
// then environment variables. Only the environment variables listed in
// envTransformFunc are read; everything else in the environment is ignored.
//
// # Environment Variables
//
//	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, ENVIRONMENT
//	DATABASE_URL, DB_MAX_CONNS, DB_MIN_CONNS
//	CACHE_BACKEND (redis, badger, memory, none), REDIS_URL, CACHE_TIMEOUT,
//	CACHE_DEFAULT_TTL, CACHE_BADGER_PATH
//	JWT_SECRET, JWT_ACCESS_TTL, JWT_REFRESH_TTL, BCRYPT_COST
//	CORS_ORIGINS (comma separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//	API_DEFAULT_PAGE_SIZE, API_RELATION_PAGE_SIZE, API_MAX_PAGE_SIZE
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//
// # Password Policy
//
// PasswordPolicy is shared by registration, admin password resets and the
// "password" validation tag so all three enforce the same rules.
package config
