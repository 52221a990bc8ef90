// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

// Package logging provides the zerolog-based structured logger used across Reelhouse.
//
// The package keeps one global logger, configured once at startup from the
// LOG_LEVEL, LOG_FORMAT and LOG_CALLER settings. JSON is the default output;
// "console" produces human-readable lines for local development.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Error().Err(err).Str("backend", "redis").Msg("Cache read failed")
//
// # Request Context
//
// The request ID middleware stores a request ID and a short correlation ID on
// the request context. Handlers log through Ctx so both IDs appear on every
// line written while serving the request:
//
//	logging.Ctx(r.Context()).Warn().Str("account_id", id).Msg("Account is inactive")
//
// # slog Bridge
//
// NewSlogLogger returns an *slog.Logger that writes through zerolog. The
// supervisor tree hands it to sutureslog so service restarts and failures are
// logged in the same format.
//
// # Sensitive Data
//
// Passwords, password hashes and bearer tokens are never logged. Internal
// error detail from the database or cache goes to the log only; HTTP response
// bodies carry a generic message instead.
package logging
