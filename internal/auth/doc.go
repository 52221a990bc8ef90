// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package auth provides stateless bearer token authentication and password hashing.

Key Components:

  - JWTManager: issues and validates HS256 access and refresh tokens
  - Middleware: RequireAuthenticated and RequireRefresh HTTP middleware
  - PasswordHasher: bcrypt hashing with the configured cost

Token Model:

Both token kinds carry the account ID in "sub" and their kind in "typ". An
access token authorizes API calls for JWT_ACCESS_TTL (default 1h). A refresh
token lives for JWT_REFRESH_TTL (default 30d) and is only accepted by
/api/auth/refresh, which returns a fresh access token. Tokens are not
revocable server-side; deactivating an account takes effect at the role
guard (see internal/authz), which reloads the account on every guarded call.

Usage Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(jwtManager)
	r.Get("/api/auth/me", mw.RequireAuthenticated(h.Me))

Inside a guarded handler:

	accountID, _ := auth.PrincipalFromContext(r.Context())

Failures:

A missing or malformed Authorization header yields 401 with
{"error":"Authentication required"}; a bad signature, an expired token, or a
token of the wrong kind yields 401 with {"error":"Invalid or expired token"}.
Both are counted in reelhouse_auth_failures_total.
*/
package auth
