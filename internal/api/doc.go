// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package api provides the HTTP REST API layer for Reelhouse.

Key Components:

  - Router: chi route table and middleware stack (chi_router.go)
  - ChiMiddleware: CORS, rate limiting, request IDs and security headers
  - Handler: request handlers, one file per resource family
  - Store: the persistence interfaces the handlers consume (stores.go)

API Categories:

All routes live under /api.

 1. Health and auth: /health, /health/ready, /auth/{register,login,refresh,me}
 2. Cached catalog: /series, /episodes, /feedback
 3. Catalog: /production-houses, /producers
 4. Relationship tables: /producer-affiliations, /telecasts, /contracts,
    /subtitle-languages, /releases
 5. Administration: /admin/{users,stats,countries,logs,maintenance,cache}

Prometheus metrics are served at /metrics.

Response Envelopes:

	list    {"<key>": [...], "total": N, "pages": P, "current_page": C}
	single  {"<key>": {...}}
	write   {"message": "...", "<key>": {...}}
	delete  {"message": "..."}
	error   {"error": "...", "field": "..."}

Store sentinels map onto status codes in errors.go: not found is 404, an
unknown referenced row is 400, and duplicates and RESTRICT violations are
409. Every other error is logged and answered with a 500 whose body names
only the failed operation.

Caching:

GET routes of series, episodes and feedback are read through the response
cache; writes to those resources clear the affected namespaces once they
succeed. See internal/cache and internal/middleware.

Authorization:

Write routes are guarded by authz.Guard.RequireRole with an explicit role
list from policy.csv. Feedback update and delete are decided by ownership
(authz.CanModify) after the feedback has been loaded, so a missing entry
answers 404 before any 403.
*/
package api
