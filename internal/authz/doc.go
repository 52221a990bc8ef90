// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package authz provides role-based authorization using Casbin.

Key Components:

  - Enforcer: a casbin SyncedEnforcer over the embedded model.conf and
    policy.csv, with a short-lived decision cache
  - Guard: HTTP middleware that authenticates, reloads the caller's account,
    refuses missing (404) and inactive (403) accounts, and enforces the policy
  - CanModify: the ownership rule for feedback updates and deletes

Policy Model:

Subjects are account roles (Customer, Employee, Admin). The model has no
role_definition, so roles never inherit from one another; each
(resource, action) pair lists every role it admits:

	p, Employee, series, create
	p, Admin, series, create
	p, Admin, series, delete

Catalog reads are public and bypass the guard entirely.

Usage Example:

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
	    return err
	}
	guard := authz.NewGuard(authMiddleware, enforcer, db)
	r.With(chiMiddleware(guard.RequireRole(authz.ResourceSeries, authz.ActionCreate))).
	    Post("/", h.CreateSeries)

Failures are rendered as {"error": "..."}: "User not found" (404),
"Account is inactive" (403), "Insufficient permissions" (403). Ownership
failures reported by handlers use "Unauthorized" (403).

Metrics:

	reelhouse_authz_decisions_total{role,resource,action,decision}
	reelhouse_authz_decision_duration_seconds{cache_hit}
	reelhouse_authz_errors_total{type}
*/
package authz
