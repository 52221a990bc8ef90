// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package database is the PostgreSQL store behind the Reelhouse API.

A single *DB wraps a pgx connection pool and implements every store
interface the HTTP handlers declare: accounts, countries, series, episodes,
feedback, production houses, producers and the relationship tables
(affiliations, telecasts, contracts, subtitle languages, releases), plus
the admin statistics, activity feed and VACUUM.

# Schema

The schema lives in schema.sql and is applied by versioned migrations at
startup (see migrations.go). Each migration runs in its own transaction
under a PostgreSQL advisory lock, so replicas that start together apply it
once.

# Errors

Stores return the sentinels ErrNotFound, ErrConflict, ErrInvalidReference
and ErrInUse, wrapped with context. Constraint violations are mapped from
their SQLSTATE:

	23505 unique_violation       -> ErrConflict
	23503 foreign_key_violation  -> ErrInvalidReference (insert/update)
	                             -> ErrInUse (delete blocked by RESTRICT)

# Queries

Filters are assembled with query.WhereBuilder, which binds every value as a
positional parameter. Search terms are substring matches with LIKE
wildcards escaped, so "%" only ever matches a literal percent sign.

Partial updates are read-modify-write under a row lock: the handler
receives the stored row, changes the fields present in the request, and the
store writes it back in the same transaction.

# Metrics

Every store method records reelhouse_db_query_duration_seconds and, on
failure, reelhouse_db_query_errors_total.
*/
package database
