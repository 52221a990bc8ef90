// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors returned by the stores. Callers test them with errors.Is.
var (
	// ErrNotFound means the addressed row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique constraint rejected the write.
	ErrConflict = errors.New("already exists")

	// ErrInvalidReference means a foreign key on insert or update points at
	// a missing row.
	ErrInvalidReference = errors.New("referenced row does not exist")

	// ErrInUse means a RESTRICT foreign key blocked a delete.
	ErrInUse = errors.New("row is still referenced")
)

// Postgres SQLSTATE codes mapped onto the sentinels.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
)

// mapWriteError translates constraint violations raised by INSERT and UPDATE.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			return errors.Join(ErrConflict, err)
		case sqlStateForeignKeyViolation:
			return errors.Join(ErrInvalidReference, err)
		}
	}
	return err
}

// mapDeleteError translates a foreign key violation raised by DELETE, which
// only happens when a RESTRICT reference still points at the row.
func mapDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateForeignKeyViolation {
		return errors.Join(ErrInUse, err)
	}
	return err
}

// mapNoRows turns pgx.ErrNoRows into ErrNotFound.
func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// ConstraintName returns the violated constraint, if err carries one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
