// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/reelhouse/internal/models"
)

// ListCountries returns every country ordered by name.
func (db *DB) ListCountries(ctx context.Context) (_ []models.Country, err error) {
	defer observe("list", "country", time.Now(), &err)

	rows, err := db.pool.Query(ctx, `SELECT country_name, created_at FROM country ORDER BY country_name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	countries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Country, error) {
		var c models.Country
		err := row.Scan(&c.CountryName, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	if countries == nil {
		countries = []models.Country{}
	}
	return countries, nil
}

// CreateCountry inserts a country. An existing name yields ErrConflict.
func (db *DB) CreateCountry(ctx context.Context, name string) (_ *models.Country, err error) {
	defer observe("insert", "country", time.Now(), &err)

	c := models.Country{CountryName: name}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO country (country_name) VALUES ($1) RETURNING created_at`, name,
	).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create country: %w", mapWriteError(err))
	}
	return &c, nil
}

// DeleteCountry removes a country. Accounts or releases that still reference
// it yield ErrInUse.
func (db *DB) DeleteCountry(ctx context.Context, name string) (err error) {
	defer observe("delete", "country", time.Now(), &err)

	if err = db.execAffected(ctx, `DELETE FROM country WHERE country_name = $1`, name); err != nil {
		return fmt.Errorf("delete country: %w", mapDeleteError(err))
	}
	return nil
}

// EnsureCountry creates name unless it already exists.
func (db *DB) EnsureCountry(ctx context.Context, name string) (err error) {
	defer observe("upsert", "country", time.Now(), &err)

	return db.withTx(ctx, func(tx pgx.Tx) error {
		return ensureCountry(ctx, tx, name)
	})
}
