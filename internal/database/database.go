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
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/reelhouse/internal/config"
	"github.com/tomtom215/reelhouse/internal/database/query"
	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/metrics"
	"github.com/tomtom215/reelhouse/internal/models"
)

// DB wraps the PostgreSQL connection pool and provides data access methods
type DB struct {
	pool *pgxpool.Pool
	cfg  *config.DatabaseConfig
}

// New connects to PostgreSQL, verifies the connection and applies pending
// migrations.
//
// Example:
//
//	db, err := database.New(ctx, &cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("connect database: %w", err)
//	}
//	defer db.Close()
func New(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	db := &DB{pool: pool, cfg: cfg}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if err := db.runVersionedMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Int32("max_conns", poolCfg.MaxConns).
		Int32("min_conns", poolCfg.MinConns).
		Msg("Database connected")
	return db, nil
}

// Close releases every pooled connection.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping verifies a connection can be acquired and used.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// PoolStats returns a snapshot of pool usage for metrics.
func (db *DB) PoolStats() (acquired, idle, total int32) {
	s := db.pool.Stat()
	return s.AcquiredConns(), s.IdleConns(), s.TotalConns()
}

// observe records the duration and outcome of one store operation. It is
// deferred with a pointer to the caller's named error result.
func observe(operation, table string, start time.Time, err *error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), *err)
}

// withTx runs fn in a transaction. pgx.BeginFunc commits when fn returns nil
// and rolls back otherwise, including on panic.
func (db *DB) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, db.pool, fn)
}

// listQuery describes a paged SELECT. From holds the FROM clause (joins
// included); Columns the select list; OrderBy a deterministic ordering.
type listQuery struct {
	From    string
	Columns string
	OrderBy string
}

// listPaged runs the count and page queries for q with the filters in wb.
func listPaged[T any](ctx context.Context, db *DB, q listQuery, wb *query.WhereBuilder, page models.Page, scan pgx.RowToFunc[T]) (models.Paged[T], error) {
	where, countArgs := wb.BuildWithPrefix()

	var total int64
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+q.From+" "+where, countArgs...).Scan(&total); err != nil {
		return models.Paged[T]{}, fmt.Errorf("count: %w", err)
	}

	limit, args := wb.Paginate(page.PerPage, page.Offset())
	sql := "SELECT " + q.Columns + " FROM " + q.From + " " + where + " ORDER BY " + q.OrderBy + " " + limit
	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return models.Paged[T]{}, fmt.Errorf("select: %w", err)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return models.Paged[T]{}, fmt.Errorf("scan: %w", err)
	}

	return models.NewPaged(items, total, page), nil
}

// execAffected runs a statement and converts "no rows affected" into
// ErrNotFound.
func (db *DB) execAffected(ctx context.Context, sql string, args ...interface{}) error {
	tag, err := db.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// lockRow takes a row lock on table.keyCol = id for the rest of tx, or
// returns ErrNotFound. Table and column names are constants at every call
// site.
func lockRow(ctx context.Context, tx pgx.Tx, table, keyCol, id string) error {
	var one int
	err := tx.QueryRow(ctx, `SELECT 1 FROM `+table+` WHERE `+keyCol+` = $1 FOR UPDATE`, id).Scan(&one)
	return mapNoRows(err)
}

// updateLocked is the read-modify-write used by partial updates: it locks
// the row, loads it, lets mutate change it and persists it with write, all
// in one transaction.
func updateLocked[T any](ctx context.Context, db *DB, table, keyCol, id string,
	load func(context.Context, querier, string) (*T, error),
	mutate func(*T),
	write func(pgx.Tx, *T) error,
) (*T, error) {
	var v *T
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		if err := lockRow(ctx, tx, table, keyCol, id); err != nil {
			return err
		}
		var err error
		if v, err = load(ctx, tx, id); err != nil {
			return err
		}
		mutate(v)
		return write(tx, v)
	})
	if err != nil {
		return nil, mapWriteError(err)
	}
	return v, nil
}

// ensureCountry inserts country if it is not present yet.
func ensureCountry(ctx context.Context, tx pgx.Tx, country string) error {
	_, err := tx.Exec(ctx, `INSERT INTO country (country_name) VALUES ($1) ON CONFLICT (country_name) DO NOTHING`, country)
	return err
}
