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

	"github.com/tomtom215/reelhouse/internal/database/query"
	"github.com/tomtom215/reelhouse/internal/models"
)

// seriesColumns includes the mean feedback rating rounded to one decimal;
// it is NULL for a series without feedback.
const seriesColumns = `s.webseries_id, s.title, s.num_episodes, s.type, s.house_id, s.created_at,
	(SELECT ROUND(AVG(f.rating)::numeric, 1)::float8 FROM feedback f WHERE f.webseries_id = s.webseries_id)`

func scanSeries(row pgx.CollectableRow) (models.WebSeries, error) {
	var s models.WebSeries
	err := row.Scan(&s.WebSeriesID, &s.Title, &s.NumEpisodes, &s.Type, &s.HouseID, &s.CreatedAt, &s.Rating)
	return s, err
}

// ListSeries returns a page of series. Search matches title and ID.
func (db *DB) ListSeries(ctx context.Context, f models.SeriesFilter, page models.Page) (_ models.Paged[models.WebSeries], err error) {
	defer observe("list", "web_series", time.Now(), &err)

	wb := query.NewWhereBuilder().
		AddSearch(f.Search, "s.title", "s.webseries_id").
		AddEquals("s.type", f.Type)

	res, err := listPaged(ctx, db, listQuery{
		From:    "web_series s",
		Columns: seriesColumns,
		OrderBy: "s.created_at, s.webseries_id",
	}, wb, page, scanSeries)
	if err != nil {
		return res, fmt.Errorf("list series: %w", err)
	}
	return res, nil
}

// GetSeries returns a series with its episodes.
func (db *DB) GetSeries(ctx context.Context, id string) (_ *models.WebSeries, err error) {
	defer observe("select", "web_series", time.Now(), &err)

	s, err := getSeries(ctx, db.pool, id)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, `SELECT `+episodeColumns+` FROM episode e
		WHERE e.webseries_id = $1 ORDER BY e.created_at, e.episode_id`, id)
	if err != nil {
		return nil, fmt.Errorf("get series episodes: %w", err)
	}
	s.Episodes, err = pgx.CollectRows(rows, scanEpisode)
	if err != nil {
		return nil, fmt.Errorf("get series episodes: %w", err)
	}
	if s.Episodes == nil {
		s.Episodes = []models.Episode{}
	}
	return s, nil
}

func getSeries(ctx context.Context, q querier, id string) (*models.WebSeries, error) {
	rows, err := q.Query(ctx, `SELECT `+seriesColumns+` FROM web_series s WHERE s.webseries_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get series: %w", err)
	}
	s, err := pgx.CollectExactlyOneRow(rows, scanSeries)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &s, nil
}

// CreateSeries inserts a series. An unknown house yields ErrInvalidReference.
func (db *DB) CreateSeries(ctx context.Context, s *models.WebSeries) (err error) {
	defer observe("insert", "web_series", time.Now(), &err)

	if s.WebSeriesID == "" {
		s.WebSeriesID = models.NewID(models.PrefixWebSeries, models.DefaultIDDigits)
	}
	err = db.pool.QueryRow(ctx, `
		INSERT INTO web_series (webseries_id, title, num_episodes, type, house_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		s.WebSeriesID, s.Title, s.NumEpisodes, s.Type, s.HouseID,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create series: %w", mapWriteError(err))
	}
	return nil
}

// UpdateSeries loads the series under a row lock, applies mutate and writes
// the result back.
func (db *DB) UpdateSeries(ctx context.Context, id string, mutate func(*models.WebSeries)) (_ *models.WebSeries, err error) {
	defer observe("update", "web_series", time.Now(), &err)

	s, err := updateLocked(ctx, db, "web_series", "webseries_id", id, getSeries, mutate,
		func(tx pgx.Tx, s *models.WebSeries) error {
			_, err := tx.Exec(ctx, `
				UPDATE web_series SET title = $2, num_episodes = $3, type = $4, updated_at = now()
				WHERE webseries_id = $1`,
				id, s.Title, s.NumEpisodes, s.Type)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("update series: %w", err)
	}
	return s, nil
}

// DeleteSeries removes a series with its episodes, feedback, contracts,
// languages and releases.
func (db *DB) DeleteSeries(ctx context.Context, id string) (err error) {
	defer observe("delete", "web_series", time.Now(), &err)

	if err = db.execAffected(ctx, `DELETE FROM web_series WHERE webseries_id = $1`, id); err != nil {
		return fmt.Errorf("delete series: %w", mapDeleteError(err))
	}
	return nil
}
