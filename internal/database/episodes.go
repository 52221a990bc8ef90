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

const episodeColumns = `e.episode_id, e.episode_number, e.title, e.webseries_id, e.duration_minutes,
	e.release_date, e.created_at`

func scanEpisode(row pgx.CollectableRow) (models.Episode, error) {
	var e models.Episode
	err := row.Scan(&e.EpisodeID, &e.EpisodeNumber, &e.Title, &e.WebSeriesID, &e.DurationMinutes,
		&e.ReleaseDate, &e.CreatedAt)
	return e, err
}

// ListEpisodes returns a page of episodes. Search matches title, episode ID
// and series ID.
func (db *DB) ListEpisodes(ctx context.Context, f models.EpisodeFilter, page models.Page) (_ models.Paged[models.Episode], err error) {
	defer observe("list", "episode", time.Now(), &err)

	wb := query.NewWhereBuilder().
		AddEquals("e.webseries_id", f.WebSeriesID).
		AddSearch(f.Search, "e.title", "e.episode_id", "e.webseries_id")

	res, err := listPaged(ctx, db, listQuery{
		From:    "episode e",
		Columns: episodeColumns,
		OrderBy: "e.created_at, e.episode_id",
	}, wb, page, scanEpisode)
	if err != nil {
		return res, fmt.Errorf("list episodes: %w", err)
	}
	return res, nil
}

// GetEpisode returns one episode.
func (db *DB) GetEpisode(ctx context.Context, id string) (_ *models.Episode, err error) {
	defer observe("select", "episode", time.Now(), &err)
	return getEpisode(ctx, db.pool, id)
}

func getEpisode(ctx context.Context, q querier, id string) (*models.Episode, error) {
	rows, err := q.Query(ctx, `SELECT `+episodeColumns+` FROM episode e WHERE e.episode_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get episode: %w", err)
	}
	e, err := pgx.CollectExactlyOneRow(rows, scanEpisode)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &e, nil
}

// CreateEpisode inserts an episode. An unknown series yields
// ErrInvalidReference.
func (db *DB) CreateEpisode(ctx context.Context, e *models.Episode) (err error) {
	defer observe("insert", "episode", time.Now(), &err)

	if e.EpisodeID == "" {
		e.EpisodeID = models.NewID(models.PrefixEpisode, models.DefaultIDDigits)
	}
	err = db.pool.QueryRow(ctx, `
		INSERT INTO episode (episode_id, episode_number, title, webseries_id, duration_minutes, release_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		e.EpisodeID, e.EpisodeNumber, e.Title, e.WebSeriesID, e.DurationMinutes, e.ReleaseDate,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create episode: %w", mapWriteError(err))
	}
	return nil
}

// UpdateEpisode applies mutate to the stored episode. Only title, duration
// and release date are written back.
func (db *DB) UpdateEpisode(ctx context.Context, id string, mutate func(*models.Episode)) (_ *models.Episode, err error) {
	defer observe("update", "episode", time.Now(), &err)

	e, err := updateLocked(ctx, db, "episode", "episode_id", id, getEpisode, mutate,
		func(tx pgx.Tx, e *models.Episode) error {
			_, err := tx.Exec(ctx, `
				UPDATE episode SET title = $2, duration_minutes = $3, release_date = $4, updated_at = now()
				WHERE episode_id = $1`,
				id, e.Title, e.DurationMinutes, e.ReleaseDate)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("update episode: %w", err)
	}
	return e, nil
}

// DeleteEpisode removes an episode and its telecasts.
func (db *DB) DeleteEpisode(ctx context.Context, id string) (err error) {
	defer observe("delete", "episode", time.Now(), &err)

	if err = db.execAffected(ctx, `DELETE FROM episode WHERE episode_id = $1`, id); err != nil {
		return fmt.Errorf("delete episode: %w", mapDeleteError(err))
	}
	return nil
}
