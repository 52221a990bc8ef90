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

// Relationship tables. Listings are enriched with display names through
// LEFT JOINs so a row is still returned when a name cannot be resolved.

// ---------------------------------------------------------------------------
// Producer affiliations
// ---------------------------------------------------------------------------

const (
	affiliationFrom = `producer_affiliation a
	LEFT JOIN producer p ON p.producer_id = a.producer_id
	LEFT JOIN production_house h ON h.house_id = a.house_id`
	affiliationColumns = `a.producer_id, a.house_id, a.start_date, a.end_date, a.created_at,
	p.first_name || ' ' || p.last_name, h.name`
)

func scanAffiliation(row pgx.CollectableRow) (models.ProducerAffiliation, error) {
	var a models.ProducerAffiliation
	err := row.Scan(&a.ProducerID, &a.HouseID, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.ProducerName, &a.HouseName)
	return a, err
}

// ListAffiliations returns a page of affiliations with producer and house
// names. Search matches producer ID and house ID.
func (db *DB) ListAffiliations(ctx context.Context, f models.AffiliationFilter, page models.Page) (_ models.Paged[models.ProducerAffiliation], err error) {
	defer observe("list", "producer_affiliation", time.Now(), &err)

	wb := query.NewWhereBuilder().
		AddEquals("a.producer_id", f.ProducerID).
		AddEquals("a.house_id", f.HouseID).
		AddSearch(f.Search, "a.producer_id", "a.house_id")

	res, err := listPaged(ctx, db, listQuery{
		From:    affiliationFrom,
		Columns: affiliationColumns,
		OrderBy: "a.created_at, a.producer_id, a.house_id",
	}, wb, page, scanAffiliation)
	if err != nil {
		return res, fmt.Errorf("list affiliations: %w", err)
	}
	return res, nil
}

// CreateAffiliation links a producer to a house. An existing link yields
// ErrConflict; an unknown producer or house yields ErrInvalidReference.
func (db *DB) CreateAffiliation(ctx context.Context, a *models.ProducerAffiliation) (err error) {
	defer observe("insert", "producer_affiliation", time.Now(), &err)

	err = db.pool.QueryRow(ctx, `
		INSERT INTO producer_affiliation (producer_id, house_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		a.ProducerID, a.HouseID, a.StartDate, a.EndDate,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create affiliation: %w", mapWriteError(err))
	}
	return nil
}

// DeleteAffiliation removes the link between producerID and houseID.
func (db *DB) DeleteAffiliation(ctx context.Context, producerID, houseID string) (err error) {
	defer observe("delete", "producer_affiliation", time.Now(), &err)

	err = db.execAffected(ctx,
		`DELETE FROM producer_affiliation WHERE producer_id = $1 AND house_id = $2`, producerID, houseID)
	if err != nil {
		return fmt.Errorf("delete affiliation: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Telecasts
// ---------------------------------------------------------------------------

const (
	telecastFrom = `telecast t
	LEFT JOIN episode e ON e.episode_id = t.episode_id
	LEFT JOIN web_series s ON s.webseries_id = e.webseries_id`
	telecastColumns = `t.telecast_id, t.start_date, t.end_date, t.tech_interruption, t.total_viewers,
	t.episode_id, t.created_at, e.title, s.title`
)

func scanTelecast(row pgx.CollectableRow) (models.Telecast, error) {
	var t models.Telecast
	err := row.Scan(&t.TelecastID, &t.StartDate, &t.EndDate, &t.TechInterruption, &t.TotalViewers,
		&t.EpisodeID, &t.CreatedAt, &t.EpisodeTitle, &t.SeriesTitle)
	return t, err
}

// ListTelecasts returns a page of telecasts with episode and series titles.
// Search matches telecast ID and episode ID.
func (db *DB) ListTelecasts(ctx context.Context, f models.TelecastFilter, page models.Page) (_ models.Paged[models.Telecast], err error) {
	defer observe("list", "telecast", time.Now(), &err)

	wb := query.NewWhereBuilder().
		AddEquals("t.episode_id", f.EpisodeID).
		AddSearch(f.Search, "t.telecast_id", "t.episode_id")

	res, err := listPaged(ctx, db, listQuery{
		From:    telecastFrom,
		Columns: telecastColumns,
		OrderBy: "t.start_date, t.telecast_id",
	}, wb, page, scanTelecast)
	if err != nil {
		return res, fmt.Errorf("list telecasts: %w", err)
	}
	return res, nil
}

func getTelecast(ctx context.Context, q querier, id string) (*models.Telecast, error) {
	rows, err := q.Query(ctx, `SELECT `+telecastColumns+` FROM `+telecastFrom+` WHERE t.telecast_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get telecast: %w", err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanTelecast)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &t, nil
}

// CreateTelecast inserts a telecast. TechInterruption defaults to "N".
func (db *DB) CreateTelecast(ctx context.Context, t *models.Telecast) (err error) {
	defer observe("insert", "telecast", time.Now(), &err)

	if t.TelecastID == "" {
		t.TelecastID = models.NewID(models.PrefixTelecast, models.DefaultIDDigits)
	}
	if t.TechInterruption == "" {
		t.TechInterruption = "N"
	}
	err = db.pool.QueryRow(ctx, `
		INSERT INTO telecast (telecast_id, start_date, end_date, tech_interruption, total_viewers, episode_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		t.TelecastID, t.StartDate, t.EndDate, t.TechInterruption, t.TotalViewers, t.EpisodeID,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create telecast: %w", mapWriteError(err))
	}
	return nil
}

// UpdateTelecast applies mutate to the stored telecast.
func (db *DB) UpdateTelecast(ctx context.Context, id string, mutate func(*models.Telecast)) (_ *models.Telecast, err error) {
	defer observe("update", "telecast", time.Now(), &err)

	t, err := updateLocked(ctx, db, "telecast", "telecast_id", id, getTelecast, mutate,
		func(tx pgx.Tx, t *models.Telecast) error {
			_, err := tx.Exec(ctx, `
				UPDATE telecast
				SET start_date = $2, end_date = $3, tech_interruption = $4, total_viewers = $5, updated_at = now()
				WHERE telecast_id = $1`,
				id, t.StartDate, t.EndDate, t.TechInterruption, t.TotalViewers)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("update telecast: %w", err)
	}
	return t, nil
}

// DeleteTelecast removes one telecast.
func (db *DB) DeleteTelecast(ctx context.Context, id string) (err error) {
	defer observe("delete", "telecast", time.Now(), &err)

	if err = db.execAffected(ctx, `DELETE FROM telecast WHERE telecast_id = $1`, id); err != nil {
		return fmt.Errorf("delete telecast: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Series contracts
// ---------------------------------------------------------------------------

const (
	contractFrom    = `series_contract c LEFT JOIN web_series s ON s.webseries_id = c.webseries_id`
	contractColumns = `c.contract_id, c.signed_date, c.start_date, c.end_date, c.charge_per_episode::float8,
	c.status, c.webseries_id, c.created_at, s.title`
)

func scanContract(row pgx.CollectableRow) (models.SeriesContract, error) {
	var c models.SeriesContract
	err := row.Scan(&c.ContractID, &c.SignedDate, &c.StartDate, &c.EndDate, &c.ChargePerEpisode,
		&c.Status, &c.WebSeriesID, &c.CreatedAt, &c.SeriesTitle)
	c.SyncAliases()
	return c, err
}

// ListContracts returns a page of contracts with series titles. Search
// matches contract ID and series ID.
func (db *DB) ListContracts(ctx context.Context, f models.ContractFilter, page models.Page) (_ models.Paged[models.SeriesContract], err error) {
	defer observe("list", "series_contract", time.Now(), &err)

	wb := query.NewWhereBuilder().
		AddEquals("c.webseries_id", f.WebSeriesID).
		AddEquals("c.status", f.Status).
		AddSearch(f.Search, "c.contract_id", "c.webseries_id")

	res, err := listPaged(ctx, db, listQuery{
		From:    contractFrom,
		Columns: contractColumns,
		OrderBy: "c.created_at, c.contract_id",
	}, wb, page, scanContract)
	if err != nil {
		return res, fmt.Errorf("list contracts: %w", err)
	}
	return res, nil
}

func getContract(ctx context.Context, q querier, id string) (*models.SeriesContract, error) {
	rows, err := q.Query(ctx, `SELECT `+contractColumns+` FROM `+contractFrom+` WHERE c.contract_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get contract: %w", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanContract)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &c, nil
}

// CreateContract inserts a contract. SignedDate defaults to StartDate.
func (db *DB) CreateContract(ctx context.Context, c *models.SeriesContract) (err error) {
	defer observe("insert", "series_contract", time.Now(), &err)

	if c.ContractID == "" {
		c.ContractID = models.NewID(models.PrefixContract, models.DefaultIDDigits)
	}
	if c.SignedDate.IsZero() {
		c.SignedDate = c.StartDate
	}
	err = db.pool.QueryRow(ctx, `
		INSERT INTO series_contract (contract_id, signed_date, start_date, end_date, charge_per_episode, status,
			webseries_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		c.ContractID, c.SignedDate, c.StartDate, c.EndDate, c.ChargePerEpisode, c.Status, c.WebSeriesID,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contract: %w", mapWriteError(err))
	}
	c.SyncAliases()
	return nil
}

// UpdateContract applies mutate to the stored contract.
func (db *DB) UpdateContract(ctx context.Context, id string, mutate func(*models.SeriesContract)) (_ *models.SeriesContract, err error) {
	defer observe("update", "series_contract", time.Now(), &err)

	c, err := updateLocked(ctx, db, "series_contract", "contract_id", id, getContract, mutate,
		func(tx pgx.Tx, c *models.SeriesContract) error {
			_, err := tx.Exec(ctx, `
				UPDATE series_contract
				SET signed_date = $2, start_date = $3, end_date = $4, charge_per_episode = $5, status = $6,
					updated_at = now()
				WHERE contract_id = $1`,
				id, c.SignedDate, c.StartDate, c.EndDate, c.ChargePerEpisode, c.Status)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("update contract: %w", err)
	}
	c.SyncAliases()
	return c, nil
}

// DeleteContract removes one contract.
func (db *DB) DeleteContract(ctx context.Context, id string) (err error) {
	defer observe("delete", "series_contract", time.Now(), &err)

	if err = db.execAffected(ctx, `DELETE FROM series_contract WHERE contract_id = $1`, id); err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Subtitle languages
// ---------------------------------------------------------------------------

const (
	subtitleFrom    = `subtitle_language l LEFT JOIN web_series s ON s.webseries_id = l.webseries_id`
	subtitleColumns = `l.subtitle_language_id, l.language_name, l.webseries_id, s.title`
)

func scanSubtitle(row pgx.CollectableRow) (models.SubtitleLanguage, error) {
	var l models.SubtitleLanguage
	err := row.Scan(&l.SubtitleLanguageID, &l.Language, &l.WebSeriesID, &l.SeriesTitle)
	return l, err
}

// ListSubtitles returns a page of subtitle languages with series titles.
// Search matches series ID and language.
func (db *DB) ListSubtitles(ctx context.Context, f models.SubtitleFilter, page models.Page) (_ models.Paged[models.SubtitleLanguage], err error) {
	defer observe("list", "subtitle_language", time.Now(), &err)

	wb := query.NewWhereBuilder().
		AddEquals("l.webseries_id", f.WebSeriesID).
		AddSearch(f.Search, "l.webseries_id", "l.language_name")

	res, err := listPaged(ctx, db, listQuery{
		From:    subtitleFrom,
		Columns: subtitleColumns,
		OrderBy: "l.webseries_id, l.language_name",
	}, wb, page, scanSubtitle)
	if err != nil {
		return res, fmt.Errorf("list subtitles: %w", err)
	}
	return res, nil
}

// CreateSubtitle adds a subtitle language to a series. The same language
// twice yields ErrConflict.
func (db *DB) CreateSubtitle(ctx context.Context, l *models.SubtitleLanguage) (err error) {
	defer observe("insert", "subtitle_language", time.Now(), &err)

	if l.SubtitleLanguageID == "" {
		l.SubtitleLanguageID = models.NewID(models.PrefixSubtitle, models.DefaultIDDigits)
	}
	_, err = db.pool.Exec(ctx, `
		INSERT INTO subtitle_language (subtitle_language_id, language_name, webseries_id)
		VALUES ($1, $2, $3)`,
		l.SubtitleLanguageID, l.Language, l.WebSeriesID)
	if err != nil {
		return fmt.Errorf("create subtitle: %w", mapWriteError(err))
	}
	return nil
}

// DeleteSubtitle removes language from seriesID.
func (db *DB) DeleteSubtitle(ctx context.Context, seriesID, language string) (err error) {
	defer observe("delete", "subtitle_language", time.Now(), &err)

	err = db.execAffected(ctx,
		`DELETE FROM subtitle_language WHERE webseries_id = $1 AND language_name = $2`, seriesID, language)
	if err != nil {
		return fmt.Errorf("delete subtitle: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Releases
// ---------------------------------------------------------------------------

const (
	releaseFrom    = `web_series_release r LEFT JOIN web_series s ON s.webseries_id = r.webseries_id`
	releaseColumns = `r.webseries_id, r.country_name, r.release_date, s.title`
)

func scanRelease(row pgx.CollectableRow) (models.Release, error) {
	var r models.Release
	err := row.Scan(&r.WebSeriesID, &r.CountryName, &r.ReleaseDate, &r.SeriesTitle)
	return r, err
}

// ListReleases returns a page of releases with series titles. Search
// matches series ID and country.
func (db *DB) ListReleases(ctx context.Context, f models.ReleaseFilter, page models.Page) (_ models.Paged[models.Release], err error) {
	defer observe("list", "web_series_release", time.Now(), &err)

	wb := query.NewWhereBuilder().
		AddEquals("r.webseries_id", f.WebSeriesID).
		AddEquals("r.country_name", f.CountryName).
		AddSearch(f.Search, "r.webseries_id", "r.country_name")

	res, err := listPaged(ctx, db, listQuery{
		From:    releaseFrom,
		Columns: releaseColumns,
		OrderBy: "r.release_date, r.webseries_id, r.country_name",
	}, wb, page, scanRelease)
	if err != nil {
		return res, fmt.Errorf("list releases: %w", err)
	}
	return res, nil
}

// CreateRelease records a release, creating the country first when needed.
// A second release of the same series in the same country yields
// ErrConflict.
func (db *DB) CreateRelease(ctx context.Context, r *models.Release) (err error) {
	defer observe("insert", "web_series_release", time.Now(), &err)

	err = db.withTx(ctx, func(tx pgx.Tx) error {
		if err := ensureCountry(ctx, tx, r.CountryName); err != nil {
			return fmt.Errorf("ensure country: %w", err)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO web_series_release (webseries_id, country_name, release_date)
			VALUES ($1, $2, $3)`,
			r.WebSeriesID, r.CountryName, r.ReleaseDate)
		return err
	})
	if err != nil {
		return fmt.Errorf("create release: %w", mapWriteError(err))
	}
	return nil
}

// UpdateReleaseDate changes the release date of one release.
func (db *DB) UpdateReleaseDate(ctx context.Context, seriesID, country string, date models.Date) (_ *models.Release, err error) {
	defer observe("update", "web_series_release", time.Now(), &err)

	var updated models.Release
	err = db.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE web_series_release SET release_date = $3
			WHERE webseries_id = $1 AND country_name = $2`,
			seriesID, country, date)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		rows, err := tx.Query(ctx, `SELECT `+releaseColumns+` FROM `+releaseFrom+`
			WHERE r.webseries_id = $1 AND r.country_name = $2`, seriesID, country)
		if err != nil {
			return err
		}
		updated, err = pgx.CollectExactlyOneRow(rows, scanRelease)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update release: %w", mapNoRows(err))
	}
	return &updated, nil
}

// DeleteRelease removes the release of seriesID in country.
func (db *DB) DeleteRelease(ctx context.Context, seriesID, country string) (err error) {
	defer observe("delete", "web_series_release", time.Now(), &err)

	err = db.execAffected(ctx,
		`DELETE FROM web_series_release WHERE webseries_id = $1 AND country_name = $2`, seriesID, country)
	if err != nil {
		return fmt.Errorf("delete release: %w", err)
	}
	return nil
}
