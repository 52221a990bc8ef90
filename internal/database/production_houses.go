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

const houseColumns = `h.house_id, h.name, h.year_established, h.street, h.city, h.state, h.nationality, h.created_at`

func scanHouse(row pgx.CollectableRow) (models.ProductionHouse, error) {
	var h models.ProductionHouse
	err := row.Scan(&h.HouseID, &h.Name, &h.YearEstablished, &h.Street, &h.City, &h.State, &h.Nationality, &h.CreatedAt)
	return h, err
}

// ListProductionHouses returns a page of production houses. Search matches
// name and house ID.
func (db *DB) ListProductionHouses(ctx context.Context, search string, page models.Page) (_ models.Paged[models.ProductionHouse], err error) {
	defer observe("list", "production_house", time.Now(), &err)

	wb := query.NewWhereBuilder().AddSearch(search, "h.name", "h.house_id")
	res, err := listPaged(ctx, db, listQuery{
		From:    "production_house h",
		Columns: houseColumns,
		OrderBy: "h.created_at, h.house_id",
	}, wb, page, scanHouse)
	if err != nil {
		return res, fmt.Errorf("list production houses: %w", err)
	}
	return res, nil
}

// GetProductionHouse returns a production house with the series it produced.
func (db *DB) GetProductionHouse(ctx context.Context, id string) (_ *models.ProductionHouse, err error) {
	defer observe("select", "production_house", time.Now(), &err)

	h, err := getHouse(ctx, db.pool, id)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, `SELECT `+seriesColumns+` FROM web_series s
		WHERE s.house_id = $1 ORDER BY s.created_at, s.webseries_id`, id)
	if err != nil {
		return nil, fmt.Errorf("get house series: %w", err)
	}
	h.WebSeries, err = pgx.CollectRows(rows, scanSeries)
	if err != nil {
		return nil, fmt.Errorf("get house series: %w", err)
	}
	if h.WebSeries == nil {
		h.WebSeries = []models.WebSeries{}
	}
	return h, nil
}

func getHouse(ctx context.Context, q querier, id string) (*models.ProductionHouse, error) {
	rows, err := q.Query(ctx, `SELECT `+houseColumns+` FROM production_house h WHERE h.house_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get production house: %w", err)
	}
	h, err := pgx.CollectExactlyOneRow(rows, scanHouse)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &h, nil
}

// CreateProductionHouse inserts a production house.
func (db *DB) CreateProductionHouse(ctx context.Context, h *models.ProductionHouse) (err error) {
	defer observe("insert", "production_house", time.Now(), &err)

	if h.HouseID == "" {
		h.HouseID = models.NewID(models.PrefixProductionHouse, models.ProductionHouseIDDigits)
	}
	err = db.pool.QueryRow(ctx, `
		INSERT INTO production_house (house_id, name, year_established, street, city, state, nationality)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		h.HouseID, h.Name, h.YearEstablished, h.Street, h.City, h.State, h.Nationality,
	).Scan(&h.CreatedAt)
	if err != nil {
		return fmt.Errorf("create production house: %w", mapWriteError(err))
	}
	return nil
}

// UpdateProductionHouse applies mutate to the stored production house.
func (db *DB) UpdateProductionHouse(ctx context.Context, id string, mutate func(*models.ProductionHouse)) (_ *models.ProductionHouse, err error) {
	defer observe("update", "production_house", time.Now(), &err)

	h, err := updateLocked(ctx, db, "production_house", "house_id", id, getHouse, mutate,
		func(tx pgx.Tx, h *models.ProductionHouse) error {
			_, err := tx.Exec(ctx, `
				UPDATE production_house
				SET name = $2, year_established = $3, street = $4, city = $5, state = $6, nationality = $7,
					updated_at = now()
				WHERE house_id = $1`,
				id, h.Name, h.YearEstablished, h.Street, h.City, h.State, h.Nationality)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("update production house: %w", err)
	}
	return h, nil
}

// DeleteProductionHouse removes a production house and its affiliations. A
// house that still has series yields ErrInUse.
func (db *DB) DeleteProductionHouse(ctx context.Context, id string) (err error) {
	defer observe("delete", "production_house", time.Now(), &err)

	if err = db.execAffected(ctx, `DELETE FROM production_house WHERE house_id = $1`, id); err != nil {
		return fmt.Errorf("delete production house: %w", mapDeleteError(err))
	}
	return nil
}
