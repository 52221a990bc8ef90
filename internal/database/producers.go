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

const producerColumns = `p.producer_id, p.first_name, p.middle_name, p.last_name, p.phone, p.street, p.city,
	p.state, p.email, p.nationality, p.created_at`

func scanProducer(row pgx.CollectableRow) (models.Producer, error) {
	var p models.Producer
	err := row.Scan(&p.ProducerID, &p.FirstName, &p.MiddleName, &p.LastName, &p.Phone, &p.Street, &p.City,
		&p.State, &p.Email, &p.Nationality, &p.CreatedAt)
	return p, err
}

// ListProducers returns a page of producers. Search matches first name, last
// name and email.
func (db *DB) ListProducers(ctx context.Context, search string, page models.Page) (_ models.Paged[models.Producer], err error) {
	defer observe("list", "producer", time.Now(), &err)

	wb := query.NewWhereBuilder().AddSearch(search, "p.first_name", "p.last_name", "p.email")
	res, err := listPaged(ctx, db, listQuery{
		From:    "producer p",
		Columns: producerColumns,
		OrderBy: "p.created_at, p.producer_id",
	}, wb, page, scanProducer)
	if err != nil {
		return res, fmt.Errorf("list producers: %w", err)
	}
	return res, nil
}

// GetProducer returns one producer.
func (db *DB) GetProducer(ctx context.Context, id string) (_ *models.Producer, err error) {
	defer observe("select", "producer", time.Now(), &err)
	return getProducer(ctx, db.pool, id)
}

func getProducer(ctx context.Context, q querier, id string) (*models.Producer, error) {
	rows, err := q.Query(ctx, `SELECT `+producerColumns+` FROM producer p WHERE p.producer_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get producer: %w", err)
	}
	p, err := pgx.CollectExactlyOneRow(rows, scanProducer)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &p, nil
}

// ProducerEmailTaken reports whether a producer other than exceptID uses
// email. Pass an empty exceptID when creating.
func (db *DB) ProducerEmailTaken(ctx context.Context, email, exceptID string) (taken bool, err error) {
	defer observe("select", "producer", time.Now(), &err)
	err = db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM producer WHERE email = $1 AND producer_id <> $2)`,
		email, exceptID,
	).Scan(&taken)
	return taken, err
}

// CreateProducer inserts a producer. A duplicate email yields ErrConflict.
func (db *DB) CreateProducer(ctx context.Context, p *models.Producer) (err error) {
	defer observe("insert", "producer", time.Now(), &err)

	if p.ProducerID == "" {
		p.ProducerID = models.NewID(models.PrefixProducer, models.DefaultIDDigits)
	}
	err = db.pool.QueryRow(ctx, `
		INSERT INTO producer (producer_id, first_name, middle_name, last_name, phone, street, city, state,
			email, nationality)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`,
		p.ProducerID, p.FirstName, p.MiddleName, p.LastName, p.Phone, p.Street, p.City, p.State,
		p.Email, p.Nationality,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create producer: %w", mapWriteError(err))
	}
	return nil
}

// UpdateProducer applies mutate to the stored producer. A duplicate email
// yields ErrConflict.
func (db *DB) UpdateProducer(ctx context.Context, id string, mutate func(*models.Producer)) (_ *models.Producer, err error) {
	defer observe("update", "producer", time.Now(), &err)

	p, err := updateLocked(ctx, db, "producer", "producer_id", id, getProducer, mutate,
		func(tx pgx.Tx, p *models.Producer) error {
			_, err := tx.Exec(ctx, `
				UPDATE producer
				SET first_name = $2, middle_name = $3, last_name = $4, phone = $5, street = $6, city = $7,
					state = $8, email = $9, nationality = $10, updated_at = now()
				WHERE producer_id = $1`,
				id, p.FirstName, p.MiddleName, p.LastName, p.Phone, p.Street, p.City,
				p.State, p.Email, p.Nationality)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("update producer: %w", err)
	}
	return p, nil
}

// DeleteProducer removes a producer and its affiliations.
func (db *DB) DeleteProducer(ctx context.Context, id string) (err error) {
	defer observe("delete", "producer", time.Now(), &err)

	if err = db.execAffected(ctx, `DELETE FROM producer WHERE producer_id = $1`, id); err != nil {
		return fmt.Errorf("delete producer: %w", mapDeleteError(err))
	}
	return nil
}
