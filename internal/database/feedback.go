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

const (
	feedbackFrom    = `feedback f JOIN viewer_account v ON v.account_id = f.account_id`
	feedbackColumns = `f.feedback_id, f.rating, f.feedback_text, f.feedback_date, f.account_id,
	f.webseries_id, f.created_at, v.first_name, v.last_name, v.email`
)

func scanFeedback(row pgx.CollectableRow) (models.Feedback, error) {
	var f models.Feedback
	viewer := &models.AccountSummary{}
	err := row.Scan(&f.FeedbackID, &f.Rating, &f.FeedbackText, &f.FeedbackDate, &f.AccountID,
		&f.WebSeriesID, &f.CreatedAt, &viewer.FirstName, &viewer.LastName, &viewer.Email)
	viewer.AccountID = f.AccountID
	f.Viewer = viewer
	return f, err
}

// ListFeedback returns a page of feedback with the author embedded. Search
// matches text, feedback ID, account ID and series ID.
func (db *DB) ListFeedback(ctx context.Context, filter models.FeedbackFilter, page models.Page) (_ models.Paged[models.Feedback], err error) {
	defer observe("list", "feedback", time.Now(), &err)

	wb := query.NewWhereBuilder().
		AddEquals("f.webseries_id", filter.WebSeriesID).
		AddSearch(filter.Search, "f.feedback_text", "f.feedback_id", "f.account_id", "f.webseries_id")

	res, err := listPaged(ctx, db, listQuery{
		From:    feedbackFrom,
		Columns: feedbackColumns,
		OrderBy: "f.created_at, f.feedback_id",
	}, wb, page, scanFeedback)
	if err != nil {
		return res, fmt.Errorf("list feedback: %w", err)
	}
	return res, nil
}

// GetFeedback returns one feedback with its author.
func (db *DB) GetFeedback(ctx context.Context, id string) (_ *models.Feedback, err error) {
	defer observe("select", "feedback", time.Now(), &err)
	return getFeedback(ctx, db.pool, id)
}

func getFeedback(ctx context.Context, q querier, id string) (*models.Feedback, error) {
	rows, err := q.Query(ctx, `SELECT `+feedbackColumns+` FROM `+feedbackFrom+` WHERE f.feedback_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	f, err := pgx.CollectExactlyOneRow(rows, scanFeedback)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &f, nil
}

// FeedbackExists reports whether accountID already rated seriesID.
func (db *DB) FeedbackExists(ctx context.Context, accountID, seriesID string) (exists bool, err error) {
	defer observe("select", "feedback", time.Now(), &err)
	err = db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM feedback WHERE account_id = $1 AND webseries_id = $2)`,
		accountID, seriesID,
	).Scan(&exists)
	return exists, err
}

// CreateFeedback inserts feedback and returns it with the author embedded.
// A second feedback for the same account and series yields ErrConflict; an
// unknown series yields ErrInvalidReference.
func (db *DB) CreateFeedback(ctx context.Context, f *models.Feedback) (_ *models.Feedback, err error) {
	defer observe("insert", "feedback", time.Now(), &err)

	if f.FeedbackID == "" {
		f.FeedbackID = models.NewID(models.PrefixFeedback, models.DefaultIDDigits)
	}
	if f.FeedbackDate.IsZero() {
		f.FeedbackDate = models.Today()
	}

	var created *models.Feedback
	err = db.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO feedback (feedback_id, rating, feedback_text, feedback_date, account_id, webseries_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			f.FeedbackID, f.Rating, f.FeedbackText, f.FeedbackDate, f.AccountID, f.WebSeriesID)
		if err != nil {
			return err
		}
		created, err = getFeedback(ctx, tx, f.FeedbackID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create feedback: %w", mapWriteError(err))
	}
	return created, nil
}

// UpdateFeedback applies mutate to the stored feedback. Only rating and text
// are written back.
func (db *DB) UpdateFeedback(ctx context.Context, id string, mutate func(*models.Feedback)) (_ *models.Feedback, err error) {
	defer observe("update", "feedback", time.Now(), &err)

	f, err := updateLocked(ctx, db, "feedback", "feedback_id", id, getFeedback, mutate,
		func(tx pgx.Tx, f *models.Feedback) error {
			_, err := tx.Exec(ctx, `
				UPDATE feedback SET rating = $2, feedback_text = $3, updated_at = now()
				WHERE feedback_id = $1`,
				id, f.Rating, f.FeedbackText)
			return err
		})
	if err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	return f, nil
}

// DeleteFeedback removes one feedback.
func (db *DB) DeleteFeedback(ctx context.Context, id string) (err error) {
	defer observe("delete", "feedback", time.Now(), &err)

	if err = db.execAffected(ctx, `DELETE FROM feedback WHERE feedback_id = $1`, id); err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}
