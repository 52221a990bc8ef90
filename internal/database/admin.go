// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package database

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/reelhouse/internal/models"
)

// Activity feed sizing.
const (
	activityPerSource = 10
	activityLimit     = 20
)

// Stats returns the admin dashboard counters in a single round trip.
func (db *DB) Stats(ctx context.Context) (_ *models.SystemStats, err error) {
	defer observe("select", "stats", time.Now(), &err)

	var s models.SystemStats
	err = db.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM viewer_account),
			(SELECT COUNT(*) FROM viewer_account WHERE account_type = 'Customer'),
			(SELECT COUNT(*) FROM viewer_account WHERE account_type = 'Employee'),
			(SELECT COUNT(*) FROM viewer_account WHERE account_type = 'Admin'),
			(SELECT COUNT(*) FROM viewer_account WHERE is_active),
			(SELECT COUNT(*) FROM web_series),
			(SELECT COUNT(*) FROM web_series WHERE date_trunc('month', created_at) = date_trunc('month', now())),
			(SELECT COUNT(*) FROM episode),
			(SELECT COUNT(*) FROM feedback),
			(SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0)::float8 FROM feedback)`,
	).Scan(
		&s.Users.Total, &s.Users.Customers, &s.Users.Employees, &s.Users.Admins, &s.Users.Active,
		&s.Series.Total, &s.Series.ThisMonth, &s.Series.TotalEpisodes,
		&s.Feedback.Total, &s.Feedback.AverageRating,
	)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &s, nil
}

type activity struct {
	at  time.Time
	log models.ActivityLog
}

// RecentActivity merges the latest registrations, series and feedback into
// one feed, newest first.
func (db *DB) RecentActivity(ctx context.Context) (_ []models.ActivityLog, err error) {
	defer observe("select", "activity", time.Now(), &err)

	var feed []activity

	rows, err := db.pool.Query(ctx, `SELECT `+accountColumns+` FROM viewer_account a
		ORDER BY a.open_date DESC, a.created_at DESC LIMIT $1`, activityPerSource)
	if err != nil {
		return nil, fmt.Errorf("recent accounts: %w", err)
	}
	accounts, err := pgx.CollectRows(rows, scanAccount)
	if err != nil {
		return nil, fmt.Errorf("recent accounts: %w", err)
	}
	for _, a := range accounts {
		feed = append(feed, activity{at: a.OpenDate.Time, log: models.ActivityLog{
			Type:      models.ActivityUserRegistration,
			Timestamp: a.OpenDate.String(),
			Message:   fmt.Sprintf("New user registered: %s %s (%s)", a.FirstName, a.LastName, a.Email),
			Details: map[string]any{
				"account_id":   a.AccountID,
				"first_name":   a.FirstName,
				"last_name":    a.LastName,
				"email":        a.Email,
				"account_type": a.AccountType,
				"is_active":    a.IsActive,
				"open_date":    a.OpenDate.String(),
			},
		}})
	}

	rows, err = db.pool.Query(ctx, `SELECT webseries_id, title, created_at FROM web_series
		ORDER BY created_at DESC LIMIT $1`, activityPerSource)
	if err != nil {
		return nil, fmt.Errorf("recent series: %w", err)
	}
	var (
		id, title string
		createdAt time.Time
	)
	_, err = pgx.ForEachRow(rows, []any{&id, &title, &createdAt}, func() error {
		feed = append(feed, activity{at: createdAt, log: models.ActivityLog{
			Type:      models.ActivitySeriesCreated,
			Timestamp: createdAt.UTC().Format(time.RFC3339),
			Message:   "New series added: " + title,
			Details:   map[string]any{"webseries_id": id, "title": title},
		}})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recent series: %w", err)
	}

	rows, err = db.pool.Query(ctx, `SELECT f.feedback_id, f.rating, f.account_id, f.webseries_id, f.created_at
		FROM feedback f ORDER BY f.created_at DESC LIMIT $1`, activityPerSource)
	if err != nil {
		return nil, fmt.Errorf("recent feedback: %w", err)
	}
	var (
		accountID, seriesID string
		rating              int
	)
	_, err = pgx.ForEachRow(rows, []any{&id, &rating, &accountID, &seriesID, &createdAt}, func() error {
		feed = append(feed, activity{at: createdAt, log: models.ActivityLog{
			Type:      models.ActivityFeedbackCreated,
			Timestamp: createdAt.UTC().Format(time.RFC3339),
			Message:   fmt.Sprintf("New feedback (%d/5) on series %s", rating, seriesID),
			Details: map[string]any{
				"feedback_id":  id,
				"rating":       rating,
				"account_id":   accountID,
				"webseries_id": seriesID,
			},
		}})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("recent feedback: %w", err)
	}

	return mergeActivity(feed, activityLimit), nil
}

// mergeActivity sorts newest first and keeps at most limit entries.
func mergeActivity(feed []activity, limit int) []models.ActivityLog {
	slices.SortStableFunc(feed, func(a, b activity) int {
		return b.at.Compare(a.at)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	logs := make([]models.ActivityLog, len(feed))
	for i, a := range feed {
		logs[i] = a.log
	}
	return logs
}

// Vacuum runs VACUUM ANALYZE over the whole database. VACUUM cannot run
// inside a transaction, so it goes straight to a pooled connection.
func (db *DB) Vacuum(ctx context.Context) (err error) {
	defer observe("maintenance", "all", time.Now(), &err)

	if _, err = db.pool.Exec(ctx, `VACUUM ANALYZE`); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}
