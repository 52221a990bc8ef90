// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package models

// SystemStats is the admin dashboard summary.
type SystemStats struct {
	Users    UserStats     `json:"users"`
	Series   SeriesStats   `json:"series"`
	Feedback FeedbackStats `json:"feedback"`
}

// UserStats counts accounts by role and activity.
type UserStats struct {
	Total     int64 `json:"total"`
	Customers int64 `json:"customers"`
	Employees int64 `json:"employees"`
	Admins    int64 `json:"admins"`
	Active    int64 `json:"active"`
}

// SeriesStats counts catalog entries. ThisMonth counts series created in the
// current calendar month.
type SeriesStats struct {
	Total         int64 `json:"total"`
	ThisMonth     int64 `json:"this_month"`
	TotalEpisodes int64 `json:"total_episodes"`
}

// FeedbackStats summarizes ratings. AverageRating is rounded to two decimals
// and is 0 when there is no feedback.
type FeedbackStats struct {
	Total         int64   `json:"total"`
	AverageRating float64 `json:"average_rating"`
}

// Activity log entry types.
const (
	ActivityUserRegistration = "user_registration"
	ActivitySeriesCreated    = "series_created"
	ActivityFeedbackCreated  = "feedback_created"
)

// ActivityLog is one entry of the admin activity feed.
type ActivityLog struct {
	Type      string         `json:"type"`
	Timestamp string         `json:"timestamp"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details"`
}
