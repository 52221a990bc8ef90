// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package models

import "time"

// Rating bounds.
const (
	MinRating          = 1
	MaxRating          = 5
	MaxFeedbackTextLen = 128
)

// Feedback is one viewer's rating of one series. An account may hold at most
// one feedback per series.
type Feedback struct {
	FeedbackID   string          `json:"feedback_id"`
	Rating       int             `json:"rating"`
	FeedbackText string          `json:"feedback_text"`
	FeedbackDate Date            `json:"feedback_date"`
	AccountID    string          `json:"account_id"`
	WebSeriesID  string          `json:"webseries_id"`
	CreatedAt    time.Time       `json:"created_at"`
	Viewer       *AccountSummary `json:"viewer_account,omitempty"`
}

// FeedbackFilter narrows feedback listings.
type FeedbackFilter struct {
	WebSeriesID string
	Search      string
}
