// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package models

import "time"

// WebSeries is a catalog entry. Rating is the mean feedback rating rounded to
// one decimal, or null when the series has no feedback.
type WebSeries struct {
	WebSeriesID string    `json:"webseries_id"`
	Title       string    `json:"title"`
	NumEpisodes int       `json:"num_episodes"`
	Type        string    `json:"type"`
	HouseID     string    `json:"house_id"`
	CreatedAt   time.Time `json:"created_at"`
	Rating      *float64  `json:"rating"`

	// Episodes is only populated on detail responses.
	Episodes []Episode `json:"episodes,omitempty"`
}

// SeriesFilter narrows series listings.
type SeriesFilter struct {
	Search string
	Type   string
}

// Episode belongs to exactly one series.
type Episode struct {
	EpisodeID       string    `json:"episode_id"`
	EpisodeNumber   string    `json:"episode_number"`
	Title           *string   `json:"title"`
	WebSeriesID     string    `json:"webseries_id"`
	DurationMinutes *int      `json:"duration_minutes"`
	ReleaseDate     *Date     `json:"release_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// EpisodeFilter narrows episode listings.
type EpisodeFilter struct {
	WebSeriesID string
	Search      string
}

// ProductionHouse produces series.
type ProductionHouse struct {
	HouseID         string    `json:"house_id"`
	Name            string    `json:"name"`
	YearEstablished string    `json:"year_established"`
	Street          string    `json:"street"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Nationality     string    `json:"nationality"`
	CreatedAt       time.Time `json:"created_at"`

	// WebSeries is only populated on detail responses.
	WebSeries []WebSeries `json:"web_series,omitempty"`
}

// Producer is a person affiliated with production houses.
type Producer struct {
	ProducerID  string    `json:"producer_id"`
	FirstName   string    `json:"first_name"`
	MiddleName  *string   `json:"middle_name"`
	LastName    string    `json:"last_name"`
	Phone       int64     `json:"phone"`
	Street      string    `json:"street"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Email       string    `json:"email"`
	Nationality string    `json:"nationality"`
	CreatedAt   time.Time `json:"created_at"`
}
