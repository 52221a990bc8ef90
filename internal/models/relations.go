// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package models

import "time"

// ProducerAffiliation links a producer to a production house.
type ProducerAffiliation struct {
	ProducerID string    `json:"producer_id"`
	HouseID    string    `json:"house_id"`
	StartDate  Date      `json:"start_date"`
	EndDate    *Date     `json:"end_date"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated on listings
	ProducerName *string `json:"producer_name,omitempty"`
	HouseName    *string `json:"house_name,omitempty"`
}

// AffiliationFilter narrows affiliation listings.
type AffiliationFilter struct {
	ProducerID string
	HouseID    string
	Search     string
}

// Telecast is one broadcast window of an episode.
type Telecast struct {
	TelecastID       string        `json:"telecast_id"`
	StartDate        LocalDateTime `json:"start_date"`
	EndDate          LocalDateTime `json:"end_date"`
	TechInterruption string        `json:"tech_interruption"`
	TotalViewers     int64         `json:"total_viewers"`
	EpisodeID        string        `json:"episode_id"`
	CreatedAt        time.Time     `json:"created_at"`

	// Populated on listings
	EpisodeTitle *string `json:"episode_title,omitempty"`
	SeriesTitle  *string `json:"series_title,omitempty"`
}

// TelecastFilter narrows telecast listings.
type TelecastFilter struct {
	EpisodeID string
	Search    string
}

// SeriesContract is a distribution contract for a series. ContractAmount and
// ContractStatus mirror ChargePerEpisode and Status for older clients.
type SeriesContract struct {
	ContractID       string    `json:"contract_id"`
	SignedDate       Date      `json:"signed_date"`
	StartDate        Date      `json:"start_date"`
	EndDate          Date      `json:"end_date"`
	ChargePerEpisode float64   `json:"charge_per_episode"`
	ContractAmount   float64   `json:"contract_amount"`
	Status           string    `json:"status"`
	ContractStatus   string    `json:"contract_status"`
	WebSeriesID      string    `json:"webseries_id"`
	CreatedAt        time.Time `json:"created_at"`

	// Populated on listings
	SeriesTitle *string `json:"series_title,omitempty"`
}

// SyncAliases copies the canonical fields into their aliases.
func (c *SeriesContract) SyncAliases() {
	c.ContractAmount = c.ChargePerEpisode
	c.ContractStatus = c.Status
}

// ContractFilter narrows contract listings.
type ContractFilter struct {
	WebSeriesID string
	Status      string
	Search      string
}

// SubtitleLanguage is a subtitle track offered for a series.
type SubtitleLanguage struct {
	SubtitleLanguageID string `json:"subtitle_language_id"`
	Language           string `json:"language"`
	WebSeriesID        string `json:"webseries_id"`

	// Populated on listings
	SeriesTitle *string `json:"series_title,omitempty"`
}

// SubtitleFilter narrows subtitle listings.
type SubtitleFilter struct {
	WebSeriesID string
	Search      string
}

// Release records when a series became available in a country.
type Release struct {
	WebSeriesID string `json:"webseries_id"`
	CountryName string `json:"country_name"`
	ReleaseDate Date   `json:"release_date"`

	// Populated on listings
	SeriesTitle *string `json:"series_title,omitempty"`
}

// ReleaseFilter narrows release listings.
type ReleaseFilter struct {
	WebSeriesID string
	CountryName string
	Search      string
}
