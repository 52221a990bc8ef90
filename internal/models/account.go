// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package models

import "time"

// DefaultMonthlyServiceCharge is billed to every self-registered account.
const DefaultMonthlyServiceCharge = 9.99

// Account is a viewer account. PasswordHash never leaves the server.
type Account struct {
	AccountID            string    `json:"account_id"`
	FirstName            string    `json:"first_name"`
	MiddleName           *string   `json:"middle_name"`
	LastName             string    `json:"last_name"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	Street               string    `json:"street"`
	City                 string    `json:"city"`
	State                string    `json:"state"`
	CountryName          *string   `json:"country_name"`
	AccountType          string    `json:"account_type"`
	IsActive             bool      `json:"is_active"`
	OpenDate             Date      `json:"open_date"`
	MonthlyServiceCharge float64   `json:"monthly_service_charge"`
	CreatedAt            time.Time `json:"created_at"`
}

// AccountSummary is the viewer block embedded in feedback responses.
type AccountSummary struct {
	AccountID string `json:"account_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// AccountFilter narrows admin user listings.
type AccountFilter struct {
	Search      string
	AccountType string
	IsActive    *bool
}

// Country is a country referenced by accounts and releases.
type Country struct {
	CountryName string    `json:"country_name"`
	CreatedAt   time.Time `json:"created_at"`
}
