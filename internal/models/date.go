// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgtype"
)

// Input layouts accepted by the API.
const (
	DateLayout          = "2006-01-02"
	DateTimeLocalLayout = "2006-01-02T15:04"
	dateTimeOutLayout   = "2006-01-02T15:04:05"
)

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC date.
func Today() Date {
	return NewDate(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ScanDate implements pgtype.DateScanner.
func (d *Date) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		*d = Date{}
		return nil
	}
	*d = NewDate(v.Time)
	return nil
}

// DateValue implements pgtype.DateValuer.
func (d Date) DateValue() (pgtype.Date, error) {
	return pgtype.Date{Time: d.Time, Valid: !d.IsZero()}, nil
}

// LocalDateTime is a wall-clock timestamp without zone, as used for telecast
// windows. It is written as YYYY-MM-DDTHH:MM:SS and read as YYYY-MM-DDTHH:MM.
type LocalDateTime struct {
	time.Time
}

// ParseLocalDateTime parses a YYYY-MM-DDTHH:MM string.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	t, err := time.Parse(DateTimeLocalLayout, s)
	if err != nil {
		return LocalDateTime{}, fmt.Errorf("parse datetime %q: %w", s, err)
	}
	return LocalDateTime{t}, nil
}

// MarshalJSON encodes the timestamp without zone.
func (l LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Format(dateTimeOutLayout))
}

// UnmarshalJSON accepts both the input and the output layout so cached
// responses decode back to the same value.
func (l *LocalDateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range []string{dateTimeOutLayout, DateTimeLocalLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			*l = LocalDateTime{t}
			return nil
		}
	}
	return fmt.Errorf("parse datetime %q", s)
}

// ScanTimestamp implements pgtype.TimestampScanner.
func (l *LocalDateTime) ScanTimestamp(v pgtype.Timestamp) error {
	if !v.Valid {
		*l = LocalDateTime{}
		return nil
	}
	*l = LocalDateTime{v.Time}
	return nil
}

// TimestampValue implements pgtype.TimestampValuer.
func (l LocalDateTime) TimestampValue() (pgtype.Timestamp, error) {
	return pgtype.Timestamp{Time: l.Time, Valid: !l.IsZero()}, nil
}
