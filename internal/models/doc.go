// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
Package models defines data structures for the Reelhouse catalog.

Key Components:

  - Account, Country: viewer accounts and the countries they live in
  - WebSeries, Episode, ProductionHouse, Producer: the catalog itself
  - Feedback: a viewer's single rating and comment for a series
  - ProducerAffiliation, Telecast, SeriesContract, SubtitleLanguage, Release:
    relationship tables, returned enriched with display names
  - Request types: JSON bodies with go-playground/validator tags
  - Page, Paged: pagination input and output shared by stores and handlers

Identifiers are a fixed prefix followed by decimal digits taken from a random
UUID (see NewID). Dates are carried as Date, which encodes as YYYY-MM-DD in
JSON and maps to the Postgres DATE type through pgx.
*/
package models
