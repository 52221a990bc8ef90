// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package models

import (
	"math/big"

	"github.com/google/uuid"
)

// Identifier prefixes and digit counts per entity.
const (
	PrefixAccount         = "ACC"
	PrefixWebSeries       = "WS"
	PrefixEpisode         = "EP"
	PrefixFeedback        = "FB"
	PrefixProducer        = "PR"
	PrefixProductionHouse = "PH"
	PrefixTelecast        = "TC"
	PrefixContract        = "CT"
	PrefixSubtitle        = "SL"

	AccountIDDigits         = 7
	ProductionHouseIDDigits = 6
	DefaultIDDigits         = 8
)

// NewID returns prefix followed by the first digits decimal digits of a random
// UUID's 128-bit value. Collisions are possible but unlikely and surface as
// unique-constraint conflicts.
func NewID(prefix string, digits int) string {
	u := uuid.New()
	dec := new(big.Int).SetBytes(u[:]).String()
	if len(dec) > digits {
		dec = dec[:digits]
	}
	return prefix + dec
}
