// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/reelhouse/internal/database"
)

// errorMessages holds the client-facing text for each store sentinel, per
// resource. Empty fields fall back to the generic messages below.
type errorMessages struct {
	notFound   string
	conflict   string
	invalidRef string
	inUse      string
}

const (
	msgNotFound   = "Resource not found"
	msgConflict   = "Resource already exists"
	msgInvalidRef = "Referenced resource does not exist"
	msgInUse      = "Resource is still referenced and cannot be deleted"
)

var (
	accountErrors  = errorMessages{notFound: "User not found", conflict: "Email already registered"}
	countryErrors  = errorMessages{notFound: "Country not found", conflict: "Country already exists", inUse: "Country is still referenced by releases"}
	seriesErrors   = errorMessages{notFound: "Series not found", invalidRef: "Production house not found"}
	episodeErrors  = errorMessages{notFound: "Episode not found", conflict: "Episode already exists", invalidRef: "Series not found"}
	feedbackErrors = errorMessages{
		notFound:   "Feedback not found",
		conflict:   "You have already submitted feedback for this series",
		invalidRef: "Series not found",
	}
	houseErrors       = errorMessages{notFound: "Production house not found", inUse: "Production house still has series"}
	producerErrors    = errorMessages{notFound: "Producer not found", conflict: "Email already exists"}
	affiliationErrors = errorMessages{notFound: "Affiliation not found", conflict: "Affiliation already exists", invalidRef: "Producer or production house not found"}
	telecastErrors    = errorMessages{notFound: "Telecast not found", invalidRef: "Episode not found"}
	contractErrors    = errorMessages{notFound: "Contract not found", invalidRef: "Series not found"}
	subtitleErrors    = errorMessages{notFound: "Subtitle language not found", conflict: "Subtitle language already exists", invalidRef: "Series not found"}
	releaseErrors     = errorMessages{notFound: "Release not found", conflict: "Release already exists", invalidRef: "Series not found"}
)

// respondStoreError maps a store error onto the API's error taxonomy:
//
//	database.ErrNotFound         404
//	database.ErrInvalidReference 400
//	database.ErrConflict         409
//	database.ErrInUse            409
//	anything else                500 "<op> failed", detail logged only
func respondStoreError(w http.ResponseWriter, r *http.Request, op string, err error, msgs errorMessages) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, orDefault(msgs.notFound, msgNotFound))
	case errors.Is(err, database.ErrInvalidReference):
		respondError(w, http.StatusBadRequest, orDefault(msgs.invalidRef, msgInvalidRef))
	case errors.Is(err, database.ErrConflict):
		respondError(w, http.StatusConflict, orDefault(msgs.conflict, msgConflict))
	case errors.Is(err, database.ErrInUse):
		respondError(w, http.StatusConflict, orDefault(msgs.inUse, msgInUse))
	default:
		respondInternal(w, r, op, err)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
