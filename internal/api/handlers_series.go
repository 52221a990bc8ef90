// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/reelhouse/internal/models"
)

// ListSeries returns a page of series.
//
// Method: GET
// Path: /api/series
// Query: page, per_page, search (title or ID), type
func (h *Handler) ListSeries(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListSeries(r.Context(), models.SeriesFilter{
		Search: getStringParam(r, "search"),
		Type:   getStringParam(r, "type"),
	}, h.listPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch series", err)
		return
	}
	respondPage(w, "series", page)
}

// GetSeries returns one series with its episodes.
//
// Method: GET
// Path: /api/series/{id}
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.store.GetSeries(r.Context(), urlParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, "Fetch series", err, seriesErrors)
		return
	}
	respondSingle(w, "series", series)
}

// CreateSeries adds a series to the catalog.
//
// Method: POST
// Path: /api/series
// Errors: 400 invalid body or unknown house_id.
func (h *Handler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSeriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	series := &models.WebSeries{
		Title:       clean(req.Title),
		NumEpisodes: req.NumEpisodes,
		Type:        strings.TrimSpace(req.Type),
		HouseID:     strings.TrimSpace(req.HouseID),
	}
	if err := h.store.CreateSeries(r.Context(), series); err != nil {
		respondStoreError(w, r, "Create series", err, seriesErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Series created successfully", "series", series)
}

// UpdateSeries changes the title, episode count or type of a series.
// Absent fields are left unchanged.
//
// Method: PUT
// Path: /api/series/{id}
func (h *Handler) UpdateSeries(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSeriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	series, err := h.store.UpdateSeries(r.Context(), urlParam(r, "id"), func(s *models.WebSeries) {
		if req.Title != nil {
			s.Title = clean(*req.Title)
		}
		if req.NumEpisodes != nil {
			s.NumEpisodes = *req.NumEpisodes
		}
		if req.Type != nil {
			s.Type = strings.TrimSpace(*req.Type)
		}
	})
	if err != nil {
		respondStoreError(w, r, "Update series", err, seriesErrors)
		return
	}
	respondWrite(w, http.StatusOK, "Series updated successfully", "series", series)
}

// DeleteSeries removes a series together with its episodes, feedback,
// contracts, subtitles and releases.
//
// Method: DELETE
// Path: /api/series/{id}
func (h *Handler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSeries(r.Context(), urlParam(r, "id")); err != nil {
		respondStoreError(w, r, "Delete series", err, seriesErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Series deleted successfully")
}
