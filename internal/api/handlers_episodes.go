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

// ListEpisodes returns a page of episodes.
//
// Method: GET
// Path: /api/episodes
// Query: page, per_page, webseries_id, search (title, episode ID or series ID)
func (h *Handler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListEpisodes(r.Context(), models.EpisodeFilter{
		WebSeriesID: getStringParam(r, "webseries_id"),
		Search:      getStringParam(r, "search"),
	}, h.listPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch episodes", err)
		return
	}
	respondPage(w, "episodes", page)
}

// GetEpisode returns one episode.
//
// Method: GET
// Path: /api/episodes/{id}
func (h *Handler) GetEpisode(w http.ResponseWriter, r *http.Request) {
	episode, err := h.store.GetEpisode(r.Context(), urlParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, "Fetch episode", err, episodeErrors)
		return
	}
	respondSingle(w, "episode", episode)
}

// CreateEpisode adds an episode to a series.
//
// Method: POST
// Path: /api/episodes
func (h *Handler) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEpisodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	episode := &models.Episode{
		EpisodeNumber:   strings.TrimSpace(req.EpisodeNumber),
		Title:           cleanOptional(req.Title),
		WebSeriesID:     strings.TrimSpace(req.WebSeriesID),
		DurationMinutes: req.DurationMinutes,
		ReleaseDate:     optionalDate(req.ReleaseDate),
	}

	if err := h.store.CreateEpisode(r.Context(), episode); err != nil {
		respondStoreError(w, r, "Create episode", err, episodeErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Episode created successfully", "episode", episode)
}

// UpdateEpisode changes the title, duration or release date of an episode.
//
// Method: PUT
// Path: /api/episodes/{id}
func (h *Handler) UpdateEpisode(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateEpisodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	episode, err := h.store.UpdateEpisode(r.Context(), urlParam(r, "id"), func(e *models.Episode) {
		if req.Title != nil {
			e.Title = cleanOptional(req.Title)
		}
		if req.DurationMinutes != nil {
			e.DurationMinutes = req.DurationMinutes
		}
		if req.ReleaseDate != nil {
			e.ReleaseDate = optionalDate(req.ReleaseDate)
		}
	})
	if err != nil {
		respondStoreError(w, r, "Update episode", err, episodeErrors)
		return
	}
	respondWrite(w, http.StatusOK, "Episode updated successfully", "episode", episode)
}

// DeleteEpisode removes an episode and its telecasts.
//
// Method: DELETE
// Path: /api/episodes/{id}
func (h *Handler) DeleteEpisode(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteEpisode(r.Context(), urlParam(r, "id")); err != nil {
		respondStoreError(w, r, "Delete episode", err, episodeErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Episode deleted successfully")
}
