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

// Relationship tables. Listings default to relationPageSize items per page.
// Date fields arrive as strings already checked by the "date" and
// "datetime_local" validators, so the parse errors below cannot occur.

// ---------------------------------------------------------------------------
// Producer affiliations
// ---------------------------------------------------------------------------

// ListAffiliations returns a page of producer affiliations.
//
// Method: GET
// Path: /api/producer-affiliations
// Query: page, per_page, producer_id, house_id, search
func (h *Handler) ListAffiliations(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListAffiliations(r.Context(), models.AffiliationFilter{
		ProducerID: getStringParam(r, "producer_id"),
		HouseID:    getStringParam(r, "house_id"),
		Search:     getStringParam(r, "search"),
	}, h.relationPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch affiliations", err)
		return
	}
	respondPage(w, "affiliations", page)
}

// CreateAffiliation links a producer to a production house.
//
// Method: POST
// Path: /api/producer-affiliations
// Errors: 400 unknown producer or house, 409 already linked.
func (h *Handler) CreateAffiliation(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAffiliationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start, _ := models.ParseDate(req.StartDate)
	affiliation := &models.ProducerAffiliation{
		ProducerID: strings.TrimSpace(req.ProducerID),
		HouseID:    strings.TrimSpace(req.HouseID),
		StartDate:  start,
		EndDate:    optionalDate(req.EndDate),
	}
	if err := h.store.CreateAffiliation(r.Context(), affiliation); err != nil {
		respondStoreError(w, r, "Create affiliation", err, affiliationErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Affiliation created successfully", "affiliation", affiliation)
}

// DeleteAffiliation unlinks a producer from a production house.
//
// Method: DELETE
// Path: /api/producer-affiliations/{producer_id}/{house_id}
func (h *Handler) DeleteAffiliation(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteAffiliation(r.Context(), urlParam(r, "producer_id"), urlParam(r, "house_id"))
	if err != nil {
		respondStoreError(w, r, "Delete affiliation", err, affiliationErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Affiliation deleted successfully")
}

// ---------------------------------------------------------------------------
// Telecasts
// ---------------------------------------------------------------------------

// ListTelecasts returns a page of telecasts.
//
// Method: GET
// Path: /api/telecasts
// Query: page, per_page, episode_id, search
func (h *Handler) ListTelecasts(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListTelecasts(r.Context(), models.TelecastFilter{
		EpisodeID: getStringParam(r, "episode_id"),
		Search:    getStringParam(r, "search"),
	}, h.relationPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch telecasts", err)
		return
	}
	respondPage(w, "telecasts", page)
}

// CreateTelecast records a broadcast window. Times use the
// YYYY-MM-DDTHH:MM layout; tech_interruption defaults to "N".
//
// Method: POST
// Path: /api/telecasts
func (h *Handler) CreateTelecast(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTelecastRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start, _ := models.ParseLocalDateTime(req.StartDate)
	end, _ := models.ParseLocalDateTime(req.EndDate)
	telecast := &models.Telecast{
		StartDate:        start,
		EndDate:          end,
		TechInterruption: strings.ToUpper(strings.TrimSpace(req.TechInterruption)),
		TotalViewers:     req.TotalViewers,
		EpisodeID:        strings.TrimSpace(req.EpisodeID),
	}
	if err := h.store.CreateTelecast(r.Context(), telecast); err != nil {
		respondStoreError(w, r, "Create telecast", err, telecastErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Telecast created successfully", "telecast", telecast)
}

// UpdateTelecast changes any subset of a telecast's fields.
//
// Method: PUT
// Path: /api/telecasts/{id}
func (h *Handler) UpdateTelecast(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTelecastRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	telecast, err := h.store.UpdateTelecast(r.Context(), urlParam(r, "id"), func(t *models.Telecast) {
		if req.StartDate != nil {
			t.StartDate, _ = models.ParseLocalDateTime(*req.StartDate)
		}
		if req.EndDate != nil {
			t.EndDate, _ = models.ParseLocalDateTime(*req.EndDate)
		}
		if req.TechInterruption != nil {
			t.TechInterruption = strings.ToUpper(strings.TrimSpace(*req.TechInterruption))
		}
		if req.TotalViewers != nil {
			t.TotalViewers = *req.TotalViewers
		}
	})
	if err != nil {
		respondStoreError(w, r, "Update telecast", err, telecastErrors)
		return
	}
	respondWrite(w, http.StatusOK, "Telecast updated successfully", "telecast", telecast)
}

// DeleteTelecast removes a telecast.
//
// Method: DELETE
// Path: /api/telecasts/{id}
func (h *Handler) DeleteTelecast(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTelecast(r.Context(), urlParam(r, "id")); err != nil {
		respondStoreError(w, r, "Delete telecast", err, telecastErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Telecast deleted successfully")
}

// ---------------------------------------------------------------------------
// Series contracts
// ---------------------------------------------------------------------------

// ListContracts returns a page of contracts.
//
// Method: GET
// Path: /api/contracts
// Query: page, per_page, webseries_id, status, search
func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListContracts(r.Context(), models.ContractFilter{
		WebSeriesID: getStringParam(r, "webseries_id"),
		Status:      getStringParam(r, "status"),
		Search:      getStringParam(r, "search"),
	}, h.relationPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch contracts", err)
		return
	}
	respondPage(w, "contracts", page)
}

// CreateContract records a distribution contract. The charge may be sent as
// charge_per_episode or contract_amount and must be non-zero.
//
// Method: POST
// Path: /api/contracts
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContractRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	charge, ok := req.Charge()
	if !ok || charge == 0 {
		respondError(w, http.StatusBadRequest, "charge_per_episode or contract_amount is required")
		return
	}

	start, _ := models.ParseDate(req.StartDate)
	end, _ := models.ParseDate(req.EndDate)
	contract := &models.SeriesContract{
		StartDate:        start,
		EndDate:          end,
		ChargePerEpisode: charge,
		Status:           clean(req.ContractStatus),
		WebSeriesID:      strings.TrimSpace(req.WebSeriesID),
	}
	if d := optionalDate(req.SignedDate); d != nil {
		contract.SignedDate = *d
	}

	if err := h.store.CreateContract(r.Context(), contract); err != nil {
		respondStoreError(w, r, "Create contract", err, contractErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Contract created successfully", "contract", contract)
}

// UpdateContract changes any subset of a contract's fields.
//
// Method: PUT
// Path: /api/contracts/{id}
func (h *Handler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateContractRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	contract, err := h.store.UpdateContract(r.Context(), urlParam(r, "id"), func(c *models.SeriesContract) {
		if d := optionalDate(req.SignedDate); d != nil {
			c.SignedDate = *d
		}
		if d := optionalDate(req.StartDate); d != nil {
			c.StartDate = *d
		}
		if d := optionalDate(req.EndDate); d != nil {
			c.EndDate = *d
		}
		setClean(&c.Status, req.ContractStatus)
		if charge, ok := req.Charge(); ok {
			c.ChargePerEpisode = charge
		}
	})
	if err != nil {
		respondStoreError(w, r, "Update contract", err, contractErrors)
		return
	}
	respondWrite(w, http.StatusOK, "Contract updated successfully", "contract", contract)
}

// DeleteContract removes a contract.
//
// Method: DELETE
// Path: /api/contracts/{id}
func (h *Handler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteContract(r.Context(), urlParam(r, "id")); err != nil {
		respondStoreError(w, r, "Delete contract", err, contractErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Contract deleted successfully")
}

// ---------------------------------------------------------------------------
// Subtitle languages
// ---------------------------------------------------------------------------

// ListSubtitles returns a page of subtitle languages.
//
// Method: GET
// Path: /api/subtitle-languages
// Query: page, per_page, webseries_id, search
func (h *Handler) ListSubtitles(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListSubtitles(r.Context(), models.SubtitleFilter{
		WebSeriesID: getStringParam(r, "webseries_id"),
		Search:      getStringParam(r, "search"),
	}, h.relationPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch subtitle languages", err)
		return
	}
	respondPage(w, "subtitle_languages", page)
}

// CreateSubtitle offers a subtitle language for a series.
//
// Method: POST
// Path: /api/subtitle-languages
// Errors: 409 when the series already has the language.
func (h *Handler) CreateSubtitle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubtitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	subtitle := &models.SubtitleLanguage{
		Language:    strings.TrimSpace(req.Language),
		WebSeriesID: strings.TrimSpace(req.WebSeriesID),
	}
	if err := h.store.CreateSubtitle(r.Context(), subtitle); err != nil {
		respondStoreError(w, r, "Create subtitle language", err, subtitleErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Subtitle language created successfully", "subtitle_language", subtitle)
}

// DeleteSubtitle withdraws a subtitle language from a series.
//
// Method: DELETE
// Path: /api/subtitle-languages/{webseries_id}/{language}
func (h *Handler) DeleteSubtitle(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteSubtitle(r.Context(), urlParam(r, "webseries_id"), urlParam(r, "language"))
	if err != nil {
		respondStoreError(w, r, "Delete subtitle language", err, subtitleErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Subtitle language deleted successfully")
}

// ---------------------------------------------------------------------------
// Releases
// ---------------------------------------------------------------------------

// ListReleases returns a page of releases.
//
// Method: GET
// Path: /api/releases
// Query: page, per_page, webseries_id, country_name, search
func (h *Handler) ListReleases(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListReleases(r.Context(), models.ReleaseFilter{
		WebSeriesID: getStringParam(r, "webseries_id"),
		CountryName: getStringParam(r, "country_name"),
		Search:      getStringParam(r, "search"),
	}, h.relationPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch releases", err)
		return
	}
	respondPage(w, "releases", page)
}

// CreateRelease records a release. An unknown country is created.
//
// Method: POST
// Path: /api/releases
// Errors: 400 unknown series, 409 already released in that country.
func (h *Handler) CreateRelease(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReleaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, _ := models.ParseDate(req.ReleaseDate)
	release := &models.Release{
		WebSeriesID: strings.TrimSpace(req.WebSeriesID),
		CountryName: strings.TrimSpace(req.CountryName),
		ReleaseDate: date,
	}
	if err := h.store.CreateRelease(r.Context(), release); err != nil {
		respondStoreError(w, r, "Create release", err, releaseErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Release created successfully", "release", release)
}

// UpdateRelease changes the release date. A body without release_date
// returns the release unchanged.
//
// Method: PUT
// Path: /api/releases/{webseries_id}/{country_name}
func (h *Handler) UpdateRelease(w http.ResponseWriter, r *http.Request) {
	seriesID, country := urlParam(r, "webseries_id"), urlParam(r, "country_name")

	var req models.UpdateReleaseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.ReleaseDate == nil {
		page, err := h.store.ListReleases(r.Context(), models.ReleaseFilter{
			WebSeriesID: seriesID,
			CountryName: country,
		}, models.Page{Number: 1, PerPage: 1})
		if err != nil {
			respondInternal(w, r, "Update release", err)
			return
		}
		if len(page.Items) == 0 {
			respondError(w, http.StatusNotFound, releaseErrors.notFound)
			return
		}
		respondWrite(w, http.StatusOK, "Release updated successfully", "release", page.Items[0])
		return
	}

	date, _ := models.ParseDate(*req.ReleaseDate)
	release, err := h.store.UpdateReleaseDate(r.Context(), seriesID, country, date)
	if err != nil {
		respondStoreError(w, r, "Update release", err, releaseErrors)
		return
	}
	respondWrite(w, http.StatusOK, "Release updated successfully", "release", release)
}

// DeleteRelease removes a release.
//
// Method: DELETE
// Path: /api/releases/{webseries_id}/{country_name}
func (h *Handler) DeleteRelease(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteRelease(r.Context(), urlParam(r, "webseries_id"), urlParam(r, "country_name"))
	if err != nil {
		respondStoreError(w, r, "Delete release", err, releaseErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Release deleted successfully")
}

// optionalDate parses a validated optional date; nil stays nil.
func optionalDate(s *string) *models.Date {
	if s == nil {
		return nil
	}
	d, err := models.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}
