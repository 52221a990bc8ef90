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

// ListProductionHouses returns a page of production houses.
//
// Method: GET
// Path: /api/production-houses
// Query: page, per_page, search (name or ID)
func (h *Handler) ListProductionHouses(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListProductionHouses(r.Context(), getStringParam(r, "search"), h.listPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch production houses", err)
		return
	}
	respondPage(w, "production_houses", page)
}

// GetProductionHouse returns one production house with its series.
//
// Method: GET
// Path: /api/production-houses/{id}
func (h *Handler) GetProductionHouse(w http.ResponseWriter, r *http.Request) {
	house, err := h.store.GetProductionHouse(r.Context(), urlParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, "Fetch production house", err, houseErrors)
		return
	}
	respondSingle(w, "production_house", house)
}

// CreateProductionHouse adds a production house.
//
// Method: POST
// Path: /api/production-houses
func (h *Handler) CreateProductionHouse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductionHouseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	house := &models.ProductionHouse{
		Name:            clean(req.Name),
		YearEstablished: strings.TrimSpace(req.YearEstablished),
		Street:          clean(req.Street),
		City:            clean(req.City),
		State:           clean(req.State),
		Nationality:     clean(req.Nationality),
	}
	if err := h.store.CreateProductionHouse(r.Context(), house); err != nil {
		respondStoreError(w, r, "Create production house", err, houseErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Production house created successfully", "production_house", house)
}

// UpdateProductionHouse changes any subset of a production house's fields.
//
// Method: PUT
// Path: /api/production-houses/{id}
func (h *Handler) UpdateProductionHouse(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProductionHouseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	house, err := h.store.UpdateProductionHouse(r.Context(), urlParam(r, "id"), func(p *models.ProductionHouse) {
		setClean(&p.Name, req.Name)
		if req.YearEstablished != nil {
			p.YearEstablished = strings.TrimSpace(*req.YearEstablished)
		}
		setClean(&p.Street, req.Street)
		setClean(&p.City, req.City)
		setClean(&p.State, req.State)
		setClean(&p.Nationality, req.Nationality)
	})
	if err != nil {
		respondStoreError(w, r, "Update production house", err, houseErrors)
		return
	}
	respondWrite(w, http.StatusOK, "Production house updated successfully", "production_house", house)
}

// DeleteProductionHouse removes a production house and its affiliations.
// A house that still has series cannot be deleted.
//
// Method: DELETE
// Path: /api/production-houses/{id}
// Errors: 404, 409 while series reference the house.
func (h *Handler) DeleteProductionHouse(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProductionHouse(r.Context(), urlParam(r, "id")); err != nil {
		respondStoreError(w, r, "Delete production house", err, houseErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Production house deleted successfully")
}

// setClean overwrites *dst with the cleaned value when v is present.
func setClean(dst *string, v *string) {
	if v != nil {
		*dst = clean(*v)
	}
}
