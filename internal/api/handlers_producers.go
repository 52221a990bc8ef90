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

// ListProducers returns a page of producers.
//
// Method: GET
// Path: /api/producers
// Query: page, per_page, search (name, email or ID)
func (h *Handler) ListProducers(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListProducers(r.Context(), getStringParam(r, "search"), h.listPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch producers", err)
		return
	}
	respondPage(w, "producers", page)
}

// GetProducer returns one producer.
//
// Method: GET
// Path: /api/producers/{id}
func (h *Handler) GetProducer(w http.ResponseWriter, r *http.Request) {
	producer, err := h.store.GetProducer(r.Context(), urlParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, "Fetch producer", err, producerErrors)
		return
	}
	respondSingle(w, "producer", producer)
}

// CreateProducer adds a producer. Emails are unique across producers.
//
// Method: POST
// Path: /api/producers
// Errors: 400 invalid body, 409 email taken.
func (h *Handler) CreateProducer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProducerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if !h.producerEmailAvailable(w, r, email, "", "Create producer") {
		return
	}

	producer := &models.Producer{
		FirstName:   clean(req.FirstName),
		MiddleName:  cleanOptional(req.MiddleName),
		LastName:    clean(req.LastName),
		Phone:       req.Phone,
		Street:      clean(req.Street),
		City:        clean(req.City),
		State:       clean(req.State),
		Email:       email,
		Nationality: clean(req.Nationality),
	}
	if err := h.store.CreateProducer(r.Context(), producer); err != nil {
		respondStoreError(w, r, "Create producer", err, producerErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Producer created successfully", "producer", producer)
}

// UpdateProducer changes any subset of a producer's fields.
//
// Method: PUT
// Path: /api/producers/{id}
// Errors: 404, 409 when the new email belongs to another producer.
func (h *Handler) UpdateProducer(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")

	var req models.UpdateProducerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var email string
	if req.Email != nil {
		email = strings.TrimSpace(*req.Email)
		if !h.producerEmailAvailable(w, r, email, id, "Update producer") {
			return
		}
	}

	producer, err := h.store.UpdateProducer(r.Context(), id, func(p *models.Producer) {
		setClean(&p.FirstName, req.FirstName)
		if req.MiddleName != nil {
			p.MiddleName = cleanOptional(req.MiddleName)
		}
		setClean(&p.LastName, req.LastName)
		if req.Phone != nil {
			p.Phone = *req.Phone
		}
		setClean(&p.Street, req.Street)
		setClean(&p.City, req.City)
		setClean(&p.State, req.State)
		if req.Email != nil {
			p.Email = email
		}
		setClean(&p.Nationality, req.Nationality)
	})
	if err != nil {
		respondStoreError(w, r, "Update producer", err, producerErrors)
		return
	}
	respondWrite(w, http.StatusOK, "Producer updated successfully", "producer", producer)
}

// DeleteProducer removes a producer and its affiliations.
//
// Method: DELETE
// Path: /api/producers/{id}
func (h *Handler) DeleteProducer(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProducer(r.Context(), urlParam(r, "id")); err != nil {
		respondStoreError(w, r, "Delete producer", err, producerErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Producer deleted successfully")
}

// producerEmailAvailable writes a 409 and returns false when a producer
// other than exceptID already uses email.
func (h *Handler) producerEmailAvailable(w http.ResponseWriter, r *http.Request, email, exceptID, op string) bool {
	taken, err := h.store.ProducerEmailTaken(r.Context(), email, exceptID)
	if err != nil {
		respondInternal(w, r, op, err)
		return false
	}
	if taken {
		respondError(w, http.StatusConflict, producerErrors.conflict)
		return false
	}
	return true
}
