// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/models"
	"github.com/tomtom215/reelhouse/internal/validation"
)

// maxBodyBytes caps request bodies. Every body in this API is a small JSON
// object.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response. Error is always set.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

// MessageResponse is the body of delete and maintenance responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to encode response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondMessage writes {"message": message}.
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, MessageResponse{Message: message})
}

// respondWrite writes the {"message", <key>} envelope of create and update
// responses.
func respondWrite(w http.ResponseWriter, status int, message, key string, v interface{}) {
	respondJSON(w, status, map[string]interface{}{
		"message": message,
		key:       v,
	})
}

// respondSingle writes {<key>: v}.
func respondSingle(w http.ResponseWriter, key string, v interface{}) {
	respondJSON(w, http.StatusOK, map[string]interface{}{key: v})
}

// respondPage writes the list envelope {<key>: [...], total, pages,
// current_page}.
func respondPage[T any](w http.ResponseWriter, key string, page models.Paged[T]) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		key:            page.Items,
		"total":        page.Total,
		"pages":        page.Pages,
		"current_page": page.CurrentPage,
	})
}

// respondValidation writes a 400 naming the first invalid field.
func respondValidation(w http.ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: apiErr.Message, Field: apiErr.Field})
}

// respondInternal logs err with the request's correlation fields and writes
// a generic 500. The error text never reaches the client.
func respondInternal(w http.ResponseWriter, r *http.Request, op string, err error) {
	logging.CtxErr(r.Context(), err).
		Str("op", op).
		Str("path", sanitizeLogValue(r.URL.Path)).
		Msg("Request failed")
	respondError(w, http.StatusInternalServerError, op+" failed")
}

// decodeJSON reads the request body into v and validates it. On failure it
// writes the 400 response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		respondDecodeError(w, err)
		return false
	}

	if verr := validation.ValidateStruct(v); verr != nil {
		respondValidation(w, verr)
		return false
	}
	return true
}

func respondDecodeError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		respondError(w, http.StatusBadRequest, "No data provided")
	case errors.As(err, &maxErr):
		respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		msg := typeErr.Field + " has an invalid type"
		if typeErr.Field == "rating" {
			msg = "Rating must be a number"
		}
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Field: typeErr.Field})
	default:
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
	}
}
