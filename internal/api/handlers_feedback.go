// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/reelhouse/internal/authz"
	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/metrics"
	"github.com/tomtom215/reelhouse/internal/models"
)

// ListFeedback returns a page of feedback.
//
// Method: GET
// Path: /api/feedback
// Query: page, per_page, webseries_id, search (text, feedback, account or series ID)
func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListFeedback(r.Context(), models.FeedbackFilter{
		WebSeriesID: getStringParam(r, "webseries_id"),
		Search:      getStringParam(r, "search"),
	}, h.listPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch feedback", err)
		return
	}
	respondPage(w, "feedback", page)
}

// GetFeedback returns one feedback entry with its viewer.
//
// Method: GET
// Path: /api/feedback/{id}
func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.store.GetFeedback(r.Context(), urlParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, "Fetch feedback", err, feedbackErrors)
		return
	}
	respondSingle(w, "feedback", feedback)
}

// CreateFeedback records the caller's rating of a series. The text is
// trimmed and sanitized; the date is today.
//
// Method: POST
// Path: /api/feedback
// Errors: 400 invalid rating or text, 409 when the caller already rated the series.
func (h *Handler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	account, _ := authz.AccountFromContext(r.Context())

	var req models.CreateFeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	seriesID := strings.TrimSpace(req.WebSeriesID)
	exists, err := h.store.FeedbackExists(r.Context(), account.AccountID, seriesID)
	if err != nil {
		respondInternal(w, r, "Create feedback", err)
		return
	}
	if exists {
		respondError(w, http.StatusConflict, feedbackErrors.conflict)
		return
	}

	created, err := h.store.CreateFeedback(r.Context(), &models.Feedback{
		Rating:       *req.Rating,
		FeedbackText: clean(req.FeedbackText),
		FeedbackDate: models.NewDate(h.now().UTC()),
		AccountID:    account.AccountID,
		WebSeriesID:  seriesID,
	})
	if err != nil {
		respondStoreError(w, r, "Create feedback", err, feedbackErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Feedback created successfully", "feedback", created)
}

// UpdateFeedback changes the rating or text of the caller's own feedback.
// Nobody else may edit it, Admins included.
//
// Method: PUT
// Path: /api/feedback/{id}
// Errors: 404 before 403, so a missing entry is reported as missing.
func (h *Handler) UpdateFeedback(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if !h.authorizeFeedback(w, r, id, "Update feedback", false) {
		return
	}

	var req models.UpdateFeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	feedback, err := h.store.UpdateFeedback(r.Context(), id, func(f *models.Feedback) {
		if req.Rating != nil {
			f.Rating = *req.Rating
		}
		if req.FeedbackText != nil {
			f.FeedbackText = clean(*req.FeedbackText)
		}
	})
	if err != nil {
		respondStoreError(w, r, "Update feedback", err, feedbackErrors)
		return
	}
	respondWrite(w, http.StatusOK, "Feedback updated successfully", "feedback", feedback)
}

// DeleteFeedback removes feedback. The owner or an Admin may delete it.
//
// Method: DELETE
// Path: /api/feedback/{id}
func (h *Handler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if !h.authorizeFeedback(w, r, id, "Delete feedback", true) {
		return
	}

	if err := h.store.DeleteFeedback(r.Context(), id); err != nil {
		respondStoreError(w, r, "Delete feedback", err, feedbackErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Feedback deleted successfully")
}

// authorizeFeedback loads the feedback and applies the ownership rule. It
// writes the error response and returns false when the caller may not
// proceed.
func (h *Handler) authorizeFeedback(w http.ResponseWriter, r *http.Request, id, op string, adminOverride bool) bool {
	account, _ := authz.AccountFromContext(r.Context())

	feedback, err := h.store.GetFeedback(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, op, err, feedbackErrors)
		return false
	}

	if !authz.CanModify(account.AccountID, account.AccountType, feedback.AccountID, adminOverride) {
		metrics.RecordAuthFailure("not_owner")
		logging.Ctx(r.Context()).Warn().
			Str("account_id", account.AccountID).
			Str("feedback_id", sanitizeLogValue(id)).
			Msg("Feedback modification denied")
		respondError(w, http.StatusForbidden, authz.MsgUnauthorized)
		return false
	}
	return true
}
