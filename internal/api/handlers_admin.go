// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelhouse/internal/authz"
	"github.com/tomtom215/reelhouse/internal/cache"
	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/models"
)

// Admin endpoints. Every route in this file is behind
// RequireRole(ResourceAdmin, ...), so only active Admin accounts reach them.

// BackupResponse is returned by the backup endpoint.
type BackupResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Note      string `json:"note"`
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// AdminListUsers returns a page of accounts.
//
// Method: GET
// Path: /api/admin/users
// Query: page, per_page, search (name, email or ID), account_type, is_active
func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.store.ListAccounts(r.Context(), models.AccountFilter{
		Search:      getStringParam(r, "search"),
		AccountType: getStringParam(r, "account_type"),
		IsActive:    getBoolParam(r, "is_active"),
	}, h.listPage(r))
	if err != nil {
		respondInternal(w, r, "Fetch users", err)
		return
	}
	respondPage(w, "users", page)
}

// AdminGetUser returns one account.
//
// Method: GET
// Path: /api/admin/users/{id}
func (h *Handler) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	account, err := h.store.GetAccount(r.Context(), urlParam(r, "id"))
	if err != nil {
		respondStoreError(w, r, "Fetch user", err, accountErrors)
		return
	}
	respondSingle(w, "user", account)
}

// AdminSetRole changes an account's role.
//
// Method: PUT
// Path: /api/admin/users/{id}/role
// Errors: 400 "Invalid account type", 404.
func (h *Handler) AdminSetRole(w http.ResponseWriter, r *http.Request) {
	var req models.ChangeRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.store.SetAccountRole(r.Context(), urlParam(r, "id"), req.AccountType)
	if err != nil {
		respondStoreError(w, r, "Update user role", err, accountErrors)
		return
	}

	h.audit(r, "role_changed", account.AccountID).Str("account_type", req.AccountType).Msg("Account role changed")
	respondWrite(w, http.StatusOK, "User role updated to "+req.AccountType, "user", account)
}

// AdminSetStatus activates or deactivates an account. Deactivated accounts
// can neither log in nor pass the role guard.
//
// Method: PUT
// Path: /api/admin/users/{id}/status
// Errors: 400 "is_active field is required", 404.
func (h *Handler) AdminSetStatus(w http.ResponseWriter, r *http.Request) {
	var req models.ChangeStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.store.SetAccountActive(r.Context(), urlParam(r, "id"), *req.IsActive)
	if err != nil {
		respondStoreError(w, r, "Update user status", err, accountErrors)
		return
	}

	status := "deactivated"
	if *req.IsActive {
		status = "activated"
	}
	h.audit(r, "status_changed", account.AccountID).Bool("is_active", *req.IsActive).Msg("Account status changed")
	respondWrite(w, http.StatusOK, fmt.Sprintf("User %s successfully", status), "user", account)
}

// AdminDeleteUser deletes an account and its feedback. Admins cannot delete
// themselves.
//
// Method: DELETE
// Path: /api/admin/users/{id}
// Errors: 400 own account, 404.
func (h *Handler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if caller, ok := authz.AccountFromContext(r.Context()); ok && caller.AccountID == id {
		respondError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := h.store.DeleteAccount(r.Context(), id); err != nil {
		respondStoreError(w, r, "Delete user", err, accountErrors)
		return
	}

	h.audit(r, "deleted", id).Msg("Account deleted")
	respondMessage(w, http.StatusOK, "User deleted successfully")
}

// AdminResetPassword replaces an account's password. The new password must
// satisfy the registration policy.
//
// Method: POST
// Path: /api/admin/users/{id}/reset-password
func (h *Handler) AdminResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hash, err := h.passwords.HashPassword(req.NewPassword)
	if err != nil {
		respondInternal(w, r, "Reset password", err)
		return
	}

	id := urlParam(r, "id")
	if err := h.store.SetAccountPassword(r.Context(), id, hash); err != nil {
		respondStoreError(w, r, "Reset password", err, accountErrors)
		return
	}

	h.audit(r, "password_reset", id).Msg("Account password reset")
	respondMessage(w, http.StatusOK, "Password reset successfully")
}

// audit starts an Info event for an admin action on an account.
func (h *Handler) audit(r *http.Request, action, accountID string) *zerolog.Event {
	event := logging.Ctx(r.Context()).Info().
		Str("action", action).
		Str("target_account_id", sanitizeLogValue(accountID))
	if caller, ok := authz.AccountFromContext(r.Context()); ok {
		event = event.Str("admin_id", caller.AccountID)
	}
	return event
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

// AdminStats returns user, series and feedback counts.
//
// Method: GET
// Path: /api/admin/stats
func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		respondInternal(w, r, "Fetch statistics", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// AdminLogs returns the most recent registrations, series and feedback,
// newest first.
//
// Method: GET
// Path: /api/admin/logs
func (h *Handler) AdminLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.store.RecentActivity(r.Context())
	if err != nil {
		respondInternal(w, r, "Fetch logs", err)
		return
	}
	if logs == nil {
		logs = []models.ActivityLog{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}

// ---------------------------------------------------------------------------
// Countries
// ---------------------------------------------------------------------------

// AdminListCountries returns every country.
//
// Method: GET
// Path: /api/admin/countries
func (h *Handler) AdminListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.store.ListCountries(r.Context())
	if err != nil {
		respondInternal(w, r, "Fetch countries", err)
		return
	}
	if countries == nil {
		countries = []models.Country{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"countries": countries})
}

// AdminCreateCountry adds a country.
//
// Method: POST
// Path: /api/admin/countries
// Errors: 409 "Country already exists".
func (h *Handler) AdminCreateCountry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCountryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	country, err := h.store.CreateCountry(r.Context(), strings.TrimSpace(req.CountryName))
	if err != nil {
		respondStoreError(w, r, "Create country", err, countryErrors)
		return
	}
	respondWrite(w, http.StatusCreated, "Country created successfully", "country", country)
}

// AdminDeleteCountry removes a country no account lives in.
//
// Method: DELETE
// Path: /api/admin/countries/{name}
// Errors: 400 while accounts reference it, 404, 409 while releases reference it.
func (h *Handler) AdminDeleteCountry(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "name")

	users, err := h.store.CountAccountsByCountry(r.Context(), name)
	if err != nil {
		respondInternal(w, r, "Delete country", err)
		return
	}
	if users > 0 {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot delete country. %d users are associated with it.", users))
		return
	}

	if err := h.store.DeleteCountry(r.Context(), name); err != nil {
		respondStoreError(w, r, "Delete country", err, countryErrors)
		return
	}
	respondMessage(w, http.StatusOK, "Country deleted successfully")
}

// ---------------------------------------------------------------------------
// Maintenance
// ---------------------------------------------------------------------------

// AdminVacuum runs VACUUM ANALYZE.
//
// Method: POST
// Path: /api/admin/maintenance/vacuum
func (h *Handler) AdminVacuum(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.store.Vacuum(r.Context()); err != nil {
		respondInternal(w, r, "Database maintenance", err)
		return
	}
	logging.Ctx(r.Context()).Info().Dur("duration", time.Since(start)).Msg("Database maintenance completed")
	respondMessage(w, http.StatusOK, "Database maintenance completed")
}

// AdminBackup acknowledges a backup request. No backup is taken; operators
// back up Postgres out of band.
//
// Method: POST
// Path: /api/admin/maintenance/backup
func (h *Handler) AdminBackup(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, BackupResponse{
		Message:   "Backup initiated",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Note:      "This is a simulated operation",
	})
}

// ---------------------------------------------------------------------------
// Cache
// ---------------------------------------------------------------------------

// AdminClearCache removes every cached response.
//
// Method: POST
// Path: /api/admin/cache/clear
func (h *Handler) AdminClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.ClearAll(r.Context()); err != nil {
		respondInternal(w, r, "Clear cache", err)
		return
	}
	logging.Ctx(r.Context()).Info().Msg("Response cache cleared")
	respondMessage(w, http.StatusOK, "All cache cleared successfully")
}

// AdminClearCachePattern removes the cached responses of one namespace.
//
// Method: POST
// Path: /api/admin/cache/clear/{pattern}
func (h *Handler) AdminClearCachePattern(w http.ResponseWriter, r *http.Request) {
	glob := cache.Pattern(urlParam(r, "pattern"))
	n := h.cache.DeletePattern(r.Context(), glob)

	logging.Ctx(r.Context()).Info().Str("pattern", sanitizeLogValue(glob)).Int("deleted", n).Msg("Response cache pattern cleared")
	respondMessage(w, http.StatusOK, fmt.Sprintf("Cache pattern '%s' cleared successfully", glob))
}

// AdminCacheStats reports hit and miss counters and key counts per
// namespace.
//
// Method: GET
// Path: /api/admin/cache/stats
// Errors: 503 when caching is disabled.
func (h *Handler) AdminCacheStats(w http.ResponseWriter, r *http.Request) {
	if !h.cache.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "Caching is disabled")
		return
	}
	respondJSON(w, http.StatusOK, h.cache.Stats(r.Context()))
}
