// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelhouse/internal/auth"
	"github.com/tomtom215/reelhouse/internal/database"
	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/models"
)

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Message      string          `json:"message"`
	User         *models.Account `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

// Register creates a Customer account and returns a token pair.
//
// Method: POST
// Path: /api/auth/register
// Errors: 400 missing or invalid field (first one reported), 409 email taken.
// A country that does not exist yet is created with the account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	exists, err := h.store.EmailExists(r.Context(), email)
	if err != nil {
		respondInternal(w, r, "Registration", err)
		return
	}
	if exists {
		respondError(w, http.StatusConflict, accountErrors.conflict)
		return
	}

	hash, err := h.passwords.HashPassword(req.Password)
	if err != nil {
		respondInternal(w, r, "Registration", err)
		return
	}

	country := strings.TrimSpace(req.CountryName)
	account := &models.Account{
		FirstName:            clean(req.FirstName),
		LastName:             clean(req.LastName),
		Email:                email,
		PasswordHash:         hash,
		Street:               clean(req.Street),
		City:                 clean(req.City),
		State:                clean(req.State),
		CountryName:          &country,
		AccountType:          models.RoleCustomer,
		IsActive:             true,
		OpenDate:             models.NewDate(h.now().UTC()),
		MonthlyServiceCharge: models.DefaultMonthlyServiceCharge,
	}
	account.MiddleName = cleanOptional(req.MiddleName)

	if err := h.store.CreateAccount(r.Context(), account); err != nil {
		respondStoreError(w, r, "Registration", err, accountErrors)
		return
	}

	logging.Ctx(r.Context()).Info().Str("account_id", account.AccountID).Msg("Account registered")
	h.respondSession(w, r, http.StatusCreated, "User registered successfully", account, "Registration")
}

// Login exchanges credentials for a token pair.
//
// Method: POST
// Path: /api/auth/login
// Errors: 400 missing email or password, 401 bad credentials, 403 inactive.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password required")
		return
	}

	account, err := h.store.GetAccountByEmail(r.Context(), strings.TrimSpace(req.Email))
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		respondInternal(w, r, "Login", err)
		return
	}

	if !h.passwords.CheckPassword(account.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !account.IsActive {
		respondError(w, http.StatusForbidden, "Account is inactive")
		return
	}

	h.respondSession(w, r, http.StatusOK, "Login successful", account, "Login")
}

// Refresh mints a new access token from a refresh token.
//
// Method: POST
// Path: /api/auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	accountID, _ := auth.PrincipalFromContext(r.Context())

	token, err := h.tokens.GenerateAccessToken(accountID)
	if err != nil {
		respondInternal(w, r, "Token refresh", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// Me returns the caller's account.
//
// Method: GET
// Path: /api/auth/me
// Errors: 404 when the account was deleted after the token was issued.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, _ := auth.PrincipalFromContext(r.Context())

	account, err := h.store.GetAccount(r.Context(), accountID)
	if err != nil {
		respondStoreError(w, r, "Fetch user", err, accountErrors)
		return
	}
	respondSingle(w, "user", account)
}

func (h *Handler) respondSession(w http.ResponseWriter, r *http.Request, status int, message string, account *models.Account, op string) {
	access, err := h.tokens.GenerateAccessToken(account.AccountID)
	if err != nil {
		respondInternal(w, r, op, err)
		return
	}
	refresh, err := h.tokens.GenerateRefreshToken(account.AccountID)
	if err != nil {
		respondInternal(w, r, op, err)
		return
	}

	respondJSON(w, status, SessionResponse{
		Message:      message,
		User:         account,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}
