// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package authz

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/tomtom215/reelhouse/internal/auth"
	"github.com/tomtom215/reelhouse/internal/database"
	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/metrics"
	"github.com/tomtom215/reelhouse/internal/models"
)

// Messages written by the guard.
const (
	MsgUserNotFound            = "User not found"
	MsgAccountInactive         = "Account is inactive"
	MsgInsufficientPermissions = "Insufficient permissions"
	MsgUnauthorized            = "Unauthorized"
)

// AccountLookup loads the account behind an authenticated principal.
// A missing account is reported as database.ErrNotFound.
type AccountLookup interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
}

type contextKey string

const accountContextKey contextKey = "account"

// ContextWithAccount returns a context carrying the loaded account.
func ContextWithAccount(ctx context.Context, account *models.Account) context.Context {
	return context.WithValue(ctx, accountContextKey, account)
}

// AccountFromContext returns the account loaded by the guard.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(accountContextKey).(*models.Account)
	return account, ok && account != nil
}

// Guard authenticates the caller, reloads their account, and checks the
// account's role against the policy.
type Guard struct {
	authn    *auth.Middleware
	enforcer *Enforcer
	accounts AccountLookup
}

// NewGuard creates a role guard.
func NewGuard(authn *auth.Middleware, enforcer *Enforcer, accounts AccountLookup) *Guard {
	return &Guard{authn: authn, enforcer: enforcer, accounts: accounts}
}

// RequireRole admits active accounts whose role may perform action on
// resource. The role is read from the database on every call, so role and
// status changes apply to tokens that are already issued.
func (g *Guard) RequireRole(resource, action string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return g.withAccount(func(w http.ResponseWriter, r *http.Request) {
			account, _ := AccountFromContext(r.Context())

			allowed, err := g.enforcer.Enforce(account.AccountType, resource, action)
			if err != nil {
				logging.CtxErr(r.Context(), err).
					Str("resource", resource).
					Str("action", action).
					Msg("Authorization error")
				writeError(w, http.StatusInternalServerError, "Authorization failed")
				return
			}
			if !allowed {
				metrics.RecordAuthFailure("forbidden")
				writeError(w, http.StatusForbidden, MsgInsufficientPermissions)
				return
			}

			next(w, r)
		})
	}
}

// RequireAccount admits any active account. Handlers that decide by
// ownership (see CanModify) use it in place of RequireRole.
func (g *Guard) RequireAccount(next http.HandlerFunc) http.HandlerFunc {
	return g.withAccount(next)
}

func (g *Guard) withAccount(next http.HandlerFunc) http.HandlerFunc {
	return g.authn.RequireAuthenticated(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := auth.PrincipalFromContext(r.Context())

		account, err := g.accounts.GetAccount(r.Context(), principal)
		switch {
		case errors.Is(err, database.ErrNotFound):
			metrics.RecordAuthFailure("account_not_found")
			writeError(w, http.StatusNotFound, MsgUserNotFound)
			return
		case err != nil:
			RecordAuthzError("account_lookup")
			logging.CtxErr(r.Context(), err).Str("account_id", principal).Msg("Account lookup failed")
			writeError(w, http.StatusInternalServerError, "Authorization failed")
			return
		}

		if !account.IsActive {
			metrics.RecordAuthFailure("inactive")
			writeError(w, http.StatusForbidden, MsgAccountInactive)
			return
		}

		next(w, r.WithContext(ContextWithAccount(r.Context(), account)))
	})
}

// CanModify decides ownership-based writes. The owner always passes; an
// Admin passes only when adminOverride is set.
func CanModify(principalID, principalRole, ownerID string, adminOverride bool) bool {
	if principalID != "" && principalID == ownerID {
		return true
	}
	return adminOverride && principalRole == models.RoleAdmin
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
