// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tomtom215/reelhouse/internal/logging"
	"github.com/tomtom215/reelhouse/internal/metrics"
)

type contextKey string

const principalContextKey contextKey = "principal"

// Messages written in 401 bodies.
const (
	MsgAuthenticationRequired = "Authentication required"
	MsgInvalidToken           = "Invalid or expired token"
)

// ContextWithPrincipal returns a context carrying the authenticated account ID.
func ContextWithPrincipal(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, principalContextKey, accountID)
}

// PrincipalFromContext returns the authenticated account ID, if any.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalContextKey).(string)
	return id, ok && id != ""
}

// TokenValidator is the subset of JWTManager used by Middleware.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

// Middleware provides bearer token authentication
type Middleware struct {
	tokens TokenValidator
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(tokens TokenValidator) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuthenticated admits requests carrying a valid access token and
// stores the account ID in the request context.
func (m *Middleware) RequireAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return m.authenticate(m.tokens.ValidateAccessToken, next)
}

// RequireRefresh admits requests carrying a valid refresh token. It guards
// only the token refresh endpoint.
func (m *Middleware) RequireRefresh(next http.HandlerFunc) http.HandlerFunc {
	return m.authenticate(m.tokens.ValidateRefreshToken, next)
}

func (m *Middleware) authenticate(validate func(string) (*Claims, error), next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			metrics.RecordAuthFailure("missing_token")
			writeUnauthorized(w, MsgAuthenticationRequired)
			return
		}

		claims, err := validate(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			metrics.RecordAuthFailure("invalid_token")
			writeUnauthorized(w, MsgInvalidToken)
			return
		}

		ctx := ContextWithPrincipal(r.Context(), claims.AccountID())
		next(w, r.WithContext(ctx))
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="reelhouse"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
