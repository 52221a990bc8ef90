// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/reelhouse/internal/auth"
	"github.com/tomtom215/reelhouse/internal/authz"
	"github.com/tomtom215/reelhouse/internal/cache"
	"github.com/tomtom215/reelhouse/internal/config"
	"github.com/tomtom215/reelhouse/internal/models"
)

const testJWTSecret = "test-secret-key-that-is-at-least-32-characters-long"

// Seeded accounts.
const (
	customerID  = "ACC0000001"
	customer2ID = "ACC0000002"
	employeeID  = "ACC0000003"
	adminID     = "ACC0000004"
	inactiveID  = "ACC0000005"
)

// Seeded catalog rows.
const (
	houseID   = "PH000001"
	seriesID  = "WS00000001"
	series2ID = "WS00000002"
	episodeID = "EP00000001"
)

type testServer struct {
	store   *fakeStore
	cache   *cache.ResponseCache
	tokens  *auth.JWTManager
	handler *Handler
	server  http.Handler
}

// newTestServer builds the full router over a seeded fakeStore with a memory
// response cache and rate limiting off.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens, err := auth.NewJWTManager(&config.SecurityConfig{
		JWTSecret:       testJWTSecret,
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)

	backend := cache.NewMemoryBackend(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })
	rc := cache.NewResponseCache(backend, time.Second)

	store := newFakeStore()
	seed(store)

	authn := auth.NewMiddleware(tokens)
	guard := authz.NewGuard(authn, enforcer, store)
	handler := NewHandler(store, rc, tokens, auth.NewPasswordHasher(bcrypt.MinCost), nil)

	chiCfg := DefaultChiMiddlewareConfig()
	chiCfg.RateLimitDisabled = true
	router := NewRouter(handler, guard, authn, rc, NewChiMiddleware(chiCfg))

	return &testServer{
		store:   store,
		cache:   rc,
		tokens:  tokens,
		handler: handler,
		server:  router.SetupChi(),
	}
}

func seed(s *fakeStore) {
	s.addAccount(customerID, models.RoleCustomer, true)
	s.addAccount(customer2ID, models.RoleCustomer, true)
	s.addAccount(employeeID, models.RoleEmployee, true)
	s.addAccount(adminID, models.RoleAdmin, true)
	s.addAccount(inactiveID, models.RoleEmployee, false)

	s.houses[houseID] = &models.ProductionHouse{HouseID: houseID, Name: "Northlight Studios", Nationality: "Canada"}
	s.series[seriesID] = &models.WebSeries{WebSeriesID: seriesID, Title: "Harbor Lights", NumEpisodes: 8, Type: "Drama", HouseID: houseID}
	s.series[series2ID] = &models.WebSeries{WebSeriesID: series2ID, Title: "Night Shift", NumEpisodes: 6, Type: "Comedy", HouseID: houseID}
	s.episodes[episodeID] = &models.Episode{EpisodeID: episodeID, EpisodeNumber: "1", WebSeriesID: seriesID}
}

// token returns a bearer access token for accountID.
func (ts *testServer) token(t *testing.T, accountID string) string {
	t.Helper()
	token, err := ts.tokens.GenerateAccessToken(accountID)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	return token
}

// do sends a request through the router. body is JSON-encoded unless it is
// a string, which is sent as is.
func (ts *testServer) do(t *testing.T, method, path, accountID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accountID != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token(t, accountID))
	}

	w := httptest.NewRecorder()
	ts.server.ServeHTTP(w, req)
	return w
}

// newRequest builds a bodyless request carrying a raw bearer token.
func newRequest(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func serve(ts *testServer, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.server.ServeHTTP(w, req)
	return w
}

// decodeBody decodes a JSON response body into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

// expectStatus fails the test when the response status differs.
func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", w.Code, want, w.Body.String())
	}
}

// expectError checks status and the "error" field of the body.
func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	expectStatus(t, w, status)
	if got := decodeBody(t, w)["error"]; got != message {
		t.Errorf("error = %v, want %q", got, message)
	}
}
