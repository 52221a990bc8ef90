// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelhouse/internal/models"
	"github.com/tomtom215/reelhouse/internal/validation"
)

// Query parameter parsing. Malformed numbers fall back to their defaults
// rather than failing the request, so "?page=abc" behaves like no page.

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getBoolParam parses "true"/"false" (any case). Other values, including an
// absent parameter, yield nil so the filter is not applied.
func getBoolParam(r *http.Request, key string) *bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	default:
		return nil
	}
}

// getStringParam returns the trimmed query parameter.
func getStringParam(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// pageParams reads page and per_page. defaultPerPage applies when per_page
// is absent or malformed; the result is clamped to the configured maximum.
func (h *Handler) pageParams(r *http.Request, defaultPerPage int) models.Page {
	return models.NewPage(
		getIntParam(r, "page", 1),
		getIntParam(r, "per_page", defaultPerPage),
		defaultPerPage,
		h.maxPageSize,
	)
}

// listPage is pageParams with the default page size.
func (h *Handler) listPage(r *http.Request) models.Page {
	return h.pageParams(r, h.defaultPageSize)
}

// relationPage is pageParams with the relationship-table page size.
func (h *Handler) relationPage(r *http.Request) models.Page {
	return h.pageParams(r, h.relationPageSize)
}

// urlParam returns a chi URL parameter, percent-decoded. chi matches
// against the raw path when one exists, so "United%20Kingdom" can arrive
// still encoded.
func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

// clean trims and sanitizes free text bound for storage.
func clean(s string) string {
	return validation.Sanitize(strings.TrimSpace(s))
}

// cleanOptional is clean for nullable columns; blank input becomes nil.
func cleanOptional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := clean(*s)
	return &v
}

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
// This includes newlines, carriage returns, tabs, and other control characters that could
// allow attackers to forge log entries or corrupt log files.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		// Replace control characters (0x00-0x1F and 0x7F) with a safe representation
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
