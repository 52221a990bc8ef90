// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package api

import (
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/reelhouse/internal/config"
	"github.com/tomtom215/reelhouse/internal/models"
)

func TestGetIntParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 7},
		{"?n=3", 3},
		{"?n=%203%20", 3},
		{"?n=abc", 7},
		{"?n=-2", -2},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/x"+tt.query, nil)
			if got := getIntParam(r, "n", 7); got != tt.want {
				t.Errorf("getIntParam() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetBoolParam(t *testing.T) {
	tests := []struct {
		query string
		want  *bool
	}{
		{"", nil},
		{"?b=true", boolPtr(true)},
		{"?b=FALSE", boolPtr(false)},
		{"?b=yes", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := getBoolParam(httptest.NewRequest("GET", "/x"+tt.query, nil), "b")
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("getBoolParam() = %v, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("getBoolParam() = %v, want %v", got, *tt.want)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }

func TestPageParams(t *testing.T) {
	h := NewHandler(newFakeStore(), nil, nil, nil, &config.Config{
		API: config.APIConfig{DefaultPageSize: 10, RelationPageSize: 50, MaxPageSize: 60},
	})

	tests := []struct {
		name     string
		query    string
		relation bool
		want     models.Page
	}{
		{"catalog default", "", false, models.Page{Number: 1, PerPage: 10}},
		{"relation default", "", true, models.Page{Number: 1, PerPage: 50}},
		{"clamped to max", "?per_page=500", false, models.Page{Number: 1, PerPage: 60}},
		{"zero page", "?page=0&per_page=5", false, models.Page{Number: 1, PerPage: 5}},
		{"explicit page", "?page=3", true, models.Page{Number: 3, PerPage: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/x"+tt.query, nil)
			got := h.listPage(r)
			if tt.relation {
				got = h.relationPage(r)
			}
			if got != tt.want {
				t.Errorf("page = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"<b>x</b>", "&lt;b&gt;x&lt;/b&gt;"},
	}

	for _, tt := range tests {
		if got := clean(tt.in); got != tt.want {
			t.Errorf("clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	blank := "   "
	if got := cleanOptional(&blank); got != nil {
		t.Errorf("cleanOptional(blank) = %q, want nil", *got)
	}
	if got := cleanOptional(nil); got != nil {
		t.Error("cleanOptional(nil) != nil")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
