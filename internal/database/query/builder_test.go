// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package query

import (
	"reflect"
	"strings"
	"testing"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeLike(tt.in); got != tt.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()
	where, args := wb.BuildWithPrefix()
	if where != "WHERE 1=1" || len(args) != 0 {
		t.Errorf("BuildWithPrefix() = %q, %v", where, args)
	}
	if !wb.IsEmpty() {
		t.Error("IsEmpty() = false")
	}
}

func TestWhereBuilder_SkipsAbsentFilters(t *testing.T) {
	wb := NewWhereBuilder().
		AddEquals("type", "").
		AddBool("is_active", nil).
		AddSearch("", "title")
	if wb.Count() != 0 {
		t.Errorf("Count() = %d, want 0", wb.Count())
	}
}

func TestWhereBuilder_Placeholders(t *testing.T) {
	active := true
	wb := NewWhereBuilder().
		AddEquals("w.type", "Drama").
		AddSearch("50%_off", "w.title", "w.webseries_id").
		AddBool("a.is_active", &active)

	where, args := wb.Build()
	want := `w.type = $1 AND (w.title LIKE '%' || $2 || '%' ESCAPE '\' OR w.webseries_id LIKE '%' || $2 || '%' ESCAPE '\') AND a.is_active = $3`
	if where != want {
		t.Errorf("Build() where =\n%s\nwant\n%s", where, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"Drama", `50\%\_off`, true}) {
		t.Errorf("Build() args = %v", args)
	}

	limit, all := wb.Paginate(20, 40)
	if limit != "LIMIT $4 OFFSET $5" {
		t.Errorf("Paginate() = %q", limit)
	}
	if len(all) != 5 || all[3] != 20 || all[4] != 40 {
		t.Errorf("Paginate() args = %v", all)
	}
	if len(args) != 3 {
		t.Errorf("Paginate() mutated earlier args snapshot: %v", args)
	}
}

func TestWhereBuilder_InjectionStaysInArgs(t *testing.T) {
	payload := `'; DROP TABLE web_series; --`
	where, args := NewWhereBuilder().AddEquals("webseries_id", payload).AddSearch(payload, "title").Build()
	if strings.Contains(where, "DROP") {
		t.Errorf("user input reached SQL text: %s", where)
	}
	if len(args) != 2 {
		t.Errorf("args = %v", args)
	}
}

func TestWhereBuilder_AddClauseWithBind(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddClause("rating >= " + wb.Bind(3))
	where, args := wb.Build()
	if where != "rating >= $1" || !reflect.DeepEqual(args, []interface{}{3}) {
		t.Errorf("Build() = %q, %v", where, args)
	}
}
