// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

// Package query provides SQL query building utilities for the database package.
// Every value is bound as a positional $n parameter; column names come from
// code, never from requests.
package query

import (
	"strconv"
	"strings"
)

// likeEscaper escapes the LIKE metacharacters in user search input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes s match literally inside a LIKE pattern that uses '\' as
// its escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddEquals("e.webseries_id", filter.WebSeriesID)
//	wb.AddSearch(filter.Search, "e.title", "e.episode_id")
//	where, args := wb.BuildWithPrefix()
//	// WHERE e.webseries_id = $1 AND (e.title LIKE '%' || $2 || '%' ESCAPE '\' OR ...)
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// Bind appends v to the argument list and returns its placeholder.
func (wb *WhereBuilder) Bind(v interface{}) string {
	wb.args = append(wb.args, v)
	return "$" + strconv.Itoa(len(wb.args))
}

// AddClause adds a raw condition. Use Bind to obtain placeholders for its
// values, e.g. wb.AddClause("rating >= " + wb.Bind(3)).
func (wb *WhereBuilder) AddClause(clause string) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	return wb
}

// AddEquals adds "column = $n". Empty values are skipped so that absent
// query parameters do not filter.
func (wb *WhereBuilder) AddEquals(column, value string) *WhereBuilder {
	if value == "" {
		return wb
	}
	return wb.AddClause(column + " = " + wb.Bind(value))
}

// AddBool adds "column = $n" when value is non-nil.
func (wb *WhereBuilder) AddBool(column string, value *bool) *WhereBuilder {
	if value == nil {
		return wb
	}
	return wb.AddClause(column + " = " + wb.Bind(*value))
}

// AddSearch adds a case-sensitive substring match of term against any of
// columns. The term is bound once and escaped so '%' and '_' match literally.
func (wb *WhereBuilder) AddSearch(term string, columns ...string) *WhereBuilder {
	if term == "" || len(columns) == 0 {
		return wb
	}
	ph := wb.Bind(EscapeLike(term))
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col + ` LIKE '%' || ` + ph + ` || '%' ESCAPE '\'`
	}
	return wb.AddClause("(" + strings.Join(parts, " OR ") + ")")
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.snapshot()
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Paginate binds limit and offset and returns "LIMIT $n OFFSET $m" with the
// full argument list. Call it after Build so the count query can reuse the
// shorter argument list.
func (wb *WhereBuilder) Paginate(limit, offset int) (string, []interface{}) {
	clause := "LIMIT " + wb.Bind(limit) + " OFFSET " + wb.Bind(offset)
	return clause, wb.snapshot()
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

func (wb *WhereBuilder) snapshot() []interface{} {
	out := make([]interface{}, len(wb.args))
	copy(out, wb.args)
	return out
}
