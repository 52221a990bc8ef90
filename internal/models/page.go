// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package models

import "math"

// Page is a pagination request. Number is 1-based.
type Page struct {
	Number  int
	PerPage int
}

// NewPage clamps perPage to [1, maxPerPage], substituting defaultPerPage
// when perPage is not positive. Number is clamped to [1, MaxInt/perPage] so
// Offset cannot overflow.
func NewPage(number, perPage, defaultPerPage, maxPerPage int) Page {
	if number < 1 {
		number = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if number > math.MaxInt/perPage {
		number = math.MaxInt / perPage
	}
	return Page{Number: number, PerPage: perPage}
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Paged is one page of results. Pages is ceil(Total/PerPage), or 0 when
// there are no rows. A page past the end has no items but still reports the
// true Total and Pages.
type Paged[T any] struct {
	Items       []T
	Total       int64
	Pages       int
	CurrentPage int
}

// NewPaged assembles a result page. A nil items slice is replaced with an
// empty one so lists always encode as [].
func NewPaged[T any](items []T, total int64, p Page) Paged[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if total > 0 && p.PerPage > 0 {
		pages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}
	return Paged[T]{Items: items, Total: total, Pages: pages, CurrentPage: p.Number}
}
