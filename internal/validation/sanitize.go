// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package validation

import (
	"html"
	"regexp"
)

// scriptTagPattern matches a script element across lines, case-insensitively.
var scriptTagPattern = regexp.MustCompile(`(?is)<script.*?</script>`)

// Sanitize neutralizes markup in free text before it is stored. HTML escaping
// runs first, so a literal <script> element becomes inert text. The script
// pattern runs on the escaped string, where "<" can no longer appear, so it
// does not change the result.
//
//	Sanitize("<script>alert(1)</script>") == "&lt;script&gt;alert(1)&lt;/script&gt;"
func Sanitize(s string) string {
	return scriptTagPattern.ReplaceAllString(html.EscapeString(s), "")
}

// SanitizePtr sanitizes *s in place when s is non-nil.
func SanitizePtr(s *string) {
	if s != nil {
		*s = Sanitize(*s)
	}
}

// SanitizeAll sanitizes every non-nil pointer in ptrs.
func SanitizeAll(ptrs ...*string) {
	for _, p := range ptrs {
		SanitizePtr(p)
	}
}
