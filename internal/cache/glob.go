// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package cache

import "strings"

// Match reports whether key matches glob using Redis pattern rules:
// '*' matches any run of bytes (including '/'), '?' matches one byte,
// '[...]' matches a class with optional '^' negation and 'a-z' ranges,
// and '\' escapes the next byte. The in-process backends use it so that
// pattern deletion behaves the same on every backend.
func Match(glob, key string) bool {
	px, kx := 0, 0
	starPx, starKx := -1, -1

	for px < len(glob) || kx < len(key) {
		if px < len(glob) {
			switch c := glob[px]; c {
			case '*':
				starPx, starKx = px, kx+1
				px++
				continue
			case '?':
				if kx < len(key) {
					px++
					kx++
					continue
				}
			case '[':
				if kx < len(key) {
					matched, width := matchClass(glob[px:], key[kx])
					if width == 0 {
						// unterminated class is a literal '['
						matched, width = key[kx] == '[', 1
					}
					if matched {
						px += width
						kx++
						continue
					}
				}
			case '\\':
				if px+1 < len(glob) && kx < len(key) && glob[px+1] == key[kx] {
					px += 2
					kx++
					continue
				}
			default:
				if kx < len(key) && key[kx] == c {
					px++
					kx++
					continue
				}
			}
		}

		// Backtrack: let the last '*' swallow one more byte
		if starPx >= 0 && starKx <= len(key) {
			px, kx = starPx, starKx
			continue
		}
		return false
	}
	return true
}

// matchClass matches c against the class at the start of p (p[0] == '[').
// width is the length of the class including brackets, or 0 when the class
// is not terminated.
func matchClass(p string, c byte) (matched bool, width int) {
	i := 1
	negate := false
	if i < len(p) && p[i] == '^' {
		negate = true
		i++
	}

	for i < len(p) {
		if p[i] == ']' {
			return matched != negate, i + 1
		}

		lo := p[i]
		if lo == '\\' && i+1 < len(p) {
			i++
			lo = p[i]
		}
		hi := lo
		if i+2 < len(p) && p[i+1] == '-' && p[i+2] != ']' {
			hi = p[i+2]
			i += 2
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo <= c && c <= hi {
			matched = true
		}
		i++
	}
	return false, 0
}

// literalPrefix returns the part of glob before its first metacharacter.
// Backends that store keys in order use it to narrow scans.
func literalPrefix(glob string) string {
	if i := strings.IndexAny(glob, `*?[\`); i >= 0 {
		return glob[:i]
	}
	return glob
}
