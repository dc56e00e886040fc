// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm canonicalizes raw document text before parsing.
// Audit documents arrive with typographic dashes, non-breaking spaces,
// and zero-width marks that would defeat the line patterns downstream.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun = regexp.MustCompile(`[ \t]+`)
	wsRun    = regexp.MustCompile(`\s{2,}`)
)

// tidyCutset is trimmed from both ends of assembled fields.
const tidyCutset = " -.()[]:;"

// zeroWidth reports whether r is a zero-width or directional mark.
func zeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff', '\u200e', '\u200f':
		return true
	}
	return false
}

// dashLike reports whether r is one of the Unicode dash variants
// (hyphen, non-breaking hyphen, figure/en/em/horizontal-bar dashes, minus sign).
func dashLike(r rune) bool {
	return (r >= '\u2010' && r <= '\u2015') || r == '\u2212' || r == '-'
}

// Dashes maps every dash-like rune in s to an ASCII hyphen.
func Dashes(s string) string {
	return strings.Map(func(r rune) rune {
		if dashLike(r) {
			return '-'
		}
		return r
	}, s)
}

// Normalize canonicalizes one raw line: NFKC composition, zero-width and
// directional marks stripped, NBSP to space, CR to LF, runs of spaces and
// tabs collapsed, dash variants to ASCII hyphen, surrounding whitespace
// trimmed. Pure and idempotent; callers discard empty results.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if zeroWidth(r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = spaceRun.ReplaceAllString(s, " ")
	s = Dashes(s)
	return strings.TrimSpace(s)
}

// Tidy cleans an assembled field: runs of 2+ whitespace characters collapse
// to one space, then whitespace and the characters "- . ( ) [ ] : ;" are
// trimmed from both ends.
func Tidy(s string) string {
	s = wsRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.Trim(s, tidyCutset))
}
