// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotate locates the classification/entity annotation embedded in
// finding text and splits it out. Annotations appear either as a trailing
// parenthesized pair, "Fix the intake queue (Major - Logistics)", or as a
// bare keyword form, "... Major - Logistics", and may span line breaks.
package annotate

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Mg2n/AFI-Extractor/internal/textnorm"
)

var (
	parenGroup = regexp.MustCompile(`\(([^)]*)\)`)
	keyword    = regexp.MustCompile(`(?i)\b(major|other)\b`)
)

// splitPair divides the inside of an annotation on the first hyphen into a
// tidied classification/entity pair.
func splitPair(inside string) (string, string) {
	cls, ent, found := strings.Cut(inside, "-")
	if !found {
		return textnorm.Tidy(cls), ""
	}
	return textnorm.Tidy(cls), textnorm.Tidy(ent)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Extract finds the annotation in text and strips it. The last parenthesized
// group wins; when none parses to a non-empty pair, the keyword form is
// tried instead (last standalone "major"/"other" followed by a hyphen).
// Without a match the text is returned tidied with an empty pair.
//
// Picking the last group is a best-effort policy for multiply-annotated or
// nested text, not a grammar.
func Extract(text string) (clean, classification, entity string) {
	groups := parenGroup.FindAllStringSubmatchIndex(text, -1)
	if len(groups) > 0 {
		g := groups[len(groups)-1]
		inside := strings.TrimSpace(textnorm.Dashes(text[g[2]:g[3]]))
		cls, ent := splitPair(inside)
		if cls != "" || ent != "" {
			stripped := strings.TrimSpace(text[:g[0]] + " " + text[g[1]:])
			return textnorm.Tidy(stripped), cls, ent
		}
	}

	if kws := keyword.FindAllStringSubmatchIndex(text, -1); len(kws) > 0 {
		k := kws[len(kws)-1]
		if dash := strings.Index(text[k[0]:], "-"); dash >= 0 {
			ent := textnorm.Tidy(text[k[0]+dash+1:])
			if ent != "" {
				cls := capitalize(text[k[2]:k[3]])
				return textnorm.Tidy(text[:k[0]]), cls, ent
			}
		}
	}

	return textnorm.Tidy(text), "", ""
}

// ExtractAcross handles annotations split over line breaks. When first
// contains an opening parenthesis with no closing one, subsequent lines are
// accumulated until one closes the group (or input runs out), the joined
// span is re-normalized, and the single-line extraction runs on the result.
// The annotation span is removed from the first line only; continuation
// lines are consumed and their index returned, but their text is dropped.
// When no closing parenthesis exists, first is returned unmodified with an
// empty pair and the accumulated lines still count as consumed.
//
// Lines without an unclosed parenthesis take the single-line path and
// consume nothing beyond idx.
func ExtractAcross(lines []string, idx int, first string) (clean, classification, entity string, consumed int) {
	if strings.Contains(first, "(") && !strings.Contains(first, ")") {
		start := strings.Index(first, "(")
		buf := []string{first[start:]}
		j := idx + 1
		for j < len(lines) {
			buf = append(buf, lines[j])
			if strings.Contains(lines[j], ")") {
				break
			}
			j++
		}
		if j > len(lines)-1 {
			j = len(lines) - 1
		}

		combined := textnorm.Normalize(strings.Join(buf, " "))
		groups := parenGroup.FindAllStringSubmatchIndex(combined, -1)
		if len(groups) == 0 {
			return textnorm.Tidy(first), "", "", j
		}

		g := groups[len(groups)-1]
		inside := strings.TrimSpace(textnorm.Dashes(combined[g[2]:g[3]]))
		cls, ent := splitPair(inside)

		// The matched span usually straddles the line break, in which case
		// only its head is present in the first line: cut from the opening
		// parenthesis. If the whole span closed within the first line after
		// all, splice it out in place.
		span := combined[g[0]:g[1]]
		cleaned := first[:start]
		if at := strings.Index(first, span); at >= 0 {
			cleaned = first[:at] + " " + first[at+len(span):]
		}
		return textnorm.Tidy(textnorm.Normalize(cleaned)), cls, ent, j
	}

	clean, classification, entity = Extract(first)
	return clean, classification, entity, idx
}
