// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import "regexp"

// role tags a normalized line with its structural meaning.
type role int

const (
	// roleText is any line no other classifier claims.
	roleText role = iota

	// roleProcess is a numbered process header: "Process 1.2 Goods receipt".
	roleProcess

	// roleSimpleProcess is a bare process label: "Value", "Operational - Warehousing".
	roleSimpleProcess

	// roleAFIHeader opens the Areas-for-Improvement section.
	roleAFIHeader

	// roleRecoHeader opens the Recommendations section.
	roleRecoHeader

	// roleAnnotationOnly is a line that is entirely one parenthesized group.
	roleAnnotationOnly

	// roleNumbered is an "<integer> - <text>" item line.
	roleNumbered
)

var (
	processRe       = regexp.MustCompile(`(?i)^\s*process\s*[:-]?\s*([0-9]+(?:\.[0-9]+)*)\s+(.+)$`)
	simpleProcessRe = regexp.MustCompile(`(?i)^\s*(value|operational|business)\b(?:\s*[:-]\s*(.+))?$`)
	afiHeaderRe     = regexp.MustCompile(`(?i)^\s*areas?\s+(?:for|of)\s+improvement\s*:?\s*$`)
	recoHeaderRe    = regexp.MustCompile(`(?i)^\s*recommendations?\s*:?\s*$`)
	annotOnlyRe     = regexp.MustCompile(`^\([^)]*\)$`)
	numberedRe      = regexp.MustCompile(`^\s*(\d+)\s*-\s*(.+?)\s*$`)
)

// classifiers is evaluated in order; the first match wins. Headers outrank
// item shapes so that "Recommendations:" can never be mistaken for text,
// and the annotation-only shape outranks the numbered shape because a
// parenthesized "(1 - x)" is an annotation, not an item.
var classifiers = []struct {
	role role
	re   *regexp.Regexp
}{
	{roleProcess, processRe},
	{roleSimpleProcess, simpleProcessRe},
	{roleAFIHeader, afiHeaderRe},
	{roleRecoHeader, recoHeaderRe},
	{roleAnnotationOnly, annotOnlyRe},
	{roleNumbered, numberedRe},
}

// taggedLine is a line plus its role and the capture groups of the matching
// pattern.
type taggedLine struct {
	text     string
	role     role
	captures []string
}

// classify tags one line. Lines matching nothing get roleText.
func classify(line string) taggedLine {
	for _, c := range classifiers {
		if m := c.re.FindStringSubmatch(line); m != nil {
			return taggedLine{text: line, role: c.role, captures: m[1:]}
		}
	}
	return taggedLine{text: line, role: roleText}
}
