// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Mg2n/AFI-Extractor/internal/textnorm"
)

var (
	tocTitleRe  = regexp.MustCompile(`(?i)\btable of contents\b|\bcontents\b`)
	dotLeaderRe = regexp.MustCompile(`.{2,}\.{3,}\s*\d+\s*$`)
)

// pdfSource extracts text rows page by page. Table-of-contents pages are
// dropped wholesale so their dotted-leader lines never reach the parser.
type pdfSource struct{}

func (pdfSource) Lines(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	var out []string
	for n := 1; n <= r.NumPage(); n++ {
		page := r.Page(n)
		if page.V.IsNull() {
			continue
		}

		var lines []string
		for _, row := range pageRows(page.Content()) {
			if t := textnorm.Normalize(row); t != "" {
				lines = append(lines, t)
			}
		}
		if isTOCPage(lines) {
			continue
		}
		out = append(out, lines...)
	}
	return out, nil
}

// pageRows reassembles a page's positioned text fragments into visual rows:
// fragments sharing a (rounded) baseline form one row, top to bottom, left
// to right. A space is inserted where fragments do not abut.
func pageRows(content pdf.Content) []string {
	byLine := map[int][]pdf.Text{}
	var baselines []int
	for _, t := range content.Text {
		y := int(math.Round(t.Y))
		if _, seen := byLine[y]; !seen {
			baselines = append(baselines, y)
		}
		byLine[y] = append(byLine[y], t)
	}

	// PDF y grows upward, so higher baselines come first.
	sort.Sort(sort.Reverse(sort.IntSlice(baselines)))

	rows := make([]string, 0, len(baselines))
	for _, y := range baselines {
		frags := byLine[y]
		sort.Slice(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

		var b strings.Builder
		var end float64
		for i, frag := range frags {
			if i > 0 && frag.X-end > 1 {
				b.WriteByte(' ')
			}
			b.WriteString(frag.S)
			end = frag.X + frag.W
		}
		rows = append(rows, b.String())
	}
	return rows
}

// isTOCPage reports whether a page is a table of contents: either a title
// line says so, or at least three lines carry a dotted leader ending in a
// page number.
func isTOCPage(lines []string) bool {
	dots := 0
	for _, ln := range lines {
		if tocTitleRe.MatchString(ln) {
			return true
		}
		if dotLeaderRe.MatchString(ln) {
			dots++
		}
	}
	return dots >= 3
}
