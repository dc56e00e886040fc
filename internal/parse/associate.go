// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"sort"
	"strconv"

	"github.com/Mg2n/AFI-Extractor/internal/annotate"
	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

// flushBlock finalizes the current process block: unnumbered items receive
// sequential fallback numbers in insertion order, items are stably sorted
// by resolved number, each is joined to the recommendation filed under its
// number's decimal string, and one Finding per item is emitted. The block
// state is reset afterwards.
//
// The fallback counter runs independently of explicitly assigned numbers.
// When an explicit number collides with a fallback one, both items keep
// their numbers and both rows are emitted against the same recommendation
// key; the ambiguity stays visible in the output instead of being silently
// reconciled.
func (p *parser) flushBlock() {
	seq := 1
	for i := range p.items {
		if !p.items[i].numbered {
			p.items[i].number = seq
			p.items[i].numbered = true
			seq++
		}
	}

	sort.SliceStable(p.items, func(a, b int) bool {
		return p.items[a].number < p.items[b].number
	})

	for _, it := range p.items {
		recommendation := p.recs[strconv.Itoa(it.number)]

		// Second chance on the item text: an annotation that survived the
		// section pass (e.g. one added by a later edit of the document) is
		// stripped here, filling only fields still empty.
		clean, cls, ent := annotate.Extract(it.text)
		if it.classification == "" {
			it.classification = cls
		}
		if it.entity == "" {
			it.entity = ent
		}

		p.findings = append(p.findings, types.Finding{
			AFI:            clean,
			Classification: it.classification,
			Entity:         it.entity,
			Recommendation: recommendation,
			ProcessLabel:   p.label,
			Document:       p.document,
		})
	}

	p.items = nil
	p.recs = map[string]string{}
	p.lastItem = -1
}
