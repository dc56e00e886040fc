// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse turns the line stream of one audit document into findings.
// A small state machine walks the lines: process headers open blocks,
// section headers switch between collecting AFI items and recommendation
// fragments, and each block is flushed into Finding rows at the next
// process boundary or at end of input.
package parse

import (
	"strconv"
	"strings"

	"github.com/Mg2n/AFI-Extractor/internal/annotate"
	"github.com/Mg2n/AFI-Extractor/internal/textnorm"
	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

// state is the section the parser is currently inside.
type state int

const (
	stateNeutral state = iota
	stateAFI
	stateReco
)

// item is one collected AFI entry. number is meaningful only once numbered
// is set; unnumbered items get sequential fallback numbers at flush time.
type item struct {
	number         int
	numbered       bool
	text           string
	classification string
	entity         string
}

// parser holds all per-document mutable state. A fresh parser is built for
// every document; nothing survives across documents.
type parser struct {
	state    state
	label    string
	document string

	items    []item
	lastItem int // index of the most recently added item, -1 if none

	recs     map[string]string
	recKey   string
	recParts []string

	findings []types.Finding
}

// action consumes the line at index i and returns the index of the next
// line to process. Actions that pull continuation lines return a larger
// jump.
type action func(p *parser, ln taggedLine, lines []string, i int) int

// transitions is the state × role dispatch table. Roles absent for a state
// mean the line is ignored. Header roles behave identically everywhere, so
// they are registered for all three states.
var transitions = buildTransitions()

func buildTransitions() map[state]map[role]action {
	t := map[state]map[role]action{
		stateNeutral: {},
		stateAFI: {
			roleAnnotationOnly: (*parser).adoptAnnotation,
			roleNumbered:       (*parser).startItem,
			roleText:           (*parser).maybeUnnumberedItem,
		},
		stateReco: {
			roleNumbered:       (*parser).startRecommendation,
			roleAnnotationOnly: (*parser).appendRecommendation,
			roleText:           (*parser).appendRecommendation,
		},
	}
	for _, m := range t {
		m[roleProcess] = (*parser).startProcess
		m[roleSimpleProcess] = (*parser).startSimpleProcess
		m[roleAFIHeader] = (*parser).enterAFI
		m[roleRecoHeader] = (*parser).enterReco
	}
	return t
}

// Document parses the normalized lines of one document and returns its
// findings in emission order. document is the source file name carried on
// every row.
func Document(lines []string, document string) []types.Finding {
	p := &parser{
		state:    stateNeutral,
		document: document,
		lastItem: -1,
		recs:     map[string]string{},
	}

	for i := 0; i < len(lines); {
		i = p.step(lines, i)
	}

	p.flushRecommendation()
	p.flushBlock()
	return p.findings
}

func (p *parser) step(lines []string, i int) int {
	ln := classify(lines[i])
	if act, ok := transitions[p.state][ln.role]; ok {
		return act(p, ln, lines, i)
	}
	return i + 1
}

// --- header actions (all states) ---

func (p *parser) startProcess(ln taggedLine, _ []string, i int) int {
	p.flushRecommendation()
	p.flushBlock()
	p.label = "Process – " + ln.captures[0] + " " + ln.captures[1]
	p.state = stateNeutral
	return i + 1
}

func (p *parser) startSimpleProcess(ln taggedLine, _ []string, i int) int {
	p.flushRecommendation()
	p.flushBlock()
	head := strings.ToUpper(ln.captures[0][:1]) + strings.ToLower(ln.captures[0][1:])
	if tail := ln.captures[1]; tail != "" {
		p.label = head + " – " + tail
	} else {
		p.label = head
	}
	p.state = stateNeutral
	return i + 1
}

func (p *parser) enterAFI(_ taggedLine, _ []string, i int) int {
	p.flushRecommendation()
	p.state = stateAFI
	p.lastItem = -1
	return i + 1
}

func (p *parser) enterReco(_ taggedLine, _ []string, i int) int {
	p.flushRecommendation()
	p.state = stateReco
	p.recKey = ""
	p.recParts = nil
	return i + 1
}

// --- AFI section actions ---

// adoptAnnotation backfills the last item's classification/entity from a
// line that is nothing but a parenthesized annotation. First non-empty
// value wins per field; set fields are never overwritten.
func (p *parser) adoptAnnotation(ln taggedLine, _ []string, i int) int {
	_, cls, ent := annotate.Extract(ln.text)
	if p.lastItem >= 0 && (cls != "" || ent != "") {
		it := &p.items[p.lastItem]
		if it.classification == "" {
			it.classification = cls
		}
		if it.entity == "" {
			it.entity = ent
		}
	}
	return i + 1
}

// startItem opens a new explicitly numbered AFI item. The annotation
// extractor may consume continuation lines to close a split annotation.
func (p *parser) startItem(ln taggedLine, lines []string, i int) int {
	number, _ := strconv.Atoi(ln.captures[0])
	clean, cls, ent, j := annotate.ExtractAcross(lines, i, ln.captures[1])
	p.items = append(p.items, item{
		number:         number,
		numbered:       true,
		text:           clean,
		classification: cls,
		entity:         ent,
	})
	p.lastItem = len(p.items) - 1
	if j < i {
		j = i
	}
	return j + 1
}

// maybeUnnumberedItem admits an unnumbered line as an item only when it
// actually carries an annotation; anything else is ignored.
func (p *parser) maybeUnnumberedItem(ln taggedLine, lines []string, i int) int {
	if !strings.Contains(ln.text, "(") {
		return i + 1
	}
	clean, cls, ent, j := annotate.ExtractAcross(lines, i, ln.text)
	if cls == "" && ent == "" {
		return i + 1
	}
	p.items = append(p.items, item{text: clean, classification: cls, entity: ent})
	p.lastItem = len(p.items) - 1
	return j + 1
}

// --- Recommendation section actions ---

func (p *parser) startRecommendation(ln taggedLine, _ []string, i int) int {
	p.flushRecommendation()
	p.recKey = ln.captures[0]
	p.recParts = []string{textnorm.Tidy(ln.captures[1])}
	return i + 1
}

// appendRecommendation attaches an unnumbered line to the open key,
// defaulting to key "1" when no numbered line has been seen yet.
func (p *parser) appendRecommendation(ln taggedLine, _ []string, i int) int {
	if p.recKey == "" {
		p.recKey = "1"
	}
	p.recParts = append(p.recParts, textnorm.Tidy(ln.text))
	return i + 1
}

// flushRecommendation folds the accumulated fragments of the open key into
// the block's recommendation map, joining with " | ". Re-flushing into an
// existing key appends rather than replaces.
func (p *parser) flushRecommendation() {
	if p.recKey == "" {
		return
	}
	var kept []string
	for _, part := range p.recParts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	if text := strings.Join(kept, " | "); text != "" {
		if prev := p.recs[p.recKey]; prev != "" {
			p.recs[p.recKey] = prev + " | " + text
		} else {
			p.recs[p.recKey] = text
		}
	}
	p.recKey = ""
	p.recParts = nil
}
