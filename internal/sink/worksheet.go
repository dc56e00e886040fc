// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sink persists findings to the shared tabular workbook. The table
// is addressed by header name, not position: an existing sheet keeps its
// column layout, and rows are appended to the next unused row.
package sink

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

// Headers is the logical column contract in default order. The Source File
// column sits at position 7 by default, leaving a spare column before it.
var Headers = []string{"AFI", "Classification", "Recommendation", "Entity", "EE/FA", "Source File"}

// columns holds resolved zero-based column positions per logical field.
type columns struct {
	afi            int
	classification int
	recommendation int
	entity         int
	process        int
	document       int
}

func (c columns) width() int {
	w := 0
	for _, col := range []int{c.afi, c.classification, c.recommendation, c.entity, c.process, c.document} {
		if col+1 > w {
			w = col + 1
		}
	}
	return w
}

// detectColumns matches header names case-insensitively, falling back to
// the fixed default position per field when a name is absent.
func detectColumns(header []string) columns {
	names := map[string]int{}
	for i, h := range header {
		if h = strings.TrimSpace(strings.ToLower(h)); h != "" {
			names[h] = i
		}
	}
	at := func(name string, fallback int) int {
		if i, ok := names[name]; ok {
			return i
		}
		return fallback
	}
	return columns{
		afi:            at("afi", 0),
		classification: at("classification", 1),
		recommendation: at("recommendation", 2),
		entity:         at("entity", 3),
		process:        at("ee/fa", 4),
		document:       at("source file", 6),
	}
}

// Worksheet is an in-memory copy of the workbook table, flushed back to
// disk on Save.
type Worksheet struct {
	path string
	rows [][]string
	cols columns
}

// Open loads the workbook at path, creating the header row when the file
// does not exist or is empty.
func Open(path string) (*Worksheet, error) {
	w := &Worksheet{path: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fresh workbook
	case err != nil:
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	default:
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("reading workbook %s: %w", path, err)
		}
		w.rows = rows
	}

	if len(w.rows) == 0 {
		w.rows = [][]string{append([]string(nil), Headers...)}
	}
	w.cols = detectColumns(w.rows[0])
	return w, nil
}

// Append adds one finding to the next unused row, honoring the detected
// column positions.
func (w *Worksheet) Append(f types.Finding) {
	width := w.cols.width()
	row := make([]string, width)
	row[w.cols.afi] = f.AFI
	row[w.cols.classification] = f.Classification
	row[w.cols.recommendation] = f.Recommendation
	row[w.cols.entity] = f.Entity
	row[w.cols.process] = f.ProcessLabel
	row[w.cols.document] = f.Document
	w.rows = append(w.rows, row)
}

// Findings reads every data row back as findings, using the same column
// resolution as Append. Short rows yield empty fields.
func (w *Worksheet) Findings() []types.Finding {
	cell := func(row []string, col int) string {
		if col < len(row) {
			return row[col]
		}
		return ""
	}

	var findings []types.Finding
	for _, row := range w.rows[1:] {
		findings = append(findings, types.Finding{
			AFI:            cell(row, w.cols.afi),
			Classification: cell(row, w.cols.classification),
			Recommendation: cell(row, w.cols.recommendation),
			Entity:         cell(row, w.cols.entity),
			ProcessLabel:   cell(row, w.cols.process),
			Document:       cell(row, w.cols.document),
		})
	}
	return findings
}

// RowCount returns the number of data rows (excluding the header).
func (w *Worksheet) RowCount() int {
	return len(w.rows) - 1
}

// Path returns the workbook file location.
func (w *Worksheet) Path() string {
	return w.path
}

// Save writes the whole table back to disk.
func (w *Worksheet) Save() error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(w.rows); err != nil {
		return fmt.Errorf("encoding workbook: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("encoding workbook: %w", err)
	}
	if err := os.WriteFile(w.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}
