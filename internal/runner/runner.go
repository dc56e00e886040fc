// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner drives the batch extraction: discover documents, parse
// each into findings, and append the rows to the shared workbook. One bad
// document never stops the batch; failures are counted and reported.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Mg2n/AFI-Extractor/internal/parse"
	"github.com/Mg2n/AFI-Extractor/internal/sink"
	"github.com/Mg2n/AFI-Extractor/internal/source"
	"github.com/Mg2n/AFI-Extractor/internal/store"
	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

// Summary holds counts from one batch run.
type Summary struct {
	Processed int
	Rows      int
	Failed    int
}

// Total returns the number of documents attempted.
func (s Summary) Total() int {
	return s.Processed + s.Failed
}

// HasFailures reports whether any documents failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Discover lists the readable documents in dir: .docx and .pdf files,
// editor lock artifacts excluded, in case-insensitive name order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !source.Supported(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// Extract parses one document into findings.
func Extract(path string) ([]types.Finding, error) {
	src, err := source.ForFile(path)
	if err != nil {
		return nil, err
	}
	lines, err := src.Lines(path)
	if err != nil {
		return nil, err
	}
	return parse.Document(lines, filepath.Base(path)), nil
}

// Run processes every document in cfg.InputDir into the workbook, and into
// st when it is non-nil. Progress goes to w, one line per document.
func Run(ctx context.Context, cfg types.Config, st *store.Store, w io.Writer) (Summary, error) {
	names, err := Discover(cfg.InputDir)
	if err != nil {
		return Summary{}, err
	}
	fmt.Fprintf(w, "Found %d files (.docx/.pdf).\n", len(names))

	sheet, err := sink.Open(cfg.Workbook.Path)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for i, name := range names {
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(names), name)

		findings, err := Extract(filepath.Join(cfg.InputDir, name))
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		for _, f := range findings {
			sheet.Append(f)
		}
		if st != nil {
			if err := st.Ingest(ctx, name, findings); err != nil {
				fmt.Fprintf(w, "failed  %s: %v\n", name, err)
				summary.Failed++
				continue
			}
		}

		summary.Processed++
		summary.Rows += len(findings)
	}

	if err := sheet.Save(); err != nil {
		return summary, err
	}
	fmt.Fprintf(w, "Done → %s (%d rows appended)\n", sheet.Path(), summary.Rows)
	return summary, nil
}
