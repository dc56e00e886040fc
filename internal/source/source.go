// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads audit documents into normalized line streams.
// Each supported container format (DOCX, PDF) has its own backend; the
// parser only ever sees ordered, non-empty, normalized lines.
package source

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LineSource yields the ordered normalized lines of one document. Empty
// lines are already dropped; table-of-contents pages are already filtered.
type LineSource interface {
	Lines(path string) ([]string, error)
}

// ForFile selects the backend for a document by extension.
func ForFile(path string) (LineSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return docxSource{}, nil
	case ".pdf":
		return pdfSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Base(path))
	}
}

// Supported reports whether the file name names a readable document.
// Editor lock artifacts ("~$...") are excluded.
func Supported(name string) bool {
	if strings.HasPrefix(name, "~$") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx", ".pdf":
		return true
	}
	return false
}
