// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WorkbookConfig holds settings for the tabular output sink.
type WorkbookConfig struct {
	// Path is the workbook file the extractor appends to (default "All_AFIs.csv").
	Path string `json:"path" yaml:"path"`
}

// StoreConfig holds settings for the SQLite findings store.
type StoreConfig struct {
	// Dir is the directory holding the findings database (default "index").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all extractor settings.
type Config struct {
	// InputDir is the directory scanned for .docx and .pdf documents (default ".").
	InputDir string `json:"input_dir" yaml:"input_dir"`

	Workbook WorkbookConfig `json:"workbook" yaml:"workbook"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}
