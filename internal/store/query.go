// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

// QueryOptions holds parameters for findings queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over AFI and
	// recommendation text.
	Query string

	// Classification filters by exact classification (case-insensitive).
	Classification string

	// Entity filters by exact entity (case-insensitive).
	Entity string

	// Process filters by substring of the process label.
	Process string

	// Document filters by source file name.
	Document string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Classification == "" && q.Entity == "" &&
		q.Process == "" && q.Document == ""
}

// Query searches the store with optional full-text search and structured
// filters. Full-text queries are ranked by relevance; structured-only
// queries come back in ingest order per document.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.Finding, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT f.afi, f.classification, f.entity, f.recommendation, f.process_label, f.document
			FROM findings_fts
			JOIN findings f ON f.rowid = findings_fts.rowid
			WHERE findings_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT f.afi, f.classification, f.entity, f.recommendation, f.process_label, f.document
			FROM findings f
			WHERE 1=1`)
	}

	if opts.Classification != "" {
		qb.WriteString(` AND f.classification = ? COLLATE NOCASE`)
		args = append(args, opts.Classification)
	}
	if opts.Entity != "" {
		qb.WriteString(` AND f.entity = ? COLLATE NOCASE`)
		args = append(args, opts.Entity)
	}
	if opts.Process != "" {
		qb.WriteString(` AND instr(lower(f.process_label), lower(?)) > 0`)
		args = append(args, opts.Process)
	}
	if opts.Document != "" {
		qb.WriteString(` AND f.document = ?`)
		args = append(args, opts.Document)
	}

	if useFTS {
		qb.WriteString(` ORDER BY findings_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY f.document, f.rowid`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	var results []types.Finding
	for rows.Next() {
		var f types.Finding
		if err := rows.Scan(
			&f.AFI, &f.Classification, &f.Entity,
			&f.Recommendation, &f.ProcessLabel, &f.Document,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return results, nil
}
