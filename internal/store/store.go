// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists findings in a SQLite database with FTS5 full-text
// indexing, so extracted AFIs stay queryable after the workbook run.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Mg2n/AFI-Extractor/pkg/types"
)

const dbFile = "findings.db"

// Store manages the findings SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// New opens or creates the findings database at dir/findings.db, creating
// the schema if needed.
func New(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "index"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			processed_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS findings (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			afi TEXT NOT NULL,
			classification TEXT,
			entity TEXT,
			recommendation TEXT,
			process_label TEXT,
			document TEXT NOT NULL REFERENCES documents(name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_document ON findings(document)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_classification ON findings(classification)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='findings_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE findings_fts USING fts5(afi, recommendation, content=findings, content_rowid=rowid)`,
			`CREATE TRIGGER findings_ai AFTER INSERT ON findings BEGIN
				INSERT INTO findings_fts(rowid, afi, recommendation) VALUES (new.rowid, new.afi, new.recommendation);
			END`,
			`CREATE TRIGGER findings_ad AFTER DELETE ON findings BEGIN
				INSERT INTO findings_fts(findings_fts, rowid, afi, recommendation) VALUES('delete', old.rowid, old.afi, old.recommendation);
			END`,
			`CREATE TRIGGER findings_au AFTER UPDATE ON findings BEGIN
				INSERT INTO findings_fts(findings_fts, rowid, afi, recommendation) VALUES('delete', old.rowid, old.afi, old.recommendation);
				INSERT INTO findings_fts(rowid, afi, recommendation) VALUES (new.rowid, new.afi, new.recommendation);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Ingest replaces the stored rows of one document with the given findings.
// Re-ingesting a document is idempotent.
func (s *Store) Ingest(ctx context.Context, document string, findings []types.Finding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents(name, processed_at) VALUES(?, ?)
		 ON CONFLICT(name) DO UPDATE SET processed_at = excluded.processed_at`,
		document, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("upserting document %s: %w", document, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM findings WHERE document = ?`, document); err != nil {
		return fmt.Errorf("clearing previous rows for %s: %w", document, err)
	}

	for _, f := range findings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO findings(afi, classification, entity, recommendation, process_label, document)
			 VALUES(?, ?, ?, ?, ?, ?)`,
			f.AFI, f.Classification, f.Entity, f.Recommendation, f.ProcessLabel, f.Document,
		); err != nil {
			return fmt.Errorf("inserting finding for %s: %w", document, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing ingest of %s: %w", document, err)
	}
	return nil
}
