// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists parse results and their bracket tuples in SQLite
// so gold and predicted trees can be queried and exported across runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/discourse-engine/pkg/types"
)

const dbFile = "discourse.db"

// Store manages the result database.
type Store struct {
	db         *sql.DB
	indexDir   string
	maxResults int
}

// NewStore opens or creates the result database at
// cfg.IndexDir/discourse.db and creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{
		db:         db,
		indexDir:   cfg.IndexDir,
		maxResults: maxResults,
	}

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
			id TEXT NOT NULL,
			source TEXT NOT NULL,
			edu_count INTEGER NOT NULL,
			parse TEXT NOT NULL,
			stored_at TEXT,
			PRIMARY KEY (id, source)
		)`,
		`CREATE TABLE IF NOT EXISTS brackets (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL,
			source TEXT NOT NULL,
			first_edu INTEGER NOT NULL,
			last_edu INTEGER NOT NULL,
			prop TEXT NOT NULL,
			relation TEXT NOT NULL,
			FOREIGN KEY (doc_id, source) REFERENCES documents(id, source) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_brackets_doc ON brackets(doc_id, source)`,
		`CREATE INDEX IF NOT EXISTS idx_brackets_relation ON brackets(relation)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores one result, replacing any earlier rows for the same
// document and source.
func (s *Store) Save(ctx context.Context, res types.ParseResult) error {
	if res.DocID == "" || res.Source == "" {
		return fmt.Errorf("result needs a document ID and a source")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM brackets WHERE doc_id = ? AND source = ?`, res.DocID, res.Source,
	); err != nil {
		return fmt.Errorf("deleting old brackets: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, source, edu_count, parse, stored_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id, source) DO UPDATE SET
			edu_count=excluded.edu_count, parse=excluded.parse, stored_at=excluded.stored_at`,
		res.DocID, res.Source, res.EDUCount, res.Parse, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO brackets (doc_id, source, first_edu, last_edu, prop, relation)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range res.Brackets {
		if _, err := stmt.ExecContext(ctx,
			res.DocID, res.Source, b.Span.First, b.Span.Last, string(b.Prop), b.Relation,
		); err != nil {
			return fmt.Errorf("inserting bracket %s: %w", b.Span, err)
		}
	}

	return tx.Commit()
}

// SaveSummary holds counts from a batch save.
type SaveSummary struct {
	Saved  int
	Failed int
}

// Total returns the number of results processed.
func (s SaveSummary) Total() int {
	return s.Saved + s.Failed
}

// SaveAll stores each result, reporting progress on w. On success it
// writes export.yaml.
func (s *Store) SaveAll(ctx context.Context, results []types.ParseResult, w io.Writer) (SaveSummary, error) {
	var summary SaveSummary
	for _, res := range results {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if err := s.Save(ctx, res); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", res.DocID, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "stored  %s [%s] (%d brackets)\n", res.DocID, res.Source, len(res.Brackets))
		summary.Saved++
	}

	fmt.Fprintf(w, "\nstored: %d, failed: %d\n", summary.Saved, summary.Failed)

	if summary.Saved > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}
	return summary, nil
}
