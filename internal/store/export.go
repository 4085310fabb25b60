// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one stored document with its brackets.
type ExportEntry struct {
	DocID    string          `json:"doc_id" yaml:"doc_id"`
	Source   string          `json:"source" yaml:"source"`
	EDUCount int             `json:"edu_count" yaml:"edu_count"`
	Parse    string          `json:"parse" yaml:"parse"`
	Brackets []ExportBracket `json:"brackets" yaml:"brackets"`
}

// ExportBracket is the flat form of a bracket in exports.
type ExportBracket struct {
	First    int    `json:"first" yaml:"first"`
	Last     int    `json:"last" yaml:"last"`
	Prop     string `json:"prop" yaml:"prop"`
	Relation string `json:"relation" yaml:"relation"`
}

const exportLimit = 1000000

// ExportYAML writes the matching documents to <index_dir>/export.yaml.
// A Relation filter keeps the documents that contain that relation.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the matching documents to <index_dir>/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}

	path := filepath.Join(s.indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT d.id, d.source FROM documents d WHERE 1=1`)
	if opts.DocID != "" {
		qb.WriteString(` AND d.id = ?`)
		args = append(args, opts.DocID)
	}
	if opts.Source != "" {
		qb.WriteString(` AND d.source = ?`)
		args = append(args, opts.Source)
	}
	if opts.Relation != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM brackets b
			WHERE b.doc_id = d.id AND b.source = d.source AND b.relation = ?)`)
		args = append(args, opts.Relation)
	}
	qb.WriteString(` ORDER BY d.id, d.source`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	type key struct{ doc, source string }
	var keys []key
	for rows.Next() {
		var k key
		if err := rows.Scan(&k.doc, &k.source); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		keys = append(keys, k)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]ExportEntry, 0, len(keys))
	for _, k := range keys {
		res, err := s.Document(ctx, k.doc, k.source)
		if err != nil {
			return nil, err
		}
		e := ExportEntry{
			DocID:    res.DocID,
			Source:   res.Source,
			EDUCount: res.EDUCount,
			Parse:    res.Parse,
			Brackets: make([]ExportBracket, len(res.Brackets)),
		}
		for i, b := range res.Brackets {
			e.Brackets[i] = ExportBracket{First: b.Span.First, Last: b.Span.Last, Prop: string(b.Prop), Relation: b.Relation}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
