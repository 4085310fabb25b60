// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/discourse-engine/pkg/types"
)

// ErrNotFound is returned when a stored document does not exist.
var ErrNotFound = errors.New("not found")

// QueryOptions filters bracket queries. Empty fields do not filter.
type QueryOptions struct {
	DocID    string
	Source   string
	Relation string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return q.DocID == "" && q.Source == "" && q.Relation == ""
}

// BracketRow is a stored bracket with the document it belongs to.
type BracketRow struct {
	types.Bracket `yaml:",inline"`

	DocID  string `json:"doc_id" yaml:"doc_id"`
	Source string `json:"source" yaml:"source"`
}

// Brackets returns stored brackets matching opts. Within a document the
// brackets keep the order they were saved in.
func (s *Store) Brackets(ctx context.Context, opts QueryOptions) ([]BracketRow, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT doc_id, source, first_edu, last_edu, prop, relation
		FROM brackets WHERE 1=1`)

	if opts.DocID != "" {
		qb.WriteString(` AND doc_id = ?`)
		args = append(args, opts.DocID)
	}
	if opts.Source != "" {
		qb.WriteString(` AND source = ?`)
		args = append(args, opts.Source)
	}
	if opts.Relation != "" {
		qb.WriteString(` AND relation = ?`)
		args = append(args, opts.Relation)
	}

	qb.WriteString(` ORDER BY doc_id, source, rowid LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying brackets: %w", err)
	}
	defer rows.Close()

	var out []BracketRow
	for rows.Next() {
		var (
			r    BracketRow
			prop string
		)
		if err := rows.Scan(&r.DocID, &r.Source, &r.Span.First, &r.Span.Last, &prop, &r.Relation); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Prop = types.Prop(prop)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Document returns the stored result for a document and source.
func (s *Store) Document(ctx context.Context, docID, source string) (types.ParseResult, error) {
	res := types.ParseResult{DocID: docID, Source: source}
	err := s.db.QueryRowContext(ctx,
		`SELECT edu_count, parse FROM documents WHERE id = ? AND source = ?`, docID, source,
	).Scan(&res.EDUCount, &res.Parse)
	if err != nil {
		if err == sql.ErrNoRows {
			return res, fmt.Errorf("document %s [%s]: %w", docID, source, ErrNotFound)
		}
		return res, fmt.Errorf("looking up document: %w", err)
	}

	rows, err := s.Brackets(ctx, QueryOptions{DocID: docID, Source: source, MaxResults: exportLimit})
	if err != nil {
		return res, err
	}
	for _, r := range rows {
		res.Brackets = append(res.Brackets, r.Bracket)
	}
	return res, nil
}

// RelationCount is the number of stored brackets carrying one relation.
type RelationCount struct {
	Relation string `json:"relation" yaml:"relation"`
	Count    int    `json:"count" yaml:"count"`
}

// RelationCounts tallies bracket relations for a source (all sources when
// source is empty), most frequent first.
func (s *Store) RelationCounts(ctx context.Context, source string) ([]RelationCount, error) {
	query := `SELECT relation, count(*) AS n FROM brackets`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` GROUP BY relation ORDER BY n DESC, relation`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("counting relations: %w", err)
	}
	defer rows.Close()

	var out []RelationCount
	for rows.Next() {
		var rc RelationCount
		if err := rows.Scan(&rc.Relation, &rc.Count); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
