// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Span is an inclusive range of EDU indices.
type Span struct {
	First int `json:"first" yaml:"first"`
	Last  int `json:"last" yaml:"last"`
}

// String renders the span as "(first, last)".
func (s Span) String() string {
	return fmt.Sprintf("(%d, %d)", s.First, s.Last)
}

// Bracket is the unit of evaluation: one non-root tree node described by its
// EDU span, its nuclearity role and its relation label.
type Bracket struct {
	Span     Span   `json:"span" yaml:"span"`
	Prop     Prop   `json:"prop" yaml:"prop"`
	Relation string `json:"relation" yaml:"relation"`
}

// String renders the bracket as "((first, last), 'Prop', 'Relation')".
func (b Bracket) String() string {
	return fmt.Sprintf("(%s, '%s', '%s')", b.Span, b.Prop, b.Relation)
}

// ParseResult is the stored outcome of building one tree for a document,
// either from a gold annotation or from the parser.
type ParseResult struct {
	DocID    string    `json:"doc_id" yaml:"doc_id"`
	Source   string    `json:"source" yaml:"source"`
	EDUCount int       `json:"edu_count" yaml:"edu_count"`
	Parse    string    `json:"parse" yaml:"parse"`
	Brackets []Bracket `json:"brackets" yaml:"brackets"`
}

// Result sources.
const (
	SourceGold      = "gold"
	SourcePredicted = "pred"
)
