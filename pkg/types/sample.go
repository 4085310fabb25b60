// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ActionRecord is the serializable form of one gold-replay action sample:
// the parser state before the gold action, and the gold action itself.
type ActionRecord struct {
	DocID   string   `json:"doc_id" yaml:"doc_id"`
	Step    int      `json:"step" yaml:"step"`
	Stack   []Span   `json:"stack" yaml:"stack"`
	Queue   []Span   `json:"queue" yaml:"queue"`
	History []string `json:"history" yaml:"history"`
	Action  string   `json:"action" yaml:"action"`
}

// RelationRecord is the serializable form of one relation sample taken from
// an internal node of a gold tree.
type RelationRecord struct {
	DocID    string `json:"doc_id" yaml:"doc_id"`
	Span     Span   `json:"span" yaml:"span"`
	Form     Form   `json:"form" yaml:"form"`
	Level    int    `json:"level" yaml:"level"`
	Relation string `json:"relation" yaml:"relation"`
}
