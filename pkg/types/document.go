// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the discourse-engine pipeline:
// the read-only document view produced by linguistic pre-processing, the
// shift-reduce action vocabulary, evaluation brackets, training sample records,
// and per-stage configuration.
package types

// Token is one word of a pre-processed document. Tokens are built once by the
// document reader and never modified afterwards.
type Token struct {
	// Index is the token's position in the whole document (0-based).
	Index int `json:"index" yaml:"index"`

	// Position is the 1-based token number inside its sentence.
	Position int `json:"position" yaml:"position"`

	// Form is the surface word.
	Form string `json:"form" yaml:"form"`

	// Lemma is the dictionary form of the word.
	Lemma string `json:"lemma" yaml:"lemma"`

	// POS is the coarse (universal) part-of-speech tag.
	POS string `json:"pos" yaml:"pos"`

	// Tag is the fine-grained (treebank) part-of-speech tag.
	Tag string `json:"tag" yaml:"tag"`

	// DepLabel is the dependency relation to the head token.
	DepLabel string `json:"dep_label" yaml:"dep_label"`

	// Head is the sentence-local position of the dependency head (0 = root).
	Head int `json:"head" yaml:"head"`

	// EDU is the index of the elementary discourse unit containing the token.
	EDU int `json:"edu" yaml:"edu"`

	// Sentence is the index of the sentence containing the token.
	Sentence int `json:"sentence" yaml:"sentence"`

	// Paragraph is the index of the paragraph containing the token.
	Paragraph int `json:"paragraph" yaml:"paragraph"`
}

// Document is a token sequence plus its EDU segmentation. It is shared
// read-only by the tree, the parser and the oracles for one parse.
type Document struct {
	// ID names the document, usually the input file name without extension.
	ID string

	// Tokens holds every token in document order; Tokens[i].Index == i.
	Tokens []Token

	edus     map[int][]int
	eduOrder []int
}

// NewDocument builds a Document from tokens in document order. Token
// indices are reassigned to match slice positions, and the EDU segmentation
// is recovered by grouping tokens by their EDU index. EDUs are ordered by
// first appearance.
func NewDocument(id string, tokens []Token) *Document {
	d := &Document{
		ID:     id,
		Tokens: make([]Token, len(tokens)),
		edus:   make(map[int][]int),
	}
	for i, tok := range tokens {
		tok.Index = i
		d.Tokens[i] = tok
		if _, ok := d.edus[tok.EDU]; !ok {
			d.eduOrder = append(d.eduOrder, tok.EDU)
		}
		d.edus[tok.EDU] = append(d.edus[tok.EDU], i)
	}
	return d
}

// EDUs returns the EDU indices in document order.
func (d *Document) EDUs() []int {
	out := make([]int, len(d.eduOrder))
	copy(out, d.eduOrder)
	return out
}

// NumEDUs returns the number of EDUs in the document.
func (d *Document) NumEDUs() int {
	return len(d.eduOrder)
}

// EDUTokens returns the token indices of an EDU and whether the EDU exists.
func (d *Document) EDUTokens(edu int) ([]int, bool) {
	toks, ok := d.edus[edu]
	return toks, ok
}

// ClusterTable maps a word to its lexical (Brown) cluster bit string. It is
// loaded once and consulted read-only by feature generation.
type ClusterTable map[string]string

// Lookup returns the cluster of word, or "" when the word is unknown.
func (c ClusterTable) Lookup(word string) string {
	if c == nil {
		return ""
	}
	return c[word]
}
