// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package oracle provides concrete action and relation oracles for the
// shift-reduce parser: a fixed-sequence replayer, a sentence-first
// heuristic ranker, and a relation table loaded from YAML.
package oracle

import (
	"context"
	"fmt"

	"github.com/pdiddy/discourse-engine/internal/parser"
	"github.com/pdiddy/discourse-engine/internal/tree"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

// rank puts first at the top and appends the rest of the vocabulary with
// decreasing scores.
func rank(first ...types.Action) []types.ScoredAction {
	out := make([]types.ScoredAction, 0, len(types.Vocabulary)+len(first))
	seen := make(map[types.Action]bool)
	score := 1.0
	add := func(a types.Action) {
		if seen[a] {
			return
		}
		seen[a] = true
		out = append(out, types.ScoredAction{Action: a, Score: score})
		score /= 2
	}
	for _, a := range first {
		add(a)
	}
	for _, a := range types.Vocabulary {
		add(a)
	}
	return out
}

// Sequence replays a fixed list of actions: at step i the i-th action is
// ranked first. It lets a known derivation, such as the gold actions of an
// annotated tree, drive the parser.
type Sequence struct {
	Actions []types.Action
}

// Rank implements parser.ActionOracle.
func (o Sequence) Rank(_ context.Context, s parser.Snapshot) ([]types.ScoredAction, error) {
	step := len(s.History)
	if step >= len(o.Actions) {
		return nil, fmt.Errorf("action sequence exhausted at step %d", step)
	}
	return rank(o.Actions[step]), nil
}

// Heuristic builds sentence-level subtrees first: it prefers reducing the
// top two stack nodes when they end and start in the same sentence or
// when nothing is left to shift, and prefers shifting otherwise. The
// reduction form is Form (NS when unset).
type Heuristic struct {
	Form types.Form
}

// Rank implements parser.ActionOracle.
func (o Heuristic) Rank(_ context.Context, s parser.Snapshot) ([]types.ScoredAction, error) {
	form := o.Form
	if !form.Valid() {
		form = types.FormNS
	}
	reduce := types.Reduce(form)

	n := len(s.Stack)
	if n < 2 {
		return rank(types.Shift(), reduce), nil
	}
	if len(s.Queue) == 0 || sameSentence(s.Doc, s.Stack[n-2], s.Stack[n-1]) {
		return rank(reduce, types.Shift()), nil
	}
	return rank(types.Shift(), reduce), nil
}

// sameSentence reports whether the last EDU of a and the first EDU of b
// start in the same sentence.
func sameSentence(doc *types.Document, a, b *tree.SpanNode) bool {
	if doc == nil {
		return false
	}
	at, ok := doc.EDUTokens(a.Span.Last)
	if !ok || len(at) == 0 {
		return false
	}
	bt, ok := doc.EDUTokens(b.Span.First)
	if !ok || len(bt) == 0 {
		return false
	}
	return doc.Tokens[at[0]].Sentence == doc.Tokens[bt[0]].Sentence
}
