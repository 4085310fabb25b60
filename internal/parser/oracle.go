// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"context"

	"github.com/pdiddy/discourse-engine/internal/tree"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

// Snapshot is what an action oracle sees at one step: the current stack
// and queue, the actions taken so far, the document and the optional
// lexical cluster table. Stack and queue nodes are deep copies taken when
// the snapshot is made, so later transitions do not change them.
type Snapshot struct {
	Stack    []*tree.SpanNode
	Queue    []*tree.SpanNode
	History  []types.Action
	Doc      *types.Document
	Clusters types.ClusterTable
}

// ActionOracle ranks candidate actions for a parser state, highest
// confidence first. Implementations compute their own features from the
// snapshot. Any subset of the vocabulary may be returned; the parser skips
// illegal entries.
type ActionOracle interface {
	Rank(ctx context.Context, s Snapshot) ([]types.ScoredAction, error)
}

// RelationOracle predicts the relation label for an internal node at its
// level (0 sentence, 1 paragraph, 2 document).
type RelationOracle interface {
	Relation(ctx context.Context, n *tree.SpanNode, t *tree.RstTree, level int, clusters types.ClusterTable) (string, error)
}

func (s *State) snapshot(history []types.Action, doc *types.Document, clusters types.ClusterTable) Snapshot {
	h := make([]types.Action, len(history))
	copy(h, history)
	return Snapshot{
		Stack:    cloneNodes(s.stack),
		Queue:    cloneNodes(s.queue),
		History:  h,
		Doc:      doc,
		Clusters: clusters,
	}
}

func cloneNodes(nodes []*tree.SpanNode) []*tree.SpanNode {
	out := make([]*tree.SpanNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
