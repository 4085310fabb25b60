// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/discourse-engine/internal/tree"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

// Parser builds discourse trees with an action oracle choosing transitions
// and a relation oracle labelling the finished tree. A Parser holds no
// per-document state and can be shared by goroutines when its oracles can.
type Parser struct {
	actions   ActionOracle
	relations RelationOracle
	clusters  types.ClusterTable
}

// New returns a Parser. clusters may be nil.
func New(actions ActionOracle, relations RelationOracle, clusters types.ClusterTable) *Parser {
	return &Parser{actions: actions, relations: relations, clusters: clusters}
}

// Parse runs the transition system over doc until one tree remains,
// propagates it, and assigns relations bottom-up. At each step the first
// legal action of the oracle's ranking is applied.
func (p *Parser) Parse(ctx context.Context, doc *types.Document) (*tree.RstTree, error) {
	if p.actions == nil || p.relations == nil {
		return nil, errors.New("parser needs an action oracle and a relation oracle")
	}
	if doc.NumEDUs() == 0 {
		return nil, fmt.Errorf("document %q has no EDUs", doc.ID)
	}

	state := NewDocumentState(doc)
	var history []types.Action

	for step := 0; !state.Terminal(); step++ {
		ranked, err := p.actions.Rank(ctx, state.snapshot(history, doc, p.clusters))
		if err != nil {
			return nil, fmt.Errorf("ranking actions at step %d: %w", step, err)
		}
		action, ok := firstLegal(state, ranked)
		if !ok {
			return nil, fmt.Errorf("%w: document %q step %d, stack=%d queue=%d",
				ErrNoLegalAction, doc.ID, step, len(state.stack), len(state.queue))
		}
		if err := state.Apply(action); err != nil {
			return nil, err
		}
		history = append(history, action)
	}

	root, err := state.Result()
	if err != nil {
		return nil, err
	}
	t, err := tree.New(root, doc)
	if err != nil {
		return nil, fmt.Errorf("propagating parse of %q: %w", doc.ID, err)
	}
	if err := p.assignRelations(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func firstLegal(s *State, ranked []types.ScoredAction) (types.Action, bool) {
	for _, sa := range ranked {
		if s.Allowed(sa.Action) {
			return sa.Action, true
		}
	}
	return types.Action{}, false
}

// assignRelations asks the relation oracle about every internal node in
// postorder and labels that node's children with the answer.
func (p *Parser) assignRelations(ctx context.Context, t *tree.RstTree) error {
	for _, n := range t.Postorder() {
		if n.IsLeaf() {
			continue
		}
		rel, err := p.relations.Relation(ctx, n, t, n.Level, p.clusters)
		if err != nil {
			return fmt.Errorf("predicting relation for %s: %w", n.Span, err)
		}
		if err := t.AssignRelation(n, rel); err != nil {
			return err
		}
	}
	return nil
}
