// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"

	"github.com/pdiddy/discourse-engine/internal/tree"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

// ActionSample pairs the state seen before a gold action with that action.
type ActionSample struct {
	Snapshot Snapshot
	Action   types.Action
}

// Record converts the sample to its serializable form.
func (s ActionSample) Record(docID string, step int) types.ActionRecord {
	hist := make([]string, len(s.Snapshot.History))
	for i, a := range s.Snapshot.History {
		hist[i] = a.String()
	}
	return types.ActionRecord{
		DocID:   docID,
		Step:    step,
		Stack:   spans(s.Snapshot.Stack),
		Queue:   spans(s.Snapshot.Queue),
		History: hist,
		Action:  s.Action.String(),
	}
}

func spans(nodes []*tree.SpanNode) []types.Span {
	out := make([]types.Span, len(nodes))
	for i, n := range nodes {
		out[i] = n.Span
	}
	return out
}

// GoldActions returns the transitions that rebuild t: Shift for each leaf
// and Reduce with the node's form for each internal node, in postorder.
func GoldActions(t *tree.RstTree) ([]types.Action, error) {
	nodes := t.Postorder()
	out := make([]types.Action, 0, len(nodes))
	for _, n := range nodes {
		a, err := goldAction(n)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func goldAction(n *tree.SpanNode) (types.Action, error) {
	switch {
	case n.IsLeaf():
		return types.Shift(), nil
	case n.Left != nil && n.Right != nil:
		return types.Reduce(n.Form), nil
	}
	return types.Action{}, &tree.StructureError{Span: n.Span, Msg: "cannot decode a shift-reduce action"}
}

// Teach replays gold tree t through the transition system. Before each gold
// action, fn receives the current snapshot and the action; the action is
// then applied. The state works on fresh leaves carrying only their EDU
// index, as at inference time, so t is not modified. Once the replay is
// done every rebuilt node takes the relation of its gold node, so the
// returned tree matches t node for node.
func Teach(t *tree.RstTree, clusters types.ClusterTable, fn func(Snapshot, types.Action) error) (*tree.RstTree, error) {
	gold := t.Postorder()
	leaves := make([]*tree.SpanNode, 0, len(gold))
	for _, g := range gold {
		if g.IsLeaf() {
			leaves = append(leaves, tree.NewLeaf(g.Span.First))
		}
	}

	state := NewState(leaves)
	var history []types.Action
	built := make([]*tree.SpanNode, 0, len(gold))
	for _, g := range gold {
		action, err := goldAction(g)
		if err != nil {
			return nil, err
		}
		if fn != nil {
			if err := fn(state.snapshot(history, t.Doc, clusters), action); err != nil {
				return nil, err
			}
		}
		if err := state.Apply(action); err != nil {
			return nil, fmt.Errorf("replaying %s for %s: %w", action, g.Span, err)
		}
		built = append(built, state.stack[len(state.stack)-1])
		history = append(history, action)
	}

	root, err := state.Result()
	if err != nil {
		return nil, err
	}
	for i, n := range built {
		n.Relation = gold[i].Relation
		n.RawText = gold[i].RawText
	}
	return tree.New(root, t.Doc)
}

// ActionSamples collects one sample per gold action of t.
func ActionSamples(t *tree.RstTree, clusters types.ClusterTable) ([]ActionSample, error) {
	var out []ActionSample
	_, err := Teach(t, clusters, func(s Snapshot, a types.Action) error {
		out = append(out, ActionSample{Snapshot: s, Action: a})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Replay applies a fixed action sequence to the EDUs of doc and returns
// the propagated tree. Relations are left unassigned.
func Replay(doc *types.Document, actions []types.Action) (*tree.RstTree, error) {
	state := NewDocumentState(doc)
	for i, a := range actions {
		if err := state.Apply(a); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
	}
	root, err := state.Result()
	if err != nil {
		return nil, err
	}
	return tree.New(root, doc)
}

// RelationSample is one internal node of a gold tree at a given level with
// the relation it carries.
type RelationSample struct {
	Node     *tree.SpanNode
	Level    int
	Relation string
}

// Record converts the sample to its serializable form.
func (s RelationSample) Record(docID string) types.RelationRecord {
	return types.RelationRecord{
		DocID:    docID,
		Span:     s.Node.Span,
		Form:     s.Node.Form,
		Level:    s.Level,
		Relation: s.Relation,
	}
}

// RelationSamples lists the internal nodes of t at level, in postorder.
// The label is the right child's relation for NN and NS nodes and the left
// child's for SN nodes, i.e. the label on the satellite or second nucleus.
func RelationSamples(t *tree.RstTree, level int) []RelationSample {
	var out []RelationSample
	for _, n := range t.Postorder() {
		if n.IsLeaf() || n.Level != level {
			continue
		}
		rel := n.Left.Relation
		if n.Form == types.FormNN || n.Form == types.FormNS {
			rel = n.Right.Relation
		}
		out = append(out, RelationSample{Node: n, Level: level, Relation: rel})
	}
	return out
}
