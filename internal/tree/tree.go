// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/discourse-engine/internal/relation"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

// RstTree is a propagated binary discourse tree over one document.
type RstTree struct {
	Root *SpanNode
	Doc  *types.Document
}

// New wraps a binary tree, marks its root, and runs depth and attribute
// propagation. It fails on the first violated invariant.
func New(root *SpanNode, doc *types.Document) (*RstTree, error) {
	if root == nil {
		return nil, errors.New("tree has no root")
	}
	if doc == nil {
		return nil, errors.New("tree has no document")
	}
	root.Parent = nil
	root.Prop = types.PropRoot
	if err := downProp(root); err != nil {
		return nil, err
	}
	if err := backProp(root, doc); err != nil {
		return nil, err
	}
	return &RstTree{Root: root, Doc: doc}, nil
}

// FromAnnotation builds, binarizes and propagates a tree from a bracketed
// annotation over doc.
func FromAnnotation(src string, doc *types.Document) (*RstTree, error) {
	root, err := BuildTree(src)
	if err != nil {
		return nil, fmt.Errorf("parsing annotation: %w", err)
	}
	root, err = Binarize(root)
	if err != nil {
		return nil, fmt.Errorf("binarizing: %w", err)
	}
	t, err := New(root, doc)
	if err != nil {
		return nil, fmt.Errorf("propagating: %w", err)
	}
	return t, nil
}

// BreadthFirst lists the nodes level by level.
func (t *RstTree) BreadthFirst() []*SpanNode {
	return breadthFirst(t.Root)
}

// Postorder lists the nodes children-first, left before right.
func (t *RstTree) Postorder() []*SpanNode {
	var out []*SpanNode
	var walk func(n *SpanNode)
	walk = func(n *SpanNode) {
		if n.Left != nil {
			walk(n.Left)
		}
		if n.Right != nil {
			walk(n.Right)
		}
		out = append(out, n)
	}
	walk(t.Root)
	return out
}

// Leaves returns the EDU nodes in document order.
func (t *RstTree) Leaves() []*SpanNode {
	var out []*SpanNode
	for _, n := range t.Postorder() {
		if n.IsLeaf() {
			out = append(out, n)
		}
	}
	return out
}

// Bracketing returns (span, prop, relation) for every node but the root,
// in postorder.
func (t *RstTree) Bracketing() []types.Bracket {
	nodes := t.Postorder()
	nodes = nodes[:len(nodes)-1]
	out := make([]types.Bracket, len(nodes))
	for i, n := range nodes {
		out[i] = types.Bracket{Span: n.Span, Prop: n.Prop, Relation: n.Relation}
	}
	return out
}

// NodeText joins the surface forms of the tokens under n with sep.
func (t *RstTree) NodeText(n *SpanNode, sep string) string {
	words := make([]string, 0, len(n.Text))
	for _, idx := range n.Text {
		words = append(words, t.Doc.Tokens[idx].Form)
	}
	return strings.Join(words, sep)
}

// AssignRelation labels the children of an internal node with a relation
// predicted for that node. The nucleus of a mononuclear relation gets
// "span"; both nuclei of a multinuclear relation get the label.
func (t *RstTree) AssignRelation(n *SpanNode, label string) error {
	if n.IsLeaf() {
		return &StructureError{Span: n.Span, Msg: "cannot assign a relation below a leaf"}
	}
	switch n.Form {
	case types.FormNN:
		n.Left.Relation, n.Right.Relation = label, label
	case types.FormNS:
		n.Left.Relation, n.Right.Relation = relation.Span, label
	case types.FormSN:
		n.Left.Relation, n.Right.Relation = label, relation.Span
	default:
		return &StructureError{Span: n.Span, Msg: fmt.Sprintf("invalid form %q", string(n.Form))}
	}
	return nil
}
