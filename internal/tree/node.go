// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tree implements the binary discourse tree: building it from a
// bracketed annotation, binarizing n-ary nodes, propagating spans,
// nuclearity, relations and levels, and flattening it into evaluation
// brackets or back into the annotation format.
package tree

import (
	"fmt"

	"github.com/pdiddy/discourse-engine/pkg/types"
)

// SpanNode is one node of a discourse tree. A node owns its Left and Right
// children; Parent is a back-reference only and is nil at the root.
type SpanNode struct {
	Prop types.Prop

	// Span is the inclusive EDU range covered by the subtree.
	Span types.Span

	// Text holds the token indices covered by the subtree.
	Text []int

	// Relation is "" until assigned.
	Relation string

	// Form is FormNone for leaves.
	Form types.Form

	NucSpan types.Span
	NucEDU  int

	Height   int
	Depth    int
	MaxDepth int

	// Level is 0 when the children meet inside a sentence, 1 inside a
	// paragraph and 2 across paragraphs.
	Level int

	ChildRelation string

	// RawText is the lower-cased EDU text read from an annotation leaf.
	RawText string

	Left, Right *SpanNode
	Parent      *SpanNode

	// children is the n-ary holding area used between BuildTree and
	// Binarize; it is empty on every node of a binary tree.
	children []*SpanNode
}

// NewLeaf returns a detached leaf covering one EDU.
func NewLeaf(edu int) *SpanNode {
	return &SpanNode{
		Span:    types.Span{First: edu, Last: edu},
		NucSpan: types.Span{First: edu, Last: edu},
		NucEDU:  edu,
	}
}

// NewInternal joins left and right under a new node and sets their
// back-references. The span covers both children; other derived
// attributes are left for propagation.
func NewInternal(left, right *SpanNode) *SpanNode {
	n := &SpanNode{
		Left:  left,
		Right: right,
		Span:  types.Span{First: left.Span.First, Last: right.Span.Last},
	}
	left.Parent = n
	right.Parent = n
	return n
}

// Clone returns a deep copy of the subtree rooted at n. The copy is
// detached: its Parent is nil.
func (n *SpanNode) Clone() *SpanNode {
	c := *n
	c.Parent = nil
	c.Text = append([]int(nil), n.Text...)
	c.children = nil
	if n.Left != nil {
		c.Left = n.Left.Clone()
		c.Left.Parent = &c
	}
	if n.Right != nil {
		c.Right = n.Right.Clone()
		c.Right.Parent = &c
	}
	return &c
}

// IsLeaf reports whether the node has no children.
func (n *SpanNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

func (n *SpanNode) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("%s leaf %d", n.Prop, n.Span.First)
	}
	return fmt.Sprintf("%s %s %s", n.Prop, n.Form, n.Span)
}

// FormatError reports a malformed bracketed annotation. Pos is the index of
// the offending symbol in the tokenized input.
type FormatError struct {
	Pos int
	Msg string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("annotation symbol %d: %s", e.Pos, e.Msg)
}

// StructureError reports a violated tree invariant on the node covering Span.
type StructureError struct {
	Span types.Span
	Msg  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("node %s: %s", e.Span, e.Msg)
}
