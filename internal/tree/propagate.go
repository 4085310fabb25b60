// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"fmt"

	"github.com/pdiddy/discourse-engine/pkg/types"
)

// breadthFirst lists the nodes of a binary tree level by level, left to right.
func breadthFirst(root *SpanNode) []*SpanNode {
	var out []*SpanNode
	queue := []*SpanNode{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		out = append(out, n)
		if n.Left != nil {
			queue = append(queue, n.Left)
		}
		if n.Right != nil {
			queue = append(queue, n.Right)
		}
	}
	return out
}

// downProp assigns depths from the root downwards.
func downProp(root *SpanNode) error {
	nodes := breadthFirst(root)
	root.Depth = 0
	for _, n := range nodes[1:] {
		if n.Parent == nil {
			return &StructureError{Span: n.Span, Msg: "non-root node has no parent"}
		}
		n.Depth = n.Parent.Depth + 1
	}
	return nil
}

// backProp derives spans, text, relations, forms, heights and levels from
// the leaves upwards. downProp must have run first.
func backProp(root *SpanNode, doc *types.Document) error {
	nodes := breadthFirst(root)
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		switch {
		case n.Left != nil && n.Right != nil:
			if err := propagateInternal(n, doc); err != nil {
				return err
			}
		case n.Left != nil || n.Right != nil:
			return &StructureError{Span: n.Span, Msg: "node has exactly one child"}
		default:
			text, err := spanText(doc, n.Span)
			if err != nil {
				return err
			}
			n.Text = text
			n.Height = 0
			n.MaxDepth = n.Depth
			n.Level = 0
		}
	}
	return nil
}

func propagateInternal(n *SpanNode, doc *types.Document) error {
	l, r := n.Left, n.Right

	if l.Span.Last+1 != r.Span.First {
		return &StructureError{
			Span: types.Span{First: l.Span.First, Last: r.Span.Last},
			Msg:  fmt.Sprintf("children %s and %s are not contiguous", l.Span, r.Span),
		}
	}
	n.Span = types.Span{First: l.Span.First, Last: r.Span.Last}

	text, err := spanText(doc, n.Span)
	if err != nil {
		return err
	}
	n.Text = text

	form, err := types.FormOf(l.Prop, r.Prop)
	if err != nil {
		return &StructureError{Span: n.Span, Msg: err.Error()}
	}
	n.Form = form

	switch form {
	case types.FormNS:
		n.NucSpan, n.NucEDU = l.Span, l.NucEDU
	case types.FormSN:
		n.NucSpan, n.NucEDU = r.Span, r.NucEDU
	case types.FormNN:
		n.NucSpan, n.NucEDU = n.Span, l.NucEDU
	}

	// Nodes made by binarization never saw a rel2par; they take the
	// relation of their nucleus, the left one when both are nuclei.
	if n.Relation == "" && n.Prop != types.PropRoot {
		if form == types.FormSN {
			n.Relation = r.Relation
		} else {
			n.Relation = l.Relation
		}
	}

	n.Height = max(l.Height, r.Height) + 1
	n.MaxDepth = max(l.MaxDepth, r.MaxDepth)

	if form == types.FormNN || form == types.FormNS {
		n.ChildRelation = r.Relation
	} else {
		n.ChildRelation = l.Relation
	}

	level, err := spanLevel(doc, n, l, r)
	if err != nil {
		return err
	}
	n.Level = level
	return nil
}

// spanText flattens the token indices of every EDU in span.
func spanText(doc *types.Document, span types.Span) ([]int, error) {
	var text []int
	for edu := span.First; edu <= span.Last; edu++ {
		toks, ok := doc.EDUTokens(edu)
		if !ok {
			return nil, &StructureError{Span: span, Msg: fmt.Sprintf("EDU %d is not in document %q", edu, doc.ID)}
		}
		text = append(text, toks...)
	}
	return text, nil
}

// spanLevel compares the first token of the left child with the last token
// of the right child: same sentence 0, same paragraph 1, otherwise 2.
func spanLevel(doc *types.Document, n, l, r *SpanNode) (int, error) {
	if len(l.Text) == 0 || len(r.Text) == 0 {
		return 0, &StructureError{Span: n.Span, Msg: "child covers no tokens"}
	}
	first, last := l.Text[0], r.Text[len(r.Text)-1]
	if first < 0 || first >= len(doc.Tokens) || last < 0 || last >= len(doc.Tokens) {
		return 0, &StructureError{Span: n.Span, Msg: "token index out of range"}
	}
	a, b := doc.Tokens[first], doc.Tokens[last]
	switch {
	case a.Sentence == b.Sentence:
		return 0, nil
	case a.Paragraph == b.Paragraph:
		return 1, nil
	}
	return 2, nil
}
