// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

// Binarize turns the n-ary tree produced by BuildTree into a strictly
// binary one, in place. A node with more than two children keeps the first
// as its left child and gets a new right child holding the rest, which
// takes the role of the first child it holds (right-branching). A node with
// exactly one child is a structural error.
func Binarize(root *SpanNode) (*SpanNode, error) {
	queue := []*SpanNode{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		kids := n.children
		n.children = nil

		switch {
		case len(kids) == 0:
		case len(kids) == 1:
			return nil, &StructureError{Span: n.Span, Msg: "node has exactly one child"}
		case len(kids) == 2:
			n.Left, n.Right = kids[0], kids[1]
			n.Left.Parent, n.Right.Parent = n, n
			queue = append(queue, kids...)
		default:
			rest := &SpanNode{Prop: kids[1].Prop}
			rest.children = append(rest.children, kids[1:]...)
			n.Left, n.Right = kids[0], rest
			n.Left.Parent, n.Right.Parent = n, n
			// The synthetic node goes first so it is split before its siblings.
			queue = append([]*SpanNode{rest, kids[0]}, queue...)
		}
	}
	return root, nil
}
