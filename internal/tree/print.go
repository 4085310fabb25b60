// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"fmt"
	"strings"

	"github.com/pdiddy/discourse-engine/pkg/types"
)

// Parse renders the tree in the bracketed annotation format read by
// BuildTree. Child roles are written from each node's form; leaf text is
// the EDU's words joined with underscores.
func (t *RstTree) Parse() string {
	var b strings.Builder
	t.writeNode(&b, t.Root, types.PropRoot)
	return b.String()
}

func (t *RstTree) writeNode(b *strings.Builder, n *SpanNode, prop types.Prop) {
	b.WriteString("(" + string(prop))
	if n.IsLeaf() {
		fmt.Fprintf(b, " (leaf %d)", n.Span.First)
	} else {
		fmt.Fprintf(b, " (span %d %d)", n.Span.First, n.Span.Last)
	}
	if prop != types.PropRoot && n.Relation != "" {
		fmt.Fprintf(b, " (rel2par %s)", n.Relation)
	}

	if n.IsLeaf() {
		fmt.Fprintf(b, " (text %s%s%s)", textDelim, t.NodeText(n, "_"), textDelim)
	} else {
		left, right, err := n.Form.Props()
		if err != nil {
			left, right = n.Left.Prop, n.Right.Prop
		}
		b.WriteByte(' ')
		t.writeNode(b, n.Left, left)
		b.WriteByte(' ')
		t.writeNode(b, n.Right, right)
	}
	b.WriteByte(')')
}
