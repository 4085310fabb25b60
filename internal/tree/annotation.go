// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/discourse-engine/internal/relation"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

const (
	noiseMarker = "//TT_ERR"
	textDelim   = "_!"
	leftParen   = "-LB-"
	rightParen  = "-RB-"
)

type elemKind int

const (
	elemSymbol elemKind = iota
	elemNode
	elemSpan
	elemLeaf
	elemRelation
	elemText
)

// element is one entry of the bottom-up parse stack: a raw symbol, a
// finished node, or a marker produced by a keyword bracket.
type element struct {
	kind  elemKind
	sym   string
	node  *SpanNode
	span  types.Span
	label string
}

// BuildTree parses a bracketed discourse annotation into an n-ary tree.
// The result must be passed through Binarize before propagation.
func BuildTree(src string) (*SpanNode, error) {
	syms := symbols(src)

	var stack []element
	for pos, sym := range syms {
		if sym != ")" {
			stack = append(stack, element{kind: elemSymbol, sym: sym})
			continue
		}

		open := -1
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].kind == elemSymbol && stack[i].sym == "(" {
				open = i
				break
			}
		}
		if open < 0 {
			return nil, &FormatError{Pos: pos, Msg: "closing bracket without an opening bracket"}
		}
		content := make([]element, len(stack)-open-1)
		copy(content, stack[open+1:])
		stack = stack[:open]

		if len(content) < 2 {
			return nil, &FormatError{Pos: pos, Msg: fmt.Sprintf("bracket needs a label and content, found %d element(s)", len(content))}
		}
		if content[0].kind != elemSymbol {
			return nil, &FormatError{Pos: pos, Msg: "bracket does not start with a label"}
		}
		el, err := reduceBracket(pos, content[0].sym, content[1:])
		if err != nil {
			return nil, err
		}
		stack = append(stack, el)
	}

	if len(stack) != 1 || stack[0].kind != elemNode {
		return nil, &FormatError{Pos: len(syms), Msg: fmt.Sprintf("expected a single root node, found %d top-level element(s)", len(stack))}
	}
	return stack[0].node, nil
}

// symbols splits the annotation into brackets and words. Brackets inside
// _!...!_ text spans are replaced so they are not read as structure.
func symbols(src string) []string {
	src = strings.TrimSpace(src)
	src = strings.ReplaceAll(src, noiseMarker, "")
	src = strings.ReplaceAll(src, "\n", "")
	src = strings.ReplaceAll(src, "(", " ( ")
	src = strings.ReplaceAll(src, ")", " ) ")
	syms := strings.Fields(src)

	inText := false
	for i, sym := range syms {
		if n := strings.Count(sym, textDelim); n%2 == 1 {
			inText = !inText
		}
		if inText {
			sym = strings.ReplaceAll(sym, "(", leftParen)
			sym = strings.ReplaceAll(sym, ")", rightParen)
		}
		syms[i] = sym
	}
	return syms
}

func reduceBracket(pos int, label string, args []element) (element, error) {
	switch label {
	case string(types.PropRoot), string(types.PropNucleus), string(types.PropSatellite):
		n := &SpanNode{Prop: types.Prop(label)}
		if err := n.absorb(pos, args); err != nil {
			return element{}, err
		}
		return element{kind: elemNode, node: n}, nil

	case "span":
		nums, err := intArgs(pos, label, args, 2)
		if err != nil {
			return element{}, err
		}
		return element{kind: elemSpan, span: types.Span{First: nums[0], Last: nums[1]}}, nil

	case "leaf":
		nums, err := intArgs(pos, label, args, 1)
		if err != nil {
			return element{}, err
		}
		return element{kind: elemLeaf, span: types.Span{First: nums[0], Last: nums[0]}}, nil

	case "rel2par":
		if len(args) != 1 || args[0].kind != elemSymbol {
			return element{}, &FormatError{Pos: pos, Msg: fmt.Sprintf("rel2par expects one label, found %d element(s)", len(args))}
		}
		rel, ok := relation.Normalize(args[0].sym)
		if !ok {
			return element{}, &FormatError{Pos: pos, Msg: fmt.Sprintf("unknown relation %q", args[0].sym)}
		}
		return element{kind: elemRelation, label: rel}, nil

	case "text":
		words := make([]string, 0, len(args))
		for _, a := range args {
			if a.kind != elemSymbol {
				return element{}, &FormatError{Pos: pos, Msg: "text contains a nested bracket"}
			}
			words = append(words, strings.ReplaceAll(a.sym, textDelim, ""))
		}
		return element{kind: elemText, label: strings.ToLower(strings.Join(words, " "))}, nil
	}
	return element{}, &FormatError{Pos: pos, Msg: fmt.Sprintf("unrecognized label %q", label)}
}

func intArgs(pos int, label string, args []element, want int) ([]int, error) {
	if len(args) != want {
		return nil, &FormatError{Pos: pos, Msg: fmt.Sprintf("%s expects %d value(s), found %d", label, want, len(args))}
	}
	nums := make([]int, want)
	for i, a := range args {
		if a.kind != elemSymbol {
			return nil, &FormatError{Pos: pos, Msg: fmt.Sprintf("%s value is not a number", label)}
		}
		v, err := strconv.Atoi(a.sym)
		if err != nil {
			return nil, &FormatError{Pos: pos, Msg: fmt.Sprintf("%s value %q is not a number", label, a.sym)}
		}
		nums[i] = v
	}
	return nums, nil
}

// absorb merges the markers and child nodes of a role bracket into n.
func (n *SpanNode) absorb(pos int, content []element) error {
	hasSpan := false
	for _, c := range content {
		switch c.kind {
		case elemNode:
			n.children = append(n.children, c.node)
		case elemSpan:
			n.Span = c.span
			hasSpan = true
		case elemLeaf:
			n.Span = c.span
			n.NucSpan = c.span
			n.NucEDU = c.span.First
			hasSpan = true
		case elemRelation:
			n.Relation = c.label
		case elemText:
			n.RawText = c.label
		default:
			return &FormatError{Pos: pos, Msg: fmt.Sprintf("unexpected symbol %q in %s", c.sym, n.Prop)}
		}
	}
	if !hasSpan {
		return &FormatError{Pos: pos, Msg: fmt.Sprintf("%s has neither span nor leaf", n.Prop)}
	}
	return nil
}
