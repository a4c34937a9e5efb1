package syntax

import "github.com/wgsl-analyzer/wgsl-analyzer/internal/span"

// SyntaxNode is one node of the concrete syntax tree: either an interior
// node (a grammar production, Token == nil) or a leaf wrapping a single
// Token. Every node carries its own text range so AstPointer can identify
// it without walking from the root with an offset accumulator.
type SyntaxNode struct {
	Kind     SyntaxKind
	Range    span.Range
	Token    *Token
	Children []*SyntaxNode
	Parent   *SyntaxNode
}

func (n *SyntaxNode) IsToken() bool { return n.Token != nil }

// Text returns the node's original source slice given the full text the
// tree was parsed from.
func (n *SyntaxNode) Text(fullText string) string {
	if int(n.Range.End) > len(fullText) {
		return ""
	}
	return fullText[n.Range.Start:n.Range.End]
}

// ChildrenOfKind returns direct children with the given kind, in order.
func (n *SyntaxNode) ChildrenOfKind(kind SyntaxKind) []*SyntaxNode {
	var out []*SyntaxNode
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child with the given kind, or
// nil.
func (n *SyntaxNode) FirstChildOfKind(kind SyntaxKind) *SyntaxNode {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// FindAt performs a preorder search for the innermost node whose range
// equals (start, kind), the lookup AstPointer.Resolve relies on.
func (n *SyntaxNode) FindAt(r span.Range, kind SyntaxKind) *SyntaxNode {
	if n.Range == r && n.Kind == kind {
		// Prefer the most specific (deepest) match; keep searching
		// children before accepting this node.
		for _, c := range n.Children {
			if found := c.FindAt(r, kind); found != nil {
				return found
			}
		}
		return n
	}
	if !rangeContains(n.Range, r) {
		return nil
	}
	for _, c := range n.Children {
		if found := c.FindAt(r, kind); found != nil {
			return found
		}
	}
	return nil
}

func rangeContains(outer, inner span.Range) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}

// Walk calls f for n and every descendant, preorder.
func (n *SyntaxNode) Walk(f func(*SyntaxNode)) {
	f(n)
	for _, c := range n.Children {
		c.Walk(f)
	}
}

// AstNode is implemented by every typed wrapper in ast.go: a thin view
// over a SyntaxNode, the node-wrapper pattern generalized into an
// explicit interface since Go has no trait/associated-function `cast`.
type AstNode interface {
	Syntax() *SyntaxNode
}
