package syntax

import "github.com/wgsl-analyzer/wgsl-analyzer/internal/span"

// AstPointer is a stable, serializable reference to a syntax node: a
// (range, kind) pair rather than a live pointer, so it survives the tree
// being reparsed. N is a phantom type tag fixing which typed wrapper a
// caller expects Resolve to produce; nothing about N is read at runtime,
// matching rust-analyzer's `AstPtr<N>`.
type AstPointer[N AstNode] struct {
	Range span.Range
	Kind  SyntaxKind
}

// NewAstPointer builds a pointer from a live node.
func NewAstPointer[N AstNode](n *SyntaxNode) AstPointer[N] {
	return AstPointer[N]{Range: n.Range, Kind: n.Kind}
}

// Resolve finds the syntax node the pointer addresses within root. It
// returns nil if root does not contain a matching node, which happens
// when the pointer was produced against a different (stale) tree.
func (p AstPointer[N]) Resolve(root *SyntaxNode) *SyntaxNode {
	return root.FindAt(p.Range, p.Kind)
}

// SyntheticSyntax is a marker type for syntax-less elements. Nothing in
// this module uses it: HIR lowering marks synthesized elements (e.g. a
// missing expression filled in as an error placeholder) by setting
// Synthetic on their hir source-map entry instead.
type SyntheticSyntax struct{}
