package ide

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// innermostNodeAt returns the deepest node in n's subtree whose range
// contains offset, preferring a later child when offset sits exactly on
// a boundary between two siblings (so a cursor right after an identifier
// still lands on that identifier, not on what follows it).
func innermostNodeAt(n *syntax.SyntaxNode, offset span.Offset) *syntax.SyntaxNode {
	if n == nil || !containsOffset(n.Range, offset) {
		return nil
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if found := innermostNodeAt(n.Children[i], offset); found != nil {
			return found
		}
	}
	return n
}

func containsOffset(r span.Range, offset span.Offset) bool {
	return offset >= r.Start && offset <= r.End
}

// enclosingOfKind walks n's Parent chain for the nearest ancestor (or n
// itself) of kind -- turning "the token under the cursor" into "the
// expression/item it belongs to".
func enclosingOfKind(n *syntax.SyntaxNode, kind syntax.SyntaxKind) *syntax.SyntaxNode {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind == kind {
			return cur
		}
	}
	return nil
}
