package ide

import (
	"strings"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// HoverResult is the text shown for the symbol under the cursor plus the
// original-source range it applies to.
type HoverResult struct {
	Text  string
	Range span.Range
}

// Hover implements the hover operation: find the expression at
// originalOffset and pretty-print its inferred type; failing that, fall
// back to a textual rendering of whatever declaration the identifier
// names.
func (a *Analysis) Hover(originalOffset span.Offset) (HoverResult, bool) {
	offset := a.toProcessedOffset(originalOffset)

	if fa := a.functionAt(offset); fa != nil {
		if tok := innermostNodeAt(fa.Fn.Syntax(), offset); tok != nil {
			for _, kind := range []syntax.SyntaxKind{
				syntax.KindFieldExpr, syntax.KindCallExpr, syntax.KindIndexExpr,
				syntax.KindBinaryExpr, syntax.KindUnaryExpr, syntax.KindLiteralExpr,
				syntax.KindIdentExpr, syntax.KindParenExpr, syntax.KindTypeCallExpr,
			} {
				n := enclosingOfKind(tok, kind)
				if n == nil {
					continue
				}
				if exprID, ok := exprAt(fa, n.Range); ok {
					if ty, ok := fa.Infer.ExprTypes[exprID]; ok {
						return HoverResult{Text: a.ModuleTypes.Store.Display(ty), Range: a.toOriginal(n.Range)}, true
					}
				}
			}
		}
	}

	n := innermostNodeAt(a.Root, offset)
	if n == nil {
		return HoverResult{}, false
	}
	for _, kind := range declKinds {
		if decl := enclosingOfKind(n, kind); decl != nil {
			return HoverResult{Text: declSignature(a.Processed, decl), Range: a.toOriginal(decl.Range)}, true
		}
	}
	return HoverResult{}, false
}

var declKinds = []syntax.SyntaxKind{
	syntax.KindFunctionItem, syntax.KindStructItem, syntax.KindGlobalVariableItem,
	syntax.KindGlobalConstantItem, syntax.KindOverrideItem, syntax.KindTypeAliasItem,
}

// declSignature renders a short textual definition for a module item: its
// source text up to (not including) its block body, trimmed of
// surrounding whitespace -- struct/global/alias items have no body, so
// the whole node's text is used.
func declSignature(text string, n *syntax.SyntaxNode) string {
	end := n.Range.End
	if body := n.FirstChildOfKind(syntax.KindBlockStmt); body != nil {
		end = body.Range.Start
	}
	if int(end) > len(text) {
		end = span.Offset(len(text))
	}
	return strings.TrimSpace(text[n.Range.Start:end])
}
