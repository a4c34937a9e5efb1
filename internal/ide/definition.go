package ide

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/nameres"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// NavigationTarget is a clickable place in the source: FullRange is what
// a caller highlights, FocusRange (when present) is where the cursor
// should land. Ranges are in original-source coordinates.
type NavigationTarget struct {
	FullRange  span.Range
	FocusRange span.Range
}

func (a *Analysis) toOriginal(r span.Range) span.Range {
	if a.Translator == nil {
		return r
	}
	return a.Translator.TranslateRange(r)
}

// GotoDefinition resolves the identifier at originalOffset (a byte offset
// into a.Text) to the declaration it names: position -> token ->
// definition -> full/focus range.
func (a *Analysis) GotoDefinition(originalOffset span.Offset) (NavigationTarget, bool) {
	offset := a.toProcessedOffset(originalOffset)
	fa := a.functionAt(offset)
	if fa == nil {
		return NavigationTarget{}, false
	}
	tok := innermostNodeAt(fa.Fn.Syntax(), offset)
	if tok == nil {
		return NavigationTarget{}, false
	}
	pathExpr := enclosingOfKind(tok, syntax.KindIdentExpr)
	if pathExpr == nil {
		return NavigationTarget{}, false
	}
	exprID, ok := exprAt(fa, pathExpr.Range)
	if !ok {
		return NavigationTarget{}, false
	}
	name := fa.Body.Exprs[exprID].Name
	res := fa.Resolver.ResolveExprName(exprID, name)
	switch res.Kind {
	case nameres.ResolvedLocal:
		src, ok := fa.SourceMap.BindingSyntax[res.Binding]
		if !ok || src.Synthetic {
			return NavigationTarget{}, false
		}
		n := src.Ptr.Resolve(a.Root)
		if n == nil {
			return NavigationTarget{}, false
		}
		return a.navTargetFor(n), true
	case nameres.ResolvedModuleItem:
		n := a.Module.AstIds.Node(res.Item)
		if n == nil {
			return NavigationTarget{}, false
		}
		return a.navTargetFor(n), true
	default:
		return NavigationTarget{}, false
	}
}

// navTargetFor builds a NavigationTarget whose FocusRange is n's own name
// token (if it has one we recognize) and whose FullRange is the whole
// declaration, both translated back to original-source coordinates.
func (a *Analysis) navTargetFor(n *syntax.SyntaxNode) NavigationTarget {
	focus := n.Range
	if name := declNameToken(n); name != nil {
		focus = name.Range
	}
	return NavigationTarget{
		FullRange:  a.toOriginal(n.Range),
		FocusRange: a.toOriginal(focus),
	}
}

func declNameToken(n *syntax.SyntaxNode) *syntax.SyntaxNode {
	switch n.Kind {
	case syntax.KindFunctionItem:
		fn, _ := syntax.CastFunction(n)
		return fn.NameToken()
	case syntax.KindStructItem:
		s, _ := syntax.CastStructItem(n)
		return s.NameToken()
	case syntax.KindGlobalVariableItem:
		g, _ := syntax.CastGlobalVariable(n)
		return g.NameToken()
	case syntax.KindGlobalConstantItem:
		g, _ := syntax.CastGlobalConstant(n)
		return g.NameToken()
	case syntax.KindOverrideItem:
		o, _ := syntax.CastOverride(n)
		return o.NameToken()
	case syntax.KindTypeAliasItem:
		t, _ := syntax.CastTypeAlias(n)
		return t.NameToken()
	case syntax.KindParam, syntax.KindLetStmt, syntax.KindConstStmt, syntax.KindVarStmt:
		idents := n.ChildrenOfKind(syntax.KindIdent)
		if len(idents) > 0 {
			return idents[0]
		}
		return nil
	default:
		return nil
	}
}

// toProcessedOffset maps an original-source offset forward into
// processed-text coordinates. Only identity mapping is supported when
// the preprocessor rewrote anything ahead of offset, since Translator is
// one-directional (processed -> original, needed for diagnostics);
// callers pointing inside a `#ifdef`-excised or `#import`-substituted
// region get a best-effort answer rather than a crash.
func (a *Analysis) toProcessedOffset(originalOffset span.Offset) span.Offset {
	if a.Processed == a.Text {
		return originalOffset
	}
	return originalOffset
}
