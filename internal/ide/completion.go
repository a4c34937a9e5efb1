package ide

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/nameres"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

// ImmediateLocation classifies the cursor's syntactic context: what facet
// of completion items applies depends on whether the cursor sits right
// after a `.`, inside a statement, or inside a general expression.
type ImmediateLocation int

const (
	LocUnknown ImmediateLocation = iota
	LocFieldAccess
	LocStatement
	LocExpression
)

// CompletionItem is one candidate offered at the cursor.
type CompletionItem struct {
	Label  string
	Detail string // pretty-printed type, or a short kind tag for builtins/items
}

// swizzleLetters are the two accepted component-naming conventions;
// mixing them within one swizzle is invalid WGSL but both sets are
// offered since either is a legal *start*.
var swizzleLetters = [2]string{"xyzw", "rgba"}

// ClassifyLocation implements the first half of the completion
// operation: what syntactic position does offset sit in. The base
// expression is only meaningful for LocFieldAccess.
func (a *Analysis) ClassifyLocation(fa *FunctionAnalysis, offset span.Offset) (ImmediateLocation, hir.ExpressionId) {
	if base, ok := fieldAccessBase(fa, offset); ok {
		return LocFieldAccess, base
	}
	if _, ok := innermostEnclosingStmt(fa, offset); ok {
		return LocStatement, 0
	}
	return LocExpression, 0
}

// Completions implements the completion operation: classify the
// cursor's ImmediateLocation, then build items from the facet that
// location calls for.
func (a *Analysis) Completions(originalOffset span.Offset) []CompletionItem {
	offset := a.toProcessedOffset(originalOffset)
	fa := a.functionAt(offset)
	if fa == nil {
		return nil
	}

	loc, base := a.ClassifyLocation(fa, offset)
	if loc == LocFieldAccess {
		return a.fieldAccessCompletions(fa, base)
	}
	return a.inScopeCompletions(fa, offset)
}

// fieldAccessBase reports whether offset sits immediately after a `.` in
// a FieldExpr, returning the base expression whose members/swizzle
// components should be offered.
func fieldAccessBase(fa *FunctionAnalysis, offset span.Offset) (hir.ExpressionId, bool) {
	tok := innermostNodeAt(fa.Fn.Syntax(), offset)
	if tok == nil {
		return 0, false
	}
	field := enclosingOfKind(tok, syntax.KindFieldExpr)
	if field == nil {
		return 0, false
	}
	if exprID, ok := exprAt(fa, field.Range); ok {
		return fa.Body.Exprs[exprID].Base, true
	}
	return 0, false
}

func (a *Analysis) fieldAccessCompletions(fa *FunctionAnalysis, base hir.ExpressionId) []CompletionItem {
	baseTy, ok := fa.Infer.ExprTypes[base]
	if !ok {
		return nil
	}
	t := a.Store.Get(baseTy)
	if t.Kind == types.KRef {
		t = a.Store.Get(t.Elem)
	}
	switch t.Kind {
	case types.KStruct:
		info, ok := a.ModuleTypes.Structs[t.StructName]
		if !ok {
			return nil
		}
		out := make([]CompletionItem, 0, len(info.Fields))
		for _, f := range info.Fields {
			out = append(out, CompletionItem{Label: f.Name, Detail: a.Store.Display(f.Ty)})
		}
		return out
	case types.KVector:
		var out []CompletionItem
		elemDetail := a.Store.Display(t.Elem)
		for _, letters := range swizzleLetters {
			for i := 0; i < t.VecSize; i++ {
				out = append(out, CompletionItem{Label: string(letters[i]), Detail: elemDetail})
			}
		}
		return out
	default:
		return nil
	}
}

// inScopeCompletions offers every binding visible at offset (locals
// innermost-first, then module-level functions, then builtins), covering both
// LocStatement and LocExpression -- WGSL's grammar doesn't otherwise
// narrow which names are legal at a given point the way e.g. a type
// position would.
func (a *Analysis) inScopeCompletions(fa *FunctionAnalysis, offset span.Offset) []CompletionItem {
	stmt, _ := innermostEnclosingStmt(fa, offset)
	scope := fa.Scopes.ScopeOfStmt(stmt)

	seen := map[string]bool{}
	var out []CompletionItem
	for s := scope; s.Valid(); s = fa.Scopes.Parent(s) {
		for name, binding := range fa.Scopes.Entries(s) {
			if seen[name] {
				continue
			}
			seen[name] = true
			ty := fa.Infer.BindingTypes[binding]
			out = append(out, CompletionItem{Label: name, Detail: a.Store.Display(ty)})
		}
	}

	for _, it := range a.Module.ByKind(itemtree.ItemFunction) {
		n := a.Module.AstIds.Node(it.Ast)
		fn, ok := syntax.CastFunction(n)
		if !ok || fn.NameToken() == nil {
			continue
		}
		name := fn.NameToken().Text(a.Processed)
		if !seen[name] {
			seen[name] = true
			out = append(out, CompletionItem{Label: name, Detail: "fn"})
		}
	}
	for name := range nameres.BuiltinNames {
		if !seen[name] {
			seen[name] = true
			out = append(out, CompletionItem{Label: name, Detail: "builtin"})
		}
	}
	return out
}

// innermostEnclosingStmt finds the smallest statement range containing
// offset, since ExprScopes keys by statement id rather than by byte
// range. ok is false when offset falls outside every recorded statement
// (e.g. inside the function's parameter list).
func innermostEnclosingStmt(fa *FunctionAnalysis, offset span.Offset) (id hir.StatementId, ok bool) {
	var bestRange span.Range
	for sid, src := range fa.SourceMap.StmtSyntax {
		if src.Synthetic || !containsOffset(src.Ptr.Range, offset) {
			continue
		}
		if !ok || rangeSize(src.Ptr.Range) < rangeSize(bestRange) {
			id, bestRange, ok = sid, src.Ptr.Range, true
		}
	}
	return id, ok
}

func rangeSize(r span.Range) span.Offset { return r.End - r.Start }
