package ide

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/nameres"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// InlayHintKind distinguishes the two hint shapes this package produces.
type InlayHintKind int

const (
	HintType InlayHintKind = iota
	HintParameter
)

// InlayHint is one inline annotation: Label renders immediately after
// Position (a Type hint) or immediately before it (a Parameter hint) in
// the original source.
type InlayHint struct {
	Kind     InlayHintKind
	Position span.Offset
	Label    string
}

// InlayHints traverses every function body, emitting a Type hint at each
// `let`/`const`/`var` binding with no explicit type annotation and a
// Parameter hint at each argument of a call to a function declared in the
// module (builtins and type constructors get none).
func (a *Analysis) InlayHints() []InlayHint {
	var out []InlayHint
	for _, fa := range a.Functions {
		out = append(out, a.bindingHints(fa)...)
		out = append(out, a.callHints(fa)...)
	}
	return out
}

func (a *Analysis) bindingHints(fa *FunctionAnalysis) []InlayHint {
	var out []InlayHint
	for bid, b := range fa.Body.Bindings {
		if b.TypeRef != nil {
			continue
		}
		src, ok := fa.SourceMap.BindingSyntax[hir.BindingId(bid)]
		if !ok || src.Synthetic {
			continue
		}
		n := src.Ptr.Resolve(a.Root)
		if n == nil {
			continue
		}
		nameTok := n.FirstChildOfKind(syntax.KindIdent)
		pos := n.Range.End
		if nameTok != nil {
			pos = nameTok.Range.End
		}
		ty := fa.Infer.BindingTypes[hir.BindingId(bid)]
		out = append(out, InlayHint{
			Kind:     HintType,
			Position: a.toOriginal(span.NewRange(pos, pos)).Start,
			Label:    ": " + a.Store.Display(ty),
		})
	}
	return out
}

func (a *Analysis) callHints(fa *FunctionAnalysis) []InlayHint {
	var out []InlayHint
	for eid, e := range fa.Body.Exprs {
		if e.Kind != hir.ExprCall {
			continue
		}
		params := a.calleeParamNames(fa, hir.ExpressionId(eid), e)
		if params == nil {
			continue
		}
		for i, argID := range e.Args {
			if i >= len(params) || params[i] == "" {
				continue
			}
			src, ok := fa.SourceMap.ExprSyntax[argID]
			if !ok || src.Synthetic {
				continue
			}
			out = append(out, InlayHint{
				Kind:     HintParameter,
				Position: a.toOriginal(span.NewRange(src.Ptr.Range.Start, src.Ptr.Range.Start)).Start,
				Label:    params[i] + ": ",
			})
		}
	}
	return out
}

// calleeParamNames resolves a call's callee to a user-defined function
// and returns its parameter names, or nil when the callee is a builtin,
// a type constructor, or otherwise not found (no parameter hints for
// those -- their argument order is part of the language, not a choice a
// hint would clarify).
func (a *Analysis) calleeParamNames(fa *FunctionAnalysis, callID hir.ExpressionId, e hir.Expr) []string {
	callee := fa.Body.Exprs[e.Callee]
	if callee.Kind != hir.ExprPath {
		return nil
	}
	res := fa.Resolver.ResolveExprName(e.Callee, callee.Name)
	if res.Kind != nameres.ResolvedModuleItem {
		return nil
	}
	n := a.Module.AstIds.Node(res.Item)
	fn, ok := syntax.CastFunction(n)
	if !ok {
		return nil
	}
	pl := fn.ParamList()
	if pl == nil {
		return nil
	}
	var names []string
	for _, p := range pl.ChildrenOfKind(syntax.KindParam) {
		idents := p.ChildrenOfKind(syntax.KindIdent)
		if len(idents) == 0 {
			names = append(names, "")
			continue
		}
		names = append(names, idents[0].Text(a.Processed))
	}
	return names
}
