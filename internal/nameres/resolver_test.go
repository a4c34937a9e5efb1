package nameres_test

import (
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/nameres"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

func setup(t *testing.T, text string) (*hir.Body, *nameres.ExprScopes, *itemtree.ModuleInfo) {
	t.Helper()
	p := syntax.ParseFile(text)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics)
	}
	module := itemtree.Lower(p.Root)
	fnID, ok := module.FindFunction(text, "f")
	if !ok {
		t.Fatalf("expected function f")
	}
	fn, _ := syntax.CastFunction(module.AstIds.Node(fnID))
	body, _ := hir.LowerFunctionBody(text, fn)
	scopes := nameres.BuildExprScopes(body)
	return body, scopes, module
}

func findExprByName(body *hir.Body, name string) hir.ExpressionId {
	for i, e := range body.Exprs {
		if e.Kind == hir.ExprPath && e.Name == name {
			return hir.ExpressionId(i)
		}
	}
	return hir.ExpressionId(^uint32(0))
}

func TestResolveLocalShadowsOuter(t *testing.T) {
	text := `fn f(x: f32) -> f32 {
		let x = 2.0;
		return x;
	}`
	body, scopes, module := setup(t, text)
	r := nameres.NewResolver(text, module, scopes, body, nameres.BuiltinNames)

	// There are two bindings named "x" but only one ExprPath: the let
	// initializer isn't one (2.0 is a literal), only the final `return x;`
	// is, so this is unambiguous.
	exprID := findExprByName(body, "x")
	res := r.ResolveExprName(exprID, "x")
	if res.Kind != nameres.ResolvedLocal {
		t.Fatalf("expected x to resolve locally, got %+v", res)
	}
	binding := body.Bindings[res.Binding]
	if binding.Name != "x" {
		t.Fatalf("expected resolved binding named x")
	}
	// Confirm it resolved to the `let x = 2.0` binding, not the parameter:
	// that binding's Init must be valid (the param's Init is noExpr).
	if !binding.Init.Valid() {
		t.Fatalf("expected resolution to the inner let (which has an initializer), got the parameter")
	}
}

func TestResolveModuleFunctionCall(t *testing.T) {
	text := `fn helper(a: f32) -> f32 { return a; }
	fn f() -> f32 { return helper(1.0); }`
	body, scopes, module := setup(t, text)
	r := nameres.NewResolver(text, module, scopes, body, nameres.BuiltinNames)

	exprID := findExprByName(body, "helper")
	res := r.ResolveExprName(exprID, "helper")
	if res.Kind != nameres.ResolvedModuleItem || res.ItemKind != itemtree.ItemFunction {
		t.Fatalf("expected helper to resolve as a module function, got %+v", res)
	}
}

func TestResolveBuiltinFallback(t *testing.T) {
	text := `fn f(v: f32) -> f32 { return sqrt(v); }`
	body, scopes, module := setup(t, text)
	r := nameres.NewResolver(text, module, scopes, body, nameres.BuiltinNames)

	exprID := findExprByName(body, "sqrt")
	res := r.ResolveExprName(exprID, "sqrt")
	if res.Kind != nameres.ResolvedBuiltin {
		t.Fatalf("expected sqrt to resolve as a builtin, got %+v", res)
	}
}

func TestUnresolvedName(t *testing.T) {
	text := `fn f() -> f32 { return doesNotExist(); }`
	body, scopes, module := setup(t, text)
	r := nameres.NewResolver(text, module, scopes, body, nameres.BuiltinNames)

	exprID := findExprByName(body, "doesNotExist")
	res := r.ResolveExprName(exprID, "doesNotExist")
	if res.Kind != nameres.Unresolved {
		t.Fatalf("expected doesNotExist to be unresolved, got %+v", res)
	}
}

func TestForLoopVariableScopedToLoop(t *testing.T) {
	text := `fn f() -> f32 {
		for (var i: i32 = 0; i < 10; i++) {
		}
		return 0.0;
	}`
	body, scopes, module := setup(t, text)
	r := nameres.NewResolver(text, module, scopes, body, nameres.BuiltinNames)

	exprID := findExprByName(body, "i")
	res := r.ResolveExprName(exprID, "i")
	if res.Kind != nameres.ResolvedLocal {
		t.Fatalf("expected loop variable i to resolve locally inside the loop, got %+v", res)
	}
}
