package hir_test

import (
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

func lowerFirstFunction(t *testing.T, text string) (*hir.Body, *hir.BodySourceMap) {
	t.Helper()
	p := syntax.ParseFile(text)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", p.Diagnostics)
	}
	items := p.Root.ChildrenOfKind(syntax.KindFunctionItem)
	if len(items) == 0 {
		t.Fatalf("expected at least one function")
	}
	fn, ok := syntax.CastFunction(items[0])
	if !ok {
		t.Fatalf("expected CastFunction to succeed")
	}
	return hir.LowerFunctionBody(text, fn)
}

func TestLowerSimpleArithmeticReturn(t *testing.T) {
	src := `fn add(a: f32, b: f32) -> f32 { return a + b; }`
	body, smap := lowerFirstFunction(t, src)

	if len(body.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(body.Params))
	}
	if body.Bindings[body.Params[0]].Name != "a" || body.Bindings[body.Params[1]].Name != "b" {
		t.Fatalf("unexpected param names: %+v", body.Bindings)
	}

	root := body.Stmts[body.RootBlock]
	if root.Kind != hir.StmtBlock || len(root.Stmts) != 1 {
		t.Fatalf("expected one statement in root block, got %+v", root)
	}
	ret := body.Stmts[root.Stmts[0]]
	if ret.Kind != hir.StmtReturn || !ret.Expr.Valid() {
		t.Fatalf("expected a return statement with an expression")
	}
	binExpr := body.Exprs[ret.Expr]
	if binExpr.Kind != hir.ExprBinary || binExpr.Op != syntax.KindPlus {
		t.Fatalf("expected a + binary expr, got %+v", binExpr)
	}
	if _, ok := smap.ExprSyntax[ret.Expr]; !ok {
		t.Fatalf("expected a source map entry for the return expression")
	}
}

func TestLowerParenStrippingDoesNotAllocateExtraNode(t *testing.T) {
	src := `fn f() -> f32 { return (1.0); }`
	body, _ := lowerFirstFunction(t, src)
	root := body.Stmts[body.RootBlock]
	ret := body.Stmts[root.Stmts[0]]
	lit := body.Exprs[ret.Expr]
	if lit.Kind != hir.ExprLiteral {
		t.Fatalf("expected parens stripped down to the literal, got %+v", lit)
	}
}

func TestLowerVarDeclarationAndAssignment(t *testing.T) {
	src := `fn f() {
		var x: i32 = 0;
		x = x + 1;
	}`
	body, _ := lowerFirstFunction(t, src)
	root := body.Stmts[body.RootBlock]
	if len(root.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(root.Stmts))
	}
	declStmt := body.Stmts[root.Stmts[0]]
	if declStmt.Kind != hir.StmtVar {
		t.Fatalf("expected a var statement")
	}
	binding := body.Bindings[declStmt.Binding]
	if binding.Name != "x" || !binding.Mutable {
		t.Fatalf("expected mutable binding x, got %+v", binding)
	}

	assign := body.Stmts[root.Stmts[1]]
	if assign.Kind != hir.StmtAssignment {
		t.Fatalf("expected an assignment statement")
	}
	lhs := body.Exprs[assign.Lhs]
	if lhs.Kind != hir.ExprPath || lhs.Name != "x" {
		t.Fatalf("expected assignment target x, got %+v", lhs)
	}
}

func TestLowerMissingInitializerProducesSyntheticExpr(t *testing.T) {
	src := `fn f() { let x = ; }`
	p := syntax.ParseFile(src)
	if len(p.Diagnostics) == 0 {
		t.Fatalf("expected a parse diagnostic for the missing initializer")
	}
	fn, _ := syntax.CastFunction(p.Root.ChildrenOfKind(syntax.KindFunctionItem)[0])
	body, smap := hir.LowerFunctionBody(src, fn)

	root := body.Stmts[body.RootBlock]
	letStmt := body.Stmts[root.Stmts[0]]
	binding := body.Bindings[letStmt.Binding]
	if body.Exprs[binding.Init].Kind != hir.ExprMissing {
		t.Fatalf("expected missing initializer to lower to ExprMissing")
	}
	src2 := smap.ExprSyntax[binding.Init]
	if !src2.Synthetic {
		t.Fatalf("expected the missing initializer's source to be marked synthetic")
	}
}

func TestWalkChildExpressionsVisitsCallArguments(t *testing.T) {
	src := `fn f() -> f32 { return helper(1.0, 2.0); }`
	body, _ := lowerFirstFunction(t, src)
	root := body.Stmts[body.RootBlock]
	ret := body.Stmts[root.Stmts[0]]
	call := body.Exprs[ret.Expr]
	if call.Kind != hir.ExprCall || len(call.Args) != 2 {
		t.Fatalf("expected a call with 2 args, got %+v", call)
	}

	var visited []hir.ExpressionId
	body.WalkChildExpressions(ret.Expr, func(id hir.ExpressionId) { visited = append(visited, id) })
	if len(visited) != 3 { // callee + 2 args
		t.Fatalf("expected 3 visited children (callee + 2 args), got %d", len(visited))
	}
}

func TestLowerExplicitTypeConstructorCall(t *testing.T) {
	src := `fn f() -> vec3<f32> { return vec3<f32>(1.0, 2.0, 3.0); }`
	body, _ := lowerFirstFunction(t, src)
	root := body.Stmts[body.RootBlock]
	ret := body.Stmts[root.Stmts[0]]
	call := body.Exprs[ret.Expr]
	if call.Kind != hir.ExprCall {
		t.Fatalf("expected ExprCall, got %v", call.Kind)
	}
	if call.TemplateArgs == nil {
		t.Fatalf("expected TemplateArgs to be populated for an explicit-type constructor call")
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 constructor args, got %d", len(call.Args))
	}
	if body.Exprs[call.Callee].Kind != hir.ExprPath || body.Exprs[call.Callee].Name != "vec3" {
		t.Fatalf("expected callee path named vec3, got %+v", body.Exprs[call.Callee])
	}
}

func TestLowerBitcastExpr(t *testing.T) {
	src := `fn f(x: u32) -> f32 { return bitcast<f32>(x); }`
	body, _ := lowerFirstFunction(t, src)
	root := body.Stmts[body.RootBlock]
	ret := body.Stmts[root.Stmts[0]]
	bc := body.Exprs[ret.Expr]
	if bc.Kind != hir.ExprBitcast {
		t.Fatalf("expected ExprBitcast, got %v", bc.Kind)
	}
	if bc.BitcastTarget == nil {
		t.Fatalf("expected a BitcastTarget type node")
	}
	if body.Exprs[bc.Operand].Kind != hir.ExprPath || body.Exprs[bc.Operand].Name != "x" {
		t.Fatalf("expected operand to lower to path x, got %+v", body.Exprs[bc.Operand])
	}
}
