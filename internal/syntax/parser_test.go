package syntax_test

import (
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

func TestParseFunctionItem(t *testing.T) {
	src := `fn add(a: f32, b: f32) -> f32 { return a + b; }`
	p := syntax.ParseFile(src)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics)
	}
	items := p.Root.ChildrenOfKind(syntax.KindFunctionItem)
	if len(items) != 1 {
		t.Fatalf("expected 1 function item, got %d", len(items))
	}
	fn, ok := syntax.CastFunction(items[0])
	if !ok {
		t.Fatalf("expected CastFunction to succeed")
	}
	if fn.NameToken() == nil || fn.NameToken().Text(src) != "add" {
		t.Fatalf("expected function name %q", "add")
	}
	if fn.ParamList() == nil {
		t.Fatalf("expected a param list")
	}
	if fn.Body() == nil {
		t.Fatalf("expected a body block")
	}
}

func TestParseStructWithAttributes(t *testing.T) {
	src := `struct Uniforms {
		@align(16) position: vec3<f32>,
		color: vec4<f32>,
	}`
	p := syntax.ParseFile(src)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics)
	}
	items := p.Root.ChildrenOfKind(syntax.KindStructItem)
	if len(items) != 1 {
		t.Fatalf("expected 1 struct item, got %d", len(items))
	}
	st, _ := syntax.CastStructItem(items[0])
	if st.NameToken().Text(src) != "Uniforms" {
		t.Fatalf("expected struct name Uniforms")
	}
	if len(st.Members()) != 2 {
		t.Fatalf("expected 2 members, got %d", len(st.Members()))
	}
}

func TestParseGlobalVariableWithAddressSpace(t *testing.T) {
	src := `@group(0) @binding(0) var<uniform> u: Uniforms;`
	p := syntax.ParseFile(src)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics)
	}
	items := p.Root.ChildrenOfKind(syntax.KindGlobalVariableItem)
	if len(items) != 1 {
		t.Fatalf("expected 1 global variable, got %d", len(items))
	}
	gv, _ := syntax.CastGlobalVariable(items[0])
	if gv.NameToken().Text(src) != "u" {
		t.Fatalf("expected variable name u, got %q", gv.NameToken().Text(src))
	}
	if gv.Attributes() == nil {
		t.Fatalf("expected attributes present")
	}
}

func TestParseControlFlowStatements(t *testing.T) {
	src := `fn f() {
		var i: i32 = 0;
		loop {
			if (i > 10) {
				break;
			}
			i = i + 1;
			continuing {
				i++;
			}
		}
	}`
	p := syntax.ParseFile(src)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics)
	}
}

func TestAstPointerResolvesAcrossIdenticalReparse(t *testing.T) {
	src := `fn add(a: f32, b: f32) -> f32 { return a + b; }`
	p1 := syntax.ParseFile(src)
	fnNode := p1.Root.ChildrenOfKind(syntax.KindFunctionItem)[0]
	ptr := syntax.NewAstPointer[syntax.Function](fnNode)

	p2 := syntax.ParseFile(src)
	resolved := ptr.Resolve(p2.Root)
	if resolved == nil {
		t.Fatalf("expected pointer to resolve against an identically-parsed tree")
	}
	if _, ok := syntax.CastFunction(resolved); !ok {
		t.Fatalf("expected resolved node to cast back to Function")
	}
}

func TestParseEntrypointExpression(t *testing.T) {
	p := syntax.ParseEntrypoint("1 + 2 * 3", syntax.EntryExpression)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics)
	}
	if p.Root.Kind != syntax.KindBinaryExpr {
		t.Fatalf("expected top-level binary expr, got %s", p.Root.Kind)
	}
}

func TestParseErrorRecoversAndReportsDiagnostic(t *testing.T) {
	src := `fn f() { let x = ; }`
	p := syntax.ParseFile(src)
	if len(p.Diagnostics) == 0 {
		t.Fatalf("expected a diagnostic for the missing initializer expression")
	}
}

func TestParseExplicitTypeConstructorCall(t *testing.T) {
	for _, src := range []string{
		"vec3<f32>(1.0, 2.0, 3.0)",
		"array<f32, 4>(1.0, 2.0, 3.0, 4.0)",
		"mat4x4<f32>(a, b, c, d)",
		"bitcast<f32>(x)",
	} {
		p := syntax.ParseEntrypoint(src, syntax.EntryExpression)
		if len(p.Diagnostics) != 0 {
			t.Fatalf("%s: unexpected diagnostics: %v", src, p.Diagnostics)
		}
		if p.Root.Kind != syntax.KindTypeCallExpr {
			t.Fatalf("%s: expected TypeCallExpr, got %s", src, p.Root.Kind)
		}
		if p.Root.FirstChildOfKind(syntax.KindTypeArgs) == nil {
			t.Fatalf("%s: expected a TypeArgs child", src)
		}
	}
}

func TestParseLessThanStillParsesAsComparison(t *testing.T) {
	p := syntax.ParseEntrypoint("a < b", syntax.EntryExpression)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics)
	}
	if p.Root.Kind != syntax.KindBinaryExpr {
		t.Fatalf("expected BinaryExpr for a plain comparison, got %s", p.Root.Kind)
	}
}

func TestParseLessThanGreaterThanWithoutCallStaysComparison(t *testing.T) {
	// Inside `(a < b)` the `<` could start a template argument list, but no
	// `>` closes it before the `)`, so it must stay a comparison, and the
	// outer `> c` is a second comparison rather than a malformed type-call.
	p := syntax.ParseEntrypoint("(a < b) > c", syntax.EntryExpression)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", p.Diagnostics)
	}
	if p.Root.Kind != syntax.KindBinaryExpr {
		t.Fatalf("expected BinaryExpr, got %s", p.Root.Kind)
	}
}
