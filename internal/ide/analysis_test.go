package ide_test

import (
	"strings"
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/ide"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
)

func offsetOf(text, needle string) span.Offset {
	i := strings.Index(text, needle)
	if i < 0 {
		panic("needle not found: " + needle)
	}
	return span.Offset(i)
}

func TestGotoDefinitionResolvesLocalBinding(t *testing.T) {
	text := `fn foo() -> i32 {
		let x = 1;
		return x;
	}`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	target, ok := a.GotoDefinition(offsetOf(text, "return x") + 7)
	if !ok {
		t.Fatalf("expected a definition for x")
	}
	if text[target.FocusRange.Start:target.FocusRange.End] != "x" {
		t.Fatalf("expected focus range to cover the binding name, got %q",
			text[target.FocusRange.Start:target.FocusRange.End])
	}
}

func TestGotoDefinitionResolvesFunctionCall(t *testing.T) {
	text := `fn helper() -> i32 { return 1; }
	fn main() -> i32 { return helper(); }`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	target, ok := a.GotoDefinition(offsetOf(text, "helper();"))
	if !ok {
		t.Fatalf("expected a definition for helper")
	}
	if text[target.FocusRange.Start:target.FocusRange.End] != "helper" {
		t.Fatalf("expected focus range on helper's name, got %q",
			text[target.FocusRange.Start:target.FocusRange.End])
	}
}

func TestHoverShowsExpressionType(t *testing.T) {
	text := `fn foo(a: u32) -> u32 {
		return a + 1u;
	}`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	res, ok := a.Hover(offsetOf(text, "a + 1u"))
	if !ok {
		t.Fatalf("expected a hover result")
	}
	if res.Text != "u32" {
		t.Fatalf("expected hover text u32, got %q", res.Text)
	}
}

func TestHoverFallsBackToDeclarationSignature(t *testing.T) {
	text := `struct Particle { pos: vec3<f32> }`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	res, ok := a.Hover(offsetOf(text, "Particle"))
	if !ok {
		t.Fatalf("expected a hover result for the struct declaration")
	}
	if !strings.Contains(res.Text, "struct Particle") {
		t.Fatalf("expected hover text to include the struct signature, got %q", res.Text)
	}
}

func TestCompletionsOfferFieldAccessMembers(t *testing.T) {
	text := `struct Particle { pos: vec3<f32>, vel: vec3<f32> }
	fn foo(p: Particle) -> vec3<f32> {
		return p.
	}`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	items := a.Completions(offsetOf(text, "return p.") + 9)
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	if !contains(labels, "pos") || !contains(labels, "vel") {
		t.Fatalf("expected pos/vel fields among completions, got %v", labels)
	}
}

func TestCompletionsOfferInScopeLocals(t *testing.T) {
	text := `fn foo() -> i32 {
		let counter = 1;
		return
	}`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	items := a.Completions(offsetOf(text, "return") + 6)
	var found bool
	for _, it := range items {
		if it.Label == "counter" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected counter among in-scope completions")
	}
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}

func TestInlayHintsAnnotateUntypedLet(t *testing.T) {
	text := `fn foo() -> u32 {
		let x = 1u;
		return x;
	}`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	hints := a.InlayHints()
	var found bool
	for _, h := range hints {
		if h.Kind == ide.HintType && h.Label == ": u32" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a u32 type hint among %+v", hints)
	}
}

func TestInlayHintsAnnotateCallArguments(t *testing.T) {
	text := `fn scale(value: f32, factor: f32) -> f32 { return value * factor; }
	fn main() -> f32 { return scale(1.0, 2.0); }`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	hints := a.InlayHints()
	var labels []string
	for _, h := range hints {
		if h.Kind == ide.HintParameter {
			labels = append(labels, h.Label)
		}
	}
	if !contains(labels, "value: ") || !contains(labels, "factor: ") {
		t.Fatalf("expected value/factor parameter hints, got %v", labels)
	}
}

func TestDiagnosticsIncludesTypeMismatch(t *testing.T) {
	text := `fn foo() -> i32 {
		return true;
	}`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	ds := a.Diagnostics()
	var found bool
	for _, d := range ds {
		if d.Code == diagnostics.CodeTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a type mismatch diagnostic, got %+v", ds)
	}
}

func TestDumpSyntaxTreeProducesValidShape(t *testing.T) {
	text := `fn foo() {}`
	a := ide.Analyze("t.wgsl", text, nil, nil)
	out := ide.DumpSyntaxTree(text, a.Root)
	if !strings.HasPrefix(out, `{"type":"Node"`) {
		t.Fatalf("expected a Node-shaped JSON root, got %q", out)
	}
	if !strings.Contains(out, `"kind":"FunctionItem"`) {
		t.Fatalf("expected a FunctionItem node in the dump, got %q", out)
	}
}
