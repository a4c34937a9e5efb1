package pipeline_test

import (
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/pipeline"
)

func runStandard(t *testing.T, text string) *pipeline.Context {
	t.Helper()
	p := pipeline.Standard(nil, nil)
	return p.Run(pipeline.NewContext("t.wgsl", text))
}

func TestStandardPipelineCleanFileHasNoErrors(t *testing.T) {
	ctx := runStandard(t, `fn foo() -> i32 { return 1; }`)
	if ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected no errors, got %+v", ctx.Diagnostics.Items())
	}
}

func TestStandardPipelineCollectsTypeMismatch(t *testing.T) {
	ctx := runStandard(t, `fn foo() -> i32 {
		return true;
	}`)
	var found bool
	for _, d := range ctx.Diagnostics.Items() {
		if d.Code == diagnostics.CodeTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a type mismatch diagnostic, got %+v", ctx.Diagnostics.Items())
	}
}

func TestStandardPipelineCollectsParseErrors(t *testing.T) {
	ctx := runStandard(t, `fn foo( -> i32 { return 1; }`)
	if !ctx.Diagnostics.HasErrors() {
		t.Fatalf("expected parse errors for malformed parameter list")
	}
}

func TestStandardPipelineStoresIntermediateResults(t *testing.T) {
	ctx := runStandard(t, `struct Particle { pos: vec3<f32> }`)
	if _, ok := ctx.Results[pipeline.ResultSyntaxTree]; !ok {
		t.Fatalf("expected the syntax tree to be stashed in Results")
	}
	if _, ok := ctx.Results[pipeline.ResultModule]; !ok {
		t.Fatalf("expected the item tree to be stashed in Results")
	}
}
