package validate_test

import (
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/infer"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/validate"
)

func parse(t *testing.T, text string) (*syntax.SyntaxNode, *itemtree.ModuleInfo, *infer.ModuleTypes) {
	t.Helper()
	p := syntax.ParseFile(text)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", p.Diagnostics)
	}
	module := itemtree.Lower(p.Root)
	store := types.NewStore()
	mt := infer.BuildModuleTypes(store, text, module)
	return p.Root, module, mt
}

func hasCode(ds []diagnostics.Diagnostic, code diagnostics.Code) bool {
	for _, d := range ds {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestPrecedenceLintFlagsNestedComparison(t *testing.T) {
	root, _, _ := parse(t, `fn foo(a: i32, b: i32, c: i32) -> bool {
		return a < b == c;
	}`)
	ds := validate.PrecedenceLint(root)
	if !hasCode(ds, diagnostics.CodePrecedenceNeverNested) {
		t.Fatalf("expected NeverNested diagnostic, got %v", ds)
	}
}

func TestPrecedenceLintAllowsParenthesizedComparison(t *testing.T) {
	root, _, _ := parse(t, `fn foo(a: i32, b: i32, c: i32) -> bool {
		return (a < b) == c;
	}`)
	ds := validate.PrecedenceLint(root)
	if hasCode(ds, diagnostics.CodePrecedenceNeverNested) {
		t.Fatalf("expected no diagnostic for parenthesized comparison, got %v", ds)
	}
}

func TestPrecedenceLintFlagsMixedBitwiseFamilies(t *testing.T) {
	root, _, _ := parse(t, `fn foo(a: u32, b: u32, c: u32) -> u32 {
		return a & b | c;
	}`)
	ds := validate.PrecedenceLint(root)
	if !hasCode(ds, diagnostics.CodePrecedenceSequencesAllowed) {
		t.Fatalf("expected SequencesAllowed diagnostic, got %v", ds)
	}
}

func TestPrecedenceLintFlagsShiftMixedWithAdditive(t *testing.T) {
	root, _, _ := parse(t, `fn foo(a: u32, b: u32, c: u32) -> u32 {
		return a + b << c;
	}`)
	ds := validate.PrecedenceLint(root)
	if !hasCode(ds, diagnostics.CodePrecedenceSequencesAllowed) {
		t.Fatalf("expected SequencesAllowed diagnostic for shift/additive mix, got %v", ds)
	}
}

func TestAddressSpaceFunctionRejectedAtModuleScope(t *testing.T) {
	text := `var<function> x: i32;`
	_, module, mt := parse(t, text)
	ds := validate.ValidateAddressSpaces(text, module, mt)
	if !hasCode(ds, diagnostics.CodeAddressSpaceScope) {
		t.Fatalf("expected scope diagnostic, got %v", ds)
	}
}

func TestAddressSpaceUniformRequiresHostShareableType(t *testing.T) {
	text := `struct S { ok: u32 }
	@group(0) @binding(0) var<uniform> u: S;`
	_, module, mt := parse(t, text)
	ds := validate.ValidateAddressSpaces(text, module, mt)
	if hasCode(ds, diagnostics.CodeAddressSpaceType) {
		t.Fatalf("expected no diagnostic for a host-shareable uniform struct, got %v", ds)
	}
}

func TestAddressSpaceUniformRejectsBoolMember(t *testing.T) {
	text := `struct S { flag: bool }
	@group(0) @binding(0) var<uniform> u: S;`
	_, module, mt := parse(t, text)
	ds := validate.ValidateAddressSpaces(text, module, mt)
	if !hasCode(ds, diagnostics.CodeAddressSpaceType) {
		t.Fatalf("expected a type diagnostic for a bool-containing uniform struct, got %v", ds)
	}
}

func TestAddressSpaceWorkgroupRejectsRuntimeArray(t *testing.T) {
	text := `struct S { xs: array<f32> }
	var<workgroup> w: S;`
	_, module, mt := parse(t, text)
	ds := validate.ValidateAddressSpaces(text, module, mt)
	if !hasCode(ds, diagnostics.CodeAddressSpaceType) {
		t.Fatalf("expected a type diagnostic for a workgroup runtime array, got %v", ds)
	}
}

func TestAddressSpaceStorageAllowsTrailingRuntimeArray(t *testing.T) {
	text := `struct S { count: u32, xs: array<f32> }
	@group(0) @binding(0) var<storage, read> s: S;`
	_, module, mt := parse(t, text)
	ds := validate.ValidateAddressSpaces(text, module, mt)
	if hasCode(ds, diagnostics.CodeAddressSpaceType) {
		t.Fatalf("expected no diagnostic for a storage buffer's trailing runtime array, got %v", ds)
	}
}

func TestAddressSpaceHandleAcceptsSampler(t *testing.T) {
	text := `@group(0) @binding(0) var s: sampler;`
	_, module, mt := parse(t, text)
	ds := validate.ValidateAddressSpaces(text, module, mt)
	if hasCode(ds, diagnostics.CodeAddressSpaceType) {
		t.Fatalf("expected no diagnostic for a sampler global, got %v", ds)
	}
}

func TestDuplicateBindingDetected(t *testing.T) {
	text := `@group(0) @binding(0) var<uniform> a: i32;
	@group(0) @binding(0) var<uniform> b: i32;`
	_, module, _ := parse(t, text)
	ds := validate.ValidateBindingUniqueness(text, module)
	if !hasCode(ds, diagnostics.CodeDuplicateBinding) {
		t.Fatalf("expected a duplicate binding diagnostic, got %v", ds)
	}
}

func TestEntryPointMissingBuiltinAttribute(t *testing.T) {
	text := `@vertex
	fn main(x: f32) -> f32 {
		return x;
	}`
	_, module, _ := parse(t, text)
	ds := validate.ValidateEntryPointIO(text, module)
	if !hasCode(ds, diagnostics.CodeMissingBuiltinIO) {
		t.Fatalf("expected a missing-builtin-IO diagnostic, got %v", ds)
	}
}

func TestEntryPointWithLocationAttributeIsFine(t *testing.T) {
	text := `@fragment
	fn main(@location(0) x: f32) -> @location(0) f32 {
		return x;
	}`
	_, module, _ := parse(t, text)
	ds := validate.ValidateEntryPointIO(text, module)
	if hasCode(ds, diagnostics.CodeMissingBuiltinIO) {
		t.Fatalf("expected no diagnostic when @location is present, got %v", ds)
	}
}

func TestLayoutOfVec3IsAlign16Size12(t *testing.T) {
	_, _, mt := parse(t, ``)
	store := mt.Store
	vec3f := store.Vector(3, store.Scalar(types.SF32))
	l, ok := validate.ComputeLayout(store, mt, vec3f)
	if !ok || l.Align != 16 || l.Size != 12 {
		t.Fatalf("expected vec3<f32> layout {16,12}, got %+v ok=%v", l, ok)
	}
}

func TestLayoutOfStructRoundsUpOffsets(t *testing.T) {
	text := `struct S { a: f32, b: vec3<f32> }`
	_, _, mt := parse(t, text)
	info := mt.Structs["S"]
	l, offsets, ok := validate.ComputeStructLayout(mt.Store, mt, info)
	if !ok {
		t.Fatalf("expected struct S to have a layout")
	}
	if offsets[0] != 0 {
		t.Fatalf("expected field a at offset 0, got %d", offsets[0])
	}
	if offsets[1] != 16 {
		t.Fatalf("expected field b (vec3, align 16) at offset 16, got %d", offsets[1])
	}
	if l.Align != 16 || l.Size != 32 {
		t.Fatalf("expected struct layout {align:16, size:32}, got %+v", l)
	}
}
