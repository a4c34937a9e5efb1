package itemtree_test

import (
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

const sample = `
struct Uniforms {
	color: vec4<f32>,
}

@group(0) @binding(0) var<uniform> u: Uniforms;

fn helper(x: f32) -> f32 {
	return x * 2.0;
}

fn main() -> f32 {
	return helper(1.0);
}
`

func TestLowerOrdersItemsBySource(t *testing.T) {
	p := syntax.ParseFile(sample)
	info := itemtree.Lower(p.Root)

	if len(info.Items) != 4 {
		t.Fatalf("expected 4 module items, got %d", len(info.Items))
	}
	wantKinds := []itemtree.ItemKind{
		itemtree.ItemStruct, itemtree.ItemGlobalVariable,
		itemtree.ItemFunction, itemtree.ItemFunction,
	}
	for i, want := range wantKinds {
		if info.Items[i].Kind != want {
			t.Fatalf("item %d: want kind %d, got %d", i, want, info.Items[i].Kind)
		}
	}
}

func TestFindFunctionByName(t *testing.T) {
	p := syntax.ParseFile(sample)
	info := itemtree.Lower(p.Root)

	id, ok := info.FindFunction(sample, "main")
	if !ok {
		t.Fatalf("expected to find function main")
	}
	node := info.AstIds.Node(id)
	fn, ok := syntax.CastFunction(node)
	if !ok || fn.NameToken().Text(sample) != "main" {
		t.Fatalf("expected resolved node to be function main")
	}

	if _, ok := info.FindFunction(sample, "missing"); ok {
		t.Fatalf("expected missing function lookup to fail")
	}
}

func TestAstIdMapPointerResolvesAfterReparse(t *testing.T) {
	p1 := syntax.ParseFile(sample)
	info := itemtree.Lower(p1.Root)

	helperID, ok := info.FindFunction(sample, "helper")
	if !ok {
		t.Fatalf("expected to find function helper")
	}
	ptr, ok := info.AstIds.Pointer(helperID)
	if !ok {
		t.Fatalf("expected a pointer for helper's FileAstId")
	}

	p2 := syntax.ParseFile(sample)
	resolved := ptr.Resolve(p2.Root)
	if resolved == nil {
		t.Fatalf("expected pointer to resolve against a fresh parse of identical text")
	}
}
