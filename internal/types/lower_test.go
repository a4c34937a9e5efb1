package types_test

import (
	"testing"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

func parseType(t *testing.T, text string) *syntax.SyntaxNode {
	t.Helper()
	p := syntax.ParseEntrypoint(text, syntax.EntryType)
	if len(p.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics parsing %q: %v", text, p.Diagnostics)
	}
	return p.Root
}

func noStruct(string) (types.TyId, bool) { return 0, false }
func noAlias(string) (types.TyId, bool)  { return 0, false }

func TestLowerScalarTypes(t *testing.T) {
	store := types.NewStore()
	lo := types.NewLowerer(store, "f32", noStruct, noAlias)
	id := lo.LowerTypeRef(parseType(t, "f32"))
	if store.Get(id).Kind != types.KScalar || store.Get(id).Scalar != types.SF32 {
		t.Fatalf("expected f32 scalar, got %+v", store.Get(id))
	}
}

func TestLowerVectorAndMatrix(t *testing.T) {
	text := "mat4x4<f32>"
	store := types.NewStore()
	lo := types.NewLowerer(store, text, noStruct, noAlias)
	id := lo.LowerTypeRef(parseType(t, text))
	ty := store.Get(id)
	if ty.Kind != types.KMatrix || ty.Cols != 4 || ty.Rows != 4 {
		t.Fatalf("expected mat4x4, got %+v", ty)
	}
	if store.Get(ty.Elem).Scalar != types.SF32 {
		t.Fatalf("expected f32 element")
	}
}

func TestLowerArrayConstAndDynamic(t *testing.T) {
	store := types.NewStore()

	text1 := "array<u32, 4>"
	lo := types.NewLowerer(store, text1, noStruct, noAlias)
	id := lo.LowerTypeRef(parseType(t, text1))
	ty := store.Get(id)
	if ty.Kind != types.KArray || ty.ArrayLen.Dynamic || ty.ArrayLen.N != 4 {
		t.Fatalf("expected array<u32,4>, got %+v", ty)
	}

	text2 := "array<f32>"
	lo2 := types.NewLowerer(store, text2, noStruct, noAlias)
	id2 := lo2.LowerTypeRef(parseType(t, text2))
	ty2 := store.Get(id2)
	if !ty2.ArrayLen.Dynamic {
		t.Fatalf("expected dynamic array")
	}
}

func TestLowerPointerWithAddressSpaceAndAccess(t *testing.T) {
	text := "ptr<storage, f32, read_write>"
	store := types.NewStore()
	lo := types.NewLowerer(store, text, noStruct, noAlias)
	id := lo.LowerTypeRef(parseType(t, text))
	ty := store.Get(id)
	if ty.Kind != types.KPtr || ty.AddrSpace != "storage" || ty.Access != types.AccessReadWrite {
		t.Fatalf("expected ptr<storage,f32,read_write>, got %+v", ty)
	}
}

func TestLowerUnknownNameFallsBackToStruct(t *testing.T) {
	text := "Foo"
	store := types.NewStore()
	structId := store.Struct("Foo")
	lookupStruct := func(name string) (types.TyId, bool) {
		if name == "Foo" {
			return structId, true
		}
		return 0, false
	}
	lo := types.NewLowerer(store, text, lookupStruct, noAlias)
	id := lo.LowerTypeRef(parseType(t, text))
	if id != structId {
		t.Fatalf("expected resolution to the Foo struct type")
	}
}

func TestLowerTotallyUnknownNameIsError(t *testing.T) {
	text := "Bogus"
	store := types.NewStore()
	lo := types.NewLowerer(store, text, noStruct, noAlias)
	id := lo.LowerTypeRef(parseType(t, text))
	if !store.IsError(id) {
		t.Fatalf("expected Error for unresolvable type name")
	}
}
