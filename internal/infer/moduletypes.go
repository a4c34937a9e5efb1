// Package infer implements bidirectional type inference over a lowered
// function Body, including abstract-numeric literal promotion, builtin
// overload resolution, and the per-expression/per-statement inference
// rules. A single-pass Hindley-Milner-ish inferExpr/inferStmt recursion
// with a substitution-free "just compute the type" style, since WGSL has
// no user-level generics needing unification variables beyond
// abstract-numeric defaulting.
package infer

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/config"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

// FieldInfo is one struct member's name and lowered type.
type FieldInfo struct {
	Name string
	Ty   types.TyId
}

// StructInfo is a struct item's full field layout, used by field-access
// inference and struct constructor calls.
type StructInfo struct {
	Name   string
	TyId   types.TyId
	Fields []FieldInfo
}

// ModuleTypes is the whole-module type context inference needs beyond a
// single function body: struct field layouts, resolved type aliases, and
// lazily-computed global item types. Built once per module_info query
// result and shared across every function body's inference pass, a
// single long-lived type environment rather than rebuilding it per
// function.
type ModuleTypes struct {
	Store    *types.Store
	Lowerer  *types.Lowerer
	Text     string
	Module   *itemtree.ModuleInfo
	Structs  map[string]*StructInfo
	Aliases  map[string]types.TyId
	globals  map[itemtree.FileAstId]types.TyId
}

// BuildModuleTypes lowers every struct and type alias in module up front,
// so field-access and path-to-global-item lookups during expression
// inference are simple map reads instead of re-walking syntax.
func BuildModuleTypes(store *types.Store, text string, module *itemtree.ModuleInfo) *ModuleTypes {
	mt := &ModuleTypes{
		Store:   store,
		Text:    text,
		Module:  module,
		Structs: map[string]*StructInfo{},
		Aliases: map[string]types.TyId{},
		globals: map[itemtree.FileAstId]types.TyId{},
	}

	structTyIds := map[string]types.TyId{}
	for _, it := range module.ByKind(itemtree.ItemStruct) {
		n := module.AstIds.Node(it.Ast)
		s, ok := syntax.CastStructItem(n)
		if !ok || s.NameToken() == nil {
			continue
		}
		structTyIds[s.NameToken().Text(text)] = store.Struct(s.NameToken().Text(text))
	}
	lookupStruct := func(name string) (types.TyId, bool) { id, ok := structTyIds[name]; return id, ok }
	lookupAlias := func(name string) (types.TyId, bool) { id, ok := mt.Aliases[name]; return id, ok }
	lo := types.NewLowerer(store, text, lookupStruct, lookupAlias)
	mt.Lowerer = lo

	// Aliases may reference other aliases declared later in the file;
	// WGSL has no declaration-order requirement, so resolve to a
	// fixpoint over at most len(aliasItems)+1 passes (a cycle just stops
	// improving and leaves Error, which is absorbing downstream).
	aliasItems := module.ByKind(itemtree.ItemTypeAlias)
	for pass := 0; pass <= len(aliasItems); pass++ {
		for _, it := range aliasItems {
			n := module.AstIds.Node(it.Ast)
			a, ok := syntax.CastTypeAlias(n)
			if !ok || a.NameToken() == nil {
				continue
			}
			name := a.NameToken().Text(text)
			ty := lo.LowerTypeRef(a.TypeRef())
			if !store.IsError(ty) || pass == len(aliasItems) {
				mt.Aliases[name] = ty
			}
		}
	}

	for _, it := range module.ByKind(itemtree.ItemStruct) {
		n := module.AstIds.Node(it.Ast)
		s, ok := syntax.CastStructItem(n)
		if !ok || s.NameToken() == nil {
			continue
		}
		name := s.NameToken().Text(text)
		info := &StructInfo{Name: name, TyId: structTyIds[name]}
		for _, m := range s.Members() {
			mm, ok := syntax.CastStructMember(m)
			if !ok || mm.NameToken() == nil {
				continue
			}
			info.Fields = append(info.Fields, FieldInfo{
				Name: mm.NameToken().Text(text),
				Ty:   lo.LowerTypeRef(mm.TypeRef()),
			})
		}
		mt.Structs[name] = info
	}
	return mt
}

// StructTy returns the interned struct type for name, or Error.
func (mt *ModuleTypes) StructTy(name string) types.TyId {
	if info, ok := mt.Structs[name]; ok {
		return info.TyId
	}
	return mt.Store.Error()
}

// GlobalType lazily lowers a module-scope `var`/`const`/`override`'s
// declared type, wrapping `var` declarations in Ref: a module-scope
// variable is a memory location, not a bare value.
func (mt *ModuleTypes) GlobalType(id itemtree.FileAstId) types.TyId {
	if ty, ok := mt.globals[id]; ok {
		return ty
	}
	n := mt.Module.AstIds.Node(id)
	ty := mt.Store.Error()
	switch n.Kind {
	case syntax.KindGlobalVariableItem:
		gv, _ := syntax.CastGlobalVariable(n)
		inner := mt.Lowerer.LowerTypeRef(gv.TypeRef())
		addrspace := config.AddressSpacePrivate
		if tok := gv.AddressSpaceToken(); tok != nil {
			addrspace = tok.Text(mt.Text)
		}
		if !mt.Store.IsError(inner) {
			ty = mt.Store.Ref(addrspace, inner, defaultAccessFor(addrspace))
		}
	case syntax.KindGlobalConstantItem:
		gc, _ := syntax.CastGlobalConstant(n)
		ty = mt.Lowerer.LowerTypeRef(gc.TypeRef())
	case syntax.KindOverrideItem:
		ov, _ := syntax.CastOverride(n)
		ty = mt.Lowerer.LowerTypeRef(ov.TypeRef())
	}
	mt.globals[id] = ty
	return ty
}

func defaultAccessFor(addrspace string) types.AccessMode {
	switch addrspace {
	case config.AddressSpaceStorage, config.AddressSpaceUniform:
		return types.AccessRead
	default:
		return types.AccessReadWrite
	}
}
