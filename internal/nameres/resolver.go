package nameres

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// ResolutionKind discriminates what a name resolved to.
type ResolutionKind int

const (
	Unresolved ResolutionKind = iota
	ResolvedLocal
	ResolvedModuleItem
	ResolvedBuiltin
)

type Resolution struct {
	Kind    ResolutionKind
	Binding hir.BindingId    // ResolvedLocal
	Item    itemtree.FileAstId // ResolvedModuleItem
	ItemKind itemtree.ItemKind // ResolvedModuleItem
}

// Resolver is the newest-first lookup stack: expression scopes
// (innermost first), then module-level items, then builtins. Built once
// per function body and reused for every name lookup inside it, a
// single long-lived symbol table scoped to one body instead of a whole
// program.
type Resolver struct {
	text     string
	module   *itemtree.ModuleInfo
	scopes   *ExprScopes
	body     *hir.Body
	builtins map[string]bool
}

func NewResolver(text string, module *itemtree.ModuleInfo, scopes *ExprScopes, body *hir.Body, builtins map[string]bool) *Resolver {
	return &Resolver{text: text, module: module, scopes: scopes, body: body, builtins: builtins}
}

// ResolveExprName resolves the name referenced by a path expression at
// exprID: walk expression scopes from innermost outward, then module
// items, then builtins.
func (r *Resolver) ResolveExprName(exprID hir.ExpressionId, name string) Resolution {
	for scope := r.scopes.ScopeOfExpr(exprID); scope.Valid(); scope = r.scopes.Parent(scope) {
		if b, ok := r.scopes.Lookup(scope, name); ok {
			return Resolution{Kind: ResolvedLocal, Binding: b}
		}
	}
	if res, ok := r.resolveModuleItem(name); ok {
		return res
	}
	if r.builtins[name] {
		return Resolution{Kind: ResolvedBuiltin}
	}
	return Resolution{Kind: Unresolved}
}

func (r *Resolver) resolveModuleItem(name string) (Resolution, bool) {
	if r.module == nil {
		return Resolution{}, false
	}
	if id, ok := r.module.FindFunction(r.text, name); ok {
		return Resolution{Kind: ResolvedModuleItem, Item: id, ItemKind: itemtree.ItemFunction}, true
	}
	for _, kind := range []itemtree.ItemKind{
		itemtree.ItemStruct, itemtree.ItemGlobalVariable, itemtree.ItemGlobalConstant,
		itemtree.ItemOverride, itemtree.ItemTypeAlias,
	} {
		for _, it := range r.module.ByKind(kind) {
			n := r.module.AstIds.Node(it.Ast)
			if nameTok := itemNameToken(n); nameTok != nil && nameTok.Text(r.text) == name {
				return Resolution{Kind: ResolvedModuleItem, Item: it.Ast, ItemKind: kind}, true
			}
		}
	}
	return Resolution{}, false
}

func itemNameToken(n *syntax.SyntaxNode) *syntax.SyntaxNode {
	switch n.Kind {
	case syntax.KindStructItem:
		s, _ := syntax.CastStructItem(n)
		return s.NameToken()
	case syntax.KindGlobalVariableItem:
		g, _ := syntax.CastGlobalVariable(n)
		return g.NameToken()
	case syntax.KindGlobalConstantItem:
		g, _ := syntax.CastGlobalConstant(n)
		return g.NameToken()
	case syntax.KindOverrideItem:
		o, _ := syntax.CastOverride(n)
		return o.NameToken()
	case syntax.KindTypeAliasItem:
		t, _ := syntax.CastTypeAlias(n)
		return t.NameToken()
	default:
		return nil
	}
}

// BuiltinNames is the default set of WGSL builtin function names the
// resolver falls back to when nothing in scope or the module matches.
// Not exhaustive -- a representative subset spanning math, vector
// construction, derivatives and texture sampling, matching the WGSL
// builtin catalogue used for overload resolution.
var BuiltinNames = map[string]bool{
	"abs": true, "min": true, "max": true, "clamp": true, "mix": true,
	"sin": true, "cos": true, "tan": true, "sqrt": true, "pow": true,
	"floor": true, "ceil": true, "round": true, "fract": true,
	"dot": true, "cross": true, "normalize": true, "length": true, "distance": true,
	"reflect": true, "refract": true,
	"vec2": true, "vec3": true, "vec4": true,
	"mat2x2": true, "mat3x3": true, "mat4x4": true,
	"array": true,
	"select": true, "all": true, "any": true,
	"textureSample": true, "textureLoad": true, "textureStore": true, "textureDimensions": true,
	"dpdx": true, "dpdy": true, "fwidth": true,
	"atomicLoad": true, "atomicStore": true, "atomicAdd": true,
	"arrayLength": true,
	"bitcast": true,
}
