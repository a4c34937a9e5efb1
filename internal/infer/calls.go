package infer

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/nameres"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

// inferCall dispatches a call expression to a user function, a struct
// constructor, a type-conversion constructor (f32(x), vec3(...)), a
// type-alias constructor, or a builtin, covering the Call variants
// (Name/Type/InferredComponentVec/InferredComponentMatrix).
func (c *Checker) inferCall(id hir.ExpressionId, e hir.Expr) types.TyId {
	calleeExpr := c.body.Exprs[e.Callee]
	if calleeExpr.Kind != hir.ExprPath {
		return c.store.Error()
	}
	name := calleeExpr.Name

	argTys := make([]types.TyId, len(e.Args))
	for i, a := range e.Args {
		argTys[i] = c.loadValue(c.inferExpr(a))
	}

	if e.TemplateArgs != nil {
		target := c.moduleTypes.Lowerer.LowerTypeRef(e.TemplateArgs)
		return c.constructFromType(id, target, e.Args, argTys)
	}

	res := c.resolver.ResolveExprName(e.Callee, name)
	switch res.Kind {
	case nameres.ResolvedModuleItem:
		switch res.ItemKind {
		case itemtree.ItemFunction:
			return c.inferFunctionCall(id, res.Item, e.Args, argTys)
		case itemtree.ItemStruct:
			return c.inferStructConstruct(id, name, e.Args, argTys)
		case itemtree.ItemTypeAlias:
			return c.constructFromType(id, c.moduleTypes.Aliases[name], e.Args, argTys)
		default:
			return c.store.Error()
		}
	case nameres.ResolvedBuiltin:
		if ty, ok := c.tryTypeConstructorName(name); ok {
			return c.constructFromType(id, ty, e.Args, argTys)
		}
		return c.inferBuiltinCall(id, name, e.Args, argTys)
	default:
		if ty, ok := c.tryTypeConstructorName(name); ok {
			return c.constructFromType(id, ty, e.Args, argTys)
		}
		c.reportUnresolved(e.Callee, name)
		return c.store.Error()
	}
}

// tryTypeConstructorName recognizes a bare scalar/vector/matrix type
// name used as a constructor callee, the "Call with Type" variant.
func (c *Checker) tryTypeConstructorName(name string) (types.TyId, bool) {
	if sk, ok := types.ScalarByName(name); ok {
		return c.store.Scalar(sk), true
	}
	if size, ok := types.VecSize(name); ok {
		// Bare "vecN" with no <T>: element type is inferred from the call
		// site's arguments (spec's InferredComponentVec), represented here
		// with an Error placeholder the caller fills in from argTys.
		return c.store.Vector(size, c.store.Error()), true
	}
	if cols, rows, ok := types.MatSize(name); ok {
		return c.store.Matrix(cols, rows, c.store.Error()), true
	}
	return 0, false
}

// constructFromType validates/coerces constructor arguments against a
// (possibly only partially known, for bare vecN/matCxR) target
// constructor type and returns the concrete constructed type.
func (c *Checker) constructFromType(callID hir.ExpressionId, target types.TyId, args []hir.ExpressionId, argTys []types.TyId) types.TyId {
	if c.store.IsError(target) {
		return c.store.Error()
	}
	t := c.store.Get(target)
	switch t.Kind {
	case types.KScalar:
		if len(args) == 1 {
			c.coerceArg(callID, args[0], argTys[0], target)
		}
		return target

	case types.KVector:
		elem := t.Elem
		if c.store.IsError(elem) {
			elem = c.inferredComponentType(argTys)
		}
		for i, a := range args {
			argTy := argTys[i]
			at := c.store.Get(argTy)
			if at.Kind == types.KVector {
				// copy-construct / concatenation from sub-vectors: just
				// require the element families line up.
				c.coerceArg(callID, a, at.Elem, elem)
				continue
			}
			c.coerceArg(callID, a, argTy, elem)
		}
		return c.store.Vector(t.VecSize, elem)

	case types.KMatrix:
		elem := t.Elem
		if c.store.IsError(elem) {
			elem = c.inferredComponentType(argTys)
		}
		for i, a := range args {
			c.coerceArg(callID, a, argTys[i], elem)
		}
		return c.store.Matrix(t.Cols, t.Rows, elem)

	case types.KArray:
		elem := t.Elem
		for i, a := range args {
			c.coerceArg(callID, a, argTys[i], elem)
		}
		n := t.ArrayLen
		if n.Dynamic {
			n = types.ArrayLen{N: uint64(len(args))}
		}
		return c.store.Array(elem, n)

	case types.KStruct:
		return c.inferStructConstruct(callID, t.StructName, args, argTys)

	default:
		return target
	}
}

// inferredComponentType picks the element scalar type for a bare
// vecN(...)/matCxR(...) constructor call from its arguments: the first
// non-error scalar or vector-element type found, finalizing any
// abstract numeric to its default concrete type since no outer
// expectation is available here.
func (c *Checker) inferredComponentType(argTys []types.TyId) types.TyId {
	for _, a := range argTys {
		if c.store.IsError(a) {
			continue
		}
		t := c.store.Get(a)
		if t.Kind == types.KScalar {
			return c.finalizeAbstract(a)
		}
		if t.Kind == types.KVector {
			return c.finalizeAbstract(t.Elem)
		}
	}
	return c.store.Scalar(types.SF32)
}

func (c *Checker) coerceArg(callID hir.ExpressionId, argID hir.ExpressionId, argTy, target types.TyId) {
	if c.store.IsError(argTy) || c.store.IsError(target) {
		return
	}
	if argTy == target {
		return
	}
	result, ok := c.unify(argTy, target)
	if !ok {
		c.reportMismatch(callID, "argument type", argTy, target)
		return
	}
	c.coerceTree(argID, result)
}

func (c *Checker) inferStructConstruct(callID hir.ExpressionId, name string, args []hir.ExpressionId, argTys []types.TyId) types.TyId {
	info := c.moduleTypes.Structs[name]
	if info == nil {
		return c.store.Error()
	}
	for i := range args {
		if i < len(info.Fields) {
			c.coerceArg(callID, args[i], argTys[i], info.Fields[i].Ty)
		}
	}
	return info.TyId
}

func (c *Checker) inferFunctionCall(callID hir.ExpressionId, fnID itemtree.FileAstId, args []hir.ExpressionId, argTys []types.TyId) types.TyId {
	n := c.moduleTypes.Module.AstIds.Node(fnID)
	fn, ok := syntax.CastFunction(n)
	if !ok {
		return c.store.Error()
	}
	var paramTys []types.TyId
	if pl := fn.ParamList(); pl != nil {
		for _, p := range pl.ChildrenOfKind(syntax.KindParam) {
			paramTys = append(paramTys, c.moduleTypes.Lowerer.LowerTypeRef(p.FirstChildOfKind(syntax.KindTypeRef)))
		}
	}
	for i := range args {
		if i < len(paramTys) {
			c.coerceArg(callID, args[i], argTys[i], paramTys[i])
		}
	}
	if ret := fn.ReturnType(); ret != nil {
		return c.moduleTypes.Lowerer.LowerTypeRef(ret)
	}
	return c.store.Error()
}

// mathUnary is builtins whose result type is simply their (sole,
// numeric) argument's type.
var mathUnary = map[string]bool{
	"abs": true, "sin": true, "cos": true, "tan": true, "sqrt": true,
	"floor": true, "ceil": true, "round": true, "fract": true,
	"normalize": true, "dpdx": true, "dpdy": true, "fwidth": true,
}

// mathSameType is builtins whose arguments must all unify to one common
// type, which is also the result type.
var mathSameType = map[string]bool{
	"min": true, "max": true, "pow": true, "clamp": true, "mix": true,
	"reflect": true, "select": true,
}

func (c *Checker) inferBuiltinCall(id hir.ExpressionId, name string, args []hir.ExpressionId, argTys []types.TyId) types.TyId {
	switch {
	case mathUnary[name]:
		if len(argTys) != 1 {
			c.reportNoOverload(id, name)
			return c.store.Error()
		}
		return argTys[0]

	case mathSameType[name]:
		if len(argTys) == 0 {
			c.reportNoOverload(id, name)
			return c.store.Error()
		}
		result := argTys[0]
		for _, a := range argTys[1:] {
			var ok bool
			result, ok = c.unify(result, a)
			if !ok {
				c.reportNoOverload(id, name)
				return c.store.Error()
			}
		}
		for i, a := range args {
			c.coerceTreeToArg(a, argTys[i], result)
		}
		if name == "select" {
			return result
		}
		return result

	case name == "dot":
		if len(argTys) != 2 {
			c.reportNoOverload(id, name)
			return c.store.Error()
		}
		result, ok := c.unify(argTys[0], argTys[1])
		if !ok {
			c.reportNoOverload(id, name)
			return c.store.Error()
		}
		t := c.store.Get(result)
		if t.Kind == types.KVector {
			return t.Elem
		}
		return result

	case name == "cross":
		if len(argTys) != 2 {
			c.reportNoOverload(id, name)
			return c.store.Error()
		}
		result, ok := c.unify(argTys[0], argTys[1])
		if !ok {
			c.reportNoOverload(id, name)
			return c.store.Error()
		}
		return result

	case name == "length" || name == "distance":
		if len(argTys) == 0 {
			c.reportNoOverload(id, name)
			return c.store.Error()
		}
		base := argTys[0]
		if name == "distance" && len(argTys) > 1 {
			var ok bool
			base, ok = c.unify(argTys[0], argTys[1])
			if !ok {
				c.reportNoOverload(id, name)
				return c.store.Error()
			}
		}
		t := c.store.Get(base)
		if t.Kind == types.KVector {
			return t.Elem
		}
		return base

	case name == "refract":
		if len(argTys) == 0 {
			c.reportNoOverload(id, name)
			return c.store.Error()
		}
		return argTys[0]

	case name == "all" || name == "any":
		return c.store.Scalar(types.SBool)

	case name == "arrayLength":
		return c.store.Scalar(types.SU32)

	case name == "atomicLoad":
		if len(argTys) != 1 {
			return c.store.Error()
		}
		t := c.store.Get(argTys[0])
		if t.Kind == types.KPtr {
			inner := c.store.Get(t.Elem)
			if inner.Kind == types.KAtomic {
				return inner.Elem
			}
		}
		return c.store.Error()

	case name == "atomicStore":
		return c.store.Error() // void

	case name == "atomicAdd":
		if len(argTys) != 2 {
			return c.store.Error()
		}
		t := c.store.Get(argTys[0])
		if t.Kind == types.KPtr {
			inner := c.store.Get(t.Elem)
			if inner.Kind == types.KAtomic {
				return inner.Elem
			}
		}
		return c.store.Error()

	case name == "textureDimensions":
		return c.store.Vector(2, c.store.Scalar(types.SU32))

	case name == "textureSample", name == "textureLoad":
		return c.store.Vector(4, c.store.Scalar(types.SF32))

	case name == "textureStore":
		return c.store.Error() // void

	default:
		c.reportNoOverload(id, name)
		return c.store.Error()
	}
}

// coerceTreeToArg coerces one call argument's expression tree down to
// result if its inferred type is abstract (used after unify()-ing a
// whole argument list to their common type, e.g. clamp(1, 2.0, x)).
func (c *Checker) coerceTreeToArg(argID hir.ExpressionId, argTy, result types.TyId) {
	if argTy == result {
		return
	}
	c.coerceTree(argID, result)
}
