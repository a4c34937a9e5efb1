package infer

import (
	"strings"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/config"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/nameres"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

// Result is the output of inferring one function body: a type for every
// expression and binding it contains, plus any diagnostics raised along
// the way.
type Result struct {
	ExprTypes    map[hir.ExpressionId]types.TyId
	BindingTypes map[hir.BindingId]types.TyId
	ReturnType   types.TyId
	Diagnostics  []diagnostics.Diagnostic
}

// Checker holds everything one InferBody call needs: the type store,
// the module-wide struct/alias/global context, the body being checked,
// and the resolver built for that same body by name resolution.
type Checker struct {
	store        *types.Store
	text         string
	moduleTypes  *ModuleTypes
	resolver     *nameres.Resolver
	body         *hir.Body
	smap         *hir.BodySourceMap
	declaredRet  types.TyId
	result       *Result
}

// InferBody type-checks fn's already-lowered body, returning a type for
// every expression and binding. declaredReturnType should come from
// lowering fn's own return TypeRef (Error if fn returns nothing).
func InferBody(store *types.Store, text string, mt *ModuleTypes, resolver *nameres.Resolver, body *hir.Body, smap *hir.BodySourceMap, declaredReturnType types.TyId) *Result {
	c := &Checker{
		store:       store,
		text:        text,
		moduleTypes: mt,
		resolver:    resolver,
		body:        body,
		smap:        smap,
		declaredRet: declaredReturnType,
		result: &Result{
			ExprTypes:    map[hir.ExpressionId]types.TyId{},
			BindingTypes: map[hir.BindingId]types.TyId{},
			ReturnType:   declaredReturnType,
		},
	}
	for _, pid := range body.Params {
		b := body.Bindings[pid]
		ty := store.Error()
		if b.TypeRef != nil {
			ty = mt.Lowerer.LowerTypeRef(b.TypeRef)
		}
		c.result.BindingTypes[pid] = ty
	}
	if body.RootBlock.Valid() {
		c.inferStmt(body.RootBlock)
	}
	return c.result
}

// ---- diagnostics helpers ----

func (c *Checker) rangeOfExpr(id hir.ExpressionId) span.Range {
	if src, ok := c.smap.ExprSyntax[id]; ok && !src.Synthetic {
		return src.Ptr.Range
	}
	return span.Range{}
}

func (c *Checker) reportMismatch(id hir.ExpressionId, what string, got, want types.TyId) {
	c.result.Diagnostics = append(c.result.Diagnostics, diagnostics.NewError(
		diagnostics.CodeTypeMismatch, c.rangeOfExpr(id),
		"%s: expected %s, found %s", what, c.store.Display(want), c.store.Display(got)))
}

func (c *Checker) reportMismatchSingle(id hir.ExpressionId, what string, got types.TyId) {
	c.result.Diagnostics = append(c.result.Diagnostics, diagnostics.NewError(
		diagnostics.CodeTypeMismatch, c.rangeOfExpr(id),
		"%s: found %s", what, c.store.Display(got)))
}

func (c *Checker) reportUnresolved(id hir.ExpressionId, name string) {
	c.result.Diagnostics = append(c.result.Diagnostics, diagnostics.NewError(
		diagnostics.CodeUnresolvedName, c.rangeOfExpr(id), "cannot find %q in this scope", name))
}

func (c *Checker) reportNoOverload(id hir.ExpressionId, name string) {
	c.result.Diagnostics = append(c.result.Diagnostics, diagnostics.NewError(
		diagnostics.CodeNoBuiltinOverload, c.rangeOfExpr(id), "no overload of %q matches these arguments", name))
}

// ---- scalar classification ----

func coercible(abstractKind, concrete types.ScalarKind) bool {
	switch abstractKind {
	case types.SAbstractInt:
		return concrete == types.SI32 || concrete == types.SU32 || concrete == types.SF32 || concrete == types.SF16
	case types.SAbstractFloat:
		return concrete == types.SF32 || concrete == types.SF16
	default:
		return false
	}
}

func (c *Checker) isBoolish(id types.TyId) bool {
	t := c.store.Get(id)
	if t.Kind == types.KScalar {
		return t.Scalar == types.SBool
	}
	if t.Kind == types.KVector {
		return c.store.Get(t.Elem).Scalar == types.SBool
	}
	return false
}

func (c *Checker) isIntegerish(id types.TyId) bool {
	t := c.store.Get(id)
	if t.Kind == types.KScalar {
		return t.Scalar.IsInteger()
	}
	if t.Kind == types.KVector {
		return c.store.Get(t.Elem).Scalar.IsInteger()
	}
	return false
}

// loadValue implements WGSL's implicit load-through-reference: almost
// every expression context other than assignment targets and
// address-of sees a reference's pointee value, not the reference
// itself (the Field rule produces Ref, but `a.x + 10u` still needs to
// type as u32).
func (c *Checker) loadValue(ty types.TyId) types.TyId {
	t := c.store.Get(ty)
	if t.Kind == types.KRef {
		return t.Elem
	}
	return ty
}

func (c *Checker) boolLike(id types.TyId) types.TyId {
	t := c.store.Get(id)
	if t.Kind == types.KVector {
		return c.store.Vector(t.VecSize, c.store.Scalar(types.SBool))
	}
	return c.store.Scalar(types.SBool)
}

// unify finds the common type two operand types coerce to, per WGSL's
// abstract-numeric promotion rules: an abstract scalar takes on
// whichever concrete scalar it's paired against, and two abstracts
// combine by widening AbstractInt into AbstractFloat if either side is
// already float-shaped. Error on either side absorbs.
func (c *Checker) unify(a, b types.TyId) (types.TyId, bool) {
	if c.store.IsError(a) {
		return b, true
	}
	if c.store.IsError(b) {
		return a, true
	}
	if a == b {
		return a, true
	}
	ta, tb := c.store.Get(a), c.store.Get(b)
	if ta.Kind == types.KScalar && tb.Kind == types.KScalar {
		switch {
		case ta.Scalar.IsAbstract() && !tb.Scalar.IsAbstract() && coercible(ta.Scalar, tb.Scalar):
			return b, true
		case tb.Scalar.IsAbstract() && !ta.Scalar.IsAbstract() && coercible(tb.Scalar, ta.Scalar):
			return a, true
		case ta.Scalar.IsAbstract() && tb.Scalar.IsAbstract():
			if ta.Scalar == types.SAbstractFloat || tb.Scalar == types.SAbstractFloat {
				return c.store.Scalar(types.SAbstractFloat), true
			}
			return a, true
		}
		return a, false
	}
	if ta.Kind == types.KVector && tb.Kind == types.KVector && ta.VecSize == tb.VecSize {
		if elem, ok := c.unify(ta.Elem, tb.Elem); ok {
			return c.store.Vector(ta.VecSize, elem), true
		}
	}
	if ta.Kind == types.KMatrix && tb.Kind == types.KMatrix && ta.Cols == tb.Cols && ta.Rows == tb.Rows {
		if elem, ok := c.unify(ta.Elem, tb.Elem); ok {
			return c.store.Matrix(ta.Cols, ta.Rows, elem), true
		}
	}
	return a, false
}

// coerceTree recursively retypes an abstract-numeric expression subtree
// down to target: an abstract literal is coerced to that concrete type
// recursively through its producing expression tree. Stops at any node
// whose current type isn't an abstract scalar,
// since a concrete-typed operand (e.g. an `f32` variable mixed into the
// same addition) defines its own type rather than inheriting the
// sibling's.
func (c *Checker) coerceTree(id hir.ExpressionId, target types.TyId) {
	if !id.Valid() {
		return
	}
	cur, ok := c.result.ExprTypes[id]
	if !ok {
		return
	}
	curTy := c.store.Get(cur)
	if curTy.Kind != types.KScalar || !curTy.Scalar.IsAbstract() {
		return
	}
	c.result.ExprTypes[id] = target
	e := c.body.Exprs[id]
	switch e.Kind {
	case hir.ExprBinary:
		c.coerceTree(e.Lhs, target)
		c.coerceTree(e.Rhs, target)
	case hir.ExprUnary:
		c.coerceTree(e.Operand, target)
	}
}

func (c *Checker) finalizeAbstract(id types.TyId) types.TyId {
	t := c.store.Get(id)
	if t.Kind != types.KScalar {
		return id
	}
	switch t.Scalar {
	case types.SAbstractInt:
		return c.store.Scalar(types.SI32)
	case types.SAbstractFloat:
		return c.store.Scalar(types.SF32)
	default:
		return id
	}
}

// ---- expression inference ----

func (c *Checker) inferExpr(id hir.ExpressionId) types.TyId {
	if !id.Valid() {
		return c.store.Error()
	}
	if t, ok := c.result.ExprTypes[id]; ok {
		return t
	}
	e := c.body.Exprs[id]
	var ty types.TyId
	switch e.Kind {
	case hir.ExprMissing:
		ty = c.store.Error()
	case hir.ExprLiteral:
		ty = c.inferLiteral(e.Literal)
	case hir.ExprPath:
		ty = c.inferPath(id, e.Name)
	case hir.ExprUnary:
		ty = c.inferUnary(e)
	case hir.ExprBinary:
		ty = c.inferBinary(id, e)
	case hir.ExprCall:
		ty = c.inferCall(id, e)
	case hir.ExprField:
		ty = c.inferField(e)
	case hir.ExprIndex:
		ty = c.inferIndex(e)
	case hir.ExprBitcast:
		ty = c.inferBitcast(e)
	default:
		ty = c.store.Error()
	}
	c.result.ExprTypes[id] = ty
	return ty
}

func (c *Checker) inferLiteral(lit hir.Literal) types.TyId {
	switch lit.Kind {
	case hir.LiteralBool:
		return c.store.Scalar(types.SBool)
	case hir.LiteralInt:
		switch {
		case strings.HasSuffix(lit.Text, "u"):
			return c.store.Scalar(types.SU32)
		case strings.HasSuffix(lit.Text, "i"):
			return c.store.Scalar(types.SI32)
		default:
			return c.store.Scalar(types.SAbstractInt)
		}
	case hir.LiteralFloat:
		switch {
		case strings.HasSuffix(lit.Text, "f"):
			return c.store.Scalar(types.SF32)
		case strings.HasSuffix(lit.Text, "h"):
			return c.store.Scalar(types.SF16)
		default:
			return c.store.Scalar(types.SAbstractFloat)
		}
	default:
		return c.store.Error()
	}
}

func (c *Checker) inferPath(exprID hir.ExpressionId, name string) types.TyId {
	res := c.resolver.ResolveExprName(exprID, name)
	switch res.Kind {
	case nameres.ResolvedLocal:
		if ty, ok := c.result.BindingTypes[res.Binding]; ok {
			return ty
		}
		return c.store.Error()
	case nameres.ResolvedModuleItem:
		switch res.ItemKind {
		case itemtree.ItemGlobalVariable, itemtree.ItemGlobalConstant, itemtree.ItemOverride:
			return c.moduleTypes.GlobalType(res.Item)
		case itemtree.ItemStruct:
			return c.moduleTypes.StructTy(name)
		default:
			return c.store.Error()
		}
	case nameres.ResolvedBuiltin:
		return c.store.BuiltinFn(name)
	default:
		c.reportUnresolved(exprID, name)
		return c.store.Error()
	}
}

func (c *Checker) inferUnary(e hir.Expr) types.TyId {
	operandTy := c.inferExpr(e.Operand)
	if c.store.IsError(operandTy) {
		return c.store.Error()
	}
	t := c.store.Get(operandTy)
	switch e.Op {
	case syntax.KindMinus:
		return c.loadValue(operandTy)
	case syntax.KindBang:
		loaded := c.loadValue(operandTy)
		if !c.isBoolish(loaded) {
			c.reportMismatchSingle(e.Operand, "! requires bool", operandTy)
			return c.store.Error()
		}
		return loaded
	case syntax.KindTilde:
		loaded := c.loadValue(operandTy)
		if !c.isIntegerish(loaded) {
			c.reportMismatchSingle(e.Operand, "~ requires an integer", operandTy)
			return c.store.Error()
		}
		return loaded
	case syntax.KindStar:
		if t.Kind == types.KPtr {
			return c.store.Ref(t.AddrSpace, t.Elem, t.Access)
		}
		c.reportMismatchSingle(e.Operand, "* requires a pointer", operandTy)
		return c.store.Error()
	case syntax.KindAmp:
		if t.Kind == types.KRef {
			return c.store.Ptr(t.AddrSpace, t.Elem, t.Access)
		}
		c.reportMismatchSingle(e.Operand, "& requires a reference", operandTy)
		return c.store.Error()
	default:
		return c.store.Error()
	}
}

var comparisonOps = map[syntax.SyntaxKind]bool{
	syntax.KindEqEq: true, syntax.KindNotEq: true,
	syntax.KindLt: true, syntax.KindLe: true, syntax.KindGt: true, syntax.KindGe: true,
}

var bitwiseOps = map[syntax.SyntaxKind]bool{
	syntax.KindAmp: true, syntax.KindPipe: true, syntax.KindCaret: true,
	syntax.KindShl: true, syntax.KindShr: true,
}

func (c *Checker) inferBinary(id hir.ExpressionId, e hir.Expr) types.TyId {
	lhsTy := c.loadValue(c.inferExpr(e.Lhs))
	rhsTy := c.loadValue(c.inferExpr(e.Rhs))
	if c.store.IsError(lhsTy) || c.store.IsError(rhsTy) {
		return c.store.Error()
	}

	switch {
	case e.Op == syntax.KindAmpAmp || e.Op == syntax.KindPipePipe:
		if !c.isBoolish(lhsTy) || !c.isBoolish(rhsTy) {
			c.reportMismatch(id, "&&/|| require bool operands", lhsTy, rhsTy)
			return c.store.Error()
		}
		return c.store.Scalar(types.SBool)

	case comparisonOps[e.Op]:
		result, ok := c.unify(lhsTy, rhsTy)
		if !ok {
			c.reportMismatch(id, "comparison operands must match", lhsTy, rhsTy)
			return c.store.Error()
		}
		c.coerceTree(e.Lhs, result)
		c.coerceTree(e.Rhs, result)
		return c.boolLike(result)

	case bitwiseOps[e.Op]:
		result, ok := c.unify(lhsTy, rhsTy)
		if !ok || !c.isIntegerish(result) {
			c.reportMismatch(id, "bitwise/shift operands must be integers", lhsTy, rhsTy)
			return c.store.Error()
		}
		c.coerceTree(e.Lhs, result)
		c.coerceTree(e.Rhs, result)
		return result

	default: // + - * / %
		result, ok := c.unify(lhsTy, rhsTy)
		if !ok {
			c.reportMismatch(id, "arithmetic operands must match", lhsTy, rhsTy)
			return c.store.Error()
		}
		c.coerceTree(e.Lhs, result)
		c.coerceTree(e.Rhs, result)
		return result
	}
}

func (c *Checker) inferField(e hir.Expr) types.TyId {
	baseTy := c.inferExpr(e.Base)
	if c.store.IsError(baseTy) {
		return c.store.Error()
	}
	base := c.store.Get(baseTy)
	if base.Kind == types.KRef {
		inner := c.store.Get(base.Elem)
		switch inner.Kind {
		case types.KStruct:
			return c.fieldOfStruct(inner, e.FieldName, base.AddrSpace, base.Access)
		case types.KVector:
			return c.swizzle(inner, e.FieldName)
		}
		return c.store.Error()
	}
	switch base.Kind {
	case types.KStruct:
		return c.fieldOfStruct(base, e.FieldName, config.AddressSpaceFunction, types.AccessReadWrite)
	case types.KVector:
		return c.swizzle(base, e.FieldName)
	default:
		return c.store.Error()
	}
}

// fieldOfStruct implements "Field on Struct -> Ref": a struct member
// access always yields a reference to the field's declared type,
// carrying the address space/access of whatever the struct itself lived
// in.
func (c *Checker) fieldOfStruct(structTy types.Ty, field, addrspace string, access types.AccessMode) types.TyId {
	info := c.moduleTypes.Structs[structTy.StructName]
	if info == nil {
		return c.store.Error()
	}
	for _, f := range info.Fields {
		if f.Name == field {
			return c.store.Ref(addrspace, f.Ty, access)
		}
	}
	return c.store.Error()
}

var swizzleIndex = map[byte]int{'x': 0, 'y': 1, 'z': 2, 'w': 3, 'r': 0, 'g': 1, 'b': 2, 'a': 3}

// swizzle implements "Field on Vector -> derived": a single-letter
// swizzle yields the element type, a multi-letter one a vector of that
// length.
func (c *Checker) swizzle(vec types.Ty, field string) types.TyId {
	if len(field) == 0 || len(field) > 4 {
		return c.store.Error()
	}
	for i := 0; i < len(field); i++ {
		if _, ok := swizzleIndex[field[i]]; !ok {
			return c.store.Error()
		}
	}
	if len(field) == 1 {
		return vec.Elem
	}
	return c.store.Vector(len(field), vec.Elem)
}

func (c *Checker) inferIndex(e hir.Expr) types.TyId {
	baseTy := c.inferExpr(e.Base)
	idxTy := c.loadValue(c.inferExpr(e.Index))
	if !c.store.IsError(idxTy) && !c.isIntegerish(idxTy) {
		c.reportMismatchSingle(e.Index, "index must be an integer", idxTy)
	}
	if c.store.IsError(baseTy) {
		return c.store.Error()
	}
	base := c.store.Get(baseTy)
	if base.Kind == types.KRef || base.Kind == types.KPtr {
		base = c.store.Get(base.Elem)
	}
	switch base.Kind {
	case types.KArray, types.KVector:
		return base.Elem
	case types.KMatrix:
		return c.store.Vector(base.Rows, base.Elem)
	default:
		return c.store.Error()
	}
}

// inferBitcast infers bitcast<T>(x): the operand is checked for its own
// diagnostics but contributes nothing to the result type, which is always
// the explicit target type T.
func (c *Checker) inferBitcast(e hir.Expr) types.TyId {
	c.loadValue(c.inferExpr(e.Operand))
	return c.moduleTypes.Lowerer.LowerTypeRef(e.BitcastTarget)
}
