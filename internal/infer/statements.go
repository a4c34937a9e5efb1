package infer

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/config"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/nameres"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

// inferStmt implements the statement inference rules: Let/Const/Variable,
// Assignment l-value checks, If/While/BreakIf condition==Bool, Return,
// For, Switch scrutinee==IntegerScalar.
func (c *Checker) inferStmt(id hir.StatementId) {
	if !id.Valid() {
		return
	}
	s := c.body.Stmts[id]
	switch s.Kind {
	case hir.StmtBlock:
		for _, sid := range s.Stmts {
			c.inferStmt(sid)
		}
	case hir.StmtLet, hir.StmtConst, hir.StmtVar:
		c.inferDecl(s)
	case hir.StmtReturn:
		c.inferReturn(s)
	case hir.StmtIf:
		c.checkBool(s.Cond)
		c.inferStmt(s.Then)
		c.inferStmt(s.Else)
	case hir.StmtFor:
		c.inferStmt(s.Init)
		if s.Cond.Valid() {
			c.checkBool(s.Cond)
		}
		c.inferStmt(s.Post)
		c.inferStmt(s.Body)
	case hir.StmtWhile:
		c.checkBool(s.Cond)
		c.inferStmt(s.Body)
	case hir.StmtLoop:
		c.inferStmt(s.Body)
		c.inferStmt(s.Continuing)
	case hir.StmtSwitch:
		c.inferSwitch(s)
	case hir.StmtBreakIf:
		c.checkBool(s.Expr)
	case hir.StmtAssignment:
		c.inferAssignment(s)
	case hir.StmtCompoundAssignment:
		c.inferExpr(s.Lhs)
		c.inferExpr(s.Rhs)
		c.checkLValue(s.Lhs)
	case hir.StmtIncrDecr:
		c.inferExpr(s.Lhs)
		c.checkLValue(s.Lhs)
	case hir.StmtPhonyAssignment:
		c.inferExpr(s.Rhs)
	case hir.StmtExpr:
		if s.Expr.Valid() {
			c.inferExpr(s.Expr)
		}
	case hir.StmtConstAssert:
		if s.AssertExpr.Valid() {
			c.checkBool(s.AssertExpr)
		}
	case hir.StmtDiscard, hir.StmtBreak, hir.StmtContinue:
		// No expressions to type.
	}
}

func (c *Checker) checkBool(exprID hir.ExpressionId) {
	if !exprID.Valid() {
		return
	}
	ty := c.loadValue(c.inferExpr(exprID))
	if !c.store.IsError(ty) && !c.isBoolish(ty) {
		c.reportMismatchSingle(exprID, "condition must be bool", ty)
	}
}

func (c *Checker) inferSwitch(s hir.Stmt) {
	subjTy := c.loadValue(c.inferExpr(s.Subject))
	if !c.store.IsError(subjTy) && !c.isIntegerish(subjTy) {
		c.reportMismatchSingle(s.Subject, "switch selector must be an integer", subjTy)
	}
	for _, cs := range s.Cases {
		for _, sel := range cs.Selectors {
			c.inferExpr(sel)
		}
		c.inferStmt(cs.Body)
	}
}

func (c *Checker) inferReturn(s hir.Stmt) {
	if !s.Expr.Valid() {
		return
	}
	retTy := c.loadValue(c.inferExpr(s.Expr))
	if c.store.IsError(c.declaredRet) || c.store.IsError(retTy) {
		return
	}
	result, ok := c.unify(retTy, c.declaredRet)
	if !ok {
		c.reportMismatch(s.Expr, "return value", retTy, c.declaredRet)
		return
	}
	c.coerceTree(s.Expr, result)
}

func (c *Checker) inferAssignment(s hir.Stmt) {
	rhsTy := c.loadValue(c.inferExpr(s.Rhs))
	lhsTy := c.inferExpr(s.Lhs)
	c.checkLValue(s.Lhs)
	if c.store.IsError(lhsTy) || c.store.IsError(rhsTy) {
		return
	}
	target := lhsTy
	if lt := c.store.Get(lhsTy); lt.Kind == types.KRef {
		target = lt.Elem
	}
	result, ok := c.unify(rhsTy, target)
	if !ok {
		c.reportMismatch(s.Rhs, "assignment", rhsTy, target)
		return
	}
	c.coerceTree(s.Rhs, result)
}

// checkLValue requires an assignment/increment target to resolve to a
// mutable (`var`) binding or a field/index chain rooted in one. This is
// implied by Ref's access mode rather than enumerated explicitly, so it's
// a light structural check rather than a full memory-view analysis.
func (c *Checker) checkLValue(exprID hir.ExpressionId) {
	if !exprID.Valid() {
		return
	}
	e := c.body.Exprs[exprID]
	switch e.Kind {
	case hir.ExprPath:
		res := c.resolver.ResolveExprName(exprID, e.Name)
		if res.Kind == nameres.ResolvedLocal {
			b := c.body.Bindings[res.Binding]
			if !b.Mutable {
				c.reportMismatchSingle(exprID, "cannot assign to an immutable binding", c.result.BindingTypes[res.Binding])
			}
		}
	case hir.ExprField:
		c.checkLValue(e.Base)
	case hir.ExprIndex:
		c.checkLValue(e.Base)
	case hir.ExprUnary:
		// `*ptr = x` assigns through a dereferenced pointer.
	}
}

func (c *Checker) inferDecl(s hir.Stmt) {
	b := c.body.Bindings[s.Binding]
	var ty types.TyId
	switch {
	case b.TypeRef != nil:
		ty = c.moduleTypes.Lowerer.LowerTypeRef(b.TypeRef)
		if b.Init.Valid() {
			initTy := c.loadValue(c.inferExpr(b.Init))
			if !c.store.IsError(initTy) && !c.store.IsError(ty) {
				result, ok := c.unify(initTy, ty)
				if !ok {
					c.reportMismatch(b.Init, "initializer", initTy, ty)
				} else {
					c.coerceTree(b.Init, result)
				}
			}
		}
	case b.Init.Valid():
		initTy := c.loadValue(c.inferExpr(b.Init))
		ty = c.finalizeAbstract(initTy)
		if ty != initTy {
			c.coerceTree(b.Init, ty)
		}
	default:
		ty = c.store.Error()
	}
	if s.Kind == hir.StmtVar {
		ty = c.store.Ref(addressSpaceOf(s), ty, types.AccessReadWrite)
	}
	c.result.BindingTypes[s.Binding] = ty
}

// addressSpaceOf returns the address space a function-local `var`
// binding lives in -- always "function", since only module-scope `var`
// declarations may carry an explicit address space.
func addressSpaceOf(hir.Stmt) string { return config.AddressSpaceFunction }
