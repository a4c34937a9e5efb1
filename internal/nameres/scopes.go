// Package nameres builds lexical scopes over a lowered hir.Body
// (ExprScopes) and the newest-first shadowing Resolver stack (builtin
// names, then module items, then expression scopes from innermost to
// outermost).
//
// A Prelude/Global/Function/Block scope stack is the direct model for
// Resolver's level stack, generalized from a single mutable symbol
// table to an immutable ExprScopes tree built once per body plus a
// stateless Resolver that walks it, since this analyzer must answer
// "what was in scope at node N" for many different N's against the same
// body rather than one linear pass.
package nameres

import "github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"

type ScopeId uint32

const noScope = ScopeId(^uint32(0))

func (id ScopeId) Valid() bool { return id != noScope }

type scopeEntry struct {
	name    string
	binding hir.BindingId
}

type scopeData struct {
	parent  ScopeId
	entries []scopeEntry
}

// ExprScopes is the scope tree for one function body: every expression
// and statement is mapped to the scope that was active at that point,
// and each `let`/`const`/`var` introduces a brand-new child scope from
// that point onward -- so two sibling statements before and after a
// `let x = ...;` see different scopes -- shadowing by nesting rather
// than mutating one flat table in place.
type ExprScopes struct {
	scopes     []scopeData
	scopeByExpr map[hir.ExpressionId]ScopeId
	scopeByStmt map[hir.StatementId]ScopeId
}

// BuildExprScopes constructs the scope tree for body. Function
// parameters live in the root scope alongside the root block.
func BuildExprScopes(body *hir.Body) *ExprScopes {
	es := &ExprScopes{
		scopeByExpr: map[hir.ExpressionId]ScopeId{},
		scopeByStmt: map[hir.StatementId]ScopeId{},
	}
	root := es.push(noScope)
	for _, p := range body.Params {
		es.addEntry(root, body.Bindings[p].Name, p)
	}
	if body.RootBlock.Valid() {
		es.lowerBlock(body, body.RootBlock, root)
	}
	return es
}

func (es *ExprScopes) push(parent ScopeId) ScopeId {
	id := ScopeId(len(es.scopes))
	es.scopes = append(es.scopes, scopeData{parent: parent})
	return id
}

func (es *ExprScopes) addEntry(scope ScopeId, name string, binding hir.BindingId) {
	es.scopes[scope].entries = append(es.scopes[scope].entries, scopeEntry{name: name, binding: binding})
}

// Parent returns the lexical parent of scope, or an invalid ScopeId for
// the root.
func (es *ExprScopes) Parent(scope ScopeId) ScopeId {
	if !scope.Valid() {
		return noScope
	}
	return es.scopes[scope].parent
}

// Lookup searches only the bindings introduced directly in scope (not
// its ancestors), newest first so a later shadowing declaration in the
// same entry list wins.
func (es *ExprScopes) Lookup(scope ScopeId, name string) (hir.BindingId, bool) {
	if !scope.Valid() {
		return 0, false
	}
	entries := es.scopes[scope].entries
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].name == name {
			return entries[i].binding, true
		}
	}
	return 0, false
}

// Entries returns the name -> binding pairs introduced directly in scope
// (not its ancestors), used by completion's "everything in scope at this
// point" listing, which walks the scope chain itself rather than asking
// Lookup for one name at a time.
func (es *ExprScopes) Entries(scope ScopeId) map[string]hir.BindingId {
	if !scope.Valid() {
		return nil
	}
	entries := es.scopes[scope].entries
	out := make(map[string]hir.BindingId, len(entries))
	for _, e := range entries {
		out[e.name] = e.binding
	}
	return out
}

// ScopeOfExpr and ScopeOfStmt return the scope active at the given node,
// or the root scope (ScopeId 0) if the node wasn't visited (e.g. it
// belongs to a different body).
func (es *ExprScopes) ScopeOfExpr(id hir.ExpressionId) ScopeId { return es.scopeByExpr[id] }
func (es *ExprScopes) ScopeOfStmt(id hir.StatementId) ScopeId  { return es.scopeByStmt[id] }

func (es *ExprScopes) markExpr(body *hir.Body, id hir.ExpressionId, scope ScopeId) {
	if !id.Valid() {
		return
	}
	es.scopeByExpr[id] = scope
	body.WalkChildExpressions(id, func(child hir.ExpressionId) { es.markExpr(body, child, scope) })
}

func (es *ExprScopes) recordStmtExprs(body *hir.Body, s hir.Stmt, scope ScopeId) {
	es.markExpr(body, s.Expr, scope)
	es.markExpr(body, s.Lhs, scope)
	es.markExpr(body, s.Rhs, scope)
	es.markExpr(body, s.Cond, scope)
	es.markExpr(body, s.AssertExpr, scope)
	es.markExpr(body, s.Subject, scope)
	if s.Kind == hir.StmtLet || s.Kind == hir.StmtConst || s.Kind == hir.StmtVar {
		es.markExpr(body, body.Bindings[s.Binding].Init, scope)
	}
	for _, c := range s.Cases {
		for _, sel := range c.Selectors {
			es.markExpr(body, sel, scope)
		}
	}
}

func (es *ExprScopes) lowerBlock(body *hir.Body, blockID hir.StatementId, parentScope ScopeId) {
	current := es.push(parentScope)
	es.scopeByStmt[blockID] = current
	blk := body.Stmts[blockID]
	for _, sid := range blk.Stmts {
		es.scopeByStmt[sid] = current
		s := body.Stmts[sid]
		es.recordStmtExprs(body, s, current)
		current = es.afterStmt(body, sid, s, current)
	}
}

// afterStmt handles a statement's own nested scopes (loop/if/switch
// bodies) and returns the scope subsequent sibling statements should see
// -- a new child scope when s introduces a binding, otherwise current
// unchanged.
func (es *ExprScopes) afterStmt(body *hir.Body, sid hir.StatementId, s hir.Stmt, current ScopeId) ScopeId {
	switch s.Kind {
	case hir.StmtLet, hir.StmtConst, hir.StmtVar:
		next := es.push(current)
		es.addEntry(next, body.Bindings[s.Binding].Name, s.Binding)
		return next
	case hir.StmtBlock:
		es.lowerBlock(body, sid, current)
		return current
	case hir.StmtIf:
		es.lowerIf(body, sid, current)
		return current
	case hir.StmtFor:
		es.lowerFor(body, sid, current)
		return current
	case hir.StmtWhile:
		if s.Body.Valid() {
			es.lowerBlock(body, s.Body, current)
		}
		return current
	case hir.StmtLoop:
		if s.Body.Valid() {
			es.lowerBlock(body, s.Body, current)
		}
		if s.Continuing.Valid() {
			es.lowerBlock(body, s.Continuing, current)
		}
		return current
	case hir.StmtSwitch:
		for _, c := range s.Cases {
			if c.Body.Valid() {
				es.lowerBlock(body, c.Body, current)
			}
		}
		return current
	default:
		return current
	}
}

func (es *ExprScopes) lowerIf(body *hir.Body, stmtID hir.StatementId, parentScope ScopeId) {
	es.scopeByStmt[stmtID] = parentScope
	s := body.Stmts[stmtID]
	es.markExpr(body, s.Cond, parentScope)
	if s.Then.Valid() {
		es.lowerBlock(body, s.Then, parentScope)
	}
	if s.Else.Valid() {
		if body.Stmts[s.Else].Kind == hir.StmtIf {
			es.lowerIf(body, s.Else, parentScope)
		} else {
			es.lowerBlock(body, s.Else, parentScope)
		}
	}
}

func (es *ExprScopes) lowerFor(body *hir.Body, stmtID hir.StatementId, parentScope ScopeId) {
	s := body.Stmts[stmtID]
	scope := parentScope
	if s.Init.Valid() {
		initStmt := body.Stmts[s.Init]
		es.scopeByStmt[s.Init] = scope
		es.recordStmtExprs(body, initStmt, scope)
		if initStmt.Kind == hir.StmtLet || initStmt.Kind == hir.StmtVar || initStmt.Kind == hir.StmtConst {
			scope = es.push(scope)
			es.addEntry(scope, body.Bindings[initStmt.Binding].Name, initStmt.Binding)
		}
	}
	es.scopeByStmt[stmtID] = scope
	es.markExpr(body, s.Cond, scope)
	if s.Post.Valid() {
		es.scopeByStmt[s.Post] = scope
		es.recordStmtExprs(body, body.Stmts[s.Post], scope)
	}
	if s.Body.Valid() {
		es.lowerBlock(body, s.Body, scope)
	}
}
