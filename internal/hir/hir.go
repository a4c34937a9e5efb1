// Package hir lowers a parsed function body from the concrete syntax
// tree into arena-indexed expression/statement/binding trees, plus a
// BodySourceMap back to the syntax each HIR node came from (or
// SyntheticSyntax for nodes manufactured during error recovery, e.g. a
// missing initializer expression).
//
// An arena-of-structs style (flat slices of value types addressed by
// small integer ids rather than a pointer tree), lowering by walking the
// AST once, building a flatter IR, and recording a source pointer per
// node.
package hir

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

type ExpressionId uint32
type StatementId uint32
type BindingId uint32

const noExpr = ExpressionId(^uint32(0))
const noStmt = StatementId(^uint32(0))
const noBinding = BindingId(^uint32(0))

func (id ExpressionId) Valid() bool { return id != noExpr }
func (id StatementId) Valid() bool  { return id != noStmt }
func (id BindingId) Valid() bool    { return id != noBinding }

type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralBool
)

// Literal is the lowered value of a literal expression. AbstractInt/
// AbstractFloat-ness is not decided here -- that is type inference's
// job; lowering only records the lexical form.
type Literal struct {
	Kind LiteralKind
	Text string // original lexeme, e.g. "1", "1.0", "1u", "0x1f"
	Bool bool   // valid only when Kind == LiteralBool
}

type ExprKind int

const (
	ExprMissing ExprKind = iota
	ExprLiteral
	ExprPath
	ExprUnary
	ExprBinary
	ExprCall
	ExprField
	ExprIndex
	ExprBitcast
)

// Expr is one lowered expression node. Only the fields relevant to Kind
// are meaningful, a tagged-struct style rather than a set of Go
// interfaces (an interface-per-variant would force every consumer into
// type switches anyway, and arenas need a concrete element type).
type Expr struct {
	Kind ExprKind

	Literal Literal // ExprLiteral
	Name    string  // ExprPath: referenced identifier text

	Operand ExpressionId // ExprUnary, ExprBitcast
	Op      syntax.SyntaxKind

	Lhs, Rhs ExpressionId // ExprBinary

	Callee       ExpressionId       // ExprCall
	Args         []ExpressionId    // ExprCall
	TemplateArgs *syntax.SyntaxNode // ExprCall: explicit `<...>` type argument (vec3<f32>(...)), nil when absent

	Base      ExpressionId // ExprField, ExprIndex
	FieldName string       // ExprField
	Index     ExpressionId // ExprIndex

	BitcastTarget *syntax.SyntaxNode // ExprBitcast: the `<T>` target type
}

type StmtKind int

const (
	StmtExpr StmtKind = iota
	StmtLet
	StmtConst
	StmtVar
	StmtReturn
	StmtIf
	StmtFor
	StmtWhile
	StmtLoop
	StmtSwitch
	StmtBreak
	StmtBreakIf
	StmtContinue
	StmtDiscard
	StmtAssignment
	StmtCompoundAssignment
	StmtPhonyAssignment
	StmtIncrDecr
	StmtBlock
	StmtConstAssert
)

type SwitchCase struct {
	Selectors []ExpressionId // empty for `default`
	IsDefault bool
	Body      StatementId // a StmtBlock
}

// Stmt is one lowered statement. As with Expr, fields are tagged-union
// style; StmtBlock uses Stmts, control-flow statements reference nested
// StmtBlock ids rather than embedding statement lists directly so every
// block -- function body included -- is addressed uniformly.
type Stmt struct {
	Kind StmtKind

	Expr ExpressionId // StmtExpr, StmtReturn (optional), StmtDiscard n/a, StmtBreakIf condition

	Binding BindingId // StmtLet/Const/Var

	Lhs ExpressionId     // StmtAssignment/CompoundAssignment/IncrDecr target
	Rhs ExpressionId     // StmtAssignment/CompoundAssignment value
	Op  syntax.SyntaxKind // StmtCompoundAssignment/StmtIncrDecr operator

	Cond ExpressionId // StmtIf/StmtWhile/StmtFor condition
	Then StatementId  // StmtIf
	Else StatementId  // StmtIf (StmtBlock or nested StmtIf), invalid if absent

	Init StatementId // StmtFor
	Post StatementId // StmtFor update, wraps an assignment/incr-decr/expr stmt

	Body       StatementId // StmtWhile/StmtFor/StmtLoop body block (switch cases use SwitchCase.Body)
	Continuing StatementId // StmtLoop, invalid if absent

	Subject ExpressionId // StmtSwitch
	Cases   []SwitchCase // StmtSwitch

	Stmts []StatementId // StmtBlock

	AssertExpr ExpressionId // StmtConstAssert
}

type Binding struct {
	Name    string
	Mutable bool // var => true; let/const => false
	TypeRef *syntax.SyntaxNode
	Init    ExpressionId // invalid if the declaration has no initializer (bare `var x: T;`)
}

// Body is one function's (or other executable item's) lowered HIR.
type Body struct {
	Exprs    []Expr
	Stmts    []Stmt
	Bindings []Binding

	Params     []BindingId
	RootBlock  StatementId // the function's top-level StmtBlock
}

// ExprSource is either a real syntax pointer or SyntheticSyntax: lowering
// never fabricates a fake source position for a node the parser didn't
// produce.
type ExprSource struct {
	Ptr       syntax.AstPointer[syntax.AstNode]
	Synthetic bool
}

type BodySourceMap struct {
	ExprSyntax    map[ExpressionId]ExprSource
	StmtSyntax    map[StatementId]ExprSource
	BindingSyntax map[BindingId]ExprSource
}

func newSourceMap() *BodySourceMap {
	return &BodySourceMap{
		ExprSyntax:    map[ExpressionId]ExprSource{},
		StmtSyntax:    map[StatementId]ExprSource{},
		BindingSyntax: map[BindingId]ExprSource{},
	}
}

type lowerCtx struct {
	text string
	body *Body
	smap *BodySourceMap
}

func (c *lowerCtx) allocExpr(e Expr, src *syntax.SyntaxNode) ExpressionId {
	id := ExpressionId(len(c.body.Exprs))
	c.body.Exprs = append(c.body.Exprs, e)
	if src == nil {
		c.smap.ExprSyntax[id] = ExprSource{Synthetic: true}
	} else {
		c.smap.ExprSyntax[id] = ExprSource{Ptr: syntax.NewAstPointer[syntax.AstNode](src)}
	}
	return id
}

func (c *lowerCtx) allocMissingExpr() ExpressionId {
	return c.allocExpr(Expr{Kind: ExprMissing}, nil)
}

func (c *lowerCtx) allocStmt(s Stmt, src *syntax.SyntaxNode) StatementId {
	id := StatementId(len(c.body.Stmts))
	c.body.Stmts = append(c.body.Stmts, s)
	if src == nil {
		c.smap.StmtSyntax[id] = ExprSource{Synthetic: true}
	} else {
		c.smap.StmtSyntax[id] = ExprSource{Ptr: syntax.NewAstPointer[syntax.AstNode](src)}
	}
	return id
}

func (c *lowerCtx) allocBinding(b Binding, src *syntax.SyntaxNode) BindingId {
	id := BindingId(len(c.body.Bindings))
	c.body.Bindings = append(c.body.Bindings, b)
	if src == nil {
		c.smap.BindingSyntax[id] = ExprSource{Synthetic: true}
	} else {
		c.smap.BindingSyntax[id] = ExprSource{Ptr: syntax.NewAstPointer[syntax.AstNode](src)}
	}
	return id
}

// exprKinds is the set of syntax kinds lowerExpr knows how to lower;
// used by the statement-lowering helpers below to pick expression
// children out from amongst a statement's other structural children
// (type refs, nested blocks) without hardcoding child positions, since
// the parser omits absent optional children from a node's Children
// rather than leaving a placeholder slot.
var exprKinds = map[syntax.SyntaxKind]bool{
	syntax.KindLiteralExpr: true, syntax.KindIdentExpr: true,
	syntax.KindBinaryExpr: true, syntax.KindUnaryExpr: true,
	syntax.KindFieldExpr: true, syntax.KindIndexExpr: true,
	syntax.KindCallExpr: true, syntax.KindParenExpr: true,
	syntax.KindTypeCallExpr: true,
}

var stmtKinds = map[syntax.SyntaxKind]bool{
	syntax.KindBlockStmt: true, syntax.KindLetStmt: true, syntax.KindConstStmt: true,
	syntax.KindVarStmt: true, syntax.KindReturnStmt: true, syntax.KindIfStmt: true,
	syntax.KindForStmt: true, syntax.KindWhileStmt: true, syntax.KindLoopStmt: true,
	syntax.KindSwitchStmt: true, syntax.KindBreakStmt: true, syntax.KindBreakIfStmt: true,
	syntax.KindContinueStmt: true, syntax.KindDiscardStmt: true,
	syntax.KindAssignmentStmt: true, syntax.KindCompoundAssignmentStmt: true,
	syntax.KindPhonyAssignmentStmt: true, syntax.KindIncrDecrStmt: true,
	syntax.KindConstAssertStmt: true, syntax.KindContinuingStmt: true,
	syntax.KindSwitchCase: true, syntax.KindExprStmt: true,
}

func exprChildren(n *syntax.SyntaxNode) []*syntax.SyntaxNode {
	var out []*syntax.SyntaxNode
	for _, c := range n.Children {
		if exprKinds[c.Kind] {
			out = append(out, c)
		}
	}
	return out
}

func stmtChildren(n *syntax.SyntaxNode) []*syntax.SyntaxNode {
	var out []*syntax.SyntaxNode
	for _, c := range n.Children {
		if stmtKinds[c.Kind] {
			out = append(out, c)
		}
	}
	return out
}

func tokenChildren(n *syntax.SyntaxNode) []*syntax.SyntaxNode {
	var out []*syntax.SyntaxNode
	for _, c := range n.Children {
		if c.IsToken() {
			out = append(out, c)
		}
	}
	return out
}

// LowerFunctionBody lowers a Function's block body into a Body and its
// source map. text must be the same source the function's syntax tree
// was parsed from.
func LowerFunctionBody(text string, fn syntax.Function) (*Body, *BodySourceMap) {
	body := &Body{}
	smap := newSourceMap()
	ctx := &lowerCtx{text: text, body: body, smap: smap}

	if paramList := fn.ParamList(); paramList != nil {
		for _, p := range paramList.ChildrenOfKind(syntax.KindParam) {
			name := ""
			if idents := p.ChildrenOfKind(syntax.KindIdent); len(idents) > 0 {
				name = idents[0].Text(text)
			}
			ty := p.FirstChildOfKind(syntax.KindTypeRef)
			id := ctx.allocBinding(Binding{Name: name, Mutable: false, TypeRef: ty, Init: noExpr}, p)
			body.Params = append(body.Params, id)
		}
	}

	if b := fn.Body(); b != nil {
		body.RootBlock = ctx.lowerBlock(b)
	} else {
		body.RootBlock = noStmt
	}
	return body, smap
}

func (c *lowerCtx) lowerBlock(n *syntax.SyntaxNode) StatementId {
	var stmts []StatementId
	for _, s := range stmtChildren(n) {
		if s.Kind == syntax.KindContinuingStmt {
			continue // handled by the enclosing loop statement
		}
		stmts = append(stmts, c.lowerStmt(s))
	}
	return c.allocStmt(Stmt{Kind: StmtBlock, Stmts: stmts}, n)
}

func (c *lowerCtx) lowerStmt(n *syntax.SyntaxNode) StatementId {
	switch n.Kind {
	case syntax.KindBlockStmt:
		return c.lowerBlock(n)
	case syntax.KindExprStmt:
		ec := exprChildren(n)
		if len(ec) == 0 {
			return c.allocStmt(Stmt{Kind: StmtExpr, Expr: noExpr}, n)
		}
		return c.allocStmt(Stmt{Kind: StmtExpr, Expr: c.lowerExpr(ec[0])}, n)
	case syntax.KindLetStmt, syntax.KindConstStmt, syntax.KindVarStmt:
		return c.lowerDeclStmt(n)
	case syntax.KindReturnStmt:
		ec := exprChildren(n)
		e := noExpr
		if len(ec) > 0 {
			e = c.lowerExpr(ec[0])
		}
		return c.allocStmt(Stmt{Kind: StmtReturn, Expr: e}, n)
	case syntax.KindIfStmt:
		return c.lowerIfStmt(n)
	case syntax.KindForStmt:
		return c.lowerForStmt(n)
	case syntax.KindWhileStmt:
		ec := exprChildren(n)
		cond := noExpr
		if len(ec) > 0 {
			cond = c.lowerExpr(ec[0])
		}
		sc := stmtChildren(n)
		var bodyID StatementId = noStmt
		if len(sc) > 0 {
			bodyID = c.lowerBlock(sc[len(sc)-1])
		}
		return c.allocStmt(Stmt{Kind: StmtWhile, Cond: cond, Body: bodyID}, n)
	case syntax.KindLoopStmt:
		return c.lowerLoopStmt(n)
	case syntax.KindSwitchStmt:
		return c.lowerSwitchStmt(n)
	case syntax.KindBreakStmt:
		return c.allocStmt(Stmt{Kind: StmtBreak}, n)
	case syntax.KindBreakIfStmt:
		ec := exprChildren(n)
		cond := noExpr
		if len(ec) > 0 {
			cond = c.lowerExpr(ec[0])
		}
		return c.allocStmt(Stmt{Kind: StmtBreakIf, Expr: cond}, n)
	case syntax.KindContinueStmt:
		return c.allocStmt(Stmt{Kind: StmtContinue}, n)
	case syntax.KindDiscardStmt:
		return c.allocStmt(Stmt{Kind: StmtDiscard}, n)
	case syntax.KindConstAssertStmt, syntax.KindConstAssertItem:
		ec := exprChildren(n)
		e := noExpr
		if len(ec) > 0 {
			e = c.lowerExpr(ec[0])
		}
		return c.allocStmt(Stmt{Kind: StmtConstAssert, AssertExpr: e}, n)
	case syntax.KindAssignmentStmt:
		ec := exprChildren(n)
		lhs, rhs := noExpr, noExpr
		if len(ec) > 0 {
			lhs = c.lowerExpr(ec[0])
		}
		if len(ec) > 1 {
			rhs = c.lowerExpr(ec[1])
		}
		return c.allocStmt(Stmt{Kind: StmtAssignment, Lhs: lhs, Rhs: rhs}, n)
	case syntax.KindCompoundAssignmentStmt:
		ec := exprChildren(n)
		tt := tokenChildren(n)
		lhs, rhs := noExpr, noExpr
		if len(ec) > 0 {
			lhs = c.lowerExpr(ec[0])
		}
		if len(ec) > 1 {
			rhs = c.lowerExpr(ec[1])
		}
		op := syntax.KindError
		if len(tt) > 0 {
			op = tt[0].Kind
		}
		return c.allocStmt(Stmt{Kind: StmtCompoundAssignment, Lhs: lhs, Rhs: rhs, Op: op}, n)
	case syntax.KindPhonyAssignmentStmt:
		ec := exprChildren(n)
		rhs := noExpr
		if len(ec) > 0 {
			rhs = c.lowerExpr(ec[0])
		}
		return c.allocStmt(Stmt{Kind: StmtPhonyAssignment, Rhs: rhs}, n)
	case syntax.KindIncrDecrStmt:
		ec := exprChildren(n)
		tt := tokenChildren(n)
		lhs := noExpr
		if len(ec) > 0 {
			lhs = c.lowerExpr(ec[0])
		}
		op := syntax.KindError
		if len(tt) > 0 {
			op = tt[0].Kind
		}
		return c.allocStmt(Stmt{Kind: StmtIncrDecr, Lhs: lhs, Op: op}, n)
	default:
		return c.allocStmt(Stmt{Kind: StmtExpr, Expr: c.allocMissingExpr()}, n)
	}
}

func (c *lowerCtx) lowerDeclStmt(n *syntax.SyntaxNode) StatementId {
	var kind StmtKind
	switch n.Kind {
	case syntax.KindLetStmt:
		kind = StmtLet
	case syntax.KindConstStmt:
		kind = StmtConst
	default:
		kind = StmtVar
	}
	name := ""
	if idents := n.ChildrenOfKind(syntax.KindIdent); len(idents) > 0 {
		name = idents[0].Text(c.text)
	}
	ty := n.FirstChildOfKind(syntax.KindTypeRef)
	ec := exprChildren(n)
	init := noExpr
	if len(ec) > 0 {
		init = c.lowerExpr(ec[0])
	} else if kind != StmtVar || n.FirstChildOfKind(syntax.KindEq) != nil {
		init = c.allocMissingExpr()
	}
	bindingID := c.allocBinding(Binding{Name: name, Mutable: kind == StmtVar, TypeRef: ty, Init: init}, n)
	return c.allocStmt(Stmt{Kind: kind, Binding: bindingID}, n)
}

func (c *lowerCtx) lowerIfStmt(n *syntax.SyntaxNode) StatementId {
	ec := exprChildren(n)
	cond := noExpr
	if len(ec) > 0 {
		cond = c.lowerExpr(ec[0])
	}
	sc := stmtChildren(n)
	var thenID, elseID StatementId = noStmt, noStmt
	if len(sc) > 0 {
		thenID = c.lowerBlock(sc[0])
	}
	if len(sc) > 1 {
		if sc[1].Kind == syntax.KindIfStmt {
			elseID = c.lowerIfStmt(sc[1])
		} else {
			elseID = c.lowerBlock(sc[1])
		}
	}
	return c.allocStmt(Stmt{Kind: StmtIf, Cond: cond, Then: thenID, Else: elseID}, n)
}

func (c *lowerCtx) lowerForStmt(n *syntax.SyntaxNode) StatementId {
	sc := stmtChildren(n)
	// stmtChildren(n) for ForStmt yields [init, cond?(none, cond is expr),
	// update?, body] in source order -- init/update are statement-kinded,
	// cond is expression-kinded so it is excluded here.
	var initID, postID, bodyID StatementId = noStmt, noStmt, noStmt
	if len(sc) > 0 {
		initID = c.lowerStmt(sc[0])
	}
	if len(sc) > 1 {
		postID = c.lowerStmt(sc[1])
	}
	if len(sc) > 2 {
		bodyID = c.lowerBlock(sc[len(sc)-1])
	} else if len(sc) == 2 {
		// no update clause: second stmtChild is actually the body.
		bodyID = postID
		postID = noStmt
	}
	ec := exprChildren(n)
	cond := noExpr
	if len(ec) > 0 {
		cond = c.lowerExpr(ec[0])
	}
	return c.allocStmt(Stmt{Kind: StmtFor, Cond: cond, Init: initID, Post: postID, Body: bodyID}, n)
}

func (c *lowerCtx) lowerLoopStmt(n *syntax.SyntaxNode) StatementId {
	var stmts []StatementId
	var continuingID StatementId = noStmt
	for _, child := range n.Children {
		switch {
		case child.Kind == syntax.KindContinuingStmt:
			sc := stmtChildren(child)
			if len(sc) > 0 {
				continuingID = c.lowerBlock(sc[len(sc)-1])
			}
		case stmtKinds[child.Kind]:
			stmts = append(stmts, c.lowerStmt(child))
		}
	}
	bodyID := c.allocStmt(Stmt{Kind: StmtBlock, Stmts: stmts}, n)
	return c.allocStmt(Stmt{Kind: StmtLoop, Body: bodyID, Continuing: continuingID}, n)
}

func (c *lowerCtx) lowerSwitchStmt(n *syntax.SyntaxNode) StatementId {
	ec := exprChildren(n)
	subject := noExpr
	if len(ec) > 0 {
		subject = c.lowerExpr(ec[0])
	}
	var cases []SwitchCase
	for _, caseNode := range n.ChildrenOfKind(syntax.KindSwitchCase) {
		cases = append(cases, c.lowerSwitchCase(caseNode))
	}
	return c.allocStmt(Stmt{Kind: StmtSwitch, Subject: subject, Cases: cases}, n)
}

func (c *lowerCtx) lowerSwitchCase(n *syntax.SyntaxNode) SwitchCase {
	tt := tokenChildren(n)
	isDefault := len(tt) > 0 && tt[0].Kind == syntax.KindDefaultKw
	var selectors []ExpressionId
	if !isDefault {
		for _, e := range exprChildren(n) {
			selectors = append(selectors, c.lowerExpr(e))
		}
	}
	var bodyID StatementId = noStmt
	if blk := n.FirstChildOfKind(syntax.KindBlockStmt); blk != nil {
		bodyID = c.lowerBlock(blk)
	}
	return SwitchCase{Selectors: selectors, IsDefault: isDefault, Body: bodyID}
}

func (c *lowerCtx) lowerExpr(n *syntax.SyntaxNode) ExpressionId {
	if n == nil {
		return c.allocMissingExpr()
	}
	switch n.Kind {
	case syntax.KindParenExpr:
		// Parenthesis stripping: no HIR node is allocated for the parens
		// themselves, the inner expression's own id is reused.
		ec := exprChildren(n)
		if len(ec) == 0 {
			return c.allocMissingExpr()
		}
		return c.lowerExpr(ec[0])
	case syntax.KindLiteralExpr:
		tt := tokenChildren(n)
		if len(tt) == 0 {
			return c.allocExpr(Expr{Kind: ExprMissing}, n)
		}
		tok := tt[0]
		lit := Literal{Text: tok.Text(c.text)}
		switch tok.Kind {
		case syntax.KindIntLiteral:
			lit.Kind = LiteralInt
		case syntax.KindFloatLiteral:
			lit.Kind = LiteralFloat
		case syntax.KindTrueKw, syntax.KindFalseKw:
			lit.Kind = LiteralBool
			lit.Bool = tok.Kind == syntax.KindTrueKw
		}
		return c.allocExpr(Expr{Kind: ExprLiteral, Literal: lit}, n)
	case syntax.KindIdentExpr:
		tt := tokenChildren(n)
		name := ""
		if len(tt) > 0 {
			name = tt[0].Text(c.text)
		}
		return c.allocExpr(Expr{Kind: ExprPath, Name: name}, n)
	case syntax.KindUnaryExpr:
		tt := tokenChildren(n)
		ec := exprChildren(n)
		op := syntax.KindError
		if len(tt) > 0 {
			op = tt[0].Kind
		}
		operand := c.allocMissingExpr()
		if len(ec) > 0 {
			operand = c.lowerExpr(ec[0])
		}
		return c.allocExpr(Expr{Kind: ExprUnary, Op: op, Operand: operand}, n)
	case syntax.KindBinaryExpr:
		tt := tokenChildren(n)
		ec := exprChildren(n)
		op := syntax.KindError
		if len(tt) > 0 {
			op = tt[0].Kind
		}
		lhs, rhs := c.allocMissingExpr(), c.allocMissingExpr()
		if len(ec) > 0 {
			lhs = c.lowerExpr(ec[0])
		}
		if len(ec) > 1 {
			rhs = c.lowerExpr(ec[1])
		}
		return c.allocExpr(Expr{Kind: ExprBinary, Op: op, Lhs: lhs, Rhs: rhs}, n)
	case syntax.KindCallExpr:
		ec := exprChildren(n)
		if len(ec) == 0 {
			return c.allocExpr(Expr{Kind: ExprMissing}, n)
		}
		callee := c.lowerExpr(ec[0])
		var args []ExpressionId
		for _, a := range ec[1:] {
			args = append(args, c.lowerExpr(a))
		}
		return c.allocExpr(Expr{Kind: ExprCall, Callee: callee, Args: args}, n)
	case syntax.KindFieldExpr:
		ec := exprChildren(n)
		tt := tokenChildren(n)
		base := c.allocMissingExpr()
		if len(ec) > 0 {
			base = c.lowerExpr(ec[0])
		}
		field := ""
		if len(tt) > 1 {
			field = tt[1].Text(c.text)
		}
		return c.allocExpr(Expr{Kind: ExprField, Base: base, FieldName: field}, n)
	case syntax.KindIndexExpr:
		ec := exprChildren(n)
		base, idx := c.allocMissingExpr(), c.allocMissingExpr()
		if len(ec) > 0 {
			base = c.lowerExpr(ec[0])
		}
		if len(ec) > 1 {
			idx = c.lowerExpr(ec[1])
		}
		return c.allocExpr(Expr{Kind: ExprIndex, Base: base, Index: idx}, n)
	case syntax.KindTypeCallExpr:
		return c.lowerTypeCallExpr(n)
	default:
		return c.allocExpr(Expr{Kind: ExprMissing}, n)
	}
}

// lowerTypeCallExpr lowers ident<args>(call args): the explicit-type
// constructor/conversion/bitcast call form (vec3<f32>(...), array<f32,4>(...),
// bitcast<f32>(x)). The `<args>` tail is re-synthesized into a TypeRef node,
// the same shape parseTypeRef builds for a declared type, so
// types.Lowerer.LowerTypeRef lowers it without needing to know it came from
// an expression rather than a type position.
func (c *lowerCtx) lowerTypeCallExpr(n *syntax.SyntaxNode) ExpressionId {
	tt := tokenChildren(n)
	if len(tt) == 0 {
		return c.allocExpr(Expr{Kind: ExprMissing}, n)
	}
	nameTok := tt[0]
	name := nameTok.Text(c.text)

	var tyArgs []*syntax.SyntaxNode
	if targs := n.FirstChildOfKind(syntax.KindTypeArgs); targs != nil {
		for _, tc := range targs.Children {
			if tc.Kind == syntax.KindTypeRef || tc.Kind == syntax.KindIntLiteral {
				tyArgs = append(tyArgs, tc)
			}
		}
	}
	typeRef := &syntax.SyntaxNode{
		Kind:     syntax.KindTypeRef,
		Range:    nameTok.Range,
		Children: append([]*syntax.SyntaxNode{nameTok}, tyArgs...),
	}

	var args []ExpressionId
	for _, a := range exprChildren(n) {
		args = append(args, c.lowerExpr(a))
	}

	if name == "bitcast" {
		operand := c.allocMissingExpr()
		if len(args) > 0 {
			operand = args[0]
		}
		return c.allocExpr(Expr{Kind: ExprBitcast, Operand: operand, BitcastTarget: typeRef}, n)
	}

	callee := c.allocExpr(Expr{Kind: ExprPath, Name: name}, nameTok)
	return c.allocExpr(Expr{Kind: ExprCall, Callee: callee, Args: args, TemplateArgs: typeRef}, n)
}

// WalkChildExpressions visits the direct child expressions of e, used by
// name resolution and type inference to recurse without each caller
// re-deriving Expr's shape.
func (b *Body) WalkChildExpressions(id ExpressionId, f func(ExpressionId)) {
	e := b.Exprs[id]
	switch e.Kind {
	case ExprUnary, ExprBitcast:
		if e.Operand.Valid() {
			f(e.Operand)
		}
	case ExprBinary:
		if e.Lhs.Valid() {
			f(e.Lhs)
		}
		if e.Rhs.Valid() {
			f(e.Rhs)
		}
	case ExprCall:
		if e.Callee.Valid() {
			f(e.Callee)
		}
		for _, a := range e.Args {
			f(a)
		}
	case ExprField:
		if e.Base.Valid() {
			f(e.Base)
		}
	case ExprIndex:
		if e.Base.Valid() {
			f(e.Base)
		}
		if e.Index.Valid() {
			f(e.Index)
		}
	}
}
