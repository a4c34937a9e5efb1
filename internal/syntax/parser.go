package syntax

import (
	"fmt"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
)

// Parse is the output of parsing a whole file: the tree plus any syntax
// errors recovered from along the way. A single recursive-descent pass --
// WGSL's grammar has no statement-level macro stage to pipeline.
type Parse struct {
	Root        *SyntaxNode
	Diagnostics []diagnostics.Diagnostic
}

// Entry selects which grammar rule parse_entrypoint starts from, used by
// the IDE layer to parse a single expression or statement typed into a
// completion/hover request without reparsing the whole file.
type Entry int

const (
	EntryFile Entry = iota
	EntryExpression
	EntryStatement
	EntryType
	EntryAttributeList
	EntryFunctionParameterList
)

// ParseFile parses a complete translation unit.
func ParseFile(text string) Parse {
	return ParseEntrypoint(text, EntryFile)
}

// ParseEntrypoint parses text starting from the grammar rule entry names.
func ParseEntrypoint(text string, entry Entry) Parse {
	p := &parser{toks: NewLexer(text).Tokenize()}
	var root *SyntaxNode
	switch entry {
	case EntryExpression:
		root = p.parseExpr()
	case EntryStatement:
		root = p.parseStmt()
	case EntryType:
		root = p.parseTypeRef()
	case EntryAttributeList:
		root = p.parseAttributeList()
	case EntryFunctionParameterList:
		root = p.parseParamList()
	default:
		root = p.parseSourceFile()
	}
	if root == nil {
		root = &SyntaxNode{Kind: KindError}
	}
	attachParents(root, nil)
	return Parse{Root: root, Diagnostics: p.diags}
}

type parser struct {
	toks  []Token
	pos   int
	diags []diagnostics.Diagnostic
}

// checkpoint captures enough parser state to undo a speculative parse:
// token position and how many diagnostics had been raised so far.
type checkpoint struct {
	pos      int
	diagsLen int
}

func (p *parser) checkpoint() checkpoint {
	return checkpoint{pos: p.pos, diagsLen: len(p.diags)}
}

// restore rewinds the parser to cp, discarding any tokens consumed and
// diagnostics raised since it was taken.
func (p *parser) restore(cp checkpoint) {
	p.pos = cp.pos
	p.diags = p.diags[:cp.diagsLen]
}

func attachParents(n *SyntaxNode, parent *SyntaxNode) {
	n.Parent = parent
	for _, c := range n.Children {
		attachParents(c, n)
	}
}

func (p *parser) cur() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: KindEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) at(k SyntaxKind) bool { return p.cur().Kind == k }

func (p *parser) atAny(ks ...SyntaxKind) bool {
	c := p.cur().Kind
	for _, k := range ks {
		if c == k {
			return true
		}
	}
	return false
}

func (p *parser) bump() *SyntaxNode {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return &SyntaxNode{Kind: t.Kind, Range: t.Range, Token: &t}
}

func (p *parser) expect(k SyntaxKind) *SyntaxNode {
	if p.at(k) {
		return p.bump()
	}
	p.errorf("expected %s, found %s", k, p.cur().Kind)
	return nil
}

func (p *parser) errorf(format string, args ...any) {
	r := p.cur().Range
	p.diags = append(p.diags, diagnostics.NewError(diagnostics.CodeParseError, r, fmt.Sprintf(format, args...)))
}

// errorNode consumes one token into a KindError node, the minimal
// recovery strategy: skip the offending token and keep going so one
// malformed item does not blank out the rest of the file's diagnostics.
func (p *parser) errorNode() *SyntaxNode {
	p.errorf("unexpected token %s", p.cur().Kind)
	n := p.bump()
	n.Kind = KindError
	return n
}

func spanOf(children []*SyntaxNode) span.Range {
	var start, end span.Offset
	found := false
	for _, c := range children {
		if c == nil {
			continue
		}
		if !found {
			start = c.Range.Start
			found = true
		}
		end = c.Range.End
	}
	return span.NewRange(start, end)
}

func node(kind SyntaxKind, children ...*SyntaxNode) *SyntaxNode {
	filtered := children[:0]
	for _, c := range children {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	return &SyntaxNode{Kind: kind, Range: spanOf(filtered), Children: filtered}
}

// ---- top level ----

func (p *parser) parseSourceFile() *SyntaxNode {
	var items []*SyntaxNode
	for !p.at(KindEOF) {
		items = append(items, p.parseItem())
	}
	return node(KindSourceFile, items...)
}

func (p *parser) parseItem() *SyntaxNode {
	attrs := p.parseAttributeList()
	switch p.cur().Kind {
	case KindFnKw:
		return p.parseFunctionItem(attrs)
	case KindStructKw:
		return p.parseStructItem(attrs)
	case KindVarKw:
		return p.parseGlobalVariableItem(attrs)
	case KindConstKw:
		return p.parseGlobalConstantItem(attrs)
	case KindOverrideKw:
		return p.parseOverrideItem(attrs)
	case KindAliasKw:
		return p.parseTypeAliasItem(attrs)
	case KindImportKw:
		return p.parseImportItem(attrs)
	case KindEnableKw, KindRequiresKw, KindDiagnosticKw:
		return p.parseDirectiveItem(attrs)
	case KindConstAssertKw:
		return p.parseConstAssertItem(attrs)
	default:
		if attrs != nil {
			return node(KindError, attrs, p.errorNode())
		}
		return p.errorNode()
	}
}

// parseAttributeList parses zero or more `@name(args)` attributes. Returns
// nil (not an empty node) when none are present, so callers can tell
// "no attributes" apart from "empty attribute list" the way an Option
// would in the source this is modeled on.
func (p *parser) parseAttributeList() *SyntaxNode {
	var attrs []*SyntaxNode
	for p.at(KindAt) {
		at := p.bump()
		name := p.expect(KindIdent)
		var lparen, rparen *SyntaxNode
		var args []*SyntaxNode
		if p.at(KindLParen) {
			lparen = p.bump()
			for !p.at(KindRParen) && !p.at(KindEOF) {
				args = append(args, p.parseExpr())
				if p.at(KindComma) {
					args = append(args, p.bump())
				} else {
					break
				}
			}
			rparen = p.expect(KindRParen)
		}
		children := append([]*SyntaxNode{at, name, lparen}, args...)
		children = append(children, rparen)
		attrs = append(attrs, node(KindAttribute, children...))
	}
	if len(attrs) == 0 {
		return nil
	}
	return node(KindAttributeList, attrs...)
}

func (p *parser) parseFunctionItem(attrs *SyntaxNode) *SyntaxNode {
	kw := p.bump()
	name := p.expect(KindIdent)
	params := p.parseParamList()
	var arrow, retAttrs, retTy *SyntaxNode
	if p.at(KindArrow) {
		arrow = p.bump()
		retAttrs = p.parseAttributeList()
		retTy = p.parseTypeRef()
	}
	body := p.parseBlockStmt()
	return node(KindFunctionItem, attrs, kw, name, params, arrow, retAttrs, retTy, body)
}

func (p *parser) parseParamList() *SyntaxNode {
	lparen := p.expect(KindLParen)
	var params []*SyntaxNode
	for !p.at(KindRParen) && !p.at(KindEOF) {
		params = append(params, p.parseParam())
		if p.at(KindComma) {
			params = append(params, p.bump())
		} else {
			break
		}
	}
	rparen := p.expect(KindRParen)
	children := append([]*SyntaxNode{lparen}, params...)
	children = append(children, rparen)
	return node(KindParamList, children...)
}

func (p *parser) parseParam() *SyntaxNode {
	attrs := p.parseAttributeList()
	name := p.expect(KindIdent)
	colon := p.expect(KindColon)
	ty := p.parseTypeRef()
	return node(KindParam, attrs, name, colon, ty)
}

func (p *parser) parseTypeRef() *SyntaxNode {
	name := p.expect(KindIdent)
	var lt, gt *SyntaxNode
	var args []*SyntaxNode
	if p.at(KindLt) {
		lt = p.bump()
		for !p.at(KindGt) && !p.at(KindEOF) {
			if p.atAny(KindIntLiteral) {
				args = append(args, p.bump())
			} else {
				args = append(args, p.parseTypeRef())
			}
			if p.at(KindComma) {
				args = append(args, p.bump())
			} else {
				break
			}
		}
		gt = p.expect(KindGt)
	}
	children := append([]*SyntaxNode{name, lt}, args...)
	children = append(children, gt)
	return node(KindTypeRef, children...)
}

func (p *parser) parseStructItem(attrs *SyntaxNode) *SyntaxNode {
	kw := p.bump()
	name := p.expect(KindIdent)
	lbrace := p.expect(KindLBrace)
	var members []*SyntaxNode
	for !p.at(KindRBrace) && !p.at(KindEOF) {
		members = append(members, p.parseStructMember())
		if p.at(KindComma) {
			members = append(members, p.bump())
		}
	}
	rbrace := p.expect(KindRBrace)
	children := append([]*SyntaxNode{attrs, kw, name, lbrace}, members...)
	children = append(children, rbrace)
	return node(KindStructItem, children...)
}

func (p *parser) parseStructMember() *SyntaxNode {
	attrs := p.parseAttributeList()
	name := p.expect(KindIdent)
	colon := p.expect(KindColon)
	ty := p.parseTypeRef()
	return node(KindStructMember, attrs, name, colon, ty)
}

func (p *parser) parseGlobalVariableItem(attrs *SyntaxNode) *SyntaxNode {
	kw := p.bump()
	var lt, as, am, gt *SyntaxNode
	if p.at(KindLt) {
		lt = p.bump()
		as = p.expect(KindIdent)
		var comma *SyntaxNode
		if p.at(KindComma) {
			comma = p.bump()
			am = p.expect(KindIdent)
		}
		gt = p.expect(KindGt)
		_ = comma
	}
	name := p.expect(KindIdent)
	var colon, ty *SyntaxNode
	if p.at(KindColon) {
		colon = p.bump()
		ty = p.parseTypeRef()
	}
	var eq, init *SyntaxNode
	if p.at(KindEq) {
		eq = p.bump()
		init = p.parseExpr()
	}
	semi := p.expect(KindSemicolon)
	return node(KindGlobalVariableItem, attrs, kw, lt, as, am, gt, name, colon, ty, eq, init, semi)
}

func (p *parser) parseGlobalConstantItem(attrs *SyntaxNode) *SyntaxNode {
	kw := p.bump()
	name := p.expect(KindIdent)
	var colon, ty *SyntaxNode
	if p.at(KindColon) {
		colon = p.bump()
		ty = p.parseTypeRef()
	}
	eq := p.expect(KindEq)
	init := p.parseExpr()
	semi := p.expect(KindSemicolon)
	return node(KindGlobalConstantItem, attrs, kw, name, colon, ty, eq, init, semi)
}

func (p *parser) parseOverrideItem(attrs *SyntaxNode) *SyntaxNode {
	kw := p.bump()
	name := p.expect(KindIdent)
	var colon, ty *SyntaxNode
	if p.at(KindColon) {
		colon = p.bump()
		ty = p.parseTypeRef()
	}
	var eq, init *SyntaxNode
	if p.at(KindEq) {
		eq = p.bump()
		init = p.parseExpr()
	}
	semi := p.expect(KindSemicolon)
	return node(KindOverrideItem, attrs, kw, name, colon, ty, eq, init, semi)
}

func (p *parser) parseTypeAliasItem(attrs *SyntaxNode) *SyntaxNode {
	kw := p.bump()
	name := p.expect(KindIdent)
	eq := p.expect(KindEq)
	ty := p.parseTypeRef()
	semi := p.expect(KindSemicolon)
	return node(KindTypeAliasItem, attrs, kw, name, eq, ty, semi)
}

func (p *parser) parseImportItem(attrs *SyntaxNode) *SyntaxNode {
	kw := p.bump()
	path := p.expect(KindIdent)
	semi := p.expect(KindSemicolon)
	return node(KindImportItem, attrs, kw, path, semi)
}

// parseDirectiveItem parses `enable name;`, `requires name;`, or
// `diagnostic(severity, rule);` module-level directives.
func (p *parser) parseDirectiveItem(attrs *SyntaxNode) *SyntaxNode {
	kw := p.bump()
	var rest []*SyntaxNode
	for !p.at(KindSemicolon) && !p.at(KindEOF) {
		rest = append(rest, p.bump())
	}
	semi := p.expect(KindSemicolon)
	children := append([]*SyntaxNode{attrs, kw}, rest...)
	children = append(children, semi)
	return node(KindDirectiveItem, children...)
}

func (p *parser) parseConstAssertItem(attrs *SyntaxNode) *SyntaxNode {
	kw := p.bump()
	expr := p.parseExpr()
	semi := p.expect(KindSemicolon)
	return node(KindConstAssertItem, attrs, kw, expr, semi)
}

// ---- statements ----

func (p *parser) parseBlockStmt() *SyntaxNode {
	lbrace := p.expect(KindLBrace)
	var stmts []*SyntaxNode
	for !p.at(KindRBrace) && !p.at(KindEOF) {
		stmts = append(stmts, p.parseStmt())
	}
	rbrace := p.expect(KindRBrace)
	children := append([]*SyntaxNode{lbrace}, stmts...)
	children = append(children, rbrace)
	return node(KindBlockStmt, children...)
}

func (p *parser) parseStmt() *SyntaxNode {
	switch p.cur().Kind {
	case KindLBrace:
		return p.parseBlockStmt()
	case KindLetKw, KindConstKw:
		return p.parseLetOrConstStmt()
	case KindVarKw:
		return p.parseVarStmt()
	case KindReturnKw:
		return p.parseReturnStmt()
	case KindIfKw:
		return p.parseIfStmt()
	case KindForKw:
		return p.parseForStmt()
	case KindWhileKw:
		return p.parseWhileStmt()
	case KindLoopKw:
		return p.parseLoopStmt()
	case KindSwitchKw:
		return p.parseSwitchStmt()
	case KindDiscardKw:
		kw := p.bump()
		semi := p.expect(KindSemicolon)
		return node(KindDiscardStmt, kw, semi)
	case KindBreakKw:
		kw := p.bump()
		if p.at(KindIfKw) {
			ifkw := p.bump()
			cond := p.parseExpr()
			semi := p.expect(KindSemicolon)
			return node(KindBreakIfStmt, kw, ifkw, cond, semi)
		}
		semi := p.expect(KindSemicolon)
		return node(KindBreakStmt, kw, semi)
	case KindContinueKw:
		kw := p.bump()
		semi := p.expect(KindSemicolon)
		return node(KindContinueStmt, kw, semi)
	case KindConstAssertKw:
		return p.parseConstAssertItem(nil)
	case KindSemicolon:
		return node(KindExprStmt, p.bump())
	default:
		return p.parseExprOrAssignmentStmt()
	}
}

func (p *parser) parseLetOrConstStmt() *SyntaxNode {
	kw := p.bump()
	kind := KindLetStmt
	if kw.Kind == KindConstKw {
		kind = KindConstStmt
	}
	name := p.expect(KindIdent)
	var colon, ty *SyntaxNode
	if p.at(KindColon) {
		colon = p.bump()
		ty = p.parseTypeRef()
	}
	eq := p.expect(KindEq)
	init := p.parseExpr()
	semi := p.expect(KindSemicolon)
	return node(kind, kw, name, colon, ty, eq, init, semi)
}

func (p *parser) parseVarStmt() *SyntaxNode {
	kw := p.bump()
	name := p.expect(KindIdent)
	var colon, ty *SyntaxNode
	if p.at(KindColon) {
		colon = p.bump()
		ty = p.parseTypeRef()
	}
	var eq, init *SyntaxNode
	if p.at(KindEq) {
		eq = p.bump()
		init = p.parseExpr()
	}
	semi := p.expect(KindSemicolon)
	return node(KindVarStmt, kw, name, colon, ty, eq, init, semi)
}

func (p *parser) parseReturnStmt() *SyntaxNode {
	kw := p.bump()
	var expr *SyntaxNode
	if !p.at(KindSemicolon) {
		expr = p.parseExpr()
	}
	semi := p.expect(KindSemicolon)
	return node(KindReturnStmt, kw, expr, semi)
}

func (p *parser) parseIfStmt() *SyntaxNode {
	kw := p.bump()
	cond := p.parseExpr()
	then := p.parseBlockStmt()
	var elseKw, elseBranch *SyntaxNode
	if p.at(KindElseKw) {
		elseKw = p.bump()
		if p.at(KindIfKw) {
			elseBranch = p.parseIfStmt()
		} else {
			elseBranch = p.parseBlockStmt()
		}
	}
	return node(KindIfStmt, kw, cond, then, elseKw, elseBranch)
}

func (p *parser) parseForStmt() *SyntaxNode {
	kw := p.bump()
	lparen := p.expect(KindLParen)
	var init *SyntaxNode
	if !p.at(KindSemicolon) {
		init = p.parseStmt()
	} else {
		init = node(KindExprStmt, p.bump())
	}
	var cond *SyntaxNode
	if !p.at(KindSemicolon) {
		cond = p.parseExpr()
	}
	semi := p.expect(KindSemicolon)
	var update *SyntaxNode
	if !p.at(KindRParen) {
		update = p.parseExprOrAssignmentStmtNoSemi()
	}
	rparen := p.expect(KindRParen)
	body := p.parseBlockStmt()
	return node(KindForStmt, kw, lparen, init, cond, semi, update, rparen, body)
}

func (p *parser) parseWhileStmt() *SyntaxNode {
	kw := p.bump()
	cond := p.parseExpr()
	body := p.parseBlockStmt()
	return node(KindWhileStmt, kw, cond, body)
}

func (p *parser) parseLoopStmt() *SyntaxNode {
	kw := p.bump()
	lbrace := p.expect(KindLBrace)
	var stmts []*SyntaxNode
	var continuing *SyntaxNode
	for !p.at(KindRBrace) && !p.at(KindEOF) {
		if p.at(KindContinuingKw) {
			continuing = p.parseContinuingStmt()
			break
		}
		stmts = append(stmts, p.parseStmt())
	}
	rbrace := p.expect(KindRBrace)
	children := append([]*SyntaxNode{kw, lbrace}, stmts...)
	children = append(children, continuing, rbrace)
	return node(KindLoopStmt, children...)
}

func (p *parser) parseContinuingStmt() *SyntaxNode {
	kw := p.bump()
	body := p.parseBlockStmt()
	return node(KindContinuingStmt, kw, body)
}

func (p *parser) parseSwitchStmt() *SyntaxNode {
	kw := p.bump()
	subject := p.parseExpr()
	lbrace := p.expect(KindLBrace)
	var cases []*SyntaxNode
	for !p.at(KindRBrace) && !p.at(KindEOF) {
		cases = append(cases, p.parseSwitchCase())
	}
	rbrace := p.expect(KindRBrace)
	children := append([]*SyntaxNode{kw, subject, lbrace}, cases...)
	children = append(children, rbrace)
	return node(KindSwitchStmt, children...)
}

func (p *parser) parseSwitchCase() *SyntaxNode {
	var kw *SyntaxNode
	var selectors []*SyntaxNode
	if p.at(KindDefaultKw) {
		kw = p.bump()
	} else {
		kw = p.expect(KindCaseKw)
		for !p.at(KindColon) && !p.at(KindLBrace) && !p.at(KindEOF) {
			selectors = append(selectors, p.parseExpr())
			if p.at(KindComma) {
				selectors = append(selectors, p.bump())
			} else {
				break
			}
		}
	}
	var colon *SyntaxNode
	if p.at(KindColon) {
		colon = p.bump()
	}
	body := p.parseBlockStmt()
	children := append([]*SyntaxNode{kw}, selectors...)
	children = append(children, colon, body)
	return node(KindSwitchCase, children...)
}

// parseExprOrAssignmentStmt parses a bare expression statement, a
// `lhs = rhs;` / `lhs += rhs;` assignment, `lhs++`/`lhs--`, or a phony
// assignment `_ = rhs;`, then consumes the trailing semicolon.
func (p *parser) parseExprOrAssignmentStmt() *SyntaxNode {
	n := p.parseExprOrAssignmentStmtNoSemi()
	semi := p.expect(KindSemicolon)
	return node(n.Kind, append(n.Children, semi)...)
}

func (p *parser) parseExprOrAssignmentStmtNoSemi() *SyntaxNode {
	if p.at(KindUnderscore) {
		underscore := p.bump()
		eq := p.expect(KindEq)
		rhs := p.parseExpr()
		return node(KindPhonyAssignmentStmt, underscore, eq, rhs)
	}
	lhs := p.parseExpr()
	switch p.cur().Kind {
	case KindEq:
		eq := p.bump()
		rhs := p.parseExpr()
		return node(KindAssignmentStmt, lhs, eq, rhs)
	case KindPlusEq, KindMinusEq, KindStarEq, KindSlashEq, KindPercentEq, KindAndEq, KindOrEq, KindXorEq, KindShlEq, KindShrEq:
		op := p.bump()
		rhs := p.parseExpr()
		return node(KindCompoundAssignmentStmt, lhs, op, rhs)
	case KindPlusPlus, KindMinusMinus:
		op := p.bump()
		return node(KindIncrDecrStmt, lhs, op)
	default:
		return node(KindExprStmt, lhs)
	}
}

// ---- expressions ----
//
// Pratt/precedence-climbing parser. WGSL forbids mixing some operators
// without parentheses (bitwise vs. shift vs. comparison); that rule is a
// validation-layer lint, not a parse error, so the grammar here accepts
// any left-to-right mix and lets validation flag suspicious nesting.
var binPrec = map[SyntaxKind]int{
	KindPipePipe: 1,
	KindAmpAmp:   2,
	KindPipe:     3,
	KindCaret:    4,
	KindAmp:      5,
	KindEqEq:     6, KindNotEq: 6, KindLt: 6, KindLe: 6, KindGt: 6, KindGe: 6,
	KindShl: 7, KindShr: 7,
	KindPlus: 8, KindMinus: 8,
	KindStar: 9, KindSlash: 9, KindPercent: 9,
}

func (p *parser) parseExpr() *SyntaxNode {
	return p.parseBinExpr(0)
}

func (p *parser) parseBinExpr(minPrec int) *SyntaxNode {
	lhs := p.parseUnaryExpr()
	for {
		prec, ok := binPrec[p.cur().Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		op := p.bump()
		rhs := p.parseBinExpr(prec + 1)
		lhs = node(KindBinaryExpr, lhs, op, rhs)
	}
}

func (p *parser) parseUnaryExpr() *SyntaxNode {
	switch p.cur().Kind {
	case KindMinus, KindBang, KindTilde, KindStar, KindAmp:
		op := p.bump()
		operand := p.parseUnaryExpr()
		return node(KindUnaryExpr, op, operand)
	default:
		return p.parsePostfixExpr()
	}
}

func (p *parser) parsePostfixExpr() *SyntaxNode {
	expr := p.parsePrimaryExpr()
	for {
		switch p.cur().Kind {
		case KindDot:
			dot := p.bump()
			field := p.expect(KindIdent)
			expr = node(KindFieldExpr, expr, dot, field)
		case KindLBracket:
			lb := p.bump()
			index := p.parseExpr()
			rb := p.expect(KindRBracket)
			expr = node(KindIndexExpr, expr, lb, index, rb)
		case KindLParen:
			// Only valid directly after a bare identifier/path (a call),
			// but accepting it generally keeps recovery simple; the
			// resolver rejects calls on non-callable bases later.
			lparen, args, rparen := p.parseCallArgs()
			children := append([]*SyntaxNode{expr, lparen}, args...)
			children = append(children, rparen)
			expr = node(KindCallExpr, children...)
		default:
			return expr
		}
	}
}

// parseCallArgs parses a parenthesized, comma-separated argument list:
// `(`, zero or more expressions with their separating commas, `)`.
func (p *parser) parseCallArgs() (lparen *SyntaxNode, args []*SyntaxNode, rparen *SyntaxNode) {
	lparen = p.bump()
	for !p.at(KindRParen) && !p.at(KindEOF) {
		args = append(args, p.parseExpr())
		if p.at(KindComma) {
			args = append(args, p.bump())
		} else {
			break
		}
	}
	rparen = p.expect(KindRParen)
	return lparen, args, rparen
}

// parseTemplateArgList parses a `<...>` argument list in expression
// position, the same grammar parseTypeRef uses for its own `<...>` tail
// (nested type refs or a bare int literal for array lengths), just
// without a leading type name since the caller already consumed one.
func (p *parser) parseTemplateArgList() *SyntaxNode {
	lt := p.expect(KindLt)
	var args []*SyntaxNode
	for !p.at(KindGt) && !p.at(KindEOF) {
		if p.atAny(KindIntLiteral) {
			args = append(args, p.bump())
		} else {
			args = append(args, p.parseTypeRef())
		}
		if p.at(KindComma) {
			args = append(args, p.bump())
		} else {
			break
		}
	}
	gt := p.expect(KindGt)
	children := append([]*SyntaxNode{lt}, args...)
	children = append(children, gt)
	return node(KindTypeArgs, children...)
}

func (p *parser) parsePrimaryExpr() *SyntaxNode {
	switch p.cur().Kind {
	case KindIntLiteral, KindFloatLiteral, KindTrueKw, KindFalseKw:
		return node(KindLiteralExpr, p.bump())
	case KindIdent:
		id := p.bump()
		// A following `<` after an identifier is ambiguous between "less
		// than" and a generic type-argument list (array<T,N>(...),
		// vec3<f32>(...), bitcast<T>(x)). Speculatively parse a template
		// argument list and only commit to it when a matching `>` is
		// immediately followed by `(` -- otherwise restore and let the
		// binary-expression parser treat `<` as the comparison operator.
		if p.at(KindLt) {
			cp := p.checkpoint()
			targs := p.parseTemplateArgList()
			if p.at(KindLParen) && len(p.diags) == cp.diagsLen {
				lparen, args, rparen := p.parseCallArgs()
				children := append([]*SyntaxNode{id, targs, lparen}, args...)
				children = append(children, rparen)
				return node(KindTypeCallExpr, children...)
			}
			p.restore(cp)
		}
		return node(KindIdentExpr, id)
	case KindLParen:
		lparen := p.bump()
		inner := p.parseExpr()
		rparen := p.expect(KindRParen)
		return node(KindParenExpr, lparen, inner, rparen)
	default:
		return p.errorNode()
	}
}
