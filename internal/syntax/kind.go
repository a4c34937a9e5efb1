// Package syntax is the concrete-syntax layer: a function from raw text
// to a parse tree, treated as a boundary the analyzer core builds on
// rather than owns. There is no existing library that hands this
// analyzer a WGSL CST, so this package is a minimal, from-scratch stand-
// in: a flat SyntaxNode/SyntaxToken tree plus the AstNode-cast and
// AstPointer machinery every downstream layer builds on. It intentionally
// does not reproduce a full red/green immutable-tree library (rowan);
// see DESIGN.md for that simplification.
package syntax

// SyntaxKind tags both syntax nodes (grammar productions) and syntax
// tokens (lexemes). A single enum for both keeps AstPointer's
// `(TextRange, SyntaxKind)` pair meaningful for both node and token
// pointers.
type SyntaxKind int

const (
	KindError SyntaxKind = iota
	KindEOF

	// Tokens.
	KindIdent
	KindIntLiteral
	KindFloatLiteral
	KindTrueKw
	KindFalseKw

	KindFnKw
	KindStructKw
	KindLetKw
	KindConstKw
	KindVarKw
	KindOverrideKw
	KindAliasKw
	KindReturnKw
	KindIfKw
	KindElseKw
	KindForKw
	KindWhileKw
	KindLoopKw
	KindSwitchKw
	KindCaseKw
	KindDefaultKw
	KindBreakKw
	KindContinueKw
	KindDiscardKw
	KindContinuingKw
	KindImportKw
	KindConstAssertKw
	KindEnableKw
	KindRequiresKw
	KindDiagnosticKw
	KindFallthroughKw

	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindComma
	KindColon
	KindSemicolon
	KindArrow
	KindAt
	KindDot
	KindEq
	KindPlusEq
	KindMinusEq
	KindStarEq
	KindSlashEq
	KindPercentEq
	KindAndEq
	KindOrEq
	KindXorEq
	KindShlEq
	KindShrEq
	KindPlusPlus
	KindMinusMinus
	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindPercent
	KindAmpAmp
	KindPipePipe
	KindAmp
	KindPipe
	KindCaret
	KindBang
	KindTilde
	KindShl
	KindShr
	KindEqEq
	KindNotEq
	KindLt
	KindLe
	KindGt
	KindGe
	KindUnderscore

	// Nodes (grammar productions).
	KindSourceFile
	KindFunctionItem
	KindStructItem
	KindStructMember
	KindGlobalVariableItem
	KindGlobalConstantItem
	KindOverrideItem
	KindTypeAliasItem
	KindImportItem
	KindDirectiveItem
	KindConstAssertItem

	KindAttributeList
	KindAttribute

	KindParamList
	KindParam
	KindTypeRef
	KindTypeArgs

	KindBlockStmt
	KindLetStmt
	KindConstStmt
	KindVarStmt
	KindReturnStmt
	KindAssignmentStmt
	KindCompoundAssignmentStmt
	KindPhonyAssignmentStmt
	KindIncrDecrStmt
	KindIfStmt
	KindForStmt
	KindWhileStmt
	KindSwitchStmt
	KindSwitchCase
	KindLoopStmt
	KindDiscardStmt
	KindBreakStmt
	KindContinueStmt
	KindContinuingStmt
	KindBreakIfStmt
	KindConstAssertStmt
	KindExprStmt

	KindParenExpr
	KindBinaryExpr
	KindUnaryExpr
	KindFieldExpr
	KindCallExpr
	KindIndexExpr
	KindBitcastExpr
	KindLiteralExpr
	KindPathExpr
	KindIdentExpr
	KindTypeCallExpr
)

var kindNames = map[SyntaxKind]string{
	KindError: "Error", KindEOF: "EOF",
	KindIdent: "Ident", KindIntLiteral: "IntLiteral", KindFloatLiteral: "FloatLiteral",
	KindTrueKw: "true", KindFalseKw: "false",
	KindFnKw: "fn", KindStructKw: "struct", KindLetKw: "let", KindConstKw: "const",
	KindVarKw: "var", KindOverrideKw: "override", KindAliasKw: "alias",
	KindReturnKw: "return", KindIfKw: "if", KindElseKw: "else", KindForKw: "for",
	KindWhileKw: "while", KindLoopKw: "loop", KindSwitchKw: "switch", KindCaseKw: "case",
	KindDefaultKw: "default", KindBreakKw: "break", KindContinueKw: "continue",
	KindDiscardKw: "discard", KindContinuingKw: "continuing", KindImportKw: "import",
	KindConstAssertKw: "const_assert", KindEnableKw: "enable", KindRequiresKw: "requires",
	KindDiagnosticKw: "diagnostic", KindFallthroughKw: "fallthrough",
	KindSourceFile: "SourceFile", KindFunctionItem: "FunctionItem",
	KindStructItem: "StructItem", KindStructMember: "StructMember",
	KindGlobalVariableItem: "GlobalVariableItem", KindGlobalConstantItem: "GlobalConstantItem",
	KindOverrideItem: "OverrideItem", KindTypeAliasItem: "TypeAliasItem",
	KindImportItem: "ImportItem", KindDirectiveItem: "DirectiveItem",
	KindConstAssertItem: "ConstAssertItem",
	KindAttributeList:   "AttributeList", KindAttribute: "Attribute",
	KindParamList: "ParamList", KindParam: "Param", KindTypeRef: "TypeRef",
	KindTypeArgs: "TypeArgs",
	KindBlockStmt: "BlockStmt", KindLetStmt: "LetStmt", KindConstStmt: "ConstStmt",
	KindVarStmt: "VarStmt", KindReturnStmt: "ReturnStmt", KindAssignmentStmt: "AssignmentStmt",
	KindCompoundAssignmentStmt: "CompoundAssignmentStmt", KindPhonyAssignmentStmt: "PhonyAssignmentStmt",
	KindIncrDecrStmt: "IncrDecrStmt", KindIfStmt: "IfStmt", KindForStmt: "ForStmt",
	KindWhileStmt: "WhileStmt", KindSwitchStmt: "SwitchStmt", KindSwitchCase: "SwitchCase",
	KindLoopStmt: "LoopStmt", KindDiscardStmt: "DiscardStmt", KindBreakStmt: "BreakStmt",
	KindContinueStmt: "ContinueStmt", KindContinuingStmt: "ContinuingStmt",
	KindBreakIfStmt: "BreakIfStmt", KindConstAssertStmt: "ConstAssertStmt", KindExprStmt: "ExprStmt",
	KindParenExpr: "ParenExpr", KindBinaryExpr: "BinaryExpr", KindUnaryExpr: "UnaryExpr",
	KindFieldExpr: "FieldExpr", KindCallExpr: "CallExpr", KindIndexExpr: "IndexExpr",
	KindBitcastExpr: "BitcastExpr", KindLiteralExpr: "LiteralExpr", KindPathExpr: "PathExpr",
	KindIdentExpr: "IdentExpr", KindTypeCallExpr: "TypeCallExpr",
}

func (k SyntaxKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

func (k SyntaxKind) IsTrivia() bool { return false }

var keywords = map[string]SyntaxKind{
	"fn": KindFnKw, "struct": KindStructKw, "let": KindLetKw, "const": KindConstKw,
	"var": KindVarKw, "override": KindOverrideKw, "alias": KindAliasKw,
	"return": KindReturnKw, "if": KindIfKw, "else": KindElseKw, "for": KindForKw,
	"while": KindWhileKw, "loop": KindLoopKw, "switch": KindSwitchKw, "case": KindCaseKw,
	"default": KindDefaultKw, "break": KindBreakKw, "continue": KindContinueKw,
	"discard": KindDiscardKw, "continuing": KindContinuingKw, "import": KindImportKw,
	"const_assert": KindConstAssertKw, "enable": KindEnableKw, "requires": KindRequiresKw,
	"diagnostic": KindDiagnosticKw, "fallthrough": KindFallthroughKw,
	"true": KindTrueKw, "false": KindFalseKw,
}
