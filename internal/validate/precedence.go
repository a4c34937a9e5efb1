package validate

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// family groups binary operators the way the precedence lint cares about:
// operators within a family chain together without parentheses, operators
// across families read ambiguously enough that WGSL wants them
// parenthesized, including the shift-vs-additive case.
type family int

const (
	famOther family = iota
	famBitAnd
	famBitOr
	famBitXor
	famShift
	famComparison
	famLogAnd
	famLogOr
	famAdditive
)

func familyOf(k syntax.SyntaxKind) family {
	switch k {
	case syntax.KindAmp:
		return famBitAnd
	case syntax.KindPipe:
		return famBitOr
	case syntax.KindCaret:
		return famBitXor
	case syntax.KindShl, syntax.KindShr:
		return famShift
	case syntax.KindEqEq, syntax.KindNotEq, syntax.KindLt, syntax.KindLe, syntax.KindGt, syntax.KindGe:
		return famComparison
	case syntax.KindAmpAmp:
		return famLogAnd
	case syntax.KindPipePipe:
		return famLogOr
	case syntax.KindPlus, syntax.KindMinus:
		return famAdditive
	default:
		return famOther
	}
}

func isBitwise(f family) bool { return f == famBitAnd || f == famBitOr || f == famBitXor }

// PrecedenceLint walks root for every BinaryExpr and flags operand nesting
// that WGSL requires parentheses to disambiguate:
//   - `&`/`|`/`^` nested with a different operator (bitwise or not) without
//     parentheses: SequencesAllowed.
//   - `<<`/`>>` nested inside another `<<`/`>>` without parentheses:
//     NeverNested.
//   - a comparison nested inside another comparison: NeverNested.
//   - `&&` mixed with `||` without parentheses: SequencesAllowed.
//   - a shift mixed with `+`/`-` without parentheses: SequencesAllowed.
func PrecedenceLint(root *syntax.SyntaxNode) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	if root == nil {
		return out
	}
	root.Walk(func(n *syntax.SyntaxNode) {
		if n.Kind != syntax.KindBinaryExpr || len(n.Children) != 3 {
			return
		}
		outerOp := n.Children[1].Kind
		outerFam := familyOf(outerOp)
		for _, side := range []*syntax.SyntaxNode{n.Children[0], n.Children[2]} {
			child, wrapped := unwrapParen(side)
			if wrapped || child.Kind != syntax.KindBinaryExpr || len(child.Children) != 3 {
				continue
			}
			innerFam := familyOf(child.Children[1].Kind)
			switch {
			case outerFam == famComparison && innerFam == famComparison:
				out = append(out, diagnostics.NewError(diagnostics.CodePrecedenceNeverNested, child.Range,
					"comparison operators cannot be chained without parentheses"))
			case outerFam == famShift && innerFam == famShift:
				out = append(out, diagnostics.NewError(diagnostics.CodePrecedenceNeverNested, child.Range,
					"shift operators cannot be nested without parentheses"))
			case (isBitwise(outerFam) || isBitwise(innerFam)) && innerFam != outerFam:
				out = append(out, diagnostics.NewWarning(diagnostics.CodePrecedenceSequencesAllowed, child.Range,
					"mixing a bitwise operator with a different operator requires parentheses"))
			case (outerFam == famLogAnd && innerFam == famLogOr) || (outerFam == famLogOr && innerFam == famLogAnd):
				out = append(out, diagnostics.NewWarning(diagnostics.CodePrecedenceSequencesAllowed, child.Range,
					"mixing && and || requires parentheses"))
			case (outerFam == famShift && innerFam == famAdditive) || (outerFam == famAdditive && innerFam == famShift):
				out = append(out, diagnostics.NewWarning(diagnostics.CodePrecedenceSequencesAllowed, child.Range,
					"mixing a shift with + or - requires parentheses"))
			}
		}
	})
	return out
}

// unwrapParen strips a single ParenExpr wrapper, reporting whether it did.
func unwrapParen(n *syntax.SyntaxNode) (*syntax.SyntaxNode, bool) {
	if n.Kind == syntax.KindParenExpr {
		for _, c := range n.Children {
			if c.Kind != syntax.KindLParen && c.Kind != syntax.KindRParen {
				return c, true
			}
		}
	}
	return n, false
}
