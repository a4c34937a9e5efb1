package validate

import (
	"strconv"
	"strings"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

// attribute is one parsed `@name(args...)` attribute's name plus its
// (pre-parsed) sole integer argument, if it has one.
type attribute struct {
	name   string
	intArg int64
	hasInt bool
}

func attributesOf(n *syntax.SyntaxNode, text string) []attribute {
	return parseAttrList(n.FirstChildOfKind(syntax.KindAttributeList), text)
}

func parseAttrList(list *syntax.SyntaxNode, text string) []attribute {
	if list == nil {
		return nil
	}
	var out []attribute
	for _, a := range list.ChildrenOfKind(syntax.KindAttribute) {
		idents := a.ChildrenOfKind(syntax.KindIdent)
		if len(idents) == 0 {
			continue
		}
		at := attribute{name: idents[0].Text(text)}
		for _, lit := range a.ChildrenOfKind(syntax.KindLiteralExpr) {
			ints := lit.ChildrenOfKind(syntax.KindIntLiteral)
			if len(ints) != 1 {
				continue
			}
			raw := strings.TrimSuffix(strings.TrimSuffix(ints[0].Text(text), "u"), "i")
			if v, err := strconv.ParseInt(raw, 0, 64); err == nil {
				at.intArg, at.hasInt = v, true
			}
			break
		}
		out = append(out, at)
	}
	return out
}

func findAttr(attrs []attribute, name string) (attribute, bool) {
	for _, a := range attrs {
		if a.name == name {
			return a, true
		}
	}
	return attribute{}, false
}

func hasAnyAttr(attrs []attribute, names ...string) bool {
	for _, n := range names {
		if _, ok := findAttr(attrs, n); ok {
			return true
		}
	}
	return false
}

// ValidateBindingUniqueness checks that every module-scope `var` carrying
// both a `@group` and `@binding` attribute has a distinct (group, binding)
// pair, since two resources bound to the same slot would silently alias
// at pipeline-creation time.
func ValidateBindingUniqueness(text string, module *itemtree.ModuleInfo) []diagnostics.Diagnostic {
	type key struct{ group, binding int64 }
	seen := map[key]syntax.SyntaxNode{}
	var out []diagnostics.Diagnostic
	for _, it := range module.ByKind(itemtree.ItemGlobalVariable) {
		n := module.AstIds.Node(it.Ast)
		attrs := attributesOf(n, text)
		g, gok := findAttr(attrs, "group")
		b, bok := findAttr(attrs, "binding")
		if !gok || !bok || !g.hasInt || !b.hasInt {
			continue
		}
		k := key{g.intArg, b.intArg}
		if prior, dup := seen[k]; dup {
			out = append(out, diagnostics.Diagnostic{
				Code:     diagnostics.CodeDuplicateBinding,
				Severity: diagnostics.SeverityError,
				Range:    n.Range,
				Message:  "duplicate resource binding @group(" + strconv.FormatInt(k.group, 10) + ") @binding(" + strconv.FormatInt(k.binding, 10) + ")",
				Related:  []diagnostics.RelatedInfo{{Range: prior.Range, Message: "first bound here"}},
			})
			continue
		}
		seen[k] = *n
	}
	return out
}

// entryPointAttrs are the shader-stage attributes marking a function as a
// pipeline entry point rather than a plain callable function.
var entryPointAttrs = []string{"vertex", "fragment", "compute"}

// isNumericTypeRef reports whether ty names a bare scalar/vector/matrix
// builtin type by its leading identifier, as opposed to a struct (whose
// members, not the parameter/return type itself, carry the I/O
// attributes and so are exempt from this check).
func isNumericTypeRef(ty *syntax.SyntaxNode, text string) bool {
	idents := ty.ChildrenOfKind(syntax.KindIdent)
	if len(idents) == 0 {
		return false
	}
	name := idents[0].Text(text)
	if _, ok := types.ScalarByName(name); ok {
		return true
	}
	if _, ok := types.VecSize(name); ok {
		return true
	}
	if _, _, ok := types.MatSize(name); ok {
		return true
	}
	return false
}

// ValidateEntryPointIO checks that every scalar/vector/matrix parameter
// (and scalar/vector/matrix return type) of an entry-point function
// carries a `@builtin` or `@location` attribute, since the pipeline stage
// otherwise has no way to know where that value comes from or goes.
// Struct parameter/return types are expected to carry the attributes on
// their own members instead and are not re-checked here.
func ValidateEntryPointIO(text string, module *itemtree.ModuleInfo) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, it := range module.ByKind(itemtree.ItemFunction) {
		n := module.AstIds.Node(it.Ast)
		fn, ok := syntax.CastFunction(n)
		if !ok {
			continue
		}
		if !hasAnyAttr(attributesOf(n, text), entryPointAttrs...) {
			continue
		}
		if pl := fn.ParamList(); pl != nil {
			for _, p := range pl.ChildrenOfKind(syntax.KindParam) {
				ty := p.FirstChildOfKind(syntax.KindTypeRef)
				if ty == nil || !isNumericTypeRef(ty, text) {
					continue
				}
				if !hasAnyAttr(attributesOf(p, text), "builtin", "location") {
					out = append(out, diagnostics.NewError(diagnostics.CodeMissingBuiltinIO, p.Range,
						"entry point parameter must have a @builtin or @location attribute"))
				}
			}
		}
		if ret := fn.ReturnType(); ret != nil && isNumericTypeRef(ret, text) {
			if !hasAnyAttr(parseAttrList(fn.ReturnAttributes(), text), "builtin", "location") {
				out = append(out, diagnostics.NewError(diagnostics.CodeMissingBuiltinIO, ret.Range,
					"entry point return type must have a @builtin or @location attribute"))
			}
		}
	}
	return out
}
