// Package validate implements the precedence lint, address-space /
// access-mode rules for module-scope variables, WGSL memory layout
// computation, and resource binding uniqueness and entry-point I/O
// attribute checks.
//
// A diagnostic-collection style (collect into a slice, never abort the
// walk on the first problem) generalized from single-pass static-
// analysis rules to this project's layout/address-space/attribute rules.
package validate

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/infer"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// Module runs every validation rule against one parsed+lowered file and
// returns the combined diagnostics. root is the file's parsed SourceFile
// (precedence lints walk syntax directly, ahead of/independent from type
// inference).
func Module(root *syntax.SyntaxNode, text string, module *itemtree.ModuleInfo, mt *infer.ModuleTypes) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	out = append(out, PrecedenceLint(root)...)
	out = append(out, ValidateAddressSpaces(text, module, mt)...)
	out = append(out, ValidateBindingUniqueness(text, module)...)
	out = append(out, ValidateEntryPointIO(text, module)...)
	return out
}
