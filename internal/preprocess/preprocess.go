package preprocess

import (
	"strings"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
)

// UnconfiguredCode records an `#ifdef`/`#ifndef` block whose condition was
// not satisfied by the active defines. Range, in original-text coordinates,
// covers only the opening `#ifdef`/`#ifndef` directive line, not the
// excised body; an `#else` branch that is excised is not recorded.
type UnconfiguredCode struct {
	Range span.Range
	Flag  string
}

// Result is the output of Process: the text the parser actually sees, the
// regions that were configured away, the offset translator back to
// original source, and any diagnostics raised along the way (malformed
// directives, import cycles, unknown import keys).
type Result struct {
	Processed    string
	Unconfigured []UnconfiguredCode
	Translator   *Translator
	Diagnostics  []diagnostics.Diagnostic
}

const maxImportDepth = 32

// Process expands `#ifdef`/`#ifndef`/`#else`/`#endif` blocks against
// defines, then substitutes `#import KEY` directives from imports. Both
// passes run line-oriented -- this is a lightweight preprocessor, not a C
// preprocessor: no macro expansion, no token pasting.
func Process(text string, defines map[string]struct{}, imports map[string]string) Result {
	var diags []diagnostics.Diagnostic

	afterIfdef, ifdefUnconfigured, ifdefDiags := expandConditionals(text, defines)
	diags = append(diags, ifdefDiags...)

	processed, translator, importDiags := expandImports(afterIfdef.text, imports, map[string]bool{}, afterIfdef.translator)
	diags = append(diags, importDiags...)

	// Re-anchor the #ifdef-excision ranges (already in original-text
	// coordinates from expandConditionals) through the import-expansion
	// translator is unnecessary: they were recorded against the original
	// text already and expandImports' translator also resolves back to
	// that same original text, so no further mapping is required.
	return Result{
		Processed:    processed,
		Unconfigured: ifdefUnconfigured,
		Translator:   translator,
		Diagnostics:  diags,
	}
}

type conditionalResult struct {
	text       string
	translator *Translator
}

// expandConditionals retains blocks whose condition is satisfied by
// defines and excises the rest, recording each excised range.
func expandConditionals(text string, defines map[string]struct{}) (conditionalResult, []UnconfiguredCode, []diagnostics.Diagnostic) {
	var out strings.Builder
	var unconfigured []UnconfiguredCode
	var diags []diagnostics.Diagnostic
	tr := NewTranslator()
	tr.entries = tr.entries[:0] // we rebuild with explicit entries below

	type frame struct {
		flag      string
		negate    bool
		taken     bool // this branch (if/else) is currently emitting
		everTaken bool // some branch in this if/else chain has already emitted
	}
	var stack []frame

	activeNow := func() bool {
		for _, f := range stack {
			if !f.taken {
				return false
			}
		}
		return true
	}

	var originalOffset span.Offset
	lines := splitKeepingNewlines(text)

	emitNormalEntry := func() {
		tr.addNormal(span.Offset(out.Len()), originalOffset)
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#ifdef"):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "#ifdef"))
			_, has := defines[name]
			parentActive := activeNow()
			stack = append(stack, frame{flag: name, negate: false, taken: parentActive && has, everTaken: parentActive && has})
			if parentActive && !has {
				unconfigured = append(unconfigured, UnconfiguredCode{Range: span.NewRange(originalOffset, originalOffset+span.Offset(len(line))), Flag: name})
			}
		case strings.HasPrefix(trimmed, "#ifndef"):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "#ifndef"))
			_, has := defines[name]
			parentActive := activeNow()
			stack = append(stack, frame{flag: name, negate: true, taken: parentActive && !has, everTaken: parentActive && !has})
			if parentActive && has {
				unconfigured = append(unconfigured, UnconfiguredCode{Range: span.NewRange(originalOffset, originalOffset+span.Offset(len(line))), Flag: name})
			}
		case strings.HasPrefix(trimmed, "#else"):
			if len(stack) == 0 {
				diags = append(diags, diagnostics.NewError(diagnostics.CodeParseError, span.NewRange(originalOffset, originalOffset+span.Offset(len(line))), "preprocess: #else without matching #ifdef/#ifndef"))
			} else {
				top := &stack[len(stack)-1]
				parentActive := true
				for _, f := range stack[:len(stack)-1] {
					if !f.taken {
						parentActive = false
					}
				}
				top.taken = parentActive && !top.everTaken
				top.everTaken = top.everTaken || top.taken
			}
		case strings.HasPrefix(trimmed, "#endif"):
			if len(stack) == 0 {
				diags = append(diags, diagnostics.NewError(diagnostics.CodeParseError, span.NewRange(originalOffset, originalOffset+span.Offset(len(line))), "preprocess: #endif without matching #ifdef/#ifndef"))
			} else {
				stack = stack[:len(stack)-1]
			}
		default:
			if activeNow() {
				emitNormalEntry()
				out.WriteString(line)
			}
		}
		originalOffset += span.Offset(len(line))
	}

	if len(stack) > 0 {
		diags = append(diags, diagnostics.NewError(diagnostics.CodeParseError, span.NewRange(originalOffset, originalOffset), "preprocess: unterminated #ifdef/#ifndef (%d open block(s))", len(stack)))
	}

	if len(tr.entries) == 0 {
		tr.entries = append(tr.entries, entry{processedStart: 0, originalStart: 0, strategy: StrategyNormal})
	}
	tr.finalize()

	return conditionalResult{text: out.String(), translator: tr}, unconfigured, diags
}

// splitKeepingNewlines splits text into lines, each retaining its trailing
// "\n" (or lack thereof on the final line), so offsets stay exact.
func splitKeepingNewlines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// expandImports substitutes `#import KEY` lines with the registered
// snippet text, recursively preprocessing the snippet itself (so a snippet
// may contain further `#import` directives) and detecting cycles via
// stack, the set of import keys currently being expanded on the path from
// the root file.
func expandImports(text string, imports map[string]string, stack map[string]bool, parentTranslator *Translator) (string, *Translator, []diagnostics.Diagnostic) {
	var out strings.Builder
	var diags []diagnostics.Diagnostic
	tr := NewTranslator()
	tr.entries = tr.entries[:0]

	lines := splitKeepingNewlines(text)
	var processedOffset span.Offset

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#import") {
			key := strings.TrimSpace(strings.TrimPrefix(trimmed, "#import"))
			originalStart := parentTranslator.TranslateStart(processedOffset)
			originalEnd := parentTranslator.TranslateEnd(processedOffset + span.Offset(len(line)))

			snippet, ok := imports[key]
			if !ok {
				diags = append(diags, diagnostics.NewError(diagnostics.CodeUnknownImport, span.NewRange(originalStart, originalEnd), "preprocess: unknown import %q", key))
				processedOffset += span.Offset(len(line))
				continue
			}
			if stack[key] {
				diags = append(diags, diagnostics.NewError(diagnostics.CodeImportCycle, span.NewRange(originalStart, originalEnd), "preprocess: import cycle detected at %q", key))
				processedOffset += span.Offset(len(line))
				continue
			}
			if len(stack) >= maxImportDepth {
				diags = append(diags, diagnostics.NewError(diagnostics.CodeImportCycle, span.NewRange(originalStart, originalEnd), "preprocess: import nesting too deep at %q", key))
				processedOffset += span.Offset(len(line))
				continue
			}

			nextStack := make(map[string]bool, len(stack)+1)
			for k := range stack {
				nextStack[k] = true
			}
			nextStack[key] = true

			innerTranslator := NewTranslator()
			innerTranslator.entries = []entry{{processedStart: 0, originalStart: originalStart, strategy: StrategyNormal}}
			expanded, _, innerDiags := expandImports(snippet, imports, nextStack, innerTranslator)
			diags = append(diags, innerDiags...)

			tr.addImport(span.Offset(out.Len()), originalStart, originalEnd)
			out.WriteString(expanded)

			processedOffset += span.Offset(len(line))
			continue
		}

		originalStart := parentTranslator.TranslateStart(processedOffset)
		tr.addNormal(span.Offset(out.Len()), originalStart)
		out.WriteString(line)
		processedOffset += span.Offset(len(line))
	}

	if len(tr.entries) == 0 {
		tr.entries = append(tr.entries, entry{processedStart: 0, originalStart: 0, strategy: StrategyNormal})
	}
	tr.finalize()
	return out.String(), tr, diags
}
