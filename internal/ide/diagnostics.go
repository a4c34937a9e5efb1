package ide

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/validate"
)

// Diagnostics implements the diagnostics operation: the union of
// parse errors, inference diagnostics, validation diagnostics and
// precedence lints, each mapped back to original-source coordinates.
// Preprocessor diagnostics are already in original coordinates and pass
// through untranslated.
func (a *Analysis) Diagnostics() []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	out = append(out, a.preprocessDiagnostics...)

	for _, d := range a.parseDiagnostics {
		out = append(out, a.translateDiagnostic(d))
	}
	for _, fa := range a.Functions {
		for _, d := range fa.Infer.Diagnostics {
			out = append(out, a.translateDiagnostic(d))
		}
	}
	for _, d := range validate.Module(a.Root, a.Processed, a.Module, a.ModuleTypes) {
		out = append(out, a.translateDiagnostic(d))
	}
	return out
}

func (a *Analysis) translateDiagnostic(d diagnostics.Diagnostic) diagnostics.Diagnostic {
	d.Range = a.toOriginal(d.Range)
	if len(d.Related) > 0 {
		related := make([]diagnostics.RelatedInfo, len(d.Related))
		for i, rel := range d.Related {
			rel.Range = a.toOriginal(rel.Range)
			related[i] = rel
		}
		d.Related = related
	}
	return d
}
