// Package diagnostics is the error taxonomy: parse errors, lowering's
// synthetic-node markers, resolver failures, inference diagnostics,
// validation diagnostics, and cycle reports. A typed-error style plus a
// collect-don't-abort usage pattern (`ctx.Errors = append(ctx.Errors,
// err)`): a Diagnostic is a value, and nothing in this codebase panics to
// report one.
package diagnostics

import (
	"fmt"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
)

// Severity classifies how an IDE should render a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Code is a stable diagnostic identifier, grouped by the component that
// raises it so codes never collide across layers.
type Code string

const (
	// Parse-layer.
	CodeParseError Code = "P000"

	// Name resolution.
	CodeUnresolvedName Code = "R001"

	// Type inference.
	CodeTypeMismatch      Code = "T001"
	CodeNoBuiltinOverload Code = "T002"

	// Validation (address space / access mode / attributes).
	CodeAddressSpaceScope  Code = "V001"
	CodeAddressSpaceAccess Code = "V002"
	CodeAddressSpaceType   Code = "V003"
	CodeDuplicateBinding   Code = "V004"
	CodeMissingBuiltinIO   Code = "V005"

	// Precedence lint.
	CodePrecedenceNeverNested      Code = "L001"
	CodePrecedenceSequencesAllowed Code = "L002"

	// Preprocessor.
	CodeImportCycle    Code = "B001"
	CodeUnknownImport  Code = "B002"

	// Query engine.
	CodeCycle Code = "Q001"
)

// Diagnostic is one reported problem, anchored to a text range in some file.
// The range is in whatever coordinate space the reporting layer works in;
// IDE adapters are responsible for translating preprocessor/HIR-local
// ranges back to original source ranges.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Range    span.Range
	Message  string
	// Related holds secondary locations relevant to the diagnostic, e.g.
	// the other @binding(n) declaration a duplicate-binding error conflicts
	// with.
	Related []RelatedInfo
}

type RelatedInfo struct {
	Range   span.Range
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s [%s]: %s", d.Severity, d.Code, d.Message)
}

func New(code Code, sev Severity, r span.Range, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Code: code, Severity: sev, Range: r, Message: fmt.Sprintf(format, args...)}
}

func NewError(code Code, r span.Range, format string, args ...interface{}) Diagnostic {
	return New(code, SeverityError, r, format, args...)
}

func NewWarning(code Code, r span.Range, format string, args ...interface{}) Diagnostic {
	return New(code, SeverityWarning, r, format, args...)
}

// WithRelated returns a copy of d with related information attached.
func (d Diagnostic) WithRelated(r span.Range, msg string) Diagnostic {
	d.Related = append(append([]RelatedInfo{}, d.Related...), RelatedInfo{Range: r, Message: msg})
	return d
}

// Bag accumulates diagnostics across a pipeline stage: stages append to a
// shared bag and never abort on the first error, so errors stay locally
// absorbed rather than propagating.
type Bag struct {
	items []Diagnostic
}

func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

func (b *Bag) AddAll(ds []Diagnostic) { b.items = append(b.items, ds...) }

func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
