// Package pipeline composes the fixed analysis stages a source file runs
// through outside the query database: preprocess, parse, lower, resolve,
// infer, validate. Run loops over Processors, continuing past a failing
// stage so later stages can still contribute diagnostics, and carries a
// single file's text plus its accumulated diagnostics bag rather than
// any one stage's concrete result type.
package pipeline

import "github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"

// Context flows through every Processor. Each stage reads whatever
// previous stages stashed on it (Processed text, a *syntax.Parse, …) and
// writes its own result plus any diagnostics; stages never see each
// other's concrete types, only this shared bag, so cmd/wgslcheck can grow
// the pipeline without every stage depending on every other stage's
// package.
type Context struct {
	FileName string
	Text     string

	// Results is populated by stage name so later stages (and the final
	// report) can fetch an earlier stage's output without a hard type
	// dependency between stage packages. Values are stage-defined.
	Results map[string]any

	Diagnostics diagnostics.Bag
}

func NewContext(fileName, text string) *Context {
	return &Context{FileName: fileName, Text: text, Results: map[string]any{}}
}

// Processor is one pipeline stage.
type Processor interface {
	Name() string
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed ordered list of stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, continuing past a stage that added
// error diagnostics so later stages still run: a diagnostic in the
// preprocessor shouldn't suppress the parser's own diagnostics, since an
// IDE wants to show everything it found in one pass.
func (p *Pipeline) Run(initial *Context) *Context {
	ctx := initial
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}
