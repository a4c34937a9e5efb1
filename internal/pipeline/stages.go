package pipeline

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/infer"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/nameres"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/preprocess"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/validate"
)

// Result keys other stages and the final report read back from Context.
const (
	ResultProcessed   = "preprocess.processed"
	ResultTranslator  = "preprocess.translator"
	ResultSyntaxTree  = "syntax.root"
	ResultModule      = "itemtree.module"
	ResultModuleTypes = "infer.moduletypes"
)

// PreprocessStage expands `#ifdef`/`#import` directives.
type PreprocessStage struct {
	Defines map[string]struct{}
	Imports map[string]string
}

func (s *PreprocessStage) Name() string { return "preprocess" }

func (s *PreprocessStage) Process(ctx *Context) *Context {
	result := preprocess.Process(ctx.Text, s.Defines, s.Imports)
	ctx.Results[ResultProcessed] = result.Processed
	ctx.Results[ResultTranslator] = result.Translator
	ctx.Diagnostics.AddAll(result.Diagnostics)
	return ctx
}

// ParseStage builds the raw syntax tree. It requires
// PreprocessStage to have run first, falling back to ctx.Text if not
// (a caller composing only [ParseStage, ...] is still a valid pipeline).
type ParseStage struct{}

func (s *ParseStage) Name() string { return "parse" }

func (s *ParseStage) Process(ctx *Context) *Context {
	text, _ := ctx.Results[ResultProcessed].(string)
	if text == "" {
		text = ctx.Text
	}
	parsed := syntax.ParseFile(text)
	ctx.Results[ResultSyntaxTree] = parsed.Root
	ctx.Diagnostics.AddAll(parsed.Diagnostics)
	return ctx
}

// ItemTreeStage builds the flat module item list.
type ItemTreeStage struct{}

func (s *ItemTreeStage) Name() string { return "itemtree" }

func (s *ItemTreeStage) Process(ctx *Context) *Context {
	root, _ := ctx.Results[ResultSyntaxTree].(*syntax.SyntaxNode)
	if root == nil {
		return ctx
	}
	ctx.Results[ResultModule] = itemtree.Lower(root)
	return ctx
}

// TypeCheckStage lowers module-level types, then runs name resolution and
// inference over every function body, collecting every function's
// inference diagnostics into the shared bag.
type TypeCheckStage struct{}

func (s *TypeCheckStage) Name() string { return "typecheck" }

func (s *TypeCheckStage) Process(ctx *Context) *Context {
	text, _ := ctx.Results[ResultProcessed].(string)
	if text == "" {
		text = ctx.Text
	}
	module, _ := ctx.Results[ResultModule].(*itemtree.ModuleInfo)
	if module == nil {
		return ctx
	}

	store := types.NewStore()
	mt := infer.BuildModuleTypes(store, text, module)
	ctx.Results[ResultModuleTypes] = mt

	for _, it := range module.ByKind(itemtree.ItemFunction) {
		n := module.AstIds.Node(it.Ast)
		fn, ok := syntax.CastFunction(n)
		if !ok {
			continue
		}
		body, smap := hir.LowerFunctionBody(text, fn)
		scopes := nameres.BuildExprScopes(body)
		resolver := nameres.NewResolver(text, module, scopes, body, nameres.BuiltinNames)
		declaredRet := store.Error()
		if ret := fn.ReturnType(); ret != nil {
			declaredRet = mt.Lowerer.LowerTypeRef(ret)
		}
		result := infer.InferBody(store, text, mt, resolver, body, smap, declaredRet)
		ctx.Diagnostics.AddAll(result.Diagnostics)
	}
	return ctx
}

// ValidateStage runs the structural rule checks: precedence, address
// spaces, layout-implied host-shareability, binding uniqueness and
// entry-point I/O attributes.
type ValidateStage struct{}

func (s *ValidateStage) Name() string { return "validate" }

func (s *ValidateStage) Process(ctx *Context) *Context {
	text, _ := ctx.Results[ResultProcessed].(string)
	if text == "" {
		text = ctx.Text
	}
	root, _ := ctx.Results[ResultSyntaxTree].(*syntax.SyntaxNode)
	module, _ := ctx.Results[ResultModule].(*itemtree.ModuleInfo)
	mt, _ := ctx.Results[ResultModuleTypes].(*infer.ModuleTypes)
	if root == nil || module == nil || mt == nil {
		return ctx
	}
	ctx.Diagnostics.AddAll(validate.Module(root, text, module, mt))
	return ctx
}

// Standard returns the fixed stage order every batch check runs,
// preprocess through validate -- the composition cmd/wgslcheck's `check`
// command runs per file.
func Standard(defines map[string]struct{}, imports map[string]string) *Pipeline {
	return New(
		&PreprocessStage{Defines: defines, Imports: imports},
		&ParseStage{},
		&ItemTreeStage{},
		&TypeCheckStage{},
		&ValidateStage{},
	)
}
