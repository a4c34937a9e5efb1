// Package ide implements the thin, stateless query compositions an
// editor integration calls directly -- go-to-definition, hover,
// completions, inlay hints, the unified diagnostics feed, and a
// syntax-tree dump for debugging the parser itself.
//
// A request-handler composition style (run the fixed pipeline once and
// read back whatever stage produced the answer it needs) rather than a
// fresh pipeline run per query.
package ide

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/hir"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/infer"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/logx"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/nameres"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/preprocess"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/span"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

// FunctionAnalysis is everything built for a single function item: its
// HIR body, the scope tree and resolver over it, and the inferred type
// of every expression and binding it contains.
type FunctionAnalysis struct {
	Item      itemtree.FileAstId
	Fn        syntax.Function
	Body      *hir.Body
	SourceMap *hir.BodySourceMap
	Scopes    *nameres.ExprScopes
	Resolver  *nameres.Resolver
	Infer     *infer.Result
}

// Analysis is the full result of running every pipeline stage over one
// file's text once: the shared artifact every IDE operation below reads
// from instead of re-running preprocess/parse/lower/infer per request.
type Analysis struct {
	FileName string

	Text       string // original, pre-preprocessing source
	Processed  string // what the parser actually saw
	Translator *preprocess.Translator

	Root   *syntax.SyntaxNode
	Module *itemtree.ModuleInfo

	Store       *types.Store
	ModuleTypes *infer.ModuleTypes

	Functions map[itemtree.FileAstId]*FunctionAnalysis

	parseDiagnostics      []diagnostics.Diagnostic
	preprocessDiagnostics []diagnostics.Diagnostic
}

// Analyze runs the whole pipeline (preprocess, parse, item tree, HIR
// lowering, scope/name resolution, type inference) over text once. defines
// and imports are the `shader_defs`/`custom_imports` inputs; either may be
// nil.
func Analyze(fileName, text string, defines map[string]struct{}, imports map[string]string) *Analysis {
	pre := preprocess.Process(text, defines, imports)
	parsed := syntax.ParseFile(pre.Processed)
	module := itemtree.Lower(parsed.Root)
	store := types.NewStore()
	mt := infer.BuildModuleTypes(store, pre.Processed, module)

	a := &Analysis{
		FileName:              fileName,
		Text:                  text,
		Processed:             pre.Processed,
		Translator:            pre.Translator,
		Root:                  parsed.Root,
		Module:                module,
		Store:                 store,
		ModuleTypes:           mt,
		Functions:             map[itemtree.FileAstId]*FunctionAnalysis{},
		parseDiagnostics:      parsed.Diagnostics,
		preprocessDiagnostics: pre.Diagnostics,
	}

	for _, it := range module.ByKind(itemtree.ItemFunction) {
		n := module.AstIds.Node(it.Ast)
		fn, ok := syntax.CastFunction(n)
		if !ok {
			continue
		}
		body, smap := hir.LowerFunctionBody(pre.Processed, fn)
		scopes := nameres.BuildExprScopes(body)
		resolver := nameres.NewResolver(pre.Processed, module, scopes, body, nameres.BuiltinNames)
		declaredRet := store.Error()
		if ret := fn.ReturnType(); ret != nil {
			declaredRet = mt.Lowerer.LowerTypeRef(ret)
		}
		result := infer.InferBody(store, pre.Processed, mt, resolver, body, smap, declaredRet)
		a.Functions[it.Ast] = &FunctionAnalysis{
			Item: it.Ast, Fn: fn, Body: body, SourceMap: smap,
			Scopes: scopes, Resolver: resolver, Infer: result,
		}
	}

	logx.Printf("analyzed %s: %d item(s), %d function body(ies)", fileName, len(module.Items), len(a.Functions))
	return a
}

// functionAt returns the FunctionAnalysis whose syntax range contains
// processed-text offset, or nil if offset falls outside every function
// body (e.g. inside a struct or global declaration).
func (a *Analysis) functionAt(offset span.Offset) *FunctionAnalysis {
	for _, fa := range a.Functions {
		if fa.Fn.Syntax().Range.Contains(offset) {
			return fa
		}
	}
	return nil
}

// exprAt finds the HIR expression whose recorded source range exactly
// matches target -- the reverse of BodySourceMap's id-to-range direction,
// needed because go-to-definition/hover/inlay all start from a syntax
// position, not an already-known ExpressionId.
func exprAt(fa *FunctionAnalysis, target span.Range) (hir.ExpressionId, bool) {
	for id, src := range fa.SourceMap.ExprSyntax {
		if !src.Synthetic && src.Ptr.Range == target {
			return id, true
		}
	}
	return 0, false
}
