// Package itemtree builds a flat, per-file list of module items
// (functions, structs, globals, type aliases, imports, directives,
// const-asserts) plus a stable id (FileAstId) for each item's syntax
// node, so later layers (HIR, name resolution) can refer to "the 3rd
// function in this file" without holding a live *syntax.SyntaxNode across
// a reparse.
//
// Built in one pass over the tree, assigning stable handles before any
// query runs against them -- the same shape as building a symbol table
// in a single walk, adapted from runtime symbol handles to syntax-tree
// item handles.
package itemtree

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// FileAstId is a stable reference to one item-level syntax node within a
// single file: its index into that file's AstIdMap. Stable means it
// survives a reparse of unrelated parts of the file as long as the item
// list itself doesn't reorder -- callers needing true cross-reparse
// stability should resolve through AstIdMap.Pointer and re-match by
// content, same caveat as rust-analyzer's FileAstId.
type FileAstId uint32

// AstIdMap assigns a FileAstId to every module item node encountered in
// a single preorder walk of a SourceFile, in source order.
type AstIdMap struct {
	pointers []syntax.AstPointer[syntax.AstNode]
	nodes    []*syntax.SyntaxNode
}

// Pointer returns the stable pointer for id, or the zero pointer if id is
// out of range.
func (m *AstIdMap) Pointer(id FileAstId) (syntax.AstPointer[syntax.AstNode], bool) {
	if int(id) >= len(m.pointers) {
		return syntax.AstPointer[syntax.AstNode]{}, false
	}
	return m.pointers[id], true
}

// Node returns the syntax node id was assigned from at build time. Valid
// only against the same tree AstIdMap was built from; use Pointer.Resolve
// against a fresh tree otherwise.
func (m *AstIdMap) Node(id FileAstId) *syntax.SyntaxNode {
	if int(id) >= len(m.nodes) {
		return nil
	}
	return m.nodes[id]
}

func (m *AstIdMap) alloc(n *syntax.SyntaxNode) FileAstId {
	id := FileAstId(len(m.nodes))
	m.nodes = append(m.nodes, n)
	m.pointers = append(m.pointers, syntax.AstPointer[syntax.AstNode]{Range: n.Range, Kind: n.Kind})
	return id
}

// ItemKind discriminates ModuleItem's sum-type variants.
type ItemKind int

const (
	ItemFunction ItemKind = iota
	ItemStruct
	ItemGlobalVariable
	ItemGlobalConstant
	ItemOverride
	ItemTypeAlias
	ItemImport
	ItemDirective
	ItemAssertStatement
)

// ModuleItem is one top-level declaration: its kind plus the FileAstId of
// its syntax node.
type ModuleItem struct {
	Kind ItemKind
	Ast  FileAstId
}

// ModuleInfo is the item-tree view of a single file: its items in source
// order plus the AstIdMap needed to recover their syntax nodes.
type ModuleInfo struct {
	Items  []ModuleItem
	AstIds *AstIdMap
}

var kindForSyntax = map[syntax.SyntaxKind]ItemKind{
	syntax.KindFunctionItem:       ItemFunction,
	syntax.KindStructItem:         ItemStruct,
	syntax.KindGlobalVariableItem: ItemGlobalVariable,
	syntax.KindGlobalConstantItem: ItemGlobalConstant,
	syntax.KindOverrideItem:       ItemOverride,
	syntax.KindTypeAliasItem:      ItemTypeAlias,
	syntax.KindImportItem:         ItemImport,
	syntax.KindDirectiveItem:      ItemDirective,
	syntax.KindConstAssertItem:    ItemAssertStatement,
}

// Lower walks a parsed SourceFile's direct children and builds its
// ModuleInfo. Items nested inside a function body (e.g. a local
// const_assert) are not module items and are left for the HIR layer.
func Lower(root *syntax.SyntaxNode) *ModuleInfo {
	info := &ModuleInfo{AstIds: &AstIdMap{}}
	if root == nil {
		return info
	}
	for _, child := range root.Children {
		kind, ok := kindForSyntax[child.Kind]
		if !ok {
			continue
		}
		id := info.AstIds.alloc(child)
		info.Items = append(info.Items, ModuleItem{Kind: kind, Ast: id})
	}
	return info
}

// ByKind filters Items to a single ItemKind, preserving source order.
func (m *ModuleInfo) ByKind(k ItemKind) []ModuleItem {
	var out []ModuleItem
	for _, it := range m.Items {
		if it.Kind == k {
			out = append(out, it)
		}
	}
	return out
}

// FindFunction returns the FileAstId of the first function item named
// name, used by name resolution's module-scope lookup.
func (m *ModuleInfo) FindFunction(text, name string) (FileAstId, bool) {
	for _, it := range m.ByKind(ItemFunction) {
		n := m.AstIds.Node(it.Ast)
		fn, ok := syntax.CastFunction(n)
		if !ok {
			continue
		}
		if tok := fn.NameToken(); tok != nil && tok.Text(text) == name {
			return it.Ast, true
		}
	}
	return 0, false
}
