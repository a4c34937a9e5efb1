package syntax

// Typed AST wrappers over SyntaxNode, one per module-item production
// (ModuleItem's variants). Each is a struct holding the underlying
// *SyntaxNode plus accessor methods that down-cast children, instead of
// Rust's generated `cast`/`syntax()` trait methods.

type Function struct{ node *SyntaxNode }

func CastFunction(n *SyntaxNode) (Function, bool) {
	if n == nil || n.Kind != KindFunctionItem {
		return Function{}, false
	}
	return Function{node: n}, true
}
func (f Function) Syntax() *SyntaxNode { return f.node }
func (f Function) NameToken() *SyntaxNode {
	idents := f.node.ChildrenOfKind(KindIdent)
	if len(idents) == 0 {
		return nil
	}
	return idents[0]
}
func (f Function) ParamList() *SyntaxNode  { return f.node.FirstChildOfKind(KindParamList) }
func (f Function) Body() *SyntaxNode       { return f.node.FirstChildOfKind(KindBlockStmt) }
func (f Function) Attributes() *SyntaxNode { return f.node.FirstChildOfKind(KindAttributeList) }
func (f Function) ReturnType() *SyntaxNode {
	refs := f.node.ChildrenOfKind(KindTypeRef)
	if len(refs) == 0 {
		return nil
	}
	return refs[len(refs)-1]
}

// ReturnAttributes returns the `-> @builtin(position) vec4<f32>`-style
// attribute list attached to the return type, distinct from the
// function's own (leading) attribute list.
func (f Function) ReturnAttributes() *SyntaxNode {
	seenArrow := false
	for _, c := range f.node.Children {
		if c.Kind == KindArrow {
			seenArrow = true
		} else if seenArrow && c.Kind == KindAttributeList {
			return c
		}
	}
	return nil
}

type StructItem struct{ node *SyntaxNode }

func CastStructItem(n *SyntaxNode) (StructItem, bool) {
	if n == nil || n.Kind != KindStructItem {
		return StructItem{}, false
	}
	return StructItem{node: n}, true
}
func (s StructItem) Syntax() *SyntaxNode { return s.node }
func (s StructItem) NameToken() *SyntaxNode {
	idents := s.node.ChildrenOfKind(KindIdent)
	if len(idents) == 0 {
		return nil
	}
	return idents[0]
}
func (s StructItem) Members() []*SyntaxNode { return s.node.ChildrenOfKind(KindStructMember) }

type StructMember struct{ node *SyntaxNode }

func CastStructMember(n *SyntaxNode) (StructMember, bool) {
	if n == nil || n.Kind != KindStructMember {
		return StructMember{}, false
	}
	return StructMember{node: n}, true
}
func (m StructMember) Syntax() *SyntaxNode { return m.node }
func (m StructMember) NameToken() *SyntaxNode {
	idents := m.node.ChildrenOfKind(KindIdent)
	if len(idents) == 0 {
		return nil
	}
	return idents[0]
}
func (m StructMember) TypeRef() *SyntaxNode  { return m.node.FirstChildOfKind(KindTypeRef) }
func (m StructMember) Attributes() *SyntaxNode { return m.node.FirstChildOfKind(KindAttributeList) }

type GlobalVariable struct{ node *SyntaxNode }

func CastGlobalVariable(n *SyntaxNode) (GlobalVariable, bool) {
	if n == nil || n.Kind != KindGlobalVariableItem {
		return GlobalVariable{}, false
	}
	return GlobalVariable{node: n}, true
}
func (g GlobalVariable) Syntax() *SyntaxNode { return g.node }
func (g GlobalVariable) NameToken() *SyntaxNode {
	idents := g.node.ChildrenOfKind(KindIdent)
	if len(idents) == 0 {
		return nil
	}
	// first ident may be the address-space/access-mode inside `<...>`;
	// the variable's own name is the one immediately before `:`/`=`/`;`.
	return idents[len(idents)-1]
}
func (g GlobalVariable) TypeRef() *SyntaxNode   { return g.node.FirstChildOfKind(KindTypeRef) }
func (g GlobalVariable) Attributes() *SyntaxNode { return g.node.FirstChildOfKind(KindAttributeList) }

// AddressSpaceToken returns the `<addrspace, ...>` address-space ident, or
// nil when the variable carries no explicit address space (module-scope
// `var` always has one in valid WGSL; function-scope `var` never does).
func (g GlobalVariable) AddressSpaceToken() *SyntaxNode {
	idents := g.node.ChildrenOfKind(KindIdent)
	if len(idents) >= 2 {
		return idents[0]
	}
	return nil
}

// AccessModeToken returns the explicit `<addrspace, accessmode>` access
// mode ident, or nil when none was written (most address spaces default
// their access mode instead of requiring it spelled out).
func (g GlobalVariable) AccessModeToken() *SyntaxNode {
	idents := g.node.ChildrenOfKind(KindIdent)
	if len(idents) >= 3 {
		return idents[1]
	}
	return nil
}

type GlobalConstant struct{ node *SyntaxNode }

func CastGlobalConstant(n *SyntaxNode) (GlobalConstant, bool) {
	if n == nil || n.Kind != KindGlobalConstantItem {
		return GlobalConstant{}, false
	}
	return GlobalConstant{node: n}, true
}
func (g GlobalConstant) Syntax() *SyntaxNode { return g.node }
func (g GlobalConstant) NameToken() *SyntaxNode {
	idents := g.node.ChildrenOfKind(KindIdent)
	if len(idents) == 0 {
		return nil
	}
	return idents[0]
}
func (g GlobalConstant) TypeRef() *SyntaxNode { return g.node.FirstChildOfKind(KindTypeRef) }

type Override struct{ node *SyntaxNode }

func CastOverride(n *SyntaxNode) (Override, bool) {
	if n == nil || n.Kind != KindOverrideItem {
		return Override{}, false
	}
	return Override{node: n}, true
}
func (o Override) Syntax() *SyntaxNode { return o.node }
func (o Override) NameToken() *SyntaxNode {
	idents := o.node.ChildrenOfKind(KindIdent)
	if len(idents) == 0 {
		return nil
	}
	return idents[0]
}
func (o Override) TypeRef() *SyntaxNode { return o.node.FirstChildOfKind(KindTypeRef) }

type TypeAlias struct{ node *SyntaxNode }

func CastTypeAlias(n *SyntaxNode) (TypeAlias, bool) {
	if n == nil || n.Kind != KindTypeAliasItem {
		return TypeAlias{}, false
	}
	return TypeAlias{node: n}, true
}
func (t TypeAlias) Syntax() *SyntaxNode { return t.node }
func (t TypeAlias) NameToken() *SyntaxNode {
	idents := t.node.ChildrenOfKind(KindIdent)
	if len(idents) == 0 {
		return nil
	}
	return idents[0]
}
func (t TypeAlias) TypeRef() *SyntaxNode { return t.node.FirstChildOfKind(KindTypeRef) }

type Import struct{ node *SyntaxNode }

func CastImport(n *SyntaxNode) (Import, bool) {
	if n == nil || n.Kind != KindImportItem {
		return Import{}, false
	}
	return Import{node: n}, true
}
func (i Import) Syntax() *SyntaxNode { return i.node }

type Directive struct{ node *SyntaxNode }

func CastDirective(n *SyntaxNode) (Directive, bool) {
	if n == nil || n.Kind != KindDirectiveItem {
		return Directive{}, false
	}
	return Directive{node: n}, true
}
func (d Directive) Syntax() *SyntaxNode { return d.node }

type ConstAssert struct{ node *SyntaxNode }

func CastConstAssert(n *SyntaxNode) (ConstAssert, bool) {
	if n == nil || n.Kind != KindConstAssertItem {
		return ConstAssert{}, false
	}
	return ConstAssert{node: n}, true
}
func (c ConstAssert) Syntax() *SyntaxNode { return c.node }
