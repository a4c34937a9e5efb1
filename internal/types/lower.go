package types

import (
	"strconv"
	"strings"

	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
)

// Lowerer turns syntax TypeRef nodes into interned Ty values. Struct and
// alias names aren't resolvable from syntax alone, so a Lowerer is
// handed lookup callbacks closing over whatever module/name resolution
// context the caller already built, the same way a type checker takes a
// symbol table rather than owning one.
type Lowerer struct {
	Store *Store
	Text  string

	// LookupStruct resolves a bare name to a struct type, consulting the
	// module item tree.
	LookupStruct func(name string) (TyId, bool)
	// LookupAlias resolves a bare name to whatever `alias NAME = ...`
	// lowered to.
	LookupAlias func(name string) (TyId, bool)
}

func NewLowerer(store *Store, text string, lookupStruct, lookupAlias func(string) (TyId, bool)) *Lowerer {
	return &Lowerer{Store: store, Text: text, LookupStruct: lookupStruct, LookupAlias: lookupAlias}
}

var scalarNames = map[string]ScalarKind{
	"bool": SBool, "i32": SI32, "u32": SU32, "f32": SF32, "f16": SF16,
}

// ScalarByName exposes the scalar-name table to other packages for
// bare-name type-conversion constructor lookup, e.g. `f32(x)`.
func ScalarByName(name string) (ScalarKind, bool) {
	k, ok := scalarNames[name]
	return k, ok
}

// VecSize reports the N in "vecN", 0 if name isn't a vector constructor
// name.
func VecSize(name string) (int, bool) {
	if len(name) != 4 || !strings.HasPrefix(name, "vec") {
		return 0, false
	}
	return vecSize(name[3])
}

// MatSize reports the (cols, rows) in "matCxR", ok=false if name isn't a
// matrix constructor name.
func MatSize(name string) (cols, rows int, ok bool) {
	if len(name) != 6 || !strings.HasPrefix(name, "mat") {
		return 0, 0, false
	}
	cols, cok := vecSize(name[3])
	rows, rok := vecSize(name[5])
	return cols, rows, cok && rok
}

// LowerTypeRef maps a TypeRef syntax node into Ty:
// vector/matrix/array generic arguments are lowered recursively, address
// spaces and access modes on pointer/reference types pass through
// unchanged, and anything unknown or malformed lowers to Error -- which
// absorbs rather than cascades into further diagnostics.
func (lo *Lowerer) LowerTypeRef(n *syntax.SyntaxNode) TyId {
	if n == nil || n.Kind != syntax.KindTypeRef {
		return lo.Store.Error()
	}
	idents := n.ChildrenOfKind(syntax.KindIdent)
	if len(idents) == 0 {
		return lo.Store.Error()
	}
	name := idents[0].Text(lo.Text)
	args := lo.genericArgs(n)

	if sk, ok := scalarNames[name]; ok {
		return lo.Store.Scalar(sk)
	}

	switch {
	case name == "atomic":
		if len(args) != 1 {
			return lo.Store.Error()
		}
		return lo.Store.Atomic(lo.lowerArg(args[0]))

	case strings.HasPrefix(name, "vec") && len(name) == 4:
		size, ok := vecSize(name[3])
		if !ok || len(args) != 1 {
			return lo.Store.Error()
		}
		return lo.Store.Vector(size, lo.lowerArg(args[0]))

	case strings.HasPrefix(name, "mat") && len(name) == 6:
		cols, rok := vecSize(name[3])
		rows, cok := vecSize(name[5])
		if !rok || !cok || len(args) != 1 {
			return lo.Store.Error()
		}
		return lo.Store.Matrix(cols, rows, lo.lowerArg(args[0]))

	case name == "array":
		switch len(args) {
		case 1:
			return lo.Store.Array(lo.lowerArg(args[0]), ArrayLen{Dynamic: true})
		case 2:
			elem := lo.lowerArg(args[0])
			n, ok := arrayLenOf(args[1])
			if !ok {
				return lo.Store.Error()
			}
			return lo.Store.Array(elem, ArrayLen{N: n})
		default:
			return lo.Store.Error()
		}

	case name == "ptr":
		return lo.lowerPointerLike(args, false)
	case name == "ref":
		return lo.lowerPointerLike(args, true)

	case name == "sampler":
		return lo.Store.Sampler(false)
	case name == "sampler_comparison":
		return lo.Store.Sampler(true)

	case strings.HasPrefix(name, "texture_"):
		return lo.lowerTexture(name, args)
	}

	if id, ok := lo.LookupAlias(name); ok {
		return id
	}
	if id, ok := lo.LookupStruct(name); ok {
		return id
	}
	return lo.Store.Error()
}

// genericArgs returns the `<...>` argument nodes of a TypeRef: either
// nested TypeRefs or, for array lengths, int-literal tokens.
func (lo *Lowerer) genericArgs(n *syntax.SyntaxNode) []*syntax.SyntaxNode {
	var args []*syntax.SyntaxNode
	for _, c := range n.Children {
		if c.Kind == syntax.KindTypeRef || c.Kind == syntax.KindIntLiteral {
			args = append(args, c)
		}
	}
	// The first TypeRef-shaped ident (the head name) was already
	// extracted via ChildrenOfKind(Ident) above; TypeRef args only ever
	// appear after the opening `<`, so nothing here double-counts it
	// since the head name is a bare Ident token, not a TypeRef node.
	return args
}

func (lo *Lowerer) lowerArg(n *syntax.SyntaxNode) TyId {
	if n.Kind != syntax.KindTypeRef {
		return lo.Store.Error()
	}
	return lo.LowerTypeRef(n)
}

func arrayLenOf(n *syntax.SyntaxNode) (uint64, bool) {
	if n.Kind != syntax.KindIntLiteral || n.Token == nil {
		return 0, false
	}
	text := strings.TrimRight(n.Token.Text, "iu")
	v, err := strconv.ParseUint(text, 0, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func vecSize(b byte) (int, bool) {
	switch b {
	case '2':
		return 2, true
	case '3':
		return 3, true
	case '4':
		return 4, true
	default:
		return 0, false
	}
}

// lowerPointerLike handles `ptr<addrspace, type[, access]>` and the rarer
// explicit `ref<addrspace, type[, access]>` spelling -- both carry an
// address space and access mode that pass through unchanged per spec
// §4.G.
func (lo *Lowerer) lowerPointerLike(args []*syntax.SyntaxNode, isRef bool) TyId {
	if len(args) < 2 {
		return lo.Store.Error()
	}
	addrspace := ""
	if args[0].Kind == syntax.KindTypeRef {
		idents := args[0].ChildrenOfKind(syntax.KindIdent)
		if len(idents) > 0 {
			addrspace = idents[0].Text(lo.Text)
		}
	}
	elem := lo.lowerArg(args[1])
	access := AccessRead
	if len(args) >= 3 && args[2].Kind == syntax.KindTypeRef {
		idents := args[2].ChildrenOfKind(syntax.KindIdent)
		if len(idents) > 0 {
			access = accessModeOf(idents[0].Text(lo.Text))
		}
	} else {
		access = defaultAccessFor(addrspace)
	}
	if isRef {
		return lo.Store.Ref(addrspace, elem, access)
	}
	return lo.Store.Ptr(addrspace, elem, access)
}

func accessModeOf(s string) AccessMode {
	switch s {
	case "write":
		return AccessWrite
	case "read_write":
		return AccessReadWrite
	default:
		return AccessRead
	}
}

// defaultAccessFor mirrors WGSL's per-address-space default access mode:
// storage defaults to read, function/private/workgroup to read_write.
func defaultAccessFor(addrspace string) AccessMode {
	switch addrspace {
	case "storage", "uniform":
		return AccessRead
	default:
		return AccessReadWrite
	}
}

func (lo *Lowerer) lowerTexture(name string, args []*syntax.SyntaxNode) TyId {
	kind := strings.TrimPrefix(name, "texture_")
	arrayed := strings.HasSuffix(kind, "_array")
	kind = strings.TrimSuffix(kind, "_array")
	multisampled := strings.Contains(kind, "multisampled")

	var elem TyId
	texel := ""
	switch {
	case strings.HasPrefix(kind, "storage_"):
		if len(args) >= 1 && args[0].Kind == syntax.KindTypeRef {
			idents := args[0].ChildrenOfKind(syntax.KindIdent)
			if len(idents) > 0 {
				texel = idents[0].Text(lo.Text)
			}
		}
		elem = lo.Store.Error()
	case kind == "depth_2d", kind == "depth_cube", kind == "depth_multisampled_2d":
		elem = lo.Store.Scalar(SF32)
	default:
		if len(args) >= 1 {
			elem = lo.lowerArg(args[0])
		} else {
			elem = lo.Store.Scalar(SF32)
		}
	}
	return lo.Store.Texture(kind, arrayed, multisampled, texel, elem)
}
