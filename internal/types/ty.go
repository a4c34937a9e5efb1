// Package types implements the `Ty` grammar: an interned term language
// for WGSL types, plus lowering of syntax `TypeRef` shapes into it.
// Unknown or malformed type references lower to Error, which later
// layers treat as absorbing rather than cascading into secondary
// diagnostics.
//
// A single tagged Type struct (TVar/TCon/TApp/TRecord/TFunc as one Go
// type with a discriminant) interned and compared structurally,
// generalized here from a Hindley-Milner term language for a dynamic
// scripting language to WGSL's fixed, non-generic (no user type
// variables at the value level) shader type grammar.
package types

import (
	"fmt"
	"strings"
	"sync"
)

type TyId uint32

type TyKind int

const (
	KError TyKind = iota
	KScalar
	KAtomic
	KVector
	KMatrix
	KArray
	KStruct
	KTexture
	KSampler
	KRef
	KPtr
	KFunction
	KBoundVar
	KBuiltinFn
	KStorageTexelFormat
)

type ScalarKind int

const (
	SBool ScalarKind = iota
	SI32
	SU32
	SF32
	SF16
	SAbstractInt
	SAbstractFloat
)

func (k ScalarKind) IsAbstract() bool { return k == SAbstractInt || k == SAbstractFloat }
func (k ScalarKind) IsNumeric() bool  { return k != SBool }
func (k ScalarKind) IsInteger() bool {
	return k == SI32 || k == SU32 || k == SAbstractInt
}

func (k ScalarKind) String() string {
	switch k {
	case SBool:
		return "bool"
	case SI32:
		return "i32"
	case SU32:
		return "u32"
	case SF32:
		return "f32"
	case SF16:
		return "f16"
	case SAbstractInt:
		return "{AbstractInt}"
	case SAbstractFloat:
		return "{AbstractFloat}"
	default:
		return "?"
	}
}

type AccessMode int

const (
	AccessRead AccessMode = iota
	AccessWrite
	AccessReadWrite
)

func (a AccessMode) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	default:
		return "read_write"
	}
}

// ArrayLen is either a constant element count or the dynamic
// (runtime-sized, trailing struct member) array form.
type ArrayLen struct {
	Dynamic bool
	N       uint64
}

// Ty is one node of the interned type term grammar. Only the fields
// relevant to Kind are populated; a single-struct-many-fields
// representation rather than a Go interface per variant, since arenas
// and interners need one concrete element type.
type Ty struct {
	Kind TyKind

	Scalar ScalarKind // KScalar

	Elem TyId // KAtomic, KVector, KArray(element), KRef/KPtr(pointee)

	VecSize int // KVector: 2, 3, or 4

	Cols, Rows int // KMatrix

	ArrayLen ArrayLen // KArray

	StructName string // KStruct: struct's declared name (struct identity by name,
	// since this layer has no cross-file struct-id registry of its own;
	// callers needing uniqueness across files key by (HirFileId, name)).

	TextureKind   string // KTexture: "1d" | "2d" | "3d" | "cube" | "storage" | "depth" | "external"
	Arrayed       bool
	Multisampled  bool
	TexelFormat   string // KTexture (storage) and KStorageTexelFormat
	SamplerCompare bool  // KSampler: comparison sampler

	AddrSpace string     // KRef, KPtr
	Access    AccessMode // KRef, KPtr

	Params []TyId // KFunction
	Ret    TyId   // KFunction
	HasRet bool   // KFunction

	BoundVarIndex int // KBoundVar: generic builtin's template slot

	BuiltinFnName string // KBuiltinFn
}

// Store interns Ty values. Ty contains slices (Params) so it cannot be a
// Go map key directly; a canonical string key (canonicalKey) stands in for
// structural equality instead.
type Store struct {
	mu    sync.Mutex
	tys   []Ty
	index map[string]TyId
}

func NewStore() *Store {
	s := &Store{index: map[string]TyId{}}
	// TyId(0) is always Error, so a zero-valued TyId (e.g. an
	// uninitialized map entry) is never mistaken for a real type.
	s.intern(Ty{Kind: KError})
	return s
}

func (s *Store) Get(id TyId) Ty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tys[id]
}

func (s *Store) intern(t Ty) TyId {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := canonicalKey(t)
	if id, ok := s.index[key]; ok {
		return id
	}
	id := TyId(len(s.tys))
	s.tys = append(s.tys, t)
	s.index[key] = id
	return id
}

func canonicalKey(t Ty) string {
	var b strings.Builder
	fmt.Fprintf(&b, "k%d", t.Kind)
	switch t.Kind {
	case KScalar:
		fmt.Fprintf(&b, ":%d", t.Scalar)
	case KAtomic:
		fmt.Fprintf(&b, ":%d", t.Elem)
	case KVector:
		fmt.Fprintf(&b, ":%d:%d", t.VecSize, t.Elem)
	case KMatrix:
		fmt.Fprintf(&b, ":%d:%d:%d", t.Cols, t.Rows, t.Elem)
	case KArray:
		fmt.Fprintf(&b, ":%d:%v:%d", t.Elem, t.ArrayLen.Dynamic, t.ArrayLen.N)
	case KStruct:
		fmt.Fprintf(&b, ":%s", t.StructName)
	case KTexture:
		fmt.Fprintf(&b, ":%s:%v:%v:%s:%d", t.TextureKind, t.Arrayed, t.Multisampled, t.TexelFormat, t.Elem)
	case KSampler:
		fmt.Fprintf(&b, ":%v", t.SamplerCompare)
	case KRef, KPtr:
		fmt.Fprintf(&b, ":%s:%d:%d", t.AddrSpace, t.Elem, t.Access)
	case KFunction:
		ids := make([]string, len(t.Params))
		for i, p := range t.Params {
			ids[i] = fmt.Sprint(p)
		}
		fmt.Fprintf(&b, ":%s:%v:%d", strings.Join(ids, ","), t.HasRet, t.Ret)
	case KBoundVar:
		fmt.Fprintf(&b, ":%d", t.BoundVarIndex)
	case KBuiltinFn:
		fmt.Fprintf(&b, ":%s", t.BuiltinFnName)
	case KStorageTexelFormat:
		fmt.Fprintf(&b, ":%s", t.TexelFormat)
	}
	return b.String()
}

// Constructors. Each interns and returns a TyId; callers never construct
// Ty values directly so canonicalKey always sees a fully-populated
// value for its Kind.

func (s *Store) Error() TyId { return 0 }

func (s *Store) Scalar(k ScalarKind) TyId { return s.intern(Ty{Kind: KScalar, Scalar: k}) }

func (s *Store) Atomic(elem TyId) TyId { return s.intern(Ty{Kind: KAtomic, Elem: elem}) }

func (s *Store) Vector(size int, elem TyId) TyId {
	return s.intern(Ty{Kind: KVector, VecSize: size, Elem: elem})
}

func (s *Store) Matrix(cols, rows int, elem TyId) TyId {
	return s.intern(Ty{Kind: KMatrix, Cols: cols, Rows: rows, Elem: elem})
}

func (s *Store) Array(elem TyId, length ArrayLen) TyId {
	return s.intern(Ty{Kind: KArray, Elem: elem, ArrayLen: length})
}

func (s *Store) Struct(name string) TyId { return s.intern(Ty{Kind: KStruct, StructName: name}) }

func (s *Store) Texture(kind string, arrayed, multisampled bool, texel string, elem TyId) TyId {
	return s.intern(Ty{Kind: KTexture, TextureKind: kind, Arrayed: arrayed, Multisampled: multisampled, TexelFormat: texel, Elem: elem})
}

func (s *Store) Sampler(comparison bool) TyId {
	return s.intern(Ty{Kind: KSampler, SamplerCompare: comparison})
}

func (s *Store) Ref(addrspace string, elem TyId, access AccessMode) TyId {
	return s.intern(Ty{Kind: KRef, AddrSpace: addrspace, Elem: elem, Access: access})
}

func (s *Store) Ptr(addrspace string, elem TyId, access AccessMode) TyId {
	return s.intern(Ty{Kind: KPtr, AddrSpace: addrspace, Elem: elem, Access: access})
}

func (s *Store) Function(params []TyId, ret TyId, hasRet bool) TyId {
	return s.intern(Ty{Kind: KFunction, Params: params, Ret: ret, HasRet: hasRet})
}

func (s *Store) BoundVar(idx int) TyId { return s.intern(Ty{Kind: KBoundVar, BoundVarIndex: idx}) }

func (s *Store) BuiltinFn(name string) TyId {
	return s.intern(Ty{Kind: KBuiltinFn, BuiltinFnName: name})
}

func (s *Store) StorageTexelFormat(format string) TyId {
	return s.intern(Ty{Kind: KStorageTexelFormat, TexelFormat: format})
}

// IsError reports whether id names the absorbing Error type.
func (s *Store) IsError(id TyId) bool { return id == 0 }

// Display pretty-prints a Ty for hover text and diagnostics.
func (s *Store) Display(id TyId) string {
	t := s.Get(id)
	switch t.Kind {
	case KError:
		return "<error>"
	case KScalar:
		return t.Scalar.String()
	case KAtomic:
		return "atomic<" + s.Display(t.Elem) + ">"
	case KVector:
		return fmt.Sprintf("vec%d<%s>", t.VecSize, s.Display(t.Elem))
	case KMatrix:
		return fmt.Sprintf("mat%dx%d<%s>", t.Cols, t.Rows, s.Display(t.Elem))
	case KArray:
		if t.ArrayLen.Dynamic {
			return "array<" + s.Display(t.Elem) + ">"
		}
		return fmt.Sprintf("array<%s, %d>", s.Display(t.Elem), t.ArrayLen.N)
	case KStruct:
		return t.StructName
	case KTexture:
		return "texture_" + t.TextureKind
	case KSampler:
		if t.SamplerCompare {
			return "sampler_comparison"
		}
		return "sampler"
	case KRef:
		return fmt.Sprintf("ref<%s, %s, %s>", t.AddrSpace, s.Display(t.Elem), t.Access)
	case KPtr:
		return fmt.Sprintf("ptr<%s, %s, %s>", t.AddrSpace, s.Display(t.Elem), t.Access)
	case KFunction:
		return "fn(...)"
	case KBoundVar:
		return fmt.Sprintf("T%d", t.BoundVarIndex)
	case KBuiltinFn:
		return t.BuiltinFnName
	case KStorageTexelFormat:
		return t.TexelFormat
	default:
		return "?"
	}
}
