package validate

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/infer"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

// Layout is a type's WGSL memory layout: byte alignment and size.
type Layout struct {
	Align uint64
	Size  uint64
}

func roundUp(n, align uint64) uint64 {
	if align == 0 {
		return n
	}
	return (n + align - 1) / align * align
}

// ComputeLayout computes ty's (align, size) in bytes. The second return
// reports whether ty has a layout at all (bool is false for Bool scalars,
// dynamically-sized arrays, and anything else with no fixed memory
// representation: pointers, textures, samplers, functions).
func ComputeLayout(store *types.Store, mt *infer.ModuleTypes, ty types.TyId) (Layout, bool) {
	t := store.Get(ty)
	switch t.Kind {
	case types.KScalar:
		if t.Scalar == types.SBool {
			return Layout{}, false
		}
		return Layout{Align: 4, Size: 4}, true

	case types.KAtomic:
		return ComputeLayout(store, mt, t.Elem)

	case types.KVector:
		switch t.VecSize {
		case 2:
			return Layout{Align: 8, Size: 8}, true
		case 3:
			return Layout{Align: 16, Size: 12}, true
		case 4:
			return Layout{Align: 16, Size: 16}, true
		default:
			return Layout{}, false
		}

	case types.KMatrix:
		// Element align is the layout of one column vector; stride rounds
		// the column's size up to that align; total size is stride*cols.
		colLayout, ok := ComputeLayout(store, mt, store.Vector(t.Rows, t.Elem))
		if !ok {
			return Layout{}, false
		}
		stride := roundUp(colLayout.Size, colLayout.Align)
		return Layout{Align: colLayout.Align, Size: stride * uint64(t.Cols)}, true

	case types.KArray:
		if t.ArrayLen.Dynamic {
			return Layout{}, false
		}
		elemLayout, ok := ComputeLayout(store, mt, t.Elem)
		if !ok {
			return Layout{}, false
		}
		stride := roundUp(elemLayout.Size, elemLayout.Align)
		return Layout{Align: elemLayout.Align, Size: stride * t.ArrayLen.N}, true

	case types.KStruct:
		info := mt.Structs[t.StructName]
		if info == nil {
			return Layout{}, false
		}
		l, _, ok := ComputeStructLayout(store, mt, info)
		return l, ok

	default:
		return Layout{}, false
	}
}

// ComputeStructLayout folds over a struct's fields in declaration order,
// returning the struct's own layout plus each field's byte offset.
func ComputeStructLayout(store *types.Store, mt *infer.ModuleTypes, info *infer.StructInfo) (Layout, []uint64, bool) {
	offsets := make([]uint64, len(info.Fields))
	var offset, structAlign uint64 = 0, 1
	for i, f := range info.Fields {
		fl, ok := ComputeLayout(store, mt, f.Ty)
		if !ok {
			return Layout{}, nil, false
		}
		offset = roundUp(offset, fl.Align)
		offsets[i] = offset
		offset += fl.Size
		if fl.Align > structAlign {
			structAlign = fl.Align
		}
	}
	return Layout{Align: structAlign, Size: roundUp(offset, structAlign)}, offsets, true
}

// isHostShareable reports whether ty may be stored in a `uniform` or
// `storage` buffer, per WGSL's "host-shareable and constructable"
// (uniform) / "host-shareable" (storage) requirements. allowDynamicTail
// permits a single trailing runtime-sized array, which WGSL allows only
// for `storage` buffers' final struct member.
func isHostShareable(store *types.Store, mt *infer.ModuleTypes, ty types.TyId, allowDynamicTail bool) bool {
	t := store.Get(ty)
	switch t.Kind {
	case types.KScalar:
		return t.Scalar != types.SBool
	case types.KVector, types.KAtomic:
		return isHostShareable(store, mt, t.Elem, false)
	case types.KMatrix:
		return isHostShareable(store, mt, t.Elem, false)
	case types.KArray:
		if t.ArrayLen.Dynamic {
			return allowDynamicTail && isHostShareable(store, mt, t.Elem, false)
		}
		return isHostShareable(store, mt, t.Elem, false)
	case types.KStruct:
		info := mt.Structs[t.StructName]
		if info == nil {
			return false
		}
		for i, f := range info.Fields {
			tail := allowDynamicTail && i == len(info.Fields)-1
			if !isHostShareable(store, mt, f.Ty, tail) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// constructible reports whether ty can appear as a `var<private/workgroup>`
// or be built by a value constructor expression.
func constructible(t types.Ty) bool {
	switch t.Kind {
	case types.KScalar, types.KVector, types.KMatrix, types.KArray, types.KStruct, types.KAtomic:
		return true
	default:
		return false
	}
}

// containsRuntimeArray reports whether ty is, or (recursively, through
// struct members) contains, a dynamically-sized array -- disallowed in
// `workgroup` variables.
func containsRuntimeArray(store *types.Store, mt *infer.ModuleTypes, ty types.TyId) bool {
	t := store.Get(ty)
	switch t.Kind {
	case types.KArray:
		if t.ArrayLen.Dynamic {
			return true
		}
		return containsRuntimeArray(store, mt, t.Elem)
	case types.KStruct:
		info := mt.Structs[t.StructName]
		if info == nil {
			return false
		}
		for _, f := range info.Fields {
			if containsRuntimeArray(store, mt, f.Ty) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
