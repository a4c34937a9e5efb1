package validate

import (
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/config"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/diagnostics"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/infer"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/itemtree"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/syntax"
	"github.com/wgsl-analyzer/wgsl-analyzer/internal/types"
)

// ValidateAddressSpaces checks every module-scope `var` against WGSL's
// address-space rules. Function-scope `var`s always live in address
// space Function with ReadWrite access and a constructible type (enforced
// structurally by the grammar and by declaration lowering), so they need
// no separate check here.
func ValidateAddressSpaces(text string, module *itemtree.ModuleInfo, mt *infer.ModuleTypes) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, it := range module.ByKind(itemtree.ItemGlobalVariable) {
		n := module.AstIds.Node(it.Ast)
		gv, ok := syntax.CastGlobalVariable(n)
		if !ok {
			continue
		}
		out = append(out, validateGlobal(text, mt, gv)...)
	}
	return out
}

func accessModeOf(text string, gv syntax.GlobalVariable, addrspace string) types.AccessMode {
	if tok := gv.AccessModeToken(); tok != nil {
		switch tok.Text(text) {
		case "read":
			return types.AccessRead
		case "write":
			return types.AccessWrite
		default:
			return types.AccessReadWrite
		}
	}
	switch addrspace {
	case config.AddressSpaceStorage, config.AddressSpaceUniform, config.AddressSpaceHandle:
		return types.AccessRead
	default:
		return types.AccessReadWrite
	}
}

func validateGlobal(text string, mt *infer.ModuleTypes, gv syntax.GlobalVariable) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	rng := gv.Syntax().Range
	if name := gv.NameToken(); name != nil {
		rng = name.Range
	}

	ty := mt.Lowerer.LowerTypeRef(gv.TypeRef())
	if mt.Store.IsError(ty) {
		return out
	}
	t := mt.Store.Get(ty)

	tok := gv.AddressSpaceToken()
	addrspace := config.AddressSpacePrivate
	switch {
	case tok != nil:
		addrspace = tok.Text(text)
	case t.Kind == types.KTexture || t.Kind == types.KSampler:
		// Handle-class resources (textures, samplers) carry no address-space
		// syntax at all in WGSL; the space is always implicitly Handle.
		addrspace = config.AddressSpaceHandle
	}
	access := accessModeOf(text, gv, addrspace)

	switch addrspace {
	case config.AddressSpaceFunction:
		out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceScope, rng,
			"address space 'function' is not valid for a module-scope variable"))

	case config.AddressSpacePrivate, config.AddressSpaceWorkgroup:
		if access != types.AccessReadWrite {
			out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceAccess, rng,
				"variables in address space '%s' must have read_write access", addrspace))
		}
		if addrspace == config.AddressSpaceWorkgroup && containsRuntimeArray(mt.Store, mt, ty) {
			out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceType, rng,
				"a 'workgroup' variable's type must not contain a runtime-sized array"))
		}

	case config.AddressSpaceUniform:
		if access != types.AccessRead {
			out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceAccess, rng,
				"variables in address space 'uniform' must have read access"))
		}
		if !constructible(t) {
			out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceType, rng,
				"a 'uniform' variable's type must be constructible"))
		} else if !isHostShareable(mt.Store, mt, ty, false) {
			out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceType, rng,
				"a 'uniform' variable's type must be host-shareable"))
		}

	case config.AddressSpaceStorage:
		if access == types.AccessWrite {
			out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceAccess, rng,
				"variables in address space 'storage' must have read or read_write access"))
		}
		if !isHostShareable(mt.Store, mt, ty, true) {
			out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceType, rng,
				"a 'storage' variable's type must be host-shareable"))
		}

	case config.AddressSpaceHandle:
		if access != types.AccessRead {
			out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceAccess, rng,
				"variables in address space 'handle' must have read access"))
		}
		if t.Kind != types.KTexture && t.Kind != types.KSampler {
			out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceType, rng,
				"a 'handle' variable's type must be a texture or sampler"))
		}

	default:
		out = append(out, diagnostics.NewError(diagnostics.CodeAddressSpaceScope, rng,
			"unknown address space %q", addrspace))
	}
	return out
}
