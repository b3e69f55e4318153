package infer

import (
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/types"
)

// TypeOf is C4's entry point (§4.4): type_of(id) -> T, memoized by id. On a
// cache miss it dispatches by which of Items/Exprs/Types the id names.
//
// For a Struct or Enum item, the miss path runs in two steps: infer_item
// computes a shallow placeholder (TypeOf(id)) and installs it in the map
// BEFORE the field types are walked, so a self-referential declaration
// (e.g. a field of type ref Tree inside struct Tree) resolves back to the
// placeholder instead of recursing forever; check_item then overwrites the
// map entry with the real structural type once the fields are known.
func (c *Context) TypeOf(id ids.ID) *types.Type {
	if t, ok := c.typeMap[id]; ok {
		return t
	}
	if t, ok := c.Builtins[id]; ok {
		return t
	}

	if item, ok := c.Pkg.Items[id]; ok {
		return c.typeOfItem(item)
	}
	if expr, ok := c.Pkg.Exprs[id]; ok {
		t := c.synthExpr(expr)
		c.typeMap[id] = t
		return t
	}
	if ref, ok := c.Pkg.Types[id]; ok {
		t := c.resolveTypeRef(ref)
		c.typeMap[id] = t
		return t
	}

	// An id that names nothing resolvable is a resolver-stage bug, not a
	// user-facing diagnostic — the core only ever receives ids the
	// resolved HIR itself produced (§6).
	return c.Arena.ErrorType()
}

func (c *Context) typeOfItem(item *hir.Item) *types.Type {
	switch item.Kind {
	case hir.ItemStruct, hir.ItemEnum:
		// infer_item: install the placeholder first.
		c.typeMap[item.ID] = c.Arena.TypeOf(item.ID)
		t := c.checkItem(item)
		c.typeMap[item.ID] = t
		return t
	default:
		t := c.checkItem(item)
		c.typeMap[item.ID] = t
		return t
	}
}

// resolveTypeRef turns a syntactic TypeRef into an interned Type,
// following named references back through TypeOf so a reference to a
// struct/enum declaration yields its (possibly still-placeholder) type.
func (c *Context) resolveTypeRef(ref *hir.TypeRef) *types.Type {
	switch ref.Kind {
	case hir.TypeRefName:
		return c.TypeOf(ref.RefersTo)
	case hir.TypeRefRef:
		return c.Arena.Ref(ref.RefMut, c.TypeOf(ref.Elem))
	case hir.TypeRefArray:
		return c.Arena.Array(c.TypeOf(ref.Elem), ref.ArrayLen)
	case hir.TypeRefSlice:
		return c.Arena.Slice(c.TypeOf(ref.Elem))
	case hir.TypeRefTuple:
		elems := make([]*types.Type, len(ref.Elems))
		for i, e := range ref.Elems {
			elems[i] = c.TypeOf(e)
		}
		return c.Arena.Tuple(elems)
	case hir.TypeRefFunc:
		params := make([]types.Param, len(ref.Params))
		for i, p := range ref.Params {
			params[i] = types.Param{Type: c.TypeOf(p)}
		}
		return c.Arena.Func(params, c.TypeOf(ref.Ret))
	default:
		return c.Arena.ErrorType()
	}
}
