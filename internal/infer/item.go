package infer

import (
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/types"
)

// checkItem computes an item's full type per §4.4's per-kind rules. For
// Func it also walks the body, emitting constraints against the declared
// parameter and return types; for Struct/Enum it builds the structural
// type from field/variant declarations (the "check_item" half of the
// two-phase protocol — see typeof.go).
func (c *Context) checkItem(item *hir.Item) *types.Type {
	switch item.Kind {
	case hir.ItemExtern:
		return c.TypeOf(item.ExternType)

	case hir.ItemParam, hir.ItemVar:
		if item.DeclType.IsNil() && !item.VarInit.IsNil() {
			return c.synthExpr(c.Pkg.Exprs[item.VarInit])
		}
		declared := c.TypeOf(item.DeclType)
		if !item.VarInit.IsNil() {
			initExpr := c.Pkg.Exprs[item.VarInit]
			initTy := c.synthExpr(initExpr)
			c.Equal(declared, c.spanOf(item.DeclType), initTy, c.spanOf(item.VarInit))
		}
		return declared

	case hir.ItemFunc:
		params := make([]types.Param, len(item.FuncParams))
		for i, pid := range item.FuncParams {
			p := c.Pkg.Items[pid]
			pt := c.TypeOf(pid)
			params[i] = types.Param{Name: p.Name, Type: pt}
		}
		var ret *types.Type
		if !item.FuncRet.IsNil() {
			ret = c.TypeOf(item.FuncRet)
		} else {
			ret = c.Builtin.Unit
		}
		if !item.FuncBody.IsNil() {
			body := c.Pkg.Exprs[item.FuncBody]
			bodyTy := c.synthExpr(body)
			c.Equal(ret, c.spanOf(item.FuncRet), bodyTy, c.spanOf(item.FuncBody))
		}
		return c.Arena.Func(params, ret)

	case hir.ItemStruct:
		fields := make([]types.Field, len(item.StructFields))
		for i, f := range item.StructFields {
			fields[i] = types.Field{Name: f.Name, Type: c.TypeOf(f.Type)}
		}
		return c.Arena.Struct(item.ID, fields)

	case hir.ItemEnum:
		variants := make([]types.Variant, len(item.EnumVariants))
		for i, v := range item.EnumVariants {
			if !v.HasFields {
				variants[i] = types.Variant{Name: v.Name}
				continue
			}
			fields := make([]types.Field, len(v.Fields))
			for j, f := range v.Fields {
				fields[j] = types.Field{Name: f.Name, Type: c.TypeOf(f.Type)}
			}
			variants[i] = types.Variant{Name: v.Name, Fields: c.Arena.InternFieldList(fields)}
		}
		return c.Arena.Enum(item.ID, variants)

	case hir.ItemCons:
		return c.consType(item)

	default:
		return c.Arena.ErrorType()
	}
}

// consType builds the function type of an enum constructor: a tuple-style
// constructor is a function from its declared parameter types to the
// owning enum; a unit-style one is the enum type directly.
func (c *Context) consType(item *hir.Item) *types.Type {
	owner := c.TypeOf(item.ConsOf)
	if len(item.ConsParams) == 0 {
		return owner
	}
	params := make([]types.Param, len(item.ConsParams))
	for i, tid := range item.ConsParams {
		params[i] = types.Param{Type: c.TypeOf(tid)}
	}
	return c.Arena.Func(params, owner)
}
