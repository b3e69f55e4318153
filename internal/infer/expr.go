package infer

import (
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/types"
)

// synthExpr is the synthesis dispatch for every expression form (§4.4).
// It always memoizes its result into c.typeMap under the expression's own
// id before returning, so a later TypeOf(exprID) is a cache hit.
func (c *Context) synthExpr(e *hir.Expr) *types.Type {
	if t, ok := c.typeMap[e.ID]; ok {
		return t
	}
	t := c.synthExprUncached(e)
	c.typeMap[e.ID] = t
	return t
}

func (c *Context) synthExprUncached(e *hir.Expr) *types.Type {
	switch e.Kind {
	case hir.ExprIntLit:
		return c.synthIntLit(e)
	case hir.ExprFloatLit:
		return c.synthFloatLit(e)
	case hir.ExprBoolLit:
		return c.Builtin.Bool
	case hir.ExprStrLit:
		return c.Builtin.Str

	case hir.ExprName:
		return c.TypeOf(e.RefersTo)

	case hir.ExprRef:
		sub := c.Pkg.Exprs[e.Sub]
		subTy := c.synthExpr(sub)
		return c.Arena.Ref(e.RefMut, subTy)

	case hir.ExprDeref:
		return c.synthDeref(e)

	case hir.ExprCall:
		return c.synthCall(e)

	case hir.ExprField:
		return c.synthField(e)

	case hir.ExprIndex:
		return c.synthIndex(e)

	case hir.ExprCast:
		return c.synthCast(e)

	case hir.ExprBinOp:
		return c.synthBinOp(e)

	case hir.ExprUnOp:
		return c.synthUnOp(e)

	case hir.ExprBlock:
		return c.synthBlock(e)

	case hir.ExprIf:
		return c.synthIf(e)

	case hir.ExprWhile:
		return c.synthWhile(e)

	case hir.ExprCase:
		return c.synthCase(e)

	case hir.ExprTuple:
		elems := make([]*types.Type, len(e.Elems))
		for i, eid := range e.Elems {
			elems[i] = c.synthExpr(c.Pkg.Exprs[eid])
		}
		return c.Arena.Tuple(elems)

	case hir.ExprArray:
		return c.synthArray(e)

	case hir.ExprInit:
		return c.synthInit(e)

	case hir.ExprUnsafeRead:
		return c.synthUnsafeRead(e)

	case hir.ExprUnsafeStore:
		return c.synthUnsafeStore(e)

	default:
		return c.Arena.ErrorType()
	}
}

func (c *Context) synthDeref(e *hir.Expr) *types.Type {
	sub := c.Pkg.Exprs[e.Sub]
	subTy := c.resolveForShape(c.synthExpr(sub))
	if subTy.Kind() == types.KRef {
		return subTy.Elem()
	}
	// Not yet known to be a Ref: constrain it to become one of a fresh
	// element type, so a deref of an unannotated var still type-checks.
	elem := c.NewVar()
	c.Equal(subTy, c.spanOf(e.Sub), c.Arena.Ref(false, elem), c.spanOf(e.ID))
	return elem
}

// resolveForShape follows bound variables so structural dispatch (deref,
// field, index, cast) can inspect a type's real shape even when synthesis
// only produced a variable so far.
func (c *Context) resolveForShape(t *types.Type) *types.Type {
	return c.resolve(t)
}
