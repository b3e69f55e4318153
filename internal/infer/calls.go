package infer

import (
	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/types"
)

// synthCall synthesizes a call's callee, checks arity against the
// callee's Func type, and constrains each argument against its declared
// parameter type (§4.4).
func (c *Context) synthCall(e *hir.Expr) *types.Type {
	callee := c.Pkg.Exprs[e.Callee]
	calleeTy := c.resolveForShape(c.synthExpr(callee))

	if calleeTy.Kind() != types.KFunc {
		// Not known to be callable yet: synthesize args and constrain the
		// callee to a fresh Func shape, letting the solver connect them.
		args := make([]types.Param, len(e.Args))
		for i, aid := range e.Args {
			args[i] = types.Param{Type: c.synthExpr(c.Pkg.Exprs[aid])}
		}
		ret := c.NewVar()
		c.Equal(calleeTy, c.spanOf(e.Callee), c.Arena.Func(args, ret), c.spanOf(e.ID))
		return ret
	}

	params := calleeTy.FuncParams()
	if params.Len() != len(e.Args) {
		c.Report.Report((&diagnostics.ArityMismatchError{
			Want: params.Len(), Got: len(e.Args), Span: c.spanOf(e.ID),
		}).ToDiagnostic())
		return c.Arena.ErrorType()
	}
	for i, aid := range e.Args {
		argExpr := c.Pkg.Exprs[aid]
		argTy := c.synthExpr(argExpr)
		c.Equal(params.At(i).Type, c.spanOf(aid), argTy, c.spanOf(aid))
	}
	return calleeTy.FuncResult()
}

// synthField looks the accessed name up on the base's Struct type.
// Non-struct bases and unknown fields report and synthesize Error, which
// unifies silently with anything so the mistake doesn't cascade.
func (c *Context) synthField(e *hir.Expr) *types.Type {
	base := c.Pkg.Exprs[e.Sub]
	baseTy := c.resolveForShape(c.synthExpr(base))
	if baseTy.Kind() == types.KRef {
		baseTy = c.resolveForShape(baseTy.Elem())
	}
	if baseTy.Kind() != types.KStruct {
		c.Report.Report((&diagnostics.UnknownFieldError{
			Name: e.FieldName, On: baseTy.String(), Span: c.spanOf(e.ID),
		}).ToDiagnostic())
		return c.Arena.ErrorType()
	}
	fields := baseTy.StructFields()
	for i := 0; i < fields.Len(); i++ {
		f := fields.At(i)
		if f.Name == e.FieldName {
			return f.Type
		}
	}
	c.Report.Report((&diagnostics.UnknownFieldError{
		Name: e.FieldName, On: baseTy.String(), Span: c.spanOf(e.ID),
	}).ToDiagnostic())
	return c.Arena.ErrorType()
}

// synthIndex requires an Array or Slice base and a UInt-family index,
// yielding the element type.
func (c *Context) synthIndex(e *hir.Expr) *types.Type {
	base := c.Pkg.Exprs[e.IndexOf]
	baseTy := c.resolveForShape(c.synthExpr(base))
	idx := c.Pkg.Exprs[e.Sub]
	idxTy := c.synthExpr(idx)
	c.Equal(idxTy, c.spanOf(e.Sub), c.NewUInt(), c.spanOf(e.ID))

	switch baseTy.Kind() {
	case types.KArray, types.KSlice:
		return baseTy.Elem()
	default:
		elem := c.NewVar()
		c.Equal(baseTy, c.spanOf(e.IndexOf), c.Arena.Slice(elem), c.spanOf(e.ID))
		return elem
	}
}

// synthCast checks a cast's source and target kinds both fall in the
// scalar-like family casts are defined over (§4.6's Scalar/ScalarPair
// split: a cast is a reinterpretation between single-word
// representations, not a field-by-field aggregate conversion), then
// records the declared CastTo as the result type. This is a kind-level
// check only — it runs during C4/C5, before C6 has computed a concrete
// Layout, so it cannot and does not validate width/niche compatibility;
// that stays with C8's pass-mode classification.
func (c *Context) synthCast(e *hir.Expr) *types.Type {
	srcTy := c.resolveForShape(c.synthExpr(c.Pkg.Exprs[e.Sub]))
	dstTy := c.TypeOf(e.CastTo)
	if !castCompatible(srcTy, dstTy) {
		c.Report.Report((&diagnostics.InvalidCastError{
			From: srcTy.String(), To: dstTy.String(), Span: c.spanOf(e.ID),
		}).ToDiagnostic())
		return c.Arena.ErrorType()
	}
	return dstTy
}

// castCompatible reports whether from and to are both scalar-like kinds a
// single-word reinterpretation can span. Struct/Tuple/Array/Slice/Str/
// Func/Object casts are rejected; Error unifies silently with anything so
// a prior mistake doesn't cascade into a second diagnostic here. An
// unresolved literal var (VInt/VUInt/VFloat) counts as scalar-like too,
// since it always defaults to a concrete scalar kind (§9) and a cast's
// operand is routinely still a bare literal at this point in C4/C5.
func castCompatible(from, to *types.Type) bool {
	if from.Kind() == types.KError || to.Kind() == types.KError {
		return true
	}
	return isScalarlikeKind(from.Kind()) && isScalarlikeKind(to.Kind())
}

func isScalarlikeKind(k types.Kind) bool {
	switch k {
	case types.KInt, types.KUInt, types.KFloat, types.KBool, types.KTypeID, types.KRef, types.KEnum,
		types.KVInt, types.KVUInt, types.KVFloat:
		return true
	default:
		return false
	}
}
