package mir

import (
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/types"
)

// lowerPlace lowers an expression that denotes an assignable location:
// a bound name, a dereference, a field access (auto-deref through one
// Ref layer, matching synthField's rule), or an index. Anything else is
// materialized into a fresh Tmp local first, so &f() and similar still
// produce a usable place.
func (b *Builder) lowerPlace(e *hir.Expr) Place {
	switch e.Kind {
	case hir.ExprName:
		if loc, ok := b.vars[e.RefersTo]; ok {
			return LocalPlace(loc)
		}

	case hir.ExprDeref:
		sub := b.lowerPlace(b.pkg.Exprs[e.Sub])
		return sub.Project(Elem{Kind: Deref})

	case hir.ExprField:
		return b.lowerFieldPlace(e)

	case hir.ExprIndex:
		base := b.lowerPlace(b.pkg.Exprs[e.IndexOf])
		idxPlace := b.lowerPlace(b.pkg.Exprs[e.Sub])
		return base.Project(Elem{Kind: Index, IndexOf: idxPlace})
	}

	val := b.lowerExpr(e)
	tmp := b.Body.NewTmp(b.exprType(e.ID))
	b.emitAssign(LocalPlace(tmp), RValue{Kind: UseRV, Operand: val})
	return LocalPlace(tmp)
}

func (b *Builder) lowerFieldPlace(e *hir.Expr) Place {
	base := b.lowerPlace(b.pkg.Exprs[e.Sub])
	baseTy := b.exprType(e.Sub)
	if baseTy.Kind() == types.KRef {
		base = base.Project(Elem{Kind: Deref})
		baseTy = baseTy.Elem()
	}
	if baseTy.Kind() != types.KStruct {
		// Not known to be a struct: the offending program already has an
		// unknown-field diagnostic from C4 (§4.4); project field 0 so
		// construction can still complete without panicking.
		return base.Project(Elem{Kind: Field, FieldIndex: 0})
	}
	fields := baseTy.StructFields()
	idx := 0
	for i := 0; i < fields.Len(); i++ {
		if fields.At(i).Name == e.FieldName {
			idx = i
			break
		}
	}
	return base.Project(Elem{Kind: Field, FieldIndex: idx})
}
