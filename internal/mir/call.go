package mir

import "github.com/shade-lang/shadec/internal/hir"

// lowerCall implements "call(f, args) → lower f and each a to an operand;
// emit a Call terminator with a successor block receiving control"
// (§4.7). Intrinsic unsafe_read/unsafe_store never reach here: they are
// dedicated HIR expression kinds, already recognised and lowered
// directly in lowerExpr.
func (b *Builder) lowerCall(e *hir.Expr) Operand {
	callee := b.lowerCallee(b.pkg.Exprs[e.Callee])

	args := make([]Operand, len(e.Args))
	for i, aid := range e.Args {
		args[i] = b.lowerExpr(b.pkg.Exprs[aid])
	}

	resultTy := b.exprType(e.ID)
	dst := b.Body.NewTmp(resultTy)
	next := b.Body.NewBlock()

	b.Body.Terminate(b.cur, Terminator{
		Kind:     Call,
		CallDst:  LocalPlace(dst),
		CallFunc: callee,
		CallArgs: args,
		CallNext: next,
	})

	b.cur = next
	return UsePlace(LocalPlace(dst))
}

// lowerCallee special-cases a bare name referring to a top-level item
// (Func, Extern, or enum constructor) as a direct FuncAddr constant
// rather than loading it through a variable's place.
func (b *Builder) lowerCallee(e *hir.Expr) Operand {
	if e.Kind == hir.ExprName {
		if item, ok := b.pkg.Items[e.RefersTo]; ok {
			switch item.Kind {
			case hir.ItemFunc, hir.ItemExtern, hir.ItemCons:
				return ConstOperand(Const{Kind: FuncAddr, Func: item.ID, Type: b.exprType(e.ID)})
			}
		}
	}
	return b.lowerExpr(e)
}
