package mir

import (
	"github.com/shade-lang/shadec/internal/hir"
)

// lowerBlock threads through each statement (Var items allocate a fresh
// local bound to their initializer; bare statement expressions are
// lowered for effect and discarded) and lowers the result expression, or
// yields Unit if the block has none (§4.7).
func (b *Builder) lowerBlock(e *hir.Expr) Operand {
	for _, sid := range e.Stmts {
		if item, ok := b.pkg.Items[sid]; ok {
			b.lowerVarItem(item)
			continue
		}
		b.lowerExpr(b.pkg.Exprs[sid])
	}
	if e.Result.IsNil() {
		return ConstOperand(UndefinedConst(b.Infer.Builtin.Unit))
	}
	return b.lowerExpr(b.pkg.Exprs[e.Result])
}

func (b *Builder) lowerVarItem(item *hir.Item) {
	t := b.Infer.TypeOf(item.ID)
	loc := b.Body.NewVarLocal(t)
	b.vars[item.ID] = loc
	if !item.VarInit.IsNil() {
		val := b.lowerExpr(b.pkg.Exprs[item.VarInit])
		b.emitAssign(LocalPlace(loc), RValue{Kind: UseRV, Operand: val})
	}
}

// lowerIf implements "if cond then A else B → switch on cond to two
// blocks, each stores into the same tmp and jumps to an exit block"
// (§4.7).
func (b *Builder) lowerIf(e *hir.Expr) Operand {
	cond := b.lowerExpr(b.pkg.Exprs[e.Cond])

	thenBlock := b.Body.NewBlock()
	elseBlock := b.Body.NewBlock()
	exitBlock := b.Body.NewBlock()

	b.Body.Terminate(b.cur, Terminator{
		Kind: Switch, Op: cond,
		Values:  []uint64{1},
		Targets: []BlockID{thenBlock, elseBlock},
	})

	resultTy := b.exprType(e.ID)
	result := b.Body.NewTmp(resultTy)

	b.cur = thenBlock
	thenVal := b.lowerExpr(b.pkg.Exprs[e.Then])
	if b.Body.block(b.cur).Term.Kind == Unset {
		b.emitAssign(LocalPlace(result), RValue{Kind: UseRV, Operand: thenVal})
		b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: exitBlock})
	}

	b.cur = elseBlock
	if !e.Else.IsNil() {
		elseVal := b.lowerExpr(b.pkg.Exprs[e.Else])
		if b.Body.block(b.cur).Term.Kind == Unset {
			b.emitAssign(LocalPlace(result), RValue{Kind: UseRV, Operand: elseVal})
			b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: exitBlock})
		}
	} else {
		b.emitAssign(LocalPlace(result), RValue{Kind: UseRV, Operand: ConstOperand(UndefinedConst(b.Infer.Builtin.Unit))})
		b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: exitBlock})
	}

	b.cur = exitBlock
	return UsePlace(LocalPlace(result))
}

// lowerWhile implements "while cond body → header block evaluates cond,
// switches into body/exit; body ends with jump back to header" (§4.7).
func (b *Builder) lowerWhile(e *hir.Expr) Operand {
	header := b.Body.NewBlock()
	bodyBlock := b.Body.NewBlock()
	exitBlock := b.Body.NewBlock()

	b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: header})

	b.cur = header
	cond := b.lowerExpr(b.pkg.Exprs[e.WhileCond])
	b.Body.Terminate(b.cur, Terminator{
		Kind: Switch, Op: cond,
		Values:  []uint64{1},
		Targets: []BlockID{bodyBlock, exitBlock},
	})

	b.cur = bodyBlock
	b.lowerExpr(b.pkg.Exprs[e.WhileBody])
	if b.Body.block(b.cur).Term.Kind == Unset {
		b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: header})
	}

	b.cur = exitBlock
	return ConstOperand(UndefinedConst(b.Infer.Builtin.Unit))
}
