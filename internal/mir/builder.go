package mir

import (
	"math"

	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/infer"
	"github.com/shade-lang/shadec/internal/types"
)

// Builder lowers one checked function item into a Body (§4.7). It is
// created fresh per function; Infer must already have run Solve and
// FinalizeDefaults, so every TypeOf lookup below returns a concrete,
// variable-free type.
type Builder struct {
	Infer *infer.Context
	pkg   *hir.Package
	Body  *Body

	// vars maps a Param/Var item id to the local backing it.
	vars map[ids.ID]LocalID

	cur BlockID
}

// Build lowers item (which must be an ItemFunc with a body) into a Body.
// Extern items have no body and are never passed here — C8 declares them
// directly from their type (§4.8).
func Build(ctx *infer.Context, item *hir.Item) *Body {
	b := &Builder{
		Infer: ctx,
		pkg:   ctx.Pkg,
		vars:  make(map[ids.ID]LocalID),
	}

	var retType *types.Type
	if !item.FuncRet.IsNil() {
		retType = ctx.TypeOf(item.FuncRet)
	} else {
		retType = ctx.Builtin.Unit
	}
	b.Body = NewBody(retType)

	for _, pid := range item.FuncParams {
		loc := b.Body.NewArg(ctx.TypeOf(pid))
		b.vars[pid] = loc
	}

	entry := b.Body.NewBlock()
	b.cur = entry

	if !item.FuncBody.IsNil() {
		result := b.lowerExpr(b.pkg.Exprs[item.FuncBody])
		b.finishWithReturn(result)
	} else {
		b.Body.Terminate(b.cur, Terminator{Kind: Return})
	}

	return b.Body
}

// finishWithReturn stores result into the Ret local and terminates the
// current block with Return, unless the current block is already
// terminated (a block ending in a nested if/while/case whose every arm
// already returns or aborts need not be re-terminated).
func (b *Builder) finishWithReturn(result Operand) {
	if b.Body.block(b.cur).Term.Kind != Unset {
		return
	}
	b.emitAssign(LocalPlace(0), RValue{Kind: UseRV, Operand: result})
	b.Body.Terminate(b.cur, Terminator{Kind: Return})
}

func (b *Builder) emitAssign(p Place, rv RValue) {
	b.Body.Emit(b.cur, Stmt{Kind: Assign, Place: p, RValue: rv})
}

// newTmp allocates a Tmp local of type t, assigns rv into it, and returns
// an operand reading it back — the "complex expressions create fresh Tmp
// locals and fill them via Assign" rule (§4.7).
func (b *Builder) newTmp(t *types.Type, rv RValue) Operand {
	tmp := b.Body.NewTmp(t)
	b.emitAssign(LocalPlace(tmp), rv)
	return UsePlace(LocalPlace(tmp))
}

// exprType returns expr id's final, concrete type — a cache hit into the
// already-finalized type map.
func (b *Builder) exprType(id ids.ID) *types.Type {
	return b.Infer.TypeOf(id)
}

func (b *Builder) lowerExpr(e *hir.Expr) Operand {
	switch e.Kind {
	case hir.ExprIntLit:
		return b.lowerIntLit(e)
	case hir.ExprFloatLit:
		return b.lowerFloatLit(e)
	case hir.ExprBoolLit:
		v := uint64(0)
		if e.BoolValue {
			v = 1
		}
		return ConstOperand(ScalarOf(v, b.Infer.Builtin.Bool))
	case hir.ExprStrLit:
		return ConstOperand(Const{Kind: Bytes, Bytes: []byte(e.StrValue), Type: b.Infer.Builtin.Str})

	case hir.ExprName:
		return b.lowerName(e)

	case hir.ExprRef:
		place := b.lowerPlace(b.pkg.Exprs[e.Sub])
		return b.newTmp(b.exprType(e.ID), RValue{Kind: Ref, Place: place})

	case hir.ExprDeref:
		return UsePlace(b.lowerPlace(e))

	case hir.ExprCall:
		return b.lowerCall(e)

	case hir.ExprField:
		return UsePlace(b.lowerPlace(e))

	case hir.ExprIndex:
		return UsePlace(b.lowerPlace(e))

	case hir.ExprCast:
		sub := b.lowerExpr(b.pkg.Exprs[e.Sub])
		return b.newTmp(b.exprType(e.ID), RValue{Kind: Cast, Operand: sub, Type: b.exprType(e.ID)})

	case hir.ExprBinOp:
		return b.lowerBinOp(e)

	case hir.ExprUnOp:
		sub := b.lowerExpr(b.pkg.Exprs[e.Sub])
		return b.newTmp(b.exprType(e.ID), RValue{Kind: UnOp, Op: e.Op, Operand: sub})

	case hir.ExprBlock:
		return b.lowerBlock(e)

	case hir.ExprIf:
		return b.lowerIf(e)

	case hir.ExprWhile:
		return b.lowerWhile(e)

	case hir.ExprCase:
		return b.lowerCase(e)

	case hir.ExprTuple:
		elems := make([]Operand, len(e.Elems))
		for i, eid := range e.Elems {
			elems[i] = b.lowerExpr(b.pkg.Exprs[eid])
		}
		return b.newTmp(b.exprType(e.ID), RValue{Kind: Init, Type: b.exprType(e.ID), Elems: elems})

	case hir.ExprArray:
		elems := make([]Operand, len(e.Elems))
		for i, eid := range e.Elems {
			elems[i] = b.lowerExpr(b.pkg.Exprs[eid])
		}
		return b.newTmp(b.exprType(e.ID), RValue{Kind: Init, Type: b.exprType(e.ID), Elems: elems})

	case hir.ExprInit:
		elems := make([]Operand, len(e.Elems))
		for i, eid := range e.Elems {
			elems[i] = b.lowerExpr(b.pkg.Exprs[eid])
		}
		return b.newTmp(b.exprType(e.ID), RValue{Kind: Init, Type: b.exprType(e.ID), Elems: elems})

	case hir.ExprUnsafeRead:
		sub := b.lowerPlace(b.pkg.Exprs[e.Sub])
		return UsePlace(sub.Project(Elem{Kind: Deref}))

	case hir.ExprUnsafeStore:
		dst := b.lowerPlace(b.pkg.Exprs[e.Left]).Project(Elem{Kind: Deref})
		val := b.lowerExpr(b.pkg.Exprs[e.Right])
		b.emitAssign(dst, RValue{Kind: UseRV, Operand: val})
		return ConstOperand(UndefinedConst(b.Infer.Builtin.Unit))

	default:
		return ConstOperand(UndefinedConst(b.exprType(e.ID)))
	}
}

func (b *Builder) lowerIntLit(e *hir.Expr) Operand {
	return ConstOperand(ScalarOf(e.IntValue, b.exprType(e.ID)))
}

func (b *Builder) lowerFloatLit(e *hir.Expr) Operand {
	t := b.exprType(e.ID)
	var bits uint64
	if t.Width() == 32 {
		bits = uint64(math.Float32bits(float32(e.FloatValue)))
	} else {
		bits = math.Float64bits(e.FloatValue)
	}
	return ConstOperand(Const{Kind: ScalarConst, Value: bits, Type: t})
}

// lowerName resolves a Name expression: a Param/Var reads its local;
// anything else (a Func/Extern/Cons referenced bare, not called) is a
// function address constant.
func (b *Builder) lowerName(e *hir.Expr) Operand {
	if loc, ok := b.vars[e.RefersTo]; ok {
		return UsePlace(LocalPlace(loc))
	}
	return ConstOperand(Const{Kind: FuncAddr, Func: e.RefersTo, Type: b.exprType(e.ID)})
}

func (b *Builder) lowerBinOp(e *hir.Expr) Operand {
	left := b.lowerExpr(b.pkg.Exprs[e.Left])
	right := b.lowerExpr(b.pkg.Exprs[e.Right])
	return b.newTmp(b.exprType(e.ID), RValue{Kind: BinOp, Op: e.Op, Left: left, Right: right})
}
