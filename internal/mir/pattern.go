package mir

import (
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/types"
)

// lowerCase implements "case pred of arms → chain of pattern-match
// blocks, each next block attempting the next arm; successful match
// jumps to the arm body, unmatched falls through to the next arm; an
// unconditional abort closes the chain" (§4.7).
func (b *Builder) lowerCase(e *hir.Expr) Operand {
	scrutPlace := b.lowerPlace(b.pkg.Exprs[e.Scrutinee])
	scrutTy := b.exprType(e.Scrutinee)
	entry := b.cur // lowering the scrutinee may itself have opened new blocks

	resultTy := b.exprType(e.ID)
	result := b.Body.NewTmp(resultTy)
	exitBlock := b.Body.NewBlock()

	abortBlock := b.Body.NewBlock()
	b.cur = abortBlock
	b.Body.Terminate(b.cur, Terminator{Kind: Abort})

	next := abortBlock
	for i := len(e.Arms) - 1; i >= 0; i-- {
		arm := e.Arms[i]
		testBlock := b.Body.NewBlock()
		bodyBlock := b.Body.NewBlock()

		b.cur = testBlock
		b.lowerPatternTest(arm.Pattern, scrutPlace, scrutTy, bodyBlock, next)

		b.cur = bodyBlock
		armVal := b.lowerExpr(b.pkg.Exprs[arm.Body])
		if b.Body.block(b.cur).Term.Kind == Unset {
			b.emitAssign(LocalPlace(result), RValue{Kind: UseRV, Operand: armVal})
			b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: exitBlock})
		}

		next = testBlock
	}

	b.Body.Terminate(entry, Terminator{Kind: Jump, Target: next})
	b.cur = exitBlock
	return UsePlace(LocalPlace(result))
}

// lowerPatternTest lowers in the already-current block (set by the
// caller) a test of pattern p against the value at place (of type ty),
// jumping to matchBlock on success, missBlock on failure.
func (b *Builder) lowerPatternTest(p hir.Pattern, place Place, ty *types.Type, matchBlock, missBlock BlockID) {
	switch p.Kind {
	case hir.PatWildcard:
		b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: matchBlock})

	case hir.PatBind:
		loc := b.Body.NewVarLocal(ty)
		b.vars[p.BindTo] = loc
		b.emitAssign(LocalPlace(loc), RValue{Kind: UseRV, Operand: UsePlace(place)})
		b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: matchBlock})

	case hir.PatLiteral:
		lit := b.lowerExpr(b.pkg.Exprs[p.LitValue])
		cmp := b.newTmp(b.Infer.Builtin.Bool, RValue{Kind: BinOp, Op: "==", Left: UsePlace(place), Right: lit})
		b.Body.Terminate(b.cur, Terminator{Kind: Switch, Op: cmp, Values: []uint64{1}, Targets: []BlockID{matchBlock, missBlock}})

	case hir.PatConstructor:
		b.lowerConstructorTest(p, place, ty, matchBlock, missBlock)
	}
}

// lowerConstructorTest reads the scrutinee's discriminant via a Cast to
// an (as-yet abstract, pointer-width) tag integer — RValue has no
// dedicated discriminant operation, and C7 runs before C6 (layout), so
// the concrete tag width isn't known here. C8 hands this Cast to the
// Emitter unchanged; nothing narrows it to the enum's Layout.TagSize.
func (b *Builder) lowerConstructorTest(p hir.Pattern, place Place, ty *types.Type, matchBlock, missBlock BlockID) {
	resolved := ty
	if resolved.Kind() == types.KRef {
		place = place.Project(Elem{Kind: Deref})
		resolved = resolved.Elem()
	}
	if resolved.Kind() != types.KEnum {
		b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: missBlock})
		return
	}

	variants := resolved.EnumVariants()
	idx := -1
	for i := 0; i < variants.Len(); i++ {
		if variants.At(i).Name == p.VariantName {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: missBlock})
		return
	}

	tag := b.newTmp(b.Infer.Builtin.UInt, RValue{Kind: Cast, Type: b.Infer.Builtin.UInt, Operand: UsePlace(place)})
	subBlock := b.Body.NewBlock()
	b.Body.Terminate(b.cur, Terminator{Kind: Switch, Op: tag, Values: []uint64{uint64(idx)}, Targets: []BlockID{subBlock, missBlock}})

	b.cur = subBlock
	variant := variants.At(idx)
	if variant.Fields == nil || len(p.SubPatterns) == 0 {
		b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: matchBlock})
		return
	}

	fieldTypes := make([]*types.Type, variant.Fields.Len())
	for i := 0; i < variant.Fields.Len(); i++ {
		fieldTypes[i] = variant.Fields.At(i).Type
	}
	b.matchSubPatterns(p.SubPatterns, fieldTypes, place, 0, matchBlock, missBlock)
}

func (b *Builder) matchSubPatterns(pats []hir.Pattern, fieldTypes []*types.Type, base Place, idx int, matchBlock, missBlock BlockID) {
	if idx >= len(pats) {
		b.Body.Terminate(b.cur, Terminator{Kind: Jump, Target: matchBlock})
		return
	}
	fieldPlace := base.Project(Elem{Kind: Field, FieldIndex: idx})
	if idx == len(pats)-1 {
		b.lowerPatternTest(pats[idx], fieldPlace, fieldTypes[idx], matchBlock, missBlock)
		return
	}
	nextBlock := b.Body.NewBlock()
	b.lowerPatternTest(pats[idx], fieldPlace, fieldTypes[idx], nextBlock, missBlock)
	b.cur = nextBlock
	b.matchSubPatterns(pats, fieldTypes, base, idx+1, matchBlock, missBlock)
}
