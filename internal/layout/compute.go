package layout

import (
	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/types"
)

// Layout computes (and memoizes, keyed by interned type pointer) t's
// ABI-relevant layout (§4.6). Calling it on a type that still contains an
// inference variable is a programmer error — the caller must have run
// inference to a fixpoint first (§3's invariant). Getting here anyway
// panics with the Error() text of a diagnostics.LayoutError (a Bug-severity diagnostic)
// rather than fabricating a layout for a type that shouldn't exist by
// this stage.
func (e *Engine) Layout(t *types.Type) *Layout {
	return e.cache.GetOrInsert(types.HashOfType(t), t, func() *Layout {
		return e.compute(t)
	})
}

func (e *Engine) compute(t *types.Type) *Layout {
	switch t.Kind() {
	case types.KNever:
		return &Layout{Size: 0, Align: 1, Stride: 0, ABI: Uninhabited}

	case types.KBool, types.KInt, types.KUInt, types.KFloat, types.KTypeID, types.KRef:
		s := e.scalarFor(t)
		return &Layout{
			Size: s.Size, Align: s.Align, Stride: align_up(s.Size, s.Align),
			ABI: Scalar, A: s, FieldsKind: FieldsPrimitive,
			LargestNiche: scalarNiche(s), VariantsKind: VariantsSingle,
		}

	case types.KStr:
		return e.scalarPairLayout("ptr", "uint")

	case types.KSlice:
		return e.scalarPairLayout("ptr", "uint")

	case types.KArray:
		elemLayout := e.Layout(t.Elem())
		count := t.ArrayLen()
		stride := elemLayout.Stride * int(count)
		return &Layout{
			Size: stride, Align: elemLayout.Align, Stride: stride,
			ABI: Aggregate, FieldsKind: FieldsArray,
			ArrayStride: elemLayout.Stride, ArrayCount: count,
			VariantsKind: VariantsSingle,
		}

	case types.KTuple:
		elems := t.TupleElems()
		fieldTypes := make([]*types.Type, elems.Len())
		for i := 0; i < elems.Len(); i++ {
			fieldTypes[i] = elems.At(i)
		}
		return e.structOrTupleLayout(fieldTypes)

	case types.KStruct:
		fields := t.StructFields()
		fieldTypes := make([]*types.Type, fields.Len())
		for i := 0; i < fields.Len(); i++ {
			fieldTypes[i] = fields.At(i).Type
		}
		return e.structOrTupleLayout(fieldTypes)

	case types.KEnum:
		return e.enumLayout(t)

	case types.KFunc, types.KObject:
		// Function values and fat pointers are pointer-pair-or-single
		// addresses at the ABI level; Object is explicitly a fat pointer
		// (§3), Func is addressed by a single code pointer.
		if t.Kind() == types.KObject {
			return e.scalarPairLayout("ptr", "ptr")
		}
		w := e.target.PointerWidthInt()
		s := &ScalarDesc{Primitive: "funcptr", ValidLow: 0, ValidHigh: maxUnsigned(w), Size: w / 8, Align: e.target.AlignOf("u", w)}
		return &Layout{Size: s.Size, Align: s.Align, Stride: align_up(s.Size, s.Align), ABI: Scalar, A: s, FieldsKind: FieldsPrimitive, VariantsKind: VariantsSingle}

	default:
		// Error/TypeOf/Var family: never reach layout in a valid
		// compilation (§3's invariant; the caller is responsible for
		// checking has_errors() before invoking C6 at all, per §7's
		// propagation policy). Getting here anyway is the internal
		// compiler bug §7 calls out, not a value layout can fabricate
		// meaning for, so raise it as one instead of pretending t has
		// a zero-size layout.
		panic((&diagnostics.LayoutError{Type: t.String()}).Error())
	}
}

func (e *Engine) scalarPairLayout(aKind, bKind string) *Layout {
	w := e.target.PointerWidthInt()
	a := &ScalarDesc{Primitive: aKind, ValidLow: 1, ValidHigh: maxUnsigned(w), Size: w / 8, Align: e.target.AlignOf("u", w)}
	if aKind != "ptr" {
		a.ValidLow = 0
	}
	b := &ScalarDesc{Primitive: bKind, ValidLow: 0, ValidHigh: maxUnsigned(w), Size: w / 8, Align: e.target.AlignOf("u", w)}
	size, align, stride := scalarPair(a, b)
	return &Layout{
		Size: size, Align: align, Stride: stride,
		ABI: ScalarPair, A: a, B: b,
		FieldsKind:   FieldsPrimitive,
		LargestNiche: scalarNiche(a),
		VariantsKind: VariantsSingle,
	}
}
