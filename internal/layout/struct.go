package layout

import "github.com/shade-lang/shadec/internal/types"

// fieldsLayout walks fieldTypes in source order computing offsets, size,
// align, and the largest niche among them (§4.6's struct-layout
// algorithm). It also returns each field's own *Layout so the caller can
// decide whether the aggregate collapses to Scalar/ScalarPair.
func (e *Engine) fieldsLayout(fieldTypes []*types.Type) (offsets []int, size, align int, largest *Niche, fieldLayouts []*Layout) {
	align = 1
	offset := 0
	offsets = make([]int, len(fieldTypes))
	fieldLayouts = make([]*Layout, len(fieldTypes))

	for i, ft := range fieldTypes {
		fl := e.Layout(ft)
		fieldLayouts[i] = fl
		offset = align_up(offset, fl.Align)
		offsets[i] = offset
		if fl.Align > align {
			align = fl.Align
		}
		offset += fl.Size
		if fl.LargestNiche != nil {
			if largest == nil || fl.LargestNiche.Available() > largest.Available() {
				largest = fl.LargestNiche
			}
		}
	}
	return offsets, offset, align, largest, fieldLayouts
}

// structOrTupleLayout builds an Aggregate (or collapsed Scalar/ScalarPair)
// Layout for an ordered list of field types — used for both Struct and
// Tuple, which share the identical field-layout algorithm (§4.6 only
// describes it once, under "Struct layout", but Tuple has no separate
// rule and is structurally the same shape with unnamed fields).
func (e *Engine) structOrTupleLayout(fieldTypes []*types.Type) *Layout {
	offsets, size, align, niche, fieldLayouts := e.fieldsLayout(fieldTypes)
	stride := align_up(size, align)

	l := &Layout{
		Size: size, Align: max(align, 1), Stride: stride,
		ABI:          Aggregate,
		FieldsKind:   FieldsArbitrary,
		FieldOffsets: offsets,
		LargestNiche: niche,
		VariantsKind: VariantsSingle,
		SingleIndex:  0,
	}

	switch {
	case len(fieldLayouts) == 1 && fieldLayouts[0].ABI == Scalar:
		l.ABI = Scalar
		l.A = fieldLayouts[0].A
	case len(fieldLayouts) == 2 && fieldLayouts[0].ABI == Scalar && fieldLayouts[1].ABI == Scalar:
		psize, palign, pstride := scalarPair(fieldLayouts[0].A, fieldLayouts[1].A)
		l.ABI = ScalarPair
		l.A, l.B = fieldLayouts[0].A, fieldLayouts[1].A
		l.Size, l.Align, l.Stride = psize, palign, pstride
	}
	return l
}
