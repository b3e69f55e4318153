package layout

import "github.com/shade-lang/shadec/internal/types"

// enumLayout implements §4.6's enum-layout algorithm: 0 variants is
// uninhabited, 1 variant is tag-free, 2+ get a direct tag prefix sized to
// the number of variants.
func (e *Engine) enumLayout(t *types.Type) *Layout {
	variants := t.EnumVariants()
	n := variants.Len()

	if n == 0 {
		return &Layout{Size: 0, Align: 1, Stride: 0, ABI: Uninhabited, VariantsKind: VariantsMultiple}
	}

	variantFieldTypes := make([][]*types.Type, n)
	for i := 0; i < n; i++ {
		v := variants.At(i)
		if v.Fields == nil {
			continue
		}
		ft := make([]*types.Type, v.Fields.Len())
		for j := 0; j < v.Fields.Len(); j++ {
			ft[j] = v.Fields.At(j).Type
		}
		variantFieldTypes[i] = ft
	}

	if n == 1 {
		vl := e.structOrTupleLayout(variantFieldTypes[0])
		return &Layout{
			Size: vl.Size, Align: vl.Align, Stride: vl.Stride,
			ABI: vl.ABI, A: vl.A, B: vl.B,
			FieldsKind: vl.FieldsKind, FieldOffsets: vl.FieldOffsets,
			LargestNiche: vl.LargestNiche,
			VariantsKind: VariantsSingle, SingleIndex: 0,
			Variants: []VariantLayout{{Layout: vl, Offset: 0}},
		}
	}

	variantLayouts := make([]*Layout, n)
	align := 1
	maxSize := 0
	for i, ft := range variantFieldTypes {
		vl := e.structOrTupleLayout(ft)
		variantLayouts[i] = vl
		if vl.Align > align {
			align = vl.Align
		}
		if vl.Size > maxSize {
			maxSize = vl.Size
		}
	}

	tagSize := bitsFor(n) / 8
	tagAlign := tagSize
	if tagAlign > align {
		align = tagAlign
	}

	dataOffset := align_up(tagSize, align)
	size := dataOffset + maxSize
	stride := align_up(size, align)

	variantResults := make([]VariantLayout, n)
	for i, vl := range variantLayouts {
		shifted := &Layout{
			Size: vl.Size, Align: vl.Align, Stride: vl.Stride,
			ABI: vl.ABI, A: vl.A, B: vl.B,
			FieldsKind:   vl.FieldsKind,
			FieldOffsets: shiftOffsets(vl.FieldOffsets, dataOffset),
			LargestNiche: vl.LargestNiche,
			VariantsKind: VariantsSingle, SingleIndex: i,
		}
		variantResults[i] = VariantLayout{Layout: shifted, Offset: dataOffset}
	}

	return &Layout{
		Size: size, Align: align, Stride: stride,
		ABI:          Aggregate,
		FieldsKind:   FieldsUnion,
		VariantsKind: VariantsMultiple,
		TagSize:      tagSize * 8,
		Encoding:     Direct,
		TagOffset:    0,
		Variants:     variantResults,
	}
}

func shiftOffsets(offsets []int, by int) []int {
	out := make([]int, len(offsets))
	for i, o := range offsets {
		out[i] = o + by
	}
	return out
}
