package layout

import "github.com/shade-lang/shadec/internal/types"

// scalarFor builds the Scalar descriptor for a primitive Int/UInt/Float/
// Bool/Ref/TypeId (§4.6: "For each primitive p, size(p) and align(p) are
// target-derived; valid_range = 0 ..= (!0 >> (128-bits))"). References
// narrow the lower bound to 1 (non-null).
func (e *Engine) scalarFor(t *types.Type) *ScalarDesc {
	switch t.Kind() {
	case types.KBool:
		return &ScalarDesc{Primitive: "bool", ValidLow: 0, ValidHigh: 1, Size: 1, Align: 1}
	case types.KInt:
		w := widthOf(t.Width(), e.target.PointerWidthInt())
		return &ScalarDesc{Primitive: "int", ValidLow: 0, ValidHigh: maxUnsigned(w), Size: w / 8, Align: e.target.AlignOf("i", w)}
	case types.KUInt:
		w := widthOf(t.Width(), e.target.PointerWidthInt())
		return &ScalarDesc{Primitive: "uint", ValidLow: 0, ValidHigh: maxUnsigned(w), Size: w / 8, Align: e.target.AlignOf("u", w)}
	case types.KFloat:
		w := t.Width()
		return &ScalarDesc{Primitive: "float", ValidLow: 0, ValidHigh: maxUnsigned(w), Size: w / 8, Align: e.target.AlignOf("f", w)}
	case types.KTypeID:
		w := e.target.PointerWidthInt()
		return &ScalarDesc{Primitive: "typeid", ValidLow: 0, ValidHigh: maxUnsigned(w), Size: w / 8, Align: e.target.AlignOf("u", w)}
	case types.KRef:
		w := e.target.PointerWidthInt()
		return &ScalarDesc{Primitive: "ref", ValidLow: 1, ValidHigh: maxUnsigned(w), Size: w / 8, Align: e.target.AlignOf("u", w)}
	default:
		return nil
	}
}

func widthOf(n, pointerWidth int) int {
	if n == 0 {
		return pointerWidth
	}
	return n
}

func maxUnsigned(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(bits)) - 1
}

// scalarPair combines two Scalars per §4.6's "Scalar pair" rule.
func scalarPair(a, b *ScalarDesc) (size, align, stride int) {
	bOffset := align_up(a.Size, b.Align)
	size = bOffset + b.Size
	align = a.Align
	if b.Align > align {
		align = b.Align
	}
	stride = align_up(size, align)
	return
}

// scalarNiche reports the spare range a Scalar exposes beyond its valid
// range within its own bit width — the niche candidate layout.go's Niche
// type describes.
func scalarNiche(s *ScalarDesc) *Niche {
	full := maxUnsigned(s.Size * 8)
	if s.ValidLow == 0 && s.ValidHigh == full {
		return nil
	}
	// The simplest niche: the range below ValidLow, if any (covers the
	// non-null Ref case exactly: ValidLow=1 leaves {0} as a one-value
	// niche).
	if s.ValidLow > 0 {
		return &Niche{Low: 0, High: s.ValidLow - 1}
	}
	if s.ValidHigh < full {
		return &Niche{Low: s.ValidHigh + 1, High: full}
	}
	return nil
}
