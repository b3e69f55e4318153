// Package codegen implements C8: target-ABI-aware lowering from a MIR
// Body to a backend's SSA IR, behind the Emitter boundary (§4.8). This
// package never picks a concrete instruction set; it classifies every
// value by pass_mode, runs the two-pass Declare/Define lowering, and
// drives whatever Emitter the caller supplies, keeping "what the
// compiler pipeline produces" separate from "which concrete engine runs
// it".
package codegen

import "github.com/shade-lang/shadec/internal/layout"

// PassMode discriminates how a value crosses a call boundary, derived
// from its Layout (§4.8's pass-mode table).
type PassMode int

const (
	NoPass PassMode = iota
	ByVal
	ByPair
	ByRef
)

func (m PassMode) String() string {
	switch m {
	case NoPass:
		return "NoPass"
	case ByVal:
		return "ByVal"
	case ByPair:
		return "ByPair"
	case ByRef:
		return "ByRef"
	default:
		return "PassMode?"
	}
}

// Classification is a PassMode together with the scalar descriptor(s) a
// backend needs to actually move the value (register class, width).
type Classification struct {
	Mode PassMode
	A, B *layout.ScalarDesc // ByVal uses A only; ByPair uses both.
	Size int                // ByRef: the hidden pointee's size.
}

// ClassifyLayout implements §4.8's pass-mode table exactly:
//
//	size == 0            -> NoPass
//	abi = Scalar(s)       -> ByVal(s)
//	abi = ScalarPair(a,b) -> ByPair(a,b)
//	otherwise             -> ByRef{size}
func ClassifyLayout(l *layout.Layout) Classification {
	if l.Size == 0 {
		return Classification{Mode: NoPass}
	}
	switch l.ABI {
	case layout.Scalar:
		return Classification{Mode: ByVal, A: l.A}
	case layout.ScalarPair:
		return Classification{Mode: ByPair, A: l.A, B: l.B}
	default:
		return Classification{Mode: ByRef, Size: l.Size}
	}
}
