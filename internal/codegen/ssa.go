package codegen

import "github.com/shade-lang/shadec/internal/mir"

// SSAInfo reports, per local, whether it is SSA-eligible (§4.8: "a local
// is SSA-eligible iff its address is never taken and it is assigned at
// most once on every control-flow path").
//
// This analysis approximates the per-path clause conservatively: rather
// than walking every path through the CFG (which would need phi-node
// placement to handle a local legitimately re-assigned once per loop
// iteration), a local is accepted as SSA-eligible only if it has at most
// one static Assign site in the whole body. This under-approximates
// eligibility — some genuinely single-definition-per-path locals inside
// branches get rejected — but never over-approximates it, which is the
// safe direction for a backend that maps non-SSA locals to ordinary
// stack slots.
type SSAInfo struct {
	eligible   map[mir.LocalID]bool
	assignCount map[mir.LocalID]int
}

// Eligible reports whether local id may be mapped to a backend SSA value
// rather than a stack slot.
func (s *SSAInfo) Eligible(id mir.LocalID) bool {
	return s.eligible[id]
}

// AnalyzeSSA computes SSAInfo for body.
func AnalyzeSSA(body *mir.Body) *SSAInfo {
	addressTaken := make(map[mir.LocalID]bool)
	assignCount := make(map[mir.LocalID]int)

	for _, blk := range body.Blocks {
		for _, stmt := range blk.Stmts {
			if stmt.Kind != mir.Assign {
				continue
			}
			if stmt.Place.Base == mir.BaseLocal && len(stmt.Place.Elems) == 0 {
				assignCount[stmt.Place.Local]++
			} else if stmt.Place.Base == mir.BaseLocal {
				// Assigning through a projection (field/index/deref) does
				// not itself take the local's address, but it does mean
				// the local's storage is read through more than a single
				// flat value, so it can never be SSA.
				addressTaken[stmt.Place.Local] = true
			}
			markAddressTaken(stmt.RValue, addressTaken)
		}
		markTermAddressTaken(blk.Term, addressTaken)
	}

	info := &SSAInfo{eligible: make(map[mir.LocalID]bool), assignCount: assignCount}
	for _, l := range body.Locals {
		if l.Kind == mir.Arg {
			// A parameter's initial reception counts as its one
			// definition even though no explicit Assign stmt writes it.
			assignCount[l.ID]++
		}
		info.eligible[l.ID] = !addressTaken[l.ID] && assignCount[l.ID] <= 1
	}
	return info
}

func markAddressTaken(rv mir.RValue, out map[mir.LocalID]bool) {
	if rv.Kind == mir.Ref && rv.Place.Base == mir.BaseLocal {
		out[rv.Place.Local] = true
	}
}

func markTermAddressTaken(t mir.Terminator, out map[mir.LocalID]bool) {
	if t.Kind == mir.Call && t.CallDst.Base == mir.BaseLocal && len(t.CallDst.Elems) > 0 {
		out[t.CallDst.Local] = true
	}
}
