package codegen

import (
	"github.com/shade-lang/shadec/internal/mir"
	"github.com/shade-lang/shadec/internal/types"
)

// Linkage discriminates how a declared symbol is visible to the rest of
// the object file (§4.8's "imports for externs, locals for defined
// bodies, exports for @main / @no_mangle").
type Linkage int

const (
	LinkLocal Linkage = iota
	LinkImport
	LinkExport
)

// FuncSig is the backend-facing signature a Declare pass hands to the
// Emitter: one Classification per parameter plus the return's.
type FuncSig struct {
	Name    string
	Params  []Classification
	Ret     Classification
	Linkage Linkage
}

// Emitter is the boundary to a concrete backend's SSA IR (§4.8). C8
// drives it through two passes — Declare once per item, then Define
// once per body — keeping "what the pipeline produces" cleanly
// separated from "which engine consumes it", the shape a real native
// backend needs instead of a single opaque entry point.
type Emitter interface {
	// DeclareFunc registers a function symbol ahead of any body being
	// defined, so forward references resolve. Returns an error if the
	// backend refuses the definition (e.g. a duplicate or otherwise
	// unrepresentable symbol), reported upstream as a BackendError.
	DeclareFunc(sig FuncSig) error

	// BeginBody opens a function body for sig, returning an opaque
	// per-function builder handle later calls key off of.
	BeginBody(sig FuncSig) FuncBuilder

	// EndBody closes a function body once every block has been emitted.
	EndBody(fb FuncBuilder)
}

// FuncBuilder receives one function body's blocks and instructions in
// MIR order. A concrete backend implements this by emitting its own SSA
// values; this package only ever calls it, never implements it.
type FuncBuilder interface {
	// DeclareLocal registers local id as either an SSA value slot or a
	// stack slot, depending on ssa.
	DeclareLocal(id mir.LocalID, t *types.Type, ssa bool)

	// BeginBlock opens block id for emission.
	BeginBlock(id mir.BlockID)

	// EmitAssign lowers one MIR Assign statement. Returns an error if the
	// backend refuses the statement (e.g. an RValue shape it cannot
	// represent), reported upstream as a BackendError.
	EmitAssign(place mir.Place, rv mir.RValue) error

	// EmitTerminator lowers one MIR terminator, sealing the block it was
	// opened on. Returns an error under the same refusal policy as
	// EmitAssign.
	EmitTerminator(term mir.Terminator) error
}
