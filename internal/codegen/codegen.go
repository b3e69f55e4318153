package codegen

import (
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/layout"
	"github.com/shade-lang/shadec/internal/mir"
	"github.com/shade-lang/shadec/internal/types"
)

// Codegen drives an Emitter through §4.8's two passes over a checked
// package: Declare every item's signature first (so forward references
// across items resolve regardless of declaration order), then Define
// every function body.
type Codegen struct {
	Layout  *layout.Engine
	Emitter Emitter
}

// New wires a Codegen for one compilation.
func New(l *layout.Engine, e Emitter) *Codegen {
	return &Codegen{Layout: l, Emitter: e}
}

// FuncType is the minimal shape Declare/Define need about an item: its
// name, parameter/return types, whether it has a body, and its export
// posture (§4.8's @main / @no_mangle raw-name export handling, decided
// by the mangle package's NameOf and exported here via Exported).
type FuncType struct {
	ID         ids.ID
	Name       string
	ParamTypes []*types.Type
	RetType    *types.Type
	HasBody    bool
	Exported   bool // @main or @no_mangle
}

// Declare classifies fn's signature by pass_mode and registers it with
// the Emitter (§4.8 step 1). Linkage follows directly from whether the
// item has a body and whether it is explicitly exported. Returns
// whatever error the Emitter reports back for a refused definition,
// unwrapped so the caller decides how to surface it (a BackendError).
func (c *Codegen) Declare(fn FuncType) (FuncSig, error) {
	sig := FuncSig{Name: fn.Name, Params: make([]Classification, len(fn.ParamTypes))}
	for i, pt := range fn.ParamTypes {
		sig.Params[i] = ClassifyLayout(c.Layout.Layout(pt))
	}
	sig.Ret = ClassifyLayout(c.Layout.Layout(fn.RetType))
	if sig.Ret.Mode == ByRef {
		// ByRef returns prepend a hidden out-pointer parameter (§4.8).
		sig.Params = append([]Classification{{Mode: ByRef, Size: sig.Ret.Size}}, sig.Params...)
	}

	switch {
	case !fn.HasBody:
		sig.Linkage = LinkImport
	case fn.Exported:
		sig.Linkage = LinkExport
	default:
		sig.Linkage = LinkLocal
	}

	if err := c.Emitter.DeclareFunc(sig); err != nil {
		return sig, err
	}
	return sig, nil
}

// Define lowers body's blocks and statements into the Emitter (§4.8 step
// 2): classify every local's SSA eligibility, open the function, declare
// every local, emit each block in order, and close it. Stops at the
// first statement or terminator the Emitter refuses.
func (c *Codegen) Define(sig FuncSig, body *mir.Body) error {
	ssaInfo := AnalyzeSSA(body)
	fb := c.Emitter.BeginBody(sig)

	for _, l := range body.Locals {
		fb.DeclareLocal(l.ID, l.Type, ssaInfo.Eligible(l.ID))
	}

	for _, blk := range body.Blocks {
		fb.BeginBlock(blk.ID)
		for _, stmt := range blk.Stmts {
			if stmt.Kind == mir.Assign {
				if err := fb.EmitAssign(stmt.Place, stmt.RValue); err != nil {
					return err
				}
			}
		}
		if err := fb.EmitTerminator(blk.Term); err != nil {
			return err
		}
	}

	c.Emitter.EndBody(fb)
	return nil
}
