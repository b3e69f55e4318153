// Package infer implements C4 (Inference Engine) and C5 (Unifier): the
// two-phase pipeline that walks every item to synthesize types and record
// constraints, then solves those constraints (§4.4, §4.5).
package infer

import (
	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/span"
	"github.com/shade-lang/shadec/internal/target"
	"github.com/shade-lang/shadec/internal/types"
)

// Context owns everything a single compilation's inference pass threads
// through: the arena, the package being checked, the memoization table
// (the type map, C3's in-memory counterpart), the constraint list, and the
// fresh-variable counter. It is the re-architected "interior mutability
// through phases" cell spec.md §9 calls for: `&mut self` methods during
// inference, `&self` reads afterward.
type Context struct {
	Arena   *types.Arena
	Builtin *types.BuiltinTypes
	Target  target.Target
	Pkg     *hir.Package
	Spans   span.Lookup
	Report  diagnostics.Reporter

	typeMap map[ids.ID]*types.Type

	// Builtins maps the stable ids the resolved-HIR producer assigns to
	// primitive/builtin type names (i32, bool, str, ...) directly to
	// their interned Type, bypassing Items/Exprs/Types lookup (§6: name
	// resolution, including builtins, is already done by the time the
	// core sees a Package).
	Builtins map[ids.ID]*types.Type

	constraints []Constraint
	subst       map[int]*types.Type

	freshIdx int
}

// NewContext wires up a fresh inference context for one package.
func NewContext(arena *types.Arena, builtin *types.BuiltinTypes, t target.Target, pkg *hir.Package, spans span.Lookup, report diagnostics.Reporter) *Context {
	return &Context{
		Arena:   arena,
		Builtin: builtin,
		Target:  t,
		Pkg:     pkg,
		Spans:   spans,
		Report:  report,
		typeMap:  make(map[ids.ID]*types.Type),
		Builtins: make(map[ids.ID]*types.Type),
		subst:    make(map[int]*types.Type),
	}
}

// TypeMap exposes the memoization table once inference has finished,
// ready for C3 to persist (§4.3) or C6/C7 to consume.
func (c *Context) TypeMap() map[ids.ID]*types.Type {
	return c.typeMap
}

func (c *Context) spanOf(id ids.ID) span.Span {
	if c.Spans == nil {
		return span.None
	}
	return c.Spans.SpanOf(id)
}

// NewVar allocates a fresh unconstrained inference variable (§4.4's
// new_var()).
func (c *Context) NewVar() *types.Type {
	idx := c.freshIdx
	c.freshIdx++
	return c.Arena.Var(idx)
}

// NewInt allocates a fresh signed-integer-defaulting variable (new_int()).
func (c *Context) NewInt() *types.Type {
	idx := c.freshIdx
	c.freshIdx++
	return c.Arena.VInt(idx)
}

// NewUInt allocates a fresh unsigned-integer-defaulting variable (new_uint()).
func (c *Context) NewUInt() *types.Type {
	idx := c.freshIdx
	c.freshIdx++
	return c.Arena.VUInt(idx)
}

// NewFloat allocates a fresh float-defaulting variable (new_float()).
func (c *Context) NewFloat() *types.Type {
	idx := c.freshIdx
	c.freshIdx++
	return c.Arena.VFloat(idx)
}
