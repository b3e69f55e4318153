package infer

import (
	"github.com/shade-lang/shadec/internal/span"
	"github.com/shade-lang/shadec/internal/types"
)

// Constraint is an Equal(t1, span1, t2, span2) obligation emitted during
// synthesis and solved to a fixpoint afterward (§3, §4.5). Each side keeps
// its own span so a mismatch can point at both origins.
type Constraint struct {
	Left      *types.Type
	LeftSpan  span.Span
	Right     *types.Type
	RightSpan span.Span
}

// Equal records a fresh constraint. Synthesis rules call this instead of
// unifying inline, so the whole program's obligations can be solved
// together after the synthesis walk finishes (§4.4, §4.5).
func (c *Context) Equal(left *types.Type, leftSpan span.Span, right *types.Type, rightSpan span.Span) {
	c.constraints = append(c.constraints, Constraint{
		Left: left, LeftSpan: leftSpan,
		Right: right, RightSpan: rightSpan,
	})
}
