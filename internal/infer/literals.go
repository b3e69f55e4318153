package infer

import (
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/types"
)

// synthIntLit gives an integer literal a fresh signed-defaulting variable
// rather than a concrete width, so `let x = 1;` defaults to the
// pointer-width signed int only if nothing else constrains it, while
// `let x: u8 = 1;` still unifies fine (§3, §4.4).
func (c *Context) synthIntLit(e *hir.Expr) *types.Type {
	return c.NewInt()
}

// synthFloatLit mirrors synthIntLit for float literals.
func (c *Context) synthFloatLit(e *hir.Expr) *types.Type {
	return c.NewFloat()
}
