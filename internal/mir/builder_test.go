package mir

import (
	"testing"

	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/infer"
	"github.com/shade-lang/shadec/internal/span"
	"github.com/shade-lang/shadec/internal/target"
	"github.com/shade-lang/shadec/internal/types"
)

// newTestContext mirrors internal/infer's own test harness: an empty
// package with a few builtin scalar ids pre-registered, standing in for
// a resolved-HIR producer that already bound "i32"/"bool" before C4/C7
// ever see the package (§6).
func newTestContext(t *testing.T) (*infer.Context, *hir.Package, map[string]ids.ID) {
	t.Helper()
	arena := types.NewArena(false)
	builtin := types.NewBuiltinTypes(arena)
	pkg := &hir.Package{
		Name:  "test",
		Items: map[ids.ID]*hir.Item{},
		Exprs: map[ids.ID]*hir.Expr{},
		Types: map[ids.ID]*hir.TypeRef{},
	}
	report := diagnostics.NewCollectingReporter()
	tgt, ok := target.Lookup("x86_64")
	if !ok {
		t.Fatal("missing built-in x86_64 target")
	}
	ctx := infer.NewContext(arena, builtin, tgt, pkg, span.Map{}, report)

	names := map[string]ids.ID{"i32": ids.New(), "bool": ids.New()}
	ctx.Builtins[names["i32"]] = builtin.Int32
	ctx.Builtins[names["bool"]] = builtin.Bool

	return ctx, pkg, names
}

func typeRefName(pkg *hir.Package, refersTo ids.ID) ids.ID {
	id := ids.New()
	pkg.Types[id] = &hir.TypeRef{ID: id, Kind: hir.TypeRefName, RefersTo: refersTo}
	return id
}

// TestBuildAddFunction lowers fn add(a: i32, b: i32) -> i32 { a + b } and
// checks the locals/blocks shape §3 mandates: local 0 is Ret, args are
// consecutive from 1, and the single block ends in Return.
func TestBuildAddFunction(t *testing.T) {
	ctx, pkg, b := newTestContext(t)

	aID, bID := ids.New(), ids.New()
	pkg.Items[aID] = &hir.Item{ID: aID, Name: "a", Kind: hir.ItemParam, DeclType: typeRefName(pkg, b["i32"])}
	pkg.Items[bID] = &hir.Item{ID: bID, Name: "b", Kind: hir.ItemParam, DeclType: typeRefName(pkg, b["i32"])}

	aExpr, bExpr := ids.New(), ids.New()
	pkg.Exprs[aExpr] = &hir.Expr{ID: aExpr, Kind: hir.ExprName, RefersTo: aID}
	pkg.Exprs[bExpr] = &hir.Expr{ID: bExpr, Kind: hir.ExprName, RefersTo: bID}

	sumExpr := ids.New()
	pkg.Exprs[sumExpr] = &hir.Expr{ID: sumExpr, Kind: hir.ExprBinOp, Op: "+", Left: aExpr, Right: bExpr}

	fnID := ids.New()
	pkg.Items[fnID] = &hir.Item{
		ID: fnID, Name: "add", Kind: hir.ItemFunc,
		FuncParams: []ids.ID{aID, bID},
		FuncRet:    typeRefName(pkg, b["i32"]),
		FuncBody:   sumExpr,
	}

	ctx.Run()
	if ctx.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Report.Diagnostics())
	}

	body := Build(ctx, pkg.Items[fnID])

	if len(body.Locals) != 4 {
		t.Fatalf("locals = %d, want 4 (ret, a, b, tmp)", len(body.Locals))
	}
	if body.Locals[0].Kind != Ret {
		t.Fatalf("local 0 kind = %v, want Ret", body.Locals[0].Kind)
	}
	if body.Locals[1].Kind != Arg || body.Locals[2].Kind != Arg {
		t.Fatalf("locals 1,2 kind = %v,%v, want Arg,Arg", body.Locals[1].Kind, body.Locals[2].Kind)
	}
	if body.NParams != 2 {
		t.Fatalf("NParams = %d, want 2", body.NParams)
	}

	if len(body.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1 (no control flow)", len(body.Blocks))
	}
	term := body.Blocks[0].Term
	if term.Kind != Return {
		t.Fatalf("terminator = %v, want Return", term.Kind)
	}
	stmts := body.Blocks[0].Stmts
	if len(stmts) != 2 {
		t.Fatalf("stmts = %d, want 2 (tmp := a+b, ret := tmp)", len(stmts))
	}
	if stmts[0].RValue.Kind != BinOp {
		t.Fatalf("first stmt rvalue kind = %v, want BinOp", stmts[0].RValue.Kind)
	}
	last := stmts[len(stmts)-1]
	if last.RValue.Kind != UseRV || last.Place.Local != 0 {
		t.Fatalf("final stmt must store into Ret (local 0) via Use, got kind=%v place.local=%d", last.RValue.Kind, last.Place.Local)
	}
}

// TestBuildIfExpression checks "if cond then A else B" lowers to a
// three-block shape: the switch block, then/else blocks each jumping to
// a shared exit, per §4.7's if-lowering rule.
func TestBuildIfExpression(t *testing.T) {
	ctx, pkg, b := newTestContext(t)

	condExpr := ids.New()
	pkg.Exprs[condExpr] = &hir.Expr{ID: condExpr, Kind: hir.ExprBoolLit, BoolValue: true}

	thenExpr := ids.New()
	pkg.Exprs[thenExpr] = &hir.Expr{ID: thenExpr, Kind: hir.ExprIntLit, IntValue: 1}
	elseExpr := ids.New()
	pkg.Exprs[elseExpr] = &hir.Expr{ID: elseExpr, Kind: hir.ExprIntLit, IntValue: 2}

	ifExpr := ids.New()
	pkg.Exprs[ifExpr] = &hir.Expr{ID: ifExpr, Kind: hir.ExprIf, Cond: condExpr, Then: thenExpr, Else: elseExpr}

	fnID := ids.New()
	pkg.Items[fnID] = &hir.Item{
		ID: fnID, Name: "pick", Kind: hir.ItemFunc,
		FuncRet:  typeRefName(pkg, b["i32"]),
		FuncBody: ifExpr,
	}

	ctx.Run()
	if ctx.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Report.Diagnostics())
	}

	body := Build(ctx, pkg.Items[fnID])

	// entry (switch) + then + else + exit = 4 blocks.
	if len(body.Blocks) != 4 {
		t.Fatalf("blocks = %d, want 4", len(body.Blocks))
	}
	entry := body.Blocks[0]
	if entry.Term.Kind != Switch {
		t.Fatalf("entry terminator = %v, want Switch", entry.Term.Kind)
	}
	if len(entry.Term.Targets) != 2 {
		t.Fatalf("switch targets = %d, want 2", len(entry.Term.Targets))
	}
	exitID := body.Blocks[1].Term.Target
	if body.Blocks[2].Term.Target != exitID {
		t.Fatalf("then/else blocks must jump to the same exit block")
	}
	if body.Blocks[exitID].Term.Kind != Return {
		t.Fatalf("exit block terminator = %v, want Return", body.Blocks[exitID].Term.Kind)
	}
}

// TestBuildWhileLoop checks the header/body/exit shape and the body's
// back-edge jump to the header (§4.7).
func TestBuildWhileLoop(t *testing.T) {
	ctx, pkg, _ := newTestContext(t)

	condExpr := ids.New()
	pkg.Exprs[condExpr] = &hir.Expr{ID: condExpr, Kind: hir.ExprBoolLit, BoolValue: false}
	bodyExpr := ids.New()
	pkg.Exprs[bodyExpr] = &hir.Expr{ID: bodyExpr, Kind: hir.ExprIntLit, IntValue: 0}

	whileExpr := ids.New()
	pkg.Exprs[whileExpr] = &hir.Expr{ID: whileExpr, Kind: hir.ExprWhile, WhileCond: condExpr, WhileBody: bodyExpr}

	fnID := ids.New()
	pkg.Items[fnID] = &hir.Item{
		ID: fnID, Name: "spin", Kind: hir.ItemFunc,
		FuncBody: whileExpr,
	}

	ctx.Run()
	if ctx.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Report.Diagnostics())
	}

	body := Build(ctx, pkg.Items[fnID])

	// entry jump + header + loop body + exit = 4 blocks.
	if len(body.Blocks) != 4 {
		t.Fatalf("blocks = %d, want 4", len(body.Blocks))
	}
	header := body.Blocks[1]
	if header.Term.Kind != Switch {
		t.Fatalf("header terminator = %v, want Switch", header.Term.Kind)
	}
	loopBody := body.Blocks[2]
	if loopBody.Term.Kind != Jump || loopBody.Term.Target != 1 {
		t.Fatalf("loop body must jump back to header (block 1), got %v -> %d", loopBody.Term.Kind, loopBody.Term.Target)
	}
}
