package infer

import (
	"testing"

	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/span"
	"github.com/shade-lang/shadec/internal/target"
	"github.com/shade-lang/shadec/internal/types"
)

// newTestContext builds a Context over an empty package with the builtin
// scalar types pre-registered under fresh ids, mirroring how a resolved
// HIR producer would have already bound "i32", "bool", etc. to stable ids
// before handing the package to the core (§6).
func newTestContext() (*Context, *hir.Package, *diagnostics.CollectingReporter, map[string]ids.ID) {
	arena := types.NewArena(false)
	builtin := types.NewBuiltinTypes(arena)
	pkg := &hir.Package{
		Name:  "test",
		Items: map[ids.ID]*hir.Item{},
		Exprs: map[ids.ID]*hir.Expr{},
		Types: map[ids.ID]*hir.TypeRef{},
	}
	report := diagnostics.NewCollectingReporter()
	tgt, _ := target.Lookup("x86_64")
	ctx := NewContext(arena, builtin, tgt, pkg, span.Map{}, report)

	names := map[string]ids.ID{
		"i32":  ids.New(),
		"bool": ids.New(),
		"str":  ids.New(),
	}
	ctx.Builtins[names["i32"]] = builtin.Int32
	ctx.Builtins[names["bool"]] = builtin.Bool
	ctx.Builtins[names["str"]] = builtin.Str

	return ctx, pkg, report, names
}

func typeRefName(pkg *hir.Package, refersTo ids.ID) ids.ID {
	id := ids.New()
	pkg.Types[id] = &hir.TypeRef{ID: id, Kind: hir.TypeRefName, RefersTo: refersTo}
	return id
}

// TestIdentityFunction checks fn id(x: i32) -> i32 { x } infers to
// Func([i32], i32) with no diagnostics.
func TestIdentityFunction(t *testing.T) {
	ctx, pkg, report, b := newTestContext()

	paramID := ids.New()
	pkg.Items[paramID] = &hir.Item{ID: paramID, Name: "x", Kind: hir.ItemParam, DeclType: typeRefName(pkg, b["i32"])}

	bodyID := ids.New()
	pkg.Exprs[bodyID] = &hir.Expr{ID: bodyID, Kind: hir.ExprName, RefersTo: paramID}

	fnID := ids.New()
	pkg.Items[fnID] = &hir.Item{
		ID: fnID, Name: "id", Kind: hir.ItemFunc,
		FuncParams: []ids.ID{paramID},
		FuncRet:    typeRefName(pkg, b["i32"]),
		FuncBody:   bodyID,
	}

	ctx.Run()

	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", report.Diagnostics())
	}
	fnTy := ctx.TypeMap()[fnID]
	if fnTy.Kind() != types.KFunc {
		t.Fatalf("fn type kind = %v, want Func", fnTy.Kind())
	}
	if fnTy.FuncParams().Len() != 1 || fnTy.FuncParams().At(0).Type != ctx.Builtin.Int32 {
		t.Fatalf("param type wrong: %s", fnTy.FuncParams().At(0).Type)
	}
	if fnTy.FuncResult() != ctx.Builtin.Int32 {
		t.Fatalf("result type = %s, want i32", fnTy.FuncResult())
	}
}

// TestIntLiteralDefaultsToPointerWidthInt checks an unconstrained integer
// literal defaults to the target's pointer-width signed int (§3, §9).
func TestIntLiteralDefaultsToPointerWidthInt(t *testing.T) {
	ctx, pkg, report, _ := newTestContext()

	litID := ids.New()
	pkg.Exprs[litID] = &hir.Expr{ID: litID, Kind: hir.ExprIntLit}

	varID := ids.New()
	pkg.Items[varID] = &hir.Item{ID: varID, Name: "x", Kind: hir.ItemVar, VarInit: litID}
	// No declared type: DeclType left zero, so nothing constrains the
	// literal's fresh VInt other than the defaulting pass.

	ctx.Run()

	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", report.Diagnostics())
	}
	got := ctx.TypeMap()[litID]
	if got != ctx.Builtin.Int {
		t.Fatalf("literal type = %s, want pointer-width int", got)
	}
}

// TestNominalMismatchIsReported checks two structurally identical but
// nominally distinct structs do not unify (§3's central invariant, §8
// seed scenario).
func TestNominalMismatchIsReported(t *testing.T) {
	ctx, pkg, report, b := newTestContext()

	fieldDecl := []hir.FieldDecl{{Name: "v", Type: typeRefName(pkg, b["i32"])}}

	structAID := ids.New()
	pkg.Items[structAID] = &hir.Item{ID: structAID, Name: "A", Kind: hir.ItemStruct, StructFields: fieldDecl}

	structBID := ids.New()
	pkg.Items[structBID] = &hir.Item{ID: structBID, Name: "B", Kind: hir.ItemStruct, StructFields: fieldDecl}

	// A function declared to return struct A, whose body is a struct-B
	// literal: structurally identical fields, distinct ids, must mismatch.
	bodyID := ids.New()
	pkg.Exprs[bodyID] = &hir.Expr{ID: bodyID, Kind: hir.ExprInit, InitOf: structBID}

	fnID := ids.New()
	pkg.Items[fnID] = &hir.Item{
		ID: fnID, Name: "take_a", Kind: hir.ItemFunc,
		FuncRet:  typeRefName(pkg, structAID),
		FuncBody: bodyID,
	}

	ctx.Run()

	if !report.HasErrors() {
		t.Fatalf("expected a nominal type mismatch diagnostic, got none")
	}
	found := false
	for _, d := range report.Diagnostics() {
		if d.Code == diagnostics.CodeTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeTypeMismatch, got %v", report.Diagnostics())
	}
}

// TestInvalidCastIsReported checks a cast from a struct (an aggregate, not a
// single-word representation) to i32 is rejected as an invalid cast rather
// than silently type-checking.
func TestInvalidCastIsReported(t *testing.T) {
	ctx, pkg, report, b := newTestContext()

	fieldDecl := []hir.FieldDecl{{Name: "v", Type: typeRefName(pkg, b["i32"])}}
	structID := ids.New()
	pkg.Items[structID] = &hir.Item{ID: structID, Name: "Point", Kind: hir.ItemStruct, StructFields: fieldDecl}

	initID := ids.New()
	pkg.Exprs[initID] = &hir.Expr{ID: initID, Kind: hir.ExprInit, InitOf: structID}

	castID := ids.New()
	pkg.Exprs[castID] = &hir.Expr{ID: castID, Kind: hir.ExprCast, Sub: initID, CastTo: typeRefName(pkg, b["i32"])}

	varID := ids.New()
	pkg.Items[varID] = &hir.Item{ID: varID, Name: "x", Kind: hir.ItemVar, VarInit: castID}

	ctx.Run()

	if !report.HasErrors() {
		t.Fatalf("expected an invalid-cast diagnostic, got none")
	}
	found := false
	for _, d := range report.Diagnostics() {
		if d.Code == diagnostics.CodeInvalidCast {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeInvalidCast, got %v", report.Diagnostics())
	}
}

// TestValidScalarCastIsAccepted checks a cast between two scalar-like kinds
// (i32 to bool, a single-word reinterpretation) produces no diagnostics.
func TestValidScalarCastIsAccepted(t *testing.T) {
	ctx, pkg, report, b := newTestContext()

	litID := ids.New()
	pkg.Exprs[litID] = &hir.Expr{ID: litID, Kind: hir.ExprIntLit}

	castID := ids.New()
	pkg.Exprs[castID] = &hir.Expr{ID: castID, Kind: hir.ExprCast, Sub: litID, CastTo: typeRefName(pkg, b["bool"])}

	varID := ids.New()
	pkg.Items[varID] = &hir.Item{ID: varID, Name: "x", Kind: hir.ItemVar, VarInit: castID}

	ctx.Run()

	if report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", report.Diagnostics())
	}
	got := ctx.TypeMap()[castID]
	if got != ctx.Builtin.Bool {
		t.Fatalf("cast result type = %s, want bool", got)
	}
}
