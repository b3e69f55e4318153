package main

import (
	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/infer"
	"github.com/shade-lang/shadec/internal/span"
	"github.com/shade-lang/shadec/internal/target"
	"github.com/shade-lang/shadec/internal/types"
)

// builtinNames maps the identifiers a real resolver would bind primitive
// type names to, into infer.Context.Builtins. Building HIR by hand here
// plays the role the lexer/parser/resolver would in a full pipeline
// (§1 puts all three out of the core's scope); the pipeline itself
// never knows the difference.
type builtinNames struct {
	i32 ids.ID
}

func newBuiltinNames() *builtinNames {
	return &builtinNames{i32: ids.New()}
}

// demoPackage builds a small two-function resolved-HIR package:
//
//	@no_mangle fn id(x: i32) -> i32 { x }
//	fn add(a: i32, b: i32) -> i32 { a + b }
//
// enough to exercise every pipeline stage (inference, MIR, codegen) and
// both export postures (§6's @no_mangle vs the default mangled name).
func demoPackage(builtin *types.BuiltinTypes, names *builtinNames) *hir.Package {
	pkg := &hir.Package{
		Name:  "demo",
		Items: map[ids.ID]*hir.Item{},
		Exprs: map[ids.ID]*hir.Expr{},
		Types: map[ids.ID]*hir.TypeRef{},
	}

	i32Ref := func() ids.ID {
		id := ids.New()
		pkg.Types[id] = &hir.TypeRef{ID: id, Kind: hir.TypeRefName, RefersTo: names.i32}
		return id
	}

	// id
	idParam := ids.New()
	pkg.Items[idParam] = &hir.Item{ID: idParam, Name: "x", Kind: hir.ItemParam, DeclType: i32Ref()}
	idBody := ids.New()
	pkg.Exprs[idBody] = &hir.Expr{ID: idBody, Kind: hir.ExprName, RefersTo: idParam}
	idFn := ids.New()
	pkg.Items[idFn] = &hir.Item{
		ID: idFn, Name: "id", Kind: hir.ItemFunc,
		FuncParams: []ids.ID{idParam}, FuncRet: i32Ref(), FuncBody: idBody,
		NoMangle: true,
	}

	// add
	addA := ids.New()
	pkg.Items[addA] = &hir.Item{ID: addA, Name: "a", Kind: hir.ItemParam, DeclType: i32Ref()}
	addB := ids.New()
	pkg.Items[addB] = &hir.Item{ID: addB, Name: "b", Kind: hir.ItemParam, DeclType: i32Ref()}
	aExpr := ids.New()
	pkg.Exprs[aExpr] = &hir.Expr{ID: aExpr, Kind: hir.ExprName, RefersTo: addA}
	bExpr := ids.New()
	pkg.Exprs[bExpr] = &hir.Expr{ID: bExpr, Kind: hir.ExprName, RefersTo: addB}
	addBody := ids.New()
	pkg.Exprs[addBody] = &hir.Expr{ID: addBody, Kind: hir.ExprBinOp, Op: "+", Left: aExpr, Right: bExpr}
	addFn := ids.New()
	pkg.Items[addFn] = &hir.Item{
		ID: addFn, Name: "add", Kind: hir.ItemFunc,
		FuncParams: []ids.ID{addA, addB}, FuncRet: i32Ref(), FuncBody: addBody,
	}

	return pkg
}

// seedInferContext builds an infer.Context with the demo package's
// builtin-name bindings installed, the way a real resolver's output
// would already have them bound before the core ever sees the package
// (§6: "name resolution, including builtins, is already done").
func seedInferContext(arena *types.Arena, builtin *types.BuiltinTypes, tgt target.Target, pkg *hir.Package, report diagnostics.Reporter, names *builtinNames) *infer.Context {
	ctx := infer.NewContext(arena, builtin, tgt, pkg, span.Map{}, report)
	ctx.Builtins[names.i32] = builtin.Int32
	return ctx
}
