package pipeline

import (
	"fmt"
	"testing"

	"github.com/shade-lang/shadec/internal/codegen"
	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/infer"
	"github.com/shade-lang/shadec/internal/mir"
	"github.com/shade-lang/shadec/internal/span"
	"github.com/shade-lang/shadec/internal/target"
	"github.com/shade-lang/shadec/internal/types"
)

// recordingEmitter is a minimal in-package stand-in for a native backend,
// just enough to assert the pipeline drove C8 in the expected order.
type recordingEmitter struct {
	declared []string
	defined  []string
}

func (r *recordingEmitter) DeclareFunc(sig codegen.FuncSig) error {
	r.declared = append(r.declared, sig.Name)
	return nil
}

func (r *recordingEmitter) BeginBody(sig codegen.FuncSig) codegen.FuncBuilder {
	r.defined = append(r.defined, sig.Name)
	return &recordingFuncBuilder{}
}

func (r *recordingEmitter) EndBody(fb codegen.FuncBuilder) {}

type recordingFuncBuilder struct{}

func (*recordingFuncBuilder) DeclareLocal(id mir.LocalID, t *types.Type, ssa bool) {}
func (*recordingFuncBuilder) BeginBlock(id mir.BlockID)                           {}
func (*recordingFuncBuilder) EmitAssign(place mir.Place, rv mir.RValue) error     { return nil }
func (*recordingFuncBuilder) EmitTerminator(term mir.Terminator) error            { return nil }

// newTestContext builds an empty package with builtin scalar ids
// pre-registered, mirroring internal/infer's own test harness.
func newTestContext(t *testing.T) (*PipelineContext, map[string]ids.ID) {
	t.Helper()
	arena := types.NewArena(false)
	builtin := types.NewBuiltinTypes(arena)
	pkg := &hir.Package{
		Name:  "test",
		Items: map[ids.ID]*hir.Item{},
		Exprs: map[ids.ID]*hir.Expr{},
		Types: map[ids.ID]*hir.TypeRef{},
	}
	tgt, ok := target.Lookup("x86_64")
	if !ok {
		t.Fatal("missing x86_64 target")
	}

	names := map[string]ids.ID{"i32": ids.New()}

	ctx := &PipelineContext{
		Pkg:        pkg,
		Arena:      arena,
		Builtin:    builtin,
		Target:     tgt,
		Spans:      span.Map{},
		Report:     diagnostics.NewCollectingReporter(),
		ModulePath: "geo",
	}
	return ctx, names
}

func typeRefName(pkg *hir.Package, refersTo ids.ID) ids.ID {
	id := ids.New()
	pkg.Types[id] = &hir.TypeRef{ID: id, Kind: hir.TypeRefName, RefersTo: refersTo}
	return id
}

// TestPipelineRunsAddFunctionThroughCodegen builds `fn add(a: i32, b: i32)
// -> i32 { a + b }` and checks every stage ran: no diagnostics, a MIR body
// exists, and the Emitter saw exactly one declare+define pair under the
// module-mangled name.
func TestPipelineRunsAddFunctionThroughCodegen(t *testing.T) {
	ctx, names := newTestContext(t)

	aID, bID := ids.New(), ids.New()
	ctx.Pkg.Items[aID] = &hir.Item{ID: aID, Name: "a", Kind: hir.ItemParam, DeclType: typeRefName(ctx.Pkg, names["i32"])}
	ctx.Pkg.Items[bID] = &hir.Item{ID: bID, Name: "b", Kind: hir.ItemParam, DeclType: typeRefName(ctx.Pkg, names["i32"])}

	nameA := &hir.Expr{ID: ids.New(), Kind: hir.ExprName, RefersTo: aID}
	nameB := &hir.Expr{ID: ids.New(), Kind: hir.ExprName, RefersTo: bID}
	ctx.Pkg.Exprs[nameA.ID] = nameA
	ctx.Pkg.Exprs[nameB.ID] = nameB

	bodyID := ids.New()
	ctx.Pkg.Exprs[bodyID] = &hir.Expr{ID: bodyID, Kind: hir.ExprBinOp, Op: "+", Left: nameA.ID, Right: nameB.ID}

	fnID := ids.New()
	ctx.Pkg.Items[fnID] = &hir.Item{
		ID: fnID, Name: "add", Kind: hir.ItemFunc,
		FuncParams: []ids.ID{aID, bID},
		FuncRet:    typeRefName(ctx.Pkg, names["i32"]),
		FuncBody:   bodyID,
	}

	// Register the i32 builtin id the way a resolved-HIR producer would
	// have bound it; InferStage reuses a Context already on ctx, so a
	// thin stage run before InferStage creates that Context and seeds
	// its builtin map.
	emitter := &recordingEmitter{}
	ctx.Emitter = emitter

	pipe := New(seedBuiltinsStage{names: names}, InferStage{}, MIRStage{}, CodegenStage{})
	out := pipe.Run(ctx)

	if out.Err != nil {
		t.Fatalf("pipeline error: %v", out.Err)
	}
	if out.Report.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", out.Report.(*diagnostics.CollectingReporter).Diagnostics())
	}
	if _, ok := out.Bodies[fnID]; !ok {
		t.Fatalf("expected a MIR body for %q", "add")
	}
	wantName := "_S3geo3add"
	if len(emitter.declared) != 1 || emitter.declared[0] != wantName {
		t.Fatalf("declared = %v, want [%s]", emitter.declared, wantName)
	}
	if len(emitter.defined) != 1 || emitter.defined[0] != wantName {
		t.Fatalf("defined = %v, want [%s]", emitter.defined, wantName)
	}
}

// failingEmitter refuses every declaration, standing in for a native
// backend that rejects a definition (duplicate symbol, unsupported
// target feature, etc.) so CodegenStage's BackendError wrapping has
// something real to exercise.
type failingEmitter struct{}

func (failingEmitter) DeclareFunc(sig codegen.FuncSig) error {
	return fmt.Errorf("backend: refused %q", sig.Name)
}
func (failingEmitter) BeginBody(sig codegen.FuncSig) codegen.FuncBuilder { return &recordingFuncBuilder{} }
func (failingEmitter) EndBody(fb codegen.FuncBuilder)                    {}

// TestCodegenStageWrapsEmitterErrorAsBackendError checks a Declare failure
// stops the pipeline and is reported as a diagnostics.BackendError rather
// than silently dropped.
func TestCodegenStageWrapsEmitterErrorAsBackendError(t *testing.T) {
	ctx, names := newTestContext(t)

	litID := ids.New()
	ctx.Pkg.Exprs[litID] = &hir.Expr{ID: litID, Kind: hir.ExprIntLit}

	fnID := ids.New()
	ctx.Pkg.Items[fnID] = &hir.Item{
		ID: fnID, Name: "noop", Kind: hir.ItemFunc,
		FuncRet:  typeRefName(ctx.Pkg, names["i32"]),
		FuncBody: litID,
	}

	ctx.Emitter = failingEmitter{}

	pipe := New(seedBuiltinsStage{names: names}, InferStage{}, MIRStage{}, CodegenStage{})
	out := pipe.Run(ctx)

	if out.Err == nil {
		t.Fatal("expected a pipeline error from the refused declaration")
	}
	report := out.Report.(*diagnostics.CollectingReporter)
	found := false
	for _, d := range report.Diagnostics() {
		if d.Code == diagnostics.CodeBackendError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeBackendError, got %v", report.Diagnostics())
	}
}

// seedBuiltinsStage runs before InferStage to build its Context ahead of
// time with Builtins pre-bound, the way a resolved-HIR producer's
// builtin-name bindings would already exist (§6); InferStage reuses an
// already-set ctx.Infer instead of replacing it.
type seedBuiltinsStage struct {
	names map[string]ids.ID
}

func (s seedBuiltinsStage) Process(ctx *PipelineContext) *PipelineContext {
	ic := infer.NewContext(ctx.Arena, ctx.Builtin, ctx.Target, ctx.Pkg, ctx.Spans, ctx.Report)
	for name, id := range s.names {
		switch name {
		case "i32":
			ic.Builtins[id] = ctx.Builtin.Int32
		}
	}
	ctx.Infer = ic
	return ctx
}
