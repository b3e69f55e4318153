// Package pipeline wires the core's stages into the single ordered run
// §1/§6 describe: resolved HIR in, checked package + object out
// (`... -> C4 (+ C1/C2) -> C5 -> typed package -> C7 -> MIR -> C6 ->
// C8 -> object`), using the straightforward shape that fits: a Pipeline
// holding an ordered list of Processors, each threading a mutable
// context to the next and appending any diagnostics it raises.
package pipeline

import (
	"fmt"

	"github.com/shade-lang/shadec/internal/codegen"
	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/hir"
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/infer"
	"github.com/shade-lang/shadec/internal/layout"
	"github.com/shade-lang/shadec/internal/mangle"
	"github.com/shade-lang/shadec/internal/mir"
	"github.com/shade-lang/shadec/internal/span"
	"github.com/shade-lang/shadec/internal/target"
	"github.com/shade-lang/shadec/internal/types"
)

// PipelineContext threads every stage's output to the next. A run
// starts with Pkg/Arena/Builtin/Target/Spans/Report populated by the
// caller and accumulates Infer, Bodies, and Sigs as each Processor
// runs.
type PipelineContext struct {
	Pkg     *hir.Package
	Arena   *types.Arena
	Builtin *types.BuiltinTypes
	Target  target.Target
	Spans   span.Lookup
	Report  diagnostics.Reporter

	// ModulePath feeds internal/mangle's <module>.<item> composition.
	ModulePath string

	// Emitter is the backend the Codegen stage drives; nil skips C8
	// entirely (useful for a type-check-only run, e.g. an LSP).
	Emitter codegen.Emitter

	Infer  *infer.Context
	Layout *layout.Engine

	// Bodies holds C7's MIR per ItemFunc, keyed by item id.
	Bodies map[ids.ID]*mir.Body

	// Sigs holds C8's declared signature per ItemFunc, keyed by item id,
	// populated once the Codegen stage's Declare half has run.
	Sigs map[ids.ID]codegen.FuncSig

	// Err holds the first stage-fatal error (distinct from diagnostics
	// collected via Report, which a caller may still want even when a
	// later stage could not run).
	Err error
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs an ordered sequence of Processors over one PipelineContext.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from an ordered processor list. Default builds
// stages with Default.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Default is the core's standard stage order: infer+solve (C4/C5),
// build MIR (C7), then declare+define through the backend (C8). C6's
// layout engine has no dedicated stage — it has no state of its own
// beyond its memoizing cache, so only CodegenStage calls into it, through
// C8's pass-mode classification; MIRStage does not use it. C6 is thus
// consulted by C8 rather than running as its own pass.
func Default() *Pipeline {
	return New(InferStage{}, MIRStage{}, CodegenStage{})
}

// Run executes the pipeline, short-circuiting once a stage sets Err.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
		if ctx.Err != nil {
			break
		}
	}
	return ctx
}

// InferStage runs C4+C5 over the whole package. If ctx.Infer is already
// set (e.g. a caller pre-seeded Context.Builtins with the resolved-HIR
// producer's builtin-name bindings, which NewContext itself cannot know
// about), that Context is reused rather than replaced.
type InferStage struct{}

func (InferStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Infer == nil {
		ctx.Infer = infer.NewContext(ctx.Arena, ctx.Builtin, ctx.Target, ctx.Pkg, ctx.Spans, ctx.Report)
	}
	ctx.Infer.Run()
	ctx.Layout = layout.NewEngine(ctx.Target, false)
	return ctx
}

// MIRStage runs C7 over every function item, building one Body each.
// It is skipped once InferStage reported any error: MIR building reads
// resolved types that may not exist if inference aborted early.
type MIRStage struct{}

func (MIRStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Report != nil && ctx.Report.HasErrors() {
		return ctx
	}
	ctx.Bodies = make(map[ids.ID]*mir.Body, len(ctx.Pkg.Items))
	for id, item := range ctx.Pkg.Items {
		if item.Kind != hir.ItemFunc {
			continue
		}
		ctx.Bodies[id] = mir.Build(ctx.Infer, item)
	}
	return ctx
}

// CodegenStage runs C8's Declare pass over every function item (in a
// stable order, so cross-item forward references always resolve the
// same way across runs) and then Define over every body that stage
// produced. It no-ops when ctx.Emitter is nil, so a caller that only
// wants the checked package and its type map (no object output) can
// still run the same pipeline.
type CodegenStage struct{}

func (CodegenStage) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Emitter == nil {
		return ctx
	}
	if ctx.Report != nil && ctx.Report.HasErrors() {
		return ctx
	}

	cg := codegen.New(ctx.Layout, ctx.Emitter)
	ctx.Sigs = make(map[ids.ID]codegen.FuncSig, len(ctx.Bodies))

	order := sortedFuncIDs(ctx.Pkg)
	for _, id := range order {
		item := ctx.Pkg.Items[id]
		ft, err := funcTypeOf(ctx, item)
		if err != nil {
			ctx.Err = err
			return ctx
		}
		sig, err := cg.Declare(ft)
		if err != nil {
			ctx.Report.Report((&diagnostics.BackendError{Symbol: ft.Name, Err: err}).ToDiagnostic())
			ctx.Err = err
			return ctx
		}
		ctx.Sigs[id] = sig
	}
	for _, id := range order {
		item := ctx.Pkg.Items[id]
		if item.FuncBody.IsNil() {
			continue // extern: declared only, no body to define
		}
		if err := cg.Define(ctx.Sigs[id], ctx.Bodies[id]); err != nil {
			ctx.Report.Report((&diagnostics.BackendError{Symbol: ctx.Sigs[id].Name, Err: err}).ToDiagnostic())
			ctx.Err = err
			return ctx
		}
	}
	return ctx
}

func funcTypeOf(ctx *PipelineContext, item *hir.Item) (codegen.FuncType, error) {
	fnType := ctx.Infer.TypeOf(item.ID)
	if fnType == nil || fnType.Kind() != types.KFunc {
		return codegen.FuncType{}, fmt.Errorf("pipeline: item %q has no function type", item.Name)
	}
	params := fnType.FuncParams()
	paramTypes := make([]*types.Type, params.Len())
	for i := 0; i < params.Len(); i++ {
		paramTypes[i] = params.At(i).Type
	}
	return codegen.FuncType{
		ID:         item.ID,
		Name:       mangle.NameOf(ctx.ModulePath, item.Name, item.NoMangle, item.Main),
		ParamTypes: paramTypes,
		RetType:    fnType.FuncResult(),
		HasBody:    !item.FuncBody.IsNil(),
		Exported:   item.NoMangle || item.Main,
	}, nil
}

// sortedFuncIDs returns every ItemFunc and ItemExtern id (both declare a
// backend function symbol; only ItemFunc ever has a body to Define) in
// a stable order (by name, then by id to break ties), so Declare
// registers symbols deterministically across runs.
func sortedFuncIDs(pkg *hir.Package) []ids.ID {
	out := make([]ids.ID, 0, len(pkg.Items))
	for id, item := range pkg.Items {
		if item.Kind == hir.ItemFunc || item.Kind == hir.ItemExtern {
			out = append(out, id)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := pkg.Items[out[j-1]], pkg.Items[out[j]]
			if a.Name > b.Name || (a.Name == b.Name && out[j].String() < out[j-1].String()) {
				out[j-1], out[j] = out[j], out[j-1]
			}
		}
	}
	return out
}
