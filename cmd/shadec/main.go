// Command shadec is a thin illustrative driver for the core (§1): it
// wires target/diagnostics/infer/layout/mir/codegen/pipeline together
// over a small built-in demo package, since the lexer, parser, and
// module resolver that would normally produce a resolved HIR are
// explicitly out of the core's scope. It exists to prove the pipeline
// runs end to end against a real (if toy) Emitter, not to be a usable
// compiler front end.
package main

import (
	"fmt"
	"os"

	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/emit"
	"github.com/shade-lang/shadec/internal/pipeline"
	"github.com/shade-lang/shadec/internal/span"
	"github.com/shade-lang/shadec/internal/target"
	"github.com/shade-lang/shadec/internal/typemap"
	"github.com/shade-lang/shadec/internal/types"
)

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}
	cmd, cfgPath := os.Args[1], os.Args[2]

	cfg, err := loadProjectConfig(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch cmd {
	case "check":
		os.Exit(runCheck(cfg))
	case "build":
		os.Exit(runBuild(cfg))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s check|build <shadec.yaml>\n", os.Args[0])
}

func resolveTarget(cfg *ProjectConfig) (target.Target, error) {
	if cfg.TargetFile != "" {
		return target.Load(cfg.TargetFile)
	}
	name := cfg.Target
	if name == "" {
		name = "x86_64"
	}
	t, ok := target.Lookup(name)
	if !ok {
		return target.Target{}, fmt.Errorf("shadec: unknown target %q", name)
	}
	return t, nil
}

// buildContext sets up everything InferStage needs: the arena, the demo
// package, and the builtin-name bindings a real resolver would supply.
func buildContext(cfg *ProjectConfig) (*pipeline.PipelineContext, error) {
	tgt, err := resolveTarget(cfg)
	if err != nil {
		return nil, err
	}

	arena := types.NewArena(false)
	builtin := types.NewBuiltinTypes(arena)
	names := newBuiltinNames()
	pkg := demoPackage(builtin, names)
	report := diagnostics.NewCollectingReporter()

	return &pipeline.PipelineContext{
		Pkg:        pkg,
		Arena:      arena,
		Builtin:    builtin,
		Target:     tgt,
		Spans:      span.Map{},
		Report:     report,
		ModulePath: cfg.Module,
		Infer:      seedInferContext(arena, builtin, tgt, pkg, report, names),
	}, nil
}

func runCheck(cfg *ProjectConfig) int {
	ctx, err := buildContext(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	result := pipeline.New(pipeline.InferStage{}).Run(ctx)
	return reportAndExit(result)
}

func runBuild(cfg *ProjectConfig) int {
	ctx, err := buildContext(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	out, err := os.Create(cfg.Out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer out.Close()
	ctx.Emitter = emit.NewTextWriter(out)

	result := pipeline.Default().Run(ctx)
	if code := reportAndExit(result); code != 0 {
		return code
	}

	if cfg.TypeMapOut != "" {
		if err := typemap.Store(cfg.TypeMapOut, result.Arena, result.Infer.TypeMap()); err != nil {
			renderDiagnostics(os.Stderr, []diagnostics.Diagnostic{
				(&diagnostics.IoError{Op: "typemap.Store", Err: err}).ToDiagnostic(),
			})
			return 1
		}
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", cfg.Out)
	return 0
}

func reportAndExit(ctx *pipeline.PipelineContext) int {
	if ctx.Err != nil {
		fmt.Fprintln(os.Stderr, ctx.Err)
		return 1
	}
	reporter, ok := ctx.Report.(*diagnostics.CollectingReporter)
	if !ok {
		return 0
	}
	diags := reporter.Diagnostics()
	renderDiagnostics(os.Stderr, diags)
	if reporter.HasErrors() {
		return 1
	}
	return 0
}
