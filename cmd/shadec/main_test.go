package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/emit"
	"github.com/shade-lang/shadec/internal/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shadec.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjectConfigDefaults(t *testing.T) {
	path := writeConfig(t, "module: geo\n")
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Module != "geo" {
		t.Fatalf("Module = %q", cfg.Module)
	}
	if cfg.Out != "test.s" {
		t.Fatalf("Out default = %q, want test.s", cfg.Out)
	}
}

func TestLoadProjectConfigMissingModuleDefaults(t *testing.T) {
	path := writeConfig(t, "out: a.s\n")
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Module != "main" {
		t.Fatalf("Module default = %q, want main", cfg.Module)
	}
}

func TestResolveTargetBuiltinAndUnknown(t *testing.T) {
	tgt, err := resolveTarget(&ProjectConfig{Target: "aarch64"})
	if err != nil {
		t.Fatal(err)
	}
	if tgt.PointerBits != 64 {
		t.Fatalf("aarch64 PointerBits = %d", tgt.PointerBits)
	}

	if _, err := resolveTarget(&ProjectConfig{Target: "bogus"}); err == nil {
		t.Fatal("expected error for unknown target")
	}
}

func TestBuildContextRunsFullPipelineAndExportsIdByRawName(t *testing.T) {
	cfg := &ProjectConfig{Module: "geo"}
	ctx, err := buildContext(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	ctx.Emitter = emit.NewTextWriter(&buf)

	result := pipeline.Default().Run(ctx)
	if result.Err != nil {
		t.Fatalf("pipeline error: %v", result.Err)
	}
	reporter := result.Report.(*diagnostics.CollectingReporter)
	if reporter.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", reporter.Diagnostics())
	}

	out := buf.String()
	if !strings.Contains(out, ".decl id export") {
		t.Fatalf("id should export its raw name (NoMangle):\n%s", out)
	}
	if strings.Contains(out, ".decl add export") {
		t.Fatalf("add should not be exported raw, it should be mangled:\n%s", out)
	}
	if !strings.Contains(out, "_S3add") && !strings.Contains(out, "geo3add") {
		t.Fatalf("add's declared symbol should be mangled through <module>.<item>:\n%s", out)
	}
}

func TestRenderDiagnosticsPlainNoColorForNonTTY(t *testing.T) {
	var buf strings.Builder
	renderDiagnostics(&buf, []diagnostics.Diagnostic{{
		Severity: diagnostics.Error,
		Code:     diagnostics.CodeTypeMismatch,
		Message:  "type mismatch: i32 vs u32",
	}})
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes writing to a non-TTY buffer:\n%q", out)
	}
	if !strings.Contains(out, "type-mismatch") {
		t.Fatalf("missing diagnostic code:\n%s", out)
	}
}
