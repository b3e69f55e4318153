// Package emit provides a text-dump implementation of codegen.Emitter.
// §6 puts "the concrete native code-emitter library" out of scope — C8
// only ever drives an Emitter, it never picks one — so this package is
// not an object-file writer, it's the stand-in cmd/shadec links against
// to make the pipeline runnable end to end without a real backend.
//
// Every Declare/Define call is rendered as one pseudo-assembly line per
// MIR statement/terminator, in the order C8 emits them, so a diff
// against a previous run's output doubles as a (coarse) codegen golden
// test for anyone building a real backend against this Emitter shape.
package emit

import (
	"fmt"
	"io"
	"sort"

	"github.com/shade-lang/shadec/internal/codegen"
	"github.com/shade-lang/shadec/internal/mir"
	"github.com/shade-lang/shadec/internal/types"
)

// TextWriter renders every declared/defined function as readable text
// to an underlying io.Writer, grounded on the pass-mode vocabulary C8
// already exposes (codegen.PassMode, codegen.Linkage) rather than
// inventing a new one.
type TextWriter struct {
	out   io.Writer
	fns   map[string]*textFunc
	order []string
}

// NewTextWriter wraps w as a codegen.Emitter.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{out: w, fns: map[string]*textFunc{}}
}

type textFunc struct {
	sig    codegen.FuncSig
	locals []string
	lines  []string
}

func (w *TextWriter) DeclareFunc(sig codegen.FuncSig) error {
	if _, dup := w.fns[sig.Name]; dup {
		return fmt.Errorf("emit: duplicate declaration of %q", sig.Name)
	}
	w.fns[sig.Name] = &textFunc{sig: sig}
	w.order = append(w.order, sig.Name)
	_, err := fmt.Fprintf(w.out, ".decl %s %s ret=%s\n", sig.Name, linkageString(sig.Linkage), sig.Ret.Mode)
	return err
}

func (w *TextWriter) BeginBody(sig codegen.FuncSig) codegen.FuncBuilder {
	fn := w.fns[sig.Name]
	if fn == nil {
		// A body for a symbol that was never Declared is a C8 ordering
		// bug, not a user-facing condition; fail loudly rather than
		// silently dropping the body.
		panic("emit: BeginBody for undeclared symbol " + sig.Name)
	}
	return &textFuncBuilder{fn: fn}
}

func (w *TextWriter) EndBody(fb codegen.FuncBuilder) {
	tb := fb.(*textFuncBuilder)
	fmt.Fprintf(w.out, "%s:\n", tb.fn.sig.Name)
	for _, l := range tb.fn.locals {
		fmt.Fprintf(w.out, "  %s\n", l)
	}
	for _, l := range tb.fn.lines {
		fmt.Fprintf(w.out, "  %s\n", l)
	}
}

type textFuncBuilder struct {
	fn *textFunc
}

func (b *textFuncBuilder) DeclareLocal(id mir.LocalID, t *types.Type, ssa bool) {
	slot := "stack"
	if ssa {
		slot = "ssa"
	}
	b.fn.locals = append(b.fn.locals, fmt.Sprintf("local %%%d: %s [%s]", id, t.String(), slot))
}

func (b *textFuncBuilder) BeginBlock(id mir.BlockID) {
	b.fn.lines = append(b.fn.lines, fmt.Sprintf("bb%d:", id))
}

func (b *textFuncBuilder) EmitAssign(place mir.Place, rv mir.RValue) error {
	rendered := rvalueString(rv)
	if rendered == "rvalue?" {
		return fmt.Errorf("emit: unsupported rvalue kind %d in %s", rv.Kind, b.fn.sig.Name)
	}
	b.fn.lines = append(b.fn.lines, fmt.Sprintf("  %s = %s", placeString(place), rendered))
	return nil
}

func (b *textFuncBuilder) EmitTerminator(term mir.Terminator) error {
	rendered := terminatorString(term)
	if rendered == "unset" {
		return fmt.Errorf("emit: unsupported terminator kind %d in %s", term.Kind, b.fn.sig.Name)
	}
	b.fn.lines = append(b.fn.lines, "  "+rendered)
	return nil
}

// Symbols returns every declared function name, sorted by name,
// letting a caller (e.g. cmd/shadec's type-map sidecar) know exactly
// what this run emitted without re-parsing the dump text.
func (w *TextWriter) Symbols() []string {
	out := append([]string(nil), w.order...)
	sort.Strings(out)
	return out
}

func linkageString(l codegen.Linkage) string {
	switch l {
	case codegen.LinkImport:
		return "import"
	case codegen.LinkExport:
		return "export"
	default:
		return "local"
	}
}

func placeString(p mir.Place) string {
	base := fmt.Sprintf("%%%d", p.Local)
	if p.Base == mir.BaseGlobal {
		base = "@" + p.Global.String()
	}
	for _, e := range p.Elems {
		switch e.Kind {
		case mir.Deref:
			base = "*" + base
		case mir.Field:
			base = fmt.Sprintf("%s.%d", base, e.FieldIndex)
		case mir.Index:
			base = fmt.Sprintf("%s[%s]", base, placeString(e.IndexOf))
		}
	}
	return base
}

func operandString(o mir.Operand) string {
	if o.Kind == mir.OperandConst {
		return constString(o.Const)
	}
	return placeString(o.Place)
}

func constString(c mir.Const) string {
	switch c.Kind {
	case mir.ScalarConst:
		return fmt.Sprintf("%d", c.Value)
	case mir.FuncAddr:
		return "&" + c.Func.String()
	case mir.Bytes:
		return fmt.Sprintf("bytes[%d]", len(c.Bytes))
	case mir.Undefined:
		return "undef"
	default:
		return "const?"
	}
}

func rvalueString(rv mir.RValue) string {
	switch rv.Kind {
	case mir.UseRV:
		return operandString(rv.Operand)
	case mir.Ref:
		return "ref " + placeString(rv.Place)
	case mir.Cast:
		return fmt.Sprintf("cast(%s, %s)", operandString(rv.Operand), rv.Type.String())
	case mir.BinOp:
		return fmt.Sprintf("%s %s %s", operandString(rv.Left), rv.Op, operandString(rv.Right))
	case mir.UnOp:
		return fmt.Sprintf("%s %s", rv.Op, operandString(rv.Operand))
	case mir.Init:
		parts := make([]string, len(rv.Elems))
		for i, e := range rv.Elems {
			parts[i] = operandString(e)
		}
		return fmt.Sprintf("init(%s){%v}", rv.Type.String(), parts)
	default:
		return "rvalue?"
	}
}

func terminatorString(t mir.Terminator) string {
	switch t.Kind {
	case mir.Return:
		return "ret"
	case mir.Jump:
		return fmt.Sprintf("jmp bb%d", t.Target)
	case mir.Abort:
		return "abort"
	case mir.Switch:
		return fmt.Sprintf("switch %s -> %v", operandString(t.Op), t.Targets)
	case mir.Call:
		return fmt.Sprintf("%s = call %s(...) -> bb%d", placeString(t.CallDst), operandString(t.CallFunc), t.CallNext)
	default:
		return "unset"
	}
}
