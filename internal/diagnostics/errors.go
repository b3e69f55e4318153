package diagnostics

import (
	"fmt"

	"github.com/shade-lang/shadec/internal/span"
)

// The error taxonomy of §7, one small struct per kind, in the style of a
// small sum type implemented as distinct Go structs. Each type implements
// error and has a ToDiagnostic method producing the Diagnostic actually
// pushed to a Reporter.

// TypeMismatchError records a failed unification between two types, each
// with its own span for error attribution (§3 Constraint, §7).
type TypeMismatchError struct {
	Left, Right         string
	LeftSpan, RightSpan span.Span
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s vs %s", e.Left, e.Right)
}

func (e *TypeMismatchError) ToDiagnostic() Diagnostic {
	return Diagnostic{
		Severity: Error,
		Code:     CodeTypeMismatch,
		Message:  fmt.Sprintf("type mismatch: expected %s, found %s", e.Left, e.Right),
		Labels: []Label{
			{Severity: Error, Span: e.LeftSpan, Text: "expected " + e.Left},
			{Severity: Error, Span: e.RightSpan, Text: "found " + e.Right},
		},
	}
}

// UnresolvedTypeError is raised when a Var survives defaulting (§3, §4.5).
type UnresolvedTypeError struct {
	Span span.Span
}

func (e *UnresolvedTypeError) Error() string { return "cannot infer type at " + e.Span.String() }

func (e *UnresolvedTypeError) ToDiagnostic() Diagnostic {
	return Diagnostic{
		Severity: Error,
		Code:     CodeUnresolvedType,
		Message:  e.Error(),
		Labels:   []Label{{Severity: Error, Span: e.Span, Text: "type annotation needed"}},
	}
}

// UnknownFieldError is a struct/enum member lookup miss.
type UnknownFieldError struct {
	Name string
	On   string
	Span span.Span
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("no field %q on %s", e.Name, e.On)
}

func (e *UnknownFieldError) ToDiagnostic() Diagnostic {
	return Diagnostic{
		Severity: Error,
		Code:     CodeUnknownField,
		Message:  e.Error(),
		Labels:   []Label{{Severity: Error, Span: e.Span, Text: "unknown field"}},
	}
}

// UnknownConstructorError is an enum-constructor lookup miss.
type UnknownConstructorError struct {
	Name string
	On   string
	Span span.Span
}

func (e *UnknownConstructorError) Error() string {
	return fmt.Sprintf("no constructor %q on %s", e.Name, e.On)
}

func (e *UnknownConstructorError) ToDiagnostic() Diagnostic {
	return Diagnostic{
		Severity: Error,
		Code:     CodeUnknownConstructor,
		Message:  e.Error(),
		Labels:   []Label{{Severity: Error, Span: e.Span, Text: "unknown constructor"}},
	}
}

// ArityMismatchError is a call with the wrong parameter count.
type ArityMismatchError struct {
	Want, Got int
	Span      span.Span
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("expected %d argument(s), found %d", e.Want, e.Got)
}

func (e *ArityMismatchError) ToDiagnostic() Diagnostic {
	return Diagnostic{
		Severity: Error,
		Code:     CodeArityMismatch,
		Message:  e.Error(),
		Labels:   []Label{{Severity: Error, Span: e.Span, Text: "wrong number of arguments"}},
	}
}

// InvalidCastError is a cast between incompatible layout classes.
type InvalidCastError struct {
	From, To string
	Span     span.Span
}

func (e *InvalidCastError) Error() string {
	return fmt.Sprintf("cannot cast %s to %s", e.From, e.To)
}

func (e *InvalidCastError) ToDiagnostic() Diagnostic {
	return Diagnostic{
		Severity: Error,
		Code:     CodeInvalidCast,
		Message:  e.Error(),
		Labels:   []Label{{Severity: Error, Span: e.Span, Text: "invalid cast"}},
	}
}

// LayoutError is attempting layout of a type still carrying inference
// variables — an internal compiler bug per §7, not a user-facing mistake.
type LayoutError struct {
	Type string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("internal error: cannot compute layout of %s (unresolved inference variable)", e.Type)
}

func (e *LayoutError) ToDiagnostic() Diagnostic {
	return Diagnostic{Severity: Bug, Code: CodeLayoutError, Message: e.Error()}
}

// IoError wraps a type-map load/store failure.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }

func (e *IoError) ToDiagnostic() Diagnostic {
	return Diagnostic{Severity: Bug, Code: CodeIoError, Message: e.Error()}
}

// BackendError is the native code-emission backend refusing a module,
// function, or data definition.
type BackendError struct {
	Symbol string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend refused %q: %v", e.Symbol, e.Err)
}
func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) ToDiagnostic() Diagnostic {
	return Diagnostic{Severity: Bug, Code: CodeBackendError, Message: e.Error()}
}
