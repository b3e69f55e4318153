// Package diagnostics implements the abstract reporter the core pushes
// diagnostics to (§6). The core never prints; cmd/shadec is the only
// consumer that renders these to a terminal.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/shade-lang/shadec/internal/span"
)

// Severity mirrors §6's three levels.
type Severity int

const (
	Warning Severity = iota
	Error
	Bug
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Bug:
		return "internal compiler error"
	default:
		return "unknown"
	}
}

// Code is the error taxonomy of §7. Zero value (CodeNone) means "no code".
type Code string

const (
	CodeNone              Code = ""
	CodeTypeMismatch      Code = "type-mismatch"
	CodeUnresolvedType    Code = "unresolved-type"
	CodeUnknownField      Code = "unknown-field"
	CodeUnknownConstructor Code = "unknown-constructor"
	CodeArityMismatch     Code = "arity-mismatch"
	CodeInvalidCast       Code = "invalid-cast"
	CodeLayoutError       Code = "layout-error"
	CodeIoError           Code = "io-error"
	CodeBackendError      Code = "backend-error"
)

// Label attaches a message to a span at a given severity, letting a single
// diagnostic carry both a primary and secondary position (e.g. TypeMismatch's
// two spans in seed scenario 6, §8).
type Label struct {
	Severity Severity
	Span     span.Span
	Text     string
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Labels   []Label
}

// Primary returns the diagnostic's first label's span, used for sorting and
// deduplication. Diagnostics with no labels sort first.
func (d Diagnostic) Primary() span.Span {
	if len(d.Labels) == 0 {
		return span.None
	}
	return d.Labels[0].Span
}

func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s", d.Severity, d.Message)
	for _, l := range d.Labels {
		s += fmt.Sprintf("\n  --> %s: %s", l.Span, l.Text)
	}
	return s
}

// Reporter is the abstract sink the core pushes diagnostics to (§6).
type Reporter interface {
	Report(Diagnostic)
	HasErrors() bool
}

// CollectingReporter accumulates diagnostics, deduplicating by (span, code)
// and sorting by position before handing them back out, so a caller gets a
// stable, de-duplicated report regardless of the order stages ran in.
type CollectingReporter struct {
	seen  map[string]Diagnostic
	order []string
}

// NewCollectingReporter returns an empty reporter.
func NewCollectingReporter() *CollectingReporter {
	return &CollectingReporter{seen: make(map[string]Diagnostic)}
}

func (r *CollectingReporter) Report(d Diagnostic) {
	key := fmt.Sprintf("%s:%s", d.Primary(), d.Code)
	if _, ok := r.seen[key]; !ok {
		r.order = append(r.order, key)
	}
	r.seen[key] = d
}

func (r *CollectingReporter) HasErrors() bool {
	for _, d := range r.seen {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// Diagnostics returns all collected diagnostics sorted by primary span, then
// by code, for deterministic output.
func (r *CollectingReporter) Diagnostics() []Diagnostic {
	result := make([]Diagnostic, 0, len(r.seen))
	for _, k := range r.order {
		result = append(result, r.seen[k])
	}
	sort.SliceStable(result, func(i, j int) bool {
		pi, pj := result[i].Primary(), result[j].Primary()
		if pi.File != pj.File {
			return pi.File < pj.File
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		if pi.Col != pj.Col {
			return pi.Col < pj.Col
		}
		return result[i].Code < result[j].Code
	})
	return result
}

// TestMode is a process-global toggle for test runs. No code in this
// module reads it: setting it does not change any diagnostic text, and
// generated names (e.g. "t14") are not normalized.
var TestMode = false
