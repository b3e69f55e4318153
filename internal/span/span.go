// Package span carries source positions separately from the types and IR
// the rest of the compiler manipulates. Per the data model (§3): "Every type
// carries no source position; positions are looked up via identifier."
package span

import "fmt"

// Span is a single-point source location. Col is 1-based, the
// conventional way editors and compilers report columns.
type Span struct {
	File string
	Line int
	Col  int
}

// String renders "file:line:col".
func (s Span) String() string {
	if s.File == "" {
		return fmt.Sprintf("%d:%d", s.Line, s.Col)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
}

// None is the zero Span, used when no useful position is available (e.g.
// synthesized nodes).
var None Span

// Lookup resolves an identifier to the span of the syntax it names. The
// resolved-HIR producer supplies the concrete implementation; the core only
// ever consumes it when building a diagnostic.
type Lookup interface {
	SpanOf(id interface{ String() string }) Span
}

// Map is the simplest Lookup: a flat table built once by the HIR producer
// and handed to the core read-only.
type Map map[string]Span

func (m Map) SpanOf(id interface{ String() string }) Span {
	return m[id.String()]
}
