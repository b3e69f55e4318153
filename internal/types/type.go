// Package types implements the arena, intern tables, and algebraic type
// model of C1/C2: a canonical, hash-consed representation of types and
// their auxiliary lists (fields, variants, params).
package types

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/shade-lang/shadec/internal/ids"
)

// Type is a tagged sum over every type variant in §3. It carries no source
// position — positions are looked up via identifier (internal/span).
//
// Two Types produced by separate Arena calls with structurally equal
// variant data are the same pointer (§3's central invariant); callers
// compare types with plain `==`, never by walking fields, except when
// deliberately inspecting a Struct/Enum's payload.
type Type struct {
	kind Kind

	n   int  // bit width (Int/UInt/Float) or var index (Var/VInt/VUInt/VFloat)
	mut bool // Ref mutability

	elem *Type // Ref/Array/Slice element type
	ret  *Type // Func result type

	arrLen uint64 // Array length

	elems  *List[*Type] // Tuple element types
	params *List[Param] // Func parameters

	id ids.ID // Struct/Enum/TypeOf identifier

	fields   *List[Field]   // Struct fields
	variants *List[Variant] // Enum variants
}

// Field is a named, typed struct member.
type Field struct {
	Name string
	Type *Type
}

// Variant is one arm of an Enum. Fields is nil for a fieldless variant.
type Variant struct {
	Name   string
	Fields *List[Field]
}

// Param is a named, typed function parameter.
type Param struct {
	Name string
	Type *Type
}

// Kind returns the variant tag.
func (t *Type) Kind() Kind { return t.kind }

// VarIndex returns the freshness index of a Var/VInt/VUInt/VFloat. Panics on
// any other kind — callers must switch on Kind first.
func (t *Type) VarIndex() int {
	switch t.kind {
	case KVar, KVInt, KVUInt, KVFloat:
		return t.n
	default:
		panic(fmt.Sprintf("types: VarIndex on non-variable kind %s", t.kind))
	}
}

// Width returns the bit width of an Int/UInt/Float (0 means pointer-width
// signed / unsigned / default-float per §3).
func (t *Type) Width() int {
	switch t.kind {
	case KInt, KUInt, KFloat:
		return t.n
	default:
		panic(fmt.Sprintf("types: Width on non-scalar kind %s", t.kind))
	}
}

// Mut reports a Ref's mutability.
func (t *Type) Mut() bool {
	if t.kind != KRef {
		panic("types: Mut on non-Ref")
	}
	return t.mut
}

// Elem returns the element type of a Ref/Array/Slice.
func (t *Type) Elem() *Type {
	switch t.kind {
	case KRef, KArray, KSlice:
		return t.elem
	default:
		panic(fmt.Sprintf("types: Elem on non-container kind %s", t.kind))
	}
}

// ArrayLen returns an Array's element count.
func (t *Type) ArrayLen() uint64 {
	if t.kind != KArray {
		panic("types: ArrayLen on non-Array")
	}
	return t.arrLen
}

// TupleElems returns a Tuple's element types.
func (t *Type) TupleElems() *List[*Type] {
	if t.kind != KTuple {
		panic("types: TupleElems on non-Tuple")
	}
	return t.elems
}

// FuncParams returns a Func's parameter list.
func (t *Type) FuncParams() *List[Param] {
	if t.kind != KFunc {
		panic("types: FuncParams on non-Func")
	}
	return t.params
}

// FuncResult returns a Func's result type.
func (t *Type) FuncResult() *Type {
	if t.kind != KFunc {
		panic("types: FuncResult on non-Func")
	}
	return t.ret
}

// NominalID returns the defining item id of a Struct, Enum, or TypeOf.
func (t *Type) NominalID() ids.ID {
	switch t.kind {
	case KStruct, KEnum, KTypeOf:
		return t.id
	default:
		panic(fmt.Sprintf("types: NominalID on non-nominal kind %s", t.kind))
	}
}

// StructFields returns a Struct's field list.
func (t *Type) StructFields() *List[Field] {
	if t.kind != KStruct {
		panic("types: StructFields on non-Struct")
	}
	return t.fields
}

// EnumVariants returns an Enum's variant list.
func (t *Type) EnumVariants() *List[Variant] {
	if t.kind != KEnum {
		panic("types: EnumVariants on non-Enum")
	}
	return t.variants
}

// IsVar reports whether t is any of Var/VInt/VUInt/VFloat — the set that
// must not reach layout or codegen (§3's invariant).
func (t *Type) IsVar() bool {
	switch t.kind {
	case KVar, KVInt, KVUInt, KVFloat:
		return true
	default:
		return false
	}
}

// ContainsVar walks t looking for any unresolved inference variable,
// bounding recursion at nominal (Struct/Enum) boundaries since those are
// identified by id, not traversed structurally, once finalized.
func (t *Type) ContainsVar() bool {
	switch t.kind {
	case KVar, KVInt, KVUInt, KVFloat:
		return true
	case KRef, KArray, KSlice:
		return t.elem.ContainsVar()
	case KTuple:
		for _, e := range t.elems.Items {
			if e.ContainsVar() {
				return true
			}
		}
		return false
	case KFunc:
		for _, p := range t.params.Items {
			if p.Type.ContainsVar() {
				return true
			}
		}
		return t.ret.ContainsVar()
	default:
		return false
	}
}

// String renders a human-readable form used in diagnostics and tests.
func (t *Type) String() string {
	switch t.kind {
	case KError:
		return "<error>"
	case KNever:
		return "!"
	case KBool:
		return "bool"
	case KStr:
		return "str"
	case KTypeID:
		return "typeid"
	case KInt:
		return "i" + widthSuffix(t.n)
	case KUInt:
		return "u" + widthSuffix(t.n)
	case KFloat:
		return "f" + widthSuffix(t.n)
	case KVar:
		return "?t" + strconv.Itoa(t.n)
	case KVInt:
		return "?int" + strconv.Itoa(t.n)
	case KVUInt:
		return "?uint" + strconv.Itoa(t.n)
	case KVFloat:
		return "?float" + strconv.Itoa(t.n)
	case KRef:
		if t.mut {
			return "ref mut " + t.elem.String()
		}
		return "ref " + t.elem.String()
	case KArray:
		return fmt.Sprintf("[%s; %d]", t.elem.String(), t.arrLen)
	case KSlice:
		return "[" + t.elem.String() + "]"
	case KTuple:
		parts := make([]string, t.elems.Len())
		for i, e := range t.elems.Items {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KFunc:
		parts := make([]string, t.params.Len())
		for i, p := range t.params.Items {
			parts[i] = p.Name + ": " + p.Type.String()
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + t.ret.String()
	case KStruct:
		return "struct#" + t.id.String()[:8]
	case KEnum:
		return "enum#" + t.id.String()[:8]
	case KTypeOf:
		return "typeof(" + t.id.String()[:8] + ")"
	case KObject:
		return "object"
	default:
		return "<?>"
	}
}

func widthSuffix(n int) string {
	if n == 0 {
		return "size"
	}
	return strconv.Itoa(n)
}

func hashOfPtr(p *Type) uint64 { return hashPointer(unsafe.Pointer(p)) }

// HashOfType exposes the same pointer-hash scheme the arena's own shard
// selection uses, so a downstream cache keyed by *Type (the layout
// engine, C6) can shard consistently with the interner it reads from.
func HashOfType(t *Type) uint64 { return hashOfPtr(t) }
