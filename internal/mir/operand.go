package mir

import (
	"github.com/shade-lang/shadec/internal/ids"
	"github.com/shade-lang/shadec/internal/types"
)

// PlaceBase discriminates what a Place's root addresses.
type PlaceBase int

const (
	BaseLocal PlaceBase = iota
	BaseGlobal
)

// ElemKind discriminates one step of a Place's projection chain.
type ElemKind int

const (
	Deref ElemKind = iota
	Field
	Index
)

// Elem is one projection step applied to a Place's base.
type Elem struct {
	Kind ElemKind

	FieldIndex int   // Field
	IndexOf    Place // Index: the place holding the index value
}

// Place is an assignable location: a base local or global, optionally
// projected through dereferences, field accesses, and indexing (§3).
type Place struct {
	Base     PlaceBase
	Local    LocalID // BaseLocal
	Global   ids.ID  // BaseGlobal
	Elems    []Elem
}

// LocalPlace builds the trivial place naming local id with no projection.
func LocalPlace(id LocalID) Place {
	return Place{Base: BaseLocal, Local: id}
}

// Project appends one projection step, returning the extended place.
func (p Place) Project(e Elem) Place {
	out := p
	out.Elems = append(append([]Elem(nil), p.Elems...), e)
	return out
}

// OperandKind discriminates an Operand's shape.
type OperandKind int

const (
	OperandPlace OperandKind = iota
	OperandConst
)

// Operand is an rvalue source: a place to read or a constant (§3).
type Operand struct {
	Kind  OperandKind
	Place Place
	Const Const
}

// UsePlace builds a Place-operand.
func UsePlace(p Place) Operand { return Operand{Kind: OperandPlace, Place: p} }

// ConstOperand builds a Const-operand.
func ConstOperand(c Const) Operand { return Operand{Kind: OperandConst, Const: c} }

// ConstKind discriminates a Const's shape.
type ConstKind int

const (
	Undefined ConstKind = iota
	TupleConst
	ArrayConst
	ScalarConst
	FuncAddr
	Bytes
	TypeConst
)

// Const is a compile-time-known value (§3).
type Const struct {
	Kind ConstKind

	Type *types.Type // Scalar, Type

	Elems []Const // Tuple, Array

	Value uint64 // Scalar: the bit pattern, widened to u128 conceptually

	Func ids.ID // FuncAddr: the referenced item

	Bytes []byte // Bytes
}

// UndefinedConst builds the Undefined constant of type t.
func UndefinedConst(t *types.Type) Const { return Const{Kind: Undefined, Type: t} }

// ScalarOf builds a Scalar constant holding value v of type t.
func ScalarOf(v uint64, t *types.Type) Const { return Const{Kind: ScalarConst, Value: v, Type: t} }

// RValueKind discriminates an RValue's shape.
type RValueKind int

const (
	UseRV RValueKind = iota
	Ref
	Cast
	BinOp
	UnOp
	Init
)

// RValue is the right-hand side of an Assign statement (§3).
type RValue struct {
	Kind RValueKind

	Operand Operand // Use, Cast operand, UnOp operand
	Place   Place   // Ref

	Type *types.Type // Cast target, Init target

	Op    string  // BinOp, UnOp
	Left  Operand // BinOp
	Right Operand // BinOp

	Elems []Operand // Init
}
