package types

import (
	"testing"

	"github.com/shade-lang/shadec/internal/ids"
)

func TestInterningIsPointerStable(t *testing.T) {
	a := NewArena(false)

	if a.Int(32) != a.Int(32) {
		t.Errorf("Int(32) interned twice produced different pointers")
	}
	if a.BoolType() != a.BoolType() {
		t.Errorf("BoolType() interned twice produced different pointers")
	}
}

func TestStructuralEqualityByPointer(t *testing.T) {
	a := NewArena(false)

	r1 := a.Ref(false, a.Int(32))
	r2 := a.Ref(false, a.Int(32))
	if r1 != r2 {
		t.Errorf("Ref(false, i32) interned twice produced different pointers")
	}

	tup1 := a.Tuple([]*Type{a.Int(32), a.BoolType()})
	tup2 := a.Tuple([]*Type{a.Int(32), a.BoolType()})
	if tup1 != tup2 {
		t.Errorf("identical tuples produced different pointers")
	}
	if tup1.TupleElems() != tup2.TupleElems() {
		t.Errorf("identical tuple element lists were not hash-consed to the same List")
	}
}

func TestEmptyListIsSentinel(t *testing.T) {
	a := NewArena(false)
	u1 := a.Tuple(nil)
	u2 := a.Tuple(nil)
	if u1 != u2 {
		t.Errorf("Tuple(nil) (unit) not interned to a single pointer")
	}
	if u1.TupleElems().Len() != 0 {
		t.Errorf("unit tuple should have zero elements")
	}
}

func TestStructNominalEquality(t *testing.T) {
	a := NewArena(false)
	id := ids.New()

	s1 := a.Struct(id, []Field{{Name: "x", Type: a.Int(32)}})
	// Same id, deliberately different field list: must still collapse to
	// the first registration (§3: "Two struct types are equal iff id is
	// equal"), matching the reserve-then-finalize flow in §4.4.
	s2 := a.Struct(id, []Field{{Name: "y", Type: a.BoolType()}})
	if s1 != s2 {
		t.Fatalf("Struct interning must key on id alone, not field contents")
	}
	if s1.StructFields().Len() != 1 || s1.StructFields().At(0).Name != "x" {
		t.Errorf("first registration's fields should win: got %v", s1.StructFields().Items)
	}

	// Two distinct structs with identical field lists but different ids
	// must NOT be equal (nominal, not structural).
	otherID := ids.New()
	s3 := a.Struct(otherID, []Field{{Name: "x", Type: a.Int(32)}})
	if s1 == s3 {
		t.Errorf("structs with different ids must not be pointer-equal despite identical fields")
	}
}

func TestBuiltinTypesTable(t *testing.T) {
	a := NewArena(false)
	b := NewBuiltinTypes(a)

	if b.Int != a.Int(0) {
		t.Errorf("BuiltinTypes.Int should be the interned Int(0)")
	}
	if b.RefU8.Kind() != KRef || b.RefU8.Elem() != b.UInt8 {
		t.Errorf("RefU8 should be ref u8, got %s", b.RefU8)
	}
	if b.TypeLayoutTriple.TupleElems().Len() != 3 {
		t.Errorf("TypeLayoutTriple should have 3 elements")
	}
}

func TestContainsVar(t *testing.T) {
	a := NewArena(false)
	v := a.Var(0)
	if !v.ContainsVar() {
		t.Errorf("Var should report ContainsVar")
	}
	ref := a.Ref(false, v)
	if !ref.ContainsVar() {
		t.Errorf("Ref wrapping a Var should report ContainsVar")
	}
	concrete := a.Ref(false, a.Int(32))
	if concrete.ContainsVar() {
		t.Errorf("fully concrete Ref should not report ContainsVar")
	}
}
