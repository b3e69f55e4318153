package types

// BuiltinTypes is built once per compilation (C2, §4.2); it holds
// pre-interned pointers for every primitive and a few convenience
// composites so that C4 inference and C6 layout never re-derive them.
type BuiltinTypes struct {
	Error  *Type
	Never  *Type
	Unit   *Type
	Bool   *Type
	Str    *Type
	TypeID *Type
	Object *Type

	Int8, Int16, Int32, Int64, Int128, Int *Type
	UInt8, UInt16, UInt32, UInt64, UInt128, UInt *Type
	Float32, Float64 *Type

	// RefUnit and RefU8 are the convenience composites §4.2 names.
	RefUnit *Type
	RefU8   *Type

	// TypeLayoutTriple is the (usize, usize, usize) triple used to report
	// a type's (size, align, stride) to generic code (§4.2).
	TypeLayoutTriple *Type
}

// NewBuiltinTypes interns every entry of the builtin table against arena.
func NewBuiltinTypes(arena *Arena) *BuiltinTypes {
	b := &BuiltinTypes{
		Error:  arena.ErrorType(),
		Never:  arena.NeverType(),
		Bool:   arena.BoolType(),
		Str:    arena.StrType(),
		TypeID: arena.TypeIDType(),
		Object: arena.ObjectType(),

		Int8: arena.Int(8), Int16: arena.Int(16), Int32: arena.Int(32),
		Int64: arena.Int(64), Int128: arena.Int(128), Int: arena.Int(0),

		UInt8: arena.UInt(8), UInt16: arena.UInt(16), UInt32: arena.UInt(32),
		UInt64: arena.UInt(64), UInt128: arena.UInt(128), UInt: arena.UInt(0),

		Float32: arena.Float(32), Float64: arena.Float(64),
	}
	b.Unit = arena.Tuple(nil)
	b.RefUnit = arena.Ref(false, b.Unit)
	b.RefU8 = arena.Ref(false, b.UInt8)
	b.TypeLayoutTriple = arena.Tuple([]*Type{b.UInt, b.UInt, b.UInt})
	return b
}

// SignedPointerInt returns Int(0): pointer-width signed int, the numeric
// defaulting target for VInt (§3).
func (b *BuiltinTypes) SignedPointerInt() *Type { return b.Int }

// UnsignedPointerInt returns UInt(0): pointer-width unsigned int, the
// defaulting target for VUInt.
func (b *BuiltinTypes) UnsignedPointerInt() *Type { return b.UInt }

// DefaultFloat returns Float(64), the unconditional VFloat defaulting
// target (§9's open question: "a reimplementer should default VFloat to
// Float(64) unconditionally").
func (b *BuiltinTypes) DefaultFloat() *Type { return b.Float64 }
