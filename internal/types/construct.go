package types

import "github.com/shade-lang/shadec/internal/ids"

// ErrorType returns the interned Error type, synthesized on failure to
// inhibit cascading diagnostics (§3, §4.4).
func (a *Arena) ErrorType() *Type {
	return a.intern(typeKey{kind: KError}, func() *Type { return &Type{kind: KError} })
}

// NeverType returns the interned Never (uninhabited) type.
func (a *Arena) NeverType() *Type {
	return a.intern(typeKey{kind: KNever}, func() *Type { return &Type{kind: KNever} })
}

// BoolType returns the interned Bool type.
func (a *Arena) BoolType() *Type {
	return a.intern(typeKey{kind: KBool}, func() *Type { return &Type{kind: KBool} })
}

// StrType returns the interned Str type.
func (a *Arena) StrType() *Type {
	return a.intern(typeKey{kind: KStr}, func() *Type { return &Type{kind: KStr} })
}

// TypeIDType returns the interned TypeId type.
func (a *Arena) TypeIDType() *Type {
	return a.intern(typeKey{kind: KTypeID}, func() *Type { return &Type{kind: KTypeID} })
}

// ObjectType returns the interned Object (fat pointer) type.
func (a *Arena) ObjectType() *Type {
	return a.intern(typeKey{kind: KObject}, func() *Type { return &Type{kind: KObject} })
}

// Int interns Int(n). n must be one of {0,8,16,32,64,128}.
func (a *Arena) Int(n int) *Type {
	return a.intern(typeKey{kind: KInt, n: n}, func() *Type { return &Type{kind: KInt, n: n} })
}

// UInt interns UInt(n).
func (a *Arena) UInt(n int) *Type {
	return a.intern(typeKey{kind: KUInt, n: n}, func() *Type { return &Type{kind: KUInt, n: n} })
}

// Float interns Float(n).
func (a *Arena) Float(n int) *Type {
	return a.intern(typeKey{kind: KFloat, n: n}, func() *Type { return &Type{kind: KFloat, n: n} })
}

// Var interns an unconstrained inference variable with freshness index k.
func (a *Arena) Var(k int) *Type {
	return a.intern(typeKey{kind: KVar, n: k}, func() *Type { return &Type{kind: KVar, n: k} })
}

// VInt interns a numeric-kind (signed-integer-defaulting) inference variable.
func (a *Arena) VInt(k int) *Type {
	return a.intern(typeKey{kind: KVInt, n: k}, func() *Type { return &Type{kind: KVInt, n: k} })
}

// VUInt interns an unsigned-integer-defaulting inference variable.
func (a *Arena) VUInt(k int) *Type {
	return a.intern(typeKey{kind: KVUInt, n: k}, func() *Type { return &Type{kind: KVUInt, n: k} })
}

// VFloat interns a float-defaulting inference variable.
func (a *Arena) VFloat(k int) *Type {
	return a.intern(typeKey{kind: KVFloat, n: k}, func() *Type { return &Type{kind: KVFloat, n: k} })
}

// Ref interns Ref(mut, elem).
func (a *Arena) Ref(mut bool, elem *Type) *Type {
	k := typeKey{kind: KRef, mut: mut, elem: elem}
	return a.intern(k, func() *Type { return &Type{kind: KRef, mut: mut, elem: elem} })
}

// Array interns Array(elem, n).
func (a *Arena) Array(elem *Type, n uint64) *Type {
	k := typeKey{kind: KArray, elem: elem, arrLen: n}
	return a.intern(k, func() *Type { return &Type{kind: KArray, elem: elem, arrLen: n} })
}

// Slice interns Slice(elem).
func (a *Arena) Slice(elem *Type) *Type {
	k := typeKey{kind: KSlice, elem: elem}
	return a.intern(k, func() *Type { return &Type{kind: KSlice, elem: elem} })
}

// Tuple interns Tuple(elems). The element list itself is separately
// hash-consed (§4.1).
func (a *Arena) Tuple(elemTypes []*Type) *Type {
	list := a.InternTypeList(elemTypes)
	k := typeKey{kind: KTuple, elems: list}
	return a.intern(k, func() *Type { return &Type{kind: KTuple, elems: list} })
}

// Func interns Func(params, ret).
func (a *Arena) Func(params []Param, ret *Type) *Type {
	list := a.InternParamList(params)
	k := typeKey{kind: KFunc, params: list, ret: ret}
	return a.intern(k, func() *Type { return &Type{kind: KFunc, params: list, ret: ret} })
}

// Struct interns Struct(id, fields). Nominal equality: the intern key is
// id alone (see typeKey's doc comment); fields is still stored on the
// resulting Type so layout and inference can inspect it.
func (a *Arena) Struct(id ids.ID, fields []Field) *Type {
	list := a.InternFieldList(fields)
	k := typeKey{kind: KStruct, id: id}
	return a.intern(k, func() *Type { return &Type{kind: KStruct, id: id, fields: list} })
}

// Enum interns Enum(id, variants). Nominal equality, as with Struct.
func (a *Arena) Enum(id ids.ID, variants []Variant) *Type {
	list := a.InternVariantList(variants)
	k := typeKey{kind: KEnum, id: id}
	return a.intern(k, func() *Type { return &Type{kind: KEnum, id: id, variants: list} })
}

// TypeOf interns the late-bound placeholder referencing the type of an
// item still being inferred (§4.4, §9: breaks recursion on self-reference).
func (a *Arena) TypeOf(id ids.ID) *Type {
	k := typeKey{kind: KTypeOf, id: id}
	return a.intern(k, func() *Type { return &Type{kind: KTypeOf, id: id} })
}
