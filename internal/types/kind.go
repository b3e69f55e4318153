package types

// Kind tags the variant of a Type (§3). It is exhaustively switched on
// everywhere a Type is inspected, rather than recovered through a runtime
// downcast — the re-expression of the source's type-query idiom that
// spec.md §9 calls for.
type Kind int

const (
	KError Kind = iota
	KNever
	KBool
	KStr
	KTypeID
	KInt
	KUInt
	KFloat
	KVar
	KVInt
	KVUInt
	KVFloat
	KRef
	KArray
	KSlice
	KTuple
	KFunc
	KStruct
	KEnum
	KTypeOf
	KObject
)

func (k Kind) String() string {
	switch k {
	case KError:
		return "error"
	case KNever:
		return "never"
	case KBool:
		return "bool"
	case KStr:
		return "str"
	case KTypeID:
		return "typeid"
	case KInt:
		return "int"
	case KUInt:
		return "uint"
	case KFloat:
		return "float"
	case KVar:
		return "var"
	case KVInt:
		return "vint"
	case KVUInt:
		return "vuint"
	case KVFloat:
		return "vfloat"
	case KRef:
		return "ref"
	case KArray:
		return "array"
	case KSlice:
		return "slice"
	case KTuple:
		return "tuple"
	case KFunc:
		return "func"
	case KStruct:
		return "struct"
	case KEnum:
		return "enum"
	case KTypeOf:
		return "typeof"
	case KObject:
		return "object"
	default:
		return "<invalid-kind>"
	}
}

// IsNumericVar reports whether k is one of the three numeric-kind
// inference-variable variants (§3).
func (k Kind) IsNumericVar() bool {
	return k == KVInt || k == KVUInt || k == KVFloat
}
