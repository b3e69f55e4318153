package types

import (
	"encoding/binary"
	"fmt"

	"github.com/shade-lang/shadec/internal/ids"
)

// typeKey is the hash-consing key for Type interning. Note that for
// KStruct/KEnum only kind+id participate: §3 specifies nominal equality
// ("Two struct types are equal iff id is equal"), so two calls that name
// the same item id must collapse onto the same pointer even if a caller
// (incorrectly) passed a different field list the second time — the first
// registration wins, matching the reserve-then-finalize placeholder
// protocol in §4.4/§9 ("Cyclic type references").
type typeKey struct {
	kind Kind

	n   int
	mut bool

	elem *Type
	ret  *Type

	arrLen uint64

	elems  *List[*Type]
	params *List[Param]

	id ids.ID

	fields   *List[Field]
	variants *List[Variant]
}

func idHalves(id ids.ID) (uint64, uint64) {
	b, _ := id.MarshalBinary()
	return binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])
}

func hashTypeKey(k typeKey) uint64 {
	lo, hi := idHalves(k.id)
	return hashUint64Seq(
		uint64(k.kind),
		uint64(k.n),
		hashBool(k.mut),
		hashOfPtr(k.elem),
		hashOfPtr(k.ret),
		k.arrLen,
		hashPointerOfList(k.elems),
		hashPointerOfParams(k.params),
		lo, hi,
		hashPointerOfFields(k.fields),
		hashPointerOfVariants(k.variants),
	)
}

// Arena is the per-compilation bump-allocated owner of every interned Type
// and auxiliary list (§4.1). Types and lists live until compilation ends
// and are never freed piecewise.
type Arena struct {
	types *ShardedCache[typeKey, *Type]

	typeLists    *listTable[*Type]
	fieldLists   *listTable[Field]
	variantLists *listTable[Variant]
	paramLists   *listTable[Param]
	idLists      *listTable[ids.ID]
}

// NewArena creates an arena. parallel selects the shard count for the Type
// interner (§4.1: k=5 for parallel builds, k=0 otherwise); this
// specification mandates no required parallelism (§5), so callers doing a
// straightforward single-threaded build should pass false.
func NewArena(parallel bool) *Arena {
	return &Arena{
		types: NewShardedCache[typeKey, *Type](parallel),
		typeLists: newListTable[*Type](func(t *Type) string {
			return fmt.Sprintf("%p", t)
		}),
		fieldLists: newListTable[Field](func(f Field) string {
			return f.Name + "\x01" + fmt.Sprintf("%p", f.Type)
		}),
		variantLists: newListTable[Variant](func(v Variant) string {
			return v.Name + "\x01" + fmt.Sprintf("%p", v.Fields)
		}),
		paramLists: newListTable[Param](func(p Param) string {
			return p.Name + "\x01" + fmt.Sprintf("%p", p.Type)
		}),
		idLists: newListTable[ids.ID](func(id ids.ID) string {
			return id.String()
		}),
	}
}

func (a *Arena) intern(k typeKey, build func() *Type) *Type {
	return a.types.GetOrInsert(hashTypeKey(k), k, build)
}

// InternTypeList hash-conses a []*Type into a *List[*Type] (e.g. Tuple
// elements); the empty list is the shared sentinel for this instantiation.
func (a *Arena) InternTypeList(items []*Type) *List[*Type] { return a.typeLists.intern(items) }

// InternFieldList hash-conses a struct's field list.
func (a *Arena) InternFieldList(items []Field) *List[Field] { return a.fieldLists.intern(items) }

// InternVariantList hash-conses an enum's variant list.
func (a *Arena) InternVariantList(items []Variant) *List[Variant] {
	return a.variantLists.intern(items)
}

// InternParamList hash-conses a function's parameter list.
func (a *Arena) InternParamList(items []Param) *List[Param] { return a.paramLists.intern(items) }

// InternIDList hash-conses a list of identifiers (e.g. a call's argument
// expression ids, kept for diagnostics).
func (a *Arena) InternIDList(items []ids.ID) *List[ids.ID] { return a.idLists.intern(items) }

func hashPointerOfList(l *List[*Type]) uint64    { return hashOfAnyPtr(l) }
func hashPointerOfFields(l *List[Field]) uint64  { return hashOfAnyPtr(l) }
func hashPointerOfVariants(l *List[Variant]) uint64 { return hashOfAnyPtr(l) }
func hashPointerOfParams(l *List[Param]) uint64  { return hashOfAnyPtr(l) }

func hashOfAnyPtr[T any](p *T) uint64 {
	return hashPointerGeneric(p)
}
