// Package layout implements C6: target-ABI-aware size/align/stride and
// field-offset computation over interned types (§4.6).
package layout

import (
	"math/bits"

	"github.com/shade-lang/shadec/internal/target"
	"github.com/shade-lang/shadec/internal/types"
)

// ABIClass discriminates how a value of a given layout is passed and
// returned across a function boundary (§3, §4.8's pass-mode table).
type ABIClass int

const (
	Uninhabited ABIClass = iota
	Scalar
	ScalarPair
	Aggregate
)

func (c ABIClass) String() string {
	switch c {
	case Uninhabited:
		return "uninhabited"
	case Scalar:
		return "scalar"
	case ScalarPair:
		return "scalar-pair"
	case Aggregate:
		return "aggregate"
	default:
		return "?"
	}
}

// ScalarDesc carries the primitive kind and valid-value range a Scalar or
// ScalarPair slot occupies (§3's Scalar: "{primitive, valid_range}").
// References narrow the lower bound to 1 (non-null), which is what makes
// §8's niche-optionality law about Ref meaningful even though this
// implementation does not elide the tag.
type ScalarDesc struct {
	Primitive string
	// ValidLow/ValidHigh are the inclusive valid-value range, used to
	// carry non-zero invariants and would-be niche computation.
	ValidLow, ValidHigh uint64
	Size, Align         int
}

// FieldsKind discriminates §3's `fields` shape.
type FieldsKind int

const (
	FieldsPrimitive FieldsKind = iota
	FieldsArray
	FieldsUnion
	FieldsArbitrary
)

// Niche describes the largest spare-bit-pattern range available within a
// layout, used only to decide niche *eligibility*; this implementation
// never actually elides a tag (§4.6: "this specification treats that as
// optional and behaviorally equivalent" — the direct-tag path always
// taken is the one choice the spec explicitly licenses, see DESIGN.md).
type Niche struct {
	Low, High uint64 // inclusive unused range within the host scalar
}

// Available returns how many distinct values the niche can encode.
func (n Niche) Available() uint64 {
	if n.High < n.Low {
		return 0
	}
	return n.High - n.Low + 1
}

// VariantsKind discriminates §3's `variants` shape.
type VariantsKind int

const (
	VariantsSingle VariantsKind = iota
	VariantsMultiple
)

func (v VariantsKind) String() string {
	switch v {
	case VariantsSingle:
		return "Single"
	case VariantsMultiple:
		return "Multiple"
	default:
		return "VariantsKind?"
	}
}

// EncodingKind discriminates §4.6's Direct/Niche enum tag encoding.
type EncodingKind int

const (
	Direct EncodingKind = iota
	NicheEncoding
)

func (e EncodingKind) String() string {
	switch e {
	case Direct:
		return "Direct"
	case NicheEncoding:
		return "Niche"
	default:
		return "EncodingKind?"
	}
}

// VariantLayout is one arm's own Layout plus its byte offset within the
// enum (0 for a Single-variant enum; for Multiple, the tag size rounded
// up to the enum's alignment).
type VariantLayout struct {
	Layout *Layout
	Offset int
}

// Layout is §3's `Layout` record: the ABI-relevant facts C7/C8 need about
// an interned type.
type Layout struct {
	Size, Align, Stride int
	ABI                 ABIClass

	// Scalar/ScalarPair payload, valid only when ABI is one of those.
	A, B *ScalarDesc

	FieldsKind FieldsKind
	// Arbitrary (struct) field offsets, source order.
	FieldOffsets []int
	// Array fields.
	ArrayStride int
	ArrayCount  uint64

	LargestNiche *Niche

	VariantsKind VariantsKind
	// Single
	SingleIndex int
	// Multiple
	TagSize     int
	Encoding    EncodingKind
	TagOffset   int
	Variants    []VariantLayout
}

// Engine computes and memoizes layouts for one compilation's target,
// keyed by interned type pointer (§4.6: "Memoized by interned type
// pointer"). The cache reuses the same generic sharded cache C1 uses for
// type interning, per internal/types' doc note that it backs both.
type Engine struct {
	target target.Target
	cache  *types.ShardedCache[*types.Type, *Layout]
}

// NewEngine builds a layout engine for one target, parallel controlling
// whether its cache shards (matches types.NewArena's own knob).
func NewEngine(t target.Target, parallel bool) *Engine {
	return &Engine{target: t, cache: types.NewShardedCache[*types.Type, *Layout](parallel)}
}

func align_up(n, align int) int {
	if align <= 1 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}

// bitsFor returns the number of bits needed to represent n distinct
// values, rounded up to a power-of-two byte-aligned integer class
// (§4.6's enum tag-size rule): 0/1 variants need no tag; n values need
// ceil(log2(n)) bits, rounded up to 8/16/32/64.
func bitsFor(n int) int {
	if n <= 1 {
		return 0
	}
	raw := bits.Len(uint(n - 1))
	switch {
	case raw <= 8:
		return 8
	case raw <= 16:
		return 16
	case raw <= 32:
		return 32
	default:
		return 64
	}
}
