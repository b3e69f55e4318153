// Package hir defines the resolved-HIR input the core consumes (§6): a
// package object in which every name is already bound to a stable
// identifier. Producing this structure — lexing, parsing, module and name
// resolution — is explicitly out of the core's scope (§1); the core only
// ever reads it.
package hir

import "github.com/shade-lang/shadec/internal/ids"

// Package is the top-level input to C4 (§6).
type Package struct {
	Name string

	// Items holds every declared item, keyed by its stable id.
	Items map[ids.ID]*Item

	// Exprs holds every expression node reachable from an item body, keyed
	// by its stable id.
	Exprs map[ids.ID]*Expr

	// Types holds every syntactic type reference, keyed by its stable id.
	Types map[ids.ID]*TypeRef
}

// ItemKind discriminates the shapes §4.4 gives inference rules for.
type ItemKind int

const (
	ItemExtern ItemKind = iota
	ItemFunc
	ItemParam
	ItemVar
	ItemStruct
	ItemEnum
	ItemCons
)

// Item is one top-level or nested declaration.
type Item struct {
	ID   ids.ID
	Name string
	Kind ItemKind

	// NoMangle / Main: the item carries a `@no_mangle` or `@main`
	// attribute (§6), so C8/mangle export its raw, unmangled name
	// instead of composing `<module>.<item>` through the name mangler.
	NoMangle bool
	Main     bool

	// Extern
	ExternType ids.ID // -> Types

	// Func
	FuncParams []ids.ID // -> Items (each ItemParam)
	FuncRet    ids.ID   // -> Types
	FuncBody   ids.ID   // -> Exprs

	// Param / Var
	DeclType ids.ID // -> Types
	VarInit  ids.ID // -> Exprs, zero if no initializer

	// Struct
	StructFields []FieldDecl

	// Enum
	EnumVariants []VariantDecl

	// Cons: references the struct/enum item it constructs. ConsParams is
	// non-empty for a tuple-style constructor ("Some(x)"); empty for a
	// unit-style one ("None").
	ConsOf    ids.ID
	ConsParams []ids.ID // -> Types
}

// FieldDecl is a struct field as written in source.
type FieldDecl struct {
	Name string
	Type ids.ID // -> Types
}

// VariantDecl is an enum variant as written in source. HasFields is false
// for a fieldless variant ("B" in "enum E { A(ref i32), B }").
type VariantDecl struct {
	Name      string
	HasFields bool
	Fields    []FieldDecl
}

// ExprKind discriminates the expression forms §4.4 gives synthesis rules
// for.
type ExprKind int

const (
	ExprIntLit ExprKind = iota
	ExprFloatLit
	ExprBoolLit
	ExprStrLit
	ExprName   // reference to an Item by id
	ExprRef    // &e / &mut e
	ExprDeref
	ExprCall
	ExprField
	ExprIndex
	ExprCast
	ExprBinOp
	ExprUnOp
	ExprBlock
	ExprIf
	ExprWhile
	ExprCase
	ExprTuple
	ExprArray
	ExprInit // struct/enum literal construction
	ExprUnsafeRead
	ExprUnsafeStore
)

// Expr is one expression node.
type Expr struct {
	ID   ids.ID
	Kind ExprKind

	// IntLit / FloatLit / BoolLit / StrLit: the literal's own value, used
	// by C7 (§4.7) to build MIR Scalar/Bytes constants. Inference itself
	// never reads these — it only needs the literal's *type*.
	IntValue   uint64
	FloatValue float64
	BoolValue  bool
	StrValue   string

	// Name
	RefersTo ids.ID // -> Items

	// Ref
	RefMut bool
	Sub    ids.ID // -> Exprs (Ref, Deref, UnOp, Cast operand, field base, index value)

	// Call
	Callee ids.ID   // -> Exprs
	Args   []ids.ID // -> Exprs

	// Field
	FieldName string

	// Index
	IndexOf ids.ID // -> Exprs (the indexed base)

	// Cast
	CastTo ids.ID // -> Types

	// BinOp / UnOp
	Op    string
	Left  ids.ID // -> Exprs
	Right ids.ID // -> Exprs

	// Block
	Stmts  []ids.ID // -> Items (Var) or Exprs, statement order
	Result ids.ID   // -> Exprs, zero if block ends in a statement

	// If
	Cond ids.ID // -> Exprs
	Then ids.ID // -> Exprs
	Else ids.ID // -> Exprs, zero if no else branch

	// While
	WhileCond ids.ID // -> Exprs
	WhileBody ids.ID // -> Exprs

	// Case
	Scrutinee ids.ID // -> Exprs
	Arms      []CaseArm

	// Tuple / Array / Init
	Elems []ids.ID // -> Exprs
	InitOf ids.ID  // -> Items, for Init (struct/enum constructor being applied)
}

// CaseArm is one arm of a `case` expression.
type CaseArm struct {
	Pattern Pattern
	Body    ids.ID // -> Exprs
}

// PatternKind discriminates pattern shapes for C7's lowering (§4.7).
type PatternKind int

const (
	PatWildcard PatternKind = iota
	PatBind               // bind the scrutinee to a Var item
	PatLiteral            // match an exact constant
	PatConstructor        // match an enum variant, with optional sub-patterns
)

// Pattern is a match-arm pattern.
type Pattern struct {
	Kind PatternKind

	BindTo ids.ID // -> Items, for PatBind

	LitValue ids.ID // -> Exprs, for PatLiteral

	VariantName string     // for PatConstructor
	SubPatterns []Pattern  // for PatConstructor
}

// TypeRefKind discriminates syntactic type reference forms.
type TypeRefKind int

const (
	TypeRefName TypeRefKind = iota // names an Item (Struct/Enum/builtin alias)
	TypeRefRef
	TypeRefArray
	TypeRefSlice
	TypeRefTuple
	TypeRefFunc
)

// TypeRef is a syntactic type reference, resolved to item ids where it
// names a declaration.
type TypeRef struct {
	ID   ids.ID
	Kind TypeRefKind

	// Name
	RefersTo ids.ID // -> Items

	// Ref
	RefMut bool
	Elem   ids.ID // -> Types

	// Array
	ArrayLen uint64

	// Tuple
	Elems []ids.ID // -> Types

	// Func
	Params []ids.ID // -> Types
	Ret    ids.ID   // -> Types
}
