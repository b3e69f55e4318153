// Package mir implements C7, the MIR Builder (§4.7): it pattern-compiles a
// checked HIR function body into a Body, a typed control-flow graph over
// places, operands, and rvalues. The arena-and-index representation below
// follows §9's "Arena + index pattern" guidance directly: locals and
// blocks are dense small-integer ids over slice storage rather than a
// pointer graph, so a Body serializes cleanly and can never contain a
// reference cycle.
package mir

import "github.com/shade-lang/shadec/internal/types"

// LocalID indexes Body.Locals. Local 0 is always the Ret local (§3's
// invariant); Arg locals are consecutive from 1 to nparams.
type LocalID int

// BlockID indexes Body.Blocks.
type BlockID int

// LocalKind discriminates what a Local is used for.
type LocalKind int

const (
	Ret LocalKind = iota
	Arg
	Var
	Tmp
)

func (k LocalKind) String() string {
	switch k {
	case Ret:
		return "ret"
	case Arg:
		return "arg"
	case Var:
		return "var"
	case Tmp:
		return "tmp"
	default:
		return "local?"
	}
}

// Local is one storage slot in a Body.
type Local struct {
	ID   LocalID
	Kind LocalKind
	Type *types.Type
}

// Body is the MIR for a single function (§3's "MIR body").
type Body struct {
	Locals   []Local
	Blocks   []Block
	NParams  int
	RetType  *types.Type
}

// NewBody allocates an empty Body with local 0 seeded as Ret.
func NewBody(retType *types.Type) *Body {
	return &Body{
		Locals:  []Local{{ID: 0, Kind: Ret, Type: retType}},
		RetType: retType,
	}
}

func (b *Body) addLocal(kind LocalKind, t *types.Type) LocalID {
	id := LocalID(len(b.Locals))
	b.Locals = append(b.Locals, Local{ID: id, Kind: kind, Type: t})
	return id
}

// NewArg allocates the next Arg local; callers must allocate all Arg
// locals consecutively, before any Var/Tmp, to preserve §3's "Arg locals
// consecutive from 1 to nparams" invariant.
func (b *Body) NewArg(t *types.Type) LocalID {
	id := b.addLocal(Arg, t)
	b.NParams++
	return id
}

// NewVarLocal allocates a local backing a source-level `var` binding or a
// case pattern's bound variable.
func (b *Body) NewVarLocal(t *types.Type) LocalID {
	return b.addLocal(Var, t)
}

// NewTmp allocates a compiler-introduced temporary.
func (b *Body) NewTmp(t *types.Type) LocalID {
	return b.addLocal(Tmp, t)
}

// LocalType returns the type of local id.
func (b *Body) LocalType(id LocalID) *types.Type {
	return b.Locals[id].Type
}

// NewBlock appends an empty, Unset-terminated block and returns its id.
func (b *Body) NewBlock() BlockID {
	id := BlockID(len(b.Blocks))
	b.Blocks = append(b.Blocks, Block{ID: id, Term: Terminator{Kind: Unset}})
	return id
}

func (b *Body) block(id BlockID) *Block {
	return &b.Blocks[id]
}

// Emit appends a statement to block id.
func (b *Body) Emit(block BlockID, s Stmt) {
	b.block(block).Stmts = append(b.block(block).Stmts, s)
}

// Terminate sets block id's terminator, replacing any terminator already
// set; it does not check for one, so the caller is responsible for only
// terminating a block once, matching §8's MIR
// well-formedness property ("every block terminator is not Unset at the
// end of construction").
func (b *Body) Terminate(block BlockID, term Terminator) {
	b.block(block).Term = term
}

// Block is one basic block: a straight-line statement list ending in
// exactly one terminator.
type Block struct {
	ID    BlockID
	Stmts []Stmt
	Term  Terminator
}

// StmtKind discriminates Stmt shapes.
type StmtKind int

const (
	Nop StmtKind = iota
	Assign
)

// Stmt is one MIR statement.
type Stmt struct {
	Kind   StmtKind
	Place  Place  // Assign
	RValue RValue // Assign
}

// TermKind discriminates Terminator shapes.
type TermKind int

const (
	Unset TermKind = iota
	Abort
	Return
	Jump
	Switch
	Call
)

// Terminator closes a block.
type Terminator struct {
	Kind TermKind

	// Jump
	Target BlockID

	// Switch: op matches against Values[i], jumping to Targets[i]; falls
	// through to the last entry of Targets (one more target than values)
	// when nothing matches.
	Op      Operand
	Values  []uint64
	Targets []BlockID

	// Call: the callee and arguments, the place receiving the result, and
	// the successor block control returns to.
	CallDst  Place
	CallFunc Operand
	CallArgs []Operand
	CallNext BlockID
}
