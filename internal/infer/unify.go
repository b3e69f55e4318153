package infer

import (
	"github.com/shade-lang/shadec/internal/diagnostics"
	"github.com/shade-lang/shadec/internal/span"
	"github.com/shade-lang/shadec/internal/types"
)

// Solve drains the recorded constraint list to a fixpoint (§4.5): repeatedly
// walking the list, unifying each pair under the current substitution,
// until a pass makes no progress and binds nothing new. Mismatches are
// reported through c.Report but do not stop the pass — later constraints
// may still be useful diagnostics, and one bad program shouldn't hide the
// rest of its errors.
//
// Solve does no defaulting itself: FinalizeDefaults, run after it,
// defaults every surviving VInt/VUInt/VFloat per §3 and reports every
// surviving plain Var as CodeUnresolvedType.
func (c *Context) Solve() {
	for {
		progress := false
		for _, k := range c.constraints {
			l := c.resolve(k.Left)
			r := c.resolve(k.Right)
			if l == r {
				continue
			}
			bound, ok := c.unify(l, r)
			if ok && bound {
				progress = true
			} else if !ok {
				c.Report.Report((&diagnostics.TypeMismatchError{
					Left: l.String(), Right: r.String(),
					LeftSpan: k.LeftSpan, RightSpan: k.RightSpan,
				}).ToDiagnostic())
			}
		}
		if !progress {
			break
		}
	}
	c.defaultRemaining()
}

// resolve follows the substitution chain for a variable to its current
// binding, or returns t unchanged if it is not bound (or not a variable).
func (c *Context) resolve(t *types.Type) *types.Type {
	for t.IsVar() {
		bound, ok := c.subst[t.VarIndex()]
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

// unify attempts to make l and r equal, binding free variables as needed.
// Returns (boundSomething, ok); ok is false on a genuine mismatch.
func (c *Context) unify(l, r *types.Type) (bound bool, ok bool) {
	if l == r {
		return false, true
	}

	if l.Kind() == types.KError || r.Kind() == types.KError {
		// An Error type unifies with anything, silently, so one bad
		// expression doesn't cascade into unrelated mismatches (§4.4).
		return false, true
	}

	if l.IsVar() {
		return c.bindVar(l, r)
	}
	if r.IsVar() {
		return c.bindVar(r, l)
	}

	if l.Kind() != r.Kind() {
		return false, false
	}

	switch l.Kind() {
	case types.KNever, types.KBool, types.KStr, types.KTypeID, types.KObject:
		return false, true
	case types.KInt, types.KUInt, types.KFloat:
		return false, l.Width() == r.Width()
	case types.KRef:
		if l.Mut() != r.Mut() {
			return false, false
		}
		return c.unify(c.resolve(l.Elem()), c.resolve(r.Elem()))
	case types.KArray:
		if l.ArrayLen() != r.ArrayLen() {
			return false, false
		}
		return c.unify(c.resolve(l.Elem()), c.resolve(r.Elem()))
	case types.KSlice:
		return c.unify(c.resolve(l.Elem()), c.resolve(r.Elem()))
	case types.KTuple:
		le, re := l.TupleElems(), r.TupleElems()
		if le.Len() != re.Len() {
			return false, false
		}
		anyBound := false
		for i := 0; i < le.Len(); i++ {
			b, k := c.unify(c.resolve(le.At(i)), c.resolve(re.At(i)))
			if !k {
				return anyBound, false
			}
			anyBound = anyBound || b
		}
		return anyBound, true
	case types.KFunc:
		lp, rp := l.FuncParams(), r.FuncParams()
		if lp.Len() != rp.Len() {
			return false, false
		}
		anyBound := false
		for i := 0; i < lp.Len(); i++ {
			b, k := c.unify(c.resolve(lp.At(i).Type), c.resolve(rp.At(i).Type))
			if !k {
				return anyBound, false
			}
			anyBound = anyBound || b
		}
		b, k := c.unify(c.resolve(l.FuncResult()), c.resolve(r.FuncResult()))
		return anyBound || b, k
	case types.KStruct, types.KEnum, types.KTypeOf:
		// Nominal: equal iff same defining id, never by structural
		// comparison of fields/variants (§3's central nominal-equality
		// subtlety).
		return false, l.NominalID() == r.NominalID()
	default:
		return false, false
	}
}

// bindVar binds variable v to target t, enforcing the occurs check and the
// numeric-kind compatibility rule: a VInt/VUInt/VFloat may only bind to a
// plain Var (widening it) or to a concrete type of its own numeric family,
// never to an incompatible scalar kind (§3, §4.5).
func (c *Context) bindVar(v, t *types.Type) (bound bool, ok bool) {
	if t.IsVar() {
		// Binding a variable to another variable: widen the more specific
		// kind's constraint onto the less specific one where that makes
		// sense, otherwise just point one at the other.
		if v.Kind() == types.KVar {
			c.subst[v.VarIndex()] = t
			return true, true
		}
		if t.Kind() == types.KVar {
			c.subst[t.VarIndex()] = v
			return true, true
		}
		// Two differently-kinded numeric vars (e.g. VInt and VFloat):
		// irreconcilable.
		if !sameNumericFamily(v.Kind(), t.Kind()) {
			return false, false
		}
		c.subst[v.VarIndex()] = t
		return true, true
	}

	if c.occurs(v.VarIndex(), t) {
		return false, false
	}

	switch v.Kind() {
	case types.KVar:
		c.subst[v.VarIndex()] = t
		return true, true
	case types.KVInt:
		if t.Kind() != types.KInt {
			return false, false
		}
	case types.KVUInt:
		if t.Kind() != types.KUInt {
			return false, false
		}
	case types.KVFloat:
		if t.Kind() != types.KFloat {
			return false, false
		}
	}
	c.subst[v.VarIndex()] = t
	return true, true
}

func sameNumericFamily(a, b types.Kind) bool {
	return a == b
}

// occurs reports whether variable index idx appears free anywhere inside
// t, under the current substitution. Prevents building an infinite type
// through a self-referential binding.
func (c *Context) occurs(idx int, t *types.Type) bool {
	t = c.resolve(t)
	if t.IsVar() {
		return t.VarIndex() == idx
	}
	switch t.Kind() {
	case types.KRef, types.KArray, types.KSlice:
		return c.occurs(idx, t.Elem())
	case types.KTuple:
		for _, e := range t.TupleElems().Items {
			if c.occurs(idx, e) {
				return true
			}
		}
		return false
	case types.KFunc:
		for _, p := range t.FuncParams().Items {
			if c.occurs(idx, p.Type) {
				return true
			}
		}
		return c.occurs(idx, t.FuncResult())
	default:
		return false
	}
}

// defaultRemaining is a no-op placeholder: defaulting happens per-id in
// FinalizeDefaults, since an unbound variable's reported span is the span
// of the item that carries it, not of the variable itself.
func (c *Context) defaultRemaining() {}

// FinalizeDefaults walks every type reachable from c.typeMap, replacing
// resolved VInt/VUInt/VFloat leaves with their defaulting target and
// reporting any surviving plain Var against the owning id's span. Call
// after Solve and after every item's type has been recorded in c.typeMap.
func (c *Context) FinalizeDefaults() {
	for id, t := range c.typeMap {
		c.typeMap[id] = c.finalize(t, c.spanOf(id))
	}
}

func (c *Context) finalize(t *types.Type, sp span.Span) *types.Type {
	rt := c.resolve(t)
	switch rt.Kind() {
	case types.KVar:
		c.Report.Report((&diagnostics.UnresolvedTypeError{Span: sp}).ToDiagnostic())
		return c.Arena.ErrorType()
	case types.KVInt:
		return c.Builtin.SignedPointerInt()
	case types.KVUInt:
		return c.Builtin.UnsignedPointerInt()
	case types.KVFloat:
		return c.Builtin.DefaultFloat()
	case types.KRef:
		return c.Arena.Ref(rt.Mut(), c.finalize(rt.Elem(), sp))
	case types.KArray:
		return c.Arena.Array(c.finalize(rt.Elem(), sp), rt.ArrayLen())
	case types.KSlice:
		return c.Arena.Slice(c.finalize(rt.Elem(), sp))
	case types.KTuple:
		elems := rt.TupleElems()
		out := make([]*types.Type, elems.Len())
		for i := 0; i < elems.Len(); i++ {
			out[i] = c.finalize(elems.At(i), sp)
		}
		return c.Arena.Tuple(out)
	case types.KFunc:
		params := rt.FuncParams()
		out := make([]types.Param, params.Len())
		for i := 0; i < params.Len(); i++ {
			p := params.At(i)
			out[i] = types.Param{Name: p.Name, Type: c.finalize(p.Type, sp)}
		}
		return c.Arena.Func(out, c.finalize(rt.FuncResult(), sp))
	default:
		return rt
	}
}
