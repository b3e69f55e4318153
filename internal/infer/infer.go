package infer

// Run drives C4+C5 end to end over the whole package (§4.4, §4.5): it
// synthesizes every item's type (which transitively synthesizes every
// expression and type reference reachable from it), solves the recorded
// constraints to a fixpoint, and finalizes numeric defaulting. The
// resulting type map (Context.TypeMap) is what C3 persists and C6/C7
// consume.
func (c *Context) Run() {
	for id := range c.Pkg.Items {
		c.TypeOf(id)
	}
	c.Solve()
	c.FinalizeDefaults()
}
