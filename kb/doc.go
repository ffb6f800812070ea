// Package kb implements a first-order knowledge base over Horn clauses with
// forward-chaining inference.
//
// A KB holds an ordered sequence of clauses: ground facts and rules of the
// form "antecedent conjunction implies consequent". Tell appends a clause,
// Retract removes the first structurally equal clause, and Ask answers a
// query by running forward chaining to a fixed point:
//
//	base := kb.New()
//	_ = base.Tell(kb.MustParse("Connected(Pitesti, Rimnicu)"))
//	_ = base.Tell(kb.MustParse("Connected(x, y) ==> Connected(y, x)"))
//
//	if subst, ok := base.Ask(logic.MustParseTerm("Connected(Rimnicu, p)")); ok {
//	    // subst binds p to Pitesti
//	}
//
// Ask never mutates the KB: derived facts live only for the duration of the
// query, so asking is idempotent and safe to run concurrently with other
// asks. Tell and Retract serialize against concurrent asks internally.
//
// Termination is enforced structurally. Tell rejects unsafe rules whose
// consequent mentions a variable absent from the antecedents, because firing
// such a rule would have to invent a fresh constant and the fixed-point loop
// could then grow the fact set forever. With that restriction every derived
// fact is ground and built from constants already present in the KB, so the
// closure is finite.
package kb
