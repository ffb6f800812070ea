// Package logic provides the symbolic term model shared by the knowledge
// base and the planner: variables, constants, compound terms, substitutions,
// and unification with an occurs check.
//
// Terms are immutable values with structural equality. Whether a symbol is a
// variable or a constant is decided purely by naming convention at
// construction time: a symbol whose first rune is lower case is a variable,
// anything else is a constant. This matches the classical planning literature
// where Connected(x, y) quantifies over x and y while Connected(Sibiu,
// Fagaras) is ground.
//
// A small text parser is included so that domain files and tests can write
// terms in the conventional syntax:
//
//	term, err := logic.ParseTerm("Connected(Pitesti, Rimnicu)")
//	conj, err := logic.ParseConjunction("Connected(x, y) & Connected(y, z)")
//
// Unification threads a Subst through recursive matching and rejects cyclic
// bindings:
//
//	s, err := logic.Unify(a, b, logic.Subst{})
//	if errors.Is(err, logic.ErrNoUnifier) {
//	    // not an error condition, just a negative result
//	}
package logic
