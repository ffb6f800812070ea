// Package strips is a planning engine for STRIPS-style domains backed by a
// first-order logic knowledge base.
//
// A domain is described with function-symbol expressions: constants start
// with an uppercase letter ("Sibiu"), variables with a lowercase letter
// ("x"), and compound terms apply a symbol to arguments
// ("Connected(Sibiu, Fagaras)"). States are sets of ground facts under the
// closed-world assumption; action schemas transform states by deleting and
// adding facts; the planner searches breadth-first for the shortest action
// sequence that reaches a goal.
//
// # Packages
//
//   - logic: terms, substitutions, unification, and the expression parser
//   - kb: Horn clauses and a forward-chaining knowledge base
//   - planning: states, action schemas, problems, bounds, and the planner
//   - store: plan and fact persistence (Redis or in-memory)
//   - domain: YAML domain definitions
//
// # Getting Started
//
// Build a problem from expression text and solve it:
//
//	drive := planning.MustNewAction(planning.ActionSpec{
//		Name:       "Drive",
//		Params:     []logic.Term{logic.NewVar("x"), logic.NewVar("y")},
//		PrecondPos: []logic.Term{
//			logic.MustParseTerm("At(x)"),
//			logic.MustParseTerm("Connected(x, y)"),
//		},
//		Add: []logic.Term{logic.MustParseTerm("At(y)")},
//		Del: []logic.Term{logic.MustParseTerm("At(x)")},
//	})
//
//	prob, err := strips.PDDL(
//		[]string{
//			"Connected(Sibiu, Fagaras)",
//			"Connected(Fagaras, Bucharest)",
//			"At(Sibiu)",
//			"Connected(x, y) ==> Connected(y, x)",
//		},
//		[]*planning.Action{drive},
//		"At(Bucharest)",
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	solver, err := strips.NewSolver()
//	if err != nil {
//		log.Fatal(err)
//	}
//	plan, err := solver.Solve(ctx, "romania", prob)
//
// # Error Handling
//
// Errors are structured: sentinel errors in each package identify the
// condition (logic.ErrNoUnifier, kb.ErrUnsafeRule,
// planning.ErrPlanNotFound, store.ErrNotFound) and the root package wraps
// them in PlanError with an operation and kind:
//
//	if errors.Is(err, planning.ErrPlanNotFound) {
//		// no plan within bounds
//	}
//
// # Thread Safety
//
// Terms, substitutions, states, and ground actions are immutable. The
// knowledge base, stores, and the solver are safe for concurrent use.
package strips
