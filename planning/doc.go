// Package planning provides the STRIPS action model and a forward
// state-space planner.
//
// A State is an immutable set of ground facts under the closed-world
// assumption. An Action is a schema with positive and negative
// preconditions and add/delete effects, possibly over variables; grounding
// a schema with a substitution yields a GroundAction that can be tested
// for applicability and applied to produce a successor state.
//
// The Planner searches breadth-first over action count, so the first plan
// found is shortest by number of actions. Exploration is capped by Bounds
// (plan depth, expanded nodes, wall clock) and checked cooperatively
// against the caller's context between node expansions:
//
//	planner, _ := planning.NewPlanner()
//	plan, err := planner.Plan(ctx, problem, planning.NewBounds().WithMaxDepth(8))
//	if errors.Is(err, planning.ErrPlanNotFound) {
//	    // goal unreachable within the bound; a normal outcome
//	}
//
// Goal tests are plain predicates over states. Goal builds one from query
// terms, KBGoal from a knowledge base seeded with each candidate state, and
// CELGoal from a CEL expression evaluated over the state's fact strings.
package planning
