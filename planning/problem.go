package planning

import (
	"errors"
	"fmt"

	"github.com/planfirst/strips/kb"
	"github.com/planfirst/strips/logic"
)

// ErrInvalidProblem indicates a problem missing a goal test or an action
// library entry.
var ErrInvalidProblem = errors.New("planning: invalid problem")

// GoalFunc decides whether a state satisfies the goal.
type GoalFunc func(State) bool

// Problem bundles an initial state, an action schema library, and a goal
// test into a single searchable unit. The initial state and goal test are
// caller-supplied immutable inputs; the problem owns its action list.
type Problem struct {
	initial State
	actions []*Action
	goal    GoalFunc
}

// NewProblem builds a planning problem. The action library may be empty
// (the only solvable goals are then those the initial state satisfies),
// but every entry and the goal test must be non-nil.
func NewProblem(initial State, actions []*Action, goal GoalFunc) (*Problem, error) {
	if goal == nil {
		return nil, fmt.Errorf("%w: nil goal test", ErrInvalidProblem)
	}
	for i, a := range actions {
		if a == nil {
			return nil, fmt.Errorf("%w: nil action at index %d", ErrInvalidProblem, i)
		}
	}
	copied := make([]*Action, len(actions))
	copy(copied, actions)
	return &Problem{initial: initial, actions: copied, goal: goal}, nil
}

// Initial returns the initial state.
func (p *Problem) Initial() State { return p.initial }

// Actions returns a copy of the action library.
func (p *Problem) Actions() []*Action {
	out := make([]*Action, len(p.actions))
	copy(out, p.actions)
	return out
}

// GoalSatisfied applies the goal test to a state.
func (p *Problem) GoalSatisfied(s State) bool { return p.goal(s) }

// Goal builds a goal test that holds when every query term unifies with
// some fact of the state. Queries may contain variables; bindings are
// threaded across the conjunction, so Goal(At(x), Safe(x)) requires one
// location that satisfies both.
func Goal(queries ...logic.Term) GoalFunc {
	copied := copyTerms(queries)
	return func(s State) bool {
		return len(matchConjunction(copied, s.Facts(), logic.Subst{})) > 0
	}
}

// KBGoal builds a goal test that seeds a knowledge base with the given
// rules plus the candidate state's facts and asks each query in turn. Use
// it when goal satisfaction needs inference over the state, e.g. a goal of
// Reachable(Bucharest, x) under transitivity rules.
//
// Rules are validated once, up front.
func KBGoal(rules []kb.Clause, queries ...logic.Term) (GoalFunc, error) {
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	copiedRules := make([]kb.Clause, len(rules))
	copy(copiedRules, rules)
	copiedQueries := copyTerms(queries)

	return func(s State) bool {
		base := kb.New()
		for _, f := range s.Facts() {
			if err := base.Tell(kb.Fact(f)); err != nil {
				return false
			}
		}
		for _, r := range copiedRules {
			if err := base.Tell(r); err != nil {
				return false
			}
		}
		for _, q := range copiedQueries {
			if _, ok := base.Ask(q); !ok {
				return false
			}
		}
		return true
	}, nil
}

// matchConjunction enumerates substitutions making every query term unify
// with some state fact, threading bindings left to right. Kept separate
// from the kb package's chaining: goal matching does no inference.
func matchConjunction(queries []logic.Term, facts []logic.Term, s logic.Subst) []logic.Subst {
	if len(queries) == 0 {
		return []logic.Subst{s}
	}
	var out []logic.Subst
	for _, f := range facts {
		next, err := logic.Unify(queries[0], f, s)
		if err != nil {
			continue
		}
		out = append(out, matchConjunction(queries[1:], facts, next)...)
	}
	return out
}
