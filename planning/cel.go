package planning

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// ErrInvalidGoalExpr indicates a CEL goal expression that failed to
// compile or does not evaluate to a boolean.
var ErrInvalidGoalExpr = errors.New("planning: invalid goal expression")

// CELGoal builds a goal test from a CEL expression evaluated against the
// candidate state. The expression sees one variable, facts, the sorted
// list of the state's canonical fact strings, and must produce a bool:
//
//	goal, err := planning.CELGoal(`"At(Bucharest)" in facts`)
//
//	goal, err := planning.CELGoal(
//	    `facts.exists(f, f.startsWith("At(")) && !("At(Sibiu)" in facts)`)
//
// CEL goals complement Goal and KBGoal for conditions that are awkward as
// conjunctive queries, such as disjunctions or counting.
func CELGoal(expr string) (GoalFunc, error) {
	env, err := cel.NewEnv(
		cel.Variable("facts", cel.ListType(cel.StringType)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoalExpr, err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoalExpr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: expression yields %s, want bool", ErrInvalidGoalExpr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoalExpr, err)
	}

	return func(s State) bool {
		out, _, err := prg.Eval(map[string]any{"facts": s.FactStrings()})
		if err != nil {
			return false
		}
		b, ok := out.Value().(bool)
		return ok && b
	}, nil
}
