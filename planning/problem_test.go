package planning

import (
	"testing"

	"github.com/planfirst/strips/kb"
	"github.com/planfirst/strips/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProblemValidation(t *testing.T) {
	initial := MustNewState(logic.MustParseTerm("At(Sibiu)"))

	_, err := NewProblem(initial, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidProblem)

	_, err = NewProblem(initial, []*Action{nil}, Goal(logic.MustParseTerm("At(Sibiu)")))
	assert.ErrorIs(t, err, ErrInvalidProblem)

	p, err := NewProblem(initial, nil, Goal(logic.MustParseTerm("At(Sibiu)")))
	require.NoError(t, err)
	assert.True(t, p.GoalSatisfied(initial))
}

func TestGoalGroundQueries(t *testing.T) {
	goal := Goal(logic.MustParseTerm("At(Bucharest)"))

	assert.True(t, goal(MustNewState(logic.MustParseTerm("At(Bucharest)"))))
	assert.False(t, goal(MustNewState(logic.MustParseTerm("At(Sibiu)"))))
}

func TestGoalThreadsBindings(t *testing.T) {
	// One location must satisfy both conjuncts.
	goal := Goal(logic.MustParseTerm("At(x)"), logic.MustParseTerm("Safe(x)"))

	assert.True(t, goal(MustNewState(
		logic.MustParseTerm("At(Sibiu)"),
		logic.MustParseTerm("Safe(Sibiu)"),
	)))
	assert.False(t, goal(MustNewState(
		logic.MustParseTerm("At(Sibiu)"),
		logic.MustParseTerm("Safe(Bucharest)"),
	)))
}

func TestKBGoal(t *testing.T) {
	rules := []kb.Clause{
		kb.MustParse("Connected(x, y) ==> Reachable(x, y)"),
		kb.MustParse("Connected(x, y) & Reachable(y, z) ==> Reachable(x, z)"),
	}
	goal, err := KBGoal(rules, logic.MustParseTerm("Reachable(Sibiu, Bucharest)"))
	require.NoError(t, err)

	// Reachability needs the chain Sibiu -> Fagaras -> Bucharest, which
	// only inference over the state facts can establish.
	chained := MustNewState(
		logic.MustParseTerm("Connected(Sibiu, Fagaras)"),
		logic.MustParseTerm("Connected(Fagaras, Bucharest)"),
	)
	broken := MustNewState(logic.MustParseTerm("Connected(Sibiu, Fagaras)"))

	assert.True(t, goal(chained))
	assert.False(t, goal(broken))
}

func TestKBGoalRejectsUnsafeRules(t *testing.T) {
	_, err := KBGoal(
		[]kb.Clause{kb.MustParse("Connected(x, y) ==> Connected(y, z)")},
		logic.MustParseTerm("Connected(Sibiu, Fagaras)"),
	)
	assert.ErrorIs(t, err, kb.ErrUnsafeRule)
}
