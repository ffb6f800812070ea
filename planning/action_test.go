package planning

import (
	"testing"

	"github.com/planfirst/strips/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func driveSchema(t *testing.T) *Action {
	t.Helper()
	a, err := NewAction(ActionSpec{
		Name:       "Drive",
		Params:     []logic.Term{logic.NewVar("x"), logic.NewVar("y")},
		PrecondPos: []logic.Term{logic.MustParseTerm("At(x)"), logic.MustParseTerm("Connected(x, y)")},
		Add:        []logic.Term{logic.MustParseTerm("At(y)")},
		Del:        []logic.Term{logic.MustParseTerm("At(x)")},
	})
	require.NoError(t, err)
	return a
}

func TestNewActionValidation(t *testing.T) {
	tests := []struct {
		name string
		spec ActionSpec
	}{
		{
			name: "empty name",
			spec: ActionSpec{},
		},
		{
			name: "contradictory precondition",
			spec: ActionSpec{
				Name:       "Stuck",
				PrecondPos: []logic.Term{logic.MustParseTerm("At(Sibiu)")},
				PrecondNeg: []logic.Term{logic.MustParseTerm("At(Sibiu)")},
			},
		},
		{
			name: "unbindable effect variable",
			spec: ActionSpec{
				Name:       "Teleport",
				PrecondPos: []logic.Term{logic.MustParseTerm("At(x)")},
				Add:        []logic.Term{logic.MustParseTerm("At(y)")},
				Del:        []logic.Term{logic.MustParseTerm("At(x)")},
			},
		},
		{
			name: "unbindable negative precondition variable",
			spec: ActionSpec{
				Name:       "Guard",
				PrecondPos: []logic.Term{logic.MustParseTerm("At(x)")},
				PrecondNeg: []logic.Term{logic.MustParseTerm("Blocked(z)")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAction(tt.spec)
			assert.ErrorIs(t, err, ErrInvalidAction)
		})
	}
}

func TestNewActionAllowsDistinctPosNeg(t *testing.T) {
	_, err := NewAction(ActionSpec{
		Name:       "Enter",
		Params:     []logic.Term{logic.NewVar("x")},
		PrecondPos: []logic.Term{logic.MustParseTerm("At(x)")},
		PrecondNeg: []logic.Term{logic.MustParseTerm("Locked(x)")},
		Add:        []logic.Term{logic.MustParseTerm("Inside(x)")},
	})
	assert.NoError(t, err)
}

func TestGround(t *testing.T) {
	drive := driveSchema(t)

	s := logic.Subst{"x": logic.NewConst("Sibiu"), "y": logic.NewConst("Fagaras")}
	ground, err := drive.Ground(s)
	require.NoError(t, err)
	assert.Equal(t, "Drive(Sibiu, Fagaras)", ground.String())

	// Partial bindings are rejected.
	_, err = drive.Ground(logic.Subst{"x": logic.NewConst("Sibiu")})
	assert.ErrorIs(t, err, ErrUngroundedAction)

	_, err = drive.Ground(logic.Subst{})
	assert.ErrorIs(t, err, ErrUngroundedAction)
}

func TestApplicable(t *testing.T) {
	drive := driveSchema(t)
	ground, err := drive.Ground(logic.Subst{"x": logic.NewConst("Sibiu"), "y": logic.NewConst("Fagaras")})
	require.NoError(t, err)

	ok := MustNewState(
		logic.MustParseTerm("At(Sibiu)"),
		logic.MustParseTerm("Connected(Sibiu, Fagaras)"),
	)
	missingFact := MustNewState(logic.MustParseTerm("At(Sibiu)"))

	assert.True(t, ground.Applicable(ok))
	assert.False(t, ground.Applicable(missingFact))
}

func TestApplicableNegativePrecondition(t *testing.T) {
	enter := MustNewAction(ActionSpec{
		Name:       "Enter",
		Params:     []logic.Term{logic.NewVar("x")},
		PrecondPos: []logic.Term{logic.MustParseTerm("At(x)")},
		PrecondNeg: []logic.Term{logic.MustParseTerm("Locked(x)")},
		Add:        []logic.Term{logic.MustParseTerm("Inside(x)")},
	})
	ground, err := enter.Ground(logic.Subst{"x": logic.NewConst("Vault")})
	require.NoError(t, err)

	open := MustNewState(logic.MustParseTerm("At(Vault)"))
	locked := MustNewState(logic.MustParseTerm("At(Vault)"), logic.MustParseTerm("Locked(Vault)"))

	assert.True(t, ground.Applicable(open))
	assert.False(t, ground.Applicable(locked))
}

func TestApplySemantics(t *testing.T) {
	drive := driveSchema(t)
	ground, err := drive.Ground(logic.Subst{"x": logic.NewConst("Sibiu"), "y": logic.NewConst("Fagaras")})
	require.NoError(t, err)

	state := MustNewState(
		logic.MustParseTerm("At(Sibiu)"),
		logic.MustParseTerm("Connected(Sibiu, Fagaras)"),
	)
	next := ground.Apply(state)

	assert.False(t, next.Contains(logic.MustParseTerm("At(Sibiu)")))
	assert.True(t, next.Contains(logic.MustParseTerm("At(Fagaras)")))
	assert.True(t, next.Contains(logic.MustParseTerm("Connected(Sibiu, Fagaras)")), "unrelated facts survive")

	// Pure function: same action on an equal state gives an equal result.
	again := ground.Apply(MustNewState(
		logic.MustParseTerm("At(Sibiu)"),
		logic.MustParseTerm("Connected(Sibiu, Fagaras)"),
	))
	assert.True(t, next.Equal(again))
	assert.True(t, state.Contains(logic.MustParseTerm("At(Sibiu)")), "pre-state untouched")
}

func TestApplyAddWinsOverDelete(t *testing.T) {
	spin := MustNewAction(ActionSpec{
		Name:       "Spin",
		Params:     []logic.Term{logic.NewVar("x")},
		PrecondPos: []logic.Term{logic.MustParseTerm("At(x)")},
		Add:        []logic.Term{logic.MustParseTerm("At(x)")},
		Del:        []logic.Term{logic.MustParseTerm("At(x)")},
	})
	ground, err := spin.Ground(logic.Subst{"x": logic.NewConst("Sibiu")})
	require.NoError(t, err)

	next := ground.Apply(MustNewState(logic.MustParseTerm("At(Sibiu)")))
	assert.True(t, next.Contains(logic.MustParseTerm("At(Sibiu)")), "a fact added and deleted stays present")
}

func TestActionAccessorsCopy(t *testing.T) {
	drive := driveSchema(t)
	got := drive.PrecondPos()
	got[0] = logic.MustParseTerm("Corrupted(No)")
	assert.Equal(t, "At(x)", drive.PrecondPos()[0].String(), "accessors return copies")
}

func TestActionVars(t *testing.T) {
	drive := driveSchema(t)
	vars := drive.Vars()
	require.Len(t, vars, 2)
	assert.Equal(t, "x", vars[0].Name)
	assert.Equal(t, "y", vars[1].Name)
}
