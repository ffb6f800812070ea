package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindAndApply(t *testing.T) {
	s, err := Subst{}.Bind(NewVar("x"), NewConst("Sibiu"))
	require.NoError(t, err)

	got := s.Apply(NewOp("At", NewVar("x")))
	assert.True(t, got.Equal(NewOp("At", NewConst("Sibiu"))))

	// Unbound variables stay in place.
	got = s.Apply(NewOp("Connected", NewVar("x"), NewVar("y")))
	assert.Equal(t, "Connected(Sibiu, y)", got.String())
}

func TestBindDoesNotMutate(t *testing.T) {
	base := Subst{}
	s1, err := base.Bind(NewVar("x"), NewConst("A1"))
	require.NoError(t, err)
	s2, err := base.Bind(NewVar("x"), NewConst("B2"))
	require.NoError(t, err)

	assert.Empty(t, base)
	assert.Equal(t, "A1", s1["x"].String())
	assert.Equal(t, "B2", s2["x"].String())
}

func TestBindOccursCheck(t *testing.T) {
	x := NewVar("x")

	// Direct cycle: x -> F(x).
	_, err := Subst{}.Bind(x, NewOp("F", x))
	assert.ErrorIs(t, err, ErrOccursCheck)

	// Transitive cycle: y -> x, then x -> F(y).
	s, err := Subst{}.Bind(NewVar("y"), x)
	require.NoError(t, err)
	_, err = s.Bind(x, NewOp("F", NewVar("y")))
	assert.ErrorIs(t, err, ErrOccursCheck)
}

func TestResolveChasesChains(t *testing.T) {
	s := Subst{"x": NewVar("y"), "y": NewConst("Sibiu")}
	assert.Equal(t, "Sibiu", s.Resolve(NewVar("x")).String())
	assert.Equal(t, "z", s.Resolve(NewVar("z")).String())

	// Resolve does not descend into arguments; Apply does.
	term := NewOp("At", NewVar("x"))
	assert.Equal(t, "At(x)", s.Resolve(term).String())
	assert.Equal(t, "At(Sibiu)", s.Apply(term).String())
}

func TestSubstString(t *testing.T) {
	s := Subst{"y": NewConst("Fagaras"), "x": NewConst("Sibiu")}
	assert.Equal(t, "{x: Sibiu, y: Fagaras}", s.String(), "keys must be sorted")
}
