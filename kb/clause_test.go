package kb

import (
	"testing"

	"github.com/planfirst/strips/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClause(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantFact bool
		want     string
	}{
		{name: "fact", input: "Connected(Pitesti, Rimnicu)", wantFact: true, want: "Connected(Pitesti, Rimnicu)"},
		{name: "rule", input: "Connected(x, y) ==> Connected(y, x)", want: "Connected(x, y) ==> Connected(y, x)"},
		{
			name:  "conjunctive rule",
			input: "Connected(x, y) & Connected(y, z) ==> Reachable(x, z)",
			want:  "Connected(x, y) & Connected(y, z) ==> Reachable(x, z)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFact, c.IsFact())
			assert.Equal(t, tt.want, c.String())
		})
	}
}

func TestParseClauseErrors(t *testing.T) {
	_, err := Parse("Connected(x, y ==> Connected(y, x)")
	assert.ErrorIs(t, err, logic.ErrParse)

	_, err = Parse("==> Connected(y, x)")
	assert.ErrorIs(t, err, logic.ErrParse)

	_, err = Parse("Connected(x, y) ==>")
	assert.ErrorIs(t, err, logic.ErrParse)
}

func TestClauseValidate(t *testing.T) {
	tests := []struct {
		name    string
		clause  Clause
		wantErr error
	}{
		{
			name:   "ground fact",
			clause: MustParse("At(Sibiu)"),
		},
		{
			name:    "fact with variable",
			clause:  MustParse("At(x)"),
			wantErr: ErrNotGroundFact,
		},
		{
			name:   "safe rule",
			clause: MustParse("Connected(x, y) ==> Connected(y, x)"),
		},
		{
			name:    "unsafe rule invents constant",
			clause:  MustParse("Connected(x, y) ==> Connected(y, z)"),
			wantErr: ErrUnsafeRule,
		},
		{
			name:    "nil consequent",
			clause:  Clause{},
			wantErr: ErrInvalidClause,
		},
		{
			name:    "bare variable consequent",
			clause:  Rule(logic.NewVar("x"), logic.MustParseTerm("At(x)")),
			wantErr: ErrInvalidClause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.clause.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClauseEqual(t *testing.T) {
	a := MustParse("Connected(x, y) ==> Connected(y, x)")
	b := MustParse("Connected(x, y) ==> Connected(y, x)")
	c := MustParse("Connected(x, y) ==> Reachable(x, y)")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(MustParse("Connected(x, y)")))
}
