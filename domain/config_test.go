package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/planfirst/strips/logic"
	"github.com/planfirst/strips/planning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTerm(t *testing.T, s string) logic.Term {
	t.Helper()
	term, err := logic.ParseTerm(s)
	require.NoError(t, err)
	return term
}

const romaniaYAML = `
name: romania
facts:
  - Connected(Sibiu, Fagaras)
  - Connected(Fagaras, Bucharest)
  - At(Sibiu)
rules:
  - Connected(x, y) ==> Connected(y, x)
actions:
  - name: Drive
    params: [x, y]
    precond: [At(x), 'Connected(x, y)']
    add: [At(y)]
    del: [At(x)]
goal:
  - At(Bucharest)
bounds:
  max_depth: 10
  max_nodes: 1000
  deadline: 30s
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(romaniaYAML))
	require.NoError(t, err)

	assert.Equal(t, "romania", cfg.Name)
	assert.Len(t, cfg.Facts, 3)
	assert.Len(t, cfg.Rules, 1)
	assert.Len(t, cfg.Actions, 1)
	assert.Equal(t, []string{"At(Bucharest)"}, cfg.Goal)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(romaniaYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "romania", cfg.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "not yaml",
			yaml: "::::",
		},
		{
			name: "missing name",
			yaml: "facts: [At(Sibiu)]\ngoal: [At(Sibiu)]",
		},
		{
			name: "empty goal",
			yaml: "name: d\nfacts: [At(Sibiu)]",
		},
		{
			name: "malformed fact",
			yaml: "name: d\nfacts: ['At(']\ngoal: [At(Sibiu)]",
		},
		{
			name: "rule under facts",
			yaml: "name: d\nfacts: ['P(x) ==> Q(x)']\ngoal: [At(Sibiu)]",
		},
		{
			name: "non-ground fact",
			yaml: "name: d\nfacts: [At(x)]\ngoal: [At(Sibiu)]",
		},
		{
			name: "unsafe rule",
			yaml: "name: d\nfacts: [At(Sibiu)]\nrules: ['At(x) ==> Near(x, y)']\ngoal: [At(Sibiu)]",
		},
		{
			name: "invalid action effect variable",
			yaml: `
name: d
facts: [At(Sibiu)]
actions:
  - name: Warp
    params: [x]
    precond: [At(x)]
    add: [At(y)]
goal: [At(Sibiu)]
`,
		},
		{
			name: "bad deadline",
			yaml: "name: d\nfacts: [At(Sibiu)]\ngoal: [At(Sibiu)]\nbounds: {deadline: soon}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestProblemCompilation(t *testing.T) {
	cfg, err := Parse([]byte(romaniaYAML))
	require.NoError(t, err)

	prob, err := cfg.Problem()
	require.NoError(t, err)

	// The symmetry rule doubles the two Connected facts in the closure.
	init := prob.Initial()
	assert.Equal(t, 5, init.Len())
	assert.True(t, init.ContainsAll([]logic.Term{
		mustTerm(t, "Connected(Fagaras, Sibiu)"),
		mustTerm(t, "Connected(Bucharest, Fagaras)"),
	}))

	assert.Len(t, prob.Actions(), 1)
	assert.False(t, prob.GoalSatisfied(init))

	goal, err := planning.NewState(
		mustTerm(t, "At(Bucharest)"),
	)
	require.NoError(t, err)
	assert.True(t, prob.GoalSatisfied(goal))
}

func TestProblemSolvable(t *testing.T) {
	cfg, err := Parse([]byte(romaniaYAML))
	require.NoError(t, err)

	prob, err := cfg.Problem()
	require.NoError(t, err)
	bounds, err := cfg.PlanningBounds()
	require.NoError(t, err)

	planner, err := planning.NewPlanner()
	require.NoError(t, err)
	plan, err := planner.Plan(context.Background(), prob, bounds)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Drive(Sibiu, Fagaras)",
		"Drive(Fagaras, Bucharest)",
	}, plan.StepStrings())
}

func TestPlanningBoundsDefaults(t *testing.T) {
	cfg := &Config{Name: "d"}
	b, err := cfg.PlanningBounds()
	require.NoError(t, err)
	assert.Equal(t, planning.DefaultMaxDepth, b.MaxDepth())
	assert.Equal(t, planning.DefaultMaxNodes, b.MaxNodes())
	assert.Zero(t, b.Deadline())
}

func TestPlanningBoundsParsed(t *testing.T) {
	cfg, err := Parse([]byte(romaniaYAML))
	require.NoError(t, err)

	b, err := cfg.PlanningBounds()
	require.NoError(t, err)
	assert.Equal(t, 10, b.MaxDepth())
	assert.Equal(t, 1000, b.MaxNodes())
	assert.Equal(t, 30*time.Second, b.Deadline())
}
