package domain

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/planfirst/strips/kb"
	"github.com/planfirst/strips/logic"
	"github.com/planfirst/strips/planning"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDomain indicates a domain file that parsed as YAML but fails
// validation: missing name, empty goal, malformed expressions, or invalid
// action schemas.
var ErrInvalidDomain = errors.New("domain: invalid domain definition")

// Config represents a domain.yaml problem definition.
type Config struct {
	// Name identifies the domain, used as the default persistence key.
	Name string `yaml:"name"`

	// Facts are the initial ground facts in expression syntax.
	Facts []string `yaml:"facts"`

	// Rules are Horn rules applied when deriving the initial state and
	// when testing the goal.
	Rules []string `yaml:"rules,omitempty"`

	// Actions are the schema definitions.
	Actions []ActionConfig `yaml:"actions"`

	// Goal lists the query terms that must all hold in a goal state.
	Goal []string `yaml:"goal"`

	// Bounds optionally caps the search.
	Bounds *BoundsConfig `yaml:"bounds,omitempty"`
}

// ActionConfig defines one action schema.
type ActionConfig struct {
	Name    string   `yaml:"name"`
	Params  []string `yaml:"params,omitempty"`
	Precond []string `yaml:"precond,omitempty"`
	Neg     []string `yaml:"neg,omitempty"`
	Add     []string `yaml:"add,omitempty"`
	Del     []string `yaml:"del,omitempty"`
}

// BoundsConfig caps the search for this domain.
type BoundsConfig struct {
	// MaxDepth is the maximum plan length in actions.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// MaxNodes is the maximum number of expanded nodes.
	MaxNodes int `yaml:"max_nodes,omitempty"`

	// Deadline is a Go duration string (e.g. "30s", "1m").
	Deadline string `yaml:"deadline,omitempty"`
}

// Load reads and parses a domain file, then validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read domain file: %w", err)
	}
	return Parse(data)
}

// Parse parses domain YAML and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse domain YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the definition without compiling it: every expression
// must parse, every action schema must construct, and a name and goal must
// be present.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDomain)
	}
	if len(c.Goal) == 0 {
		return fmt.Errorf("%w: %s: empty goal", ErrInvalidDomain, c.Name)
	}
	if _, err := c.clauses(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
	}
	if _, err := c.goalTerms(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
	}
	if _, err := c.actions(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
	}
	if _, err := c.PlanningBounds(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
	}
	return nil
}

// Problem compiles the definition into a planning problem. The initial
// state is the forward-chaining closure of the facts under the rules; the
// goal seeds a KB with the candidate state plus the rules and asks each
// goal query.
func (c *Config) Problem() (*planning.Problem, error) {
	clauses, err := c.clauses()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
	}
	base := kb.New()
	for _, cl := range clauses {
		if err := base.Tell(cl); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
		}
	}
	initial, err := planning.NewState(base.Closure()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
	}

	actions, err := c.actions()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
	}

	goalTerms, err := c.goalTerms()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
	}
	var rules []kb.Clause
	for _, cl := range clauses {
		if !cl.IsFact() {
			rules = append(rules, cl)
		}
	}
	goal, err := planning.KBGoal(rules, goalTerms...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDomain, c.Name, err)
	}

	return planning.NewProblem(initial, actions, goal)
}

// PlanningBounds converts the bounds section, applying defaults for
// anything unset.
func (c *Config) PlanningBounds() (*planning.Bounds, error) {
	b := planning.NewBounds()
	if c.Bounds == nil {
		return b, nil
	}
	if c.Bounds.MaxDepth > 0 {
		b = b.WithMaxDepth(c.Bounds.MaxDepth)
	}
	if c.Bounds.MaxNodes > 0 {
		b = b.WithMaxNodes(c.Bounds.MaxNodes)
	}
	if c.Bounds.Deadline != "" {
		d, err := time.ParseDuration(c.Bounds.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline %q: %v", c.Bounds.Deadline, err)
		}
		b = b.WithDeadline(d)
	}
	return b, nil
}

func (c *Config) clauses() ([]kb.Clause, error) {
	var out []kb.Clause
	for _, s := range c.Facts {
		cl, err := kb.Parse(s)
		if err != nil {
			return nil, err
		}
		if !cl.IsFact() {
			return nil, fmt.Errorf("rule %q listed under facts", s)
		}
		out = append(out, cl)
	}
	for _, s := range c.Rules {
		cl, err := kb.Parse(s)
		if err != nil {
			return nil, err
		}
		if cl.IsFact() {
			return nil, fmt.Errorf("fact %q listed under rules", s)
		}
		out = append(out, cl)
	}
	for _, cl := range out {
		if err := cl.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Config) goalTerms() ([]logic.Term, error) {
	out := make([]logic.Term, len(c.Goal))
	for i, s := range c.Goal {
		t, err := logic.ParseTerm(s)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (c *Config) actions() ([]*planning.Action, error) {
	out := make([]*planning.Action, len(c.Actions))
	for i, ac := range c.Actions {
		spec := planning.ActionSpec{Name: ac.Name}
		for _, p := range ac.Params {
			t, err := logic.ParseTerm(p)
			if err != nil {
				return nil, err
			}
			spec.Params = append(spec.Params, t)
		}
		var err error
		if spec.PrecondPos, err = parseTermList(ac.Precond); err != nil {
			return nil, err
		}
		if spec.PrecondNeg, err = parseTermList(ac.Neg); err != nil {
			return nil, err
		}
		if spec.Add, err = parseTermList(ac.Add); err != nil {
			return nil, err
		}
		if spec.Del, err = parseTermList(ac.Del); err != nil {
			return nil, err
		}
		a, err := planning.NewAction(spec)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func parseTermList(raw []string) ([]logic.Term, error) {
	var out []logic.Term
	for _, s := range raw {
		t, err := logic.ParseTerm(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
