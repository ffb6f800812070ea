package planning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/planfirst/strips/logic"
)

// Sentinel errors for action construction and grounding.
var (
	// ErrInvalidAction indicates a malformed schema: empty name, a
	// syntactically contradictory precondition, or an effect variable no
	// positive precondition or parameter can ever bind.
	ErrInvalidAction = errors.New("planning: invalid action schema")

	// ErrUngroundedAction indicates that a substitution left schema
	// variables free. Partially bound actions are not executable.
	ErrUngroundedAction = errors.New("planning: action not fully grounded")
)

// ActionSpec describes an action schema for NewAction. Terms may contain
// variables; the same variable names refer to the same binding across all
// fields.
type ActionSpec struct {
	// Name identifies the schema, e.g. "Drive".
	Name string

	// Params is the declared argument list, e.g. [x, y] for Drive(x, y).
	// Constants are allowed for schemas fixed to specific objects.
	Params []logic.Term

	// PrecondPos lists facts that must hold in a state for the action to
	// fire. These also drive grounding: the planner binds schema variables
	// by matching the positive preconditions against state facts.
	PrecondPos []logic.Term

	// PrecondNeg lists facts that must be absent.
	PrecondNeg []logic.Term

	// Add lists facts the action makes true.
	Add []logic.Term

	// Del lists facts the action makes false.
	Del []logic.Term
}

// Action is an immutable STRIPS action schema. Construct with NewAction.
type Action struct {
	name       string
	params     []logic.Term
	precondPos []logic.Term
	precondNeg []logic.Term
	add        []logic.Term
	del        []logic.Term
}

// NewAction validates a schema and builds an Action.
//
// Validation is deliberately strict at construction rather than at search
// time: a syntactically identical term in both the positive and negative
// preconditions can never fire and is rejected, and every variable used in
// the negative preconditions or effects must appear among the parameters or
// positive preconditions, since nothing else can bind it during grounding.
func NewAction(spec ActionSpec) (*Action, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidAction)
	}
	for _, pos := range spec.PrecondPos {
		for _, neg := range spec.PrecondNeg {
			if pos.Equal(neg) {
				return nil, fmt.Errorf("%w: %s: precondition %s is required both present and absent",
					ErrInvalidAction, spec.Name, pos)
			}
		}
	}

	bindable := make(map[string]struct{})
	for _, v := range logic.VarsIn(spec.Params) {
		bindable[v.Name] = struct{}{}
	}
	for _, v := range logic.VarsIn(spec.PrecondPos) {
		bindable[v.Name] = struct{}{}
	}
	for _, field := range []struct {
		name  string
		terms []logic.Term
	}{
		{"negative precondition", spec.PrecondNeg},
		{"add effect", spec.Add},
		{"delete effect", spec.Del},
	} {
		for _, v := range logic.VarsIn(field.terms) {
			if _, ok := bindable[v.Name]; !ok {
				return nil, fmt.Errorf("%w: %s: %s variable %s is not bound by parameters or positive preconditions",
					ErrInvalidAction, spec.Name, field.name, v)
			}
		}
	}

	return &Action{
		name:       spec.Name,
		params:     copyTerms(spec.Params),
		precondPos: copyTerms(spec.PrecondPos),
		precondNeg: copyTerms(spec.PrecondNeg),
		add:        copyTerms(spec.Add),
		del:        copyTerms(spec.Del),
	}, nil
}

// MustNewAction is NewAction for static schemas; it panics on error.
func MustNewAction(spec ActionSpec) *Action {
	a, err := NewAction(spec)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the schema name.
func (a *Action) Name() string { return a.name }

// Params returns a copy of the declared parameter list.
func (a *Action) Params() []logic.Term { return copyTerms(a.params) }

// PrecondPos returns a copy of the positive preconditions.
func (a *Action) PrecondPos() []logic.Term { return copyTerms(a.precondPos) }

// PrecondNeg returns a copy of the negative preconditions.
func (a *Action) PrecondNeg() []logic.Term { return copyTerms(a.precondNeg) }

// AddEffects returns a copy of the add list.
func (a *Action) AddEffects() []logic.Term { return copyTerms(a.add) }

// DelEffects returns a copy of the delete list.
func (a *Action) DelEffects() []logic.Term { return copyTerms(a.del) }

// Vars returns the distinct variables of the schema in first-occurrence
// order across parameters, preconditions, and effects.
func (a *Action) Vars() []logic.Var {
	all := make([]logic.Term, 0, len(a.params)+len(a.precondPos)+len(a.precondNeg)+len(a.add)+len(a.del))
	all = append(all, a.params...)
	all = append(all, a.precondPos...)
	all = append(all, a.precondNeg...)
	all = append(all, a.add...)
	all = append(all, a.del...)
	return logic.VarsIn(all)
}

// Ground instantiates the schema with the given bindings. Every variable
// must become bound to a ground term; otherwise ErrUngroundedAction is
// returned, since a partially bound action is not executable.
func (a *Action) Ground(s logic.Subst) (*GroundAction, error) {
	g := &GroundAction{
		name:       a.name,
		args:       s.ApplyAll(a.params),
		precondPos: s.ApplyAll(a.precondPos),
		precondNeg: s.ApplyAll(a.precondNeg),
		add:        s.ApplyAll(a.add),
		del:        s.ApplyAll(a.del),
	}
	for _, group := range [][]logic.Term{g.args, g.precondPos, g.precondNeg, g.add, g.del} {
		for _, t := range group {
			if !t.Ground() {
				return nil, fmt.Errorf("%w: %s: %s remains free", ErrUngroundedAction, a.name, t)
			}
		}
	}
	return g, nil
}

// String renders the schema head, e.g. "Drive(x, y)".
func (a *Action) String() string {
	return renderHead(a.name, a.params)
}

// GroundAction is a fully instantiated action. Grounded instances are
// ephemeral: the planner creates them during node expansion and discards
// them once applied or rejected.
type GroundAction struct {
	name       string
	args       []logic.Term
	precondPos []logic.Term
	precondNeg []logic.Term
	add        []logic.Term
	del        []logic.Term
}

// Name returns the schema name this instance was grounded from.
func (g *GroundAction) Name() string { return g.name }

// Args returns a copy of the instantiated argument list.
func (g *GroundAction) Args() []logic.Term { return copyTerms(g.args) }

// Applicable reports whether the action can fire in the state: every
// positive precondition present, no negative precondition present. Pure
// set containment, no inference.
func (g *GroundAction) Applicable(s State) bool {
	return s.ContainsAll(g.precondPos) && !s.ContainsAny(g.precondNeg)
}

// Apply returns the successor state (s \ del) ∪ add. Both effect lists are
// evaluated against the pre-state, and a fact in both lists survives:
// addition wins. Apply does not re-check applicability.
func (g *GroundAction) Apply(s State) State {
	return s.update(g.add, g.del)
}

// String renders the instance, e.g. "Fly(Sibiu, Bucharest)". Two ground
// instances of the same schema with the same arguments render identically,
// so the string doubles as a deduplication key.
func (g *GroundAction) String() string {
	return renderHead(g.name, g.args)
}

func renderHead(name string, args []logic.Term) string {
	if len(args) == 0 {
		return name
	}
	parts := make([]string, len(args))
	for i, t := range args {
		parts[i] = t.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

func copyTerms(terms []logic.Term) []logic.Term {
	out := make([]logic.Term, len(terms))
	copy(out, terms)
	return out
}
