package planning

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/planfirst/strips/logic"
)

// ErrNotGround indicates a term with free variables where a ground term is
// required: state facts and applied effects must be fully instantiated.
var ErrNotGround = errors.New("planning: term is not ground")

// State is an immutable set of ground facts describing a world under the
// closed-world assumption: any fact not present is false. All operations
// return new states and never mutate the receiver, so states can be shared
// freely across search frontiers and goroutines.
type State struct {
	facts map[string]logic.Term
}

// NewState builds a state from ground facts. Duplicates collapse.
func NewState(facts ...logic.Term) (State, error) {
	m := make(map[string]logic.Term, len(facts))
	for _, f := range facts {
		if !f.Ground() {
			return State{}, fmt.Errorf("%w: %s", ErrNotGround, f)
		}
		m[f.String()] = f
	}
	return State{facts: m}, nil
}

// MustNewState is NewState for static fact lists; it panics on error.
func MustNewState(facts ...logic.Term) State {
	s, err := NewState(facts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains reports whether the fact is present in the state.
func (s State) Contains(fact logic.Term) bool {
	_, ok := s.facts[fact.String()]
	return ok
}

// ContainsAll reports whether every fact is present.
func (s State) ContainsAll(facts []logic.Term) bool {
	for _, f := range facts {
		if !s.Contains(f) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one fact is present.
func (s State) ContainsAny(facts []logic.Term) bool {
	for _, f := range facts {
		if s.Contains(f) {
			return true
		}
	}
	return false
}

// Len returns the number of facts.
func (s State) Len() int { return len(s.facts) }

// Facts returns the facts sorted by their canonical string, so iteration
// over a state is deterministic.
func (s State) Facts() []logic.Term {
	keys := make([]string, 0, len(s.facts))
	for k := range s.facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]logic.Term, len(keys))
	for i, k := range keys {
		out[i] = s.facts[k]
	}
	return out
}

// FactStrings returns the canonical string of every fact, sorted.
func (s State) FactStrings() []string {
	keys := make([]string, 0, len(s.facts))
	for k := range s.facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Key returns a canonical identity for the state: two states have the same
// key iff they contain the same facts. Used for visited-set deduplication.
func (s State) Key() string {
	return strings.Join(s.FactStrings(), "|")
}

// Equal reports whether two states contain the same facts.
func (s State) Equal(other State) bool {
	if len(s.facts) != len(other.facts) {
		return false
	}
	for k := range s.facts {
		if _, ok := other.facts[k]; !ok {
			return false
		}
	}
	return true
}

// update returns the successor state (s \ del) ∪ add. Deletions and
// additions are both computed from the receiver, never cascaded, and a
// fact in both lists ends up present.
func (s State) update(add, del []logic.Term) State {
	m := make(map[string]logic.Term, len(s.facts)+len(add))
	for k, v := range s.facts {
		m[k] = v
	}
	for _, f := range del {
		delete(m, f.String())
	}
	for _, f := range add {
		m[f.String()] = f
	}
	return State{facts: m}
}

// String renders the state as {fact, fact, ...} in canonical order.
func (s State) String() string {
	return "{" + strings.Join(s.FactStrings(), ", ") + "}"
}
