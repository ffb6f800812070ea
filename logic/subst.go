package logic

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrOccursCheck is returned when a binding would make a variable contain
// itself, transitively, under the current substitution. Such bindings are
// unsound and indicate a defective rule set rather than a plain mismatch.
var ErrOccursCheck = errors.New("logic: occurs check violation")

// Subst maps variable names to terms. The zero value is not usable; use
// Subst{} or NewSubst. Substitutions are treated as immutable values:
// Bind returns an extended copy and never mutates the receiver.
type Subst map[string]Term

// NewSubst returns an empty substitution.
func NewSubst() Subst { return Subst{} }

// Clone returns a copy of the substitution.
func (s Subst) Clone() Subst {
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Lookup returns the binding for v, if any.
func (s Subst) Lookup(v Var) (Term, bool) {
	t, ok := s[v.Name]
	return t, ok
}

// Bind returns a new substitution extending s with v -> t. It fails with
// ErrOccursCheck if v occurs in t under the current bindings.
func (s Subst) Bind(v Var, t Term) (Subst, error) {
	if occurs(v, t, s) {
		return nil, fmt.Errorf("%w: %s in %s", ErrOccursCheck, v, t)
	}
	out := s.Clone()
	out[v.Name] = t
	return out, nil
}

// Resolve follows variable bindings until it reaches an unbound variable or
// a non-variable term. It does not descend into compound arguments.
func (s Subst) Resolve(t Term) Term {
	for {
		v, ok := t.(Var)
		if !ok {
			return t
		}
		bound, ok := s[v.Name]
		if !ok {
			return t
		}
		t = bound
	}
}

// Apply rewrites t, replacing every bound variable with its binding,
// recursively. Unbound variables are left in place.
func (s Subst) Apply(t Term) Term {
	switch v := t.(type) {
	case Var:
		bound, ok := s[v.Name]
		if !ok {
			return v
		}
		return s.Apply(bound)
	case Const:
		return v
	case Op:
		args := make([]Term, len(v.Args))
		for i, arg := range v.Args {
			args[i] = s.Apply(arg)
		}
		return Op{Symbol: v.Symbol, Args: args}
	default:
		return t
	}
}

// ApplyAll rewrites each term in the slice.
func (s Subst) ApplyAll(terms []Term) []Term {
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = s.Apply(t)
	}
	return out
}

// String renders the substitution as {x: Sibiu, y: Fagaras}, with keys
// sorted for deterministic output.
func (s Subst) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(s[k].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// occurs reports whether v occurs in t under the bindings in s.
func occurs(v Var, t Term, s Subst) bool {
	switch o := t.(type) {
	case Var:
		if o.Name == v.Name {
			return true
		}
		if bound, ok := s[o.Name]; ok {
			return occurs(v, bound, s)
		}
		return false
	case Op:
		for _, arg := range o.Args {
			if occurs(v, arg, s) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
