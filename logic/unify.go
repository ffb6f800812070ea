package logic

import (
	"errors"
	"fmt"
)

// ErrNoUnifier is returned when two terms cannot be made syntactically
// equal. This is a normal negative result, not a fault: inference and
// search loops consume it as control flow.
var ErrNoUnifier = errors.New("logic: no unifier")

// Unify computes a substitution extending s that makes a and b
// syntactically equal, or fails with ErrNoUnifier. A binding that would
// create a cyclic term fails with ErrOccursCheck instead, which callers
// should surface rather than swallow.
//
// Unification is symmetric in outcome and idempotent: applying the
// resulting substitution to both inputs yields structurally equal terms.
func Unify(a, b Term, s Subst) (Subst, error) {
	if s == nil {
		s = Subst{}
	}
	a = s.Resolve(a)
	b = s.Resolve(b)

	if av, ok := a.(Var); ok {
		if bv, ok := b.(Var); ok && bv.Name == av.Name {
			return s, nil
		}
		return s.Bind(av, b)
	}
	if bv, ok := b.(Var); ok {
		return s.Bind(bv, a)
	}

	switch at := a.(type) {
	case Const:
		if bt, ok := b.(Const); ok && bt.Name == at.Name {
			return s, nil
		}
		return nil, fmt.Errorf("%w: %s vs %s", ErrNoUnifier, a, b)
	case Op:
		bt, ok := b.(Op)
		if !ok || bt.Symbol != at.Symbol || len(bt.Args) != len(at.Args) {
			return nil, fmt.Errorf("%w: %s vs %s", ErrNoUnifier, a, b)
		}
		var err error
		for i := range at.Args {
			s, err = Unify(at.Args[i], bt.Args[i], s)
			if err != nil {
				return nil, err
			}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %s vs %s", ErrNoUnifier, a, b)
	}
}

// UnifyAll unifies the paired terms left to right, threading the
// substitution through each step. The slices must have equal length.
func UnifyAll(as, bs []Term, s Subst) (Subst, error) {
	if len(as) != len(bs) {
		return nil, fmt.Errorf("%w: arity %d vs %d", ErrNoUnifier, len(as), len(bs))
	}
	var err error
	for i := range as {
		s, err = Unify(as[i], bs[i], s)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}
