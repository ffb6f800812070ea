package kb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/planfirst/strips/logic"
)

// Sentinel errors for clause validation.
var (
	// ErrUnsafeRule indicates a rule whose consequent mentions a variable
	// that no antecedent binds. Firing such a rule would require inventing
	// a fresh constant, which breaks the termination guarantee of forward
	// chaining, so the rule is rejected at Tell time.
	ErrUnsafeRule = errors.New("kb: unsafe rule: consequent variable unbound in antecedents")

	// ErrNotGroundFact indicates a bare fact containing variables. Facts
	// describe a concrete world under the closed-world assumption and must
	// be fully instantiated.
	ErrNotGroundFact = errors.New("kb: fact is not ground")

	// ErrInvalidClause indicates a structurally malformed clause, such as a
	// nil consequent or a bare variable used as a fact or consequent.
	ErrInvalidClause = errors.New("kb: invalid clause")
)

// Clause is a Horn clause: a consequent with a (possibly empty) conjunction
// of antecedents. A clause with no antecedents is a fact.
type Clause struct {
	// Head is the consequent.
	Head logic.Term

	// Body is the antecedent conjunction. Order is preserved for
	// deterministic inference traces but carries no logical meaning.
	Body []logic.Term
}

// Fact builds a clause with no antecedents.
func Fact(head logic.Term) Clause {
	return Clause{Head: head}
}

// Rule builds an implication clause: body1 & body2 & ... ==> head.
func Rule(head logic.Term, body ...logic.Term) Clause {
	copied := make([]logic.Term, len(body))
	copy(copied, body)
	return Clause{Head: head, Body: copied}
}

// Parse parses a clause in the conventional syntax. A fact is a single
// term; a rule joins an antecedent conjunction and a consequent with "==>":
//
//	Connected(Pitesti, Rimnicu)
//	Connected(x, y) ==> Connected(y, x)
//	Connected(x, y) & Connected(y, z) ==> Reachable(x, z)
func Parse(input string) (Clause, error) {
	lhs, rhs, found := strings.Cut(input, "==>")
	if !found {
		head, err := logic.ParseTerm(input)
		if err != nil {
			return Clause{}, err
		}
		return Fact(head), nil
	}
	body, err := logic.ParseConjunction(lhs)
	if err != nil {
		return Clause{}, err
	}
	head, err := logic.ParseTerm(rhs)
	if err != nil {
		return Clause{}, err
	}
	return Rule(head, body...), nil
}

// MustParse is Parse for static clauses; it panics on error. Intended for
// tests and package-level tables.
func MustParse(input string) Clause {
	c, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return c
}

// IsFact reports whether the clause has no antecedents.
func (c Clause) IsFact() bool { return len(c.Body) == 0 }

// Validate checks the clause invariants enforced by Tell: the head must be
// a constant or compound term, facts must be ground, and rules must be
// safe (every head variable bound by the body).
func (c Clause) Validate() error {
	if c.Head == nil {
		return fmt.Errorf("%w: nil consequent", ErrInvalidClause)
	}
	if _, ok := c.Head.(logic.Var); ok {
		return fmt.Errorf("%w: bare variable %s as consequent", ErrInvalidClause, c.Head)
	}
	if c.IsFact() {
		if !c.Head.Ground() {
			return fmt.Errorf("%w: %s", ErrNotGroundFact, c.Head)
		}
		return nil
	}
	bound := make(map[string]struct{})
	for _, v := range logic.VarsIn(c.Body) {
		bound[v.Name] = struct{}{}
	}
	for _, v := range logic.Vars(c.Head) {
		if _, ok := bound[v.Name]; !ok {
			return fmt.Errorf("%w: %s in %s", ErrUnsafeRule, v, c)
		}
	}
	return nil
}

// Equal reports structural equality of two clauses, including antecedent
// order.
func (c Clause) Equal(other Clause) bool {
	if (c.Head == nil) != (other.Head == nil) {
		return false
	}
	if c.Head != nil && !c.Head.Equal(other.Head) {
		return false
	}
	if len(c.Body) != len(other.Body) {
		return false
	}
	for i := range c.Body {
		if !c.Body[i].Equal(other.Body[i]) {
			return false
		}
	}
	return true
}

// String renders the clause in the syntax accepted by Parse.
func (c Clause) String() string {
	if c.IsFact() {
		return c.Head.String()
	}
	parts := make([]string, len(c.Body))
	for i, t := range c.Body {
		parts[i] = t.String()
	}
	return strings.Join(parts, " & ") + " ==> " + c.Head.String()
}
