package kb

import (
	"io"
	"log/slog"
	"sync"

	"github.com/planfirst/strips/logic"
)

// KB is a mutable, order-preserving knowledge base. The zero value is not
// usable; construct with New. A KB owns its clauses exclusively: callers
// interact only through Tell, Retract, and the query methods.
//
// Tell and Retract serialize against concurrent Ask calls; Ask itself is
// read-only and may run concurrently with other asks.
type KB struct {
	mu      sync.RWMutex
	clauses []Clause
	logger  *slog.Logger
}

// Option configures a KB.
type Option func(*KB)

// WithLogger sets the logger used for inference debug traces. If not
// provided, traces are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(kb *KB) {
		kb.logger = logger
	}
}

// New creates an empty knowledge base.
func New(opts ...Option) *KB {
	kb := &KB{}
	for _, opt := range opts {
		opt(kb)
	}
	if kb.logger == nil {
		kb.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return kb
}

// Tell appends a clause after validating it. Facts must be ground and rules
// must be safe; see Clause.Validate for the taxonomy.
func (kb *KB) Tell(c Clause) error {
	if err := c.Validate(); err != nil {
		return err
	}
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.clauses = append(kb.clauses, c)
	return nil
}

// TellAll appends clauses in order, stopping at the first invalid one.
func (kb *KB) TellAll(clauses ...Clause) error {
	for _, c := range clauses {
		if err := kb.Tell(c); err != nil {
			return err
		}
	}
	return nil
}

// Retract removes the first clause structurally equal to c. It is a no-op
// if no such clause exists.
func (kb *KB) Retract(c Clause) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	for i := range kb.clauses {
		if kb.clauses[i].Equal(c) {
			kb.clauses = append(kb.clauses[:i], kb.clauses[i+1:]...)
			return
		}
	}
}

// Len returns the number of asserted clauses.
func (kb *KB) Len() int {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return len(kb.clauses)
}

// Clauses returns a copy of the asserted clauses in insertion order.
func (kb *KB) Clauses() []Clause {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	out := make([]Clause, len(kb.clauses))
	copy(out, kb.clauses)
	return out
}

// Facts returns the asserted (not derived) facts in insertion order.
func (kb *KB) Facts() []logic.Term {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	var out []logic.Term
	for _, c := range kb.clauses {
		if c.IsFact() {
			out = append(out, c.Head)
		}
	}
	return out
}

// Ask answers a query by forward chaining. It returns the substitution that
// unifies the query with an asserted or derived fact, projected onto the
// query's variables, or ok=false when the fixed point is reached without a
// match. A ground query that holds answers with an empty substitution.
//
// Ask does not mutate the KB: facts derived while answering are discarded,
// which makes Ask idempotent.
func (kb *KB) Ask(query logic.Term) (logic.Subst, bool) {
	facts, rules := kb.snapshot()
	c := newChase(facts, rules, kb.logger)
	return c.run(query)
}

// AskAll returns every substitution (projected onto the query's variables)
// under which the query holds in the forward-chaining closure. The result
// order follows fact derivation order and is deterministic for a given KB.
func (kb *KB) AskAll(query logic.Term) []logic.Subst {
	facts, rules := kb.snapshot()
	c := newChase(facts, rules, kb.logger)
	c.close()

	queryVars := logic.Vars(query)
	var out []logic.Subst
	seen := make(map[string]struct{})
	for _, f := range c.order {
		s, err := logic.Unify(query, f, logic.Subst{})
		if err != nil {
			continue
		}
		p := project(s, queryVars)
		key := p.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Closure returns every fact in the forward-chaining fixed point: the
// asserted facts plus everything derivable from them, in derivation order.
func (kb *KB) Closure() []logic.Term {
	facts, rules := kb.snapshot()
	c := newChase(facts, rules, kb.logger)
	c.close()
	return c.order
}

func (kb *KB) snapshot() (facts []logic.Term, rules []Clause) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	for _, c := range kb.clauses {
		if c.IsFact() {
			facts = append(facts, c.Head)
		} else {
			rules = append(rules, c)
		}
	}
	return facts, rules
}

// chase is one forward-chaining run over a snapshot of the KB.
type chase struct {
	rules  []Clause
	known  map[string]struct{}
	order  []logic.Term
	logger *slog.Logger
}

func newChase(facts []logic.Term, rules []Clause, logger *slog.Logger) *chase {
	c := &chase{
		rules:  rules,
		known:  make(map[string]struct{}, len(facts)),
		logger: logger,
	}
	for _, f := range facts {
		c.add(f)
	}
	return c
}

func (c *chase) add(f logic.Term) bool {
	key := f.String()
	if _, dup := c.known[key]; dup {
		return false
	}
	c.known[key] = struct{}{}
	c.order = append(c.order, f)
	return true
}

// run chains until the query unifies against the accumulated fact set or
// the fixed point is reached, whichever comes first.
func (c *chase) run(query logic.Term) (logic.Subst, bool) {
	queryVars := logic.Vars(query)

	if s, ok := c.match(query, c.order); ok {
		return project(s, queryVars), true
	}

	for {
		start := len(c.order)
		for _, rule := range c.rules {
			for _, s := range matchConjunction(rule.Body, c.order, logic.Subst{}) {
				derived := s.Apply(rule.Head)
				if !derived.Ground() {
					// Unreachable: Tell rejects unsafe rules and
					// non-ground facts, so every derivation over
					// ground facts is ground.
					continue
				}
				if !c.add(derived) {
					continue
				}
				c.logger.Debug("derived fact", "fact", derived.String(), "rule", rule.String())
				if qs, err := logic.Unify(query, derived, logic.Subst{}); err == nil {
					return project(qs, queryVars), true
				}
			}
		}
		if len(c.order) == start {
			return nil, false
		}
	}
}

// close chains to the full fixed point without a query.
func (c *chase) close() {
	for {
		start := len(c.order)
		for _, rule := range c.rules {
			for _, s := range matchConjunction(rule.Body, c.order, logic.Subst{}) {
				derived := s.Apply(rule.Head)
				if derived.Ground() {
					c.add(derived)
				}
			}
		}
		if len(c.order) == start {
			return
		}
	}
}

func (c *chase) match(query logic.Term, facts []logic.Term) (logic.Subst, bool) {
	for _, f := range facts {
		if s, err := logic.Unify(query, f, logic.Subst{}); err == nil {
			return s, true
		}
	}
	return nil, false
}

// matchConjunction enumerates every substitution under which each term of
// the conjunction unifies with some fact, threading bindings left to right.
func matchConjunction(conj []logic.Term, facts []logic.Term, s logic.Subst) []logic.Subst {
	if len(conj) == 0 {
		return []logic.Subst{s}
	}
	var out []logic.Subst
	for _, f := range facts {
		// Facts are ground, so the only failure mode here is a plain
		// mismatch; an occurs-check violation cannot arise.
		next, err := logic.Unify(conj[0], f, s)
		if err != nil {
			continue
		}
		out = append(out, matchConjunction(conj[1:], facts, next)...)
	}
	return out
}

func project(s logic.Subst, vars []logic.Var) logic.Subst {
	out := logic.Subst{}
	for _, v := range vars {
		out[v.Name] = s.Apply(v)
	}
	return out
}
