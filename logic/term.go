package logic

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Term is a symbolic expression: a variable, a constant, or a compound
// operator term. Terms are immutable and compared structurally.
type Term interface {
	fmt.Stringer

	// Equal reports whether this term is structurally equal to other.
	Equal(other Term) bool

	// Ground reports whether the term contains no variables.
	Ground() bool

	// collectVars appends the term's variables into the accumulator,
	// deduplicated by name.
	collectVars(seen map[string]struct{}, acc []Var) []Var

	isTerm()
}

// Var is a logic variable. By convention variable names start with a lower
// case letter (e.g. x, y, loc).
type Var struct {
	Name string
}

// Const is an atomic constant symbol (e.g. Sibiu, Bucharest).
type Const struct {
	Name string
}

// Op is a compound term: a predicate or function symbol applied to an
// ordered argument list (e.g. Connected(Sibiu, Fagaras)). The argument
// slice must not be mutated after construction.
type Op struct {
	Symbol string
	Args   []Term
}

// IsVarName reports whether name denotes a variable under the naming
// convention: the first rune is a lower case letter.
func IsVarName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(r)
}

// Atom builds a Var or a Const from a bare symbol, classified by the
// naming convention. It panics on an empty name, which is always a
// programming error.
func Atom(name string) Term {
	if name == "" {
		panic("logic: empty atom name")
	}
	if IsVarName(name) {
		return Var{Name: name}
	}
	return Const{Name: name}
}

// NewVar builds a variable. It panics if the name does not follow the
// variable naming convention, since a miscased variable silently becomes
// a constant and is one of the hardest bugs to spot in a rule set.
func NewVar(name string) Var {
	if name == "" || !IsVarName(name) {
		panic(fmt.Sprintf("logic: invalid variable name %q", name))
	}
	return Var{Name: name}
}

// NewConst builds a constant. It panics if the name follows the variable
// naming convention.
func NewConst(name string) Const {
	if name == "" || IsVarName(name) {
		panic(fmt.Sprintf("logic: invalid constant name %q", name))
	}
	return Const{Name: name}
}

// NewOp builds a compound term from a symbol and its arguments.
func NewOp(symbol string, args ...Term) Op {
	if symbol == "" {
		panic("logic: empty operator symbol")
	}
	copied := make([]Term, len(args))
	copy(copied, args)
	return Op{Symbol: symbol, Args: copied}
}

// Vars returns the distinct variables occurring in t, in first-occurrence
// order.
func Vars(t Term) []Var {
	return t.collectVars(make(map[string]struct{}), nil)
}

// VarsIn returns the distinct variables occurring across a sequence of
// terms, in first-occurrence order.
func VarsIn(terms []Term) []Var {
	seen := make(map[string]struct{})
	var acc []Var
	for _, t := range terms {
		acc = t.collectVars(seen, acc)
	}
	return acc
}

// Constants returns the distinct constant names occurring in t, sorted.
func Constants(t Term) []string {
	seen := make(map[string]struct{})
	collectConsts(t, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectConsts(t Term, seen map[string]struct{}) {
	switch v := t.(type) {
	case Const:
		seen[v.Name] = struct{}{}
	case Op:
		for _, arg := range v.Args {
			collectConsts(arg, seen)
		}
	}
}

func (v Var) String() string { return v.Name }
func (v Var) Equal(other Term) bool {
	o, ok := other.(Var)
	return ok && o.Name == v.Name
}
func (v Var) Ground() bool { return false }
func (v Var) collectVars(seen map[string]struct{}, acc []Var) []Var {
	if _, dup := seen[v.Name]; dup {
		return acc
	}
	seen[v.Name] = struct{}{}
	return append(acc, v)
}
func (Var) isTerm() {}

func (c Const) String() string { return c.Name }
func (c Const) Equal(other Term) bool {
	o, ok := other.(Const)
	return ok && o.Name == c.Name
}
func (c Const) Ground() bool                                          { return true }
func (c Const) collectVars(seen map[string]struct{}, acc []Var) []Var { return acc }
func (Const) isTerm()                                                 {}

// String renders the term in the conventional syntax, e.g.
// "Connected(Sibiu, Fagaras)". The rendering is canonical: two terms are
// structurally equal iff their strings are equal, so it doubles as a map key.
func (o Op) String() string {
	var sb strings.Builder
	sb.WriteString(o.Symbol)
	sb.WriteByte('(')
	for i, arg := range o.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (o Op) Equal(other Term) bool {
	oo, ok := other.(Op)
	if !ok || oo.Symbol != o.Symbol || len(oo.Args) != len(o.Args) {
		return false
	}
	for i := range o.Args {
		if !o.Args[i].Equal(oo.Args[i]) {
			return false
		}
	}
	return true
}

func (o Op) Ground() bool {
	for _, arg := range o.Args {
		if !arg.Ground() {
			return false
		}
	}
	return true
}

func (o Op) collectVars(seen map[string]struct{}, acc []Var) []Var {
	for _, arg := range o.Args {
		acc = arg.collectVars(seen, acc)
	}
	return acc
}

func (Op) isTerm() {}
