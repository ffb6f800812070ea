package store

import (
	"context"
	"errors"
	"time"

	"github.com/planfirst/strips/logic"
)

// Common errors returned by store operations.
var (
	// ErrNotFound is returned when no record exists under the key.
	ErrNotFound = errors.New("store: record not found")

	// ErrInvalidKey is returned when a key is empty.
	ErrInvalidKey = errors.New("store: invalid key")

	// ErrStorageFailed is returned when the backend fails; the underlying
	// cause is wrapped.
	ErrStorageFailed = errors.New("store: storage operation failed")
)

// PlanRecord is the persisted form of a solved plan. Steps carry the
// canonical rendering of each ground action, e.g. "Fly(Sibiu, Bucharest)",
// so a record is readable on its own and each step can be re-parsed as a
// term with logic.ParseTerm.
type PlanRecord struct {
	// ID is the search run that produced the plan.
	ID string `json:"id"`

	// Steps is the ordered action sequence.
	Steps []string `json:"steps"`

	// NodesExpanded counts states expanded by the producing search.
	NodesExpanded int `json:"nodes_expanded"`

	// Duration is how long the producing search took.
	Duration time.Duration `json:"duration"`

	// CreatedAt is when the record was stored.
	CreatedAt time.Time `json:"created_at"`
}

// StepTerms re-parses the steps into terms, preserving order.
func (r PlanRecord) StepTerms() ([]logic.Term, error) {
	out := make([]logic.Term, len(r.Steps))
	for i, s := range r.Steps {
		t, err := logic.ParseTerm(s)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Store persists plans and fact sets under caller-chosen keys.
//
// Implementations must be safe for concurrent use. Load operations return
// ErrNotFound when the key is absent and ErrInvalidKey when it is empty.
type Store interface {
	// SavePlan stores a plan record, replacing any existing record under
	// the key.
	SavePlan(ctx context.Context, key string, rec PlanRecord) error

	// LoadPlan retrieves a plan record.
	LoadPlan(ctx context.Context, key string) (*PlanRecord, error)

	// SaveFacts stores a fact set in canonical text form.
	SaveFacts(ctx context.Context, key string, facts []logic.Term) error

	// LoadFacts retrieves a fact set, re-parsed into terms.
	LoadFacts(ctx context.Context, key string) ([]logic.Term, error)

	// Close releases backend resources.
	Close() error
}

func factStrings(facts []logic.Term) []string {
	out := make([]string, len(facts))
	for i, f := range facts {
		out[i] = f.String()
	}
	return out
}

func parseFacts(raw []string) ([]logic.Term, error) {
	out := make([]logic.Term, len(raw))
	for i, s := range raw {
		t, err := logic.ParseTerm(s)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
