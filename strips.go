package strips

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/planfirst/strips/domain"
	"github.com/planfirst/strips/kb"
	"github.com/planfirst/strips/logic"
	"github.com/planfirst/strips/planning"
	"github.com/planfirst/strips/store"
)

// PDDL builds a planning problem from expression text: clauses are the
// initial facts and rules ("A & B ==> C" syntax), actions are the schemas,
// and goal lists the queries that must all hold in a goal state.
//
// The initial state is the forward-chaining closure of the facts under the
// rules; the goal test seeds a knowledge base with the candidate state plus
// the rules and asks each query.
//
//	prob, err := strips.PDDL(
//		[]string{
//			"Connected(Sibiu, Fagaras)",
//			"Connected(Fagaras, Bucharest)",
//			"At(Sibiu)",
//			"Connected(x, y) ==> Connected(y, x)",
//		},
//		[]*planning.Action{drive},
//		"At(Bucharest)",
//	)
func PDDL(clauses []string, actions []*planning.Action, goal ...string) (*planning.Problem, error) {
	const op = "PDDL"

	base := kb.New()
	var rules []kb.Clause
	for _, raw := range clauses {
		cl, err := kb.Parse(raw)
		if err != nil {
			return nil, NewValidationError(op, err)
		}
		if err := base.Tell(cl); err != nil {
			return nil, NewValidationError(op, err)
		}
		if !cl.IsFact() {
			rules = append(rules, cl)
		}
	}

	initial, err := planning.NewState(base.Closure()...)
	if err != nil {
		return nil, NewValidationError(op, err)
	}

	queries := make([]logic.Term, len(goal))
	for i, raw := range goal {
		t, err := logic.ParseTerm(raw)
		if err != nil {
			return nil, NewValidationError(op, err)
		}
		queries[i] = t
	}
	goalFn, err := planning.KBGoal(rules, queries...)
	if err != nil {
		return nil, NewValidationError(op, err)
	}

	prob, err := planning.NewProblem(initial, actions, goalFn)
	if err != nil {
		return nil, NewValidationError(op, err)
	}
	return prob, nil
}

// Solver ties the planner to optional persistence and default bounds. The
// zero set of options gives a solver that searches with planner defaults
// and keeps nothing.
type Solver struct {
	logger  *slog.Logger
	planner *planning.Planner
	store   store.Store
	bounds  *planning.Bounds
}

// NewSolver creates a solver from the provided options.
func NewSolver(opts ...SolverOption) (*Solver, error) {
	cfg := solverConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		bounds: planning.NewBounds(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var popts []planning.PlannerOption
	popts = append(popts, planning.WithLogger(cfg.logger))
	if cfg.tracer != nil {
		popts = append(popts, planning.WithTracer(cfg.tracer))
	}
	if cfg.meter != nil {
		popts = append(popts, planning.WithMeter(cfg.meter))
	}
	planner, err := planning.NewPlanner(popts...)
	if err != nil {
		return nil, NewConfigurationError("NewSolver", err)
	}

	return &Solver{
		logger:  cfg.logger,
		planner: planner,
		store:   cfg.store,
		bounds:  cfg.bounds,
	}, nil
}

// Solve searches for a plan using the solver's default bounds. When a store
// is configured, the solved plan is persisted under name; persistence
// failures are logged and do not fail the solve.
func (s *Solver) Solve(ctx context.Context, name string, prob *planning.Problem) (*planning.Plan, error) {
	return s.solve(ctx, name, prob, s.bounds)
}

// SolveDomain compiles a loaded domain definition and solves it, using the
// domain's own bounds and persisting under the domain name.
func (s *Solver) SolveDomain(ctx context.Context, cfg *domain.Config) (*planning.Plan, error) {
	const op = "Solver.SolveDomain"

	prob, err := cfg.Problem()
	if err != nil {
		return nil, NewConfigurationError(op, err)
	}
	bounds, err := cfg.PlanningBounds()
	if err != nil {
		return nil, NewConfigurationError(op, err)
	}
	return s.solve(ctx, cfg.Name, prob, bounds)
}

// LoadPlan retrieves a previously persisted plan record. It requires a
// configured store.
func (s *Solver) LoadPlan(ctx context.Context, name string) (*store.PlanRecord, error) {
	const op = "Solver.LoadPlan"

	if s.store == nil {
		return nil, NewConfigurationError(op, errors.New("no store configured"))
	}
	rec, err := s.store.LoadPlan(ctx, name)
	if err != nil {
		return nil, NewStorageError(op, err)
	}
	return rec, nil
}

// Close releases the configured store, if any.
func (s *Solver) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

func (s *Solver) solve(ctx context.Context, name string, prob *planning.Problem, bounds *planning.Bounds) (*planning.Plan, error) {
	const op = "Solver.Solve"

	plan, err := s.planner.Plan(ctx, prob, bounds)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, NewTimeoutError(op, err)
		}
		return nil, NewSearchError(op, err).WithContext(map[string]any{
			"name": name,
		})
	}

	if s.store != nil && name != "" {
		rec := store.PlanRecord{
			ID:            plan.ID,
			Steps:         plan.StepStrings(),
			NodesExpanded: plan.NodesExpanded,
			Duration:      plan.Duration,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.store.SavePlan(ctx, name, rec); err != nil {
			s.logger.Warn("failed to persist plan",
				"name", name,
				"plan_id", plan.ID,
				"error", err)
		}
	}

	return plan, nil
}
