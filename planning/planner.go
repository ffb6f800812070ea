package planning

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/planfirst/strips/logic"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ErrPlanNotFound is returned when the search exhausts its bounds without
// reaching a goal state. This is a normal, non-fatal outcome: the goal may
// be unreachable, or merely unreachable within the configured bound.
var ErrPlanNotFound = errors.New("planning: no plan found within bound")

// Plan is a solved planning problem: an ordered, directly executable
// sequence of ground actions, plus search statistics.
type Plan struct {
	// ID uniquely identifies this search run.
	ID string

	// Steps is the action sequence transforming the initial state into a
	// goal state. Empty when the initial state already satisfies the goal.
	Steps []*GroundAction

	// NodesExpanded counts the states expanded during the search.
	NodesExpanded int

	// Duration is the wall-clock time the search took.
	Duration time.Duration
}

// Len returns the plan length in actions.
func (p *Plan) Len() int { return len(p.Steps) }

// StepStrings returns the canonical rendering of each step in order.
func (p *Plan) StepStrings() []string {
	out := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.String()
	}
	return out
}

// Planner runs breadth-first forward search over problem states. A Planner
// is stateless between calls and safe for concurrent use.
type Planner struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *plannerMetrics
}

// PlannerOption configures a Planner.
type PlannerOption func(*plannerConfig)

type plannerConfig struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
}

// WithLogger sets the logger for search progress traces. If not provided,
// traces are discarded.
func WithLogger(logger *slog.Logger) PlannerOption {
	return func(c *plannerConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer; each Plan call then runs inside
// a span carrying the search statistics.
func WithTracer(tracer trace.Tracer) PlannerOption {
	return func(c *plannerConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter. The planner records expanded node
// counts, search durations, and search outcomes.
func WithMeter(meter metric.Meter) PlannerOption {
	return func(c *plannerConfig) {
		c.meter = meter
	}
}

// NewPlanner creates a Planner.
func NewPlanner(opts ...PlannerOption) (*Planner, error) {
	cfg := &plannerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	p := &Planner{
		logger: cfg.logger,
		tracer: cfg.tracer,
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.tracer == nil {
		p.tracer = noop.NewTracerProvider().Tracer("planner")
	}
	if cfg.meter != nil {
		m, err := newPlannerMetrics(cfg.meter)
		if err != nil {
			return nil, fmt.Errorf("init planner metrics: %w", err)
		}
		p.metrics = m
	}
	return p, nil
}

// node is one frontier entry: a state plus the action history that
// produced it.
type node struct {
	state State
	steps []*GroundAction
}

// Plan searches for a shortest action sequence (by action count) from the
// problem's initial state to a goal state. nil bounds means NewBounds().
//
// On failure it returns ErrPlanNotFound, possibly wrapped with the reason
// the search stopped (depth bound, node bound, deadline), or the context's
// error if the caller cancelled. It never returns a partial plan.
func (p *Planner) Plan(ctx context.Context, prob *Problem, bounds *Bounds) (*Plan, error) {
	if bounds == nil {
		bounds = NewBounds()
	}

	runID := uuid.New().String()
	ctx, span := p.tracer.Start(ctx, "planner.search", trace.WithAttributes(
		attribute.String("plan.id", runID),
		attribute.Int("plan.bounds.max_depth", bounds.MaxDepth()),
		attribute.Int("plan.bounds.max_nodes", bounds.MaxNodes()),
	))
	defer span.End()

	start := time.Now()
	plan, err := p.search(ctx, prob, bounds, runID, start)
	elapsed := time.Since(start)

	if p.metrics != nil {
		p.metrics.record(ctx, plan, elapsed, err)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("plan.length", plan.Len()),
		attribute.Int("plan.nodes_expanded", plan.NodesExpanded),
	)
	span.SetStatus(codes.Ok, "")
	return plan, nil
}

func (p *Planner) search(ctx context.Context, prob *Problem, bounds *Bounds, runID string, start time.Time) (*Plan, error) {
	var deadline time.Time
	if bounds.Deadline() > 0 {
		deadline = start.Add(bounds.Deadline())
	}

	initial := prob.Initial()
	frontier := []node{{state: initial}}
	visited := map[string]struct{}{initial.Key(): {}}
	expanded := 0

	finish := func(n node) *Plan {
		return &Plan{
			ID:            runID,
			Steps:         n.steps,
			NodesExpanded: expanded,
			Duration:      time.Since(start),
		}
	}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		if prob.GoalSatisfied(current.state) {
			p.logger.Debug("goal reached",
				"plan_id", runID, "length", len(current.steps), "nodes_expanded", expanded)
			return finish(current), nil
		}
		if len(current.steps) >= bounds.MaxDepth() {
			// Too deep to extend; the rest of this BFS layer may still
			// contain a goal state, so only this node is dropped.
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: deadline %s exceeded after %d nodes",
				ErrPlanNotFound, bounds.Deadline(), expanded)
		}
		if expanded >= bounds.MaxNodes() {
			return nil, fmt.Errorf("%w: node bound %d exceeded",
				ErrPlanNotFound, bounds.MaxNodes())
		}
		expanded++

		for _, ground := range p.expand(prob, current.state) {
			successor := ground.Apply(current.state)
			key := successor.Key()
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}

			steps := make([]*GroundAction, len(current.steps)+1)
			copy(steps, current.steps)
			steps[len(current.steps)] = ground
			frontier = append(frontier, node{state: successor, steps: steps})
		}
	}

	return nil, fmt.Errorf("%w: frontier exhausted after %d nodes at depth bound %d",
		ErrPlanNotFound, expanded, bounds.MaxDepth())
}

// expand enumerates every applicable grounding of every schema in the
// state. Schema variables are bound by matching the positive preconditions
// against state facts; a schema with a variable the positive preconditions
// cannot determine never grounds and is skipped, which is reported once at
// debug level since it is usually a domain-authoring mistake.
func (p *Planner) expand(prob *Problem, s State) []*GroundAction {
	facts := s.Facts()
	var out []*GroundAction
	dedup := make(map[string]struct{})

	for _, schema := range prob.Actions() {
		for _, subst := range matchConjunction(schema.PrecondPos(), facts, logic.Subst{}) {
			ground, err := schema.Ground(subst)
			if err != nil {
				p.logger.Debug("skipping ungroundable schema",
					"action", schema.String(), "bindings", subst.String(), "err", err)
				continue
			}
			key := ground.String()
			if _, seen := dedup[key]; seen {
				continue
			}
			dedup[key] = struct{}{}
			if ground.Applicable(s) {
				out = append(out, ground)
			}
		}
	}
	return out
}
