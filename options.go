package strips

import (
	"log/slog"

	"github.com/planfirst/strips/planning"
	"github.com/planfirst/strips/store"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// SolverOption configures the Solver.
type SolverOption func(*solverConfig)

// solverConfig holds configuration for a Solver instance.
type solverConfig struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
	store  store.Store
	bounds *planning.Bounds
}

// WithLogger sets a custom logger for the solver. If not provided, logging
// is discarded.
func WithLogger(logger *slog.Logger) SolverOption {
	return func(c *solverConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the solver's searches.
func WithTracer(tracer trace.Tracer) SolverOption {
	return func(c *solverConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter. When set, the solver records
// search counts, node counts, and durations.
func WithMeter(meter metric.Meter) SolverOption {
	return func(c *solverConfig) {
		c.meter = meter
	}
}

// WithStore sets the persistence backend. When set, every solved plan is
// saved under the name passed to Solve. Persistence failures are logged,
// not returned; the plan itself is still usable.
func WithStore(st store.Store) SolverOption {
	return func(c *solverConfig) {
		c.store = st
	}
}

// WithBounds sets the default search bounds for Solve. Without this the
// planner defaults apply.
func WithBounds(b *planning.Bounds) SolverOption {
	return func(c *solverConfig) {
		c.bounds = b
	}
}
