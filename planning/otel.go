package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// plannerMetrics holds the OpenTelemetry instruments for the planner.
// Created once in NewPlanner when a meter is configured and reused for all
// searches.
type plannerMetrics struct {
	// nodesHistogram records nodes expanded per search.
	nodesHistogram metric.Int64Histogram

	// durationHistogram records search duration in milliseconds.
	durationHistogram metric.Float64Histogram

	// searchCounter increments per search, tagged with the outcome.
	searchCounter metric.Int64Counter
}

func newPlannerMetrics(meter metric.Meter) (*plannerMetrics, error) {
	m := &plannerMetrics{}
	var err error

	m.nodesHistogram, err = meter.Int64Histogram(
		"planner.nodes_expanded",
		metric.WithDescription("States expanded per search"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create nodes histogram: %w", err)
	}

	m.durationHistogram, err = meter.Float64Histogram(
		"planner.search.duration",
		metric.WithDescription("Search duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	m.searchCounter, err = meter.Int64Counter(
		"planner.search.count",
		metric.WithDescription("Number of searches, tagged with outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create search counter: %w", err)
	}

	return m, nil
}

// record captures one finished search. plan is nil on failure.
func (m *plannerMetrics) record(ctx context.Context, plan *Plan, elapsed time.Duration, err error) {
	outcome := "found"
	switch {
	case errors.Is(err, ErrPlanNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "cancelled"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	m.searchCounter.Add(ctx, 1, attrs)
	m.durationHistogram.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
	if plan != nil {
		m.nodesHistogram.Record(ctx, int64(plan.NodesExpanded), attrs)
	}
}
