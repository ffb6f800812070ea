package planning

import "time"

// Default exploration caps. The state space need not be finite-width, so
// the planner always runs under some bound; these are the values used when
// the caller does not override them.
const (
	DefaultMaxDepth = 32
	DefaultMaxNodes = 1 << 20
)

// Bounds caps planner exploration so search terminates even when the goal
// is unreachable. Use the builder pattern to construct bounds fluently:
//
//	bounds := planning.NewBounds().
//	    WithMaxDepth(8).
//	    WithMaxNodes(100_000).
//	    WithDeadline(5 * time.Second)
//
//	plan, err := planner.Plan(ctx, problem, bounds)
type Bounds struct {
	// maxDepth is the maximum plan length in actions.
	maxDepth int

	// maxNodes is the maximum number of nodes expanded before giving up.
	maxNodes int

	// deadline is the wall-clock budget for one search; zero means no
	// deadline beyond the caller's context.
	deadline time.Duration
}

// NewBounds creates Bounds with the default caps.
func NewBounds() *Bounds {
	return &Bounds{
		maxDepth: DefaultMaxDepth,
		maxNodes: DefaultMaxNodes,
	}
}

// WithMaxDepth sets the maximum plan length in actions. Negative values
// are clamped to zero; a zero depth only succeeds when the initial state
// already satisfies the goal.
func (b *Bounds) WithMaxDepth(depth int) *Bounds {
	if depth < 0 {
		depth = 0
	}
	b.maxDepth = depth
	return b
}

// WithMaxNodes sets the maximum number of node expansions. Values below
// one are clamped to one so the initial state is always examined.
func (b *Bounds) WithMaxNodes(nodes int) *Bounds {
	if nodes < 1 {
		nodes = 1
	}
	b.maxNodes = nodes
	return b
}

// WithDeadline sets a wall-clock budget for the search, checked
// cooperatively between node expansions. Non-positive values clear it.
func (b *Bounds) WithDeadline(d time.Duration) *Bounds {
	if d < 0 {
		d = 0
	}
	b.deadline = d
	return b
}

// MaxDepth returns the maximum plan length.
func (b *Bounds) MaxDepth() int { return b.maxDepth }

// MaxNodes returns the node expansion cap.
func (b *Bounds) MaxNodes() int { return b.maxNodes }

// Deadline returns the wall-clock budget, or zero if unset.
func (b *Bounds) Deadline() time.Duration { return b.deadline }
