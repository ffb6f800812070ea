package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBoundsDefaults(t *testing.T) {
	b := NewBounds()
	assert.Equal(t, DefaultMaxDepth, b.MaxDepth())
	assert.Equal(t, DefaultMaxNodes, b.MaxNodes())
	assert.Zero(t, b.Deadline())
}

func TestBoundsBuilder(t *testing.T) {
	b := NewBounds().
		WithMaxDepth(8).
		WithMaxNodes(1000).
		WithDeadline(5 * time.Second)

	assert.Equal(t, 8, b.MaxDepth())
	assert.Equal(t, 1000, b.MaxNodes())
	assert.Equal(t, 5*time.Second, b.Deadline())
}

func TestBoundsClamping(t *testing.T) {
	b := NewBounds().
		WithMaxDepth(-3).
		WithMaxNodes(0).
		WithDeadline(-time.Second)

	assert.Zero(t, b.MaxDepth(), "negative depth clamps to zero")
	assert.Equal(t, 1, b.MaxNodes(), "node cap clamps to one")
	assert.Zero(t, b.Deadline(), "negative deadline clears")
}
