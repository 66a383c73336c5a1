package script

import (
	"sync"
	"time"

	"github.com/runoshun/workforce/internal/domain"
)

var _ domain.Clock = (*StepClock)(nil)

// StepClock is a manual clock that only moves when Advance is called.
type StepClock struct {
	now time.Time
	mu  sync.Mutex
}

// NewStepClock creates a clock at start.
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{now: start}
}

// Now returns the current clock time.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *StepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
