package testutil

import (
	"time"
)

// FakeClock is a manually advanced clock. Pass its Now method wherever a
// func() time.Time is expected.
type FakeClock struct {
	now time.Time
}

// NewFakeClock initializes a FakeClock at the provided start time.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the fake time forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
