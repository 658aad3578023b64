package host

import (
	"sync"
	"time"

	"cw20ics20bridge/types"
)

// Clock supplies block time.
type Clock interface {
	Now() types.Timestamp
}

// MonotonicClock is wall-clock time that never goes backwards, even if the
// system clock is stepped.
type MonotonicClock struct {
	mu   sync.Mutex
	last types.Timestamp
	now  func() time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{now: time.Now}
}

func (c *MonotonicClock) Now() types.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := types.TimestampFromTime(c.now())
	if t < c.last {
		return c.last
	}
	c.last = t
	return t
}

// FixedClock always reports the same time. Tests advance it by hand.
type FixedClock struct {
	mu sync.Mutex
	t  types.Timestamp
}

func NewFixedClock(t types.Timestamp) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() types.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t += types.Timestamp(d)
}
