// internal/sched/tickclock.go

package sched

// TickClock is the logical clock of one core. Time only moves forward in whole ticks.
type TickClock struct {
	now  int
	idle int // ticks spent with an empty ready set
}

// Now returns the current tick.
func (c *TickClock) Now() int { return c.now }

// Idle returns the number of ticks the core spent waiting for arrivals.
func (c *TickClock) Idle() int { return c.idle }

// Advance moves the clock forward by n ticks of execution.
func (c *TickClock) Advance(n int) {
	if n > 0 {
		c.now += n
	}
}

// IdleUntil jumps forward to t, counting the gap as idle time.
func (c *TickClock) IdleUntil(t int) {
	if t > c.now {
		c.idle += t - c.now
		c.now = t
	}
}
