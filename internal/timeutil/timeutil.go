// Package timeutil provides the injected clock and the named cadence gates
// the scheduler polls. Everything time-driven in the controller goes
// through a Gate so tests can run under a simulated clock.
package timeutil

import "time"

// Clock abstracts time retrieval for the scheduler and renderers.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Gate fires when its interval has elapsed since the last fire. It never
// blocks; the scheduler polls Due each iteration.
type Gate struct {
	every time.Duration
	last  time.Time
}

func NewGate(every time.Duration) Gate {
	return Gate{every: every}
}

// Due reports whether the interval has elapsed and, if so, records now as
// the new anchor. A zero anchor fires immediately on first poll.
func (g *Gate) Due(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) < g.every {
		return false
	}
	g.last = now
	return true
}

// Reset re-anchors the gate at now without firing.
func (g *Gate) Reset(now time.Time) { g.last = now }
