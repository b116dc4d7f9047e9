package utils

import (
	"context"
	"time"
)

// Keeps track of the time a player spends thinking, summed over all of
// its turns.
//
// Each turn is a lap started with `Stopwatch.Lap()`. The lap context is
// cancelled with the given cause as soon as the summary running time
// exceeds the timeout.
//
// Stopwatch is not thread safe.
type Stopwatch struct {
	totalPassed time.Duration
	timeout     time.Duration
	running     bool
}

// Creates a stopped Stopwatch with the given timeout.
func NewStopwatch(timeout time.Duration) *Stopwatch {
	return &Stopwatch{
		timeout: timeout,
	}
}

// Starts a lap. Returned stop function ends it, adds its duration to
// the total and releases the context. Calling stop more than once has
// no effect.
//
// If the budget is already exhausted, the lap context is done right away.
func (s *Stopwatch) Lap(parent context.Context, cause error) (context.Context, func()) {
	if s.running {
		panic("stopwatch lap is already running")
	}
	s.running = true

	ctx, cancel := context.WithTimeoutCause(parent, s.Remaining(), cause)
	start := time.Now()

	stop := func() {
		if !s.running {
			return
		}
		s.running = false
		s.totalPassed += time.Since(start)
		cancel()
	}

	return ctx, stop
}

func (s *Stopwatch) Elapsed() time.Duration {
	return s.totalPassed
}

func (s *Stopwatch) Remaining() time.Duration {
	return max(0, s.timeout-s.totalPassed)
}
