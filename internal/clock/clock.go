// Package clock abstracts the wall clock so pacing loops can be driven by a
// fake in tests.
package clock

import (
	"context"
	"time"
)

// DefaultPoll is the polling granularity used by the timeline and credits
// loops. It bounds timing jitter.
const DefaultPoll = 10 * time.Millisecond

type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever comes first.
	Sleep(ctx context.Context, d time.Duration) error
}

// Real is the wall clock.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WaitUntil polls c every poll until deadline has passed. It never returns
// early unless ctx is done.
func WaitUntil(ctx context.Context, c Clock, deadline time.Time, poll time.Duration) error {
	if poll <= 0 {
		poll = DefaultPoll
	}
	for {
		remaining := deadline.Sub(c.Now())
		if remaining <= 0 {
			return ctx.Err()
		}
		if remaining > poll {
			remaining = poll
		}
		if err := c.Sleep(ctx, remaining); nil != err {
			return err
		}
	}
}
