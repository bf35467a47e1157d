package timeline

import (
	"errors"
	"fmt"

	"git.lost.host/meutraa/alive/internal/layout"
)

var ErrEmpty = errors.New("timeline has no events")

type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("event %d: %s", e.Index, e.Reason)
}

func invalid(i int, format string, args ...any) error {
	return &ValidationError{Index: i, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the preconditions the player relies on. It simulates the
// lyric cursor so text that would leave the pane is rejected before any
// rendering starts.
func Validate(events []Event, g layout.Geometry, artCount int) error {
	if len(events) == 0 {
		return ErrEmpty
	}

	x, y := 0, 0
	credits := 0
	for i, ev := range events {
		if ev.Action == nil {
			return invalid(i, "missing action")
		}
		if ev.At < 0 {
			return invalid(i, "negative trigger time %v", ev.At)
		}
		if i > 0 && ev.At < events[i-1].At {
			return invalid(i, "trigger time %v before previous event at %v", ev.At, events[i-1].At)
		}

		switch a := ev.Action.(type) {
		case Line:
			if a.Interval.Mode == IntervalDerive && i == len(events)-1 {
				return invalid(i, "last event cannot derive its interval")
			}
			if a.Interval.Mode == IntervalFixed && a.Interval.D < 0 {
				return invalid(i, "negative interval %v", a.Interval.D)
			}
			if y >= g.LyricHeight {
				return invalid(i, "lyric row %d is below the pane (height %d)", y, g.LyricHeight)
			}
			x += Width(a.Text)
			if x > g.LyricWidth {
				return invalid(i, "text reaches column %d, pane is %d wide", x, g.LyricWidth)
			}
			if a.Newline {
				x = 0
				y++
			}
		case ArtFrame:
			if a.Index < 0 || a.Index >= artCount {
				return invalid(i, "art frame %d out of range (have %d)", a.Index, artCount)
			}
		case ClearLyrics:
			x, y = 0, 0
		case StartCredits:
			credits++
			if credits > 1 {
				return invalid(i, "credits started more than once")
			}
		case End:
			if i != len(events)-1 {
				return invalid(i, "end before the last event")
			}
		}
	}

	if _, ok := events[len(events)-1].Action.(End); !ok {
		return invalid(len(events)-1, "last event must be end, got %v", events[len(events)-1].Action.Kind())
	}
	return nil
}
