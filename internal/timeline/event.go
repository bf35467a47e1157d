package timeline

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Unit is one timeline tick. Scripts express trigger times in ticks.
const Unit = 10 * time.Millisecond

type Kind uint8

const (
	KindLine    Kind = iota // text, then newline
	KindSegment             // text, cursor stays on the line
	KindArt
	KindClear
	KindAudio
	KindCredits
	KindEnd
)

var kindNames = [...]string{
	KindLine:    "line",
	KindSegment: "segment",
	KindArt:     "art",
	KindClear:   "clear",
	KindAudio:   "audio",
	KindCredits: "credits",
	KindEnd:     "end",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// Action is the closed set of things an event can do.
type Action interface {
	Kind() Kind
}

type IntervalMode uint8

const (
	IntervalNone IntervalMode = iota
	IntervalFixed
	// IntervalDerive spreads the text over the gap to the next event.
	IntervalDerive
)

// Interval is the time a line takes to type out in full.
type Interval struct {
	Mode IntervalMode
	D    time.Duration
}

func Fixed(d time.Duration) Interval {
	return Interval{Mode: IntervalFixed, D: d}
}

func Derive() Interval {
	return Interval{Mode: IntervalDerive}
}

func (i Interval) String() string {
	switch i.Mode {
	case IntervalFixed:
		return i.D.String()
	case IntervalDerive:
		return "derive"
	}
	return "0s"
}

type Line struct {
	Text     string
	Interval Interval
	Newline  bool
	// Style names a theme style; empty keeps the session style.
	Style string
}

func (l Line) Kind() Kind {
	if l.Newline {
		return KindLine
	}
	return KindSegment
}

type ArtFrame struct {
	Index int
}

func (ArtFrame) Kind() Kind { return KindArt }

type ClearLyrics struct{}

func (ClearLyrics) Kind() Kind { return KindClear }

type StartAudio struct{}

func (StartAudio) Kind() Kind { return KindAudio }

type StartCredits struct{}

func (StartCredits) Kind() Kind { return KindCredits }

type End struct{}

func (End) Kind() Kind { return KindEnd }

// Event fires its Action once the player has run for At.
type Event struct {
	At     time.Duration
	Action Action
}

// Ticks converts a tick count to a duration.
func Ticks(n int64) time.Duration {
	return time.Duration(n) * Unit
}

// UnitCount is the number of characters a line types out, at least 1 so a
// blank line still honors its timing.
func UnitCount(text string) int {
	n := utf8.RuneCountInString(text)
	if n < 1 {
		return 1
	}
	return n
}

// Width is how far typing text moves the lyric cursor: the sum of each
// rune's cell width, since the player emits one rune at a time.
func Width(text string) int {
	w := 0
	for _, r := range text {
		w += runewidth.RuneWidth(r)
	}
	return w
}

// PerUnitDelay is the pause after each character of the line at events[i].
func PerUnitDelay(events []Event, i int) time.Duration {
	line, ok := events[i].Action.(Line)
	if !ok {
		return 0
	}
	n := time.Duration(UnitCount(line.Text))

	switch line.Interval.Mode {
	case IntervalFixed:
		if line.Interval.D < 0 {
			return 0
		}
		return line.Interval.D / n
	case IntervalDerive:
		if i+1 >= len(events) {
			return 0
		}
		gap := events[i+1].At - events[i].At
		if gap < 0 {
			return 0
		}
		return gap / n
	}
	return 0
}
