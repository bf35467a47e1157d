// Package credits scrolls a long text through the credits pane on its own
// clock, concurrently with the timeline.
package credits

import (
	"context"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"pkt.systems/pslog"

	"git.lost.host/meutraa/alive/internal/clock"
	"git.lost.host/meutraa/alive/internal/layout"
	"git.lost.host/meutraa/alive/internal/render"
)

// DefaultDuration is the run length the credits are paced over when a
// script does not set one.
const DefaultDuration = 174 * time.Second

// Scroller types Text into the credits pane so that the whole text takes
// Duration. It stops silently as soon as the canvas is closed or its
// context is done; there is no other cancellation.
type Scroller struct {
	Clock clock.Clock
	Poll  time.Duration

	canvas   render.Canvas
	geometry layout.Geometry
	text     []rune
	duration time.Duration

	once sync.Once
	done chan struct{}
}

func NewScroller(c render.Canvas, g layout.Geometry, text string, duration time.Duration) *Scroller {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Scroller{
		canvas:   c,
		geometry: g,
		text:     []rune(text),
		duration: duration,
		done:     make(chan struct{}),
	}
}

// Start runs the scroller on its own goroutine and returns immediately.
// Only the first call has an effect.
func (s *Scroller) Start(ctx context.Context) {
	s.once.Do(func() {
		go func() {
			defer close(s.done)
			if err := s.Run(ctx); nil != err {
				pslog.Ctx(ctx).Debug("credits stopped", "err", err)
			}
		}()
	})
}

// Done is closed when a started scroller has returned.
func (s *Scroller) Done() <-chan struct{} {
	return s.done
}

// Run paces character i to start + duration*i/len. A slow write delays the
// following characters; nothing is ever skipped.
func (s *Scroller) Run(ctx context.Context) error {
	log := pslog.Ctx(ctx)
	clk := s.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	total := int64(len(s.text))
	if total == 0 {
		return nil
	}

	pane := s.geometry.CreditsRect()
	bottom := pane.Y + pane.H - 1
	window := NewWindow(pane.H)
	col := 0

	start := clk.Now()
	log.Debug("credits started", "chars", total, "duration", s.duration)
	for i, r := range s.text {
		target := start.Add(offset(s.duration, int64(i), total))
		if err := clock.WaitUntil(ctx, clk, target, s.Poll); nil != err {
			return err
		}

		if r == '\n' {
			window.Break()
			col = 0
			lines := window.Lines()
			if !s.canvas.Overlay(func(p render.Pen) { s.repaint(p, lines) }) {
				return nil
			}
			continue
		}

		window.Append(r)
		x, w := col, runewidth.RuneWidth(r)
		col += w
		if x+w > pane.W {
			// past the pane edge; keep pacing but draw nothing
			if s.canvas.Closed() {
				return nil
			}
			continue
		}
		ch := string(r)
		if !s.canvas.Overlay(func(p render.Pen) {
			p.MoveTo(pane.X+x, bottom)
			p.WriteN(ch, w)
		}) {
			return nil
		}
	}
	log.Debug("credits finished")
	return nil
}

// repaint redraws the pane with lines aligned to the bottom row.
func (s *Scroller) repaint(p render.Pen, lines []string) {
	pane := s.geometry.CreditsRect()
	top := pane.H - len(lines)
	for row := 0; row < pane.H; row++ {
		text := ""
		if row >= top {
			text = runewidth.Truncate(lines[row-top], pane.W, "")
		}
		p.MoveTo(pane.X, pane.Y+row)
		p.WriteN(runewidth.FillRight(text, pane.W), pane.W)
	}
}

// offset is d*i/n without overflowing for long texts and durations.
func offset(d time.Duration, i, n int64) time.Duration {
	q, r := int64(d)/n, int64(d)%n
	return time.Duration(q*i + r*i/n)
}
