package timeline

import (
	"context"
	"time"

	"github.com/mattn/go-runewidth"
	"pkt.systems/pslog"

	"git.lost.host/meutraa/alive/internal/clock"
	"git.lost.host/meutraa/alive/internal/layout"
	"git.lost.host/meutraa/alive/internal/render"
	"git.lost.host/meutraa/alive/internal/theme"
)

const DefaultArtRowDelay = 10 * time.Millisecond

// AudioStarter starts playback without blocking.
type AudioStarter interface {
	Play(ctx context.Context) error
}

// CreditsStarter launches the credits writer and returns immediately.
type CreditsStarter interface {
	Start(ctx context.Context)
}

// Player walks the events against the wall clock. It polls rather than
// scheduling wakeups; Poll bounds the timing jitter.
type Player struct {
	Canvas   render.Canvas
	Geometry layout.Geometry
	Events   []Event
	Art      [][]string

	Audio   AudioStarter
	Credits CreditsStarter
	Theme   theme.Theme
	Clock   clock.Clock

	Poll        time.Duration
	ArtRowDelay time.Duration

	next int
	// lyric cursor, relative to the pane origin
	x, y int
}

// Cursor returns the logical lyric cursor.
func (p *Player) Cursor() (int, int) {
	return p.x, p.y
}

// Next returns the index of the next unconsumed event.
func (p *Player) Next() int {
	return p.next
}

// Run consumes every event once, in order, and returns nil at the end
// event or ctx.Err() if interrupted.
func (p *Player) Run(ctx context.Context) error {
	log := pslog.Ctx(ctx)
	clk := p.clock()
	poll := p.Poll
	if poll <= 0 {
		poll = clock.DefaultPoll
	}

	start := clk.Now()
	log.Debug("timeline started", "events", len(p.Events))
	for p.next < len(p.Events) {
		if err := ctx.Err(); nil != err {
			return err
		}

		ev := p.Events[p.next]
		if clk.Now().Sub(start) < ev.At {
			if err := clk.Sleep(ctx, poll); nil != err {
				return err
			}
			continue
		}

		if ev.Action.Kind() == KindEnd {
			log.Debug("timeline finished", "index", p.next, "elapsed", clk.Now().Sub(start))
			p.next++
			return nil
		}

		log.Trace("event", "index", p.next, "kind", ev.Action.Kind(), "at", ev.At)
		if err := p.consume(ctx, p.next); nil != err {
			return err
		}
		p.next++
	}
	return nil
}

func (p *Player) consume(ctx context.Context, i int) error {
	switch a := p.Events[i].Action.(type) {
	case Line:
		return p.typeLine(ctx, a, PerUnitDelay(p.Events, i))
	case ArtFrame:
		return p.drawArt(ctx, a.Index)
	case ClearLyrics:
		p.clearLyrics()
	case StartAudio:
		if p.Audio == nil {
			return nil
		}
		if err := p.Audio.Play(ctx); nil != err {
			pslog.Ctx(ctx).Warn("audio playback failed", "err", err)
		}
	case StartCredits:
		if p.Credits != nil {
			p.Credits.Start(ctx)
		}
	}
	return nil
}

// typeLine emits one character per critical section and sleeps between
// characters with the guard released, so the credits writer can interleave.
func (p *Player) typeLine(ctx context.Context, line Line, delay time.Duration) error {
	clk := p.clock()

	var style, session string
	styled := false
	if line.Style != "" && p.Theme != nil {
		style, styled = p.Theme.Style(line.Style)
		session = p.Theme.Session()
	}

	for _, r := range line.Text {
		ch := string(r)
		cx, cy := p.Geometry.LyricCell(p.x, p.y)
		p.Canvas.Draw(func(pen render.Pen) {
			pen.MoveTo(cx, cy)
			if styled {
				pen.Style(style)
			}
			pen.Write(ch)
			if styled {
				pen.Style(session)
			}
		})
		p.x += runewidth.RuneWidth(r)

		if err := clk.Sleep(ctx, delay); nil != err {
			return err
		}
	}

	if line.Newline {
		p.x = 0
		p.y++
		cx, cy := p.Geometry.LyricCell(p.x, p.y)
		p.Canvas.MoveTo(cx, cy)
	}
	return nil
}

// drawArt blits one art row per critical section with a fixed pause per
// row, then puts the cursor back on the lyric pane.
func (p *Player) drawArt(ctx context.Context, index int) error {
	clk := p.clock()
	delay := p.ArtRowDelay
	if delay <= 0 {
		delay = DefaultArtRowDelay
	}

	pane := p.Geometry.ArtRect()
	frame := p.Art[index]
	for row, text := range frame {
		x, y := pane.X, pane.Y+row
		p.Canvas.Draw(func(pen render.Pen) {
			pen.MoveTo(x, y)
			pen.Write(text)
		})
		if err := clk.Sleep(ctx, delay); nil != err {
			return err
		}
	}

	cx, cy := p.Geometry.LyricCell(p.x, p.y)
	p.Canvas.MoveTo(cx, cy)
	return nil
}

func (p *Player) clearLyrics() {
	p.x, p.y = 0, 0
	cx, cy := p.Geometry.LyricCell(0, 0)
	p.Canvas.Draw(func(pen render.Pen) {
		pen.ClearRect(p.Geometry.LyricRect())
		pen.MoveTo(cx, cy)
	})
}

func (p *Player) clock() clock.Clock {
	if p.Clock == nil {
		return clock.Real{}
	}
	return p.Clock
}
