package timeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"git.lost.host/meutraa/alive/internal/clock"
	"git.lost.host/meutraa/alive/internal/layout"
	"git.lost.host/meutraa/alive/internal/render"
	"git.lost.host/meutraa/alive/internal/testdata"
	"git.lost.host/meutraa/alive/internal/theme"
)

var epoch = time.Unix(1631000000, 0)

type record struct {
	at   time.Duration
	data string
}

// recorder timestamps every flush of the canvas with the fake clock.
type recorder struct {
	mu      sync.Mutex
	clk     *clock.Fake
	records []record
}

func (r *recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record{at: r.clk.Now().Sub(epoch), data: string(p)})
	return len(p), nil
}

type stubAudio struct {
	calls int
	err   error
}

func (a *stubAudio) Play(ctx context.Context) error {
	a.calls++
	return a.err
}

type stubCredits struct {
	calls int
}

func (c *stubCredits) Start(ctx context.Context) {
	c.calls++
}

func newPlayer(t *testing.T, w io.Writer, clk clock.Clock, events []Event) *Player {
	t.Helper()
	g, err := layout.Compute(80, 24)
	if nil != err {
		t.Fatal(err)
	}
	return &Player{
		Canvas:   render.NewCanvas(w, render.Capabilities{}),
		Geometry: g,
		Events:   events,
		Clock:    clk,
	}
}

func TestTypewriterScenario(t *testing.T) {
	clk := clock.NewFake(epoch)
	rec := &recorder{clk: clk}
	p := newPlayer(t, rec, clk, []Event{
		{At: Ticks(0), Action: Line{Text: "HI", Interval: Derive(), Newline: true}},
		{At: Ticks(200), Action: ClearLyrics{}},
		{At: Ticks(400), Action: End{}},
	})

	if err := p.Run(context.Background()); nil != err {
		t.Fatal(err)
	}

	expected := []record{
		{0, "\033[2;2HH"},
		{time.Second, "\033[2;3HI"},
		{2 * time.Second, "\033[3;2H"},
	}
	if len(rec.records) != len(expected)+1 {
		t.Fatalf("expected %d flushes, got %d: %+v", len(expected)+1, len(rec.records), rec.records)
	}
	for i, e := range expected {
		if rec.records[i] != e {
			t.Log("flush   ", i, rec.records[i])
			t.Log("expected", e)
			t.Fail()
		}
	}

	clear := rec.records[3]
	if clear.at < 2*time.Second || clear.at >= 4*time.Second {
		t.Fatalf("clear at %v, want within [2s, 4s)", clear.at)
	}
	if !strings.Contains(clear.data, strings.Repeat(" ", 38)) {
		t.Fatalf("clear flush does not blank the pane: %q", clear.data)
	}

	sleeps := clk.Sleeps()
	if sleeps[0] != time.Second || sleeps[1] != time.Second {
		t.Fatalf("expected two 1s character delays, got %v", sleeps[:2])
	}
	if elapsed := clk.Now().Sub(epoch); elapsed < 4*time.Second || elapsed > 4*time.Second+clock.DefaultPoll {
		t.Fatalf("player halted at %v, want 4s", elapsed)
	}
	if p.Next() != 3 {
		t.Fatalf("expected all events consumed, next=%d", p.Next())
	}
}

func TestTypewriterPreservesText(t *testing.T) {
	clk := clock.NewFake(epoch)
	screen := testdata.NewScreen(80, 24)
	p := newPlayer(t, screen, clk, []Event{
		{At: 0, Action: Line{Text: "Forms FORM-29827281-12:", Interval: Derive(), Newline: true}},
		{At: Ticks(100), Action: Line{Text: "Ünïcödé 世界", Interval: Fixed(time.Second), Newline: true}},
		{At: Ticks(300), Action: Line{Text: "", Interval: Fixed(time.Second), Newline: true}},
		{At: Ticks(400), Action: Line{Text: "done", Newline: true}},
		{At: Ticks(500), Action: End{}},
	})
	if err := p.Run(context.Background()); nil != err {
		t.Fatal(err)
	}

	expected := []string{
		"Forms FORM-29827281-12:",
		"Ünïcödé 世界",
		"",
		"done",
	}
	for i, line := range expected {
		row := strings.TrimRight(screen.Region(1, 1+i, 38, 1)[0], " ")
		// wide runes occupy two cells; the decoder leaves the second blank
		row = strings.ReplaceAll(row, "世 界", "世界")
		if row != line {
			t.Logf("row %d: %q", i, row)
			t.Logf("want   %q", line)
			t.Fail()
		}
	}
	if x, y := p.Cursor(); x != 0 || y != 4 {
		t.Fatalf("expected cursor (0, 4), got (%d, %d)", x, y)
	}
}

func TestSegmentsComposeOneLine(t *testing.T) {
	clk := clock.NewFake(epoch)
	screen := testdata.NewScreen(80, 24)
	p := newPlayer(t, screen, clk, []Event{
		{At: 0, Action: Line{Text: "ab"}},
		{At: Ticks(10), Action: Line{Text: "cd", Newline: true}},
		{At: Ticks(20), Action: Line{Text: "ef"}},
		{At: Ticks(30), Action: End{}},
	})
	if err := p.Run(context.Background()); nil != err {
		t.Fatal(err)
	}
	if screen.Row(1) != " abcd" {
		t.Fatalf("unexpected row 1: %q", screen.Row(1))
	}
	if screen.Row(2) != " ef" {
		t.Fatalf("unexpected row 2: %q", screen.Row(2))
	}
	if x, y := p.Cursor(); x != 2 || y != 1 {
		t.Fatalf("expected cursor (2, 1), got (%d, %d)", x, y)
	}
}

func artFrame(ch string) []string {
	rows := make([]string, layout.ArtHeight)
	for i := range rows {
		rows[i] = strings.Repeat(ch, layout.ArtWidth)
	}
	return rows
}

func TestArtFrame(t *testing.T) {
	clk := clock.NewFake(epoch)
	screen := testdata.NewScreen(80, 24)
	p := newPlayer(t, screen, clk, []Event{
		{At: 0, Action: Line{Text: "abc"}},
		{At: 0, Action: ArtFrame{Index: 1}},
		{At: Ticks(1), Action: End{}},
	})
	p.Art = [][]string{artFrame("a"), artFrame("b")}
	p.ArtRowDelay = 5 * time.Millisecond

	if err := p.Run(context.Background()); nil != err {
		t.Fatal(err)
	}

	rows := screen.Region(p.Geometry.ArtX, p.Geometry.ArtY, layout.ArtWidth, layout.ArtHeight)
	for i, row := range rows {
		if row != strings.Repeat("b", layout.ArtWidth) {
			t.Fatalf("art row %d: %q", i, row)
		}
	}
	if x, y := screen.Cursor(); x != 4 || y != 1 {
		t.Fatalf("cursor not restored to lyric pane: (%d, %d)", x, y)
	}

	artSleeps := 0
	for _, d := range clk.Sleeps() {
		if d == 5*time.Millisecond {
			artSleeps++
		}
	}
	if artSleeps != layout.ArtHeight {
		t.Fatalf("expected %d row delays, got %d", layout.ArtHeight, artSleeps)
	}
}

func TestClearResetsCursor(t *testing.T) {
	clk := clock.NewFake(epoch)
	screen := testdata.NewScreen(80, 24)
	p := newPlayer(t, screen, clk, []Event{
		{At: 0, Action: Line{Text: "one", Newline: true}},
		{At: 0, Action: Line{Text: "two"}},
		{At: Ticks(1), Action: ClearLyrics{}},
		{At: Ticks(2), Action: Line{Text: "three"}},
		{At: Ticks(3), Action: End{}},
	})
	if err := p.Run(context.Background()); nil != err {
		t.Fatal(err)
	}
	if row := strings.TrimRight(screen.Region(1, 1, 38, 1)[0], " "); row != "three" {
		t.Fatalf("unexpected row 1: %q", row)
	}
	if row := strings.TrimRight(screen.Region(1, 2, 38, 1)[0], " "); row != "" {
		t.Fatalf("row 2 not cleared: %q", row)
	}
}

func TestSideEffectsAndAudioFailure(t *testing.T) {
	clk := clock.NewFake(epoch)
	screen := testdata.NewScreen(80, 24)
	audio := &stubAudio{err: errors.New("no device")}
	credits := &stubCredits{}
	p := newPlayer(t, screen, clk, []Event{
		{At: 0, Action: StartAudio{}},
		{At: Ticks(5), Action: StartCredits{}},
		{At: Ticks(10), Action: Line{Text: "still going", Newline: true}},
		{At: Ticks(20), Action: End{}},
	})
	p.Audio = audio
	p.Credits = credits

	if err := p.Run(context.Background()); nil != err {
		t.Fatal(err)
	}
	if audio.calls != 1 || credits.calls != 1 {
		t.Fatalf("audio calls %d, credits calls %d", audio.calls, credits.calls)
	}
	if !strings.Contains(screen.Row(1), "still going") {
		t.Fatalf("timeline halted after audio failure: %q", screen.Row(1))
	}
}

func TestRunCancelled(t *testing.T) {
	clk := clock.NewFake(epoch)
	screen := testdata.NewScreen(80, 24)
	p := newPlayer(t, screen, clk, []Event{
		{At: 0, Action: Line{Text: "abc", Interval: Fixed(time.Hour)}},
		{At: Ticks(1000), Action: End{}},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestClosedCanvasKeepsTimeline(t *testing.T) {
	clk := clock.NewFake(epoch)
	rec := &recorder{clk: clk}
	credits := &stubCredits{}
	p := newPlayer(t, rec, clk, []Event{
		{At: 0, Action: Line{Text: "abc", Interval: Derive(), Newline: true}},
		{At: Ticks(10), Action: StartCredits{}},
		{At: Ticks(20), Action: End{}},
	})
	p.Credits = credits
	p.Canvas.EndSession()

	if err := p.Run(context.Background()); nil != err {
		t.Fatal(err)
	}
	if len(rec.records) != 0 {
		t.Fatalf("output after EndSession: %+v", rec.records)
	}
	if credits.calls != 1 {
		t.Fatal("timeline stopped honoring events after teardown")
	}
}

func TestStyledSegment(t *testing.T) {
	clk := clock.NewFake(epoch)
	rec := &recorder{clk: clk}
	th := &theme.DefaultTheme{}
	p := newPlayer(t, rec, clk, []Event{
		{At: 0, Action: Line{Text: "x", Style: "alert"}},
		{At: 0, Action: End{}},
	})
	p.Canvas = render.NewCanvas(rec, render.Capabilities{Color: true, SessionStyle: th.Session()})
	p.Theme = th

	if err := p.Run(context.Background()); nil != err {
		t.Fatal(err)
	}
	alert, _ := th.Style("alert")
	expected := "\033[2;2H" + alert + "x" + th.Session()
	if len(rec.records) != 1 || rec.records[0].data != expected {
		t.Fatalf("unexpected output %+v, want %+v", rec.records, expected)
	}
}

func TestCursorAdvanceMatchesValidation(t *testing.T) {
	for _, text := range []string{
		"plain",
		"日本語",
		strings.Repeat("\U0001F44D\U0001F3FD", 4),
		"e\u0301e\u0301",
	} {
		clk := clock.NewFake(epoch)
		p := newPlayer(t, io.Discard, clk, []Event{
			{At: 0, Action: Line{Text: text}},
			{At: Ticks(1), Action: End{}},
		})
		if err := p.Run(context.Background()); nil != err {
			t.Fatal(err)
		}
		if x, _ := p.Cursor(); x != Width(text) {
			t.Fatalf("%q: cursor at %d, validation measured %d", text, x, Width(text))
		}
	}
}
