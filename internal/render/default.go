package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

type DefaultCanvas struct {
	mu     sync.Mutex
	writer *bufio.Writer
	caps   Capabilities

	x, y   int
	began  bool
	closed bool
}

func NewCanvas(w io.Writer, caps Capabilities) *DefaultCanvas {
	return &DefaultCanvas{
		writer: bufio.NewWriterSize(w, 16384),
		caps:   caps,
	}
}

func (c *DefaultCanvas) BeginSession() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.began || c.closed {
		return nil
	}
	c.began = true

	if c.caps.AltScreen {
		c.writer.WriteString(csiAltScreenEnter)
	}
	if c.caps.Color && c.caps.SessionStyle != "" {
		c.writer.WriteString(c.caps.SessionStyle)
	}
	return c.writer.Flush()
}

// EndSession marks the canvas closed before emitting the teardown sequence,
// so a writer that sees the closed flag never races a half-written teardown.
func (c *DefaultCanvas) EndSession() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if !c.began {
		return
	}

	if c.caps.Color {
		c.writer.WriteString(csiSGR0)
	}
	if c.caps.AltScreen {
		c.writer.WriteString(csiAltScreenExit)
	} else {
		c.writer.WriteString(csiClear)
		writeCursorPos(c.writer, 0, 0)
	}
	c.writer.Flush()
}

func (c *DefaultCanvas) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *DefaultCanvas) Position() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.x, c.y
}

func (c *DefaultCanvas) MoveTo(x, y int) bool {
	return c.Draw(func(p Pen) { p.MoveTo(x, y) })
}

func (c *DefaultCanvas) Write(text string) bool {
	return c.Draw(func(p Pen) { p.Write(text) })
}

func (c *DefaultCanvas) WriteN(text string, advance int) bool {
	return c.Draw(func(p Pen) { p.WriteN(text, advance) })
}

func (c *DefaultCanvas) ClearRect(r Rect) bool {
	return c.Draw(func(p Pen) { p.ClearRect(r) })
}

// ClearScreen erases the whole screen and homes the position.
func (c *DefaultCanvas) ClearScreen() bool {
	return c.Draw(func(p Pen) {
		c.writer.WriteString(csiClear)
		p.MoveTo(0, 0)
	})
}

func (c *DefaultCanvas) Draw(fn func(p Pen)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	defer c.writer.Flush()

	fn(pen{c})
	return true
}

func (c *DefaultCanvas) Overlay(fn func(p Pen)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	defer c.writer.Flush()

	x, y := c.x, c.y
	defer func() {
		c.x, c.y = x, y
		writeCursorPos(c.writer, x, y)
	}()

	fn(pen{c})
	return true
}

// pen performs the unguarded operations; it is only ever used with c.mu
// held.
type pen struct {
	c *DefaultCanvas
}

func (p pen) MoveTo(x, y int) {
	if x < 0 || y < 0 {
		panic(fmt.Sprintf("render: negative coordinate (%d, %d)", x, y))
	}
	writeCursorPos(p.c.writer, x, y)
	p.c.x, p.c.y = x, y
}

func (p pen) Write(text string) {
	p.WriteN(text, runewidth.StringWidth(text))
}

func (p pen) WriteN(text string, advance int) {
	p.c.writer.WriteString(text)
	p.c.x += advance
}

func (p pen) Style(sgr string) {
	if !p.c.caps.Color {
		return
	}
	p.c.writer.WriteString(sgr)
}

func (p pen) ClearRect(r Rect) {
	blank := strings.Repeat(" ", r.W)
	for row := 0; row < r.H; row++ {
		p.MoveTo(r.X, r.Y+row)
		p.WriteN(blank, r.W)
	}
}

func (p pen) Position() (int, int) {
	return p.c.x, p.c.y
}
