package credits

// Window is the visible tail of the credits: completed lines followed by
// the line being typed, which always occupies the last slot. It never holds
// more than its capacity; the oldest line is dropped when a line break
// arrives while it is full.
type Window struct {
	capacity int
	lines    []string
}

func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	lines := make([]string, 1, capacity+1)
	return &Window{capacity: capacity, lines: lines}
}

// Append adds r to the line being typed.
func (w *Window) Append(r rune) {
	w.lines[len(w.lines)-1] += string(r)
}

// Break completes the current line and starts a new one. It reports whether
// the oldest line was evicted.
func (w *Window) Break() bool {
	w.lines = append(w.lines, "")
	if len(w.lines) <= w.capacity {
		return false
	}
	copy(w.lines, w.lines[1:])
	w.lines = w.lines[:len(w.lines)-1]
	return true
}

func (w *Window) Current() string {
	return w.lines[len(w.lines)-1]
}

func (w *Window) Len() int {
	return len(w.lines)
}

func (w *Window) Cap() int {
	return w.capacity
}

// Lines returns a copy of the window, oldest first.
func (w *Window) Lines() []string {
	out := make([]string, len(w.lines))
	copy(out, w.lines)
	return out
}
