package testdata

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Screen decodes the subset of escape sequences the canvas emits into a
// cell grid, so tests can assert what a terminal would show.
type Screen struct {
	mu      sync.Mutex
	width   int
	height  int
	cells   [][]rune
	x, y    int
	alt     bool
	pending []byte

	watch     *watch
	snapshots [][]string
	writes    int
}

type watch struct {
	x, y, w, h int
}

func NewScreen(width, height int) *Screen {
	s := &Screen{width: width, height: height}
	s.clear()
	return s
}

// Watch records a snapshot of the given region after every Write that
// changes it.
func (s *Screen) Watch(x, y, w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watch = &watch{x: x, y: y, w: w, h: h}
}

func (s *Screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	data := append(s.pending, p...)
	s.pending = nil
	for len(data) > 0 {
		if data[0] == 0x1b {
			n, ok := s.escape(data)
			if !ok {
				s.pending = append([]byte(nil), data...)
				break
			}
			data = data[n:]
			continue
		}
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && !utf8.FullRune(data) {
			s.pending = append([]byte(nil), data...)
			break
		}
		data = data[size:]
		s.put(r)
	}

	if s.watch != nil {
		snap := s.region(s.watch.x, s.watch.y, s.watch.w, s.watch.h)
		if n := len(s.snapshots); n == 0 || !equalLines(s.snapshots[n-1], snap) {
			s.snapshots = append(s.snapshots, snap)
		}
	}
	return len(p), nil
}

// escape consumes one CSI sequence and reports its length, or false if the
// sequence is incomplete.
func (s *Screen) escape(data []byte) (int, bool) {
	if len(data) < 2 {
		return 0, false
	}
	if data[1] != '[' {
		return 2, true
	}
	for i := 2; i < len(data); i++ {
		c := data[i]
		if c >= 0x40 && c <= 0x7e {
			s.apply(string(data[2:i]), c)
			return i + 1, true
		}
	}
	return 0, false
}

func (s *Screen) apply(params string, final byte) {
	switch final {
	case 'H':
		row, col := 1, 1
		if params != "" {
			parts := strings.Split(params, ";")
			if v, err := strconv.Atoi(parts[0]); nil == err {
				row = v
			}
			if len(parts) > 1 {
				if v, err := strconv.Atoi(parts[1]); nil == err {
					col = v
				}
			}
		}
		s.x, s.y = col-1, row-1
	case 'J':
		if params == "2" {
			s.clear()
		}
	case 'h':
		if params == "?1049" {
			s.alt = true
		}
	case 'l':
		if params == "?1049" {
			s.alt = false
		}
	}
}

func (s *Screen) put(r rune) {
	if s.y >= 0 && s.y < s.height && s.x >= 0 && s.x < s.width {
		s.cells[s.y][s.x] = r
	}
	s.x++
}

func (s *Screen) clear() {
	s.cells = make([][]rune, s.height)
	for y := range s.cells {
		row := make([]rune, s.width)
		for x := range row {
			row[x] = ' '
		}
		s.cells[y] = row
	}
}

func (s *Screen) region(x, y, w, h int) []string {
	out := make([]string, 0, h)
	for row := y; row < y+h && row < s.height; row++ {
		end := x + w
		if end > s.width {
			end = s.width
		}
		out = append(out, string(s.cells[row][x:end]))
	}
	return out
}

// Region returns the rows of a rectangle as strings.
func (s *Screen) Region(x, y, w, h int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region(x, y, w, h)
}

// Row returns one full row with trailing blanks removed.
func (s *Screen) Row(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimRight(string(s.cells[y]), " ")
}

func (s *Screen) Cursor() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.x, s.y
}

func (s *Screen) AltScreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alt
}

func (s *Screen) Snapshots() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}

func (s *Screen) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func equalLines(p, q []string) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
