package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"golang.org/x/term"
)

// Terminal is what we know about the output device.
type Terminal struct {
	Name    string
	Columns int
	Lines   int
	// Legacy is a hardware VT: fixed 80x24, no alternate screen.
	Legacy    bool
	Color     bool
	AltScreen bool
}

var vtModel = regexp.MustCompile(`vt(\d+)`)

// DetectTerminal inspects $TERM, stdout and $COLUMNS/$LINES, then applies
// the overrides in c.
func (c *Config) DetectTerminal() (Terminal, error) {
	return c.detect(os.Getenv, func() (int, int, error) {
		return term.GetSize(int(os.Stdout.Fd()))
	})
}

func (c *Config) detect(getenv func(string) string, size func() (int, int, error)) (Terminal, error) {
	t := Terminal{Name: c.Term}
	if t.Name == "" {
		t.Name = getenv("TERM")
	}
	if t.Name == "" {
		t.Name = "vt100"
	}

	t.Color, t.AltScreen = true, true
	if m := vtModel.FindStringSubmatch(t.Name); m != nil {
		model, _ := strconv.Atoi(m[1])
		t.Legacy = true
		t.AltScreen = false
		// color arrived with the VT241
		t.Color = model >= 241
		t.Columns, t.Lines = 80, 24
	} else {
		if t.Name == "linux" {
			t.AltScreen = false
		}
		if columns, lines, err := size(); nil == err {
			t.Columns, t.Lines = columns, lines
		}
	}

	for _, v := range []struct {
		name string
		dst  *int
	}{{"COLUMNS", &t.Columns}, {"LINES", &t.Lines}} {
		s := getenv(v.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if nil != err || n < 0 {
			return Terminal{}, fmt.Errorf("bad $%s %q", v.name, s)
		}
		*v.dst = n
	}

	if c.Columns > 0 {
		t.Columns = c.Columns
	}
	if c.Lines > 0 {
		t.Lines = c.Lines
	}
	return t, nil
}

// Interactive reports whether stdin is a terminal we can read keys from.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
