package theme

import (
	"fmt"
	"sort"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) Session() string {
	return sessionStyle
}

func (t *DefaultTheme) Style(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	c, ok := styles[name]
	if !ok {
		return "", false
	}
	return renderStyle(c), true
}

// Names lists the known segment styles.
func (t *DefaultTheme) Names() []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	// yellow on black, bold; the amber phosphor look
	sessionStyle = "\033[33;40;1m"
)

type sgr struct {
	fg, bg int
	bold   bool
}

var (
	styles = map[string]sgr{
		"amber":  {fg: 33, bg: 40, bold: true},
		"dim":    {fg: 33, bg: 40},
		"alert":  {fg: 31, bg: 40, bold: true},
		"green":  {fg: 32, bg: 40, bold: true},
		"cyan":   {fg: 36, bg: 40, bold: true},
		"white":  {fg: 37, bg: 40, bold: true},
		"invert": {fg: 30, bg: 43},
	}
)

func renderStyle(s sgr) string {
	if s.bold {
		return fmt.Sprintf("\033[0;%v;%v;1m", s.fg, s.bg)
	}
	return fmt.Sprintf("\033[0;%v;%vm", s.fg, s.bg)
}
