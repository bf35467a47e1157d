package render

import (
	"bufio"
	"strconv"
)

const (
	csiAltScreenEnter = "\033[?1049h"
	csiAltScreenExit  = "\033[?1049l"
	csiClear          = "\033[2J"
	csiSGR0           = "\033[0m"
)

// writeCursorPos writes a cursor position sequence for 0-indexed x, y.
func writeCursorPos(w *bufio.Writer, x, y int) {
	var buf [24]byte
	b := append(buf[:0], "\033["...)
	b = strconv.AppendInt(b, int64(y+1), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(x+1), 10)
	b = append(b, 'H')
	w.Write(b)
}
