package render

// Canvas is the only writer of terminal output. Every method that moves the
// write position or emits bytes runs as one critical section under a single
// guard, so concurrent callers never interleave escape sequences. Once
// EndSession has run every method is a no-op that returns false.
//
// Coordinates are 0-indexed cells; a negative coordinate is a programmer
// error and panics.
type Canvas interface {
	BeginSession() error
	EndSession()
	Closed() bool

	MoveTo(x, y int) bool
	// Write emits text at the current position and advances the position
	// by its display width.
	Write(text string) bool
	WriteN(text string, advance int) bool
	ClearScreen() bool
	ClearRect(r Rect) bool
	Position() (x, y int)

	// Draw runs fn as a single critical section. The position the pen ends
	// at becomes the canvas position.
	Draw(fn func(p Pen)) bool
	// Overlay runs fn as a single critical section and then moves back to
	// the position held before the call.
	Overlay(fn func(p Pen)) bool
}

// Pen is the view of the canvas handed to Draw and Overlay callbacks. It is
// only valid inside the callback, while the guard is held.
type Pen interface {
	MoveTo(x, y int)
	Write(text string)
	WriteN(text string, advance int)
	// Style emits an SGR sequence. It is dropped when color is disabled.
	Style(sgr string)
	ClearRect(r Rect)
	Position() (x, y int)
}

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Capabilities gates the escape sequences a session may emit.
type Capabilities struct {
	AltScreen bool
	Color     bool
	// SessionStyle is the SGR applied for the whole session when Color is
	// set, e.g. "\033[33;40;1m".
	SessionStyle string
}
