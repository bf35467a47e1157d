package content

import (
	"math"
	"strings"

	"git.lost.host/meutraa/alive/internal/layout"
)

const ink = '#'

// shape reports whether the point is inked. Both axes run from -1 to 1; a
// frame of 40x20 cells is close to square on screen.
type shape func(x, y float64) bool

var shapes = []shape{
	// ring
	func(x, y float64) bool {
		r := math.Hypot(x, y)
		return r > 0.55 && r < 0.9
	},
	// disc
	func(x, y float64) bool {
		return math.Hypot(x, y) < 0.75
	},
	// diamond
	func(x, y float64) bool {
		d := math.Abs(x) + math.Abs(y)
		return d > 0.55 && d < 0.9
	},
	// square
	func(x, y float64) bool {
		d := math.Max(math.Abs(x), math.Abs(y))
		return d > 0.65 && d < 0.9
	},
	// cross
	func(x, y float64) bool {
		return (math.Abs(x) < 0.2 || math.Abs(y) < 0.2) && math.Max(math.Abs(x), math.Abs(y)) < 0.9
	},
	// checker
	func(x, y float64) bool {
		return (int(math.Floor(x*4))+int(math.Floor(y*4)))%2 == 0
	},
	// wave
	func(x, y float64) bool {
		return math.Abs(y-0.5*math.Sin(3*x)) < 0.18
	},
	// triangle
	func(x, y float64) bool {
		return y > -0.8 && y < 0.8 && math.Abs(x) < (y+0.8)*0.55
	},
	// target
	func(x, y float64) bool {
		r := math.Hypot(x, y)
		return r < 0.95 && int(r*6)%2 == 0
	},
	// saltire
	func(x, y float64) bool {
		return math.Abs(math.Abs(x)-math.Abs(y)) < 0.14 && math.Abs(x) < 0.9
	},
}

// Frames renders the demo art, one frame per shape.
func Frames() [][]string {
	frames := make([][]string, len(shapes))
	for n, fn := range shapes {
		frames[n] = render(fn)
	}
	return frames
}

func render(fn shape) []string {
	rows := make([]string, layout.ArtHeight)
	var b strings.Builder
	for cy := 0; cy < layout.ArtHeight; cy++ {
		b.Reset()
		y := (float64(cy)+0.5)/float64(layout.ArtHeight)*2 - 1
		for cx := 0; cx < layout.ArtWidth; cx++ {
			x := (float64(cx)+0.5)/float64(layout.ArtWidth)*2 - 1
			if fn(x, y) {
				b.WriteRune(ink)
			} else {
				b.WriteByte(' ')
			}
		}
		rows[cy] = b.String()
	}
	return rows
}
