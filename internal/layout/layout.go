// Package layout computes the fixed two-pane geometry and draws the static
// border once at startup.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"git.lost.host/meutraa/alive/internal/render"
)

const (
	MinColumns = 80
	MinLines   = 24

	ArtWidth  = 40
	ArtHeight = 20

	// BorderChars is the number of border columns across one screen row.
	BorderChars = 4

	maxCreditsWidth = 56
)

var ErrTooSmall = errors.New("terminal too small")

// Geometry is derived once from the terminal size and never mutated.
// All coordinates are 0-indexed cells.
type Geometry struct {
	Columns, Lines int

	LyricX, LyricY          int
	LyricWidth, LyricHeight int

	CreditsX, CreditsY          int
	CreditsWidth, CreditsHeight int

	// The right column below the credits pane, which holds the art block.
	RightX, RightWidth int

	ArtX, ArtY int
}

func Compute(columns, lines int) (Geometry, error) {
	if columns < MinColumns || lines < MinLines {
		return Geometry{}, fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrTooSmall, columns, lines, MinColumns, MinLines)
	}

	creditsWidth := (columns - BorderChars) / 2
	if creditsWidth > maxCreditsWidth {
		creditsWidth = maxCreditsWidth
	}
	lyricWidth := columns - BorderChars - creditsWidth

	g := Geometry{
		Columns: columns,
		Lines:   lines,

		LyricX:      1,
		LyricY:      1,
		LyricWidth:  lyricWidth,
		LyricHeight: lines - 2,

		CreditsX:      lyricWidth + 3,
		CreditsY:      1,
		CreditsWidth:  creditsWidth,
		CreditsHeight: lines - ArtHeight - 2,

		RightX:     lyricWidth + 2,
		RightWidth: creditsWidth + 2,
	}
	g.ArtX = g.RightX + (g.RightWidth-ArtWidth)/2
	g.ArtY = g.CreditsHeight + 2
	return g, nil
}

// LyricCell maps a logical lyric cursor to an absolute cell.
func (g Geometry) LyricCell(x, y int) (int, int) {
	return g.LyricX + x, g.LyricY + y
}

func (g Geometry) LyricRect() render.Rect {
	return render.Rect{X: g.LyricX, Y: g.LyricY, W: g.LyricWidth, H: g.LyricHeight}
}

func (g Geometry) CreditsRect() render.Rect {
	return render.Rect{X: g.CreditsX, Y: g.CreditsY, W: g.CreditsWidth, H: g.CreditsHeight}
}

func (g Geometry) ArtRect() render.Rect {
	return render.Rect{X: g.ArtX, Y: g.ArtY, W: ArtWidth, H: ArtHeight}
}

// Frame returns the border, one string per screen row starting at row 0.
func (g Geometry) Frame() []string {
	lyric := strings.Repeat(" ", g.LyricWidth)
	lyricRule := strings.Repeat("-", g.LyricWidth)
	creditsRule := strings.Repeat("-", g.CreditsWidth)

	rows := make([]string, 0, g.Lines)
	rows = append(rows, " "+lyricRule+"  "+creditsRule+" ")
	for i := 0; i < g.CreditsHeight; i++ {
		rows = append(rows, "|"+lyric+"||"+strings.Repeat(" ", g.CreditsWidth)+"|")
	}
	rows = append(rows, "|"+lyric+"| "+creditsRule+" ")
	for i := 0; i < g.LyricHeight-1-g.CreditsHeight; i++ {
		rows = append(rows, "|"+lyric+"|")
	}
	rows = append(rows, " "+lyricRule+" ")
	return rows
}

// DrawFrame emits the whole border in one burst and parks the cursor at
// the lyric origin.
func DrawFrame(c render.Canvas, g Geometry) bool {
	rows := g.Frame()
	return c.Draw(func(p render.Pen) {
		for y, row := range rows {
			p.MoveTo(0, y)
			p.Write(row)
		}
		p.MoveTo(g.LyricX, g.LyricY)
	})
}
