package parser

import (
	"time"

	"git.lost.host/meutraa/alive/internal/timeline"
)

// Script is everything a run needs besides the terminal.
type Script struct {
	Events []timeline.Event
	// Art frames, each exactly layout.ArtHeight rows of layout.ArtWidth cells.
	Art             [][]string
	CreditsText     string
	CreditsDuration time.Duration
	// Audio is a file path, resolved against the script's directory.
	Audio string
}

type Parser interface {
	Parse(file string) (*Script, error)
}
