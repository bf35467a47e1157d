// Package content holds the built-in demo script that runs when no script
// file is given.
package content

import (
	_ "embed"
	"fmt"

	"git.lost.host/meutraa/alive/internal/parser"
)

//go:embed demo.yaml
var demo []byte

// Demo returns the built-in script with its generated art frames.
func Demo() (*parser.Script, error) {
	p := parser.DefaultParser{}
	script, err := p.Decode(demo, "")
	if nil != err {
		return nil, fmt.Errorf("built-in demo: %w", err)
	}
	script.Art = Frames()
	return script, nil
}
