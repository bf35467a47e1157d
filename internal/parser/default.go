package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"git.lost.host/meutraa/alive/internal/layout"
	"git.lost.host/meutraa/alive/internal/timeline"
)

var ErrNoEvents = errors.New("script has no events")

// maxIntervalSeconds keeps numeric intervals inside time.Duration.
const maxIntervalSeconds = float64(math.MaxInt64 / int64(time.Second))

type DefaultParser struct{}

type document struct {
	Audio   string     `yaml:"audio"`
	Credits credits    `yaml:"credits"`
	Art     [][]string `yaml:"art"`
	Events  []event    `yaml:"events"`
}

type credits struct {
	Duration string `yaml:"duration"`
	Text     string `yaml:"text"`
}

type event struct {
	At       int64    `yaml:"at"`
	Kind     string   `yaml:"kind"`
	Text     string   `yaml:"text"`
	Interval interval `yaml:"interval"`
	Frame    int      `yaml:"frame"`
	Style    string   `yaml:"style"`
}

// interval accepts "derive", a Go duration string or a number of seconds.
type interval struct {
	timeline.Interval
}

func (i *interval) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: interval must be a scalar", node.Line)
	}
	value := strings.TrimSpace(node.Value)
	switch value {
	case "", "none":
		i.Interval = timeline.Interval{}
		return nil
	case "derive":
		i.Interval = timeline.Derive()
		return nil
	}
	if seconds, err := strconv.ParseFloat(value, 64); nil == err {
		if math.IsNaN(seconds) || math.IsInf(seconds, 0) || math.Abs(seconds) > maxIntervalSeconds {
			return fmt.Errorf("line %d: bad interval %q", node.Line, value)
		}
		i.Interval = timeline.Fixed(time.Duration(seconds * float64(time.Second)))
		return nil
	}
	d, err := time.ParseDuration(value)
	if nil != err {
		return fmt.Errorf("line %d: bad interval %q", node.Line, value)
	}
	i.Interval = timeline.Fixed(d)
	return nil
}

func (p *DefaultParser) Parse(file string) (*Script, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	script, err := p.Decode(data, filepath.Dir(file))
	if nil != err {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return script, nil
}

// Decode parses a script document. Relative audio paths are joined to dir.
func (p *DefaultParser) Decode(data []byte, dir string) (*Script, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); nil != err && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(doc.Events) == 0 {
		return nil, ErrNoEvents
	}

	script := &Script{
		CreditsText: strings.ReplaceAll(doc.Credits.Text, "\r", ""),
		Audio:       doc.Audio,
	}
	if script.Audio != "" && !filepath.IsAbs(script.Audio) && dir != "" {
		script.Audio = filepath.Join(dir, script.Audio)
	}
	if doc.Credits.Duration != "" {
		d, err := time.ParseDuration(doc.Credits.Duration)
		if nil != err {
			return nil, fmt.Errorf("credits duration: %w", err)
		}
		script.CreditsDuration = d
	}

	for n, rows := range doc.Art {
		frame, err := normalizeArt(rows)
		if nil != err {
			return nil, fmt.Errorf("art frame %d: %w", n, err)
		}
		script.Art = append(script.Art, frame)
	}

	for n, e := range doc.Events {
		action, err := e.action()
		if nil != err {
			return nil, fmt.Errorf("event %d: %w", n, err)
		}
		if e.At < 0 {
			return nil, fmt.Errorf("event %d: negative time %d", n, e.At)
		}
		script.Events = append(script.Events, timeline.Event{
			At:     timeline.Ticks(e.At),
			Action: action,
		})
	}
	return script, nil
}

func (e event) action() (timeline.Action, error) {
	name := e.Kind
	if name == "" {
		name = "line"
	}
	kind, err := timeline.ParseKind(name)
	if nil != err {
		return nil, err
	}
	switch kind {
	case timeline.KindLine, timeline.KindSegment:
		return timeline.Line{
			Text:     strings.ReplaceAll(e.Text, "\n", ""),
			Interval: e.Interval.Interval,
			Newline:  kind == timeline.KindLine,
			Style:    e.Style,
		}, nil
	case timeline.KindArt:
		return timeline.ArtFrame{Index: e.Frame}, nil
	case timeline.KindClear:
		return timeline.ClearLyrics{}, nil
	case timeline.KindAudio:
		return timeline.StartAudio{}, nil
	case timeline.KindCredits:
		return timeline.StartCredits{}, nil
	}
	return timeline.End{}, nil
}

// normalizeArt pads a frame to the fixed art size.
func normalizeArt(rows []string) ([]string, error) {
	if len(rows) > layout.ArtHeight {
		return nil, fmt.Errorf("%d rows, at most %d allowed", len(rows), layout.ArtHeight)
	}
	frame := make([]string, layout.ArtHeight)
	for y := range frame {
		row := ""
		if y < len(rows) {
			row = strings.TrimRight(rows[y], "\r")
		}
		if w := runewidth.StringWidth(row); w > layout.ArtWidth {
			return nil, fmt.Errorf("row %d is %d cells wide, at most %d allowed", y, w, layout.ArtWidth)
		}
		frame[y] = runewidth.FillRight(row, layout.ArtWidth)
	}
	return frame, nil
}
