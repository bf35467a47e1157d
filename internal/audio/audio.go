// Package audio starts the soundtrack. Playback never blocks the timeline.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"pkt.systems/pslog"
)

var ErrUnsupported = errors.New("unsupported audio format")

type Player interface {
	// Play starts playback and returns without waiting for it to finish.
	Play(ctx context.Context) error
	Stop()
}

// Nop is used when sound is off or the script has no audio.
type Nop struct{}

func (Nop) Play(context.Context) error { return nil }
func (Nop) Stop()                      {}

// BeepPlayer plays an mp3, ogg or wav file through the system speaker.
type BeepPlayer struct {
	Path string

	mu      sync.Mutex
	playing bool
}

func NewBeepPlayer(path string) *BeepPlayer {
	return &BeepPlayer{Path: path}
}

// Decode picks a decoder from the file extension.
func Decode(rc io.ReadCloser, name string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		return mp3.Decode(rc)
	case ".ogg":
		return vorbis.Decode(rc)
	case ".wav":
		return wav.Decode(rc)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(name))
}

func (p *BeepPlayer) Play(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		return nil
	}

	switch strings.ToLower(filepath.Ext(p.Path)) {
	case ".mp3", ".ogg", ".wav":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, p.Path)
	}
	f, err := os.Open(p.Path)
	if nil != err {
		return err
	}
	streamer, format, err := Decode(f, p.Path)
	if nil != err {
		f.Close()
		return fmt.Errorf("unable to decode %s: %w", p.Path, err)
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); nil != err {
		streamer.Close()
		return fmt.Errorf("unable to open speaker: %w", err)
	}

	log := pslog.Ctx(ctx)
	log.Debug("audio started", "file", p.Path, "rate", int(format.SampleRate))
	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	p.playing = true

	go func() {
		select {
		case <-done:
			log.Debug("audio finished", "file", p.Path)
		case <-ctx.Done():
			speaker.Clear()
		}
		streamer.Close()
	}()
	return nil
}

// Stop silences playback started by Play.
func (p *BeepPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playing {
		speaker.Clear()
	}
}
