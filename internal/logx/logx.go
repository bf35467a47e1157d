// Package logx builds the process logger. While the canvas owns the screen
// nothing may reach the terminal, so logs go to a file or are held back
// until the session ends.
package logx

import (
	"bytes"
	"io"
	"os"
	"sync"

	"pkt.systems/pslog"
)

// Deferred buffers everything written to it until Release.
type Deferred struct {
	mu  sync.Mutex
	buf bytes.Buffer
	out io.Writer
}

func (d *Deferred) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.out != nil {
		return d.out.Write(p)
	}
	return d.buf.Write(p)
}

// Release flushes held output to w; later writes go straight through.
func (d *Deferred) Release(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = w
	_, err := d.buf.WriteTo(w)
	return err
}

// Sink is where log output goes for the lifetime of the process.
type Sink struct {
	io.Writer
	deferred *Deferred
	file     *os.File
}

// OpenSink appends to path, or defers to stderr when path is empty.
func OpenSink(path string) (*Sink, error) {
	if path == "" {
		d := &Deferred{}
		return &Sink{Writer: d, deferred: d}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if nil != err {
		return nil, err
	}
	return &Sink{Writer: f, file: f}, nil
}

// Release is called once the terminal is ours again.
func (s *Sink) Release() error {
	if s.deferred != nil {
		return s.deferred.Release(os.Stderr)
	}
	return nil
}

func (s *Sink) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return s.Release()
}

// New builds a console logger on w. Without debug the level comes from the
// environment.
func New(w io.Writer, debug bool) pslog.Logger {
	if debug {
		return pslog.NewWithOptions(w, pslog.Options{
			Mode:     pslog.ModeConsole,
			NoColor:  true,
			MinLevel: pslog.DebugLevel,
		})
	}
	return pslog.LoggerFromEnv(
		pslog.WithEnvWriter(w),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole, NoColor: true}),
	)
}
