// Package input watches the keyboard for a request to quit.
package input

import (
	"context"
	"fmt"

	"github.com/eiannone/keyboard"
	"pkt.systems/pslog"
)

// Quit reports whether the key asks to stop the show. The keyboard is in
// raw mode, so Ctrl-C arrives here instead of as a signal.
func Quit(ev keyboard.KeyEvent) bool {
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC, keyboard.KeyCtrlD:
		return true
	}
	return ev.Key == 0 && (ev.Rune == 'q' || ev.Rune == 'Q')
}

// Forward calls cancel on the first quit key. It returns when that happens,
// when events fails or closes, or when ctx is done.
func Forward(ctx context.Context, events <-chan keyboard.KeyEvent, cancel context.CancelFunc) {
	log := pslog.Ctx(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if nil != ev.Err {
				log.Warn("keyboard read failed", "err", ev.Err)
				return
			}
			if Quit(ev) {
				log.Debug("quit key pressed", "key", ev.Key, "rune", string(ev.Rune))
				cancel()
				return
			}
		}
	}
}

// Watch opens the keyboard and forwards quit keys to cancel until ctx is
// done. The returned func restores the terminal.
func Watch(ctx context.Context, cancel context.CancelFunc) (func(), error) {
	events, err := keyboard.GetKeys(16)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	go Forward(ctx, events, cancel)
	return func() {
		if err := keyboard.Close(); nil != err {
			pslog.Ctx(ctx).Warn("unable to close keyboard", "err", err)
		}
	}, nil
}
