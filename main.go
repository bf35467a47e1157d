package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"git.lost.host/meutraa/alive/internal/audio"
	"git.lost.host/meutraa/alive/internal/clock"
	"git.lost.host/meutraa/alive/internal/config"
	"git.lost.host/meutraa/alive/internal/content"
	"git.lost.host/meutraa/alive/internal/credits"
	"git.lost.host/meutraa/alive/internal/input"
	"git.lost.host/meutraa/alive/internal/layout"
	"git.lost.host/meutraa/alive/internal/logx"
	"git.lost.host/meutraa/alive/internal/parser"
	"git.lost.host/meutraa/alive/internal/render"
	"git.lost.host/meutraa/alive/internal/theme"
	"git.lost.host/meutraa/alive/internal/timeline"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}
	if err := cfg.LoadEnv(); nil != err {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(fmt.Sprintf("unable to load %s: %v", cfg.EnvFile, err)))
		return 1
	}

	sink, err := logx.OpenSink(cfg.LogFile)
	if nil != err {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(fmt.Sprintf("unable to open log file: %v", err)))
		return 1
	}
	defer sink.Close()

	logger := logx.New(sink, cfg.Debug)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	err = run(ctx, cfg, sink)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Println(NoticeStyle.Render("Interrupt by user"))
		return 0
	case errors.Is(err, layout.ErrTooSmall):
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		fmt.Fprintln(os.Stderr, HintStyle.Render("resize the terminal or set --columns/--lines"))
		return 1
	case nil != err:
		pslog.Ctx(ctx).Error("run failed", "err", err)
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		return 1
	}
	return 0
}

func loadScript(cfg *config.Config) (*parser.Script, error) {
	var psr parser.Parser = &parser.DefaultParser{}
	if cfg.Script == "" {
		return content.Demo()
	}
	return psr.Parse(cfg.Script)
}

func newAudio(cfg *config.Config, script *parser.Script) audio.Player {
	path := script.Audio
	if cfg.Audio != "" {
		path = cfg.Audio
	}
	if !cfg.Sound || path == "" {
		return audio.Nop{}
	}
	return audio.NewBeepPlayer(path)
}

func run(ctx context.Context, cfg *config.Config, sink *logx.Sink) (err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	log := pslog.Ctx(ctx)

	tty, err := cfg.DetectTerminal()
	if nil != err {
		return err
	}
	g, err := layout.Compute(tty.Columns, tty.Lines)
	if nil != err {
		return err
	}
	script, err := loadScript(cfg)
	if nil != err {
		return err
	}
	if err := timeline.Validate(script.Events, g, len(script.Art)); nil != err {
		return fmt.Errorf("invalid script: %w", err)
	}
	log.Debug("terminal detected", "term", tty.Name, "columns", tty.Columns, "lines", tty.Lines, "color", tty.Color, "alt_screen", tty.AltScreen)

	sound := newAudio(cfg, script)
	defer sound.Stop()

	// Ensure our Default implementations are used as interfaces
	var th theme.Theme = &theme.DefaultTheme{}
	var canvas render.Canvas = render.NewCanvas(os.Stdout, render.Capabilities{
		AltScreen:    tty.AltScreen,
		Color:        tty.Color,
		SessionStyle: th.Session(),
	})

	if cfg.Keys && config.Interactive() {
		stop, err := input.Watch(ctx, cancel)
		if nil != err {
			log.Warn("quit keys disabled", "err", err)
		} else {
			defer stop()
		}
	}

	if err := canvas.BeginSession(); nil != err {
		return err
	}
	defer func() {
		canvas.EndSession()
		if err := sink.Release(); nil != err {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			canvas.EndSession()
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	var clk clock.Clock = clock.Real{}
	canvas.ClearScreen()
	layout.DrawFrame(canvas, g)
	if err := clk.Sleep(ctx, cfg.FramePause); nil != err {
		return err
	}

	duration := script.CreditsDuration
	if cfg.CreditsDuration > 0 {
		duration = cfg.CreditsDuration
	}
	scroller := credits.NewScroller(canvas, g, script.CreditsText, duration)
	scroller.Clock = clk
	scroller.Poll = cfg.Poll

	tl := &timeline.Player{
		Canvas:      canvas,
		Geometry:    g,
		Events:      script.Events,
		Art:         script.Art,
		Audio:       sound,
		Credits:     scroller,
		Theme:       th,
		Clock:       clk,
		Poll:        cfg.Poll,
		ArtRowDelay: cfg.ArtRowDelay,
	}
	return tl.Run(ctx)
}
