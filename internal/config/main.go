package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/alecthomas/kingpin.v2"

	"git.lost.host/meutraa/alive/internal/clock"
	"git.lost.host/meutraa/alive/internal/timeline"
)

const Version = "1.0.0"

type Config struct {
	// Script is a YAML script path; empty runs the built-in demo.
	Script          string
	Sound           bool
	Audio           string
	Columns         int
	Lines           int
	Term            string
	Poll            time.Duration
	ArtRowDelay     time.Duration
	FramePause      time.Duration
	CreditsDuration time.Duration
	Keys            bool
	LogFile         string
	Debug           bool
	EnvFile         string
}

// Parse reads the command line. args excludes the program name.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	app := kingpin.New("alive", "Types lyrics, art and scrolling credits onto the terminal in time with a song.")
	app.Version(Version)
	app.HelpFlag.Short('h')

	app.Arg("script", "Script file (YAML). Runs the built-in demo when omitted.").ExistingFileVar(&cfg.Script)
	app.Flag("sound", "Play the script's audio.").Default("true").BoolVar(&cfg.Sound)
	app.Flag("audio", "Audio file, overriding the script's.").Short('a').StringVar(&cfg.Audio)
	app.Flag("columns", "Terminal columns, overriding detection.").Short('c').IntVar(&cfg.Columns)
	app.Flag("lines", "Terminal lines, overriding detection.").Short('l').IntVar(&cfg.Lines)
	app.Flag("term", "Terminal type, overriding $TERM.").StringVar(&cfg.Term)
	app.Flag("poll", "Timeline and credits polling interval.").Default(clock.DefaultPoll.String()).DurationVar(&cfg.Poll)
	app.Flag("art-row-delay", "Pause between rows of an art frame.").Default(timeline.DefaultArtRowDelay.String()).DurationVar(&cfg.ArtRowDelay)
	app.Flag("frame-pause", "Pause after the frame is drawn.").Default("1s").DurationVar(&cfg.FramePause)
	app.Flag("credits-duration", "Time the credits take, overriding the script's.").DurationVar(&cfg.CreditsDuration)
	app.Flag("keys", "Quit on Esc, q or Ctrl-C read from the keyboard.").Default("true").BoolVar(&cfg.Keys)
	app.Flag("log-file", "Write logs here instead of after the session ends.").Short('L').StringVar(&cfg.LogFile)
	app.Flag("debug", "Log at debug level.").Short('d').BoolVar(&cfg.Debug)
	app.Flag("env-file", "Environment overrides loaded before terminal detection.").Default(".env").StringVar(&cfg.EnvFile)

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}
	if cfg.Poll <= 0 {
		return nil, errors.New("--poll must be positive")
	}
	if cfg.Columns < 0 || cfg.Lines < 0 {
		return nil, errors.New("--columns and --lines must not be negative")
	}
	return cfg, nil
}

// LoadEnv applies the env file. A missing file is not an error; variables
// already set in the environment win.
func (c *Config) LoadEnv() error {
	if c.EnvFile == "" {
		return nil
	}
	if err := godotenv.Load(c.EnvFile); nil != err && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
