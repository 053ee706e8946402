// Command markcorrect annotates homework photos from the command line by
// replaying recorded pointer input against the annotation engine.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/markcorrect/internal/config"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs         *flag.FlagSet
	program    string
	verbose    bool
	configPath string
	config     *config.Config
	log        zerolog.Logger
	stdout     io.Writer
	stderr     io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot(stdout, stderr io.Writer) *root {
	r := &root{
		fs:      flag.NewFlagSet("markcorrect", flag.ContinueOnError),
		program: "markcorrect",
		config:  config.New(),
		log:     zerolog.Nop(),
		stdout:  stdout,
		stderr:  stderr,
	}
	r.fs.BoolVar(&r.verbose, "v", false, "log debug detail to stderr")
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to use")
	r.fs.Usage = usageFunc(r)
	r.fs.SetOutput(io.Discard)
	return r
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return &UsageError{of: r}
	}
	r.log = newLogger(r.stderr, r.verbose)
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}

	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		r.log.Warn().Err(err).Msg("failed to load config, using defaults")
		cfg = config.New()
	}
	r.config = cfg

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "annotate":
		cmd, err = parseAnnotateCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot(os.Stdout, os.Stderr)
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		r.log.Error().Err(err).Msg(r.program + " failed")
		os.Exit(1)
	}
}
