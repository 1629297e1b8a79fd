package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/hackorsnooze/internal/flagx"
)

var ownFlags = []string{"-a", "-d", "-t", "-i", "-r", "-n", "-l", "-color"}

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the hack-or-snooze API
//	-d string   path of the local session database
//	-t int      request timeout (seconds)
//	-i int      online check interval (seconds)
//	-r float    client-side request rate limit (requests per second, 0 = off)
//	-n int      number of stories to fetch
//	-l string   log level (debug, info, warn, error)
//	-color      auto, always or never
//
// Only the flags listed above are picked out of args, so other components
// may own the rest of the command line.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "session database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "requests per second")
	fs.IntVar(&cfg.StoriesLimit, "n", cfg.StoriesLimit, "stories to fetch")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "color output: auto, always, never")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Seconds only replace a file value when given on the command line.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
