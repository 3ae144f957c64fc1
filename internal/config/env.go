// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSetAny reports whether any of the named flags was given on the
// command line. Aliased flags (short and long form) pass both names.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				set = true
			}
		}
	})
	return set
}

// envOverride binds one PRIMECALC_ environment variable to the flag name(s)
// it mirrors. The variable only applies when none of those flags were set,
// giving the precedence: CLI flags > environment > defaults.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

var envOverrides = []envOverride{
	{"WORKERS", []string{"workers", "w"}, func(c *AppConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}},
	{"MAX_N", []string{"max-n"}, func(c *AppConfig, v string) {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.MaxN = n
		}
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}},
	{"ADDR", []string{"addr"}, func(c *AppConfig, v string) {
		c.Addr = v
	}},
	{"SERVE", []string{"serve"}, func(c *AppConfig, v string) {
		c.Serve = parseBoolEnv(v, c.Serve)
	}},
	{"REPL", []string{"repl"}, func(c *AppConfig, v string) {
		c.REPL = parseBoolEnv(v, c.REPL)
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"ASYNC", []string{"async"}, func(c *AppConfig, v string) {
		c.Async = parseBoolEnv(v, c.Async)
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitive.
// Anything else keeps defaultVal, so a typo cannot silently flip a mode.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides walks the override table and applies every PRIMECALC_
// variable whose corresponding flag was left at its default.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
