package main

// ---------------------------------------------------------------------------
// helpers.go — TTY detection, color, error helpers, env-based config
// ---------------------------------------------------------------------------

import (
	"fmt"
	"os"
	"strings"

	"github.com/crcsim-project/crcsim/internal/core"
)

// ---------------------------------------------------------------------------
// TTY / color helpers
// ---------------------------------------------------------------------------

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY(os.Stderr)
}

func ansi(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return code + s + "\033[0m"
}

func red(s string) string    { return ansi("\033[91m", s) }
func yellow(s string) string { return ansi("\033[93m", s) }
func green(s string) string  { return ansi("\033[32m", s) }
func cyan(s string) string   { return ansi("\033[36m", s) }
func dim(s string) string    { return ansi("\033[90m", s) }
func bold(s string) string   { return ansi("\033[1m", s) }

// ---------------------------------------------------------------------------
// Error / warn helpers (always to stderr)
// ---------------------------------------------------------------------------

func errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, red("error: ")+format+"\n", args...)
	os.Exit(1)
}

func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, yellow("warn: ")+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Env-based configuration
//
// Environment variables:
//   CRCSIM_CONFIG   — default config file path
//   CRCSIM_SNAPSHOT — catalog snapshot file override
// ---------------------------------------------------------------------------

// envConfig returns the config path, preferring flag > env > default.
func envConfig(flagVal string) string {
	if flagVal != "" && flagVal != "crcsim.yaml" {
		return flagVal
	}
	if e := os.Getenv("CRCSIM_CONFIG"); e != "" {
		return e
	}
	return flagVal
}

// envSnapshot returns the snapshot path, preferring flag > env.
func envSnapshot(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return os.Getenv("CRCSIM_SNAPSHOT")
}

// ---------------------------------------------------------------------------
// Engine helpers
// ---------------------------------------------------------------------------

// loadEngineConfig loads the config and applies CLI overrides. Interactive
// commands quiet the logger so tables are not interleaved with log lines;
// pass verbose to keep the configured level.
func loadEngineConfig(configPath, snapshotPath string, verbose bool) *core.Config {
	cfg, err := core.LoadConfig(envConfig(configPath))
	if err != nil {
		errorf("loading config: %v", err)
	}
	if s := envSnapshot(snapshotPath); s != "" {
		cfg.Snapshot.Path = s
	}
	if !verbose {
		cfg.Logging.Level = "error"
	}
	return cfg
}

// openEngine builds an engine from the config and opens it. Callers must
// Close it so catalog mutations land back in the snapshot file.
func openEngine(cfg *core.Config) *core.Engine {
	engine := core.NewEngine(cfg, nil)
	if err := engine.Open(); err != nil {
		errorf("%v", err)
	}
	return engine
}

// closeEngine persists and releases the engine, dying on failure so a
// mutation is never silently lost.
func closeEngine(engine *core.Engine) {
	if err := engine.Close(); err != nil {
		errorf("saving state: %v", err)
	}
}

// ---------------------------------------------------------------------------
// hasFlag checks if any of the given flags appear in args.
// ---------------------------------------------------------------------------

func hasFlag(args []string, flags ...string) bool {
	for _, a := range args {
		for _, f := range flags {
			if a == f {
				return true
			}
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Suggest — typo correction for unknown commands
// ---------------------------------------------------------------------------

func suggest(input string) string {
	cmds := []string{"sources", "fields", "thresholds", "settings", "items",
		"simulate", "automate", "config", "init", "version", "help"}
	input = strings.ToLower(input)
	for _, c := range cmds {
		if strings.HasPrefix(c, input) || strings.HasPrefix(input, c) {
			return c
		}
	}
	for _, c := range cmds {
		if len(c) == len(input) {
			diff := 0
			for i := range c {
				if c[i] != input[i] {
					diff++
				}
			}
			if diff <= 1 {
				return c
			}
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// parseValue converts a string to the appropriate Go type.
// ---------------------------------------------------------------------------

func parseValue(s string) interface{} {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := fmt.Sscanf(s, "%d", new(int)); n == 1 && err == nil {
		var i int
		fmt.Sscanf(s, "%d", &i)
		return i
	}
	if n, err := fmt.Sscanf(s, "%f", new(float64)); n == 1 && err == nil && strings.Contains(s, ".") {
		var f float64
		fmt.Sscanf(s, "%f", &f)
		return f
	}
	return s
}
