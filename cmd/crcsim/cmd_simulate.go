package main

// ---------------------------------------------------------------------------
// cmd_simulate.go — generate events on demand and print them
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"os"

	"github.com/crcsim-project/crcsim/internal/core"
)

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	count := fs.Int("n", 1, "Number of events to generate")
	countLong := fs.Int("count", 0, "Number of events to generate (alias for -n)")
	compact := fs.Bool("compact", false, "One JSON document per line instead of indented")
	output := fs.String("output", "", "Write events to file")
	verbose := fs.Bool("verbose", false, "Keep configured log level")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) == 0 {
		errorf("source name required — usage: crcsim simulate <source> [-n 5]")
	}
	source := remaining[0]

	n := *count
	if *countLong > 0 {
		n = *countLong
	}
	if n < 1 {
		errorf("event count must be positive, got %d", n)
	}

	cfg := loadEngineConfig(*configPath, *snapshotPath, *verbose)
	// The command owns event printing; the engine's own console emitter
	// would double-print.
	cfg.Emit.Console = false

	engine := openEngine(cfg)
	defer closeEngine(engine)

	w, cleanup := outputWriter(*output)
	defer cleanup()

	engine.Emitters.Add(core.NewWriterEmitter(w, !*compact))

	for i := 0; i < n; i++ {
		event, err := engine.Generator.Generate(source)
		if err != nil {
			errorf("%v", err)
		}
		if err := engine.Emitters.Emit(event); err != nil {
			errorf("emitting event: %v", err)
		}
	}

	if *output != "" {
		fmt.Fprintf(os.Stderr, "%s Wrote %d event(s) to %s\n", green("✓"), n, *output)
	}
}
