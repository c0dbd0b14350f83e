package main

// ---------------------------------------------------------------------------
// cmd_automate.go — generate events on a timer until interrupted
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func cmdAutomate(args []string) {
	fs := flag.NewFlagSet("automate", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	intervalStr := fs.String("interval", "", "Tick interval, e.g. 2s, 500ms (default: from config)")
	sourcesFlag := fs.String("sources", "", "Comma-separated sources (default: all registered)")
	fs.Parse(args)

	var interval time.Duration
	if *intervalStr != "" {
		d, err := time.ParseDuration(*intervalStr)
		if err != nil {
			errorf("invalid interval %q: %v", *intervalStr, err)
		}
		interval = d
	}

	var sources []string
	if *sourcesFlag != "" {
		for _, s := range strings.Split(*sourcesFlag, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sources = append(sources, s)
			}
		}
	}

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, true))
	defer closeEngine(engine)

	which := "all registered sources"
	if len(sources) > 0 {
		which = strings.Join(sources, ", ")
	} else if len(engine.Config.Automation.Sources) > 0 {
		which = strings.Join(engine.Config.Automation.Sources, ", ")
	}
	shown := interval
	if shown <= 0 {
		shown = engine.Config.Automation.Interval
	}
	fmt.Fprintf(os.Stderr, "%s Automating %s every %s — Ctrl-C to stop\n",
		bold("▸"), cyan(which), shown)

	if err := engine.Automate(sources, interval); err != nil {
		errorf("%v", err)
	}

	stats := engine.Scheduler.Stats()
	fmt.Fprintf(os.Stderr, "%s Generated %d event(s) over %d tick(s), %d failure(s)\n",
		green("✓"), stats["generated"], stats["ticks"], stats["failures"])
}
