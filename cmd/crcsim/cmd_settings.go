package main

// ---------------------------------------------------------------------------
// cmd_settings.go — set, remove, or list per-source settings
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"os"
	"sort"
)

func cmdSettings(args []string) {
	if len(args) == 0 {
		cmdHelp("settings")
		os.Exit(1)
	}

	switch args[0] {
	case "set":
		cmdSettingsSet(args[1:])
	case "rm", "remove":
		cmdSettingsRm(args[1:])
	case "list", "ls":
		cmdSettingsList(args[1:])
	default:
		errorf("unknown settings subcommand %q — see: crcsim help settings", args[0])
	}
}

func cmdSettingsSet(args []string) {
	fs := flag.NewFlagSet("settings-set", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) < 3 {
		errorf("usage: crcsim settings set <source> <key> <value>\n\nExample:\n  crcsim settings set SIEM_Alert default_severity Medium")
	}
	source, key, value := remaining[0], remaining[1], remaining[2]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	if err := engine.Catalog.SetSetting(source, key, value); err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Set %s = %s on %s\n", green("✓"), bold(key), value, source)
}

func cmdSettingsRm(args []string) {
	fs := flag.NewFlagSet("settings-rm", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) < 2 {
		errorf("usage: crcsim settings rm <source> <key>")
	}
	source, key := remaining[0], remaining[1]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	if err := engine.Catalog.RemoveSetting(source, key); err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Removed setting %s from %s\n", green("✓"), bold(key), source)
}

func cmdSettingsList(args []string) {
	fs := flag.NewFlagSet("settings-list", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) == 0 {
		errorf("usage: crcsim settings list <source>")
	}
	source := remaining[0]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	desc, err := engine.Catalog.DescribeSource(source)
	if err != nil {
		errorf("%v", err)
	}

	if len(desc.Settings) == 0 {
		fmt.Printf("%s %s has no settings.\n", dim("▸"), source)
		return
	}
	keys := make([]string, 0, len(desc.Settings))
	for k := range desc.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s = %s\n", cyan(k), desc.Settings[k])
	}
}
