package main

// ---------------------------------------------------------------------------
// cmd_fields.go — manage the declared fields of a source
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"os"
)

func cmdFields(args []string) {
	if len(args) == 0 {
		cmdHelp("fields")
		os.Exit(1)
	}

	switch args[0] {
	case "add":
		cmdFieldsAdd(args[1:])
	case "rm", "remove":
		cmdFieldsRm(args[1:])
	case "list", "ls":
		cmdFieldsList(args[1:])
	default:
		errorf("unknown fields subcommand %q — see: crcsim help fields", args[0])
	}
}

func cmdFieldsAdd(args []string) {
	fs := flag.NewFlagSet("fields-add", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) < 2 {
		errorf("usage: crcsim fields add <source> <field>")
	}
	source, field := remaining[0], remaining[1]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	if err := engine.Catalog.AddField(source, field); err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Added field %s to %s\n", green("✓"), bold(field), source)
}

func cmdFieldsRm(args []string) {
	fs := flag.NewFlagSet("fields-rm", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) < 2 {
		errorf("usage: crcsim fields rm <source> <field>")
	}
	source, field := remaining[0], remaining[1]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	if err := engine.Catalog.RemoveField(source, field); err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Removed field %s from %s\n", green("✓"), bold(field), source)
}

func cmdFieldsList(args []string) {
	fs := flag.NewFlagSet("fields-list", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) == 0 {
		errorf("usage: crcsim fields list <source>")
	}
	source := remaining[0]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	desc, err := engine.Catalog.DescribeSource(source)
	if err != nil {
		errorf("%v", err)
	}

	if len(desc.Fields) == 0 {
		fmt.Printf("%s %s declares no fields yet.\n", dim("▸"), source)
		return
	}
	for _, f := range desc.Fields {
		marker := ""
		if _, ok := desc.Thresholds[f]; ok {
			marker = dim(" (thresholded)")
		}
		fmt.Printf("  %s%s\n", f, marker)
	}
}
