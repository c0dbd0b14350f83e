package main

// ---------------------------------------------------------------------------
// cmd_sources.go — list, add, remove, or inspect alert sources
// ---------------------------------------------------------------------------

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
)

func cmdSources(args []string) {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			cmdSourcesAdd(args[1:])
			return
		case "rm", "remove", "delete":
			cmdSourcesRm(args[1:])
			return
		case "show", "describe":
			cmdSourcesShow(args[1:])
			return
		}
	}

	fs := flag.NewFlagSet("sources", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	format := fs.String("format", "table", "Output format: table, json, csv")
	jsonOut := fs.Bool("json", false, "Output raw JSON (shorthand for --format json)")
	output := fs.String("output", "", "Write output to file")
	fs.Parse(args)

	if *jsonOut {
		*format = "json"
	}

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	w, cleanup := outputWriter(*output)
	defer cleanup()

	names := engine.Catalog.ListSources()

	if parseFormat(*format) == FormatJSON {
		out := make([]interface{}, 0, len(names))
		for _, name := range names {
			desc, err := engine.Catalog.DescribeSource(name)
			if err != nil {
				continue
			}
			out = append(out, desc)
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	headers := []string{"NAME", "FIELDS", "THRESHOLDS", "SETTINGS", "ITEMS"}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		desc, err := engine.Catalog.DescribeSource(name)
		if err != nil {
			continue
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", len(desc.Fields)),
			fmt.Sprintf("%d", len(desc.Thresholds)),
			fmt.Sprintf("%d", len(desc.Settings)),
			fmt.Sprintf("%d", len(desc.Items)),
		})
	}

	if parseFormat(*format) == FormatCSV {
		writeCSV(w, headers, rows)
		return
	}

	if len(rows) == 0 {
		fmt.Fprintf(w, "%s No alert sources registered.\n", dim("▸"))
		return
	}

	fmt.Fprintf(w, "%s Alert Sources (%d)\n\n", bold("📡"), len(rows))
	tbl := NewTable(w, headers...)
	for _, row := range rows {
		tbl.AddRow(row...)
	}
	tbl.Render()
	fmt.Fprintln(w)
}

func cmdSourcesAdd(args []string) {
	fs := flag.NewFlagSet("sources-add", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fields := fs.String("fields", "", "Comma-separated fields to declare")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) == 0 {
		errorf("source name required — usage: crcsim sources add <name> [--fields a,b,c]")
	}
	name := remaining[0]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	if err := engine.Catalog.DefineSource(name); err != nil {
		errorf("%v", err)
	}

	var declared []string
	if *fields != "" {
		for _, f := range strings.Split(*fields, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if err := engine.Catalog.AddField(name, f); err != nil {
				errorf("adding field %q: %v", f, err)
			}
			declared = append(declared, f)
		}
	}

	if len(declared) > 0 {
		fmt.Fprintf(os.Stdout, "%s Defined %s with %d field(s): %s\n",
			green("✓"), bold(name), len(declared), strings.Join(declared, ", "))
	} else {
		fmt.Fprintf(os.Stdout, "%s Defined %s (no fields yet — add some before simulating)\n",
			green("✓"), bold(name))
	}
}

func cmdSourcesRm(args []string) {
	fs := flag.NewFlagSet("sources-rm", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) == 0 {
		errorf("source name required — usage: crcsim sources rm <name>")
	}
	name := remaining[0]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	desc, err := engine.Catalog.DescribeSource(name)
	if err != nil {
		errorf("%v", err)
	}
	if err := engine.Catalog.DeleteSource(name); err != nil {
		errorf("%v", err)
	}

	if n := len(desc.Items); n > 0 {
		fmt.Fprintf(os.Stdout, "%s Deleted %s and its %d tracked item(s)\n", green("✓"), bold(name), n)
	} else {
		fmt.Fprintf(os.Stdout, "%s Deleted %s\n", green("✓"), bold(name))
	}
}

func cmdSourcesShow(args []string) {
	fs := flag.NewFlagSet("sources-show", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	format := fs.String("format", "table", "Output format: table, json")
	jsonOut := fs.Bool("json", false, "Output raw JSON")
	fs.Parse(args)

	if *jsonOut {
		*format = "json"
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		errorf("source name required — usage: crcsim sources show <name>")
	}
	name := remaining[0]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	desc, err := engine.Catalog.DescribeSource(name)
	if err != nil {
		errorf("%v", err)
	}

	if parseFormat(*format) == FormatJSON {
		data, _ := json.MarshalIndent(desc, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("%s %s\n\n", bold("📡"), bold(name))
	fmt.Printf("  %-12s %s\n", "Fields:", strings.Join(desc.Fields, ", "))
	if len(desc.Thresholds) > 0 {
		fmt.Printf("  %-12s\n", "Thresholds:")
		for field, th := range desc.Thresholds {
			fmt.Printf("    %s %s\n", cyan(field), describeThreshold(th))
		}
	}
	if len(desc.Settings) > 0 {
		fmt.Printf("  %-12s\n", "Settings:")
		for k, v := range desc.Settings {
			fmt.Printf("    %s = %s\n", cyan(k), v)
		}
	}
	if len(desc.Items) > 0 {
		fmt.Printf("  %-12s\n", "Items:")
		for _, it := range desc.Items {
			marker := ""
			if it.AutoGenerated {
				marker = dim(" (auto)")
			}
			fmt.Printf("    %s%s\n", it.ID, marker)
		}
	}
	fmt.Println()
}
