package main

// ---------------------------------------------------------------------------
// cmd_items.go — manage and search the tracked item pool
// ---------------------------------------------------------------------------

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

func cmdItems(args []string) {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			cmdItemsAdd(args[1:])
			return
		case "rm", "remove":
			cmdItemsRm(args[1:])
			return
		case "keep", "save":
			cmdItemsKeep(args[1:])
			return
		case "prune":
			cmdItemsPrune(args[1:])
			return
		}
	}

	fs := flag.NewFlagSet("items", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	sourceFilter := fs.String("source", "", "Restrict to one source")
	query := fs.String("query", "", "Case-insensitive substring match on item IDs")
	format := fs.String("format", "table", "Output format: table, json, csv")
	jsonOut := fs.Bool("json", false, "Output raw JSON")
	output := fs.String("output", "", "Write output to file")
	fs.Parse(args)

	if *jsonOut {
		*format = "json"
	}

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	w, cleanup := outputWriter(*output)
	defer cleanup()

	headers := []string{"SOURCE", "ID", "AUTO"}
	rows := make([][]string, 0)
	var jsonItems []map[string]interface{}
	for item := range engine.Items.Search(*query, *sourceFilter) {
		rows = append(rows, []string{item.Source, item.ID, fmt.Sprintf("%v", item.AutoGenerated)})
		jsonItems = append(jsonItems, map[string]interface{}{
			"source": item.Source,
			"id":     item.ID,
			"auto":   item.AutoGenerated,
		})
	}

	switch parseFormat(*format) {
	case FormatJSON:
		data, _ := json.MarshalIndent(jsonItems, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	case FormatCSV:
		writeCSV(w, headers, rows)
		return
	}

	if len(rows) == 0 {
		fmt.Fprintf(w, "%s No items match.\n", dim("▸"))
		return
	}

	fmt.Fprintf(w, "%s Items (%d)\n\n", bold("📦"), len(rows))
	tbl := NewTable(w, headers...)
	for _, row := range rows {
		tbl.AddRow(row...)
	}
	tbl.Render()
	fmt.Fprintln(w)
}

func cmdItemsAdd(args []string) {
	fs := flag.NewFlagSet("items-add", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) == 0 {
		errorf("usage: crcsim items add <source> [id]")
	}
	source := remaining[0]
	id := ""
	if len(remaining) > 1 {
		id = remaining[1]
	}

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	item, err := engine.Items.AddItem(source, id)
	if err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Added item %s to %s\n", green("✓"), bold(item.ID), source)
}

func cmdItemsRm(args []string) {
	fs := flag.NewFlagSet("items-rm", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) < 2 {
		errorf("usage: crcsim items rm <source> <id>")
	}
	source, id := remaining[0], remaining[1]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	if err := engine.Items.RemoveItem(source, id); err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Removed item %s from %s\n", green("✓"), bold(id), source)
}

func cmdItemsKeep(args []string) {
	fs := flag.NewFlagSet("items-keep", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) < 2 {
		errorf("usage: crcsim items keep <source> <id>")
	}
	source, id := remaining[0], remaining[1]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	if err := engine.Items.KeepItem(source, id); err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Item %s is now permanent\n", green("✓"), bold(id))
}

func cmdItemsPrune(args []string) {
	fs := flag.NewFlagSet("items-prune", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) == 0 {
		errorf("usage: crcsim items prune <source>")
	}
	source := remaining[0]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	dropped, err := engine.Items.PruneAuto(source)
	if err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Pruned %d auto-generated item(s) from %s\n", green("✓"), dropped, source)
}
