package main

// ---------------------------------------------------------------------------
// cmd_config.go — show, validate, or modify configuration; init starter files
// ---------------------------------------------------------------------------

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/crcsim-project/crcsim/internal/core"
	"gopkg.in/yaml.v3"
)

func cmdConfig(args []string) {
	if len(args) > 0 && args[0] == "set" {
		cmdConfigSet(args[1:])
		return
	}

	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	validate := fs.Bool("validate", false, "Validate config and exit")
	format := fs.String("format", "table", "Output format: table, json")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	output := fs.String("output", "", "Write output to file")
	fs.Parse(args)

	if *jsonOut {
		*format = "json"
	}

	path := envConfig(*configPath)
	cfg, err := core.LoadConfig(path)
	if err != nil {
		if *validate {
			fmt.Fprintf(os.Stderr, "%s Config invalid: %v\n", red("✗"), err)
			os.Exit(1)
		}
		errorf("loading config: %v", err)
	}

	if *validate {
		issues := cfg.Validate()
		if len(issues) > 0 {
			fmt.Fprintf(os.Stderr, "%s Config has %d issue(s):\n", red("✗"), len(issues))
			for _, issue := range issues {
				fmt.Fprintf(os.Stderr, "  - %s\n", issue)
			}
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "%s Config valid (%s).\n", green("✓"), path)
		os.Exit(0)
	}

	w, cleanup := outputWriter(*output)
	defer cleanup()

	if parseFormat(*format) == FormatJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			errorf("marshaling config: %v", err)
		}
		fmt.Fprintln(w, string(data))
		return
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		errorf("marshaling config: %v", err)
	}
	fmt.Fprint(w, string(data))
}

func cmdConfigSet(args []string) {
	fs := flag.NewFlagSet("config-set", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	fs.Parse(args)

	path := envConfig(*configPath)

	remaining := fs.Args()
	if len(remaining) < 2 {
		errorf("usage: crcsim config set <key> <value>\n\nExamples:\n  crcsim config set automation.interval 2s\n  crcsim config set logging.level debug\n  crcsim config set bus.enabled true")
	}

	key := remaining[0]
	value := remaining[1]

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			errorf("reading config: %v", err)
		}
		// Start from the defaults when no file exists yet.
		data, err = yaml.Marshal(core.DefaultConfig())
		if err != nil {
			errorf("marshaling defaults: %v", err)
		}
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		errorf("parsing config: %v", err)
	}

	parts := strings.Split(key, ".")
	if err := setNestedValue(raw, parts, value); err != nil {
		errorf("setting %s: %v", key, err)
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		errorf("marshaling config: %v", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		errorf("writing config: %v", err)
	}

	fmt.Fprintf(os.Stdout, "%s Set %s = %s in %s\n", green("✓"), bold(key), value, path)
}

func setNestedValue(m map[string]interface{}, path []string, value string) error {
	if len(path) == 0 {
		return fmt.Errorf("empty key path")
	}

	if len(path) == 1 {
		m[path[0]] = parseValue(value)
		return nil
	}

	next, ok := m[path[0]]
	if !ok {
		next = map[string]interface{}{}
		m[path[0]] = next
	}

	nextMap, ok := next.(map[string]interface{})
	if !ok {
		return fmt.Errorf("key %q is not a map", path[0])
	}

	return setNestedValue(nextMap, path[1:], value)
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot path")
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Parse(args)

	path := envConfig(*configPath)
	cfg := core.DefaultConfig()
	if s := envSnapshot(*snapshotPath); s != "" {
		cfg.Snapshot.Path = s
	}

	if _, err := os.Stat(path); err == nil && !*force {
		errorf("%s already exists — use --force to overwrite", path)
	}
	if err := core.SaveConfig(cfg, path); err != nil {
		errorf("writing config: %v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Wrote %s\n", green("✓"), path)

	if _, err := os.Stat(cfg.Snapshot.Path); err == nil && !*force {
		warnf("%s already exists, keeping it", cfg.Snapshot.Path)
		return
	}
	data, err := core.DefaultSnapshot().Marshal()
	if err != nil {
		errorf("marshaling bootstrap snapshot: %v", err)
	}
	if err := os.WriteFile(cfg.Snapshot.Path, data, 0644); err != nil {
		errorf("writing snapshot: %v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Wrote %s with the %d bootstrap sources\n",
		green("✓"), cfg.Snapshot.Path, core.DefaultSnapshot().Len())
}
