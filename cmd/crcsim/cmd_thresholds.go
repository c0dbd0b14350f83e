package main

// ---------------------------------------------------------------------------
// cmd_thresholds.go — set, remove, or list escalation thresholds
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/crcsim-project/crcsim/internal/core"
)

func cmdThresholds(args []string) {
	if len(args) == 0 {
		cmdHelp("thresholds")
		os.Exit(1)
	}

	switch args[0] {
	case "set":
		cmdThresholdsSet(args[1:])
	case "rm", "remove":
		cmdThresholdsRm(args[1:])
	case "list", "ls":
		cmdThresholdsList(args[1:])
	default:
		errorf("unknown thresholds subcommand %q — see: crcsim help thresholds", args[0])
	}
}

func cmdThresholdsSet(args []string) {
	fs := flag.NewFlagSet("thresholds-set", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	minStr := fs.String("min", "", "Lower bound of the allowed numeric range")
	maxStr := fs.String("max", "", "Upper bound of the allowed numeric range")
	escalate := fs.String("escalate", "", "Replacement value when the range is crossed")
	triggers := fs.String("triggers", "", "Comma-separated values that fire the override")
	target := fs.String("target", "", "Field receiving the override")
	value := fs.String("value", "", "Override value for trigger thresholds")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) < 2 {
		errorf("usage: crcsim thresholds set <source> <field> [flags]")
	}
	source, field := remaining[0], remaining[1]

	th := core.Threshold{
		Escalate:    *escalate,
		TargetField: *target,
		Value:       *value,
	}
	if *minStr != "" {
		v, err := strconv.ParseFloat(*minStr, 64)
		if err != nil {
			errorf("invalid --min %q: %v", *minStr, err)
		}
		th.Min = &v
	}
	if *maxStr != "" {
		v, err := strconv.ParseFloat(*maxStr, 64)
		if err != nil {
			errorf("invalid --max %q: %v", *maxStr, err)
		}
		th.Max = &v
	}
	if *triggers != "" {
		for _, t := range strings.Split(*triggers, ",") {
			if t = strings.TrimSpace(t); t != "" {
				th.Triggers = append(th.Triggers, t)
			}
		}
	}

	if th.Min == nil && th.Max == nil && len(th.Triggers) == 0 {
		errorf("a threshold needs --min/--max or --triggers — see: crcsim help thresholds")
	}
	if (th.Min != nil || th.Max != nil) && th.Escalate == "" {
		errorf("numeric thresholds need --escalate <value>")
	}
	if len(th.Triggers) > 0 && th.Value == "" {
		errorf("trigger thresholds need --value <value>")
	}

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	if err := engine.Catalog.SetThreshold(source, field, th); err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Threshold on %s.%s: %s\n",
		green("✓"), source, bold(field), describeThreshold(th))
}

func cmdThresholdsRm(args []string) {
	fs := flag.NewFlagSet("thresholds-rm", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) < 2 {
		errorf("usage: crcsim thresholds rm <source> <field>")
	}
	source, field := remaining[0], remaining[1]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	if err := engine.Catalog.RemoveThreshold(source, field); err != nil {
		errorf("%v", err)
	}
	fmt.Fprintf(os.Stdout, "%s Removed threshold on %s.%s\n", green("✓"), source, bold(field))
}

func cmdThresholdsList(args []string) {
	fs := flag.NewFlagSet("thresholds-list", flag.ExitOnError)
	configPath := fs.String("config", "crcsim.yaml", "Config file path")
	snapshotPath := fs.String("snapshot", "", "Catalog snapshot override")
	fs.Parse(args)

	remaining := fs.Args()
	if len(remaining) == 0 {
		errorf("usage: crcsim thresholds list <source>")
	}
	source := remaining[0]

	engine := openEngine(loadEngineConfig(*configPath, *snapshotPath, false))
	defer closeEngine(engine)

	desc, err := engine.Catalog.DescribeSource(source)
	if err != nil {
		errorf("%v", err)
	}

	if len(desc.Thresholds) == 0 {
		fmt.Printf("%s %s has no thresholds.\n", dim("▸"), source)
		return
	}
	// Walk declared field order so output is stable.
	for _, field := range desc.Fields {
		th, ok := desc.Thresholds[field]
		if !ok {
			continue
		}
		fmt.Printf("  %s %s\n", cyan(field), describeThreshold(th))
	}
}

// describeThreshold renders a threshold in one line.
func describeThreshold(th core.Threshold) string {
	var parts []string
	if th.Min != nil || th.Max != nil {
		lo, hi := "-inf", "+inf"
		if th.Min != nil {
			lo = strconv.FormatFloat(*th.Min, 'f', -1, 64)
		}
		if th.Max != nil {
			hi = strconv.FormatFloat(*th.Max, 'f', -1, 64)
		}
		parts = append(parts, fmt.Sprintf("range [%s, %s]", lo, hi))
		if th.Escalate != "" {
			parts = append(parts, fmt.Sprintf("outside ⇒ %s", th.Escalate))
		}
	}
	if len(th.Triggers) > 0 {
		parts = append(parts, fmt.Sprintf("triggers {%s} ⇒ %s", strings.Join(th.Triggers, ", "), th.Value))
	}
	if th.TargetField != "" {
		parts = append(parts, fmt.Sprintf("on %s", th.TargetField))
	}
	if len(parts) == 0 {
		return dim("(empty)")
	}
	return strings.Join(parts, ", ")
}
