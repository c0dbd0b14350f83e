package main

// ---------------------------------------------------------------------------
// banner.go — ASCII art banner, version/usage printing, per-command help
// ---------------------------------------------------------------------------

import (
	"fmt"
	"io"
	"os"
	goruntime "runtime"
	"runtime/debug"
)

func bannerText() string {
	if !colorEnabled() {
		return `
    ╔══════════════════════════════════════════════════════════╗
    ║                                                          ║
    ║     ██████╗ ██████╗  ██████╗ ███████╗ ██╗ ███╗   ███╗   ║
    ║    ██╔════╝ ██╔══██╗██╔════╝ ██╔════╝ ██║ ████╗ ████║   ║
    ║    ██║      ██████╔╝██║      ███████╗ ██║ ██╔████╔██║   ║
    ║    ██║      ██╔══██╗██║      ╚════██║ ██║ ██║╚██╔╝██║   ║
    ║    ╚██████╗ ██║  ██║╚██████╗ ███████║ ██║ ██║ ╚═╝ ██║   ║
    ║     ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝ ╚═╝ ╚═╝     ╚═╝   ║
    ║                                                          ║
    ║        SYNTHETIC ALERT SOURCE SIMULATOR                  ║
    ║                                                          ║
    ╚══════════════════════════════════════════════════════════╝
`
	}
	return "\033[36m" + `
    ╔══════════════════════════════════════════════════════════╗
    ║                                                          ║
    ║` + "\033[97m" + `     ██████╗ ██████╗  ██████╗ ███████╗ ██╗ ███╗   ███╗` + "\033[36m" + `   ║
    ║` + "\033[97m" + `    ██╔════╝ ██╔══██╗██╔════╝ ██╔════╝ ██║ ████╗ ████║` + "\033[36m" + `   ║
    ║` + "\033[91m" + `    ██║      ██████╔╝██║      ███████╗ ██║ ██╔████╔██║` + "\033[36m" + `   ║
    ║` + "\033[91m" + `    ██║      ██╔══██╗██║      ╚════██║ ██║ ██║╚██╔╝██║` + "\033[36m" + `   ║
    ║` + "\033[93m" + `    ╚██████╗ ██║  ██║╚██████╗ ███████║ ██║ ██║ ╚═╝ ██║` + "\033[36m" + `   ║
    ║` + "\033[93m" + `     ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝ ╚═╝ ╚═╝     ╚═╝` + "\033[36m" + `   ║
    ║                                                          ║
    ║` + "\033[97m" + `        SYNTHETIC ALERT SOURCE SIMULATOR` + "\033[36m" + `                  ║
    ║                                                          ║
    ╚══════════════════════════════════════════════════════════╝` + "\033[0m" + `
`
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "crcsim v%s", version)
	if commit != "dev" {
		fmt.Fprintf(w, " (%s)", commit[:min(7, len(commit))])
	}
	if buildDate != "unknown" {
		fmt.Fprintf(w, " built %s", buildDate)
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprintf(w, " %s", bi.GoVersion)
	}
	fmt.Fprintf(w, " %s/%s", goruntime.GOOS, goruntime.GOARCH)
	fmt.Fprintln(w)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, bannerText())
	fmt.Fprintf(w, "  %s\n\n", dim("v"+version))
	fmt.Fprintf(w, "%s\n\n", bold("USAGE"))
	fmt.Fprintf(w, "  crcsim <command> [flags]\n\n")
	fmt.Fprintf(w, "%s\n\n", bold("COMMANDS"))
	fmt.Fprintf(w, "  %-14s  %s\n", bold("sources"), "List, add, remove, or inspect alert sources")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("fields"), "Manage the declared fields of a source")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("thresholds"), "Set, remove, or list escalation thresholds")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("settings"), "Set, remove, or list per-source settings")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("items"), "Manage and search the tracked item pool")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("simulate"), "Generate events on demand and print them")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("automate"), "Generate events on a timer until interrupted")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("config"), "Show, validate, or set engine configuration")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("init"), "Generate a starter config and snapshot")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("version"), "Print version and build info")
	fmt.Fprintf(w, "  %-14s  %s\n", bold("help"), "Show help for a command")
	fmt.Fprintf(w, "\n%s\n\n", bold("GLOBAL FLAGS"))
	fmt.Fprintf(w, "  %-22s  %s\n", "--config <path>", "Config file path (default: crcsim.yaml, env: CRCSIM_CONFIG)")
	fmt.Fprintf(w, "  %-22s  %s\n", "--snapshot <path>", "Catalog snapshot override (env: CRCSIM_SNAPSHOT)")
	fmt.Fprintf(w, "  %-22s  %s\n", "--format <fmt>", "Output format: table, json, csv (default: table)")
	fmt.Fprintf(w, "  %-22s  %s\n", "--version, -V", "Print version and exit")
	fmt.Fprintf(w, "  %-22s  %s\n", "--help, -h", "Show help")
	fmt.Fprintf(w, "\n%s\n\n", bold("ENVIRONMENT VARIABLES"))
	fmt.Fprintf(w, "  %-22s  %s\n", "CRCSIM_CONFIG", "Default config file path")
	fmt.Fprintf(w, "  %-22s  %s\n", "CRCSIM_SNAPSHOT", "Catalog snapshot file override")
	fmt.Fprintf(w, "\n%s\n\n", bold("EXAMPLES"))
	fmt.Fprintf(w, "  %s\n", dim("# List the registered alert sources"))
	fmt.Fprintf(w, "  crcsim sources\n\n")
	fmt.Fprintf(w, "  %s\n", dim("# Define a new source with fields"))
	fmt.Fprintf(w, "  crcsim sources add Badge_Reader_Alert --fields itemId,location,status\n\n")
	fmt.Fprintf(w, "  %s\n", dim("# Escalate severity when a score crosses 0.8"))
	fmt.Fprintf(w, "  crcsim thresholds set SIEM_Alert threat_score --max 0.8 --escalate Critical --target severity\n\n")
	fmt.Fprintf(w, "  %s\n", dim("# Generate five Login_Alert events"))
	fmt.Fprintf(w, "  crcsim simulate Login_Alert -n 5\n\n")
	fmt.Fprintf(w, "  %s\n", dim("# Run all sources every 2 seconds until Ctrl-C"))
	fmt.Fprintf(w, "  crcsim automate --interval 2s\n\n")
	fmt.Fprintf(w, "Run %s for detailed help on any command.\n\n", bold("crcsim help <command>"))
}

var commandHelp = map[string]string{
	"sources": `Manage alert source definitions.

USAGE
  crcsim sources [flags]                      List sources
  crcsim sources add <name> [flags]           Define a new source
  crcsim sources rm <name>                    Delete a source and its items
  crcsim sources show <name> [flags]          Show one source in full

FLAGS
  --fields <a,b,c>   Comma-separated fields to declare on add
  --format <fmt>     Output format: table, json, csv
  --output <path>    Write output to file`,

	"fields": `Manage the declared fields of a source.

USAGE
  crcsim fields list <source>
  crcsim fields add <source> <field>
  crcsim fields rm <source> <field>

A field referenced by a threshold cannot be removed until the
threshold is removed first.`,

	"thresholds": `Manage escalation thresholds on declared fields.

USAGE
  crcsim thresholds list <source>
  crcsim thresholds set <source> <field> [flags]
  crcsim thresholds rm <source> <field>

FLAGS (set)
  --min <n>             Lower bound of the allowed numeric range
  --max <n>             Upper bound of the allowed numeric range
  --escalate <value>    Replacement value when the range is crossed
  --triggers <a,b>      Comma-separated values that fire the override
  --target <field>      Field receiving the override (default: the field itself)
  --value <value>       Override value for trigger thresholds

EXAMPLES
  crcsim thresholds set Smart_Fence_Alert vibrationLevel --min 0 --max 3 --escalate High
  crcsim thresholds set Smart_Fence_Alert alertType --triggers "Fence Cut,Climb Attempt" --target status --value Breached`,

	"settings": `Manage free-form per-source settings.

USAGE
  crcsim settings list <source>
  crcsim settings set <source> <key> <value>
  crcsim settings rm <source> <key>

Settings named default_<field> pin a field's generated value, e.g.
default_severity Medium.`,

	"items": `Manage the pool of tracked items referenced by generated events.

USAGE
  crcsim items [flags]                        List / search items
  crcsim items add <source> [id]              Add an item (id generated if omitted)
  crcsim items rm <source> <id>               Remove an item
  crcsim items keep <source> <id>             Clear an item's auto-generated flag
  crcsim items prune <source>                 Drop auto-generated items

FLAGS
  --source <name>    Restrict listing to one source
  --query <text>     Case-insensitive substring match on item IDs
  --format <fmt>     Output format: table, json, csv`,

	"simulate": `Generate events on demand and print them.

USAGE
  crcsim simulate <source> [flags]

FLAGS
  -n, --count <n>    Number of events to generate (default: 1)
  --compact          One JSON document per line instead of indented
  --output <path>    Write events to file`,

	"automate": `Generate events on a timer until interrupted (Ctrl-C).

USAGE
  crcsim automate [flags]

FLAGS
  --interval <dur>    Tick interval, e.g. 2s, 500ms (default: from config)
  --sources <a,b>     Comma-separated sources (default: all registered,
                      resolved fresh on every tick)`,

	"config": `Show, validate, or set engine configuration.

USAGE
  crcsim config [flags]                       Print the effective config
  crcsim config set <key> <value>             Set a config key
  crcsim config --validate                    Validate and exit

EXAMPLES
  crcsim config set automation.interval 2s
  crcsim config set bus.enabled true`,

	"init": `Generate a starter config file and bootstrap snapshot.

USAGE
  crcsim init [flags]

FLAGS
  --force    Overwrite existing files`,
}

func cmdHelp(cmd string) {
	if text, ok := commandHelp[cmd]; ok {
		fmt.Fprintln(os.Stdout, text)
		return
	}
	printUsage(os.Stdout)
}
