package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/crcsim-project/crcsim/internal/core"
)

// ─── suggest ──────────────────────────────────────────────────────────────────

func TestSuggest_PrefixMatch(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"sou", "sources"},
		{"fie", "fields"},
		{"thr", "thresholds"},
		{"set", "settings"},
		{"ite", "items"},
		{"sim", "simulate"},
		{"auto", "automate"},
		{"con", "config"},
		{"ver", "version"},
		{"hel", "help"},
	}
	for _, tc := range tests {
		got := suggest(tc.input)
		if got != tc.want {
			t.Errorf("suggest(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSuggest_TypoCorrection(t *testing.T) {
	// Single character difference
	got := suggest("confiq")
	if got != "config" {
		t.Errorf("suggest('confiq') = %q, want 'config'", got)
	}
}

func TestSuggest_NoMatch(t *testing.T) {
	got := suggest("zzzzzzzzz")
	if got != "" {
		t.Errorf("suggest('zzzzzzzzz') = %q, want empty", got)
	}
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	got := suggest("SOURCES")
	if got != "sources" {
		t.Errorf("suggest('SOURCES') = %q, want 'sources'", got)
	}
}

// ─── parseValue ───────────────────────────────────────────────────────────────

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  interface{}
	}{
		{"true", true},
		{"false", false},
		{"True", true},
		{"False", false},
		{"42", 42},
		{"hello", "hello"},
		{"", ""},
	}
	for _, tc := range tests {
		got := parseValue(tc.input)
		if got != tc.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tc.input, got, got, tc.want)
		}
	}
}

// ─── setNestedValue ───────────────────────────────────────────────────────────

func TestSetNestedValue_SingleLevel(t *testing.T) {
	m := map[string]interface{}{}
	err := setNestedValue(m, []string{"key"}, "value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["key"] != "value" {
		t.Errorf("m[key] = %v, want 'value'", m["key"])
	}
}

func TestSetNestedValue_MultiLevel(t *testing.T) {
	m := map[string]interface{}{
		"automation": map[string]interface{}{
			"interval": "5s",
		},
	}
	err := setNestedValue(m, []string{"bus", "port"}, "4222")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bus := m["bus"].(map[string]interface{})
	if bus["port"] != 4222 {
		t.Errorf("bus.port = %v, want 4222", bus["port"])
	}
}

func TestSetNestedValue_EmptyPath(t *testing.T) {
	m := map[string]interface{}{}
	err := setNestedValue(m, []string{}, "value")
	if err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSetNestedValue_NotAMap(t *testing.T) {
	m := map[string]interface{}{
		"key": "string_value",
	}
	err := setNestedValue(m, []string{"key", "sub"}, "value")
	if err == nil {
		t.Error("expected error when intermediate is not a map")
	}
}

// ─── envConfig / envSnapshot ──────────────────────────────────────────────────

func TestEnvConfig_FlagOverride(t *testing.T) {
	got := envConfig("/custom/path.yaml")
	if got != "/custom/path.yaml" {
		t.Errorf("envConfig = %q, want /custom/path.yaml", got)
	}
}

func TestEnvConfig_Default(t *testing.T) {
	os.Unsetenv("CRCSIM_CONFIG")
	got := envConfig("crcsim.yaml")
	if got != "crcsim.yaml" {
		t.Errorf("envConfig = %q, want crcsim.yaml", got)
	}
}

func TestEnvSnapshot_FlagOverride(t *testing.T) {
	got := envSnapshot("/custom/snap.json")
	if got != "/custom/snap.json" {
		t.Errorf("envSnapshot = %q, want /custom/snap.json", got)
	}
}

func TestEnvSnapshot_FromEnv(t *testing.T) {
	os.Setenv("CRCSIM_SNAPSHOT", "/env/snap.json")
	defer os.Unsetenv("CRCSIM_SNAPSHOT")
	got := envSnapshot("")
	if got != "/env/snap.json" {
		t.Errorf("envSnapshot = %q, want /env/snap.json", got)
	}
}

// ─── OutputFormat ─────────────────────────────────────────────────────────────

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"csv", FormatCSV},
		{"CSV", FormatCSV},
		{"table", FormatTable},
		{"", FormatTable},
		{"unknown", FormatTable},
	}
	for _, tc := range tests {
		got := parseFormat(tc.input)
		if got != tc.want {
			t.Errorf("parseFormat(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		f    OutputFormat
		want string
	}{
		{FormatTable, "table"},
		{FormatJSON, "json"},
		{FormatCSV, "csv"},
	}
	for _, tc := range tests {
		if got := formatName(tc.f); got != tc.want {
			t.Errorf("formatName(%v) = %q, want %q", tc.f, got, tc.want)
		}
	}
}

// ─── Table ────────────────────────────────────────────────────────────────────

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "SOURCE", "ID")
	tbl.AddRow("Motion_Sensor_Alert", "MOT-001")
	tbl.AddRow("IR_Sensor_Alert", "IRS-001")
	tbl.Render()

	out := buf.String()
	for _, want := range []string{"SOURCE", "ID", "MOT-001", "IRS-001", "┌", "└"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf)
	tbl.Render()
	if buf.Len() != 0 {
		t.Errorf("headerless table rendered output: %q", buf.String())
	}
}

func TestTable_PadShortRow(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "A", "B", "C")
	tbl.AddRow("only")
	tbl.Render()
	if !strings.Contains(buf.String(), "only") {
		t.Errorf("padded row missing value:\n%s", buf.String())
	}
}

// ─── writeCSV ─────────────────────────────────────────────────────────────────

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	writeCSV(&buf, []string{"source", "id"}, [][]string{
		{"Motion_Sensor_Alert", "MOT-001"},
		{"IR_Sensor_Alert", "IRS-001"},
	})

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3 (header + 2 rows)", len(records))
	}
	if records[0][0] != "source" || records[2][1] != "IRS-001" {
		t.Errorf("unexpected CSV content: %v", records)
	}
}

// ─── describeThreshold ────────────────────────────────────────────────────────

func TestDescribeThreshold(t *testing.T) {
	lo, hi := 0.0, 3.0
	rangeTh := core.Threshold{Min: &lo, Max: &hi, Escalate: "High"}
	got := describeThreshold(rangeTh)
	if !strings.Contains(got, "[0, 3]") || !strings.Contains(got, "High") {
		t.Errorf("range rendering = %q", got)
	}

	trigTh := core.Threshold{Triggers: []string{"Fence Cut"}, TargetField: "status", Value: "Breached"}
	got = describeThreshold(trigTh)
	if !strings.Contains(got, "Fence Cut") || !strings.Contains(got, "Breached") || !strings.Contains(got, "status") {
		t.Errorf("trigger rendering = %q", got)
	}

	if got := describeThreshold(core.Threshold{}); !strings.Contains(got, "empty") {
		t.Errorf("empty rendering = %q", got)
	}
}

// ─── banner / version / usage ─────────────────────────────────────────────────

func TestBannerText(t *testing.T) {
	if !strings.Contains(bannerText(), "SIMULATOR") {
		t.Error("banner missing title")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	printVersion(&buf)
	if !strings.Contains(buf.String(), "crcsim v") {
		t.Errorf("version output = %q", buf.String())
	}
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf)
	out := buf.String()
	for _, cmd := range []string{"sources", "thresholds", "items", "simulate", "automate"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("usage missing command %q", cmd)
		}
	}
}

func TestCommandHelpCoversDispatcher(t *testing.T) {
	for _, cmd := range []string{"sources", "fields", "thresholds", "settings",
		"items", "simulate", "automate", "config", "init"} {
		if _, ok := commandHelp[cmd]; !ok {
			t.Errorf("no help text for %q", cmd)
		}
	}
}
