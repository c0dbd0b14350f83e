package core

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

// fixedFabricator returns one constant value per hint so generation is
// fully deterministic in tests.
type fixedFabricator struct{}

func (fixedFabricator) Fabricate(hint string) any { return "v-" + hint }

func newTestGenerator(t *testing.T) (*Catalog, *ItemRegistry, *Generator) {
	t.Helper()
	c := newTestCatalog()
	reg := NewItemRegistry(c, zerolog.Nop())
	gen := NewGenerator(c, reg, fixedFabricator{}, zerolog.Nop())
	return c, reg, gen
}

func restoreDefaults(t *testing.T, c *Catalog) {
	t.Helper()
	if err := c.Restore(DefaultSnapshot()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
}

func TestGenerator_Errors(t *testing.T) {
	c, _, gen := newTestGenerator(t)

	if _, err := gen.Generate("Ghost"); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("unknown source: got %v, want ErrUnknownSource", err)
	}

	if err := c.DefineSource("Empty"); err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Generate("Empty"); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("zero-field source: got %v, want ErrUnknownSource", err)
	}
}

func TestGenerator_FieldSetMatchesSchema(t *testing.T) {
	c, _, gen := newTestGenerator(t)
	restoreDefaults(t, c)

	// Every registered source generates exactly its declared field set,
	// in declaration order, no extras.
	for _, source := range c.ListSources() {
		event, err := gen.Generate(source)
		if err != nil {
			t.Fatalf("Generate(%q): %v", source, err)
		}
		desc, _ := c.DescribeSource(source)
		got := event.Data.Fields()
		if len(got) != len(desc.Fields) {
			t.Fatalf("%s: field count = %d, want %d", source, len(got), len(desc.Fields))
		}
		for i, f := range desc.Fields {
			if got[i] != f {
				t.Errorf("%s: field[%d] = %q, want %q", source, i, got[i], f)
			}
		}
		if event.ID == "" || event.Source != source || event.Timestamp.IsZero() {
			t.Errorf("%s: incomplete event envelope: %+v", source, event)
		}
	}
}

func TestGenerator_SettingsDefaultApplied(t *testing.T) {
	c, _, gen := newTestGenerator(t)
	restoreDefaults(t, c)

	// Login_Alert carries default_status=Success; absent any threshold
	// override, loginStatus comes from the setting.
	event, err := gen.Generate("Login_Alert")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	status, _ := event.Data.Get("loginStatus")
	if status != "Success" {
		t.Errorf("loginStatus = %v, want Success", status)
	}
	username, _ := event.Data.Get("username")
	if username != "v-username" {
		t.Errorf("username = %v, want fabricated v-username", username)
	}
}

func TestGenerator_IdentifierFieldsReferenceItems(t *testing.T) {
	c, reg, gen := newTestGenerator(t)
	restoreDefaults(t, c)

	pool, _ := reg.ListItems("Motion_Sensor_Alert")
	if len(pool) != 0 {
		t.Fatalf("expected empty bootstrap pool, got %v", pool)
	}

	event, err := gen.Generate("Motion_Sensor_Alert")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	itemID, _ := event.Data.Get("itemId")

	pool, _ = reg.ListItems("Motion_Sensor_Alert")
	if len(pool) != 1 {
		t.Fatalf("expected exactly one auto-created item, got %d", len(pool))
	}
	if pool[0].ID != itemID {
		t.Errorf("event itemId = %v, pool holds %v", itemID, pool[0].ID)
	}

	// A second generation reuses the same item rather than growing the pool.
	event2, _ := gen.Generate("Motion_Sensor_Alert")
	itemID2, _ := event2.Data.Get("itemId")
	if itemID2 != itemID {
		t.Errorf("second event itemId = %v, want reuse of %v", itemID2, itemID)
	}
	pool, _ = reg.ListItems("Motion_Sensor_Alert")
	if len(pool) != 1 {
		t.Errorf("pool grew to %d on reuse", len(pool))
	}
}

func TestGenerator_ThresholdOverrideApplied(t *testing.T) {
	c, _, gen := newTestGenerator(t)
	mustDefine(t, c, "Smart_Fence_Alert", "alertType", "status")

	// Every fabricated alertType value triggers the override, so repeated
	// generation always lands on Breached.
	th := Threshold{Triggers: []string{"v-text"}, TargetField: "status", Value: "Breached"}
	if err := c.SetThreshold("Smart_Fence_Alert", "alertType", th); err != nil {
		t.Fatalf("SetThreshold: %v", err)
	}

	for i := 0; i < 5; i++ {
		event, err := gen.Generate("Smart_Fence_Alert")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		status, _ := event.Data.Get("status")
		if status != "Breached" {
			t.Fatalf("status = %v, want Breached", status)
		}
	}
}

func TestGenerator_NumericEscalation(t *testing.T) {
	c, _, gen := newTestGenerator(t)
	mustDefine(t, c, "SIEM_Alert", "severity", "threat_score")
	if err := c.SetSetting("SIEM_Alert", "default_threat_score", "0.95"); err != nil {
		t.Fatal(err)
	}
	th := Threshold{Max: fptr(0.8), Escalate: "Critical", TargetField: "severity"}
	if err := c.SetThreshold("SIEM_Alert", "threat_score", th); err != nil {
		t.Fatal(err)
	}

	event, err := gen.Generate("SIEM_Alert")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	severity, _ := event.Data.Get("severity")
	if severity != "Critical" {
		t.Errorf("severity = %v, want Critical (score 0.95 crosses max 0.8)", severity)
	}
}

func TestGenerator_DoesNotMutateSchema(t *testing.T) {
	c, _, gen := newTestGenerator(t)
	restoreDefaults(t, c)

	before, _ := c.DescribeSource("SIEM_Alert")
	if _, err := gen.Generate("SIEM_Alert"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	after, _ := c.DescribeSource("SIEM_Alert")

	if len(before.Fields) != len(after.Fields) || len(before.Settings) != len(after.Settings) {
		t.Error("generation mutated the source schema")
	}
}

func TestInferHint(t *testing.T) {
	cases := []struct {
		field string
		want  string
	}{
		{"sourceIP", HintIPv4},
		{"destinationIP", HintIPv4},
		{"loginTimestamp", HintTimestamp},
		{"detectionTimestamp", HintTimestamp},
		{"latitude", HintLatitude},
		{"longitude", HintLongitude},
		{"sourcePort", HintPort},
		{"userAgent", HintUserAgent},
		{"affectedUser", HintUsername},
		{"severity", HintSeverity},
		{"loginStatus", HintStatus},
		{"sensitivityLevel", HintLevel},
		{"description", HintSentence},
		{"failureReason", HintSentence},
		{"protocol", HintProtocol},
		{"locationDescription", HintSentence}, // description wins over location
		{"fenceZone", HintLocation},
		{"beamStrength", HintNumber},
		{"sensorData", HintText},
	}
	for _, tc := range cases {
		if got := inferHint(tc.field); got != tc.want {
			t.Errorf("inferHint(%q) = %q, want %q", tc.field, got, tc.want)
		}
	}
}

func TestIsIdentifierField(t *testing.T) {
	cases := []struct {
		field string
		want  bool
	}{
		{"itemId", true},
		{"deviceId", true},
		{"userId", true},
		{"fenceId", true},
		{"id", true},
		{"status", false},
		{"description", false},
		{"uuid", false},
	}
	for _, tc := range cases {
		if got := isIdentifierField(tc.field); got != tc.want {
			t.Errorf("isIdentifierField(%q) = %v, want %v", tc.field, got, tc.want)
		}
	}
}

func TestSettingDefault(t *testing.T) {
	settings := map[string]string{
		"default_status":   "Success",
		"default_severity": "Medium",
		"retention":        "30d",
	}
	cases := []struct {
		field string
		want  string
		ok    bool
	}{
		{"status", "Success", true},
		{"loginStatus", "Success", true}, // suffix match
		{"severity", "Medium", true},
		{"retention", "30d", true}, // exact setting-name match
		{"username", "", false},
	}
	for _, tc := range cases {
		got, ok := settingDefault(settings, tc.field)
		if ok != tc.ok || got != tc.want {
			t.Errorf("settingDefault(%q) = (%q, %v), want (%q, %v)", tc.field, got, ok, tc.want, tc.ok)
		}
	}
}
