package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestRecord_OrderPreserved(t *testing.T) {
	r := NewRecord()
	fields := []string{"zeta", "alpha", "mid"}
	for i, f := range fields {
		r.Set(f, i)
	}

	got := r.Fields()
	for i, f := range fields {
		if got[i] != f {
			t.Fatalf("Fields = %v, want %v", got, fields)
		}
	}

	// Overwriting keeps the original position.
	r.Set("alpha", 99)
	if r.Len() != 3 {
		t.Errorf("Len = %d after overwrite, want 3", r.Len())
	}
	if v, _ := r.Get("alpha"); v != 99 {
		t.Errorf("alpha = %v, want 99", v)
	}
}

func TestRecord_MarshalJSONOrder(t *testing.T) {
	r := NewRecord()
	r.Set("zeta", 1)
	r.Set("alpha", "two")
	r.Set("mid", true)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	zi, ai, mi := strings.Index(s, `"zeta"`), strings.Index(s, `"alpha"`), strings.Index(s, `"mid"`)
	if zi < 0 || ai < 0 || mi < 0 || !(zi < ai && ai < mi) {
		t.Errorf("marshalled order broken: %s", s)
	}

	// The output is still valid JSON with the right values.
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["alpha"] != "two" || decoded["mid"] != true {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestNewEvent_Envelope(t *testing.T) {
	data := NewRecord()
	data.Set("status", "Detected")

	before := time.Now().UTC()
	ev := NewEvent("Motion_Sensor_Alert", data)
	after := time.Now().UTC()

	if ev.ID == "" {
		t.Error("event ID must be populated")
	}
	if ev.Source != "Motion_Sensor_Alert" {
		t.Errorf("Source = %q", ev.Source)
	}
	if ev.Timestamp.Before(before) || ev.Timestamp.After(after) {
		t.Errorf("Timestamp %v outside [%v, %v]", ev.Timestamp, before, after)
	}

	// Two events never share an ID.
	if NewEvent("X", NewRecord()).ID == NewEvent("X", NewRecord()).ID {
		t.Error("event IDs collided")
	}
}

func TestEvent_MarshalEnvelopeKeys(t *testing.T) {
	data := NewRecord()
	data.Set("severity", "High")
	ev := NewEvent("SIEM_Alert", data)

	raw, err := ev.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"eventId", "eventType", "eventTimestamp", "data"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("envelope missing %q: %s", key, raw)
		}
	}
	if len(decoded) != 4 {
		t.Errorf("envelope has %d keys, want 4: %s", len(decoded), raw)
	}
}
