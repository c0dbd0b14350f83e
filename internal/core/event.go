package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is an ordered field-name → value mapping. Alert sources declare
// their fields at runtime, so events carry a schema-free bag of values;
// the declaration order of the source's fields is preserved through
// JSON marshalling.
type Record struct {
	order  []string
	values map[string]any
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores a value, appending the field to the order on first write.
func (r *Record) Set(field string, value any) {
	if _, ok := r.values[field]; !ok {
		r.order = append(r.order, field)
	}
	r.values[field] = value
}

// Get returns the value for a field.
func (r *Record) Get(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Fields returns the field names in insertion order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.order) }

// Values returns a copy of the underlying map.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON writes the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[field])
		if err != nil {
			return nil, fmt.Errorf("marshaling field %q: %w", field, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Event is one synthesized, schema-conformant alert record. Events are
// ephemeral: the engine hands them to emitters and keeps nothing.
type Event struct {
	ID        string    `json:"eventId"`
	Source    string    `json:"eventType"`
	Timestamp time.Time `json:"eventTimestamp"`
	Data      *Record   `json:"data"`
}

// NewEvent creates an Event for the given source with a generated ID and
// current UTC timestamp.
func NewEvent(source string, data *Record) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Source:    source,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Marshal serializes the event to JSON.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
