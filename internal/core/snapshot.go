package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SourceSnapshot is the persisted form of one alert source.
type SourceSnapshot struct {
	Fields     []string             `json:"fields"`
	Thresholds map[string]Threshold `json:"thresholds,omitempty"`
	Settings   map[string]string    `json:"settings,omitempty"`
	Items      []string             `json:"items,omitempty"`
}

// Snapshot is the externally-persisted serialization of the whole
// catalog: a mapping from source name to its definition. Source order is
// preserved so a load/export cycle reproduces an equivalent document.
//
// Two legacy forms are tolerated at load time:
//
//   - an "alert_sources" wrapper object holding the modern mapping
//   - top-level per-source blocks carrying only scalar defaults
//     ({"SIEM_Alert": {"default_severity": "Medium"}}), which are folded
//     into the source's settings
type Snapshot struct {
	order   []string
	sources map[string]SourceSnapshot
}

// NewSnapshot creates an empty Snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{sources: make(map[string]SourceSnapshot)}
}

// Put adds or replaces a source definition, keeping first-seen order.
func (s *Snapshot) Put(name string, src SourceSnapshot) {
	if _, ok := s.sources[name]; !ok {
		s.order = append(s.order, name)
	}
	s.sources[name] = src
}

// Get returns a source definition.
func (s *Snapshot) Get(name string) (SourceSnapshot, bool) {
	src, ok := s.sources[name]
	return src, ok
}

// Names returns the source names in document order.
func (s *Snapshot) Names() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of sources.
func (s *Snapshot) Len() int { return len(s.sources) }

// mergeLegacyDefaults folds a legacy top-level defaults block into the
// source's settings, creating the source if the modern block is absent.
func (s *Snapshot) mergeLegacyDefaults(name string, defaults map[string]string) {
	src, ok := s.sources[name]
	if !ok {
		src = SourceSnapshot{}
	}
	if src.Settings == nil {
		src.Settings = make(map[string]string, len(defaults))
	}
	for k, v := range defaults {
		if _, exists := src.Settings[k]; !exists {
			src.Settings[k] = v
		}
	}
	s.Put(name, src)
}

// ParseSnapshot decodes a snapshot document, accepting the modern shape,
// the legacy "alert_sources" wrapper, and legacy top-level defaults. Keys
// are read in document order.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	snap := NewSnapshot()
	if err := parseSnapshotObject(data, snap, true); err != nil {
		return nil, err
	}
	return snap, nil
}

func parseSnapshotObject(data []byte, snap *Snapshot, topLevel bool) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("parsing snapshot: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parsing snapshot: %w", err)
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("parsing snapshot entry %q: %w", key, err)
		}

		if topLevel && key == "alert_sources" {
			if err := parseSnapshotObject(raw, snap, false); err != nil {
				return err
			}
			continue
		}

		src, legacy, err := parseSourceBlock(raw)
		if err != nil {
			return fmt.Errorf("parsing snapshot entry %q: %w", key, err)
		}
		if legacy != nil {
			snap.mergeLegacyDefaults(key, legacy)
			continue
		}
		snap.Put(key, src)
	}
	return nil
}

// parseSourceBlock decodes one per-source block. A block without any of
// the modern keys whose members are all scalars is a legacy defaults
// block and is returned as such.
func parseSourceBlock(raw json.RawMessage) (SourceSnapshot, map[string]string, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return SourceSnapshot{}, nil, err
	}

	_, hasFields := probe["fields"]
	_, hasThresholds := probe["thresholds"]
	_, hasSettings := probe["settings"]
	_, hasItems := probe["items"]
	if !hasFields && !hasThresholds && !hasSettings && !hasItems {
		legacy := make(map[string]string, len(probe))
		allScalar := true
		for k, v := range probe {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				allScalar = false
				break
			}
			legacy[k] = s
		}
		if allScalar {
			return SourceSnapshot{}, legacy, nil
		}
	}

	var src SourceSnapshot
	if err := json.Unmarshal(raw, &src); err != nil {
		return SourceSnapshot{}, nil, err
	}
	return src, nil, nil
}

// Marshal serializes the snapshot in the modern shape, sources in
// document order, fields in declaration order.
func (s *Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.sources[name])
		if err != nil {
			return nil, fmt.Errorf("marshaling source %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')

	var indented bytes.Buffer
	if err := json.Indent(&indented, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return indented.Bytes(), nil
}

// Restore replaces the catalog's entire state with the snapshot's. A
// threshold referencing an undeclared field is dropped with a warning
// rather than poisoning the load; everything else is applied verbatim.
func (c *Catalog) Restore(snap *Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sources := make(map[string]*sourceType, snap.Len())
	order := make([]string, 0, snap.Len())

	for _, name := range snap.order {
		block := snap.sources[name]
		src := newSourceType()
		src.fields = append([]string(nil), block.Fields...)
		for field, th := range block.Thresholds {
			if !src.hasField(field) || (th.TargetField != "" && !src.hasField(th.TargetField)) {
				c.logger.Warn().
					Str("source", name).
					Str("field", field).
					Msg("snapshot threshold references undeclared field, dropped")
				continue
			}
			src.thresholds[field] = th.clone()
		}
		for k, v := range block.Settings {
			src.settings[k] = v
		}
		for _, id := range block.Items {
			src.items = append(src.items, Item{Source: name, ID: id})
		}
		sources[name] = src
		order = append(order, name)
	}

	c.sources = sources
	c.order = order
	c.logger.Info().Int("sources", len(order)).Msg("catalog restored from snapshot")
	return nil
}

// Export serializes the catalog's in-memory state back to the snapshot
// shape. Loading the result reproduces an equivalent catalog.
func (c *Catalog) Export() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := NewSnapshot()
	for _, name := range c.order {
		src := c.sources[name]
		block := SourceSnapshot{
			Fields: append([]string(nil), src.fields...),
		}
		if len(src.thresholds) > 0 {
			block.Thresholds = make(map[string]Threshold, len(src.thresholds))
			for f, th := range src.thresholds {
				block.Thresholds[f] = th.clone()
			}
		}
		if len(src.settings) > 0 {
			block.Settings = make(map[string]string, len(src.settings))
			for k, v := range src.settings {
				block.Settings[k] = v
			}
		}
		for _, it := range src.items {
			block.Items = append(block.Items, it.ID)
		}
		snap.Put(name, block)
	}
	return snap
}
