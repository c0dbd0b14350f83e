package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Generator synthesizes schema-conformant events for registered alert
// sources. It never mutates the catalog; its only write path is item
// auto-creation through the item registry when an identifier field finds
// an empty pool.
type Generator struct {
	catalog *Catalog
	items   *ItemRegistry
	fab     Fabricator
	logger  zerolog.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(catalog *Catalog, items *ItemRegistry, fab Fabricator, logger zerolog.Logger) *Generator {
	return &Generator{
		catalog: catalog,
		items:   items,
		fab:     fab,
		logger:  logger.With().Str("component", "generator").Logger(),
	}
}

// Generate produces one complete event for the source: every declared
// field populated in declaration order, defaults and threshold overrides
// applied. The whole cycle runs under the catalog lock so it observes a
// consistent schema.
func (g *Generator) Generate(source string) (*Event, error) {
	c := g.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return nil, fmt.Errorf("generating event for %q: %w", source, ErrUnknownSource)
	}
	if len(src.fields) == 0 {
		return nil, fmt.Errorf("generating event for %q: no fields declared: %w", source, ErrUnknownSource)
	}

	candidate := make(map[string]any, len(src.fields))
	for _, field := range src.fields {
		candidate[field] = g.fieldValue(source, src, field)
	}

	for field, value := range EvaluateThresholds(src.thresholds, candidate) {
		candidate[field] = value
	}

	data := NewRecord()
	for _, field := range src.fields {
		data.Set(field, candidate[field])
	}

	event := NewEvent(source, data)
	g.logger.Debug().
		Str("event_id", event.ID).
		Str("source", source).
		Int("fields", data.Len()).
		Msg("event generated")
	return event, nil
}

// fieldValue resolves one field: identifier fields reference a tracked
// item, settings supply configured defaults, everything else is
// fabricated from a semantic hint.
func (g *Generator) fieldValue(source string, src *sourceType, field string) any {
	if isIdentifierField(field) {
		item, err := g.items.ensureLocked(source)
		if err == nil {
			return item.ID
		}
		// unreachable while the lock is held, but never emit an empty id
		return g.fab.Fabricate(HintText)
	}
	if def, ok := settingDefault(src.settings, field); ok {
		return def
	}
	return g.fab.Fabricate(inferHint(field))
}

// isIdentifierField reports whether a field names a tracked-item
// reference (itemId, deviceId, userId, sensorId, …).
func isIdentifierField(field string) bool {
	lower := strings.ToLower(field)
	return lower == "id" || strings.HasSuffix(lower, "id") && !strings.HasSuffix(lower, "uid")
}

// settingDefault finds the configured default for a field: an exact
// default_<field> or <field> setting wins; otherwise a default_<suffix>
// setting matches a field ending in <suffix> (default_status feeds
// loginStatus). Keys are scanned in sorted order so the match is stable.
func settingDefault(settings map[string]string, field string) (string, bool) {
	if v, ok := settings["default_"+field]; ok {
		return v, true
	}
	if v, ok := settings[field]; ok {
		return v, true
	}
	lower := strings.ToLower(field)
	keys := make([]string, 0, len(settings))
	for k := range settings {
		if strings.HasPrefix(k, "default_") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		suffix := strings.ToLower(strings.TrimPrefix(k, "default_"))
		if suffix != "" && strings.HasSuffix(lower, suffix) {
			return settings[k], true
		}
	}
	return "", false
}

// inferHint maps a field name to the semantic hint handed to the
// Fabricator. Unrecognized names fall back to a generic string.
func inferHint(field string) string {
	lower := strings.ToLower(field)
	switch {
	case strings.HasSuffix(lower, "ip") || strings.Contains(lower, "ipaddress"):
		return HintIPv4
	case strings.Contains(lower, "timestamp") || strings.HasSuffix(lower, "time") || strings.Contains(lower, "date"):
		return HintTimestamp
	case strings.Contains(lower, "latitude"):
		return HintLatitude
	case strings.Contains(lower, "longitude"):
		return HintLongitude
	case strings.Contains(lower, "port"):
		return HintPort
	case strings.Contains(lower, "agent"):
		return HintUserAgent
	case strings.Contains(lower, "user"):
		return HintUsername
	case strings.Contains(lower, "severity"):
		return HintSeverity
	case strings.Contains(lower, "status"):
		return HintStatus
	case strings.Contains(lower, "level") || strings.Contains(lower, "sensitivity"):
		return HintLevel
	case strings.Contains(lower, "description") || strings.Contains(lower, "summary") ||
		strings.Contains(lower, "reason") || strings.Contains(lower, "message"):
		return HintSentence
	case strings.Contains(lower, "protocol"):
		return HintProtocol
	case strings.Contains(lower, "location") || strings.Contains(lower, "segment") || strings.Contains(lower, "zone"):
		return HintLocation
	case strings.Contains(lower, "speed") || strings.Contains(lower, "altitude") ||
		strings.Contains(lower, "accuracy") || strings.Contains(lower, "strength") ||
		strings.Contains(lower, "score") || strings.Contains(lower, "count") ||
		strings.Contains(lower, "vibration") || strings.Contains(lower, "voltage"):
		return HintNumber
	default:
		return HintText
	}
}
