package core

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// SourceType is a defensive-copy snapshot of one alert source definition,
// as returned by Catalog.DescribeSource. Mutating it does not affect the
// catalog.
type SourceType struct {
	Name       string               `json:"name"`
	Fields     []string             `json:"fields"`
	Thresholds map[string]Threshold `json:"thresholds,omitempty"`
	Settings   map[string]string    `json:"settings,omitempty"`
	Items      []Item               `json:"items,omitempty"`
}

// sourceType is the live, catalog-owned definition.
type sourceType struct {
	fields     []string
	thresholds map[string]Threshold
	settings   map[string]string
	items      []Item
}

func newSourceType() *sourceType {
	return &sourceType{
		thresholds: make(map[string]Threshold),
		settings:   make(map[string]string),
	}
}

func (s *sourceType) hasField(name string) bool {
	for _, f := range s.fields {
		if f == name {
			return true
		}
	}
	return false
}

// Catalog is the registry of alert source types: their ordered field
// lists, thresholds, settings and item pools. It is the single owner of
// all mutable simulator state: every mutation and every generation cycle
// serializes on its mutex, so readers never observe a half-mutated source.
//
// All mutations are atomic: they either succeed and leave the catalog
// internally consistent (every threshold still points at a declared
// field), or they fail and the catalog is unchanged.
type Catalog struct {
	mu      sync.RWMutex
	sources map[string]*sourceType
	order   []string
	logger  zerolog.Logger
}

// NewCatalog creates an empty Catalog.
func NewCatalog(logger zerolog.Logger) *Catalog {
	return &Catalog{
		sources: make(map[string]*sourceType),
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// DefineSource registers a new, empty alert source.
func (c *Catalog) DefineSource(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name == "" {
		return fmt.Errorf("defining source: name cannot be empty")
	}
	if _, exists := c.sources[name]; exists {
		return fmt.Errorf("defining source %q: %w", name, ErrDuplicateSource)
	}
	c.sources[name] = newSourceType()
	c.order = append(c.order, name)
	c.logger.Info().Str("source", name).Msg("alert source defined")
	return nil
}

// DeleteSource removes a source together with its fields, thresholds,
// settings and items.
func (c *Catalog) DeleteSource(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[name]
	if !exists {
		return fmt.Errorf("deleting source %q: %w", name, ErrUnknownSource)
	}
	released := len(src.items)
	delete(c.sources, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.logger.Info().Str("source", name).Int("items_released", released).Msg("alert source deleted")
	return nil
}

// AddField declares a new field on a source. Every generated event of the
// source will carry a value for it.
func (c *Catalog) AddField(source, field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return fmt.Errorf("adding field to %q: %w", source, ErrUnknownSource)
	}
	if field == "" {
		return fmt.Errorf("adding field to %q: field name cannot be empty", source)
	}
	if src.hasField(field) {
		return fmt.Errorf("adding field %q to %q: %w", field, source, ErrDuplicateField)
	}
	src.fields = append(src.fields, field)
	return nil
}

// RemoveField removes a declared field. A field still referenced by a
// threshold is rejected with ErrFieldInUse; the threshold must be removed
// first. Rejecting instead of cascading keeps a mistyped removal from
// silently dropping escalation logic.
func (c *Catalog) RemoveField(source, field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return fmt.Errorf("removing field from %q: %w", source, ErrUnknownSource)
	}
	if !src.hasField(field) {
		return fmt.Errorf("removing field %q from %q: %w", field, source, ErrUnknownField)
	}
	if _, bound := src.thresholds[field]; bound {
		return fmt.Errorf("removing field %q from %q: %w", field, source, ErrFieldInUse)
	}
	for _, th := range src.thresholds {
		if th.TargetField == field {
			return fmt.Errorf("removing field %q from %q: %w", field, source, ErrFieldInUse)
		}
	}
	for i, f := range src.fields {
		if f == field {
			src.fields = append(src.fields[:i], src.fields[i+1:]...)
			break
		}
	}
	return nil
}

// SetThreshold attaches a threshold to a declared field, overwriting any
// prior bound. The target field of a trigger threshold must be declared
// too, or generated events would grow an undeclared field.
func (c *Catalog) SetThreshold(source, field string, th Threshold) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return fmt.Errorf("setting threshold on %q: %w", source, ErrUnknownSource)
	}
	if !src.hasField(field) {
		return fmt.Errorf("setting threshold on %q.%s: %w", source, field, ErrUnknownField)
	}
	if th.TargetField != "" && !src.hasField(th.TargetField) {
		return fmt.Errorf("setting threshold on %q.%s: target %q: %w", source, field, th.TargetField, ErrUnknownField)
	}
	src.thresholds[field] = th.clone()
	return nil
}

// RemoveThreshold detaches the threshold from a field. Removing a
// threshold that does not exist is a no-op.
func (c *Catalog) RemoveThreshold(source, field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return fmt.Errorf("removing threshold from %q: %w", source, ErrUnknownSource)
	}
	if !src.hasField(field) {
		return fmt.Errorf("removing threshold from %q.%s: %w", source, field, ErrUnknownField)
	}
	delete(src.thresholds, field)
	return nil
}

// SetSetting stores a free-form per-source setting. Settings named
// default_<field> supply the default value for that field during
// generation.
func (c *Catalog) SetSetting(source, name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return fmt.Errorf("setting %q on %q: %w", name, source, ErrUnknownSource)
	}
	src.settings[name] = value
	return nil
}

// RemoveSetting deletes a setting. Removing an absent setting is a no-op.
func (c *Catalog) RemoveSetting(source, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return fmt.Errorf("removing setting %q from %q: %w", name, source, ErrUnknownSource)
	}
	delete(src.settings, name)
	return nil
}

// ListSources returns all source names in definition order.
func (c *Catalog) ListSources() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// DescribeSource returns a snapshot of one source definition.
func (c *Catalog) DescribeSource(name string) (SourceType, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	src, exists := c.sources[name]
	if !exists {
		return SourceType{}, fmt.Errorf("describing source %q: %w", name, ErrUnknownSource)
	}
	return c.describeLocked(name, src), nil
}

// describeLocked builds a defensive copy. Callers hold at least a read lock.
func (c *Catalog) describeLocked(name string, src *sourceType) SourceType {
	out := SourceType{
		Name:       name,
		Fields:     append([]string(nil), src.fields...),
		Thresholds: make(map[string]Threshold, len(src.thresholds)),
		Settings:   make(map[string]string, len(src.settings)),
		Items:      append([]Item(nil), src.items...),
	}
	for f, th := range src.thresholds {
		out.Thresholds[f] = th.clone()
	}
	for k, v := range src.settings {
		out.Settings[k] = v
	}
	return out
}

// Count returns the number of defined sources.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sources)
}
