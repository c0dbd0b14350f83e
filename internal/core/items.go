package core

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Item is a tracked entity (device, user, sensor) that generated events
// reference by identifier. Items auto-created during generation carry the
// AutoGenerated flag until kept.
type Item struct {
	Source        string `json:"source,omitempty"`
	ID            string `json:"id"`
	AutoGenerated bool   `json:"auto_generated,omitempty"`
}

// ItemRegistry manages the per-source item pools. It is a view over the
// catalog's state and serializes on the catalog mutex, so item mutations
// and schema mutations never interleave.
type ItemRegistry struct {
	catalog *Catalog
	logger  zerolog.Logger
}

// NewItemRegistry creates an ItemRegistry bound to a catalog.
func NewItemRegistry(catalog *Catalog, logger zerolog.Logger) *ItemRegistry {
	return &ItemRegistry{
		catalog: catalog,
		logger:  logger.With().Str("component", "item_registry").Logger(),
	}
}

// AddItem adds an item to a source's pool. With an empty id the registry
// generates the next PREFIX-NNN identifier for the source.
func (r *ItemRegistry) AddItem(source, id string) (Item, error) {
	c := r.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return Item{}, fmt.Errorf("adding item to %q: %w", source, ErrUnknownSource)
	}
	if id == "" {
		id = nextItemID(source, src.items)
	} else {
		for _, it := range src.items {
			if it.ID == id {
				return Item{}, fmt.Errorf("adding item %q to %q: %w", id, source, ErrDuplicateItem)
			}
		}
	}
	item := Item{Source: source, ID: id}
	src.items = append(src.items, item)
	r.logger.Debug().Str("source", source).Str("item", id).Msg("item added")
	return item, nil
}

// RemoveItem deletes an item from a source's pool.
func (r *ItemRegistry) RemoveItem(source, id string) error {
	c := r.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return fmt.Errorf("removing item from %q: %w", source, ErrUnknownSource)
	}
	for i, it := range src.items {
		if it.ID == id {
			src.items = append(src.items[:i], src.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("removing item %q from %q: %w", id, source, ErrUnknownItem)
}

// Ensure returns an item for the source, auto-creating one when the pool
// is empty. Selection is deterministic: the first item in insertion order.
func (r *ItemRegistry) Ensure(source string) (Item, error) {
	c := r.catalog
	c.mu.Lock()
	defer c.mu.Unlock()
	return r.ensureLocked(source)
}

// ensureLocked is Ensure for callers already holding the catalog lock
// (the generator resolves identifier fields mid-generation).
func (r *ItemRegistry) ensureLocked(source string) (Item, error) {
	src, exists := r.catalog.sources[source]
	if !exists {
		return Item{}, fmt.Errorf("ensuring item for %q: %w", source, ErrUnknownSource)
	}
	if len(src.items) > 0 {
		return src.items[0], nil
	}
	item := Item{Source: source, ID: nextItemID(source, src.items), AutoGenerated: true}
	src.items = append(src.items, item)
	r.logger.Debug().Str("source", source).Str("item", item.ID).Msg("item auto-created")
	return item, nil
}

// KeepItem clears the auto-generated flag, making the item permanent.
func (r *ItemRegistry) KeepItem(source, id string) error {
	c := r.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return fmt.Errorf("keeping item in %q: %w", source, ErrUnknownSource)
	}
	for i := range src.items {
		if src.items[i].ID == id {
			src.items[i].AutoGenerated = false
			return nil
		}
	}
	return fmt.Errorf("keeping item %q in %q: %w", id, source, ErrUnknownItem)
}

// PruneAuto removes all auto-generated items from a source's pool and
// returns how many were dropped.
func (r *ItemRegistry) PruneAuto(source string) (int, error) {
	c := r.catalog
	c.mu.Lock()
	defer c.mu.Unlock()

	src, exists := c.sources[source]
	if !exists {
		return 0, fmt.Errorf("pruning items in %q: %w", source, ErrUnknownSource)
	}
	kept := src.items[:0]
	dropped := 0
	for _, it := range src.items {
		if it.AutoGenerated {
			dropped++
			continue
		}
		kept = append(kept, it)
	}
	src.items = kept
	return dropped, nil
}

// ListItems returns a copy of a source's item pool in insertion order.
func (r *ItemRegistry) ListItems(source string) ([]Item, error) {
	c := r.catalog
	c.mu.RLock()
	defer c.mu.RUnlock()

	src, exists := c.sources[source]
	if !exists {
		return nil, fmt.Errorf("listing items in %q: %w", source, ErrUnknownSource)
	}
	return append([]Item(nil), src.items...), nil
}

// Search returns a lazy, restartable sequence of items matching the query
// (case-insensitive substring of the identifier; empty query matches all).
// A non-empty sourceFilter restricts the search to one source. Each range
// over the sequence observes a fresh snapshot of the pools.
func (r *ItemRegistry) Search(query, sourceFilter string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		q := strings.ToLower(query)
		for _, item := range r.snapshot(sourceFilter) {
			if q != "" && !strings.Contains(strings.ToLower(item.ID), q) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// snapshot copies the matching pools under the read lock so iteration
// runs without holding it.
func (r *ItemRegistry) snapshot(sourceFilter string) []Item {
	c := r.catalog
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Item
	for _, name := range c.order {
		if sourceFilter != "" && name != sourceFilter {
			continue
		}
		out = append(out, c.sources[name].items...)
	}
	return out
}

// nextItemID derives the next PREFIX-NNN identifier for a source: prefix
// is the first three letters of the source name upper-cased, the counter
// continues from the highest live id with that prefix.
func nextItemID(source string, items []Item) string {
	var letters []rune
	for _, r := range source {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			letters = append(letters, r)
		}
		if len(letters) == 3 {
			break
		}
	}
	prefix := strings.ToUpper(string(letters))
	if prefix == "" {
		prefix = "ITM"
	}

	max := 0
	for _, it := range items {
		rest, ok := strings.CutPrefix(it.ID, prefix+"-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}
