package core

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// Engine owns the simulator's state and wires the components together:
// catalog, item registry, generator, scheduler and emitters. Its
// lifecycle is Open (load snapshot) → use → Close (persist snapshot).
type Engine struct {
	Config    *Config
	Catalog   *Catalog
	Items     *ItemRegistry
	Generator *Generator
	Scheduler *Scheduler
	Emitters  *EmitterSet
	Bus       *EventBus
	Logger    zerolog.Logger

	opened bool
}

// NewEngine creates an engine from configuration. Pass a nil fabricator
// to use the default randomized one.
func NewEngine(cfg *Config, fab Fabricator) *Engine {
	var logger zerolog.Logger
	if cfg.Logging.Format == "json" {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	switch cfg.LogLevel() {
	case "debug":
		logger = logger.Level(zerolog.DebugLevel)
	case "warn":
		logger = logger.Level(zerolog.WarnLevel)
	case "error":
		logger = logger.Level(zerolog.ErrorLevel)
	default:
		logger = logger.Level(zerolog.InfoLevel)
	}

	if fab == nil {
		fab = NewFabricator()
	}

	catalog := NewCatalog(logger)
	items := NewItemRegistry(catalog, logger)
	generator := NewGenerator(catalog, items, fab, logger)
	emitters := NewEmitterSet(logger)
	scheduler := NewScheduler(generator, emitters, logger)

	engine := &Engine{
		Config:    cfg,
		Catalog:   catalog,
		Items:     items,
		Generator: generator,
		Scheduler: scheduler,
		Emitters:  emitters,
		Logger:    logger.With().Str("component", "engine").Logger(),
	}

	if cfg.Emit.Console {
		engine.Emitters.Add(NewWriterEmitter(os.Stdout, cfg.Emit.Pretty))
	}

	return engine
}

// Open loads the catalog snapshot (seeding the bootstrap sources when no
// snapshot file exists) and connects the bus emitter when enabled.
func (e *Engine) Open() error {
	snap, err := e.loadSnapshot()
	if err != nil {
		return err
	}
	if err := e.Catalog.Restore(snap); err != nil {
		return fmt.Errorf("restoring catalog: %w", err)
	}

	if e.Config.Bus.Enabled {
		bus, err := NewEventBus(&e.Config.Bus, e.Logger)
		if err != nil {
			return fmt.Errorf("starting event bus: %w", err)
		}
		e.Bus = bus
		e.Emitters.Add(bus)
	}

	e.opened = true
	e.Logger.Info().
		Int("sources", e.Catalog.Count()).
		Bool("bus", e.Bus != nil).
		Msg("simulator opened")
	return nil
}

func (e *Engine) loadSnapshot() (*Snapshot, error) {
	path := e.Config.Snapshot.Path
	if path == "" {
		return DefaultSnapshot(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			e.Logger.Warn().Str("path", path).Msg("snapshot not found, using bootstrap sources")
			return DefaultSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot %q: %w", path, err)
	}
	return snap, nil
}

// Reload re-reads the snapshot file and replaces the catalog state,
// discarding unsaved in-memory changes.
func (e *Engine) Reload() error {
	snap, err := e.loadSnapshot()
	if err != nil {
		return err
	}
	if err := e.Catalog.Restore(snap); err != nil {
		return fmt.Errorf("restoring catalog: %w", err)
	}
	e.Logger.Info().Int("sources", e.Catalog.Count()).Msg("catalog reloaded")
	return nil
}

// Save persists the current catalog state to the snapshot file.
func (e *Engine) Save() error {
	path := e.Config.Snapshot.Path
	if path == "" {
		return nil
	}
	data, err := e.Catalog.Export().Marshal()
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	e.Logger.Debug().Str("path", path).Msg("snapshot saved")
	return nil
}

// Close stops automation, persists the snapshot and releases the bus.
func (e *Engine) Close() error {
	if !e.opened {
		return nil
	}
	e.Scheduler.Stop()

	var firstErr error
	if err := e.Save(); err != nil {
		e.Logger.Error().Err(err).Msg("saving snapshot on close")
		firstErr = err
	}
	if e.Bus != nil {
		if err := e.Bus.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		e.Bus = nil
	}
	e.opened = false
	e.Logger.Info().Msg("simulator closed")
	return firstErr
}

// Automate starts the scheduler with the configured (or given) sources
// and interval, then blocks until a shutdown signal arrives.
func (e *Engine) Automate(sources []string, interval time.Duration) error {
	if interval <= 0 {
		interval = e.Config.Automation.Interval
	}
	if len(sources) == 0 {
		sources = e.Config.Automation.Sources
	}

	if err := e.Scheduler.Start(sources, interval); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	e.Logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")

	e.Scheduler.Stop()
	return nil
}
