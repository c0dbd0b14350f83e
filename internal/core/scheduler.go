package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler drives the generator on a timed cadence, independent of
// interactive use. Its lifecycle is Idle → Running → Idle with no other
// states. Generation itself serializes on the catalog lock, so a tick
// never observes a half-mutated source.
type Scheduler struct {
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	generator *Generator
	emitters  *EmitterSet
	logger    zerolog.Logger

	// Metrics
	ticks     int64
	generated int64
	failures  int64
}

// NewScheduler creates an idle Scheduler.
func NewScheduler(generator *Generator, emitters *EmitterSet, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		generator: generator,
		emitters:  emitters,
		logger:    logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start begins generating one event per enabled source every interval.
// An empty sources list means "all sources registered at tick time", so
// sources added or deleted while running are picked up on the next tick.
func (s *Scheduler) Start(sources []string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("starting automation: %v: %w", interval, ErrInvalidInterval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("starting automation: %w", ErrAlreadyRunning)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	s.done = make(chan struct{})

	enabled := append([]string(nil), sources...)
	go s.run(ctx, enabled, interval)

	s.logger.Info().
		Strs("sources", enabled).
		Dur("interval", interval).
		Msg("automation started")
	return nil
}

// Stop transitions back to Idle. Any in-flight tick completes; no further
// ticks are issued. Stopping an idle scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	<-done

	s.mu.Lock()
	s.running = false
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	s.logger.Info().Msg("automation stopped")
}

// Running reports whether the scheduler is in the Running state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) run(ctx context.Context, sources []string, interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, sources)
		}
	}
}

// tick generates one event per enabled source. A failure for one source
// (deleted concurrently, no fields yet) is reported and the remaining
// sources still run.
func (s *Scheduler) tick(ctx context.Context, sources []string) {
	s.mu.Lock()
	s.ticks++
	s.mu.Unlock()

	enabled := sources
	if len(enabled) == 0 {
		enabled = s.generator.catalog.ListSources()
	}

	for _, source := range enabled {
		select {
		case <-ctx.Done():
			return
		default:
		}

		event, err := s.generator.Generate(source)
		if err != nil {
			s.mu.Lock()
			s.failures++
			s.mu.Unlock()
			s.logger.Warn().Err(err).Str("source", source).Msg("automated generation failed")
			continue
		}
		if err := s.emitters.Emit(event); err != nil {
			s.logger.Warn().Err(err).Str("event_id", event.ID).Msg("automated emit failed")
		}
		s.mu.Lock()
		s.generated++
		s.mu.Unlock()
	}
}

// Stats returns a snapshot of scheduler counters.
func (s *Scheduler) Stats() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int64{
		"ticks":     s.ticks,
		"generated": s.generated,
		"failures":  s.failures,
	}
}
