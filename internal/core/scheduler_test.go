package core

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// collectEmitter records every emitted event.
type collectEmitter struct {
	mu     sync.Mutex
	events []*Event
}

func (e *collectEmitter) Emit(event *Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *collectEmitter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

func (e *collectEmitter) sources() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]int)
	for _, ev := range e.events {
		out[ev.Source]++
	}
	return out
}

func newTestScheduler(t *testing.T) (*Catalog, *Scheduler, *collectEmitter) {
	t.Helper()
	c := newTestCatalog()
	reg := NewItemRegistry(c, zerolog.Nop())
	gen := NewGenerator(c, reg, fixedFabricator{}, zerolog.Nop())
	sink := &collectEmitter{}
	set := NewEmitterSet(zerolog.Nop())
	set.Add(sink)
	return c, NewScheduler(gen, set, zerolog.Nop()), sink
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestScheduler_StartValidation(t *testing.T) {
	_, s, _ := newTestScheduler(t)

	if err := s.Start(nil, -1); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("negative interval: got %v, want ErrInvalidInterval", err)
	}
	if err := s.Start(nil, 0); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("zero interval: got %v, want ErrInvalidInterval", err)
	}
	if s.Running() {
		t.Error("failed Start must leave the scheduler idle")
	}
}

func TestScheduler_AlreadyRunning(t *testing.T) {
	c, s, _ := newTestScheduler(t)
	mustDefine(t, c, "SIEM_Alert", "severity")

	if err := s.Start([]string{"SIEM_Alert"}, 5*time.Second); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if err := s.Start([]string{"SIEM_Alert"}, 5*time.Second); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start: got %v, want ErrAlreadyRunning", err)
	}
}

func TestScheduler_GeneratesOnCadence(t *testing.T) {
	c, s, sink := newTestScheduler(t)
	mustDefine(t, c, "A_Source", "status")
	mustDefine(t, c, "B_Source", "status")

	if err := s.Start([]string{"A_Source", "B_Source"}, 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return sink.count() >= 4 }) {
		t.Fatalf("expected at least 4 events, got %d", sink.count())
	}
	s.Stop()

	bySource := sink.sources()
	if bySource["A_Source"] == 0 || bySource["B_Source"] == 0 {
		t.Errorf("both sources should generate, got %v", bySource)
	}
}

func TestScheduler_StopTransitionsToIdle(t *testing.T) {
	c, s, sink := newTestScheduler(t)
	mustDefine(t, c, "A_Source", "status")

	if err := s.Start(nil, 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.Running() {
		t.Fatal("expected Running after Start")
	}

	waitFor(t, 2*time.Second, func() bool { return sink.count() >= 1 })
	s.Stop()
	if s.Running() {
		t.Fatal("expected Idle after Stop")
	}

	// No further ticks after Stop returns.
	n := sink.count()
	time.Sleep(50 * time.Millisecond)
	if sink.count() != n {
		t.Errorf("events emitted after Stop: %d → %d", n, sink.count())
	}

	// Idle → Running again is allowed.
	if err := s.Start(nil, 10*time.Millisecond); err != nil {
		t.Fatalf("restart after Stop: %v", err)
	}
	s.Stop()
}

func TestScheduler_StopIdleIsNoop(t *testing.T) {
	_, s, _ := newTestScheduler(t)
	s.Stop()
	s.Stop()
	if s.Running() {
		t.Error("scheduler should stay idle")
	}
}

func TestScheduler_FailureDoesNotHaltOthers(t *testing.T) {
	c, s, sink := newTestScheduler(t)
	mustDefine(t, c, "Good_Source", "status")

	// Deleted_Source is enabled but missing from the catalog, simulating
	// a type deleted while automation runs.
	if err := s.Start([]string{"Deleted_Source", "Good_Source"}, 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return sink.count() >= 2 }) {
		t.Fatalf("healthy source starved by failing one, got %d events", sink.count())
	}
	s.Stop()

	for _, ev := range sink.events {
		if ev.Source != "Good_Source" {
			t.Errorf("unexpected event from %q", ev.Source)
		}
	}
	stats := s.Stats()
	if stats["failures"] == 0 {
		t.Error("expected recorded failures for the missing source")
	}
}

func TestScheduler_EmptySourceListTracksCatalog(t *testing.T) {
	c, s, sink := newTestScheduler(t)
	mustDefine(t, c, "First_Source", "status")

	if err := s.Start(nil, 10*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	waitFor(t, 2*time.Second, func() bool { return sink.count() >= 1 })

	// A source defined while running is picked up on a later tick.
	mustDefine(t, c, "Second_Source", "status")
	if !waitFor(t, 2*time.Second, func() bool { return sink.sources()["Second_Source"] > 0 }) {
		t.Errorf("source added mid-run never generated: %v", sink.sources())
	}
}
