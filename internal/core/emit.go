package core

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Emitter receives ownership of each generated event. What happens next
// (printing, logging, forwarding) is the emitter's business.
type Emitter interface {
	Emit(event *Event) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(event *Event) error

func (f EmitterFunc) Emit(event *Event) error { return f(event) }

// EmitterSet fans one event out to every registered emitter. A failing
// emitter is logged and does not stop the others.
type EmitterSet struct {
	mu       sync.RWMutex
	emitters []Emitter
	logger   zerolog.Logger
}

// NewEmitterSet creates an empty EmitterSet.
func NewEmitterSet(logger zerolog.Logger) *EmitterSet {
	return &EmitterSet{logger: logger.With().Str("component", "emitters").Logger()}
}

// Add registers an emitter.
func (s *EmitterSet) Add(e Emitter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitters = append(s.emitters, e)
}

// Emit forwards the event to all emitters.
func (s *EmitterSet) Emit(event *Event) error {
	s.mu.RLock()
	emitters := make([]Emitter, len(s.emitters))
	copy(emitters, s.emitters)
	s.mu.RUnlock()

	var firstErr error
	for _, e := range emitters {
		if err := e.Emit(event); err != nil {
			s.logger.Error().Err(err).Str("event_id", event.ID).Msg("emitter failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Count returns the number of registered emitters.
func (s *EmitterSet) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.emitters)
}

// WriterEmitter writes each event as a JSON document to a writer.
type WriterEmitter struct {
	mu     sync.Mutex
	w      io.Writer
	pretty bool
}

// NewWriterEmitter creates a WriterEmitter. With pretty set the JSON is
// indented, one document per event.
func NewWriterEmitter(w io.Writer, pretty bool) *WriterEmitter {
	return &WriterEmitter{w: w, pretty: pretty}
}

func (e *WriterEmitter) Emit(event *Event) error {
	var (
		data []byte
		err  error
	)
	if e.pretty {
		data, err = json.MarshalIndent(event, "", "  ")
	} else {
		data, err = event.Marshal()
	}
	if err != nil {
		return fmt.Errorf("marshaling event %s: %w", event.ID, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing event %s: %w", event.ID, err)
	}
	return nil
}
