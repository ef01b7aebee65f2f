// Package telemetry provides a JSONL event stream for rank computations.
// Every run start, finished iteration and run completion is recorded as a
// structured JSON event, so a ranking can be audited after the fact.
package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindRunStart  = "run_start"
	KindIteration = "iteration"
	KindRunDone   = "run_done"
)

// Event represents a single telemetry record. Each event carries a timestamp,
// a kind tag, the run it belongs to and optional structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	RunID     string    `json:"run"`
	Source    string    `json:"source,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Emitter writes telemetry events as JSONL. It is safe for concurrent use
// by multiple goroutines. A nil *Emitter is a valid no-op emitter.
type Emitter struct {
	w   io.WriteCloser
	enc *json.Encoder
	mu  sync.Mutex
}

// NewEmitter creates a new Emitter that writes JSONL events to the file at
// path. The file is created if it does not exist, or appended to if it does.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return NewWriterEmitter(f), nil
}

// NewWriterEmitter creates an Emitter over w. Close closes w.
func NewWriterEmitter(w io.WriteCloser) *Emitter {
	return &Emitter{
		w:   w,
		enc: json.NewEncoder(w),
	}
}

// Emit writes a single event. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close closes the underlying writer. Calling Close on a nil Emitter is a
// no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.w.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
