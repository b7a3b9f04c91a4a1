package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// CycleBuffer is a bounded slog.Handler that retains the most recent records
// in memory. Once the configured capacity is exceeded the oldest records are
// dropped. It backs deferred display: the host drawing application has no
// console, so messages are collected during a run and shown at the end.
//
// The zero value is not usable; construct with NewCycleBuffer.
type CycleBuffer struct {
	state *bufferState
	attrs []slog.Attr
}

// bufferState is shared between a CycleBuffer and the derived handlers
// returned by WithAttrs/WithGroup, so all of them append to one ring.
type bufferState struct {
	mu       sync.Mutex
	capacity int
	level    slog.Level
	records  []slog.Record
}

// DefaultBufferCapacity is the record capacity used when a non-positive
// capacity is requested.
const DefaultBufferCapacity = 100

// NewCycleBuffer creates a CycleBuffer retaining at most capacity records at
// or above the given level.
func NewCycleBuffer(capacity int, level slog.Level) *CycleBuffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return &CycleBuffer{
		state: &bufferState{
			capacity: capacity,
			level:    level,
		},
	}
}

// Enabled implements slog.Handler.
func (b *CycleBuffer) Enabled(_ context.Context, level slog.Level) bool {
	return level >= b.state.level
}

// Handle implements slog.Handler. It appends the record and drops the oldest
// records once the buffer exceeds its capacity.
func (b *CycleBuffer) Handle(_ context.Context, r slog.Record) error {
	rec := r.Clone()
	rec.AddAttrs(b.attrs...)

	s := b.state
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if len(s.records) > s.capacity {
		s.records = s.records[len(s.records)-s.capacity:]
	}
	return nil
}

// WithAttrs implements slog.Handler. The derived handler shares the ring.
func (b *CycleBuffer) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return b
	}
	merged := make([]slog.Attr, 0, len(b.attrs)+len(attrs))
	merged = append(merged, b.attrs...)
	merged = append(merged, attrs...)
	return &CycleBuffer{state: b.state, attrs: merged}
}

// WithGroup implements slog.Handler. Groups are flattened: the buffer exists
// for human-readable deferred display, not structured output.
func (b *CycleBuffer) WithGroup(name string) slog.Handler {
	return b
}

// Len returns the number of records currently retained.
func (b *CycleBuffer) Len() int {
	b.state.mu.Lock()
	defer b.state.mu.Unlock()
	return len(b.state.records)
}

// Capacity returns the maximum number of records the buffer retains.
func (b *CycleBuffer) Capacity() int {
	return b.state.capacity
}

// Records returns a copy of the retained records, oldest first.
func (b *CycleBuffer) Records() []slog.Record {
	b.state.mu.Lock()
	defer b.state.mu.Unlock()
	out := make([]slog.Record, len(b.state.records))
	copy(out, b.state.records)
	return out
}

// Flush writes the retained records to w, one formatted line per record, and
// empties the buffer. This is how collected messages reach the user at the
// end of a run.
func (b *CycleBuffer) Flush(w io.Writer) error {
	s := b.state
	s.mu.Lock()
	records := s.records
	s.records = nil
	s.mu.Unlock()

	for _, r := range records {
		if _, err := fmt.Fprintln(w, formatRecord(r)); err != nil {
			return fmt.Errorf("failed to write buffered log record: %w", err)
		}
	}
	return nil
}

// formatRecord renders a record as a single human-readable line.
func formatRecord(r slog.Record) string {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(r.Level.String())
	sb.WriteString(" ")
	sb.WriteString(r.Message)

	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value.String())
		return true
	})

	return sb.String()
}
