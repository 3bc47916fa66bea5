// Package testutil provides test utilities and constructors with pre-injected dependencies.
package testutil

import (
	"context"
	"log/slog"
	"sync"

	"kubesetctx/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// Recorder is a slog handler that keeps every record it receives.
type Recorder struct {
	mu      *sync.Mutex
	records *[]slog.Record
	attrs   []slog.Attr
}

// NewRecorder returns a recorder and a logger writing to it at debug level.
func NewRecorder() (*Recorder, *slog.Logger) {
	r := &Recorder{
		mu:      &sync.Mutex{},
		records: &[]slog.Record{},
	}
	return r, slog.New(r)
}

func (r *Recorder) Enabled(context.Context, slog.Level) bool {
	return true
}

func (r *Recorder) Handle(_ context.Context, record slog.Record) error {
	record = record.Clone()
	record.AddAttrs(r.attrs...)

	r.mu.Lock()
	defer r.mu.Unlock()
	*r.records = append(*r.records, record)
	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(r.attrs)+len(attrs))
	merged = append(merged, r.attrs...)
	merged = append(merged, attrs...)
	return &Recorder{mu: r.mu, records: r.records, attrs: merged}
}

func (r *Recorder) WithGroup(string) slog.Handler {
	return r
}

// Records returns a copy of everything recorded so far.
func (r *Recorder) Records() []slog.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]slog.Record, len(*r.records))
	copy(out, *r.records)
	return out
}

// Count returns how many records were emitted at the given level.
func (r *Recorder) Count(level slog.Level) int {
	n := 0
	for _, rec := range r.Records() {
		if rec.Level == level {
			n++
		}
	}
	return n
}

// Messages returns the messages emitted at the given level, in order.
func (r *Recorder) Messages(level slog.Level) []string {
	var msgs []string
	for _, rec := range r.Records() {
		if rec.Level == level {
			msgs = append(msgs, rec.Message)
		}
	}
	return msgs
}
