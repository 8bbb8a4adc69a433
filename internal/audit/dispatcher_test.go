package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
	"github.com/BruksfildServices01/dental-scheduler/internal/models"
)

type fakeStore struct {
	mu    sync.Mutex
	logs  []models.AuditLog
	block chan struct{}
	err   error
}

func (f *fakeStore) WriteAuditLog(ctx context.Context, log *models.AuditLog) error {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeStore) ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logs, int64(len(f.logs)), nil
}

func closeDispatcher(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestDispatcher_WritesEvents(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(New(store), nil, nil, 10)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	d.Dispatch(ctx, Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: "7",
		Metadata: map[string]string{"room": "1"},
	})
	closeDispatcher(t, d)

	if len(store.logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(store.logs))
	}
	got := store.logs[0]
	if got.Action != "appointment_created" || got.EntityID != "7" {
		t.Fatalf("unexpected log %+v", got)
	}
	if got.RequestID != "req-1" {
		t.Fatalf("request id = %q, want req-1", got.RequestID)
	}
	if got.Actor != "system" {
		t.Fatalf("actor = %q, want system", got.Actor)
	}
	if got.Metadata != `{"room":"1"}` {
		t.Fatalf("metadata = %q", got.Metadata)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	store := &fakeStore{block: make(chan struct{})}
	m := metrics.NewCollector()
	d := NewDispatcher(New(store), nil, m, 1)

	// the worker picks up the first event and blocks; the second fills the queue
	d.Dispatch(context.Background(), Event{Action: "a"})
	deadline := time.Now().Add(time.Second)
	for len(d.queue) != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	d.Dispatch(context.Background(), Event{Action: "b"})
	d.Dispatch(context.Background(), Event{Action: "c"})

	if got := testutil.ToFloat64(m.AuditBufferDropped); got != 1 {
		t.Fatalf("dropped = %v, want 1", got)
	}

	close(store.block)
	closeDispatcher(t, d)

	if len(store.logs) != 2 {
		t.Fatalf("expected 2 logs written, got %d", len(store.logs))
	}
}

func TestDispatcher_StoreErrorIsSwallowed(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	d := NewDispatcher(New(store), nil, nil, 10)

	d.Dispatch(context.Background(), Event{Action: "a"})
	closeDispatcher(t, d)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(context.Background(), Event{Action: "a"})
}
