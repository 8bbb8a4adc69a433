package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/dental-scheduler/internal/metrics"
)

type Event struct {
	Actor     string
	Action    string
	Entity    string
	EntityID  string
	RequestID string
	Metadata  any
}

type Dispatcher struct {
	logger  *Logger
	queue   chan Event
	log     *zap.Logger
	metrics *metrics.Collector

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(logger *Logger, log *zap.Logger, m *metrics.Collector, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		logger:  logger,
		queue:   make(chan Event, size),
		log:     log,
		metrics: m,
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := d.logger.Log(ctx, ev)
		cancel()

		if err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity_id", ev.EntityID),
				zap.Error(err),
			)
			continue
		}
		d.metrics.AuditWritten()
	}
}

// Dispatch never blocks the caller. The request id carried by ctx is
// attached when the event has none.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	if d == nil {
		return
	}
	if ev.RequestID == "" {
		ev.RequestID = RequestIDFrom(ctx)
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.metrics.AuditDropped()
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() { close(d.queue) })

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
