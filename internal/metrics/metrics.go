package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clinic"

// Collector methods are safe on a nil receiver so components can run
// without metrics in tests.
type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	BookingsTotal   *prometheus.CounterVec
	SlotChecksTotal *prometheus.CounterVec
	PatientsCreated prometheus.Counter

	PhotoUploadsTotal *prometheus.CounterVec
	PaymentsRecorded  prometheus.Counter

	AuditEntriesTotal  prometheus.Counter
	AuditBufferDropped prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Collector{
		registry: reg,

		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		BookingsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduling",
			Name:      "bookings_total",
			Help:      "Booking attempts by operation and outcome.",
		}, []string{"operation", "outcome"}),

		SlotChecksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduling",
			Name:      "slot_checks_total",
			Help:      "Availability checks by result.",
		}, []string{"result"}),

		PatientsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "clinical",
			Name:      "patients_created_total",
			Help:      "Total number of patient records created.",
		}),

		PhotoUploadsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "clinical",
			Name:      "photo_uploads_total",
			Help:      "Treatment phase photo uploads by outcome.",
		}, []string{"outcome"}),

		PaymentsRecorded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "billing",
			Name:      "payments_recorded_total",
			Help:      "Total number of payments recorded against acts.",
		}),

		AuditEntriesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Total audit log entries written.",
		}),

		AuditBufferDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "buffer_dropped_total",
			Help:      "Audit entries dropped due to full buffer. Alert if non-zero.",
		}),
	}
}

func (c *Collector) Booking(operation, outcome string) {
	if c == nil {
		return
	}
	c.BookingsTotal.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) SlotCheck(available bool) {
	if c == nil {
		return
	}
	result := "taken"
	if available {
		result = "free"
	}
	c.SlotChecksTotal.WithLabelValues(result).Inc()
}

func (c *Collector) PatientCreated() {
	if c == nil {
		return
	}
	c.PatientsCreated.Inc()
}

func (c *Collector) PhotoUpload(outcome string) {
	if c == nil {
		return
	}
	c.PhotoUploadsTotal.WithLabelValues(outcome).Inc()
}

func (c *Collector) PaymentRecorded() {
	if c == nil {
		return
	}
	c.PaymentsRecorded.Inc()
}

func (c *Collector) AuditWritten() {
	if c == nil {
		return
	}
	c.AuditEntriesTotal.Inc()
}

func (c *Collector) AuditDropped() {
	if c == nil {
		return
	}
	c.AuditBufferDropped.Inc()
}

func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
