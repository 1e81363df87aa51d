// Package metrics exposes Prometheus metrics for label printing.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Print request outcomes.
const (
	OutcomeSuccess = "success"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
	OutcomeLogOnly = "log_only"
)

// PrintMetrics tracks the print pipeline. A nil *PrintMetrics records nothing,
// so callers don't need to guard every call.
type PrintMetrics struct {
	requestsTotal          *prometheus.CounterVec
	copiesTotal            *prometheus.CounterVec
	transportFailuresTotal *prometheus.CounterVec
	auditErrorsTotal       *prometheus.CounterVec
	duration               *prometheus.HistogramVec
}

// NewPrintMetrics creates the print metrics and registers them with the
// given registry.
func NewPrintMetrics(registry prometheus.Registerer) (*PrintMetrics, error) {
	m := &PrintMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "woodstock",
				Name:      "print_requests_total",
				Help:      "Total number of print requests by outcome",
			},
			[]string{"station", "outcome"},
		),
		copiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "woodstock",
				Name:      "label_copies_total",
				Help:      "Total number of label copies accepted by a printer",
			},
			[]string{"station", "printer"},
		),
		transportFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "woodstock",
				Name:      "transport_failures_total",
				Help:      "Total number of failed printer sends by failure kind",
			},
			[]string{"printer", "kind"},
		),
		auditErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "woodstock",
				Name:      "audit_append_errors_total",
				Help:      "Total number of print log rows that could not be written",
			},
			[]string{"station"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "woodstock",
				Name:      "print_duration_seconds",
				Help:      "Time taken to handle a print request, including every copy",
				// 10ms to ~40s, past the transport timeout.
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"station"},
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, errors.WithStack(err)
	}
	return m, nil
}

// Describe implements prometheus.Collector.
func (m *PrintMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	m.copiesTotal.Describe(ch)
	m.transportFailuresTotal.Describe(ch)
	m.auditErrorsTotal.Describe(ch)
	m.duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *PrintMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	m.copiesTotal.Collect(ch)
	m.transportFailuresTotal.Collect(ch)
	m.auditErrorsTotal.Collect(ch)
	m.duration.Collect(ch)
}

func (m *PrintMetrics) RecordRequest(station, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(station, outcome).Inc()
	m.duration.WithLabelValues(station).Observe(elapsed.Seconds())
}

func (m *PrintMetrics) RecordCopies(station, printer string, copies int) {
	if m == nil || copies <= 0 {
		return
	}
	m.copiesTotal.WithLabelValues(station, printer).Add(float64(copies))
}

func (m *PrintMetrics) RecordTransportFailure(printer, kind string) {
	if m == nil {
		return
	}
	m.transportFailuresTotal.WithLabelValues(printer, kind).Inc()
}

func (m *PrintMetrics) RecordAuditError(station string) {
	if m == nil {
		return
	}
	m.auditErrorsTotal.WithLabelValues(station).Inc()
}
