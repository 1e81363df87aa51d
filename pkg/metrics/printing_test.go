package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintMetrics_Record(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m, err := NewPrintMetrics(registry)
	require.NoError(t, err)

	m.RecordRequest("troncons", OutcomeSuccess, 120*time.Millisecond)
	m.RecordRequest("troncons", OutcomeSuccess, 80*time.Millisecond)
	m.RecordRequest("troncons", OutcomeFailed, time.Second)
	m.RecordCopies("troncons", "zebra1", 3)
	m.RecordCopies("troncons", "zebra1", 0)
	m.RecordTransportFailure("zebra1", "refused")
	m.RecordAuditError("sciage")

	assert.InDelta(t, 2, testutil.ToFloat64(m.requestsTotal.WithLabelValues("troncons", OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.requestsTotal.WithLabelValues("troncons", OutcomeFailed)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.copiesTotal.WithLabelValues("troncons", "zebra1")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.transportFailuresTotal.WithLabelValues("zebra1", "refused")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.auditErrorsTotal.WithLabelValues("sciage")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestPrintMetrics_DoubleRegister(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	_, err := NewPrintMetrics(registry)
	require.NoError(t, err)
	_, err = NewPrintMetrics(registry)
	assert.Error(t, err)
}

func TestPrintMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *PrintMetrics
	assert.NotPanics(t, func() {
		m.RecordRequest("troncons", OutcomeSuccess, time.Millisecond)
		m.RecordCopies("troncons", "zebra1", 1)
		m.RecordTransportFailure("zebra1", "timeout")
		m.RecordAuditError("troncons")
	})
}
