package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels prometheus.Labels) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.With(labels).Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, labels prometheus.Labels) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.With(labels).Write(&m))
	return m.GetGauge().GetValue()
}

func TestHelpers_NoopBeforeInit(t *testing.T) {
	// nil指标不应panic
	assert.NotPanics(t, func() {
		IncCounterVec(nil, prometheus.Labels{"op": "add"})
		ObserveHistogramVec(nil, prometheus.Labels{"endpoint": "x"}, 1)
		SetGaugeVec(nil, prometheus.Labels{"name": "x"}, 1)
		AddGauge(nil, 1)
	})
}

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	first := CheckoutFinalizeTotal
	InitMetrics()
	assert.Same(t, first, CheckoutFinalizeTotal)
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := prometheus.Labels{"op": "add", "result": "ignored"}
	before := counterValue(t, CartMutationsTotal, labels)
	IncCounterVec(CartMutationsTotal, labels)
	IncCounterVec(CartMutationsTotal, labels)

	assert.Equal(t, before+2, counterValue(t, CartMutationsTotal, labels))
}

func TestGaugeVec(t *testing.T) {
	InitMetrics()

	SetGaugeVec(CircuitBreakerState, prometheus.Labels{"name": "backend"}, 1)
	assert.Equal(t, float64(1), gaugeValue(t, CircuitBreakerState, prometheus.Labels{"name": "backend"}))
}

func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := prometheus.Labels{"endpoint": "orders.create"}
	ObserveHistogramVec(BackendRequestDuration, labels, 0.05)
	ObserveHistogramVec(BackendRequestDuration, labels, 0.2)

	var m dto.Metric
	observer := BackendRequestDuration.With(labels)
	require.NoError(t, observer.(prometheus.Metric).Write(&m))
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(2))
}
