package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Manager) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestManagerExposesCollectors(t *testing.T) {
	m := NewManager(WithRegistry(prometheus.NewRegistry()))

	m.RecordPrediction("QRisk3", "CALCULATED_USING_PATIENTS_OWN_DATA")
	m.RecordPrediction("QRisk3", "CALCULATED_USING_PATIENTS_OWN_DATA")
	m.RecordEngineFailure("X05")
	m.RecordCacheHit("memory")
	m.ObserveEngineLatency("QRisk3", 20*time.Millisecond)
	m.RecordHTTPRequest(http.MethodPost, "/api/v1/Prediction", http.StatusOK, 30*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `risk_gateway_predictions_total{engine="QRisk3",status="CALCULATED_USING_PATIENTS_OWN_DATA"} 2`)
	assert.Contains(t, body, `risk_gateway_engine_failures_total{engine="X05"} 1`)
	assert.Contains(t, body, `risk_gateway_cache_hits_total{tier="memory"} 1`)
	assert.Contains(t, body, `risk_gateway_engine_latency_seconds_count{engine="QRisk3"} 1`)
	assert.Contains(t, body, `risk_gateway_http_requests_total{method="POST",path="/api/v1/Prediction",status="200"} 1`)
	assert.NotContains(t, body, "go_goroutines", "a supplied registry gets no runtime collectors")
}

func TestManagerNamespace(t *testing.T) {
	m := NewManager(WithNamespace("gw"), WithRegistry(prometheus.NewRegistry()))
	m.RecordEngineFailure("QFracture")

	assert.Contains(t, scrape(t, m), `gw_engine_failures_total{engine="QFracture"} 1`)
}

func TestDefaultRegistryIncludesRuntime(t *testing.T) {
	m := NewManager()
	assert.Contains(t, scrape(t, m), "go_goroutines")
}

func TestNilManagerIsNoop(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.RecordPrediction("QRisk3", "x")
		m.RecordEngineFailure("QRisk3")
		m.RecordCacheHit("redis")
		m.ObserveEngineLatency("QRisk3", time.Second)
		m.RecordHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	})
}
