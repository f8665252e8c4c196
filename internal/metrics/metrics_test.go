package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hance08/walletsync/internal/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Write("ltc", model.OutcomeNew)
	m.Write("ltc", model.OutcomeNew)
	m.Write("ltc", model.OutcomeNone)
	m.Sweep("ltc", "incomplete", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.writes.WithLabelValues("ltc", "new")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writes.WithLabelValues("ltc", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sweeps.WithLabelValues("ltc", "incomplete")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Write("ltc", model.OutcomeNew)
	m.Notification("webhook", "sent")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Notification("webhook", "failed")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `walletsync_notifications_total{result="failed",sink="webhook"} 1`)
}
