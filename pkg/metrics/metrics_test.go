package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *Metrics {
	cfg := DefaultConfig("wmsctl")
	cfg.SkipRuntime = true
	return New(cfg)
}

func TestRecordClientRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordClientRequest("GET", "warehouses.list", 200, OutcomeSuccess, 20*time.Millisecond)
	m.RecordClientRequest("GET", "warehouses.list", 200, OutcomeSuccess, 30*time.Millisecond)
	m.RecordClientRequest("GET", "warehouses.list", 502, OutcomeTransportError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ClientRequestsTotal.WithLabelValues("GET", "warehouses.list", "200", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClientRequestsTotal.WithLabelValues("GET", "warehouses.list", "502", OutcomeTransportError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ClientRequestDuration))
}

func TestInFlightAndSessionCounters(t *testing.T) {
	m := newTestMetrics()

	m.IncrementInFlight()
	m.IncrementInFlight()
	m.DecrementInFlight()
	m.RecordForcedLogout()
	m.RecordNotification("error")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClientRequestsInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ForcedLogouts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("error")))
}

func TestHandler_ExposesDashboardGauges(t *testing.T) {
	m := newTestMetrics()
	m.SetDashboardStat("total_warehouses", 4)
	m.SetPollResult(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `wms_dashboard_stat{service="wmsctl",stat="total_warehouses"} 4`)
	assert.Contains(t, string(body), `wms_dashboard_last_poll_success{service="wmsctl"} 1`)
}
