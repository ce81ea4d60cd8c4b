package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	t.Parallel()

	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveOperation("projects", "fetch", OutcomeFulfilled, 120*time.Millisecond)
	pr.ObserveOperation("projects", "fetch", OutcomeStale, 80*time.Millisecond)
	pr.ObserveOperation("projects", "delete", OutcomeRejected, 10*time.Millisecond)
	pr.SetInflight("projects", 2)

	require.InDelta(t, 1, testutil.ToFloat64(pr.operations.WithLabelValues("projects", "fetch", "fulfilled")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.stale.WithLabelValues("projects", "fetch")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(pr.inflight.WithLabelValues("projects")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ideadesk_slice_operations_total")
}

func TestNilRecorderIsSafe(t *testing.T) {
	t.Parallel()

	var pr *PrometheusRecorder
	pr.ObserveOperation("x", "y", OutcomeFulfilled, time.Second)
	pr.SetInflight("x", 1)

	var noop Recorder = NoopRecorder{}
	noop.ObserveOperation("x", "y", OutcomeCanceled, 0)
}
