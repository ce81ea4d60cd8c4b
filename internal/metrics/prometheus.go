package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ideadesk"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	operations *prom.CounterVec
	duration   *prom.HistogramVec
	inflight   *prom.GaugeVec
	stale      *prom.CounterVec
}

// NewPrometheusRecorder constructs the slice metrics and registers them with reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		operations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "slice_operations_total",
			Help:      "Slice operations by final outcome",
		}, []string{"slice", "op", "outcome"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "slice_operation_duration_seconds",
			Help:      "Time from dispatch to settlement of slice operations",
			Buckets:   prom.DefBuckets,
		}, []string{"slice", "op"}),
		inflight: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "slice_inflight",
			Help:      "Operations currently pending per slice",
		}, []string{"slice"}),
		stale: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "slice_stale_results_total",
			Help:      "Results dropped because a newer operation in the same lane already settled",
		}, []string{"slice", "op"}),
	}
	reg.MustRegister(pr.operations, pr.duration, pr.inflight, pr.stale)
	return pr
}

func (p *PrometheusRecorder) ObserveOperation(slice, op string, outcome Outcome, d time.Duration) {
	if p == nil {
		return
	}
	p.operations.WithLabelValues(slice, op, string(outcome)).Inc()
	p.duration.WithLabelValues(slice, op).Observe(d.Seconds())
	if outcome == OutcomeStale {
		p.stale.WithLabelValues(slice, op).Inc()
	}
}

func (p *PrometheusRecorder) SetInflight(slice string, n int) {
	if p == nil {
		return
	}
	p.inflight.WithLabelValues(slice).Set(float64(n))
}

// HTTPHandler serves the metrics gathered by g.
func HTTPHandler(g prom.Gatherer) http.Handler {
	if g == nil {
		g = prom.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
