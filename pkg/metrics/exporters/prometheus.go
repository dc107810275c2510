package exporters

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jihwankim/chaos-harness/pkg/metrics"
)

const prometheusTemplate = `# HELP chaos_total_requests Total number of requests
# TYPE chaos_total_requests counter
chaos_total_requests %d

# HELP chaos_failed_requests Total number of failed requests
# TYPE chaos_failed_requests counter
chaos_failed_requests %d

# HELP chaos_error_rate Error rate
# TYPE chaos_error_rate gauge
chaos_error_rate %v

# HELP chaos_latency_p50 50th percentile latency in seconds
# TYPE chaos_latency_p50 gauge
chaos_latency_p50 %v

# HELP chaos_latency_p95 95th percentile latency in seconds
# TYPE chaos_latency_p95 gauge
chaos_latency_p95 %v

# HELP chaos_latency_p99 99th percentile latency in seconds
# TYPE chaos_latency_p99 gauge
chaos_latency_p99 %v

# HELP chaos_avg_latency Average latency in seconds
# TYPE chaos_avg_latency gauge
chaos_avg_latency %v
`

// Prometheus renders agg as Prometheus text exposition. p999 is
// intentionally omitted: it is not a stable statistic at the sample sizes
// a single chaos run typically produces.
func Prometheus(agg metrics.Aggregated) string {
	return fmt.Sprintf(prometheusTemplate,
		agg.TotalRequests,
		agg.FailedRequests,
		agg.ErrorRate,
		agg.LatencyP50.Seconds(),
		agg.LatencyP95.Seconds(),
		agg.LatencyP99.Seconds(),
		agg.AverageLatency.Seconds(),
	)
}

// LiveRegistry exposes the same statistics as live gauges on a
// prometheus.Registry, for a scenario that is scraped while still running
// rather than only reported on at the end.
type LiveRegistry struct {
	registry       *prometheus.Registry
	totalRequests  prometheus.Gauge
	failedRequests prometheus.Gauge
	errorRate      prometheus.Gauge
	latencyP50     prometheus.Gauge
	latencyP95     prometheus.Gauge
	latencyP99     prometheus.Gauge
	avgLatency     prometheus.Gauge
}

func NewLiveRegistry() *LiveRegistry {
	r := &LiveRegistry{
		registry:       prometheus.NewRegistry(),
		totalRequests:  prometheus.NewGauge(prometheus.GaugeOpts{Name: "chaos_total_requests", Help: "Total number of requests"}),
		failedRequests: prometheus.NewGauge(prometheus.GaugeOpts{Name: "chaos_failed_requests", Help: "Total number of failed requests"}),
		errorRate:      prometheus.NewGauge(prometheus.GaugeOpts{Name: "chaos_error_rate", Help: "Error rate"}),
		latencyP50:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "chaos_latency_p50", Help: "50th percentile latency in seconds"}),
		latencyP95:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "chaos_latency_p95", Help: "95th percentile latency in seconds"}),
		latencyP99:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "chaos_latency_p99", Help: "99th percentile latency in seconds"}),
		avgLatency:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "chaos_avg_latency", Help: "Average latency in seconds"}),
	}
	r.registry.MustRegister(
		r.totalRequests, r.failedRequests, r.errorRate,
		r.latencyP50, r.latencyP95, r.latencyP99, r.avgLatency,
	)
	return r
}

func (r *LiveRegistry) Registry() *prometheus.Registry { return r.registry }

// Update overwrites every gauge with agg's current values.
func (r *LiveRegistry) Update(agg metrics.Aggregated) {
	r.totalRequests.Set(float64(agg.TotalRequests))
	r.failedRequests.Set(float64(agg.FailedRequests))
	r.errorRate.Set(agg.ErrorRate)
	r.latencyP50.Set(agg.LatencyP50.Seconds())
	r.latencyP95.Set(agg.LatencyP95.Seconds())
	r.latencyP99.Set(agg.LatencyP99.Seconds())
	r.avgLatency.Set(agg.AverageLatency.Seconds())
}
