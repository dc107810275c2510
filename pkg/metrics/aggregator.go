package metrics

import (
	"sort"
	"time"
)

// Aggregated summarizes a batch of recorded metrics.
type Aggregated struct {
	TotalRequests       int           `json:"total_requests"`
	SuccessfulRequests  int           `json:"successful_requests"`
	FailedRequests      int           `json:"failed_requests"`
	ErrorRate           float64       `json:"error_rate"`
	LatencyP50          time.Duration `json:"latency_p50"`
	LatencyP95          time.Duration `json:"latency_p95"`
	LatencyP99          time.Duration `json:"latency_p99"`
	LatencyP999         time.Duration `json:"latency_p999"`
	AverageLatency      time.Duration `json:"average_latency"`
	MinLatency          time.Duration `json:"min_latency"`
	MaxLatency          time.Duration `json:"max_latency"`
	AverageRecoveryTime time.Duration `json:"average_recovery_time"`
}

// Aggregate folds a slice of Metric into an Aggregated summary.
func Aggregate(metrics []Metric) Aggregated {
	var latencies []time.Duration
	var recoveries []time.Duration
	var successCount, errorCount int

	for _, m := range metrics {
		switch m.Type {
		case KindLatency:
			latencies = append(latencies, m.Latency)
		case KindSuccess:
			successCount++
		case KindError:
			errorCount++
		case KindRecovery:
			recoveries = append(recoveries, m.Recovery)
		}
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	total := successCount + errorCount
	var errorRate float64
	if total > 0 {
		errorRate = float64(errorCount) / float64(total)
	}

	agg := Aggregated{
		TotalRequests:      total,
		SuccessfulRequests: successCount,
		FailedRequests:     errorCount,
		ErrorRate:          errorRate,
	}

	if len(latencies) > 0 {
		agg.LatencyP50 = percentile(latencies, 0.50)
		agg.LatencyP95 = percentile(latencies, 0.95)
		agg.LatencyP99 = percentile(latencies, 0.99)
		agg.LatencyP999 = percentile(latencies, 0.999)
		agg.AverageLatency = average(latencies)
		agg.MinLatency = latencies[0]
		agg.MaxLatency = latencies[len(latencies)-1]
	}

	if len(recoveries) > 0 {
		agg.AverageRecoveryTime = average(recoveries)
	}

	return agg
}

// percentile assumes sorted is already ascending. index = min(floor(p*n), n-1).
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	return sum / time.Duration(len(durations))
}
