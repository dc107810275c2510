package exporters

import (
	"fmt"
	"os"

	"github.com/jihwankim/chaos-harness/pkg/metrics"
)

const markdownTemplate = `# Chaos Engineering Test Report

## Summary Statistics

| Metric | Value |
|--------|-------|
| Total Requests | %d |
| Successful Requests | %d |
| Failed Requests | %d |
| Error Rate | %.2f%% |

## Latency Distribution

| Percentile | Latency |
|------------|---------|
| P50 | %s |
| P95 | %s |
| P99 | %s |
| P99.9 | %s |
| Average | %s |
| Min | %s |
| Max | %s |

## Recovery Metrics

| Metric | Value |
|--------|-------|
| Average Recovery Time | %s |

## Conclusion

Test completed. Review the metrics above to assess system resilience.
`

// Markdown renders agg as a human-readable report.
func Markdown(agg metrics.Aggregated) string {
	return fmt.Sprintf(markdownTemplate,
		agg.TotalRequests,
		agg.SuccessfulRequests,
		agg.FailedRequests,
		agg.ErrorRate*100,
		agg.LatencyP50,
		agg.LatencyP95,
		agg.LatencyP99,
		agg.LatencyP999,
		agg.AverageLatency,
		agg.MinLatency,
		agg.MaxLatency,
		agg.AverageRecoveryTime,
	)
}

// WriteMarkdown renders agg and writes it to path.
func WriteMarkdown(agg metrics.Aggregated, path string) error {
	return os.WriteFile(path, []byte(Markdown(agg)), 0644)
}
