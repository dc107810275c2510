package metrics

import (
	"testing"
	"time"
)

func TestAggregate(t *testing.T) {
	ms := []Metric{
		{Type: KindLatency, Latency: 100 * time.Millisecond},
		{Type: KindLatency, Latency: 200 * time.Millisecond},
		{Type: KindSuccess},
		{Type: KindError, ErrorType: "timeout"},
	}

	agg := Aggregate(ms)

	if agg.TotalRequests != 2 {
		t.Errorf("TotalRequests = %d, want 2", agg.TotalRequests)
	}
	if agg.SuccessfulRequests != 1 {
		t.Errorf("SuccessfulRequests = %d, want 1", agg.SuccessfulRequests)
	}
	if agg.FailedRequests != 1 {
		t.Errorf("FailedRequests = %d, want 1", agg.FailedRequests)
	}
	if agg.ErrorRate != 0.5 {
		t.Errorf("ErrorRate = %v, want 0.5", agg.ErrorRate)
	}
}

func TestPercentileIndexFormula(t *testing.T) {
	sorted := []time.Duration{
		10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond,
		40 * time.Millisecond, 50 * time.Millisecond,
	}
	// index = min(floor(p*n), n-1); p=0.99, n=5 -> floor(4.95)=4 -> last element
	if got := percentile(sorted, 0.99); got != 50*time.Millisecond {
		t.Errorf("percentile(0.99) = %v, want 50ms", got)
	}
	if got := percentile(sorted, 0); got != 10*time.Millisecond {
		t.Errorf("percentile(0) = %v, want 10ms", got)
	}
}

func TestCollectorRecordAndAggregate(t *testing.T) {
	c := NewCollector()
	c.RecordLatency(100 * time.Millisecond)
	c.RecordSuccess()
	c.RecordError("timeout")

	agg := Aggregate(c.Metrics())
	if agg.TotalRequests != 2 {
		t.Errorf("TotalRequests = %d, want 2", agg.TotalRequests)
	}
}

func TestSLOTrackerViolations(t *testing.T) {
	tr := NewSLOTracker()
	tr.AddSLO("p99_latency", 100*time.Millisecond)

	tr.CheckLatency(50 * time.Millisecond)
	tr.CheckLatency(150 * time.Millisecond)

	if tr.ViolationCount() != 1 {
		t.Errorf("ViolationCount() = %d, want 1", tr.ViolationCount())
	}
	if rate := tr.ViolationRate(2); rate != 0.5 {
		t.Errorf("ViolationRate(2) = %v, want 0.5", rate)
	}
}
