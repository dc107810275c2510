package metrics

import (
	"sync"
	"time"
)

// Violation records one SLO breach.
type Violation struct {
	SLOName   string        `json:"slo_name"`
	Threshold time.Duration `json:"threshold"`
	Actual    time.Duration `json:"actual"`
	Timestamp time.Time     `json:"timestamp"`
}

type slo struct {
	name      string
	threshold time.Duration
}

// SLOTracker checks recorded latencies against named thresholds and
// accumulates every breach.
type SLOTracker struct {
	mu         sync.Mutex
	slos       []slo
	violations []Violation
}

func NewSLOTracker() *SLOTracker {
	return &SLOTracker{}
}

func (t *SLOTracker) AddSLO(name string, threshold time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slos = append(t.slos, slo{name: name, threshold: threshold})
}

func (t *SLOTracker) CheckLatency(latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.slos {
		if latency > s.threshold {
			t.violations = append(t.violations, Violation{
				SLOName:   s.name,
				Threshold: s.threshold,
				Actual:    latency,
				Timestamp: time.Now().UTC(),
			})
		}
	}
}

func (t *SLOTracker) Violations() []Violation {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Violation, len(t.violations))
	copy(out, t.violations)
	return out
}

func (t *SLOTracker) ViolationCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.violations)
}

func (t *SLOTracker) ViolationRate(totalRequests int) float64 {
	if totalRequests == 0 {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return float64(len(t.violations)) / float64(totalRequests)
}
