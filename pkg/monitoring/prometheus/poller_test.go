package prometheus

import (
	"testing"
	"time"
)

func TestConfigFields(t *testing.T) {
	cfg := Config{URL: "http://localhost:9090", Timeout: 5 * time.Second, RefreshInterval: 15 * time.Second}
	if cfg.URL == "" {
		t.Fatal("expected URL to be set")
	}
}

func TestMetricToMap(t *testing.T) {
	labels := metricToMap(nil)
	if labels == nil {
		t.Fatal("metricToMap(nil) returned nil, want empty map")
	}
	if len(labels) != 0 {
		t.Errorf("metricToMap(nil) = %v, want empty", labels)
	}
}
