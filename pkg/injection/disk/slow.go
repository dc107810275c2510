// Package disk implements disk_slow, disk_failure, and disk_space.
package disk

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

const slowMarkerFile = "/tmp/chaos_disk_slow.json"

// SlowConfig configures disk_slow.
type SlowConfig struct {
	LatencyMS  int      `json:"latency_ms"`
	Operations []string `json:"operations"`
}

// SlowInjector writes a marker file describing the intended slowdown. Real
// in-path slowdown requires a preloaded interposer owned by the target; this
// injector specifies the interface, not the interposer, matching the
// original source exactly.
type SlowInjector struct {
	log *telemetry.Logger
}

func NewSlowInjector(log *telemetry.Logger) *SlowInjector {
	return &SlowInjector{log: log}
}

func (s *SlowInjector) Name() string { return "disk_slow" }

func (s *SlowInjector) RequiredCapabilities() []string { return nil }

func (s *SlowInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	return s.ApplyWithParams(ctx, t, nil)
}

func (s *SlowInjector) ApplyWithParams(ctx context.Context, t target.Target, params map[string]interface{}) (handle.Handle, error) {
	cfg := SlowConfig{LatencyMS: 100, Operations: []string{"all"}}
	if v, ok := asFloat(params["latency_ms"]); ok {
		cfg.LatencyMS = int(v)
	}
	if ops, ok := params["operations"].([]interface{}); ok {
		cfg.Operations = nil
		for _, o := range ops {
			if s, ok := o.(string); ok {
				cfg.Operations = append(cfg.Operations, s)
			}
		}
	}

	body, err := json.Marshal(cfg)
	if err != nil {
		return handle.Handle{}, err
	}
	if err := os.WriteFile(slowMarkerFile, body, 0644); err != nil {
		return handle.Handle{}, err
	}

	if s.log != nil {
		s.log.Info("injecting disk slowdown", "latency_ms", cfg.LatencyMS, "marker_file", slowMarkerFile)
	}

	return handle.New("disk_slow", t, map[string]interface{}{
		"marker_file": slowMarkerFile,
		"latency_ms":  cfg.LatencyMS,
	}), nil
}

// Remove deletes the marker file; a missing file is demoted to success
// (ignored), asymmetric with disk_space's stricter remove below.
func (s *SlowInjector) Remove(ctx context.Context, h handle.Handle) error {
	markerFile, _ := h.Metadata["marker_file"].(string)
	if markerFile == "" {
		markerFile = slowMarkerFile
	}
	_ = os.Remove(markerFile)
	if s.log != nil {
		s.log.Info("removing disk slowdown", "marker_file", markerFile)
	}
	return nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
