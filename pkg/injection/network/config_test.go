package network

import "testing"

func TestConfigFromParamsDefaults(t *testing.T) {
	cfg := configFromParams(nil)
	if cfg.MeanMS != 100 || cfg.JitterMS != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.iface() != defaultInterface {
		t.Fatalf("expected default interface %q, got %q", defaultInterface, cfg.iface())
	}
}

func TestConfigFromParamsOverride(t *testing.T) {
	cfg := configFromParams(map[string]interface{}{
		"mean_ms":     250.0,
		"jitter_ms":   15,
		"correlation": 0.5,
		"interface":   "eth1",
	})
	if cfg.MeanMS != 250 || cfg.JitterMS != 15 || cfg.CorrelationPct != 50 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.iface() != "eth1" {
		t.Fatalf("expected eth1, got %s", cfg.iface())
	}
}

func TestLossConfigFromParams(t *testing.T) {
	cfg := lossConfigFromParams(map[string]interface{}{"rate": 0.1, "correlation": 0.2})
	if cfg.RatePct != 10 || cfg.CorrelationPct != 20 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
