// Package network implements the network_latency, packet_loss, and
// tcp_reset injectors: traffic shaping and packet filtering driven directly
// against host kernel facilities (tc/netem, iptables, dummynet/pfctl,
// netsh), in place of the teacher's sidecar-exec wrapper around the same
// tc command shape.
package network

import (
	"context"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

const defaultInterface = "eth0"

// LatencyConfig configures the network_latency injector.
type LatencyConfig struct {
	MeanMS        int
	JitterMS      int
	CorrelationPct int // 0-100
	Interface     string
}

func (c LatencyConfig) iface() string {
	if c.Interface != "" {
		return c.Interface
	}
	return defaultInterface
}

// LatencyInjector is the network_latency fault.
type LatencyInjector struct {
	log *telemetry.Logger
}

func NewLatencyInjector(log *telemetry.Logger) *LatencyInjector {
	return &LatencyInjector{log: log}
}

func (n *LatencyInjector) Name() string { return "network_latency" }

func (n *LatencyInjector) RequiredCapabilities() []string { return []string{"CAP_NET_ADMIN"} }

func configFromParams(params map[string]interface{}) LatencyConfig {
	cfg := LatencyConfig{MeanMS: 100, JitterMS: 10, CorrelationPct: 25}
	if v, ok := asFloat(params["mean_ms"]); ok {
		cfg.MeanMS = int(v)
	}
	if v, ok := asFloat(params["jitter_ms"]); ok {
		cfg.JitterMS = int(v)
	}
	if v, ok := asFloat(params["correlation"]); ok {
		cfg.CorrelationPct = int(v * 100)
	}
	if v, ok := params["interface"].(string); ok {
		cfg.Interface = v
	} else if v, ok := params["device"].(string); ok {
		cfg.Interface = v
	}
	return cfg
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

func (n *LatencyInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	return n.ApplyWithParams(ctx, t, nil)
}

// ApplyWithParams applies latency configured from per-injection parameters.
// The Executor (and so the Runner) calls only Apply, which uses the
// defaults; nothing in the harness calls ApplyWithParams.
func (n *LatencyInjector) ApplyWithParams(ctx context.Context, t target.Target, params map[string]interface{}) (handle.Handle, error) {
	cfg := configFromParams(params)
	return applyLatency(ctx, n.log, t, cfg)
}

func (n *LatencyInjector) Remove(ctx context.Context, h handle.Handle) error {
	return removeLatency(ctx, n.log, h)
}

// PacketLossConfig configures the packet_loss injector.
type PacketLossConfig struct {
	RatePct        int
	CorrelationPct int
	Interface      string
}

func (c PacketLossConfig) iface() string {
	if c.Interface != "" {
		return c.Interface
	}
	return defaultInterface
}

// PacketLossInjector is the packet_loss fault.
type PacketLossInjector struct {
	log *telemetry.Logger
}

func NewPacketLossInjector(log *telemetry.Logger) *PacketLossInjector {
	return &PacketLossInjector{log: log}
}

func (p *PacketLossInjector) Name() string { return "packet_loss" }

func (p *PacketLossInjector) RequiredCapabilities() []string { return []string{"CAP_NET_ADMIN"} }

func lossConfigFromParams(params map[string]interface{}) PacketLossConfig {
	cfg := PacketLossConfig{RatePct: 5, CorrelationPct: 0}
	if v, ok := asFloat(params["rate"]); ok {
		cfg.RatePct = int(v * 100)
	}
	if v, ok := asFloat(params["correlation"]); ok {
		cfg.CorrelationPct = int(v * 100)
	}
	if v, ok := params["interface"].(string); ok {
		cfg.Interface = v
	} else if v, ok := params["device"].(string); ok {
		cfg.Interface = v
	}
	return cfg
}

func (p *PacketLossInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	return p.ApplyWithParams(ctx, t, nil)
}

func (p *PacketLossInjector) ApplyWithParams(ctx context.Context, t target.Target, params map[string]interface{}) (handle.Handle, error) {
	cfg := lossConfigFromParams(params)
	return applyPacketLoss(ctx, p.log, t, cfg)
}

func (p *PacketLossInjector) Remove(ctx context.Context, h handle.Handle) error {
	return removePacketLoss(ctx, p.log, h)
}

func metadataInterface(h handle.Handle) string {
	if v, ok := h.Metadata["interface"].(string); ok && v != "" {
		return v
	}
	return defaultInterface
}

func unsupportedPlatform(op string) error {
	return chaoserr.New(chaoserr.SystemError, "%s is not supported on this platform", op)
}
