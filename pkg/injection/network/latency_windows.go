//go:build windows

package network

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// applyLatency is degraded mode on Windows: netsh's supplemental TCP
// settings are a host-wide knob, not per-target shaping. Accepted per
// SPEC_FULL.md's resolved design decision; the blast radius is surfaced via
// an explicit warn log rather than hidden.
func applyLatency(ctx context.Context, log *telemetry.Logger, t target.Target, cfg LatencyConfig) (handle.Handle, error) {
	if log != nil {
		log.Warn("network_latency on windows mutates global TCP settings (minrto), not per-target", "mean_ms", cfg.MeanMS)
	}
	_, _ = exec.CommandContext(ctx, "netsh", "interface", "tcp", "set", "supplemental",
		"Internet", fmt.Sprintf("minrto=%d", cfg.MeanMS)).CombinedOutput()

	return handle.New("network_latency", t, map[string]interface{}{
		"mean_ms": cfg.MeanMS,
		"windows": true,
	}), nil
}

func removeLatency(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	_, _ = exec.CommandContext(ctx, "netsh", "interface", "tcp", "set", "supplemental",
		"Internet", "minrto=300").CombinedOutput()
	_, _ = exec.CommandContext(ctx, "netsh", "interface", "ipv4", "set", "global", "taskoffload=enabled").CombinedOutput()
	return nil
}

// applyPacketLoss has no kernel-level effect on Windows; it is recorded as a
// simulated fault so scenario bookkeeping still reflects intent.
func applyPacketLoss(ctx context.Context, log *telemetry.Logger, t target.Target, cfg PacketLossConfig) (handle.Handle, error) {
	if log != nil {
		log.Warn("packet_loss is simulated on windows (no kernel effect)", "rate_pct", cfg.RatePct)
	}
	return handle.New("packet_loss", t, map[string]interface{}{
		"rate_pct":  cfg.RatePct,
		"simulated": true,
	}), nil
}

func removePacketLoss(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	return nil
}
