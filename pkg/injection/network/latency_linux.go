//go:build linux

package network

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

func applyLatency(ctx context.Context, log *telemetry.Logger, t target.Target, cfg LatencyConfig) (handle.Handle, error) {
	iface := cfg.iface()
	args := []string{"qdisc", "add", "dev", iface, "root", "netem",
		"delay", fmt.Sprintf("%dms", cfg.MeanMS), fmt.Sprintf("%dms", cfg.JitterMS),
		fmt.Sprintf("%d%%", cfg.CorrelationPct), "distribution", "normal"}

	if log != nil {
		log.Info("applying network latency", "interface", iface, "mean_ms", cfg.MeanMS, "jitter_ms", cfg.JitterMS)
	}

	if out, err := exec.CommandContext(ctx, "tc", args...).CombinedOutput(); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "tc qdisc add failed: %s", string(out))
	}

	return handle.New("network_latency", t, map[string]interface{}{
		"interface": iface,
		"mean_ms":   cfg.MeanMS,
		"jitter_ms": cfg.JitterMS,
	}), nil
}

func removeLatency(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	iface := metadataInterface(h)
	out, err := exec.CommandContext(ctx, "tc", "qdisc", "del", "dev", iface, "root").CombinedOutput()
	if err != nil {
		if log != nil {
			log.Info("qdisc already removed", "interface", iface, "output", string(out))
		}
		return nil
	}
	return nil
}

func applyPacketLoss(ctx context.Context, log *telemetry.Logger, t target.Target, cfg PacketLossConfig) (handle.Handle, error) {
	iface := cfg.iface()
	args := []string{"qdisc", "add", "dev", iface, "root", "netem", "loss", fmt.Sprintf("%d%%", cfg.RatePct)}
	if cfg.CorrelationPct > 0 {
		args = append(args, fmt.Sprintf("%d%%", cfg.CorrelationPct))
	}

	if log != nil {
		log.Info("applying packet loss", "interface", iface, "rate_pct", cfg.RatePct)
	}

	if out, err := exec.CommandContext(ctx, "tc", args...).CombinedOutput(); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "tc qdisc add failed: %s", string(out))
	}

	return handle.New("packet_loss", t, map[string]interface{}{
		"interface": iface,
		"rate_pct":  cfg.RatePct,
	}), nil
}

func removePacketLoss(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	iface := metadataInterface(h)
	out, err := exec.CommandContext(ctx, "tc", "qdisc", "del", "dev", iface, "root").CombinedOutput()
	if err != nil && log != nil {
		log.Info("qdisc already removed", "interface", iface, "output", string(out))
	}
	return nil
}
