//go:build darwin

package network

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

const latencyPipe = 1
const lossPipe = 2

func applyLatency(ctx context.Context, log *telemetry.Logger, t target.Target, cfg LatencyConfig) (handle.Handle, error) {
	if out, err := exec.CommandContext(ctx, "dnctl", "pipe", fmt.Sprint(latencyPipe), "config",
		"delay", fmt.Sprint(cfg.MeanMS)).CombinedOutput(); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "dnctl pipe config failed: %s", string(out))
	}

	rule := fmt.Sprintf("dummynet out proto tcp from any to any pipe %d\n", latencyPipe)
	cmd := exec.CommandContext(ctx, "pfctl", "-a", "chaos", "-f", "-")
	cmd.Stdin = strings.NewReader(rule)
	if out, err := cmd.CombinedOutput(); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "pfctl anchor load failed: %s", string(out))
	}

	if log != nil {
		log.Info("applying network latency", "mean_ms", cfg.MeanMS, "pipe", latencyPipe)
	}

	return handle.New("network_latency", t, map[string]interface{}{
		"pipe":    latencyPipe,
		"mean_ms": cfg.MeanMS,
	}), nil
}

func removeLatency(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	_, _ = exec.CommandContext(ctx, "pfctl", "-a", "chaos", "-F", "all").CombinedOutput()
	_, _ = exec.CommandContext(ctx, "dnctl", "pipe", fmt.Sprint(latencyPipe), "delete").CombinedOutput()
	return nil
}

func applyPacketLoss(ctx context.Context, log *telemetry.Logger, t target.Target, cfg PacketLossConfig) (handle.Handle, error) {
	if out, err := exec.CommandContext(ctx, "dnctl", "pipe", fmt.Sprint(lossPipe), "config",
		"plr", fmt.Sprintf("%.2f", float64(cfg.RatePct)/100.0)).CombinedOutput(); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "dnctl pipe config failed: %s", string(out))
	}

	rule := fmt.Sprintf("dummynet out proto tcp from any to any pipe %d\n", lossPipe)
	cmd := exec.CommandContext(ctx, "pfctl", "-a", "chaos", "-f", "-")
	cmd.Stdin = strings.NewReader(rule)
	if out, err := cmd.CombinedOutput(); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "pfctl anchor load failed: %s", string(out))
	}

	if log != nil {
		log.Info("applying packet loss", "rate_pct", cfg.RatePct, "pipe", lossPipe)
	}

	return handle.New("packet_loss", t, map[string]interface{}{
		"pipe":     lossPipe,
		"rate_pct": cfg.RatePct,
	}), nil
}

func removePacketLoss(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	_, _ = exec.CommandContext(ctx, "pfctl", "-a", "chaos", "-F", "all").CombinedOutput()
	_, _ = exec.CommandContext(ctx, "dnctl", "pipe", fmt.Sprint(lossPipe), "delete").CombinedOutput()
	return nil
}
