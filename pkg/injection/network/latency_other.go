//go:build !linux && !darwin && !windows

package network

import (
	"context"

	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

func applyLatency(ctx context.Context, log *telemetry.Logger, t target.Target, cfg LatencyConfig) (handle.Handle, error) {
	return handle.Handle{}, unsupportedPlatform("network_latency")
}

func removeLatency(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	return nil
}

func applyPacketLoss(ctx context.Context, log *telemetry.Logger, t target.Target, cfg PacketLossConfig) (handle.Handle, error) {
	return handle.Handle{}, unsupportedPlatform("packet_loss")
}

func removePacketLoss(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	return nil
}
