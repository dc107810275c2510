//go:build !linux && !darwin

package network

import (
	"context"

	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// applyTCPReset is simulated on Windows and any platform without a
// filtering primitive this harness knows how to drive.
func applyTCPReset(ctx context.Context, log *telemetry.Logger, t target.Target, port int) (handle.Handle, error) {
	if log != nil {
		log.Warn("tcp_reset is simulated on this platform (no kernel effect)", "port", port)
	}
	return handle.New("tcp_reset", t, map[string]interface{}{"port": port, "simulated": true}), nil
}

func removeTCPReset(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	return nil
}
