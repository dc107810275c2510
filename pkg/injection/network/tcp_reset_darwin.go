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

func applyTCPReset(ctx context.Context, log *telemetry.Logger, t target.Target, port int) (handle.Handle, error) {
	rule := fmt.Sprintf("block drop out proto tcp from any to any port %d\n", port)
	cmd := exec.CommandContext(ctx, "pfctl", "-a", "chaos_reset", "-f", "-")
	cmd.Stdin = strings.NewReader(rule)
	if out, err := cmd.CombinedOutput(); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "pfctl anchor load failed: %s", string(out))
	}
	if log != nil {
		log.Info("applying tcp reset", "port", port)
	}
	return handle.New("tcp_reset", t, map[string]interface{}{"port": port}), nil
}

func removeTCPReset(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	_, _ = exec.CommandContext(ctx, "pfctl", "-a", "chaos_reset", "-F", "all").CombinedOutput()
	return nil
}
