//go:build linux

package network

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

func applyTCPReset(ctx context.Context, log *telemetry.Logger, t target.Target, port int) (handle.Handle, error) {
	args := []string{"-A", "OUTPUT", "-p", "tcp", "--dport", strconv.Itoa(port), "-j", "REJECT", "--reject-with", "tcp-reset"}
	if out, err := exec.CommandContext(ctx, "iptables", args...).CombinedOutput(); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "iptables rule insert failed: %s", string(out))
	}
	if log != nil {
		log.Info("applying tcp reset", "port", port)
	}
	return handle.New("tcp_reset", t, map[string]interface{}{"port": port}), nil
}

func removeTCPReset(ctx context.Context, log *telemetry.Logger, h handle.Handle) error {
	port, _ := h.Metadata["port"].(int)
	if port == 0 {
		if f, ok := h.Metadata["port"].(float64); ok {
			port = int(f)
		}
	}
	args := []string{"-D", "OUTPUT", "-p", "tcp", "--dport", fmt.Sprint(port), "-j", "REJECT", "--reject-with", "tcp-reset"}
	out, err := exec.CommandContext(ctx, "iptables", args...).CombinedOutput()
	if err != nil && log != nil {
		log.Info("iptables rule already removed", "port", port, "output", string(out))
	}
	return nil
}
