package network

import (
	"context"
	"net"
	"strconv"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// TCPResetInjector requires a Network target and injects RST-on-connect
// filtering for its port.
type TCPResetInjector struct {
	log *telemetry.Logger
}

func NewTCPResetInjector(log *telemetry.Logger) *TCPResetInjector {
	return &TCPResetInjector{log: log}
}

func (r *TCPResetInjector) Name() string { return "tcp_reset" }

func (r *TCPResetInjector) RequiredCapabilities() []string { return []string{"CAP_NET_ADMIN"} }

func (r *TCPResetInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	if t.Kind != target.KindNetwork {
		return handle.Handle{}, chaoserr.New(chaoserr.InvalidConfig, "tcp_reset requires a Network target, got %s", t.Kind)
	}
	_, portStr, err := net.SplitHostPort(t.Address)
	if err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InvalidConfig, err, "invalid network address %q", t.Address)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InvalidConfig, err, "invalid port %q", portStr)
	}

	return applyTCPReset(ctx, r.log, t, port)
}

func (r *TCPResetInjector) Remove(ctx context.Context, h handle.Handle) error {
	return removeTCPReset(ctx, r.log, h)
}
