package process

import (
	"context"
	"time"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// SuspendInjector STOPs a process, sleeps for a fixed duration, then CONTs
// it. Apply blocks for the full duration, matching the original source.
type SuspendInjector struct {
	log      *telemetry.Logger
	duration time.Duration
}

func NewSuspendInjector(log *telemetry.Logger, duration time.Duration) *SuspendInjector {
	return &SuspendInjector{log: log, duration: duration}
}

func (s *SuspendInjector) Name() string { return "process_suspend" }

func (s *SuspendInjector) RequiredCapabilities() []string { return []string{"CAP_KILL"} }

func (s *SuspendInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	if t.Kind != target.KindProcess {
		return handle.Handle{}, chaoserr.New(chaoserr.InvalidConfig, "process_suspend requires a Process target")
	}

	if s.log != nil {
		s.log.Info("suspending process", "pid", t.PID, "duration", s.duration)
	}
	if err := sendSignal(t.PID, SIGSTOP); err != nil {
		return handle.Handle{}, err
	}

	select {
	case <-time.After(s.duration):
	case <-ctx.Done():
	}

	if err := sendSignal(t.PID, SIGCONT); err != nil {
		return handle.Handle{}, err
	}

	return handle.New("process_suspend", t, map[string]interface{}{
		"pid":          t.PID,
		"duration_sec": s.duration.Seconds(),
	}), nil
}

// Remove is a no-op: the suspension is time-limited within Apply.
func (s *SuspendInjector) Remove(ctx context.Context, h handle.Handle) error {
	return nil
}
