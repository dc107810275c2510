package disk

import (
	"context"

	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// FailureInjector simulates IO errors at a configured rate. It is log-only:
// the actual error injection happens in a cooperating interposer that reads
// this injector's presence via the handle metadata, matching the original
// source's design.
type FailureInjector struct {
	log         *telemetry.Logger
	failureRate float64
}

// NewFailureInjector clamps failureRate to [0,1] at construction time.
func NewFailureInjector(log *telemetry.Logger, failureRate float64) *FailureInjector {
	if failureRate < 0 {
		failureRate = 0
	}
	if failureRate > 1 {
		failureRate = 1
	}
	return &FailureInjector{log: log, failureRate: failureRate}
}

func (f *FailureInjector) Name() string { return "disk_failure" }

func (f *FailureInjector) RequiredCapabilities() []string { return nil }

func (f *FailureInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	if f.log != nil {
		f.log.Info("injecting disk failures", "failure_rate", f.failureRate)
	}
	return handle.New("disk_failure", t, map[string]interface{}{
		"failure_rate": f.failureRate,
	}), nil
}

func (f *FailureInjector) Remove(ctx context.Context, h handle.Handle) error {
	if f.log != nil {
		f.log.Info("removing disk failures", "failure_rate", f.failureRate)
	}
	return nil
}
