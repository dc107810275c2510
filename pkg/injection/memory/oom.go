package memory

import (
	"context"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// OOMKillerInjector raises a process's oom_score_adj to make the kernel's
// OOM killer prefer it under memory pressure.
type OOMKillerInjector struct {
	log *telemetry.Logger
}

func NewOOMKillerInjector(log *telemetry.Logger) *OOMKillerInjector {
	return &OOMKillerInjector{log: log}
}

func (o *OOMKillerInjector) Name() string { return "oom_killer" }

func (o *OOMKillerInjector) RequiredCapabilities() []string { return []string{"CAP_SYS_ADMIN"} }

func (o *OOMKillerInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	if t.Kind != target.KindProcess {
		return handle.Handle{}, chaoserr.New(chaoserr.InvalidConfig, "oom_killer requires a Process target")
	}

	if o.log != nil {
		o.log.Info("triggering OOM condition", "pid", t.PID)
	}

	if err := setOOMScoreAdj(t.PID, 1000); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "failed to adjust OOM score for pid %d", t.PID)
	}

	return handle.New("oom_killer", t, map[string]interface{}{
		"pid": t.PID,
	}), nil
}

func (o *OOMKillerInjector) Remove(ctx context.Context, h handle.Handle) error {
	pidf, ok := asFloat(h.Metadata["pid"])
	if !ok {
		return chaoserr.New(chaoserr.CleanupFailed, "oom_killer handle missing pid metadata")
	}
	_ = setOOMScoreAdj(int(pidf), 0)
	return nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
