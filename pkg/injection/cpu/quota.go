package cpu

import (
	"context"
	"fmt"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

const cfsPeriodUS = 100000 // kernel default 100ms period

// QuotaInjector requires a Process target and caps its CPU time via a cgroup.
type QuotaInjector struct {
	log *telemetry.Logger
}

func NewQuotaInjector(log *telemetry.Logger) *QuotaInjector {
	return &QuotaInjector{log: log}
}

func (q *QuotaInjector) Name() string { return "cpu_quota" }

func (q *QuotaInjector) RequiredCapabilities() []string { return []string{"CAP_SYS_ADMIN"} }

func (q *QuotaInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	return q.ApplyWithParams(ctx, t, nil)
}

func (q *QuotaInjector) ApplyWithParams(ctx context.Context, t target.Target, params map[string]interface{}) (handle.Handle, error) {
	if t.Kind != target.KindProcess {
		return handle.Handle{}, chaoserr.New(chaoserr.InvalidConfig, "cpu_quota requires a Process target, got %s", t.Kind)
	}
	quotaPct := 50.0
	if v, ok := asFloat(params["quota_pct"]); ok {
		quotaPct = v
	}
	if quotaPct < 0 {
		quotaPct = 0
	}
	if quotaPct > 100 {
		quotaPct = 100
	}

	cgroupPath := fmt.Sprintf("/sys/fs/cgroup/cpu/chaos_cpu_%d", t.PID)
	quotaUS := int(quotaPct * 1000)

	if err := applyCgroupQuota(cgroupPath, quotaUS, t.PID); err != nil {
		return handle.Handle{}, err
	}

	if q.log != nil {
		q.log.Info("cpu quota applied", "pid", t.PID, "quota_pct", quotaPct, "cgroup", cgroupPath)
	}

	return handle.New("cpu_quota", t, map[string]interface{}{
		"cgroup_path": cgroupPath,
		"quota_pct":   quotaPct,
	}), nil
}

func (q *QuotaInjector) Remove(ctx context.Context, h handle.Handle) error {
	cgroupPath, _ := h.Metadata["cgroup_path"].(string)
	if cgroupPath == "" {
		return nil
	}
	return removeCgroupQuota(cgroupPath)
}
