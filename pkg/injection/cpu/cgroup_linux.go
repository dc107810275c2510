//go:build linux

package cpu

import (
	"fmt"
	"os"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
)

func applyCgroupQuota(cgroupPath string, quotaUS int, pid int) error {
	if err := os.MkdirAll(cgroupPath, 0755); err != nil {
		return chaoserr.Wrap(chaoserr.SystemError, err, "failed to create cgroup %s", cgroupPath)
	}
	if err := os.WriteFile(cgroupPath+"/cpu.cfs_quota_us", []byte(fmt.Sprint(quotaUS)), 0644); err != nil {
		return chaoserr.Wrap(chaoserr.PermissionDenied, err, "failed to write cpu.cfs_quota_us (requires CAP_SYS_ADMIN)")
	}
	if err := os.WriteFile(cgroupPath+"/cpu.cfs_period_us", []byte(fmt.Sprint(cfsPeriodUS)), 0644); err != nil {
		return chaoserr.Wrap(chaoserr.SystemError, err, "failed to write cpu.cfs_period_us")
	}
	if err := os.WriteFile(cgroupPath+"/tasks", []byte(fmt.Sprint(pid)), 0644); err != nil {
		return chaoserr.Wrap(chaoserr.SystemError, err, "failed to add pid %d to cgroup tasks", pid)
	}
	return nil
}

func removeCgroupQuota(cgroupPath string) error {
	if err := os.Remove(cgroupPath); err != nil && !os.IsNotExist(err) {
		return chaoserr.Wrap(chaoserr.CleanupFailed, err, "failed to rmdir cgroup %s", cgroupPath)
	}
	return nil
}
