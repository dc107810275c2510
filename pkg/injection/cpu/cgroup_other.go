//go:build !linux

package cpu

import "github.com/jihwankim/chaos-harness/pkg/chaoserr"

func applyCgroupQuota(cgroupPath string, quotaUS int, pid int) error {
	return chaoserr.New(chaoserr.SystemError, "cpu_quota is Linux-only (cgroups)")
}

func removeCgroupQuota(cgroupPath string) error {
	return nil
}
