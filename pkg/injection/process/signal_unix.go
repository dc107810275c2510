//go:build unix

package process

import (
	"syscall"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
)

func sendSignal(pid int, sig Signal) error {
	if err := syscall.Kill(pid, syscall.Signal(sig.unixNumber())); err != nil {
		return chaoserr.Wrap(chaoserr.ProcessError, err, "failed to send %s to pid %d", sig, pid)
	}
	return nil
}
