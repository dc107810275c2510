//go:build windows

package process

import (
	"context"
	"os/exec"
	"strconv"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
)

// sendSignal has no Windows equivalent of POSIX signals; only a hard kill
// via taskkill is supported, matching the original source.
func sendSignal(pid int, sig Signal) error {
	if sig != SIGKILL {
		return chaoserr.New(chaoserr.SystemError, "only SIGKILL is supported on Windows")
	}
	out, err := exec.CommandContext(context.Background(), "taskkill", "/F", "/PID", strconv.Itoa(pid)).CombinedOutput()
	if err != nil {
		return chaoserr.Wrap(chaoserr.ProcessError, err, "taskkill failed: %s", out)
	}
	return nil
}
