//go:build !unix && !windows

package process

import "github.com/jihwankim/chaos-harness/pkg/chaoserr"

func sendSignal(pid int, sig Signal) error {
	return chaoserr.New(chaoserr.SystemError, "signal delivery is not supported on this platform")
}
