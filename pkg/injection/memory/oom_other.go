//go:build !linux

package memory

import "github.com/jihwankim/chaos-harness/pkg/chaoserr"

func setOOMScoreAdj(pid int, score int) error {
	return chaoserr.New(chaoserr.SystemError, "oom_killer is Linux-only (oom_score_adj)")
}
