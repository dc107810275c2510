//go:build linux

package memory

import (
	"fmt"
	"os"
)

func setOOMScoreAdj(pid int, score int) error {
	path := fmt.Sprintf("/proc/%d/oom_score_adj", pid)
	return os.WriteFile(path, []byte(fmt.Sprint(score)), 0644)
}
