//go:build windows

package target

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// processExists shells out to tasklist, since stdlib os.FindProcess always
// succeeds on Windows regardless of whether the PID is alive.
func processExists(pid int) bool {
	out, err := exec.Command("tasklist", "/FI", fmt.Sprintf("PID eq %d", pid), "/NH").Output()
	if err != nil {
		return false
	}
	return strings.Contains(string(out), strconv.Itoa(pid))
}

func threadExists(tid int) bool {
	return false
}
