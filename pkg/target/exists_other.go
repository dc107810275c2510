//go:build !unix && !windows

package target

func processExists(pid int) bool { return false }
func threadExists(tid int) bool  { return false }
