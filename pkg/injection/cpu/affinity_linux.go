//go:build linux

package cpu

import "golang.org/x/sys/unix"

// pinToCore binds the calling OS thread to core via sched_setaffinity.
// Must be called after runtime.LockOSThread().
func pinToCore(core int) {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	_ = unix.SchedSetaffinity(0, &set)
}
