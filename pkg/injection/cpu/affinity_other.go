//go:build !linux

package cpu

// pinToCore is a no-op outside Linux: macOS and Windows don't expose a
// portable affinity syscall through golang.org/x/sys, so the burner simply
// runs unpinned (still effective at starving available cycles, just not
// core-targeted).
func pinToCore(core int) {}
