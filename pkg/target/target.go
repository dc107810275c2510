// Package target identifies the victim of a fault injection and answers
// liveness queries for it.
package target

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

// Kind discriminates the Target variant.
type Kind string

const (
	KindProcess        Kind = "process"
	KindNetwork        Kind = "network"
	KindContainer      Kind = "container"
	KindThread         Kind = "thread"
	KindProcessPattern Kind = "process_pattern"
)

// Target is a tagged variant identifying what a fault is applied against.
// Exactly one of the per-kind fields is meaningful, selected by Kind.
type Target struct {
	Kind Kind

	PID         int    // KindProcess
	Address     string // KindNetwork, "host:port"
	ContainerID string // KindContainer
	TID         int    // KindThread
	Pattern     string // KindProcessPattern
}

func Process(pid int) Target             { return Target{Kind: KindProcess, PID: pid} }
func Network(address string) Target      { return Target{Kind: KindNetwork, Address: address} }
func Container(id string) Target         { return Target{Kind: KindContainer, ContainerID: id} }
func Thread(tid int) Target              { return Target{Kind: KindThread, TID: tid} }
func ProcessPattern(pattern string) Target {
	return Target{Kind: KindProcessPattern, Pattern: pattern}
}

// Description renders a human-readable identity for logs.
func (t Target) Description() string {
	switch t.Kind {
	case KindProcess:
		return fmt.Sprintf("Process PID %d", t.PID)
	case KindNetwork:
		return fmt.Sprintf("Network %s", t.Address)
	case KindContainer:
		return fmt.Sprintf("Container %s", t.ContainerID)
	case KindThread:
		return fmt.Sprintf("Thread TID %d", t.TID)
	case KindProcessPattern:
		return fmt.Sprintf("ProcessPattern %q", t.Pattern)
	default:
		return "Target(unknown)"
	}
}

// ContainerExistsProbe is injected by callers that want the Container variant
// to fall back to a Docker daemon inspect when the cgroup path probe is
// inconclusive. Kept as a function value rather than a hard import so that
// pkg/target never depends on pkg/containerprobe directly (avoids an
// import cycle and keeps the Docker client optional).
var ContainerExistsProbe func(ctx context.Context, id string) (bool, error)

// Exists performs the liveness probe appropriate to the Target's Kind.
func (t Target) Exists(ctx context.Context) bool {
	switch t.Kind {
	case KindProcess:
		return processExists(t.PID)
	case KindNetwork:
		return networkExists(ctx, t.Address)
	case KindContainer:
		return containerExists(ctx, t.ContainerID)
	case KindThread:
		return threadExists(t.TID)
	case KindProcessPattern:
		return processPatternExists(t.Pattern)
	default:
		return false
	}
}

func networkExists(ctx context.Context, address string) bool {
	d := net.Dialer{Timeout: 2 * time.Second}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func containerExists(ctx context.Context, id string) bool {
	if _, err := os.Stat("/sys/fs/cgroup/docker/" + id); err == nil {
		return true
	}
	if _, err := os.Stat("/sys/fs/cgroup/system.slice/docker-" + id + ".scope"); err == nil {
		return true
	}
	if ContainerExistsProbe != nil {
		ok, err := ContainerExistsProbe(ctx, id)
		if err == nil {
			return ok
		}
	}
	return false
}

func processPatternExists(pattern string) bool {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid := 0
		if _, err := fmt.Sscanf(e.Name(), "%d", &pid); err != nil {
			continue
		}
		comm, err := os.ReadFile("/proc/" + e.Name() + "/comm")
		if err != nil {
			continue
		}
		if strings.Contains(strings.TrimSpace(string(comm)), pattern) {
			return true
		}
	}
	return false
}
