// Package cpu implements the cpu_starvation and cpu_quota injectors.
package cpu

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

const slot = time.Millisecond

// StarvationConfig configures cpu_starvation.
type StarvationConfig struct {
	Intensity float64 // 0.0-1.0
	Cores     []int   // empty = all cores
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// StarvationInjector spins one busy worker per selected core.
type StarvationInjector struct {
	log *telemetry.Logger

	mu      sync.Mutex
	running map[string]*starvationRun
}

type starvationRun struct {
	stop *int32
	done chan struct{}
}

func NewStarvationInjector(log *telemetry.Logger) *StarvationInjector {
	return &StarvationInjector{log: log, running: make(map[string]*starvationRun)}
}

func (s *StarvationInjector) Name() string { return "cpu_starvation" }

func (s *StarvationInjector) RequiredCapabilities() []string { return []string{"CAP_SYS_NICE"} }

func numCores() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func (s *StarvationInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	return s.ApplyWithParams(ctx, t, nil)
}

func (s *StarvationInjector) ApplyWithParams(ctx context.Context, t target.Target, params map[string]interface{}) (handle.Handle, error) {
	cfg := StarvationConfig{Intensity: 0.8}
	if v, ok := asFloat(params["intensity"]); ok {
		cfg.Intensity = v
	}
	cfg.Intensity = clamp01(cfg.Intensity)
	if raw, ok := params["cores"].([]interface{}); ok {
		for _, v := range raw {
			if f, ok := asFloat(v); ok {
				cfg.Cores = append(cfg.Cores, int(f))
			}
		}
	}

	cores := cfg.Cores
	if len(cores) == 0 {
		n := numCores()
		cores = make([]int, n)
		for i := range cores {
			cores[i] = i
		}
	}

	stop := new(int32)
	done := make(chan struct{})
	var active int32 = int32(len(cores))

	for _, core := range cores {
		go burn(core, cfg.Intensity, stop, &active, done)
	}

	h := handle.New("cpu_starvation", t, map[string]interface{}{
		"intensity": cfg.Intensity,
		"cores":     cores,
	})

	run := &starvationRun{stop: stop, done: done}
	s.mu.Lock()
	s.running[h.ID] = run
	s.mu.Unlock()

	if s.log != nil {
		s.log.Info("cpu starvation started", "intensity", cfg.Intensity, "cores", cores)
	}

	return h, nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// burn runs one core's busy-spin worker until stop is set, pinning itself to
// core on Linux (see affinity_linux.go); on other platforms, macOS included,
// the worker is not pinned (affinity_other.go).
func burn(core int, intensity float64, stop *int32, active *int32, done chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pinToCore(core)

	busy := time.Duration(float64(slot) * intensity)
	idle := slot - busy

	for atomic.LoadInt32(stop) == 0 {
		deadline := time.Now().Add(busy)
		for time.Now().Before(deadline) {
			// busy-compute
		}
		if idle > 0 {
			time.Sleep(idle)
		}
	}

	if atomic.AddInt32(active, -1) == 0 {
		close(done)
	}
}

func (s *StarvationInjector) Remove(ctx context.Context, h handle.Handle) error {
	s.mu.Lock()
	run, ok := s.running[h.ID]
	if ok {
		delete(s.running, h.ID)
	}
	s.mu.Unlock()

	if !ok {
		return nil
	}
	atomic.StoreInt32(run.stop, 1)
	select {
	case <-run.done:
	case <-time.After(100 * time.Millisecond):
	}
	return nil
}
