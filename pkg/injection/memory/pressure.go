// Package memory implements memory_pressure, memory_leak, and oom_killer.
package memory

import (
	"context"
	"sync"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

const chunkSize = 100 * 1024 * 1024 // 100MiB, matches the original source's allocation granularity

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PressureConfig mirrors the original source's builder fields.
type PressureConfig struct {
	TargetUsage float64
	FailureRate float64
	LeakRateBPS uint64 // not read by Apply; no background leak is started
}

// PressureInjector allocates memory toward a target system usage fraction
// and retains the allocation until Remove, preventing the GC from reclaiming
// it for the lifetime of the handle.
type PressureInjector struct {
	log    *telemetry.Logger
	config PressureConfig

	mu     sync.Mutex
	blocks [][]byte
}

func NewPressureInjector(log *telemetry.Logger, cfg PressureConfig) *PressureInjector {
	cfg.TargetUsage = clamp01(cfg.TargetUsage)
	cfg.FailureRate = clamp01(cfg.FailureRate)
	return &PressureInjector{log: log, config: cfg}
}

func (p *PressureInjector) Name() string { return "memory_pressure" }

func (p *PressureInjector) RequiredCapabilities() []string { return nil }

func (p *PressureInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	bytesToAllocate, err := calculateBytesToAllocate(p.config.TargetUsage)
	if err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.SystemError, err, "failed to read system memory info")
	}

	if bytesToAllocate > 0 {
		p.allocate(bytesToAllocate)
		if p.log != nil {
			p.log.Info("allocating memory", "mb", bytesToAllocate/1024/1024)
		}
	}

	return handle.New("memory_pressure", t, map[string]interface{}{
		"bytes_allocated": bytesToAllocate,
		"target_usage":    p.config.TargetUsage,
	}), nil
}

func (p *PressureInjector) allocate(targetBytes uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	numChunks := targetBytes / chunkSize
	remainder := targetBytes % chunkSize

	for i := uint64(0); i < numChunks; i++ {
		p.blocks = append(p.blocks, make([]byte, chunkSize))
	}
	if remainder > 0 {
		p.blocks = append(p.blocks, make([]byte, remainder))
	}
}

func (p *PressureInjector) Remove(ctx context.Context, h handle.Handle) error {
	if p.log != nil {
		p.log.Info("releasing allocated memory")
	}
	p.mu.Lock()
	p.blocks = nil
	p.mu.Unlock()
	return nil
}

// calculateBytesToAllocate returns total*targetUsage - used, floored at 0.
func calculateBytesToAllocate(targetUsage float64) (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	targetUsed := uint64(float64(vm.Total) * targetUsage)
	if targetUsed <= vm.Used {
		return 0, nil
	}
	return targetUsed - vm.Used, nil
}
