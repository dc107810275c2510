package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// LeakInjector grows its retained allocation by leakRate bytes every second
// until stopped, simulating an unbounded-growth memory leak.
type LeakInjector struct {
	log      *telemetry.Logger
	leakRate uint64

	mu     sync.Mutex
	blocks [][]byte
	stop   *int32
	done   chan struct{}
}

func NewLeakInjector(log *telemetry.Logger, leakRateBPS uint64) *LeakInjector {
	return &LeakInjector{log: log, leakRate: leakRateBPS}
}

func (l *LeakInjector) Name() string { return "memory_leak" }

func (l *LeakInjector) RequiredCapabilities() []string { return nil }

func (l *LeakInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	l.mu.Lock()
	stop := new(int32)
	done := make(chan struct{})
	l.stop = stop
	l.done = done
	l.mu.Unlock()

	if l.log != nil {
		l.log.Info("starting memory leak", "bytes_per_sec", l.leakRate)
	}

	go l.leak(stop, done)

	return handle.New("memory_leak", t, map[string]interface{}{
		"leak_rate": l.leakRate,
	}), nil
}

func (l *LeakInjector) leak(stop *int32, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for atomic.LoadInt32(stop) == 0 {
		block := make([]byte, l.leakRate)
		l.mu.Lock()
		l.blocks = append(l.blocks, block)
		l.mu.Unlock()
		<-ticker.C
	}
}

func (l *LeakInjector) Remove(ctx context.Context, h handle.Handle) error {
	if l.log != nil {
		l.log.Info("stopping memory leak and freeing memory")
	}
	l.mu.Lock()
	stop, done := l.stop, l.done
	l.mu.Unlock()

	if stop != nil {
		atomic.StoreInt32(stop, 1)
	}
	if done != nil {
		select {
		case <-done:
		case <-time.After(1100 * time.Millisecond):
		}
	}

	l.mu.Lock()
	l.blocks = nil
	l.mu.Unlock()
	return nil
}
