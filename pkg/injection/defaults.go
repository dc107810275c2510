package injection

import (
	"time"

	"github.com/jihwankim/chaos-harness/pkg/injection/cpu"
	"github.com/jihwankim/chaos-harness/pkg/injection/disk"
	"github.com/jihwankim/chaos-harness/pkg/injection/memory"
	"github.com/jihwankim/chaos-harness/pkg/injection/network"
	"github.com/jihwankim/chaos-harness/pkg/injection/process"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// WithDefaults builds a Registry with the full injector catalogue (§4.1)
// registered under its canonical name.
func WithDefaults(log *telemetry.Logger) *Registry {
	r := NewRegistry()

	r.Register(NetworkLatency, network.NewLatencyInjector(log))
	r.Register(PacketLoss, network.NewPacketLossInjector(log))
	r.Register(TCPReset, network.NewTCPResetInjector(log))

	r.Register(CPUStarvation, cpu.NewStarvationInjector(log))
	r.Register(CPUQuota, cpu.NewQuotaInjector(log))

	r.Register(DiskSlow, disk.NewSlowInjector(log))
	r.Register(DiskFailure, disk.NewFailureInjector(log, 0))
	r.Register(DiskSpace, disk.NewSpaceInjector(log, "/tmp", 0.9))

	r.Register(MemoryPressure, memory.NewPressureInjector(log, memory.PressureConfig{TargetUsage: 0.9}))
	r.Register(MemoryLeak, memory.NewLeakInjector(log, 1024*1024))
	r.Register(OOMKiller, memory.NewOOMKillerInjector(log))

	r.Register(ProcessKill, process.NewKillInjector(log, process.KillConfig{}))
	r.Register(ProcessSuspend, process.NewSuspendInjector(log, 10*time.Second))

	return r
}
