package process

import (
	"context"
	"net/http"
	"os/exec"
	"time"

	"golang.org/x/time/rate"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

const (
	deathPollTimeout  = 10 * time.Second
	deathPollInterval = 100 * time.Millisecond
	healthCheckTries  = 30
)

// KillConfig mirrors the original source's ProcessKillConfig.
type KillConfig struct {
	Signal         Signal
	RestartDelay   time.Duration
	RestartMode    RestartMode
	RestartCommand string
	HealthCheckURL string
}

// KillInjector sends a signal to a process target, optionally waits for
// death, and optionally restarts it.
type KillInjector struct {
	log    *telemetry.Logger
	config KillConfig
}

func NewKillInjector(log *telemetry.Logger, cfg KillConfig) *KillInjector {
	if cfg.Signal == "" {
		cfg.Signal = SIGTERM
	}
	if cfg.RestartDelay == 0 {
		cfg.RestartDelay = 5 * time.Second
	}
	if cfg.RestartMode == "" {
		cfg.RestartMode = RestartNone
	}
	return &KillInjector{log: log, config: cfg}
}

func (k *KillInjector) Name() string { return "process_kill" }

func (k *KillInjector) RequiredCapabilities() []string { return []string{"CAP_KILL"} }

func (k *KillInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	if t.Kind != target.KindProcess {
		return handle.Handle{}, chaoserr.New(chaoserr.InvalidConfig, "process_kill requires a Process target")
	}
	originalPID := t.PID

	if k.log != nil {
		k.log.Info("sending signal", "signal", k.config.Signal, "pid", originalPID)
	}
	if err := sendSignal(originalPID, k.config.Signal); err != nil {
		return handle.Handle{}, err
	}

	if k.config.Signal != SIGSTOP {
		k.waitForDeath(ctx, originalPID)
	}

	var newPID int
	if k.config.RestartMode != RestartNone && k.config.RestartCommand != "" {
		pid, err := k.restart(ctx)
		if err != nil {
			return handle.Handle{}, err
		}
		newPID = pid
	}

	if k.config.HealthCheckURL != "" {
		if err := k.waitForHealth(ctx, k.config.HealthCheckURL); err != nil {
			return handle.Handle{}, err
		}
	}

	return handle.New("process_kill", t, map[string]interface{}{
		"original_pid": originalPID,
		"new_pid":      newPID,
		"signal":       string(k.config.Signal),
		"restart_mode": string(k.config.RestartMode),
	}), nil
}

func (k *KillInjector) waitForDeath(ctx context.Context, pid int) {
	deadline := time.Now().Add(deathPollTimeout)
	t := target.Process(pid)
	for time.Now().Before(deadline) {
		if !t.Exists(ctx) {
			if k.log != nil {
				k.log.Info("process terminated", "pid", pid)
			}
			return
		}
		time.Sleep(deathPollInterval)
	}
	if k.log != nil {
		k.log.Warn("process did not terminate within timeout", "pid", pid)
	}
}

func (k *KillInjector) restart(ctx context.Context) (int, error) {
	if k.config.RestartCommand == "" {
		return 0, chaoserr.New(chaoserr.InvalidConfig, "no restart command configured")
	}

	if k.log != nil {
		k.log.Info("restarting process", "delay", k.config.RestartDelay, "mode", k.config.RestartMode)
	}
	time.Sleep(k.config.RestartDelay)

	cmd := exec.CommandContext(ctx, "sh", "-c", k.config.RestartCommand)
	if err := cmd.Start(); err != nil {
		return 0, chaoserr.Wrap(chaoserr.ProcessError, err, "failed to restart process")
	}
	pid := cmd.Process.Pid

	if k.log != nil {
		k.log.Info("process restarted", "pid", pid)
	}
	return pid, nil
}

func (k *KillInjector) waitForHealth(ctx context.Context, url string) error {
	if k.log != nil {
		k.log.Info("waiting for health check", "url", url)
	}
	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	for attempt := 1; attempt <= healthCheckTries; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return chaoserr.Wrap(chaoserr.ProcessError, err, "health check wait interrupted")
		}
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				if k.log != nil {
					k.log.Info("health check passed")
				}
				return nil
			}
		}
		if k.log != nil && attempt%5 == 0 {
			k.log.Info("health check attempt", "attempt", attempt, "of", healthCheckTries)
		}
	}
	return chaoserr.New(chaoserr.ProcessError, "health check failed after %d attempts", healthCheckTries)
}

// Remove is a no-op: process_kill is a one-time action.
func (k *KillInjector) Remove(ctx context.Context, h handle.Handle) error {
	return nil
}
