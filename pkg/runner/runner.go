// Package runner drives a scheduled scenario to completion: waiting for
// each phase's start time, applying its injections, holding for its
// duration, and removing them again.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/injection"
	"github.com/jihwankim/chaos-harness/pkg/scenario"
	"github.com/jihwankim/chaos-harness/pkg/scheduler"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// PhaseResult summarizes one executed phase.
type PhaseResult struct {
	Name             string        `json:"name"`
	Duration         time.Duration `json:"duration"`
	InjectionCount   int           `json:"injection_count"`
	FailedInjections int           `json:"failed_injections"`
}

// ScenarioResult summarizes a completed scenario run.
type ScenarioResult struct {
	ScenarioName    string        `json:"scenario_name"`
	TotalDuration   time.Duration `json:"total_duration"`
	PhaseResults    []PhaseResult `json:"phase_results"`
	TotalInjections int           `json:"total_injections"`
}

// SuccessRate is 1 - failed/total across every phase, or 0 if no
// injections were attempted. Unlike the original source's hardcoded 1.0,
// this reflects actual injection failures recorded during the run.
func (r ScenarioResult) SuccessRate() float64 {
	if r.TotalInjections == 0 {
		return 0
	}
	var failed int
	for _, p := range r.PhaseResults {
		failed += p.FailedInjections
	}
	return 1 - float64(failed)/float64(r.TotalInjections)
}

// AveragePhaseDuration is the mean wall-clock duration across phases.
func (r ScenarioResult) AveragePhaseDuration() time.Duration {
	if len(r.PhaseResults) == 0 {
		return 0
	}
	var total time.Duration
	for _, p := range r.PhaseResults {
		total += p.Duration
	}
	return total / time.Duration(len(r.PhaseResults))
}

// Runner executes a Scenario's phases against an injection.Executor.
type Runner struct {
	executor *injection.Executor
	log      *telemetry.Logger
}

func New(executor *injection.Executor, log *telemetry.Logger) *Runner {
	return &Runner{executor: executor, log: log}
}

// Run validates, schedules, and executes sc, returning its result.
func (r *Runner) Run(ctx context.Context, sc *scenario.Scenario) (*ScenarioResult, error) {
	if r.log != nil {
		r.log.Info("starting scenario", "name", sc.Name)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	mode := scheduler.Sequential
	for _, p := range sc.Phases {
		if p.Parallel {
			mode = scheduler.Parallel
			break
		}
	}

	var seed int64
	if sc.Seed != nil {
		seed = *sc.Seed
	}
	sched := scheduler.New(mode, seed, r.log)
	phases := sched.SchedulePhases(sc)
	if sc.RampUp.Duration() > 0 {
		sched.ApplyRampUp(phases, sc.RampUp.Duration())
	}

	var phaseResults []PhaseResult
	var totalInjections int

	if mode == scheduler.Parallel {
		phaseResults, totalInjections = r.runParallel(ctx, phases)
	} else {
		phaseResults, totalInjections = r.runSequential(ctx, start, phases)
	}

	totalDuration := time.Since(start)
	if r.log != nil {
		r.log.Info("scenario completed", "name", sc.Name, "duration", totalDuration)
	}

	return &ScenarioResult{
		ScenarioName:    sc.Name,
		TotalDuration:   totalDuration,
		PhaseResults:    phaseResults,
		TotalInjections: totalInjections,
	}, nil
}

// runSequential walks phases in schedule order, sleeping until each one's
// start time and holding for its duration before removing injections.
func (r *Runner) runSequential(ctx context.Context, start time.Time, phases []scheduler.ScheduledPhase) ([]PhaseResult, int) {
	results := make([]PhaseResult, 0, len(phases))
	var total int

	for _, sp := range phases {
		if delay, ok := sp.DelayUntilStart(time.Since(start)); ok {
			if r.log != nil {
				r.log.Info("waiting before phase", "phase", sp.Name(), "delay", delay)
			}
			sleepInterruptible(ctx, delay)
		}

		result, count := r.runPhase(ctx, sp)
		results = append(results, result)
		total += count
	}
	return results, total
}

// runParallel spawns one goroutine per scheduled phase so they genuinely
// execute concurrently, matching their identical (ramped-up) start times.
func (r *Runner) runParallel(ctx context.Context, phases []scheduler.ScheduledPhase) ([]PhaseResult, int) {
	results := make([]PhaseResult, len(phases))
	counts := make([]int, len(phases))
	start := time.Now()

	var wg sync.WaitGroup
	for i, sp := range phases {
		i, sp := i, sp
		wg.Add(1)
		go func() {
			defer wg.Done()
			if delay, ok := sp.DelayUntilStart(time.Since(start)); ok {
				sleepInterruptible(ctx, delay)
			}
			result, count := r.runPhase(ctx, sp)
			results[i] = result
			counts[i] = count
		}()
	}
	wg.Wait()

	var total int
	for _, c := range counts {
		total += c
	}
	return results, total
}

func (r *Runner) runPhase(ctx context.Context, sp scheduler.ScheduledPhase) (PhaseResult, int) {
	if r.log != nil {
		r.log.Info("starting phase", "phase", sp.Name(), "duration", sp.Duration())
	}
	phaseStart := time.Now()

	var handles []handle.Handle
	var failed int

	for _, cfg := range sp.Phase.Injections {
		h, err := r.applyInjection(ctx, cfg)
		if err != nil {
			failed++
			if r.log != nil {
				r.log.Warn("failed to apply injection", "type", cfg.Type, "error", err.Error())
			}
			continue
		}
		handles = append(handles, h)
		if r.log != nil {
			r.log.Info("applied injection", "type", cfg.Type)
		}
	}

	elapsed := time.Since(phaseStart)
	if remaining := sp.Duration() - elapsed; remaining > 0 {
		sleepInterruptible(ctx, remaining)
	}

	for _, h := range handles {
		if err := r.executor.Remove(ctx, h); err != nil && r.log != nil {
			r.log.Warn("failed to remove injection", "id", h.ID, "error", err.Error())
		}
	}

	duration := time.Since(phaseStart)
	if r.log != nil {
		r.log.Info("completed phase", "phase", sp.Name(), "duration", duration)
	}

	return PhaseResult{
		Name:             sp.Name(),
		Duration:         duration,
		InjectionCount:   len(handles),
		FailedInjections: failed,
	}, len(handles) + failed
}

func (r *Runner) applyInjection(ctx context.Context, cfg scenario.InjectionConfig) (handle.Handle, error) {
	t, err := cfg.Target.ToTarget()
	if err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InvalidConfig, err, "invalid target")
	}
	return r.executor.Inject(ctx, cfg.Type, t)
}

// sleepInterruptible sleeps for d, returning early if ctx is canceled.
func sleepInterruptible(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
