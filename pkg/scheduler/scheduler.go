// Package scheduler lays out a scenario's phases onto a timeline before
// the runner walks it.
package scheduler

import (
	"math/rand"
	"time"

	"github.com/jihwankim/chaos-harness/pkg/scenario"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// Mode selects how phases are laid out relative to each other.
type Mode string

const (
	Sequential Mode = "sequential"
	Randomized Mode = "randomized"
	Parallel   Mode = "parallel"
)

// Scheduler lays out a Scenario's phases according to its Mode.
type Scheduler struct {
	mode Mode
	rng  *rand.Rand
	log  *telemetry.Logger
}

// New builds a Scheduler. seed is only consulted in Randomized mode.
func New(mode Mode, seed int64, log *telemetry.Logger) *Scheduler {
	s := &Scheduler{mode: mode, log: log}
	if mode == Randomized {
		s.rng = rand.New(rand.NewSource(seed))
	}
	return s
}

func NewSequential(log *telemetry.Logger) *Scheduler { return New(Sequential, 0, log) }

func NewRandomized(seed int64, log *telemetry.Logger) *Scheduler { return New(Randomized, seed, log) }

func NewParallel(log *telemetry.Logger) *Scheduler { return New(Parallel, 0, log) }

// ScheduledPhase pins a Phase to an absolute start/end offset from the
// scenario's t=0.
type ScheduledPhase struct {
	Phase     scenario.Phase
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
}

func (p ScheduledPhase) Duration() time.Duration { return p.Phase.Duration.Duration() }
func (p ScheduledPhase) Name() string            { return p.Phase.Name }

// DelayUntilStart returns how long to wait before this phase starts, or
// zero and false if it has already started.
func (p ScheduledPhase) DelayUntilStart(current time.Duration) (time.Duration, bool) {
	if current < p.StartTime {
		return p.StartTime - current, true
	}
	return 0, false
}

func (p ScheduledPhase) IsActive(current time.Duration) bool {
	return current >= p.StartTime && current < p.EndTime
}

func (p ScheduledPhase) HasStarted(current time.Duration) bool { return current >= p.StartTime }
func (p ScheduledPhase) HasEnded(current time.Duration) bool   { return current >= p.EndTime }

// SchedulePhases lays out s's phases according to the scheduler's mode.
func (s *Scheduler) SchedulePhases(sc *scenario.Scenario) []ScheduledPhase {
	phases := make([]ScheduledPhase, len(sc.Phases))
	var cursor time.Duration
	for i, phase := range sc.Phases {
		phases[i] = ScheduledPhase{
			Phase:     phase,
			Index:     i,
			StartTime: cursor,
			EndTime:   cursor + phase.Duration.Duration(),
		}
		cursor += phase.Duration.Duration()
	}

	switch s.mode {
	case Sequential:
		// already in order
	case Randomized:
		if s.rng != nil {
			s.rng.Shuffle(len(phases), func(i, j int) {
				phases[i], phases[j] = phases[j], phases[i]
			})
			var current time.Duration
			for i := range phases {
				phases[i].StartTime = current
				phases[i].EndTime = current + phases[i].Phase.Duration.Duration()
				current = phases[i].EndTime
			}
		}
	case Parallel:
		for i := range phases {
			phases[i].StartTime = 0
			phases[i].EndTime = phases[i].Phase.Duration.Duration()
		}
	}

	if s.log != nil {
		s.log.Info("scheduled phases", "count", len(phases), "mode", string(s.mode))
	}
	return phases
}

// ApplyRampUp delays every scheduled phase's start and end by rampUp.
func (s *Scheduler) ApplyRampUp(phases []ScheduledPhase, rampUp time.Duration) {
	if rampUp <= 0 || len(phases) == 0 {
		return
	}
	if s.log != nil {
		s.log.Info("applying ramp-up period", "ramp_up", rampUp)
	}
	for i := range phases {
		phases[i].StartTime += rampUp
		phases[i].EndTime += rampUp
	}
}
