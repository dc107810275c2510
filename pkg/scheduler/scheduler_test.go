package scheduler

import (
	"testing"
	"time"

	"github.com/jihwankim/chaos-harness/pkg/scenario"
)

func testScenario() *scenario.Scenario {
	return &scenario.Scenario{
		Name: "test",
		Phases: []scenario.Phase{
			{Name: "p1", Duration: scenario.Duration(10 * time.Second)},
			{Name: "p2", Duration: scenario.Duration(20 * time.Second)},
		},
	}
}

func TestSequentialScheduling(t *testing.T) {
	s := NewSequential(nil)
	phases := s.SchedulePhases(testScenario())

	if len(phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(phases))
	}
	if phases[0].StartTime != 0 || phases[0].EndTime != 10*time.Second {
		t.Errorf("phase 0 = [%v, %v], want [0, 10s]", phases[0].StartTime, phases[0].EndTime)
	}
	if phases[1].StartTime != 10*time.Second || phases[1].EndTime != 30*time.Second {
		t.Errorf("phase 1 = [%v, %v], want [10s, 30s]", phases[1].StartTime, phases[1].EndTime)
	}
}

func TestParallelScheduling(t *testing.T) {
	s := NewParallel(nil)
	phases := s.SchedulePhases(testScenario())

	for i, p := range phases {
		if p.StartTime != 0 {
			t.Errorf("phase %d start = %v, want 0", i, p.StartTime)
		}
	}
}

func TestRampUp(t *testing.T) {
	sc := &scenario.Scenario{
		Name:   "test",
		Phases: []scenario.Phase{{Name: "p1", Duration: scenario.Duration(10 * time.Second)}},
	}
	s := NewSequential(nil)
	phases := s.SchedulePhases(sc)
	s.ApplyRampUp(phases, 5*time.Second)

	if phases[0].StartTime != 5*time.Second || phases[0].EndTime != 15*time.Second {
		t.Errorf("phase 0 = [%v, %v], want [5s, 15s]", phases[0].StartTime, phases[0].EndTime)
	}
}

func TestScheduledPhaseStatus(t *testing.T) {
	p := ScheduledPhase{
		Phase:     scenario.Phase{Name: "test", Duration: scenario.Duration(10 * time.Second)},
		StartTime: 5 * time.Second,
		EndTime:   15 * time.Second,
	}

	if p.HasStarted(3 * time.Second) {
		t.Errorf("should not have started at 3s")
	}
	if !p.HasStarted(5 * time.Second) {
		t.Errorf("should have started at 5s")
	}
	if !p.IsActive(10 * time.Second) {
		t.Errorf("should be active at 10s")
	}
	if p.IsActive(20 * time.Second) {
		t.Errorf("should not be active at 20s")
	}
	if !p.HasEnded(20 * time.Second) {
		t.Errorf("should have ended at 20s")
	}
}

func TestRandomizedSchedulingIsDeterministicWithSameSeed(t *testing.T) {
	sc := &scenario.Scenario{
		Name: "test",
		Phases: []scenario.Phase{
			{Name: "p1", Duration: scenario.Duration(10 * time.Second)},
			{Name: "p2", Duration: scenario.Duration(20 * time.Second)},
			{Name: "p3", Duration: scenario.Duration(30 * time.Second)},
		},
	}

	a := NewRandomized(42, nil).SchedulePhases(sc)
	b := NewRandomized(42, nil).SchedulePhases(sc)

	for i := range a {
		if a[i].Name() != b[i].Name() || a[i].StartTime != b[i].StartTime {
			t.Fatalf("same seed produced different layouts at index %d", i)
		}
	}

	var total time.Duration
	for _, p := range a {
		total += p.Duration()
	}
	if total != 60*time.Second {
		t.Errorf("total duration = %v, want 60s", total)
	}
}
