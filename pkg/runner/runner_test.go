package runner

import (
	"context"
	"testing"
	"time"

	"github.com/jihwankim/chaos-harness/pkg/injection"
	"github.com/jihwankim/chaos-harness/pkg/scenario"
)

func TestSuccessRateNoInjections(t *testing.T) {
	r := ScenarioResult{}
	if got := r.SuccessRate(); got != 0 {
		t.Errorf("SuccessRate() = %v, want 0", got)
	}
}

func TestSuccessRateAllSucceeded(t *testing.T) {
	r := ScenarioResult{
		TotalInjections: 3,
		PhaseResults:    []PhaseResult{{InjectionCount: 3, FailedInjections: 0}},
	}
	if got := r.SuccessRate(); got != 1 {
		t.Errorf("SuccessRate() = %v, want 1", got)
	}
}

func TestSuccessRatePartialFailure(t *testing.T) {
	r := ScenarioResult{
		TotalInjections: 4,
		PhaseResults:    []PhaseResult{{InjectionCount: 3, FailedInjections: 1}},
	}
	if got := r.SuccessRate(); got != 0.75 {
		t.Errorf("SuccessRate() = %v, want 0.75", got)
	}
}

func TestAveragePhaseDuration(t *testing.T) {
	r := ScenarioResult{
		PhaseResults: []PhaseResult{
			{Duration: 50 * time.Second},
			{Duration: 50 * time.Second},
		},
	}
	if got := r.AveragePhaseDuration(); got != 50*time.Second {
		t.Errorf("AveragePhaseDuration() = %v, want 50s", got)
	}
}

func TestRunRejectsInvalidScenario(t *testing.T) {
	r := New(injection.NewExecutor(injection.NewRegistry(), nil), nil)
	_, err := r.Run(context.Background(), &scenario.Scenario{})
	if err == nil {
		t.Fatalf("expected validation error for empty scenario")
	}
}

func TestRunSequentialCompletesQuickPhase(t *testing.T) {
	reg := injection.NewRegistry()
	exec := injection.NewExecutor(reg, nil)
	r := New(exec, nil)

	sc := &scenario.Scenario{
		Name: "empty-phase",
		Phases: []scenario.Phase{
			{Name: "p1", Duration: scenario.Duration(1)},
		},
	}
	result, err := r.Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.PhaseResults) != 1 {
		t.Fatalf("expected 1 phase result, got %d", len(result.PhaseResults))
	}
}
