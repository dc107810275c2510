package scenario

import "testing"

func TestValidateEmptyName(t *testing.T) {
	s := Scenario{Phases: []Phase{{Name: "p1", Duration: Duration(1)}}}
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestValidateNoPhases(t *testing.T) {
	s := Scenario{Name: "valid"}
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for missing phases")
	}
}

func TestValidateZeroDurationPhase(t *testing.T) {
	s := Scenario{Name: "valid", Phases: []Phase{{Name: "p1"}}}
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for zero-duration phase")
	}
}

func TestValidateHappyPath(t *testing.T) {
	s := Scenario{
		Name: "valid",
		Phases: []Phase{{
			Name:     "p1",
			Duration: Duration(60),
			Injections: []InjectionConfig{{
				Type:   "process_kill",
				Target: TargetConfig{PID: intPtr(1)},
			}},
		}},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTargetConfigPriorityOrder(t *testing.T) {
	cfg := TargetConfig{PID: intPtr(42), Address: "10.0.0.1:80", ContainerID: "abc", Pattern: "foo"}
	tg, err := cfg.ToTarget()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tg.PID != 42 {
		t.Fatalf("expected pid to take priority, got %+v", tg)
	}
}

func TestTargetConfigNoneSpecified(t *testing.T) {
	if _, err := (TargetConfig{}).ToTarget(); err == nil {
		t.Fatalf("expected error when no target field is set")
	}
}

func intPtr(v int) *int { return &v }
