package memory

import (
	"context"
	"testing"

	"github.com/jihwankim/chaos-harness/pkg/target"
)

func TestPressureConfigClamping(t *testing.T) {
	inj := NewPressureInjector(nil, PressureConfig{TargetUsage: 1.5, FailureRate: -1})
	if inj.config.TargetUsage != 1 {
		t.Errorf("TargetUsage = %v, want 1", inj.config.TargetUsage)
	}
	if inj.config.FailureRate != 0 {
		t.Errorf("FailureRate = %v, want 0", inj.config.FailureRate)
	}
}

func TestLeakInjectorRate(t *testing.T) {
	inj := NewLeakInjector(nil, 1024*1024)
	if inj.leakRate != 1024*1024 {
		t.Errorf("leakRate = %v, want 1MiB", inj.leakRate)
	}
}

func TestOOMKillerRequiresProcessTarget(t *testing.T) {
	inj := NewOOMKillerInjector(nil)
	_, err := inj.Apply(context.Background(), target.Network("10.0.0.1:80"))
	if err == nil {
		t.Fatalf("expected error for non-process target")
	}
}
