package process

import (
	"context"
	"testing"
	"time"

	"github.com/jihwankim/chaos-harness/pkg/target"
)

func TestSignalUnixNumberMapping(t *testing.T) {
	cases := map[Signal]int{
		SIGTERM: 15,
		SIGKILL: 9,
		SIGSTOP: 19,
		SIGCONT: 18,
		SIGHUP:  1,
	}
	for sig, want := range cases {
		if got := sig.unixNumber(); got != want {
			t.Errorf("%s.unixNumber() = %d, want %d", sig, got, want)
		}
	}
}

func TestKillInjectorDefaults(t *testing.T) {
	inj := NewKillInjector(nil, KillConfig{})
	if inj.config.Signal != SIGTERM {
		t.Errorf("default signal = %v, want SIGTERM", inj.config.Signal)
	}
	if inj.config.RestartDelay != 5*time.Second {
		t.Errorf("default restart delay = %v, want 5s", inj.config.RestartDelay)
	}
	if inj.config.RestartMode != RestartNone {
		t.Errorf("default restart mode = %v, want none", inj.config.RestartMode)
	}
}

func TestKillInjectorRequiresProcessTarget(t *testing.T) {
	inj := NewKillInjector(nil, KillConfig{})
	_, err := inj.Apply(context.Background(), target.Network("10.0.0.1:80"))
	if err == nil {
		t.Fatalf("expected error for non-process target")
	}
}

func TestSuspendInjectorRequiresProcessTarget(t *testing.T) {
	inj := NewSuspendInjector(nil, time.Millisecond)
	_, err := inj.Apply(context.Background(), target.Network("10.0.0.1:80"))
	if err == nil {
		t.Fatalf("expected error for non-process target")
	}
}
