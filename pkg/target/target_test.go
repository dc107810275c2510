package target_test

import (
	"context"
	"os"
	"testing"

	"github.com/jihwankim/chaos-harness/pkg/target"
)

func TestProcessExists(t *testing.T) {
	self := target.Process(os.Getpid())
	if !self.Exists(context.Background()) {
		t.Fatalf("expected current process to exist")
	}

	unused := target.Process(999999)
	if unused.Exists(context.Background()) {
		t.Fatalf("expected PID 999999 to not exist")
	}
}

func TestDescription(t *testing.T) {
	cases := []struct {
		t    target.Target
		want string
	}{
		{target.Process(42), "Process PID 42"},
		{target.Network("10.0.0.1:8080"), "Network 10.0.0.1:8080"},
		{target.Container("abc123"), "Container abc123"},
		{target.Thread(7), "Thread TID 7"},
		{target.ProcessPattern("validator"), `ProcessPattern "validator"`},
	}
	for _, c := range cases {
		if got := c.t.Description(); got != c.want {
			t.Errorf("Description() = %q, want %q", got, c.want)
		}
	}
}

func TestNetworkTargetDoesNotExist(t *testing.T) {
	unreachable := target.Network("127.0.0.1:1")
	if unreachable.Exists(context.Background()) {
		t.Fatalf("expected unreachable address to not exist")
	}
}
