package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
)

func TestFailureRateClamping(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0: 0, 0.5: 0.5, 1: 1, 2: 1}
	for in, want := range cases {
		inj := NewFailureInjector(nil, in)
		if inj.failureRate != want {
			t.Errorf("NewFailureInjector(%v).failureRate = %v, want %v", in, inj.failureRate, want)
		}
	}
}

func TestSlowInjectorApplyRemove(t *testing.T) {
	inj := NewSlowInjector(nil)
	h, err := inj.Apply(context.Background(), target.Process(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := os.Stat(slowMarkerFile); err != nil {
		t.Fatalf("expected marker file: %v", err)
	}
	if err := inj.Remove(context.Background(), h); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(slowMarkerFile); !os.IsNotExist(err) {
		t.Fatalf("expected marker file removed")
	}
}

func TestSlowInjectorRemoveIgnoresMissingFile(t *testing.T) {
	inj := NewSlowInjector(nil)
	h := handle.New("disk_slow", target.Process(1), map[string]interface{}{
		"marker_file": filepath.Join(t.TempDir(), "does_not_exist.json"),
	})
	if err := inj.Remove(context.Background(), h); err != nil {
		t.Fatalf("Remove should swallow missing-file errors, got %v", err)
	}
}

func TestSpaceInjectorRemoveRequiresTempFile(t *testing.T) {
	inj := NewSpaceInjector(nil, t.TempDir(), 0.5)
	h := handle.New("disk_space", target.Process(1), nil)
	if err := inj.Remove(context.Background(), h); err == nil {
		t.Fatalf("expected error when temp_file metadata missing")
	}
}

func TestSpaceInjectorFillAndRemove(t *testing.T) {
	dir := t.TempDir()
	inj := NewSpaceInjector(nil, dir, 0)
	h, err := inj.Apply(context.Background(), target.Process(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	tempFile, _ := h.Metadata["temp_file"].(string)
	if tempFile == "" {
		t.Fatalf("expected temp_file in metadata")
	}
	if err := inj.Remove(context.Background(), h); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(tempFile); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed")
	}
}
