package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jihwankim/chaos-harness/pkg/chaoserr"
	"github.com/jihwankim/chaos-harness/pkg/handle"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// SpaceInjector fills a filesystem toward a target usage fraction by
// creating a sparse temp file sized to close the gap.
type SpaceInjector struct {
	log         *telemetry.Logger
	path        string
	targetUsage float64
}

// NewSpaceInjector clamps targetUsage to [0,1].
func NewSpaceInjector(log *telemetry.Logger, path string, targetUsage float64) *SpaceInjector {
	if targetUsage < 0 {
		targetUsage = 0
	}
	if targetUsage > 1 {
		targetUsage = 1
	}
	if path == "" {
		path = "/tmp"
	}
	return &SpaceInjector{log: log, path: path, targetUsage: targetUsage}
}

func (s *SpaceInjector) Name() string { return "disk_space" }

func (s *SpaceInjector) RequiredCapabilities() []string { return nil }

func (s *SpaceInjector) Apply(ctx context.Context, t target.Target) (handle.Handle, error) {
	bytesToFill, err := calculateBytesToFill(s.path, s.targetUsage)
	if err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.SystemError, err, "failed to stat filesystem %s", s.path)
	}

	tempFile := filepath.Join(s.path, fmt.Sprintf("chaos_disk_fill_%s.tmp", uuid.NewString()))
	if err := fillDisk(tempFile, bytesToFill); err != nil {
		return handle.Handle{}, chaoserr.Wrap(chaoserr.InjectionFailed, err, "failed to create fill file %s", tempFile)
	}

	if s.log != nil {
		s.log.Info("filling disk", "path", s.path, "target_usage", s.targetUsage, "bytes", bytesToFill, "temp_file", tempFile)
	}

	return handle.New("disk_space", t, map[string]interface{}{
		"temp_file":    tempFile,
		"bytes_filled": bytesToFill,
	}), nil
}

// Remove requires a temp_file in the handle metadata and propagates real
// removal errors, unlike SlowInjector.Remove's swallow-all-errors behavior.
func (s *SpaceInjector) Remove(ctx context.Context, h handle.Handle) error {
	tempFile, ok := h.Metadata["temp_file"].(string)
	if !ok || tempFile == "" {
		return chaoserr.New(chaoserr.CleanupFailed, "disk_space handle has no temp_file to remove")
	}
	if err := os.Remove(tempFile); err != nil && !os.IsNotExist(err) {
		return chaoserr.Wrap(chaoserr.CleanupFailed, err, "failed to remove fill file %s", tempFile)
	}
	if s.log != nil {
		s.log.Info("removing disk fill", "temp_file", tempFile)
	}
	return nil
}
