package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jihwankim/chaos-harness/pkg/injection"
	"github.com/jihwankim/chaos-harness/pkg/scenario"
	"github.com/jihwankim/chaos-harness/pkg/target"
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Args:  cobra.NoArgs,
	Short: "Apply a single injection against a running target",
	Long: `Applies one injector to a process or network target outside of any
scenario. Without --duration the injection remains active and its handle id
is printed so it can be referenced later; with --duration it is held for
that long and then removed automatically.`,
	RunE: runAttach,
}

func init() {
	attachCmd.Flags().Int("pid", 0, "target process ID")
	attachCmd.Flags().String("address", "", "target network address (host:port)")
	attachCmd.Flags().String("injection", "", "injector name (see 'chaos list')")
	attachCmd.Flags().String("duration", "", "hold the injection for this long, then remove it (e.g. 30s)")
	attachCmd.MarkFlagRequired("injection")
}

func runAttach(cmd *cobra.Command, args []string) error {
	pid, _ := cmd.Flags().GetInt("pid")
	address, _ := cmd.Flags().GetString("address")
	injectionName, _ := cmd.Flags().GetString("injection")
	durationStr, _ := cmd.Flags().GetString("duration")

	if (pid == 0) == (address == "") {
		return fmt.Errorf("exactly one of --pid or --address is required")
	}

	var t target.Target
	if pid != 0 {
		t = target.Process(pid)
	} else {
		t = target.Network(address)
	}

	registry := injection.WithDefaults(log)
	executor := injection.NewExecutor(registry, log)

	ctx := context.Background()
	h, err := executor.Inject(ctx, injectionName, t)
	if err != nil {
		return fmt.Errorf("failed to apply injection: %w", err)
	}

	if durationStr == "" {
		fmt.Printf("injection %q applied to %s, handle id %s (remains active)\n", injectionName, t.Description(), h.ID)
		return nil
	}

	var d scenario.Duration
	if err := d.UnmarshalText([]byte(durationStr)); err != nil {
		return fmt.Errorf("invalid --duration: %w", err)
	}

	log.Info("holding injection", "duration", d.Duration())
	time.Sleep(d.Duration())

	if err := executor.Remove(ctx, h); err != nil {
		return fmt.Errorf("failed to remove injection: %w", err)
	}
	fmt.Printf("injection %q removed from %s\n", injectionName, t.Description())
	return nil
}
