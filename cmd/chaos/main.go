package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jihwankim/chaos-harness/pkg/containerprobe"
	"github.com/jihwankim/chaos-harness/pkg/target"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	quiet   bool
	version = "dev" // set by build flags

	log *telemetry.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chaos",
	Short: "Chaos engineering harness for processes, networks, and containers",
	Long: `chaos applies declarative fault-injection scenarios against processes,
network links, and containers, and reports on what happened.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := telemetry.LevelInfo
		switch {
		case quiet:
			level = telemetry.LevelError
		case verbose:
			level = telemetry.LevelDebug
		}
		log = telemetry.New(telemetry.Config{
			Level:  level,
			Format: telemetry.FormatText,
			Output: os.Stdout,
		})

		if probe, err := containerprobe.New(); err == nil {
			target.ContainerExistsProbe = probe.Exists
		} else {
			log.Debug("docker daemon not available, container targets fall back to cgroup checks", "error", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
}

// Commands are defined in separate files:
// - runCmd in run.go
// - attachCmd in attach.go
// - reportCmd in report.go
// - validateCmd in validate.go
// - listCmd in list.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
