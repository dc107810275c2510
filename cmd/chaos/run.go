package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jihwankim/chaos-harness/pkg/injection"
	"github.com/jihwankim/chaos-harness/pkg/metrics/exporters"
	"github.com/jihwankim/chaos-harness/pkg/runner"
	"github.com/jihwankim/chaos-harness/pkg/scenario"
	"github.com/jihwankim/chaos-harness/pkg/scenario/parser"
	"github.com/jihwankim/chaos-harness/pkg/scenario/validator"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario-file>",
	Args:  cobra.ExactArgs(1),
	Short: "Execute a chaos test scenario",
	Long:  `Loads a scenario file (YAML, JSON, or TOML) and executes the chaos test.`,
	RunE:  runScenario,
}

func init() {
	runCmd.Flags().String("output-json", "", "write the scenario result as JSON to this path")
	runCmd.Flags().String("output-markdown", "", "write the scenario result as Markdown to this path")
	runCmd.Flags().Int("prometheus-port", 0, "serve live Prometheus metrics on this port (0 disables)")
	runCmd.Flags().Int64("seed", 0, "override the scenario's randomized-mode seed")
	runCmd.Flags().Bool("dry-run", false, "validate the scenario without executing it")
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenarioPath := args[0]

	if _, err := loadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log.Info("parsing scenario", "file", scenarioPath)
	p := parser.New(nil)
	sc, err := p.ParseFile(scenarioPath)
	if err != nil {
		return fmt.Errorf("failed to parse scenario: %w", err)
	}

	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		sc.Seed = &seed
	}

	log.Info("validating scenario")
	v := validator.New()
	if err := v.Validate(sc); err != nil {
		fmt.Fprint(os.Stderr, v.GetReport())
		return fmt.Errorf("scenario validation failed: %w", err)
	}
	if v.HasWarnings() {
		log.Warn("scenario has warnings")
		fmt.Fprint(os.Stderr, v.GetReport())
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Println("scenario is valid (dry-run)")
		return nil
	}

	registry := injection.WithDefaults(log)
	executor := injection.NewExecutor(registry, log)

	if port, _ := cmd.Flags().GetInt("prometheus-port"); port > 0 {
		live := exporters.NewLiveRegistry()
		go serveLiveMetrics(port, live)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		log.Warn("received interrupt, cancelling scenario")
		cancel()
	}()

	rn := runner.New(executor, log)
	result, err := rn.Run(ctx, sc)

	// Drain any injections that survived a mid-run error or cancellation.
	if drainErr := executor.RemoveAll(ctx); drainErr != nil {
		log.Warn("failed to drain active injections", "error", drainErr.Error())
	}

	if err != nil {
		return fmt.Errorf("scenario run failed: %w", err)
	}

	fmt.Printf("scenario %q completed: %d injections, success rate %.1f%%\n",
		result.ScenarioName, result.TotalInjections, result.SuccessRate()*100)

	if jsonPath, _ := cmd.Flags().GetString("output-json"); jsonPath != "" {
		if err := writeResultJSON(result, jsonPath); err != nil {
			log.Warn("failed to write JSON result", "error", err.Error())
		}
	}
	if mdPath, _ := cmd.Flags().GetString("output-markdown"); mdPath != "" {
		if err := writeResultMarkdown(result, mdPath); err != nil {
			log.Warn("failed to write Markdown result", "error", err.Error())
		}
	}

	return nil
}

// resultDoc is the stable JSON shape consumed by "chaos report", with
// durations rendered as human-readable strings rather than nanosecond counts.
type resultDoc struct {
	ScenarioName    string            `json:"scenario_name"`
	TotalDuration   scenario.Duration `json:"total_duration"`
	TotalInjections int               `json:"total_injections"`
	SuccessRate     float64           `json:"success_rate"`
	PhaseResults    []phaseResultDoc  `json:"phase_results"`
}

type phaseResultDoc struct {
	Name             string            `json:"name"`
	Duration         scenario.Duration `json:"duration"`
	InjectionCount   int               `json:"injection_count"`
	FailedInjections int               `json:"failed_injections"`
}

func toResultDoc(r *runner.ScenarioResult) resultDoc {
	phases := make([]phaseResultDoc, len(r.PhaseResults))
	for i, p := range r.PhaseResults {
		phases[i] = phaseResultDoc{
			Name:             p.Name,
			Duration:         scenario.Duration(p.Duration),
			InjectionCount:   p.InjectionCount,
			FailedInjections: p.FailedInjections,
		}
	}
	return resultDoc{
		ScenarioName:    r.ScenarioName,
		TotalDuration:   scenario.Duration(r.TotalDuration),
		TotalInjections: r.TotalInjections,
		SuccessRate:     r.SuccessRate(),
		PhaseResults:    phases,
	}
}

func writeResultJSON(r *runner.ScenarioResult, path string) error {
	body, err := json.MarshalIndent(toResultDoc(r), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0644)
}

func writeResultMarkdown(r *runner.ScenarioResult, path string) error {
	var sb strings.Builder
	doc := toResultDoc(r)

	fmt.Fprintf(&sb, "# Scenario Result: %s\n\n", doc.ScenarioName)
	fmt.Fprintf(&sb, "- Total duration: %s\n", doc.TotalDuration)
	fmt.Fprintf(&sb, "- Total injections: %d\n", doc.TotalInjections)
	fmt.Fprintf(&sb, "- Success rate: %.1f%%\n\n", doc.SuccessRate*100)

	sb.WriteString("| Phase | Duration | Injections | Failed |\n")
	sb.WriteString("|-------|----------|------------|--------|\n")
	for _, p := range doc.PhaseResults {
		fmt.Fprintf(&sb, "| %s | %s | %d | %d |\n", p.Name, p.Duration, p.InjectionCount, p.FailedInjections)
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func serveLiveMetrics(port int, reg *exporters.LiveRegistry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg.Registry(), promhttp.HandlerOpts{}))
	addr := fmt.Sprintf(":%d", port)
	log.Info("serving live Prometheus metrics", "addr", addr)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn("prometheus exposition server stopped", "error", err.Error())
	}
}
