package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jihwankim/chaos-harness/pkg/metrics"
	"github.com/jihwankim/chaos-harness/pkg/metrics/exporters"
)

var reportCmd = &cobra.Command{
	Use:   "report <metrics-file>",
	Args:  cobra.ExactArgs(1),
	Short: "Render an aggregated metrics file in the chosen format",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().String("format", "cli", "output format: cli, json, markdown")
	reportCmd.Flags().String("output", "", "write to this path instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read metrics file: %w", err)
	}

	var agg metrics.Aggregated
	if err := json.Unmarshal(data, &agg); err != nil {
		return fmt.Errorf("failed to parse metrics file: %w", err)
	}

	var rendered string
	switch format {
	case "cli":
		rendered = renderCLISummary(agg)
	case "json":
		rendered, err = exporters.JSON(agg)
		if err != nil {
			return fmt.Errorf("failed to render JSON: %w", err)
		}
	case "markdown":
		rendered = exporters.Markdown(agg)
	case "html":
		return fmt.Errorf("format %q is not supported", format)
	default:
		return fmt.Errorf("unknown format %q (want cli, json, or markdown)", format)
	}

	if outPath == "" {
		fmt.Println(rendered)
		return nil
	}
	return os.WriteFile(outPath, []byte(rendered), 0644)
}

func renderCLISummary(agg metrics.Aggregated) string {
	return fmt.Sprintf(
		"Total requests: %d\nSuccessful: %d\nFailed: %d\nError rate: %.1f%%\nLatency p50/p95/p99: %s / %s / %s\nAverage latency: %s\n",
		agg.TotalRequests, agg.SuccessfulRequests, agg.FailedRequests, agg.ErrorRate*100,
		agg.LatencyP50, agg.LatencyP95, agg.LatencyP99, agg.AverageLatency,
	)
}
