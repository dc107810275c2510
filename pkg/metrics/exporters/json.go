// Package exporters renders an aggregated metrics summary as JSON,
// Markdown, or Prometheus text exposition.
package exporters

import (
	"encoding/json"
	"os"

	"github.com/jihwankim/chaos-harness/pkg/metrics"
)

// JSON renders agg as indented JSON.
func JSON(agg metrics.Aggregated) (string, error) {
	body, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// WriteJSON renders agg as JSON and writes it to path.
func WriteJSON(agg metrics.Aggregated, path string) error {
	body, err := JSON(agg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(body), 0644)
}
