package monitoring_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jihwankim/chaos-harness/pkg/metrics"
	"github.com/jihwankim/chaos-harness/pkg/monitoring/prometheus"
)

// Example demonstrates polling an external Prometheus for a recovery-time
// metric and feeding it into a metrics.Collector alongside in-process
// samples. It requires a running Prometheus instance, so it is expected to
// report unavailability in a typical test environment.
func Example() {
	client, err := prometheus.New(prometheus.Config{
		URL:     "http://localhost:9090",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		fmt.Printf("failed to create Prometheus client: %v\n", err)
		return
	}

	ctx := context.Background()
	if err := client.TestConnection(ctx); err != nil {
		fmt.Println("Prometheus not available (this is expected in test environment)")
		return
	}

	collector := metrics.NewCollector()
	poller := prometheus.NewPoller(client, collector, nil)
	if err := poller.PollOnce(ctx, "recovery_time", "up"); err != nil {
		fmt.Printf("poll failed: %v\n", err)
		return
	}

	fmt.Println("recorded a custom sample from Prometheus")
	// Output: Prometheus not available (this is expected in test environment)
}
