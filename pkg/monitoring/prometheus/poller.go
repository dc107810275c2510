package prometheus

import (
	"context"
	"time"

	"github.com/jihwankim/chaos-harness/pkg/metrics"
	"github.com/jihwankim/chaos-harness/pkg/telemetry"
)

// Poller periodically runs a PromQL query against an external Prometheus
// and feeds the latest value into a metrics.Collector as a custom sample.
type Poller struct {
	client    *Client
	collector *metrics.Collector
	log       *telemetry.Logger
}

func NewPoller(client *Client, collector *metrics.Collector, log *telemetry.Logger) *Poller {
	return &Poller{client: client, collector: collector, log: log}
}

// PollOnce runs query once and records the result under name.
func (p *Poller) PollOnce(ctx context.Context, name, query string) error {
	value, err := p.client.GetLatestValue(ctx, query)
	if err != nil {
		return err
	}
	p.collector.RecordCustom(name, value)
	return nil
}

// Run polls query every interval until ctx is cancelled. Individual poll
// failures are logged and do not stop the loop.
func (p *Poller) Run(ctx context.Context, name, query string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.PollOnce(ctx, name, query); err != nil && p.log != nil {
				p.log.Warn("prometheus poll failed", "query", query, "error", err.Error())
			}
		}
	}
}
