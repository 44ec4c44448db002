// ABOUTME: Network throughput estimator for client, inter-tier, and query traffic
// ABOUTME: Larger of inbound and inter-tier per-instance traffic, plus queries

package services

import (
	"fmt"
	"math"

	"github.com/markalston/graphite-capacity-planner/models"
)

func (e *Estimator) estimateNetworkIO(w models.WorkloadParams, r models.UserResources, f models.FlowMetrics) models.Resource {
	t := e.tuning
	nt := t.Network

	statsd := float64(r.StatsdInstances)
	carbon := float64(r.CarbonInstances)

	clientTraffic := f.TotalMetricsPerSecond * nt.BytesPerMetric * 8 / bytesPerMB
	clientPerInstance := clientTraffic / statsd * (1 + nt.ClientOverheadRate*(statsd-1))

	// Aggregation shrinks the volume forwarded to writers; every instance
	// beyond the first on either tier adds coordination traffic.
	interTier := clientTraffic * nt.InterTierFraction
	interTierPerInstance := interTier / carbon * (1 + nt.InterTierOverheadRate*(statsd+carbon-2))

	queryTraffic := clientTraffic * nt.QueryFraction * w.CalculationComplexity

	required := math.Max(t.Floors.NetworkMbps, math.Max(clientPerInstance, interTierPerInstance)+queryTraffic)

	explanation := fmt.Sprintf(
		"Client to StatsD: %.2f Mbps per instance; StatsD to Carbon: %.2f Mbps per instance; queries: %.2f Mbps",
		clientPerInstance, interTierPerInstance, queryTraffic,
	)

	return e.newResource(math.Max(t.Floors.NetworkMbps, roundTenth(required)), required, r.NetworkIO, "Mbps", explanation)
}
