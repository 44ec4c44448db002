// ABOUTME: Flow model deriving metric and write throughput from a workload
// ABOUTME: Steady state: every unique metric produces one write per second

package services

import "github.com/markalston/graphite-capacity-planner/models"

// flowMetrics derives throughput counters from normalized inputs.
func (e *Estimator) flowMetrics(w models.WorkloadParams, r models.UserResources) models.FlowMetrics {
	total := w.RequestsPerSecond * w.MetricsPerRequest
	unique := ceilStable(total * w.UniqueMetricsRatio)
	writes := unique

	storagePerDay := e.dailyStorageGB(unique)

	return models.FlowMetrics{
		TotalMetricsPerSecond:  total,
		UniqueMetricsPerSecond: unique,
		WritesPerSecond:        writes,
		MetricsPerInstance:     ceilStable(total / float64(r.StatsdInstances)),
		WritesPerInstance:      ceilStable(writes / float64(r.CarbonInstances)),
		StoragePerDay:          storagePerDay,
		TotalStorageRequired:   storagePerDay * w.RetentionPeriodDays,
	}
}
