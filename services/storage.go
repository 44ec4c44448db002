// ABOUTME: Storage estimator for retained time-series points
// ABOUTME: Daily growth at a fixed resolution, multiplied by retention for utilization

package services

import (
	"fmt"
	"math"

	"github.com/markalston/graphite-capacity-planner/models"
)

// dailyStorageGB is the on-disk growth per day for the given unique metrics.
func (e *Estimator) dailyStorageGB(uniqueMetricsPerSecond float64) float64 {
	s := e.tuning.Storage
	pointsPerDay := secondsPerDay / s.ResolutionSeconds
	return uniqueMetricsPerSecond * pointsPerDay * s.BytesPerPoint / bytesPerGB
}

func (e *Estimator) estimateStorage(w models.WorkloadParams, r models.UserResources, f models.FlowMetrics) models.Resource {
	t := e.tuning

	// The floor applies to the reported value only; utilization uses the raw retention total.
	daily := math.Max(t.Floors.StorageGBPerDay, f.StoragePerDay)

	explanation := fmt.Sprintf(
		"%s unique metrics at %.0fs resolution, %.0f bytes/point: %.2f GB/day, %.2f GB over %s day(s)",
		models.FormatNumber(f.UniqueMetricsPerSecond), t.Storage.ResolutionSeconds, t.Storage.BytesPerPoint,
		f.StoragePerDay, f.TotalStorageRequired, models.FormatNumber(w.RetentionPeriodDays),
	)

	return e.newResource(ceilTenth(daily), f.TotalStorageRequired, r.Storage, "GB/day", explanation)
}
