// ABOUTME: Memory estimator for collector aggregation buffers and writer caches
// ABOUTME: Distributed cost plus per-instance overhead, capped by a plateau

package services

import (
	"fmt"
	"math"

	"github.com/markalston/graphite-capacity-planner/models"
)

// tierMemory distributes the data-dependent part of a tier's memory over n
// instances, adds the fixed per-instance overhead, and applies the plateau
// cap that stops savings beyond roughly eight to ten instances.
func (e *Estimator) tierMemory(single, loadFactor float64, instances int, fixedPerInstance float64) float64 {
	m := e.tuning.Memory
	n := float64(instances)
	distributed := (single*m.DistributionFactor*loadFactor)/n + fixedPerInstance*n
	plateau := single*m.PlateauFactor + fixedPerInstance
	return math.Min(distributed, plateau)
}

// writeLoadFactor grows writer memory with per-instance write pressure, up to the cap.
func (e *Estimator) writeLoadFactor(writesPerInstance float64) float64 {
	m := e.tuning.Memory
	return math.Min(m.WriteLoadCap, 1+(writesPerInstance/m.WriteLoadUnit)*m.WriteLoadSlope)
}

func (e *Estimator) estimateMemory(w models.WorkloadParams, r models.UserResources, f models.FlowMetrics) models.Resource {
	t := e.tuning
	m := t.Memory

	collectorSingle := f.UniqueMetricsPerSecond * w.FlushIntervalSeconds * m.BytesPerMetric * m.CollectorFactor / bytesPerGB
	writerSingle := f.UniqueMetricsPerSecond * m.WriterResidencySeconds * m.BytesPerMetric / bytesPerGB

	collector := e.tierMemory(collectorSingle, 1, r.StatsdInstances, t.Collector.FixedMemoryGB)
	writer := e.tierMemory(writerSingle, e.writeLoadFactor(f.WritesPerInstance), r.CarbonInstances, t.Writer.FixedMemoryGB)

	v := t.Visualization
	visualization := v.BaseMemoryGB + (w.CalculationComplexity/v.ComplexityUnit)*(1+f.UniqueMetricsPerSecond/v.UniqueMetricsScale)*v.MemoryFactorGB

	total := math.Max(t.Floors.MemoryGB, collector+writer+visualization)

	explanation := fmt.Sprintf(
		"StatsD: %.3f GB across %d instance(s) (%s unique metrics held %.0fs); Carbon: %.3f GB across %d instance(s); Graphite-web: %.3f GB",
		collector, r.StatsdInstances, models.FormatNumber(f.UniqueMetricsPerSecond), w.FlushIntervalSeconds,
		writer, r.CarbonInstances,
		visualization,
	)

	return e.newResource(ceilTenth(total), total, r.Memory, "GB", explanation)
}
