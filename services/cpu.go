// ABOUTME: CPU estimator for the collector, writer, and visualization tiers
// ABOUTME: Superlinear per-tier cost distributed across instances with coordination overhead

package services

import (
	"fmt"
	"math"

	"github.com/markalston/graphite-capacity-planner/models"
)

// tierCPU is the single-instance cost of load on the saturation curve:
// (load/unit) * (1 + log10(max(1, load/unit))) * factor.
func tierCPU(load float64, t TierTuning) float64 {
	units := load / t.UnitLoad
	return units * (1 + math.Log10(math.Max(1, units))) * t.CPUFactor
}

// distribute spreads a single-instance cost over n instances and adds a
// coordination tax proportional to the extra instances.
func distribute(cost float64, instances int, overheadRate float64) float64 {
	n := float64(instances)
	return cost/n + cost*overheadRate*(n-1)
}

// visualizationCPU is the fixed query/render cost, independent of instance counts.
func (e *Estimator) visualizationCPU(complexity float64) float64 {
	v := e.tuning.Visualization
	return (complexity / v.ComplexityUnit) * (1 + complexity/v.ComplexityScale) * v.CPUFactor
}

func (e *Estimator) estimateCPU(w models.WorkloadParams, r models.UserResources, f models.FlowMetrics) models.Resource {
	t := e.tuning

	collector := distribute(tierCPU(f.TotalMetricsPerSecond, t.Collector), r.StatsdInstances, t.Collector.CPUOverheadRate)
	writer := distribute(tierCPU(f.WritesPerSecond, t.Writer), r.CarbonInstances, t.Writer.CPUOverheadRate)
	visualization := e.visualizationCPU(w.CalculationComplexity)

	total := math.Max(t.Floors.CPUCores, collector+writer+visualization)

	explanation := fmt.Sprintf(
		"StatsD: %.2f cores across %d instance(s) for %s metrics/s; Carbon: %.2f cores across %d instance(s) for %s writes/s; Graphite-web: %.2f cores at complexity %s",
		collector, r.StatsdInstances, models.FormatNumber(f.TotalMetricsPerSecond),
		writer, r.CarbonInstances, models.FormatNumber(f.WritesPerSecond),
		visualization, models.FormatNumber(w.CalculationComplexity),
	)

	return e.newResource(ceilTenth(total), total, r.CPU, "cores", explanation)
}
