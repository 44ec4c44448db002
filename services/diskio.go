// ABOUTME: Disk throughput estimator driven by the writer tier
// ABOUTME: Random IO grows with cardinality; writers divide it near-linearly

package services

import (
	"fmt"
	"math"

	"github.com/markalston/graphite-capacity-planner/models"
)

// diskDistribution is (1/n) * (1 + overhead*(n-1)).
func diskDistribution(instances int, overheadRate float64) float64 {
	n := float64(instances)
	return (1 / n) * (1 + overheadRate*(n-1))
}

func (e *Estimator) estimateDiskIO(r models.UserResources, f models.FlowMetrics) models.Resource {
	t := e.tuning
	d := t.Disk

	randomIOFactor := 1 + (f.UniqueMetricsPerSecond/d.RandomIODivisor)*d.RandomIOSlope
	distribution := diskDistribution(r.CarbonInstances, d.OverheadRate)
	iopsPerWrite := d.IOPSPerWrite * randomIOFactor * distribution
	bytesPerOp := d.BlockBytes * (1 + d.MetadataOverhead)

	iops := f.WritesPerSecond * iopsPerWrite
	required := math.Max(t.Floors.DiskMBps, iops*bytesPerOp/bytesPerMB)

	explanation := fmt.Sprintf(
		"%s writes/s at %.2f IOPS per write (random IO factor %.2f, %d Carbon instance(s)) = %s IOPS of %s-byte operations",
		models.FormatNumber(f.WritesPerSecond), iopsPerWrite, randomIOFactor, r.CarbonInstances,
		models.FormatNumber(math.Round(iops)), models.FormatNumber(math.Round(bytesPerOp)),
	)

	return e.newResource(math.Max(t.Floors.DiskMBps, roundTenth(required)), required, r.DiskIO, "MB/s", explanation)
}
