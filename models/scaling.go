// ABOUTME: Data models for instance-count scaling exploration
// ABOUTME: Sweep records per tier plus the ideal-count summary and recommendation

package models

// Tier identifies one horizontally scalable pipeline tier.
type Tier string

const (
	TierCollector Tier = "collector" // StatsD aggregators
	TierWriter    Tier = "writer"    // Carbon writers
)

// DisplayName returns the component name used in recommendations.
func (t Tier) DisplayName() string {
	switch t {
	case TierCollector:
		return "StatsD"
	case TierWriter:
		return "Carbon"
	default:
		return string(t)
	}
}

// TierSweep records how one tier behaves as its instance count varies while
// the other tier is held at a single instance. All slices are indexed in
// parallel with Instances.
type TierSweep struct {
	Tier            Tier         `json:"tier"`
	Instances       []int        `json:"instances"`
	LoadPerInstance []float64    `json:"load_per_instance"` // metrics/s (collector) or writes/s (writer)
	CPURatio        []float64    `json:"cpu_ratio"`         // CPU per 10k metrics vs. baseline
	MemoryRatio     []float64    `json:"memory_ratio"`      // memory per unique metric vs. baseline
	TierRatio       []float64    `json:"tier_ratio"`        // tier-defining efficiency vs. baseline
	TierMetric      ResourceKind `json:"tier_metric"`       // network_io (collector) or disk_io (writer)
}

// ScalingSummary condenses both sweeps into ideal counts and advice.
type ScalingSummary struct {
	IdealCollectorInstances int     `json:"ideal_statsd_instances"`
	IdealWriterInstances    int     `json:"ideal_carbon_instances"`
	CollectorEfficiencyGain float64 `json:"statsd_efficiency_gain_pct"`
	WriterEfficiencyGain    float64 `json:"carbon_efficiency_gain_pct"`
	Recommendation          string  `json:"recommendation"`
}

// ScalingAnalysis is the result of an instance scaling exploration.
type ScalingAnalysis struct {
	Collector TierSweep      `json:"statsd_scaling"`
	Writer    TierSweep      `json:"carbon_scaling"`
	Analysis  ScalingSummary `json:"analysis"`
}
