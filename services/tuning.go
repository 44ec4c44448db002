// ABOUTME: Named heuristic coefficients for the capacity estimation model
// ABOUTME: Defaults reproduce the published model; overrides are validated before use

package services

import (
	"fmt"
	"math"

	"github.com/markalston/graphite-capacity-planner/models"
)

const (
	bytesPerMB    = 1024 * 1024
	bytesPerGB    = 1024 * 1024 * 1024
	secondsPerDay = 86400
)

// TierTuning holds the per-tier CPU curve and coordination overhead.
type TierTuning struct {
	UnitLoad        float64 `json:"unit_load" yaml:"unit_load"`                 // events/s handled by one unit of the CPU curve
	CPUFactor       float64 `json:"cpu_factor" yaml:"cpu_factor"`               // cores per unit load
	CPUOverheadRate float64 `json:"cpu_overhead_rate" yaml:"cpu_overhead_rate"` // per additional instance
	FixedMemoryGB   float64 `json:"fixed_memory_gb" yaml:"fixed_memory_gb"`     // per instance
}

// VisualizationTuning covers the fixed query/render tier.
type VisualizationTuning struct {
	ComplexityUnit     float64 `json:"complexity_unit" yaml:"complexity_unit"`
	ComplexityScale    float64 `json:"complexity_scale" yaml:"complexity_scale"`
	CPUFactor          float64 `json:"cpu_factor" yaml:"cpu_factor"`
	BaseMemoryGB       float64 `json:"base_memory_gb" yaml:"base_memory_gb"`
	MemoryFactorGB     float64 `json:"memory_factor_gb" yaml:"memory_factor_gb"`
	UniqueMetricsScale float64 `json:"unique_metrics_scale" yaml:"unique_metrics_scale"`
}

// MemoryTuning covers collector residency and writer cache sizing.
type MemoryTuning struct {
	BytesPerMetric         float64 `json:"bytes_per_metric" yaml:"bytes_per_metric"`
	CollectorFactor        float64 `json:"collector_factor" yaml:"collector_factor"`
	WriterResidencySeconds float64 `json:"writer_residency_seconds" yaml:"writer_residency_seconds"`
	DistributionFactor     float64 `json:"distribution_factor" yaml:"distribution_factor"`
	PlateauFactor          float64 `json:"plateau_factor" yaml:"plateau_factor"`
	WriteLoadUnit          float64 `json:"write_load_unit" yaml:"write_load_unit"`
	WriteLoadSlope         float64 `json:"write_load_slope" yaml:"write_load_slope"`
	WriteLoadCap           float64 `json:"write_load_cap" yaml:"write_load_cap"`
}

// DiskTuning covers writer-side random IO.
type DiskTuning struct {
	IOPSPerWrite     float64 `json:"iops_per_write" yaml:"iops_per_write"`
	RandomIODivisor  float64 `json:"random_io_divisor" yaml:"random_io_divisor"`
	RandomIOSlope    float64 `json:"random_io_slope" yaml:"random_io_slope"`
	OverheadRate     float64 `json:"overhead_rate" yaml:"overhead_rate"`
	BlockBytes       float64 `json:"block_bytes" yaml:"block_bytes"`
	MetadataOverhead float64 `json:"metadata_overhead" yaml:"metadata_overhead"`
}

// NetworkTuning covers the three traffic legs.
type NetworkTuning struct {
	BytesPerMetric        float64 `json:"bytes_per_metric" yaml:"bytes_per_metric"`
	ClientOverheadRate    float64 `json:"client_overhead_rate" yaml:"client_overhead_rate"`
	InterTierFraction     float64 `json:"inter_tier_fraction" yaml:"inter_tier_fraction"`
	InterTierOverheadRate float64 `json:"inter_tier_overhead_rate" yaml:"inter_tier_overhead_rate"`
	QueryFraction         float64 `json:"query_fraction" yaml:"query_fraction"`
}

// StorageTuning covers on-disk retention.
type StorageTuning struct {
	ResolutionSeconds float64 `json:"resolution_seconds" yaml:"resolution_seconds"`
	BytesPerPoint     float64 `json:"bytes_per_point" yaml:"bytes_per_point"`
}

// Floors are the minimum reported requirement per resource.
type Floors struct {
	CPUCores        float64 `json:"cpu_cores" yaml:"cpu_cores"`
	MemoryGB        float64 `json:"memory_gb" yaml:"memory_gb"`
	DiskMBps        float64 `json:"disk_mbps" yaml:"disk_mbps"`
	NetworkMbps     float64 `json:"network_mbps" yaml:"network_mbps"`
	StorageGBPerDay float64 `json:"storage_gb_per_day" yaml:"storage_gb_per_day"`
}

// StatusThresholds drive the healthy/warning/critical classifier.
type StatusThresholds struct {
	Warning  float64 `json:"warning" yaml:"warning"`
	Critical float64 `json:"critical" yaml:"critical"`
}

// SweepRange bounds the instance counts explored per tier.
type SweepRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Tuning is the complete set of heuristic coefficients.
type Tuning struct {
	Collector     TierTuning              `json:"collector" yaml:"collector"`
	Writer        TierTuning              `json:"writer" yaml:"writer"`
	Visualization VisualizationTuning     `json:"visualization" yaml:"visualization"`
	Memory        MemoryTuning            `json:"memory" yaml:"memory"`
	Disk          DiskTuning              `json:"disk" yaml:"disk"`
	Network       NetworkTuning           `json:"network" yaml:"network"`
	Storage       StorageTuning           `json:"storage" yaml:"storage"`
	Floors        Floors                  `json:"floors" yaml:"floors"`
	Status        StatusThresholds        `json:"status" yaml:"status"`
	Advice        models.AdviceThresholds `json:"advice" yaml:"advice"`
	Sweep         SweepRange              `json:"sweep" yaml:"sweep"`
}

// DefaultTuning returns the published model coefficients.
func DefaultTuning() Tuning {
	return Tuning{
		Collector: TierTuning{
			UnitLoad:        10000,
			CPUFactor:       0.6,
			CPUOverheadRate: 0.015,
			FixedMemoryGB:   0.05,
		},
		Writer: TierTuning{
			UnitLoad:        5000,
			CPUFactor:       1.2,
			CPUOverheadRate: 0.01,
			FixedMemoryGB:   0.075,
		},
		Visualization: VisualizationTuning{
			ComplexityUnit:     5,
			ComplexityScale:    10,
			CPUFactor:          0.4,
			BaseMemoryGB:       0.5,
			MemoryFactorGB:     2,
			UniqueMetricsScale: 100000,
		},
		Memory: MemoryTuning{
			BytesPerMetric:         150,
			CollectorFactor:        1.2,
			WriterResidencySeconds: 10,
			DistributionFactor:     0.85,
			PlateauFactor:          0.4,
			WriteLoadUnit:          10000,
			WriteLoadSlope:         0.2,
			WriteLoadCap:           1.2,
		},
		Disk: DiskTuning{
			IOPSPerWrite:     2.5,
			RandomIODivisor:  6000,
			RandomIOSlope:    0.4,
			OverheadRate:     0.005,
			BlockBytes:       4096,
			MetadataOverhead: 0.15,
		},
		Network: NetworkTuning{
			BytesPerMetric:        50,
			ClientOverheadRate:    0.01,
			InterTierFraction:     0.3,
			InterTierOverheadRate: 0.005,
			QueryFraction:         0.05,
		},
		Storage: StorageTuning{
			ResolutionSeconds: 10,
			BytesPerPoint:     12,
		},
		Floors: Floors{
			CPUCores:        0.1,
			MemoryGB:        0.5,
			DiskMBps:        0.1,
			NetworkMbps:     0.1,
			StorageGBPerDay: 0.1,
		},
		Status: StatusThresholds{
			Warning:  0.7,
			Critical: 0.9,
		},
		Advice: models.DefaultAdviceThresholds(),
		Sweep:  SweepRange{Min: 1, Max: 8},
	}
}

// maxSweepInstances bounds the explorer's work per tier.
const maxSweepInstances = 64

// Validate rejects coefficients that would make estimates non-finite or
// meaningless.
func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"collector.unit_load", t.Collector.UnitLoad},
		{"writer.unit_load", t.Writer.UnitLoad},
		{"visualization.complexity_unit", t.Visualization.ComplexityUnit},
		{"visualization.complexity_scale", t.Visualization.ComplexityScale},
		{"visualization.unique_metrics_scale", t.Visualization.UniqueMetricsScale},
		{"memory.write_load_unit", t.Memory.WriteLoadUnit},
		{"memory.write_load_cap", t.Memory.WriteLoadCap},
		{"disk.random_io_divisor", t.Disk.RandomIODivisor},
		{"disk.block_bytes", t.Disk.BlockBytes},
		{"storage.resolution_seconds", t.Storage.ResolutionSeconds},
		{"floors.cpu_cores", t.Floors.CPUCores},
		{"floors.memory_gb", t.Floors.MemoryGB},
		{"floors.disk_mbps", t.Floors.DiskMBps},
		{"floors.network_mbps", t.Floors.NetworkMbps},
		{"floors.storage_gb_per_day", t.Floors.StorageGBPerDay},
	}
	for _, f := range positive {
		if !isFinite(f.value) || f.value <= 0 {
			return fmt.Errorf("tuning: %s must be finite and > 0, got %v", f.name, f.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"collector.cpu_factor", t.Collector.CPUFactor},
		{"collector.cpu_overhead_rate", t.Collector.CPUOverheadRate},
		{"collector.fixed_memory_gb", t.Collector.FixedMemoryGB},
		{"writer.cpu_factor", t.Writer.CPUFactor},
		{"writer.cpu_overhead_rate", t.Writer.CPUOverheadRate},
		{"writer.fixed_memory_gb", t.Writer.FixedMemoryGB},
		{"visualization.cpu_factor", t.Visualization.CPUFactor},
		{"visualization.base_memory_gb", t.Visualization.BaseMemoryGB},
		{"visualization.memory_factor_gb", t.Visualization.MemoryFactorGB},
		{"memory.bytes_per_metric", t.Memory.BytesPerMetric},
		{"memory.collector_factor", t.Memory.CollectorFactor},
		{"memory.writer_residency_seconds", t.Memory.WriterResidencySeconds},
		{"memory.distribution_factor", t.Memory.DistributionFactor},
		{"memory.plateau_factor", t.Memory.PlateauFactor},
		{"memory.write_load_slope", t.Memory.WriteLoadSlope},
		{"disk.iops_per_write", t.Disk.IOPSPerWrite},
		{"disk.random_io_slope", t.Disk.RandomIOSlope},
		{"disk.overhead_rate", t.Disk.OverheadRate},
		{"disk.metadata_overhead", t.Disk.MetadataOverhead},
		{"network.bytes_per_metric", t.Network.BytesPerMetric},
		{"network.client_overhead_rate", t.Network.ClientOverheadRate},
		{"network.inter_tier_fraction", t.Network.InterTierFraction},
		{"network.inter_tier_overhead_rate", t.Network.InterTierOverheadRate},
		{"network.query_fraction", t.Network.QueryFraction},
		{"storage.bytes_per_point", t.Storage.BytesPerPoint},
	}
	for _, f := range nonNegative {
		if !isFinite(f.value) || f.value < 0 {
			return fmt.Errorf("tuning: %s must be finite and >= 0, got %v", f.name, f.value)
		}
	}

	if t.Status.Warning <= 0 || t.Status.Critical < t.Status.Warning {
		return fmt.Errorf("tuning: status thresholds must satisfy 0 < warning <= critical, got %v/%v",
			t.Status.Warning, t.Status.Critical)
	}

	a := t.Advice
	if a.Comfortable <= 0 || a.Approaching < a.Comfortable || a.Urgent < a.Approaching || a.Bottleneck <= 0 {
		return fmt.Errorf("tuning: advice thresholds must satisfy 0 < comfortable <= approaching <= urgent and bottleneck > 0")
	}

	if t.Sweep.Min < 1 || t.Sweep.Max < t.Sweep.Min || t.Sweep.Max > maxSweepInstances {
		return fmt.Errorf("tuning: sweep range must satisfy 1 <= min <= max <= %d, got %d..%d",
			maxSweepInstances, t.Sweep.Min, t.Sweep.Max)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
