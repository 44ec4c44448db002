// ABOUTME: Input records for capacity estimation (workload profile and declared resources)
// ABOUTME: Normalization clamps and defaults raw input so every estimate sees valid values

package models

import (
	"encoding/json"
	"math"
)

// Defaults applied when an input field is absent, zero, or not a finite number.
const (
	DefaultUniqueMetricsRatio    = 0.2
	DefaultCalculationComplexity = 1
	DefaultFlushIntervalSeconds  = 10
	DefaultRetentionPeriodDays   = 1

	DefaultCPUCores  = 1
	DefaultMemoryGB  = 1
	DefaultDiskIO    = 10
	DefaultNetworkIO = 10
	DefaultStorageGB = 10
	DefaultInstances = 1

	minCPUCores = 0.1
	minMemoryGB = 0.1
)

// WorkloadParams describes the metrics traffic the pipeline must absorb.
type WorkloadParams struct {
	RequestsPerSecond     float64 `json:"requests_per_second" yaml:"requests_per_second"`
	MetricsPerRequest     float64 `json:"metrics_per_request" yaml:"metrics_per_request"`
	UniqueMetricsRatio    float64 `json:"unique_metrics_ratio" yaml:"unique_metrics_ratio"`     // 0..1
	CalculationComplexity float64 `json:"calculation_complexity" yaml:"calculation_complexity"` // >= 1
	FlushIntervalSeconds  float64 `json:"flush_interval_seconds" yaml:"flush_interval_seconds"`
	RetentionPeriodDays   float64 `json:"retention_period_days" yaml:"retention_period_days"`
}

// UserResources describes the capacity declared as available to the pipeline.
type UserResources struct {
	CPU             float64 `json:"cpu" yaml:"cpu"`               // cores
	Memory          float64 `json:"memory" yaml:"memory"`         // GB
	DiskIO          float64 `json:"disk_io" yaml:"disk_io"`       // MB/s
	NetworkIO       float64 `json:"network_io" yaml:"network_io"` // Mbps
	Storage         float64 `json:"storage" yaml:"storage"`       // GB
	StatsdInstances int     `json:"statsd_instances" yaml:"statsd_instances"`
	CarbonInstances int     `json:"carbon_instances" yaml:"carbon_instances"`
}

// NormalizeWorkload returns a fully populated workload. A nil record is
// treated as empty.
func NormalizeWorkload(w *WorkloadParams) WorkloadParams {
	var in WorkloadParams
	if w != nil {
		in = *w
	}

	return WorkloadParams{
		RequestsPerSecond:     math.Max(0, orDefault(in.RequestsPerSecond, 0)),
		MetricsPerRequest:     math.Max(0, orDefault(in.MetricsPerRequest, 0)),
		UniqueMetricsRatio:    math.Min(1, math.Max(0, orDefault(in.UniqueMetricsRatio, DefaultUniqueMetricsRatio))),
		CalculationComplexity: math.Max(1, orDefault(in.CalculationComplexity, DefaultCalculationComplexity)),
		FlushIntervalSeconds:  math.Max(1, orDefault(in.FlushIntervalSeconds, DefaultFlushIntervalSeconds)),
		RetentionPeriodDays:   math.Max(1, orDefault(in.RetentionPeriodDays, DefaultRetentionPeriodDays)),
	}
}

// NormalizeResources returns a fully populated resource declaration. A nil
// record is treated as empty.
func NormalizeResources(r *UserResources) UserResources {
	var in UserResources
	if r != nil {
		in = *r
	}

	return UserResources{
		CPU:             math.Max(minCPUCores, orDefault(in.CPU, DefaultCPUCores)),
		Memory:          math.Max(minMemoryGB, orDefault(in.Memory, DefaultMemoryGB)),
		DiskIO:          math.Max(1, orDefault(in.DiskIO, DefaultDiskIO)),
		NetworkIO:       math.Max(1, orDefault(in.NetworkIO, DefaultNetworkIO)),
		Storage:         math.Max(1, orDefault(in.Storage, DefaultStorageGB)),
		StatsdInstances: max(1, orDefaultInt(in.StatsdInstances, DefaultInstances)),
		CarbonInstances: max(1, orDefaultInt(in.CarbonInstances, DefaultInstances)),
	}
}

// UnmarshalJSON accepts fractional instance counts and rounds them up, so a
// body such as {"statsd_instances": 2.5} is normalized instead of rejected.
func (r *UserResources) UnmarshalJSON(data []byte) error {
	type plain UserResources
	aux := struct {
		*plain
		StatsdInstances *float64 `json:"statsd_instances"`
		CarbonInstances *float64 `json:"carbon_instances"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.StatsdInstances != nil {
		r.StatsdInstances = instanceCount(*aux.StatsdInstances)
	}
	if aux.CarbonInstances != nil {
		r.CarbonInstances = instanceCount(*aux.CarbonInstances)
	}
	return nil
}

// maxInstances bounds decoded instance counts so the int conversion cannot overflow.
const maxInstances = 1 << 20

func instanceCount(v float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= maxInstances:
		return maxInstances
	}
	return int(math.Ceil(v))
}

// orDefault treats zero and non-finite values as absent.
func orDefault(v, def float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// WorkloadOption sets a single workload field.
type WorkloadOption func(*WorkloadParams)

func WithRequestsPerSecond(v float64) WorkloadOption {
	return func(w *WorkloadParams) { w.RequestsPerSecond = v }
}

func WithMetricsPerRequest(v float64) WorkloadOption {
	return func(w *WorkloadParams) { w.MetricsPerRequest = v }
}

func WithUniqueMetricsRatio(v float64) WorkloadOption {
	return func(w *WorkloadParams) { w.UniqueMetricsRatio = v }
}

func WithCalculationComplexity(v float64) WorkloadOption {
	return func(w *WorkloadParams) { w.CalculationComplexity = v }
}

func WithFlushInterval(seconds float64) WorkloadOption {
	return func(w *WorkloadParams) { w.FlushIntervalSeconds = seconds }
}

func WithRetentionDays(days float64) WorkloadOption {
	return func(w *WorkloadParams) { w.RetentionPeriodDays = days }
}

// With returns a normalized copy of w with the options applied.
func (w WorkloadParams) With(opts ...WorkloadOption) WorkloadParams {
	out := w
	for _, opt := range opts {
		opt(&out)
	}
	return NormalizeWorkload(&out)
}

// ResourceOption sets a single resource field.
type ResourceOption func(*UserResources)

func WithCPU(cores float64) ResourceOption {
	return func(r *UserResources) { r.CPU = cores }
}

func WithMemory(gb float64) ResourceOption {
	return func(r *UserResources) { r.Memory = gb }
}

func WithDiskIO(mbps float64) ResourceOption {
	return func(r *UserResources) { r.DiskIO = mbps }
}

func WithNetworkIO(mbps float64) ResourceOption {
	return func(r *UserResources) { r.NetworkIO = mbps }
}

func WithStorage(gb float64) ResourceOption {
	return func(r *UserResources) { r.Storage = gb }
}

func WithStatsdInstances(n int) ResourceOption {
	return func(r *UserResources) { r.StatsdInstances = n }
}

func WithCarbonInstances(n int) ResourceOption {
	return func(r *UserResources) { r.CarbonInstances = n }
}

// With returns a normalized copy of r with the options applied.
func (r UserResources) With(opts ...ResourceOption) UserResources {
	out := r
	for _, opt := range opts {
		opt(&out)
	}
	return NormalizeResources(&out)
}
