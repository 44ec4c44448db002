// ABOUTME: Estimated resource requirements and derived flow counters
// ABOUTME: One Resource per kind with value, status, utilization, and explanation

package models

// Status classifies a utilization ratio.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// ResourceKind identifies one of the five estimated resources.
type ResourceKind string

const (
	ResourceCPU       ResourceKind = "cpu"
	ResourceMemory    ResourceKind = "memory"
	ResourceDiskIO    ResourceKind = "disk_io"
	ResourceNetworkIO ResourceKind = "network_io"
	ResourceStorage   ResourceKind = "storage"
)

// DisplayName returns the human-readable resource name used in reports.
func (k ResourceKind) DisplayName() string {
	switch k {
	case ResourceCPU:
		return "CPU"
	case ResourceMemory:
		return "Memory"
	case ResourceDiskIO:
		return "Disk I/O"
	case ResourceNetworkIO:
		return "Network I/O"
	case ResourceStorage:
		return "Storage"
	default:
		return string(k)
	}
}

// Resource is the estimate for a single resource kind.
type Resource struct {
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	Status      Status  `json:"status"`
	Utilization float64 `json:"utilization"` // required/available, may exceed 1
	Explanation string  `json:"explanation"`
}

// ResourceRequirements holds one Resource per kind.
type ResourceRequirements struct {
	CPU       Resource `json:"cpu"`
	Memory    Resource `json:"memory"`
	DiskIO    Resource `json:"disk_io"`
	NetworkIO Resource `json:"network_io"`
	Storage   Resource `json:"storage"`
}

// Get returns the resource for kind and whether kind is known.
func (r ResourceRequirements) Get(kind ResourceKind) (Resource, bool) {
	switch kind {
	case ResourceCPU:
		return r.CPU, true
	case ResourceMemory:
		return r.Memory, true
	case ResourceDiskIO:
		return r.DiskIO, true
	case ResourceNetworkIO:
		return r.NetworkIO, true
	case ResourceStorage:
		return r.Storage, true
	}
	return Resource{}, false
}

// Kinds lists every resource kind in report order.
func Kinds() []ResourceKind {
	return []ResourceKind{ResourceCPU, ResourceMemory, ResourceDiskIO, ResourceNetworkIO, ResourceStorage}
}

// FlowMetrics are throughput counters derived from a normalized workload.
type FlowMetrics struct {
	TotalMetricsPerSecond  float64 `json:"total_metrics_per_second"`
	UniqueMetricsPerSecond float64 `json:"unique_metrics_per_second"`
	WritesPerSecond        float64 `json:"writes_per_second"`
	MetricsPerInstance     float64 `json:"metrics_per_instance"`
	WritesPerInstance      float64 `json:"writes_per_instance"`
	StoragePerDay          float64 `json:"storage_per_day"`        // GB
	TotalStorageRequired   float64 `json:"total_storage_required"` // GB over the retention period
}

// Estimate is the result of a single estimation call.
type Estimate struct {
	Requirements ResourceRequirements `json:"requirements"`
	FlowMetrics  FlowMetrics          `json:"flow_metrics"`
}
