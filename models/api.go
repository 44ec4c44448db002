// ABOUTME: Request and response bodies for the capacity planner HTTP API
// ABOUTME: Shared by the server handlers and the CLI client

package models

// EstimateRequest carries raw inputs; nil or partial records are normalized.
type EstimateRequest struct {
	Workload  *WorkloadParams `json:"workload,omitempty"`
	Resources *UserResources  `json:"resources,omitempty"`
}

// EstimateResponse is an Estimate plus the analyzer's summary strings.
type EstimateResponse struct {
	Requirements         ResourceRequirements `json:"requirements"`
	FlowMetrics          FlowMetrics          `json:"flow_metrics"`
	ConstrainingResource string               `json:"constraining_resource"`
	Bottleneck           string               `json:"bottleneck"`
	Recommendation       string               `json:"recommendation"`
}

// AnalysisRequest asks for bottleneck analysis of existing requirements.
type AnalysisRequest struct {
	Requirements ResourceRequirements `json:"requirements"`
}

// HealthResponse reports server status.
type HealthResponse struct {
	Status        string       `json:"status"`
	TuningSource  string       `json:"tuning_source"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	Cache         *CacheStatus `json:"cache,omitempty"`
}

// CacheStatus summarizes the result cache for health checks.
type CacheStatus struct {
	TTLSeconds int64   `json:"ttl_seconds"`
	Hits       uint64  `json:"hits"`
	Misses     uint64  `json:"misses"`
	HitRatio   float64 `json:"hit_ratio"`
	Entries    uint64  `json:"entries"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// NewEstimateResponse attaches analysis to an estimate.
func NewEstimateResponse(est Estimate, analysis BottleneckAnalysis) EstimateResponse {
	return EstimateResponse{
		Requirements:         est.Requirements,
		FlowMetrics:          est.FlowMetrics,
		ConstrainingResource: analysis.ConstrainingResource,
		Bottleneck:           analysis.Summary,
		Recommendation:       analysis.Recommendation,
	}
}
