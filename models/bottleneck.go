// ABOUTME: Multi-resource bottleneck analysis for pipeline capacity estimates
// ABOUTME: Ranks compute and throughput resources by utilization and produces scaling advice

package models

import (
	"fmt"
	"sort"
)

// AdviceThresholds are the utilization boundaries used for bottleneck and
// scaling advice. Each value is a ratio (0.7 == 70%).
type AdviceThresholds struct {
	Bottleneck  float64 `json:"bottleneck" yaml:"bottleneck"`   // report a bottleneck above this
	Comfortable float64 `json:"comfortable" yaml:"comfortable"` // "room for growth" at or below this
	Approaching float64 `json:"approaching" yaml:"approaching"` // "approaching capacity" at or below this
	Urgent      float64 `json:"urgent" yaml:"urgent"`           // "scale soon" at or below this, "immediate" above
}

// DefaultAdviceThresholds returns the published 0.7 bottleneck and 0.5/0.7/0.9 advice tiers.
func DefaultAdviceThresholds() AdviceThresholds {
	return AdviceThresholds{
		Bottleneck:  0.7,
		Comfortable: 0.5,
		Approaching: 0.7,
		Urgent:      0.9,
	}
}

// ResourceUtilization is a ranked entry in a bottleneck analysis.
type ResourceUtilization struct {
	Kind           ResourceKind `json:"kind"`
	Name           string       `json:"name"`
	Utilization    float64      `json:"utilization"`
	Required       float64      `json:"required"`
	Unit           string       `json:"unit"`
	Status         Status       `json:"status"`
	IsConstraining bool         `json:"is_constraining"`
}

// BottleneckAnalysis is the ranked view of the throughput-bound resources.
type BottleneckAnalysis struct {
	Resources            []ResourceUtilization `json:"resources"`
	ConstrainingResource string                `json:"constraining_resource"`
	Summary              string                `json:"summary"`
	Recommendation       string                `json:"recommendation"`
}

// RankResourcesByUtilization sorts resources by utilization in descending order
// and marks the highest utilization resource as constraining.
func RankResourcesByUtilization(resources []ResourceUtilization) []ResourceUtilization {
	if len(resources) == 0 {
		return resources
	}

	ranked := make([]ResourceUtilization, len(resources))
	copy(ranked, resources)

	// Stable sort keeps report order for ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Utilization > ranked[j].Utilization
	})

	for i := range ranked {
		ranked[i].IsConstraining = (i == 0)
	}

	return ranked
}

// buildResourceList extracts the resources that can bottleneck throughput.
// Storage grows over time rather than limiting rate, so it is left out.
func buildResourceList(req ResourceRequirements) []ResourceUtilization {
	kinds := []ResourceKind{ResourceCPU, ResourceMemory, ResourceDiskIO, ResourceNetworkIO}
	resources := make([]ResourceUtilization, 0, len(kinds))
	for _, kind := range kinds {
		r, _ := req.Get(kind)
		resources = append(resources, ResourceUtilization{
			Kind:        kind,
			Name:        kind.DisplayName(),
			Utilization: r.Utilization,
			Required:    r.Value,
			Unit:        r.Unit,
			Status:      r.Status,
		})
	}
	return resources
}

// AnalyzeBottleneck ranks resources and attaches summary and advice using t.
func AnalyzeBottleneck(req ResourceRequirements, t AdviceThresholds) BottleneckAnalysis {
	ranked := RankResourcesByUtilization(buildResourceList(req))

	return BottleneckAnalysis{
		Resources:            ranked,
		ConstrainingResource: ranked[0].Name,
		Summary:              bottleneckSummary(ranked[0], t),
		Recommendation:       scalingAdvice(ranked[0], t),
	}
}

// IdentifyBottleneck names the dominant constraint among CPU, Memory, Disk I/O
// and Network I/O, or reports that none is significant.
func IdentifyBottleneck(req ResourceRequirements) string {
	return AnalyzeBottleneck(req, DefaultAdviceThresholds()).Summary
}

// RecommendScaling maps the highest utilization to one of four tiers of advice.
func RecommendScaling(req ResourceRequirements) string {
	return AnalyzeBottleneck(req, DefaultAdviceThresholds()).Recommendation
}

func bottleneckSummary(top ResourceUtilization, t AdviceThresholds) string {
	if top.Utilization > t.Bottleneck {
		return fmt.Sprintf("%s is the primary bottleneck at %.0f%% utilization", top.Name, top.Utilization*100)
	}
	return "No significant bottleneck detected"
}

func scalingAdvice(top ResourceUtilization, t AdviceThresholds) string {
	switch {
	case top.Utilization <= t.Comfortable:
		return "Current resources are adequate with room for growth."
	case top.Utilization <= t.Approaching:
		return "Current resources are adequate but approaching capacity. Monitor utilization as traffic grows."
	case top.Utilization <= t.Urgent:
		return fmt.Sprintf("Consider scaling soon: %s is at %.0f%% utilization.", top.Name, top.Utilization*100)
	default:
		return fmt.Sprintf("Immediate scaling recommended: %s is at %.0f%% utilization.", top.Name, top.Utilization*100)
	}
}
