// ABOUTME: Capacity estimator for the StatsD/Carbon/Graphite-web pipeline
// ABOUTME: Normalizes input, derives flow counters, and runs the five resource estimators

package services

import (
	"errors"
	"fmt"

	"github.com/markalston/graphite-capacity-planner/models"
)

// ErrNonFiniteResult is returned when a derived quantity is NaN or infinite.
var ErrNonFiniteResult = errors.New("non-finite result")

// Estimator computes resource requirements from a workload and declared resources
type Estimator struct {
	tuning Tuning
}

// NewEstimator creates an estimator using the given coefficients
func NewEstimator(tuning Tuning) *Estimator {
	return &Estimator{tuning: tuning}
}

// Tuning returns the coefficients in use
func (e *Estimator) Tuning() Tuning {
	return e.tuning
}

// Estimate normalizes the inputs and computes every resource requirement.
// Nil records are treated as empty.
func (e *Estimator) Estimate(w *models.WorkloadParams, r *models.UserResources) (models.Estimate, error) {
	est := e.estimate(models.NormalizeWorkload(w), models.NormalizeResources(r))
	if err := checkFinite(est); err != nil {
		return models.Estimate{}, err
	}
	return est, nil
}

// estimate runs the pipeline on already normalized inputs.
func (e *Estimator) estimate(w models.WorkloadParams, r models.UserResources) models.Estimate {
	f := e.flowMetrics(w, r)

	return models.Estimate{
		Requirements: models.ResourceRequirements{
			CPU:       e.estimateCPU(w, r, f),
			Memory:    e.estimateMemory(w, r, f),
			DiskIO:    e.estimateDiskIO(r, f),
			NetworkIO: e.estimateNetworkIO(w, r, f),
			Storage:   e.estimateStorage(w, r, f),
		},
		FlowMetrics: f,
	}
}

// Analyze ranks the throughput-bound resources and produces advice using the
// estimator's advice thresholds.
func (e *Estimator) Analyze(req models.ResourceRequirements) models.BottleneckAnalysis {
	return models.AnalyzeBottleneck(req, e.tuning.Advice)
}

func checkFinite(est models.Estimate) error {
	for _, kind := range models.Kinds() {
		r, _ := est.Requirements.Get(kind)
		if !isFinite(r.Value) || !isFinite(r.Utilization) {
			return fmt.Errorf("%s estimate: %w", kind, ErrNonFiniteResult)
		}
	}

	f := est.FlowMetrics
	counters := []struct {
		name  string
		value float64
	}{
		{"total_metrics_per_second", f.TotalMetricsPerSecond},
		{"unique_metrics_per_second", f.UniqueMetricsPerSecond},
		{"writes_per_second", f.WritesPerSecond},
		{"metrics_per_instance", f.MetricsPerInstance},
		{"writes_per_instance", f.WritesPerInstance},
		{"storage_per_day", f.StoragePerDay},
		{"total_storage_required", f.TotalStorageRequired},
	}
	for _, c := range counters {
		if !isFinite(c.value) {
			return fmt.Errorf("flow metric %s: %w", c.name, ErrNonFiniteResult)
		}
	}
	return nil
}

var defaultEstimator = NewEstimator(DefaultTuning())

// Estimate computes requirements with the default coefficients.
func Estimate(w *models.WorkloadParams, r *models.UserResources) (models.Estimate, error) {
	return defaultEstimator.Estimate(w, r)
}
