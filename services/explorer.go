// ABOUTME: Instance scaling explorer sweeping StatsD and Carbon instance counts
// ABOUTME: Finds the most efficient count per tier and builds a combined recommendation

package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/markalston/graphite-capacity-planner/models"
)

// ScalingExplorer re-runs the estimator across a range of instance counts
type ScalingExplorer struct {
	estimator *Estimator
}

// NewScalingExplorer creates an explorer backed by the given estimator
func NewScalingExplorer(estimator *Estimator) *ScalingExplorer {
	return &ScalingExplorer{estimator: estimator}
}

// sweepSpec describes how one tier is varied and measured.
type sweepSpec struct {
	tier       models.Tier
	tierMetric models.ResourceKind
	vary       func(r *models.UserResources, n int)
	load       func(f models.FlowMetrics) float64
}

var (
	collectorSweep = sweepSpec{
		tier:       models.TierCollector,
		tierMetric: models.ResourceNetworkIO,
		vary:       func(r *models.UserResources, n int) { r.StatsdInstances = n },
		load:       func(f models.FlowMetrics) float64 { return f.MetricsPerInstance },
	}
	writerSweep = sweepSpec{
		tier:       models.TierWriter,
		tierMetric: models.ResourceDiskIO,
		vary:       func(r *models.UserResources, n int) { r.CarbonInstances = n },
		load:       func(f models.FlowMetrics) float64 { return f.WritesPerInstance },
	}
)

// efficiency holds per-unit costs compared across sweep points.
type efficiency struct {
	cpuPer10k       float64
	memoryPerUnique float64
	tierMetric      float64
}

// Explore sweeps each tier over the configured range with the other tier held
// at one instance, and compares every point with the single-instance baseline.
func (x *ScalingExplorer) Explore(ctx context.Context, w *models.WorkloadParams, r *models.UserResources) (models.ScalingAnalysis, error) {
	wl := models.NormalizeWorkload(w)
	res := models.NormalizeResources(r)

	current := x.estimator.estimate(wl, res)
	if err := checkFinite(current); err != nil {
		return models.ScalingAnalysis{}, err
	}

	base := res
	base.StatsdInstances = 1
	base.CarbonInstances = 1

	var collector, writer models.TierSweep
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collector, err = x.sweep(ctx, wl, base, collectorSweep)
		return err
	})
	g.Go(func() error {
		var err error
		writer, err = x.sweep(ctx, wl, base, writerSweep)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.ScalingAnalysis{}, err
	}

	summary := models.ScalingSummary{}
	summary.IdealCollectorInstances, summary.CollectorEfficiencyGain = idealCount(collector)
	summary.IdealWriterInstances, summary.WriterEfficiencyGain = idealCount(writer)
	summary.Recommendation = x.recommend(current.Requirements, summary)

	return models.ScalingAnalysis{
		Collector: collector,
		Writer:    writer,
		Analysis:  summary,
	}, nil
}

// sweep varies one tier from the configured minimum to maximum and records
// load and efficiency ratios against the baseline.
func (x *ScalingExplorer) sweep(ctx context.Context, w models.WorkloadParams, base models.UserResources, spec sweepSpec) (models.TierSweep, error) {
	rng := x.estimator.tuning.Sweep
	baseline := x.measure(w, base, spec.tierMetric)

	out := models.TierSweep{Tier: spec.tier, TierMetric: spec.tierMetric}
	for n := rng.Min; n <= rng.Max; n++ {
		if err := ctx.Err(); err != nil {
			return models.TierSweep{}, err
		}

		res := base
		spec.vary(&res, n)
		est := x.estimator.estimate(w, res)
		if err := checkFinite(est); err != nil {
			return models.TierSweep{}, fmt.Errorf("%s sweep at %d instances: %w", spec.tier, n, err)
		}
		point := efficiencyOf(est, res, spec.tierMetric)

		out.Instances = append(out.Instances, n)
		out.LoadPerInstance = append(out.LoadPerInstance, spec.load(est.FlowMetrics))
		out.CPURatio = append(out.CPURatio, safeRatio(point.cpuPer10k, baseline.cpuPer10k))
		out.MemoryRatio = append(out.MemoryRatio, safeRatio(point.memoryPerUnique, baseline.memoryPerUnique))
		out.TierRatio = append(out.TierRatio, safeRatio(point.tierMetric, baseline.tierMetric))

		slog.Debug("Sweep point computed",
			"tier", spec.tier,
			"instances", n,
			"tier_ratio", out.TierRatio[len(out.TierRatio)-1])
	}

	return out, nil
}

func (x *ScalingExplorer) measure(w models.WorkloadParams, r models.UserResources, metric models.ResourceKind) efficiency {
	return efficiencyOf(x.estimator.estimate(w, r), r, metric)
}

// efficiencyOf converts utilization back into the unrounded requirement so
// ratios are not distorted by display rounding.
func efficiencyOf(est models.Estimate, r models.UserResources, metric models.ResourceKind) efficiency {
	req := est.Requirements
	f := est.FlowMetrics

	cpu := req.CPU.Utilization * r.CPU
	memory := req.Memory.Utilization * r.Memory

	tier := req.NetworkIO.Utilization * r.NetworkIO
	if metric == models.ResourceDiskIO {
		tier = req.DiskIO.Utilization * r.DiskIO
	}

	e := efficiency{cpuPer10k: cpu, memoryPerUnique: memory, tierMetric: tier}
	if f.TotalMetricsPerSecond > 0 {
		e.cpuPer10k = cpu / (f.TotalMetricsPerSecond / 10000)
	}
	if f.UniqueMetricsPerSecond > 0 {
		e.memoryPerUnique = memory / f.UniqueMetricsPerSecond
	}
	return e
}

// safeRatio compares v to a baseline; a non-positive baseline compares as equal.
func safeRatio(v, baseline float64) float64 {
	if baseline <= 0 {
		return 1
	}
	return v / baseline
}

// idealCount returns the first instance count with the lowest tier ratio and
// the percentage gain it brings over the baseline.
func idealCount(s models.TierSweep) (int, float64) {
	if len(s.Instances) == 0 {
		return 1, 0
	}

	best := 0
	for i, ratio := range s.TierRatio {
		if ratio < s.TierRatio[best] {
			best = i
		}
	}
	return s.Instances[best], (1 - s.TierRatio[best]) * 100
}

// recommend evaluates the current configuration and points at the tier whose
// defining resource is under the most pressure.
func (x *ScalingExplorer) recommend(req models.ResourceRequirements, s models.ScalingSummary) string {
	a := x.estimator.tuning.Advice

	utilization := 0.0
	for _, kind := range []models.ResourceKind{models.ResourceCPU, models.ResourceMemory, models.ResourceDiskIO, models.ResourceNetworkIO} {
		r, _ := req.Get(kind)
		utilization = max(utilization, r.Utilization)
	}

	tier, metric, ideal, gain := models.TierWriter, models.ResourceDiskIO, s.IdealWriterInstances, s.WriterEfficiencyGain
	if req.NetworkIO.Utilization >= req.DiskIO.Utilization {
		tier, metric, ideal, gain = models.TierCollector, models.ResourceNetworkIO, s.IdealCollectorInstances, s.CollectorEfficiencyGain
	}

	switch {
	case utilization <= a.Comfortable:
		return fmt.Sprintf("Current configuration is adequate. For future growth, %d %s instances would improve %s efficiency by %.0f%%.",
			ideal, tier.DisplayName(), metric.DisplayName(), gain)
	case utilization <= a.Approaching:
		return fmt.Sprintf("Plan to scale to %d %s instances before traffic grows; %s efficiency would improve by %.0f%%.",
			ideal, tier.DisplayName(), metric.DisplayName(), gain)
	case utilization <= a.Urgent:
		return fmt.Sprintf("Scale to %d %s instances soon: peak utilization is %.0f%% and %s efficiency would improve by %.0f%%.",
			ideal, tier.DisplayName(), utilization*100, metric.DisplayName(), gain)
	default:
		return fmt.Sprintf("Urgent: peak utilization is %.0f%%. Scale to at least %d StatsD and %d Carbon instances immediately.",
			utilization*100, max(2, s.IdealCollectorInstances), max(2, s.IdealWriterInstances))
	}
}

var defaultExplorer = NewScalingExplorer(defaultEstimator)

// ExploreInstanceScaling sweeps instance counts with the default coefficients.
func ExploreInstanceScaling(ctx context.Context, w *models.WorkloadParams, r *models.UserResources) (models.ScalingAnalysis, error) {
	return defaultExplorer.Explore(ctx, w, r)
}
