// ABOUTME: Shared workload and resource flags for engine commands
// ABOUTME: Overlays explicitly set flags on top of an optional YAML profile

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markalston/graphite-capacity-planner/config"
	"github.com/markalston/graphite-capacity-planner/models"
)

// inputFlags holds the raw flag values for one command.
type inputFlags struct {
	profile string

	rps        float64
	mpr        float64
	unique     float64
	complexity float64
	flush      float64
	retention  float64

	cpu       float64
	memory    float64
	diskIO    float64
	networkIO float64
	storage   float64
	statsd    int
	carbon    int
}

// addInputFlags registers the workload and resource flags on cmd.
func addInputFlags(cmd *cobra.Command, in *inputFlags) {
	f := cmd.Flags()
	f.StringVar(&in.profile, "profile", "", "YAML profile with workload and resources")

	f.Float64Var(&in.rps, "rps", 0, "Requests per second")
	f.Float64Var(&in.mpr, "metrics-per-request", 0, "Metrics emitted per request")
	f.Float64Var(&in.unique, "unique-ratio", 0, "Share of metrics that are unique series, 0..1 (default 0.2)")
	f.Float64Var(&in.complexity, "complexity", 0, "Query complexity, >= 1 (default 1)")
	f.Float64Var(&in.flush, "flush-interval", 0, "StatsD flush interval in seconds (default 10)")
	f.Float64Var(&in.retention, "retention-days", 0, "Retention period in days (default 1)")

	f.Float64Var(&in.cpu, "cpu", 0, "Available CPU cores (default 1)")
	f.Float64Var(&in.memory, "memory", 0, "Available memory in GB (default 1)")
	f.Float64Var(&in.diskIO, "disk-io", 0, "Available disk throughput in MB/s (default 10)")
	f.Float64Var(&in.networkIO, "network-io", 0, "Available network bandwidth in Mbps (default 10)")
	f.Float64Var(&in.storage, "storage", 0, "Available storage in GB (default 10)")
	f.IntVar(&in.statsd, "statsd", 0, "StatsD instance count (default 1)")
	f.IntVar(&in.carbon, "carbon", 0, "Carbon instance count (default 1)")
}

// resolve loads the profile, if any, and applies flags the user set.
// Values are returned raw; the engine normalizes them.
func (in *inputFlags) resolve(cmd *cobra.Command) (*models.WorkloadParams, *models.UserResources, error) {
	var wl models.WorkloadParams
	var res models.UserResources

	if in.profile != "" {
		p, err := config.LoadProfile(in.profile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading profile: %w", err)
		}
		wl, res = p.Workload, p.Resources
	}

	flags := cmd.Flags()
	floats := []struct {
		name string
		dst  *float64
		val  float64
	}{
		{"rps", &wl.RequestsPerSecond, in.rps},
		{"metrics-per-request", &wl.MetricsPerRequest, in.mpr},
		{"unique-ratio", &wl.UniqueMetricsRatio, in.unique},
		{"complexity", &wl.CalculationComplexity, in.complexity},
		{"flush-interval", &wl.FlushIntervalSeconds, in.flush},
		{"retention-days", &wl.RetentionPeriodDays, in.retention},
		{"cpu", &res.CPU, in.cpu},
		{"memory", &res.Memory, in.memory},
		{"disk-io", &res.DiskIO, in.diskIO},
		{"network-io", &res.NetworkIO, in.networkIO},
		{"storage", &res.Storage, in.storage},
	}
	for _, f := range floats {
		if flags.Changed(f.name) {
			*f.dst = f.val
		}
	}
	if flags.Changed("statsd") {
		res.StatsdInstances = in.statsd
	}
	if flags.Changed("carbon") {
		res.CarbonInstances = in.carbon
	}

	return &wl, &res, nil
}
