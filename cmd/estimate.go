// ABOUTME: Estimate command for the graphite-capacity CLI
// ABOUTME: Prints resource requirements, throughput, and bottleneck advice

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/graphite-capacity-planner/internal/tui/dashboard"
	"github.com/markalston/graphite-capacity-planner/internal/tui/styles"
	"github.com/markalston/graphite-capacity-planner/models"
)

var (
	estimateInputs  inputFlags
	estimateExplain bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate pipeline resource requirements",
	Long: `Estimate the CPU, memory, disk I/O, network, and storage a pipeline needs
for a workload, compared against the declared resources.

Omitted inputs use defaults; invalid values are clamped rather than rejected.`,
	Example: `  graphite-capacity estimate --rps 1000 --metrics-per-request 10
  graphite-capacity estimate --profile prod.yaml --carbon 4 --json`,
	Run: func(cmd *cobra.Command, args []string) {
		runEngineCommand(cmd, &estimateInputs, runEstimate)
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	addInputFlags(estimateCmd, &estimateInputs)
	estimateCmd.Flags().BoolVar(&estimateExplain, "explain", false, "Show how each value was derived")
}

// runEstimate executes an estimate and returns exit code
func runEstimate(ctx context.Context, w io.Writer, b backend, wl *models.WorkloadParams, res *models.UserResources) int {
	resp, err := b.Estimate(ctx, wl, res)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(resp))
		return 0
	}

	fmt.Fprintln(w, formatEstimateHuman(resp, estimateExplain))
	return 0
}

// formatEstimateHuman formats an estimate for human readability
func formatEstimateHuman(resp *models.EstimateResponse, explain bool) string {
	f := resp.FlowMetrics

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Throughput"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Metrics:      %s/s (%s unique)\n", models.FormatNumber(f.TotalMetricsPerSecond), models.FormatNumber(f.UniqueMetricsPerSecond))
	fmt.Fprintf(&sb, "Writes:       %s/s\n", models.FormatNumber(f.WritesPerSecond))
	fmt.Fprintf(&sb, "Per StatsD:   %s metrics/s\n", models.FormatNumber(f.MetricsPerInstance))
	fmt.Fprintf(&sb, "Per Carbon:   %s writes/s\n", models.FormatNumber(f.WritesPerInstance))
	fmt.Fprintf(&sb, "Storage:      %.2f GB/day, %.2f GB retained\n\n", f.StoragePerDay, f.TotalStorageRequired)

	sb.WriteString(styles.Title.Render("Requirements"))
	sb.WriteString("\n")
	sb.WriteString(dashboard.RenderRequirements(resp))

	if explain {
		sb.WriteString("\n\n")
		sb.WriteString(styles.Title.Render("Details"))
		for _, kind := range models.Kinds() {
			r, _ := resp.Requirements.Get(kind)
			fmt.Fprintf(&sb, "\n%s: %s", kind.DisplayName(), r.Explanation)
		}
	}

	return sb.String()
}
