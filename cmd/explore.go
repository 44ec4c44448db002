// ABOUTME: Explore command for the graphite-capacity CLI
// ABOUTME: Sweeps StatsD and Carbon instance counts and recommends ideal counts

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/markalston/graphite-capacity-planner/internal/tui/dashboard"
	"github.com/markalston/graphite-capacity-planner/models"
)

var exploreInputs inputFlags

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore StatsD and Carbon instance scaling",
	Long: `Vary the StatsD and Carbon instance counts independently and report how
per-instance efficiency changes relative to a single instance of each.`,
	Run: func(cmd *cobra.Command, args []string) {
		runEngineCommand(cmd, &exploreInputs, runExplore)
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	addInputFlags(exploreCmd, &exploreInputs)
}

// runExplore executes the scaling exploration and returns exit code
func runExplore(ctx context.Context, w io.Writer, b backend, wl *models.WorkloadParams, res *models.UserResources) int {
	analysis, err := b.Scaling(ctx, wl, res)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatJSON(analysis))
	} else {
		fmt.Fprintln(w, dashboard.RenderScaling(analysis))
	}
	return 0
}
