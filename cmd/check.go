// ABOUTME: Check command for the graphite-capacity CLI
// ABOUTME: Fails when any resource is critical or above a utilization threshold

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/markalston/graphite-capacity-planner/models"
)

var (
	checkInputs    inputFlags
	checkThreshold float64
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a workload against declared resources",
	Long: `Estimate requirements and exit non-zero if the declared resources are not enough.

Exit codes:
  0 - All resources within capacity
  1 - One or more resources critical or above --threshold
  2 - Error (invalid input, unreachable server, computation failure)`,
	Run: func(cmd *cobra.Command, args []string) {
		runEngineCommand(cmd, &checkInputs, runCheck)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addInputFlags(checkCmd, &checkInputs)
	checkCmd.Flags().Float64Var(&checkThreshold, "threshold", 0, "Also fail when any utilization exceeds this percentage (0 disables)")
}

// checkResult represents the result of a single resource check
type checkResult struct {
	name      string
	value     float64 // utilization percent
	threshold float64
	status    models.Status
	passed    bool
}

// runCheck executes the resource checks and returns exit code
func runCheck(ctx context.Context, w io.Writer, b backend, wl *models.WorkloadParams, res *models.UserResources) int {
	if err := validateThreshold(checkThreshold); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	resp, err := b.Estimate(ctx, wl, res)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	results := performChecks(resp.Requirements, checkThreshold)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results, resp.Bottleneck))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results, resp.Bottleneck))
	}

	if _, failed := countResults(results); failed > 0 {
		return 1
	}
	return 0
}

// validateThreshold ensures the threshold is a usable percentage
func validateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("--threshold must be between 0 and 100")
	}
	return nil
}

// performChecks evaluates every resource. A threshold of 0 checks status only.
func performChecks(req models.ResourceRequirements, threshold float64) []checkResult {
	results := make([]checkResult, 0, len(models.Kinds()))
	for _, kind := range models.Kinds() {
		r, _ := req.Get(kind)
		pct := r.Utilization * 100
		passed := r.Status != models.StatusCritical
		if threshold > 0 && pct > threshold {
			passed = false
		}
		results = append(results, checkResult{
			name:      kind.DisplayName(),
			value:     pct,
			threshold: threshold,
			status:    r.Status,
			passed:    passed,
		})
	}
	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult, bottleneck string) string {
	var sb strings.Builder

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		fmt.Fprintf(&sb, "%s %s: %.0f%% (%s)", symbol, r.name, r.value, r.status)
		if r.threshold > 0 {
			fmt.Fprintf(&sb, " (threshold: %.0f%%)", r.threshold)
		}
		sb.WriteString("\n")
	}

	if bottleneck != "" {
		fmt.Fprintf(&sb, "\n%s\n", bottleneck)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		fmt.Fprintf(&sb, "\nFAILED: %d resource(s) over capacity", failed)
	} else {
		fmt.Fprintf(&sb, "\nPASSED: All %d resource(s) within capacity", passed)
	}

	return sb.String()
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult, bottleneck string) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		check := map[string]interface{}{
			"name":   r.name,
			"value":  r.value,
			"unit":   "%",
			"status": r.status,
			"passed": r.passed,
		}
		if r.threshold > 0 {
			check["threshold"] = r.threshold
		}
		checks[i] = check
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status":     status,
		"bottleneck": bottleneck,
		"checks":     checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
