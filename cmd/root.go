// ABOUTME: Root command for the graphite-capacity CLI
// ABOUTME: Handles global flags and selects a local or remote engine

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/graphite-capacity-planner/logger"
)

var (
	apiURL     string
	jsonOutput bool
	remote     bool
	tuningFile string
	logLevel   string
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "graphite-capacity",
	Short: "Capacity planner for StatsD, Carbon, and Graphite-web pipelines",
	Long: `graphite-capacity estimates the CPU, memory, disk I/O, network, and storage
a StatsD -> Carbon -> Graphite-web metrics pipeline needs for a given workload,
flags bottlenecks, and explores how instance counts change efficiency.

Estimates run in-process by default. With --remote they are computed by a
graphite-capacity server (see the serve command).

Environment Variables:
  GRAPHITE_CAPACITY_API_URL  Server URL for --remote and health (default: http://localhost:8080)
  LOG_LEVEL                  Log level for CLI diagnostics (default: warn)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitCLI(logLevel)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Server URL (overrides GRAPHITE_CAPACITY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&remote, "remote", false, "Compute estimates on the server instead of in-process")
	rootCmd.PersistentFlags().StringVar(&tuningFile, "tuning", "", "YAML file overriding model coefficients (local mode)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "Log level: debug, info, warn, error")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("GRAPHITE_CAPACITY_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
