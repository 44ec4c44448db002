// ABOUTME: Entry point for the graphite-capacity CLI and API server
// ABOUTME: Estimates resources for StatsD, Carbon, and Graphite-web pipelines

package main

import (
	"fmt"
	"os"

	"github.com/markalston/graphite-capacity-planner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
