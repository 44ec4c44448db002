// ABOUTME: Shared execution path for engine commands
// ABOUTME: Resolves inputs and backend, then maps the result to an exit code

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/graphite-capacity-planner/models"
)

// engineRun computes and prints a result, returning the process exit code.
type engineRun func(ctx context.Context, w io.Writer, b backend, wl *models.WorkloadParams, res *models.UserResources) int

// runEngineCommand resolves inputs for cmd and exits with run's code.
func runEngineCommand(cmd *cobra.Command, in *inputFlags, run engineRun) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	exitCode := func() int {
		wl, res, err := in.resolve(cmd)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			return 2
		}
		b, err := newBackend()
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			return 2
		}
		return run(ctx, os.Stdout, b, wl, res)
	}()

	cancel()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// formatJSON renders v as indented JSON.
func formatJSON(v interface{}) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}
