// ABOUTME: Health command for the graphite-capacity CLI
// ABOUTME: Checks server connectivity, tuning source, and cache statistics

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/markalston/graphite-capacity-planner/internal/client"
	"github.com/markalston/graphite-capacity-planner/models"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server connectivity",
	Long:  `Check connectivity to a graphite-capacity server and report its status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			cancel()
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *models.HealthResponse) string {
	started := time.Now().Add(-time.Duration(resp.UptimeSeconds) * time.Second)

	out := fmt.Sprintf(`Server:       %s
Status:       %s
Tuning:       %s
Started:      %s`, url, resp.Status, resp.TuningSource, humanize.Time(started))

	if resp.Cache == nil {
		return out + "\nCache:        disabled"
	}
	return out + fmt.Sprintf(`
Cache TTL:    %ds
Cache hits:   %s (%.0f%%)
Cache size:   %s entries`, resp.Cache.TTLSeconds, humanize.Comma(int64(resp.Cache.Hits)), resp.Cache.HitRatio*100, humanize.Comma(int64(resp.Cache.Entries)))
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *models.HealthResponse) string {
	return formatJSON(map[string]interface{}{
		"server": url,
		"health": resp,
	})
}
