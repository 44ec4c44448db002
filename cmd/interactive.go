// ABOUTME: Interactive command launching the terminal UI
// ABOUTME: Collects inputs with a wizard and opens the live capacity dashboard

package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/markalston/graphite-capacity-planner/internal/tui"
)

var (
	interactiveInputs inputFlags
	skipWizard        bool
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"tui"},
	Short:   "Explore capacity in an interactive terminal UI",
	Long: `Collect a workload with a form, then adjust StatsD and Carbon instance
counts while requirements are re-estimated live.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wl, res, err := interactiveInputs.resolve(cmd)
		if err != nil {
			return err
		}
		b, err := newBackend()
		if err != nil {
			return err
		}

		app := tui.New(b, wl, res, skipWizard)
		if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithOutput(os.Stderr)).Run(); err != nil {
			return fmt.Errorf("running interface: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	addInputFlags(interactiveCmd, &interactiveInputs)
	interactiveCmd.Flags().BoolVar(&skipWizard, "skip-wizard", false, "Open the dashboard directly with the given inputs")
}
