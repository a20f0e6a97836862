package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const defaultPollInterval = 5 * time.Second

func newWatchCmd(a *App) *cobra.Command {
	var (
		once     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live view of today's sessions and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("interval") {
				interval = a.PollInterval
			}
			if interval <= 0 {
				interval = defaultPollInterval
			}
			if interval < time.Second {
				return domain.NewValidationError("--interval must be at least 1s")
			}

			interactive := a.IsInteractive != nil && a.IsInteractive()
			if once || !interactive {
				view, err := a.Shop.Dashboard(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(*view, a.Shop.Location))
				return nil
			}

			p := tea.NewProgram(
				newWatchModel(a.Shop, a.Shop.Location, interval),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "print the dashboard once and exit")
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from config)")

	return cmd
}
