package cli

import (
	"fmt"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDayCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Close, reopen and inspect calendar days",
	}

	cmd.AddCommand(
		newDayCloseCmd(a),
		newDayReopenCmd(a),
		newDayClosedCmd(a),
		newDayStateCmd(a),
		newDaySnapshotCmd(a),
		newDayIncidentCmd(a),
	)

	return cmd
}

// dayArg reads an optional DATE argument, defaulting to today.
func (a *App) dayArg(args []string) (string, error) {
	if len(args) == 0 {
		return a.Shop.Today(), nil
	}
	var date string
	if err := newDateValue(&date).Set(args[0]); err != nil {
		return "", err
	}
	return date, nil
}

func newDayCloseCmd(a *App) *cobra.Command {
	var observation string

	cmd := &cobra.Command{
		Use:   "close [DATE]",
		Short: "Close a day and store its report snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dayArg(args)
			if err != nil {
				return err
			}
			snap, err := a.Shop.Days.Close(cmd.Context(), date, observation)
			if err != nil {
				return err
			}
			view, err := app.NewSnapshotView(snap)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshot(view, a.Shop.Location))
			return nil
		},
	}

	cmd.Flags().StringVar(&observation, "observation", "", "closing note (defaults to the day's incident)")

	return cmd
}

func newDayReopenCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reopen DATE",
		Short: "Reopen a closed day (its snapshot is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dayArg(args)
			if err != nil {
				return err
			}
			ok, err := a.confirm(fmt.Sprintf("Reopen %s? Its totals may change until it is closed again.", date), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			if err := a.Shop.Days.Reopen(cmd.Context(), date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Day %s reopened.\n", date)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func newDayClosedCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "closed",
		Short: "List closed days, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dates, err := a.Shop.Days.ListClosed(cmd.Context())
			if err != nil {
				return err
			}
			if len(dates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No closed days."))
				return nil
			}
			for _, d := range dates {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			return nil
		},
	}
}

func newDayStateCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "state [DATE]",
		Short: "Show whether a day is open or closed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dayArg(args)
			if err != nil {
				return err
			}
			state, err := a.Shop.Days.State(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", date, formatter.DayStateBadge(state))
			return nil
		},
	}
}

func newDaySnapshotCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot DATE",
		Short: "Show the report stored when a day was closed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dayArg(args)
			if err != nil {
				return err
			}
			snap, err := a.Shop.Days.GetSnapshot(cmd.Context(), date)
			if err != nil {
				return err
			}
			view, err := app.NewSnapshotView(snap)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshot(view, a.Shop.Location))
			return nil
		},
	}
}

func newDayIncidentCmd(a *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "incident [DATE]",
		Short: "Show or set a day's incident note",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dayArg(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("set") {
				if err := a.Shop.Days.SetIncident(cmd.Context(), date, text); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Incident for %s saved.\n", date)
				return nil
			}
			incident, err := a.Shop.Days.GetIncident(cmd.Context(), date)
			if err != nil {
				return err
			}
			if incident == "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No incident recorded for "+date+"."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), incident)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "set", "", "replace the incident text")

	return cmd
}
