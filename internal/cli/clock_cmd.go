package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/spf13/cobra"
)

func newClockCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Clock employees in and out",
	}

	cmd.AddCommand(
		newClockInCmd(a),
		newClockOutCmd(a),
		newClockActiveCmd(a),
		newClockClientStartCmd(a),
	)

	return cmd
}

func newClockInCmd(a *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "in EMPLOYEE_ID",
		Short: "Start a work session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Shop.Sessions.Start(cmd.Context(), args[0], name)
			if err != nil {
				return err
			}
			now := a.Shop.Now()
			if now.Sub(s.StartTime) > time.Second {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already clocked in since %s (%s).\n",
					args[0], formatter.Clock(s.StartTime, a.Shop.Location), formatter.Since(s.StartTime, now))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s clocked in at %s.\n", args[0], formatter.Clock(s.StartTime, a.Shop.Location))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "employee display name")

	return cmd
}

func newClockOutCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "out EMPLOYEE_ID",
		Short: "End a work session and store the completed record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.Shop.Sessions.End(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s clocked out: %s on %s (record %s).\n",
				args[0], formatter.FormatSeconds(rec.DurationSeconds), rec.Date, formatter.TruncID(rec.ID))
			return nil
		},
	}
}

func newClockActiveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List employees currently clocked in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := a.Shop.Sessions.GetActive(cmd.Context())
			if err != nil {
				return err
			}
			now := a.Shop.Now()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessions(app.NewSessionViews(sessions, now), now, a.Shop.Location))
			return nil
		},
	}
}

func newClockClientStartCmd(a *App) *cobra.Command {
	var (
		at         clockValue
		clearTimer bool
	)

	cmd := &cobra.Command{
		Use:   "client-start EMPLOYEE_ID",
		Short: "Set or clear the client-service timer on an open session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearTimer == at.set {
				return domain.NewValidationError("exactly one of --at or --clear is required")
			}
			var ts *time.Time
			if at.set {
				t, err := at.On(a.Shop.Today(), a.Shop.Location)
				if err != nil {
					return err
				}
				ts = &t
			}
			if _, err := a.Shop.Sessions.UpdateClientStart(cmd.Context(), args[0], ts); err != nil {
				return err
			}
			if ts == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Client timer cleared for %s.\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client timer for %s set to %s.\n", args[0], formatter.Clock(*ts, a.Shop.Location))
			return nil
		},
	}

	cmd.Flags().Var(&at, "at", "client start time (HH:MM, today)")
	cmd.Flags().BoolVar(&clearTimer, "clear", false, "clear the client timer")

	return cmd
}
