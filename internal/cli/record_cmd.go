package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/service"
	"github.com/spf13/cobra"
)

func newRecordCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"rec"},
		Short:   "List and correct completed work records",
	}

	cmd.AddCommand(
		newRecordListCmd(a),
		newRecordAddCmd(a),
		newRecordEditCmd(a),
		newRecordRemoveCmd(a),
	)

	return cmd
}

func newRecordListCmd(a *App) *cobra.Command {
	var from, to, employee string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List records, optionally filtered by date range and employee",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := a.Shop.Records.List(cmd.Context(), service.RecordQuery{
				From:       from,
				To:         to,
				EmployeeID: employee,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecords(app.NewRecordViews(records), a.Shop.Location))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&from), "from", "first date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&to), "to", "last date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&employee, "employee", "", "employee ID")

	return cmd
}

func newRecordAddCmd(a *App) *cobra.Command {
	var (
		employee, name, date string
		start, end           clockValue
		duration             time.Duration
		groups               int
		override             bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual work record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !start.set || !end.set {
				return domain.NewValidationError("--start and --end are required")
			}
			date = a.resolveDate(date)
			startAt, err := start.On(date, a.Shop.Location)
			if err != nil {
				return err
			}
			endAt, err := end.On(date, a.Shop.Location)
			if err != nil {
				return err
			}
			req := app.AddRecordRequest{
				EmployeeID:   employee,
				EmployeeName: name,
				StartTime:    startAt,
				EndTime:      endAt,
				Date:         date,
				Groups:       groups,
				Override:     override,
			}
			if cmd.Flags().Changed("duration") {
				secs := duration.Seconds()
				req.DurationSeconds = &secs
			}

			rec, err := a.Shop.Records.Add(cmd.Context(), req.Record(), req.Override)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added record %s: %s for %s on %s.\n",
				formatter.TruncID(rec.ID), formatter.FormatSeconds(rec.DurationSeconds), rec.EmployeeID, rec.Date)
			if rec.ArchivedOverride {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleYellow.Render("Day was closed; record kept as an override."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "employee ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "employee display name")
	cmd.Flags().Var(newDateValue(&date), "date", "work date (default today)")
	cmd.Flags().Var(&start, "start", "start time (HH:MM)")
	cmd.Flags().Var(&end, "end", "end time (HH:MM)")
	cmd.Flags().DurationVar(&duration, "duration", 0, "worked duration, e.g. 1h30m (default end minus start)")
	cmd.Flags().IntVar(&groups, "groups", 0, "groups attended in this record")
	cmd.Flags().BoolVar(&override, "override", false, "allow writing into a closed day")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}

func newRecordEditCmd(a *App) *cobra.Command {
	var (
		duration time.Duration
		override bool
	)

	cmd := &cobra.Command{
		Use:   "edit RECORD_ID",
		Short: "Correct a record's duration by appending an adjustment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("duration") {
				return domain.NewValidationError("--duration is required")
			}
			id, err := resolveRecordID(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			adj, err := a.Shop.Records.EditDuration(cmd.Context(), id, duration.Seconds(), override)
			if err != nil {
				return err
			}
			if adj.ID == id {
				fmt.Fprintf(cmd.OutOrStdout(), "Record %s already totals %s; nothing to do.\n",
					formatter.TruncID(id), formatter.FormatSeconds(duration.Seconds()))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Adjusted record %s by %s (adjustment %s).\n",
				formatter.TruncID(id), formatter.FormatSeconds(adj.DurationSeconds), formatter.TruncID(adj.ID))
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "new total duration, e.g. 1h30m")
	cmd.Flags().BoolVar(&override, "override", false, "allow editing a closed day")

	return cmd
}

func newRecordRemoveCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove RECORD_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a record and its adjustments",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveRecordID(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			ok, err := a.confirm(fmt.Sprintf("Delete record %s and its adjustments?", formatter.TruncID(id)), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			if err := a.Shop.Records.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %s.\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
