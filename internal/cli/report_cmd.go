package cli

import (
	"fmt"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/alexanderramin/shopfloor/internal/stats"
	"github.com/spf13/cobra"
)

func newReportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Productivity reports per employee and for the shop",
	}

	cmd.AddCommand(
		newReportDayCmd(a),
		newReportRangeCmd(a),
		newReportMonthCmd(a),
	)

	return cmd
}

func printReport(cmd *cobra.Command, r *stats.Result) {
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(app.NewReportView(r)))
}

func newReportDayCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day [DATE]",
		Short: "Report a single day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.dayArg(args)
			if err != nil {
				return err
			}
			r, err := a.Shop.Reports.Day(cmd.Context(), date)
			if err != nil {
				return err
			}
			printReport(cmd, r)
			return nil
		},
	}
}

func newReportRangeCmd(a *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Report an inclusive date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.Shop.Reports.Range(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			printReport(cmd, r)
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&from), "from", "first date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&to), "to", "last date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newReportMonthCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Report a calendar month (default current month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := a.Shop.Now().In(a.Shop.Location).Format(domain.MonthLayout)
			if len(args) == 1 {
				month = args[0]
			}
			r, err := a.Shop.Reports.Month(cmd.Context(), month)
			if err != nil {
				return err
			}
			printReport(cmd, r)
			return nil
		},
	}
}
