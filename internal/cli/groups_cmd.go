package cli

import (
	"fmt"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/cli/formatter"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newGroupsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Read and write per-employee group tallies",
	}

	cmd.AddCommand(
		newGroupsGetCmd(a),
		newGroupsWriteCmd(a, domain.MergeReplace),
		newGroupsWriteCmd(a, domain.MergeAdd),
	)

	return cmd
}

func newGroupsGetCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "get EMPLOYEE_ID",
		Short: "Show an employee's groups for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date = a.resolveDate(date)
			counts, err := a.Shop.Groups.Get(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGroups(app.NewGroupsView(args[0], date, counts)))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&date), "date", "day (default today)")

	return cmd
}

// groupFlags binds one int flag per category. Only flags the user changed
// end up in the patch.
type groupFlags struct {
	values map[domain.GroupCategory]*int
}

func bindGroupFlags(fs *pflag.FlagSet) *groupFlags {
	g := &groupFlags{values: make(map[domain.GroupCategory]*int, len(domain.GroupCategories))}
	for _, c := range domain.GroupCategories {
		v := new(int)
		fs.IntVar(v, string(c), 0, string(c)+" groups")
		g.values[c] = v
	}
	return g
}

func (g *groupFlags) patch(fs *pflag.FlagSet) domain.GroupPatch {
	var p domain.GroupPatch
	for c, v := range g.values {
		if !fs.Changed(string(c)) {
			continue
		}
		n := *v
		switch c {
		case domain.GroupStandard:
			p.Standard = &n
		case domain.GroupJewelry:
			p.Jewelry = &n
		case domain.GroupRecoverable:
			p.Recoverable = &n
		}
	}
	return p
}

func newGroupsWriteCmd(a *App, mode domain.GroupMergeMode) *cobra.Command {
	var (
		date     string
		override bool
		flags    *groupFlags
	)

	use, short := "set EMPLOYEE_ID", "Replace the given categories, keeping the rest"
	if mode == domain.MergeAdd {
		use, short = "add EMPLOYEE_ID", "Add to the given categories"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := flags.patch(cmd.Flags())
			if p.IsEmpty() {
				return domain.NewValidationError("no group counts given; use --standard, --jewelry or --recoverable")
			}
			date = a.resolveDate(date)

			var (
				counts domain.GroupCount
				err    error
			)
			if mode == domain.MergeAdd {
				counts, err = a.Shop.Groups.Add(cmd.Context(), args[0], date, p, override)
			} else {
				counts, err = a.Shop.Groups.Patch(cmd.Context(), args[0], date, p)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGroups(app.NewGroupsView(args[0], date, counts)))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&date), "date", "day (default today)")
	flags = bindGroupFlags(cmd.Flags())
	if mode == domain.MergeAdd {
		cmd.Flags().BoolVar(&override, "override", false, "allow adding to a closed day")
	}

	return cmd
}
