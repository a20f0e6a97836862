package cli

import (
	"time"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/httpapi"
	"github.com/spf13/cobra"
)

// ConfigFlag names the persistent flag that selects the config file.
const ConfigFlag = "config"

// App holds what CLI commands need: the shop use cases plus terminal and
// server settings resolved by main.
type App struct {
	Shop *app.Shop

	// IsInteractive reports whether stdin is a terminal that can answer
	// confirmation prompts.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title string) (bool, error)

	PollInterval time.Duration
	Addr         string
	HTTP         httpapi.Options
}

// NewRootCmd creates the top-level "shopfloor" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "shopfloor",
		Short:         "Shop-floor time clock, group tally and day closing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read by main before the App is built; declared here so cobra accepts it.
	root.PersistentFlags().String(ConfigFlag, "", "config file (default ./.shopfloor.yaml or ~/.shopfloor.yaml)")

	root.AddCommand(
		newClockCmd(a),
		newRecordCmd(a),
		newGroupsCmd(a),
		newDayCmd(a),
		newReportCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
	)

	return root
}
