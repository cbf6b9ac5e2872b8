// Package cli implements the travelmaster command tree on top of the service
// layer. Commands parse flags, call one service operation and render the
// result; no SQL and no business rules live here.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pkordes/travelmaster/internal/metrics"
	"github.com/pkordes/travelmaster/internal/service"
	"github.com/pkordes/travelmaster/internal/store"
)

// App bundles the services the commands run against.
type App struct {
	Store     *store.Store
	Data      *service.DataService
	Trips     *service.TripService
	Expenses  *service.ExpenseService
	Journal   *service.JournalService
	Itinerary *service.ItineraryService
	Export    *service.ExportService
}

// NewApp wires every service over one store handle.
func NewApp(st *store.Store, log *slog.Logger, m *metrics.Metrics) *App {
	data := service.NewDataService(st, log, m)
	return &App{
		Store:     st,
		Data:      data,
		Trips:     service.NewTripService(data),
		Expenses:  service.NewExpenseService(data),
		Journal:   service.NewJournalService(data),
		Itinerary: service.NewItineraryService(data),
		Export:    service.NewExportService(data),
	}
}

// NewRootCmd builds the full command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "travelmaster",
		Short:         "Manage TravelMaster trips, expenses, journal and itinerary data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newTripsCmd(app),
		newActivitiesCmd(app),
		newExpensesCmd(app),
		newJournalCmd(app),
		newItineraryCmd(app),
		newSettingsCmd(app),
		newExportCmd(app),
		newWipeCmd(app),
		newMigrateCmd(app),
	)
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCmd(app)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// newMigrateCmd reports the schema version. Opening the store already
// applies pending migrations, so the Migrate call only matters for a store
// built without Open.
func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and print the schema version",
		Long: "Apply pending schema migrations and print the schema version.\n" +
			"Every command migrates the database when it opens it, so this mostly reports status.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Store.Migrate(cmd.Context()); err != nil {
				return err
			}
			version, pending, err := app.Store.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s, version %d, %d pending)\n",
				app.Store.Dialect(), version, pending)
			return nil
		},
	}
}
