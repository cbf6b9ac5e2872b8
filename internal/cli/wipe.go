package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/travelmaster/internal/domain"
)

func newWipeCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every trip, activity, expense, journal entry and itinerary item",
		Long: "Delete every trip, activity, expense, journal entry and itinerary item.\n" +
			"Preferences such as currency and user name are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("%w: wipe needs --yes", domain.ErrValidation)
			}
			if err := app.Data.DeleteAllData(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all data deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting all data")
	return cmd
}
