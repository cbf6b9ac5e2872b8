package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/travelmaster/internal/domain"
)

func newItineraryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "itinerary",
		Short: "Plan trip itineraries",
	}
	cmd.AddCommand(
		newItineraryListCmd(app),
		newItineraryAddCmd(app),
		&cobra.Command{
			Use:   "toggle <item-id>",
			Short: "Mark an item completed, or not completed again",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("itinerary item", args[0])
				if err != nil {
					return err
				}
				item, err := app.Itinerary.ToggleCompleted(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s completed=%t\n", item.ID, item.Completed)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <item-id>",
			Short: "Delete an itinerary item",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("itinerary item", args[0])
				if err != nil {
					return err
				}
				if err := app.Itinerary.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted itinerary item %s\n", id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "import-legacy",
			Short: "Move items from the legacy preference list into the itinerary table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				n, err := app.Data.ImportLegacyItinerary(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d itinerary items\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "export-legacy",
			Short: "Write the itinerary table back to the legacy preference list",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				n, err := app.Data.ExportLegacyItinerary(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d itinerary items\n", n)
				return nil
			},
		},
	)
	return cmd
}

func newItineraryListCmd(app *App) *cobra.Command {
	var trip string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List itinerary items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tripID, err := tripFlag(trip)
			if err != nil {
				return err
			}
			var items []domain.ItineraryItem
			if tripID == nil {
				items, err = app.Data.LoadItineraryItems(cmd.Context())
			} else {
				items, err = app.Itinerary.ItemsForTrip(cmd.Context(), *tripID)
			}
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tDATE\tTIME\tTITLE\tLOCATION\tCATEGORY\tDONE")
			for _, it := range items {
				done := ""
				if it.Completed {
					done = "x"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					it.ID, formatDate(it.Date), it.Time, it.Title, it.Location, it.Category, done)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&trip, "trip", "", "Only items of this trip")
	return cmd
}

func newItineraryAddCmd(app *App) *cobra.Command {
	var trip, title, location, date, at, category, notes string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an itinerary item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tripID, err := parseID("trip", trip)
			if err != nil {
				return err
			}
			day, err := parseDate("date", date)
			if err != nil {
				return err
			}
			item, err := app.Itinerary.Add(cmd.Context(), domain.ItineraryItem{
				TripID:   tripID,
				Title:    title,
				Location: location,
				Date:     day,
				Time:     at,
				Category: category,
				Notes:    notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), item.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&trip, "trip", "", "Trip the item belongs to (required)")
	cmd.Flags().StringVar(&title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&location, "location", "", "Location (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD")
	cmd.Flags().StringVar(&at, "time", "", "Time of day, free text")
	cmd.Flags().StringVar(&category, "category", "", "Transportation, Accommodation, Activity, Dining, Sightseeing or Other (default Other)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("trip")
	return cmd
}
