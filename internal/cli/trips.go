package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/travelmaster/internal/domain"
)

func newTripsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List, add, show and delete trips",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List trips, latest start date first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				trips, err := app.Data.Trips(cmd.Context())
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tNAME\tDESTINATION\tSTART\tEND")
				for _, t := range trips {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						t.ID, t.Name, t.Destination, formatDate(t.StartDate), formatDate(t.EndDate))
				}
				return tw.Flush()
			},
		},
		newTripAddCmd(app),
		&cobra.Command{
			Use:   "show <trip-id>",
			Short: "Show a trip with its activities and expenses",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("trip", args[0])
				if err != nil {
					return err
				}
				detail, err := app.Trips.Detail(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printTripDetail(cmd, detail)
			},
		},
		&cobra.Command{
			Use:   "delete <trip-id>",
			Short: "Delete a trip with its activities and expenses",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("trip", args[0])
				if err != nil {
					return err
				}
				if err := app.Data.DeleteTrip(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted trip %s\n", id)
				return nil
			},
		},
	)
	return cmd
}

func newTripAddCmd(app *App) *cobra.Command {
	var name, destination, start, end, notes string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDate("end", end)
			if err != nil {
				return err
			}
			trip, err := app.Trips.Create(cmd.Context(), domain.Trip{
				Name:        name,
				Destination: destination,
				StartDate:   startDate,
				EndDate:     endDate,
				Notes:       optString(notes),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), trip.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Trip name (required)")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination (required)")
	cmd.Flags().StringVar(&start, "start", "", "Start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "End date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func printTripDetail(cmd *cobra.Command, d domain.TripDetail) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s (%s to %s)\n", d.Trip.Name, d.Trip.Destination,
		formatDate(d.Trip.StartDate), formatDate(d.Trip.EndDate))
	if d.Trip.Notes != nil {
		fmt.Fprintln(out, *d.Trip.Notes)
	}

	fmt.Fprintf(out, "\nActivities (%d)\n", len(d.Activities))
	tw := newTable(out)
	for _, a := range d.Activities {
		at := ""
		if a.Time != nil {
			at = a.Time.UTC().Format("15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, formatDate(a.Date), at, a.Name, deref(a.Location))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nExpenses (%d)\n", len(d.Expenses))
	tw = newTable(out)
	for _, e := range d.Expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, formatDate(e.Date), e.Category, e.Amount.StringFixed(2))
	}
	return tw.Flush()
}

func newActivitiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Add and delete trip activities",
	}

	var name, date, at, location, notes string
	add := &cobra.Command{
		Use:   "add <trip-id>",
		Short: "Add an activity to a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseID("trip", args[0])
			if err != nil {
				return err
			}
			day, err := parseDate("date", date)
			if err != nil {
				return err
			}
			a := domain.Activity{
				Name:     name,
				Date:     day,
				Location: optString(location),
				Notes:    optString(notes),
			}
			if at != "" {
				base := day
				if base.IsZero() {
					base = time.Now().UTC()
				}
				clock, err := parseClock(base, at)
				if err != nil {
					return err
				}
				a.Time = &clock
			}
			created, err := app.Trips.AddActivity(cmd.Context(), tripID, a)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Activity name (required)")
	add.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD (default today)")
	add.Flags().StringVar(&at, "time", "", "Time of day, HH:MM")
	add.Flags().StringVar(&location, "location", "", "Location")
	add.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	cmd.AddCommand(add, &cobra.Command{
		Use:   "delete <activity-id>",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("activity", args[0])
			if err != nil {
				return err
			}
			if err := app.Data.DeleteActivity(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted activity %s\n", id)
			return nil
		},
	})
	return cmd
}
