package cli

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pkordes/travelmaster/internal/domain"
)

func newExpensesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Track expenses",
	}
	cmd.AddCommand(
		newExpenseListCmd(app),
		newExpenseAddCmd(app),
		&cobra.Command{
			Use:   "delete <expense-id>",
			Short: "Delete an expense",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("expense", args[0])
				if err != nil {
					return err
				}
				if err := app.Data.DeleteExpense(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted expense %s\n", id)
				return nil
			},
		},
		newExpenseSummaryCmd(app),
	)
	return cmd
}

// tripFlag parses an optional --trip value.
func tripFlag(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := parseID("trip", s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func newExpenseListCmd(app *App) *cobra.Command {
	var trip string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tripID, err := tripFlag(trip)
			if err != nil {
				return err
			}
			var expenses []domain.Expense
			if tripID == nil {
				expenses, err = app.Data.Expenses(cmd.Context())
			} else {
				expenses, err = app.Data.TripExpenses(cmd.Context(), *tripID)
			}
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tTRIP\tNOTES")
			for _, e := range expenses {
				tripCol := ""
				if e.TripID.Valid {
					tripCol = e.TripID.UUID.String()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, formatDate(e.Date), e.Category, e.Amount.StringFixed(2), tripCol, deref(e.Notes))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&trip, "trip", "", "Only expenses of this trip")
	return cmd
}

func newExpenseAddCmd(app *App) *cobra.Command {
	var amount, category, date, trip, notes string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("%w: --amount: %q is not a number", domain.ErrValidation, amount)
			}
			day, err := parseDate("date", date)
			if err != nil {
				return err
			}
			tripID, err := tripFlag(trip)
			if err != nil {
				return err
			}
			e := domain.Expense{
				Amount:   value,
				Category: category,
				Date:     day,
				Notes:    optString(notes),
			}
			if tripID != nil {
				e.TripID = uuid.NullUUID{UUID: *tripID, Valid: true}
			}
			created, err := app.Expenses.Add(cmd.Context(), e)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "Amount, e.g. 12.50 (required)")
	cmd.Flags().StringVar(&category, "category", "", "Food, Transport, Accommodation, Entertainment, Shopping or Other (default Other)")
	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&trip, "trip", "", "Trip the expense belongs to")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newExpenseSummaryCmd(app *App) *cobra.Command {
	var trip string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total expenses overall and per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tripID, err := tripFlag(trip)
			if err != nil {
				return err
			}
			summary, err := app.Expenses.Summary(cmd.Context(), tripID)
			if err != nil {
				return err
			}
			currency, err := app.Data.Settings().Currency(cmd.Context())
			if err != nil {
				return err
			}

			categories := make([]string, 0, len(summary.ByCategory))
			for c := range summary.ByCategory {
				categories = append(categories, c)
			}
			sort.Strings(categories)

			tw := newTable(cmd.OutOrStdout())
			for _, c := range categories {
				fmt.Fprintf(tw, "%s\t%s %s\n", c, summary.ByCategory[c].StringFixed(2), currency)
			}
			fmt.Fprintf(tw, "TOTAL (%d)\t%s %s\n", summary.Count, summary.Total.StringFixed(2), currency)
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&trip, "trip", "", "Only expenses of this trip")
	return cmd
}
