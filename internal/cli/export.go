package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/travelmaster/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_destination", "trip_start_date", "trip_end_date",
	"activity_name", "activity_location", "activity_date", "activity_notes",
	"trip_expense_total",
}

// exportRecord is the JSON shape of one export row. Empty activity fields
// are omitted.
type exportRecord struct {
	TripID           string     `json:"trip_id"`
	TripName         string     `json:"trip_name"`
	TripDestination  string     `json:"trip_destination"`
	TripStartDate    string     `json:"trip_start_date"`
	TripEndDate      string     `json:"trip_end_date"`
	ActivityName     string     `json:"activity_name,omitempty"`
	ActivityLocation string     `json:"activity_location,omitempty"`
	ActivityDate     *time.Time `json:"activity_date,omitempty"`
	ActivityNotes    string     `json:"activity_notes,omitempty"`
	ExpenseTotal     string     `json:"trip_expense_total"`
}

func newExportCmd(app *App) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every trip and activity as a flat table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := app.Export.Export(cmd.Context())
			if err != nil {
				return err
			}
			switch format {
			case "csv":
				return writeCSV(cmd.OutOrStdout(), rows)
			case "json":
				out := make([]exportRecord, 0, len(rows))
				for _, r := range rows {
					out = append(out, toExportRecord(r))
				}
				return writeJSON(cmd.OutOrStdout(), out)
			default:
				return fmt.Errorf("%w: --format: want csv or json, got %q", domain.ErrValidation, format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: csv or json")
	return cmd
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(toCSVRecord(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toExportRecord(r domain.ExportRow) exportRecord {
	return exportRecord{
		TripID:           r.TripID,
		TripName:         r.TripName,
		TripDestination:  r.TripDestination,
		TripStartDate:    r.TripStartDate,
		TripEndDate:      r.TripEndDate,
		ActivityName:     r.ActivityName,
		ActivityLocation: r.ActivityLocation,
		ActivityDate:     r.ActivityDate,
		ActivityNotes:    r.ActivityNotes,
		ExpenseTotal:     r.ExpenseTotal.StringFixed(2),
	}
}

// toCSVRecord flattens a row. A nil activity date is written as "".
func toCSVRecord(r domain.ExportRow) []string {
	activityDate := ""
	if r.ActivityDate != nil {
		activityDate = r.ActivityDate.UTC().Format(dateLayout)
	}
	return []string{
		r.TripID,
		r.TripName,
		r.TripDestination,
		r.TripStartDate,
		r.TripEndDate,
		r.ActivityName,
		r.ActivityLocation,
		activityDate,
		r.ActivityNotes,
		r.ExpenseTotal.StringFixed(2),
	}
}
