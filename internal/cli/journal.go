package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/travelmaster/internal/domain"
)

func newJournalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Keep a travel journal",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List journal entries, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				entries, err := app.Data.JournalEntries(cmd.Context())
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tDATE\tTITLE\tLOCATION\tPHOTO")
				for _, e := range entries {
					photo := ""
					if len(e.Photo) > 0 {
						photo = fmt.Sprintf("%d bytes", len(e.Photo))
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						e.ID, formatDate(e.Date), e.Title, deref(e.Location), photo)
				}
				return tw.Flush()
			},
		},
		newJournalAddCmd(app),
		&cobra.Command{
			Use:   "delete <entry-id>",
			Short: "Delete a journal entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID("journal entry", args[0])
				if err != nil {
					return err
				}
				if err := app.Data.DeleteJournalEntry(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted journal entry %s\n", id)
				return nil
			},
		},
	)
	return cmd
}

func newJournalAddCmd(app *App) *cobra.Command {
	var title, content, date, location, photoPath string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDate("date", date)
			if err != nil {
				return err
			}
			var photo []byte
			if photoPath != "" {
				if photo, err = os.ReadFile(photoPath); err != nil {
					return fmt.Errorf("read photo: %w", err)
				}
			}
			created, err := app.Journal.Add(cmd.Context(), domain.JournalEntry{
				Title:    title,
				Content:  content,
				Date:     day,
				Location: optString(location),
				Photo:    photo,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&content, "content", "", "Entry text (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&photoPath, "photo", "", "Path to a PNG or JPEG photo")
	return cmd
}
