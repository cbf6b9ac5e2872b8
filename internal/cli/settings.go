package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pkordes/travelmaster/internal/domain"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change user preferences",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := app.Data.Settings().Load(cmd.Context())
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintf(tw, "currency\t%s\n", s.Currency)
				fmt.Fprintf(tw, "name\t%s\n", s.UserName)
				fmt.Fprintf(tw, "onboarded\t%t\n", s.OnboardingCompleted)
				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:       "set <currency|name|onboarded> <value>",
			Short:     "Change one preference",
			Args:      cobra.ExactArgs(2),
			ValidArgs: []string{"currency", "name", "onboarded"},
			RunE: func(cmd *cobra.Command, args []string) error {
				settings := app.Data.Settings()
				key, value := args[0], args[1]
				var err error
				switch key {
				case "currency":
					err = settings.SetCurrency(cmd.Context(), value)
				case "name":
					err = settings.SetUserName(cmd.Context(), value)
				case "onboarded":
					done, perr := strconv.ParseBool(value)
					if perr != nil {
						return fmt.Errorf("%w: onboarded: want true or false, got %q", domain.ErrValidation, value)
					}
					err = settings.SetOnboardingCompleted(cmd.Context(), done)
				default:
					return fmt.Errorf("%w: unknown setting %q", domain.ErrValidation, key)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
				return nil
			},
		},
	)
	return cmd
}
