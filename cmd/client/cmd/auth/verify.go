package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
	"windkey/internal/app/client/session"
)

var VerifyCmd = &cobra.Command{
	Use:   "verify [code]",
	Short: "Подтвердить вход TOTP кодом",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if app.Session().State() != session.AwaitingSecondFactor {
			return fmt.Errorf("нет незавершённого входа: windkey auth login")
		}

		if len(args) == 0 {
			if err := promptCode(cmd.Context(), app.Verify); err != nil {
				return err
			}
		} else if err := app.Verify(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("ошибка подтверждения: %w", err)
		}

		printWelcome(app.Session())
		return nil
	},
}
