package password

import (
	"fmt"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
	"windkey/internal/domain/passgen"
)

var strengthRemote bool

var StrengthCmd = &cobra.Command{
	Use:   "strength",
	Short: "Оценить стойкость пароля",
	Long:  `Оценивает пароль локально, с --remote запрашивает оценку у сервера.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		pw, err := types.PromptSecret("Пароль: ")
		if err != nil {
			return err
		}

		var s passgen.StrengthResult
		if strengthRemote {
			s, err = app.StrengthRemote(cmd.Context(), pw)
			if err != nil {
				return fmt.Errorf("ошибка оценки на сервере: %w", err)
			}
		} else {
			s = app.Strength(pw)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(s)
		}

		printStrength(s)
		return nil
	},
}

func init() {
	StrengthCmd.Flags().BoolVar(&strengthRemote, "remote", false, "оценить на сервере")
}
