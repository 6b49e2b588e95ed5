package password

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить пароль",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if !deleteYes {
			answer := types.Prompt(fmt.Sprintf("Удалить пароль %d? [y/N]: ", id))
			if !strings.EqualFold(answer, "y") {
				fmt.Println("Отменено")
				return nil
			}
		}

		if err := app.DeletePassword(cmd.Context(), id); err != nil {
			return fmt.Errorf("ошибка удаления пароля: %w", err)
		}

		fmt.Println("✓ Пароль удалён")
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не спрашивать подтверждение")
}
