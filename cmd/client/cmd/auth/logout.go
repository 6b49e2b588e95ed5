package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти и удалить локальную сессию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		app.Logout(cmd.Context())
		fmt.Println("✓ Выход выполнен")
		return nil
	},
}
