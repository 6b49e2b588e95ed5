package password

import (
	"fmt"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Показать пароль",
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

		c, err := app.GetPassword(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("ошибка получения пароля: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(c)
		}

		fmt.Printf("Название:  %s\n", c.Title)
		fmt.Printf("Логин:     %s\n", dash(c.Username))
		fmt.Printf("Пароль:    %s\n", c.Password)
		fmt.Printf("URL:       %s\n", dash(c.URL))
		fmt.Printf("Категория: %s\n", dash(c.CategoryName))
		if c.Notes != "" {
			fmt.Printf("Заметки:   %s\n", c.Notes)
		}

		s := app.Strength(c.Password)
		fmt.Printf("Стойкость: %s (%d/100)\n", s.Text, s.Score)
		return nil
	},
}
