package password

import (
	"fmt"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
	"windkey/internal/domain/credential"
)

var (
	updateTitle    string
	updateUsername string
	updateURL      string
	updateNotes    string
	updateCategory int
	updatePassword bool
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить сохранённый пароль",
	Long: `Меняет только переданные флагами поля.
--category 0 убирает пароль из категории, --password запрашивает новый пароль.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		// текущую версию показываем перед правкой
		current, err := app.GetPassword(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("ошибка получения пароля: %w", err)
		}

		var req credential.UpdateRequest
		flags := cmd.Flags()
		if flags.Changed("title") {
			req.Title = &updateTitle
		}
		if flags.Changed("username") {
			req.Username = &updateUsername
		}
		if flags.Changed("url") {
			req.URL = &updateURL
		}
		if flags.Changed("notes") {
			req.Notes = &updateNotes
		}
		if flags.Changed("category") {
			req.CategoryID = &updateCategory
		}
		if updatePassword {
			fmt.Printf("Текущий пароль для %q: %s\n", current.Title, current.Password)
			pw, err := types.PromptSecret("Новый пароль: ")
			if err != nil {
				return err
			}
			req.Password = &pw
		}

		c, err := app.UpdatePassword(cmd.Context(), id, req)
		if err != nil {
			return fmt.Errorf("ошибка изменения пароля: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(c)
		}

		fmt.Printf("✓ Пароль %q обновлён\n", c.Title)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "название")
	UpdateCmd.Flags().StringVarP(&updateUsername, "username", "u", "", "логин")
	UpdateCmd.Flags().StringVar(&updateURL, "url", "", "адрес сайта")
	UpdateCmd.Flags().StringVar(&updateNotes, "notes", "", "заметки")
	UpdateCmd.Flags().IntVarP(&updateCategory, "category", "c", 0, "ID категории, 0 убирает категорию")
	UpdateCmd.Flags().BoolVarP(&updatePassword, "password", "p", false, "ввести новый пароль")
}
