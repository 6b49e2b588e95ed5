package password

import (
	"fmt"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
	"windkey/internal/domain/credential"
	"windkey/internal/domain/passgen"
)

var (
	createTitle    string
	createUsername string
	createURL      string
	createNotes    string
	createCategory int
	createGenerate bool
	createLength   int
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Сохранить новый пароль",
	Long: `Сохраняет пароль на сервере. Пароль вводится без эха
или генерируется флагом --generate.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if createTitle == "" {
			createTitle = types.Prompt("Название: ")
		}

		var pw string
		if createGenerate {
			p := passgen.DefaultPolicy()
			p.Length = createLength
			if pw, _, err = app.Generate(p); err != nil {
				return fmt.Errorf("ошибка генерации пароля: %w", err)
			}
		} else if pw, err = types.PromptSecret("Пароль: "); err != nil {
			return err
		}

		req := credential.CreateRequest{
			Title:    createTitle,
			Username: createUsername,
			Password: pw,
			URL:      createURL,
			Notes:    createNotes,
		}
		if createCategory > 0 {
			req.CategoryID = &createCategory
		}

		c, err := app.CreatePassword(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("ошибка сохранения пароля: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(c)
		}

		s := app.Strength(pw)
		fmt.Printf("✓ Пароль сохранён (ID %d), стойкость: %s\n", c.ID, s.Text)
		if createGenerate {
			fmt.Printf("Сгенерированный пароль: %s\n", pw)
		}
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "название")
	CreateCmd.Flags().StringVarP(&createUsername, "username", "u", "", "логин")
	CreateCmd.Flags().StringVar(&createURL, "url", "", "адрес сайта")
	CreateCmd.Flags().StringVar(&createNotes, "notes", "", "заметки")
	CreateCmd.Flags().IntVarP(&createCategory, "category", "c", 0, "ID категории")
	CreateCmd.Flags().BoolVarP(&createGenerate, "generate", "g", false, "сгенерировать пароль")
	CreateCmd.Flags().IntVarP(&createLength, "length", "l", passgen.DefaultLength, "длина генерируемого пароля")
}
