package password

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
	"windkey/internal/domain/credential"
)

var (
	listSearch   string
	listCategory int
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список паролей",
	Long: `Список сохранённых паролей без самих паролей.

Поиск по названию, логину и URL: --search. Фильтр по категории: --category.
Если сервер недоступен, показывается последний загруженный список.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		items, cached, err := app.ListPasswords(cmd.Context(), listSearch, listCategory)
		if err != nil {
			return fmt.Errorf("ошибка получения списка паролей: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(items)
		}

		if cached {
			fmt.Println("⚠️  Сервер недоступен, показан сохранённый список")
			fmt.Println()
		}
		return printTable(items)
	},
}

func printTable(items []credential.Credential) error {
	if len(items) == 0 {
		fmt.Println("Пароли не найдены")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tНАЗВАНИЕ\tЛОГИН\tURL\tКАТЕГОРИЯ\tИЗМЕНЁН")
	for _, c := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Title, dash(c.Username), dash(c.URL), dash(c.CategoryName),
			c.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nВсего: %d\n", len(items))
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	ListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "строка поиска")
	ListCmd.Flags().IntVarP(&listCategory, "category", "c", 0, "ID категории")
}
