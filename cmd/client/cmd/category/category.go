package category

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
	"windkey/internal/domain/category"
)

var (
	catIcon  string
	catColor string
)

// CategoryCmd - родительская команда для операций с категориями
var CategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Управление категориями паролей",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Список категорий",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		items, err := app.ListCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения категорий: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(items)
		}

		if len(items) == 0 {
			fmt.Println("Категорий нет")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tНАЗВАНИЕ\tПАРОЛЕЙ")
		for _, c := range items {
			fmt.Fprintf(w, "%d\t%s\t%d\n", c.ID, c.Name, c.PasswordCount)
		}
		return w.Flush()
	},
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Создать категорию",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		c, err := app.CreateCategory(cmd.Context(), category.Request{Name: args[0], Icon: catIcon, Color: catColor})
		if err != nil {
			return fmt.Errorf("ошибка создания категории: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(c)
		}
		fmt.Printf("✓ Категория %q создана (ID %d)\n", c.Name, c.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Переименовать категорию",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		c, err := app.UpdateCategory(cmd.Context(), id, category.Request{Name: args[1], Icon: catIcon, Color: catColor})
		if err != nil {
			return fmt.Errorf("ошибка изменения категории: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(c)
		}
		fmt.Printf("✓ Категория %d переименована в %q\n", c.ID, c.Name)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить категорию",
	Long:  `Удаляет категорию. Пароли из неё остаются без категории.`,
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

		if err := app.DeleteCategory(cmd.Context(), id); err != nil {
			return fmt.Errorf("ошибка удаления категории: %w", err)
		}
		fmt.Println("✓ Категория удалена")
		return nil
	},
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный ID: %s", arg)
	}
	return id, nil
}

func init() {
	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVar(&catIcon, "icon", "", "иконка")
		c.Flags().StringVar(&catColor, "color", "", "цвет")
	}
	CategoryCmd.AddCommand(listCmd, createCmd, updateCmd, deleteCmd)
}
