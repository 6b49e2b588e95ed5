package password

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// PasswordCmd - родительская команда для операций с паролями
var PasswordCmd = &cobra.Command{
	Use:     "password",
	Aliases: []string{"pw"},
	Short:   "Управление паролями",
	Long:    `Просмотр, создание, изменение и удаление сохранённых паролей, генерация и оценка стойкости.`,
}

func init() {
	PasswordCmd.AddCommand(ListCmd, GetCmd, CreateCmd, UpdateCmd, DeleteCmd, GenerateCmd, StrengthCmd)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный ID: %s", arg)
	}
	return id, nil
}
