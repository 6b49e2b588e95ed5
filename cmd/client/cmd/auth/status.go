package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
	"windkey/internal/app/client/session"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Проверить сервер и сессию",
	Long: `Проверяет доступность сервера и сохранённый токен. Истёкший токен
обновляется один раз, отклонённый сервером очищается. Если сервер
недоступен, сохранённая сессия не трогается.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		online := app.CheckConnection(cmd.Context()) == nil

		var checkErr error
		if online {
			checkErr = app.Restore(cmd.Context())
		}

		m := app.Session()
		if types.JSON(cmd) {
			out := struct {
				Server string `json:"server"`
				State  string `json:"state"`
				Email  string `json:"email,omitempty"`
			}{Server: "online", State: m.State().String()}
			if !online {
				out.Server = "offline"
			}
			if u := m.User(); u != nil {
				out.Email = u.Email
			}
			return types.PrintJSON(out)
		}

		if online {
			fmt.Println("✓ Сервер доступен")
		} else {
			fmt.Println("⚠ Сервер недоступен, показана локальная сессия")
		}
		if checkErr != nil {
			fmt.Printf("⚠ Сессию не удалось проверить: %v\n", checkErr)
		}

		switch m.State() {
		case session.Authenticated:
			if u := m.User(); u != nil {
				fmt.Printf("✓ Вы вошли как %s\n", u.Email)
			} else {
				fmt.Println("✓ Сессия активна")
			}
		case session.AwaitingSecondFactor:
			fmt.Println("Ожидается TOTP код: windkey auth verify")
		default:
			fmt.Println("Вы не вошли: windkey auth login")
		}
		return nil
	},
}
