package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для всех операций с авторизацией пользователя
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление пользователем",
	Long:  `Регистрация, вход с TOTP кодом, выход и проверка сессии.`,
}

func init() {
	AuthCmd.AddCommand(RegisterCmd, LoginCmd, VerifyCmd, LogoutCmd, StatusCmd)
}
