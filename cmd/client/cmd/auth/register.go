package auth

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
)

var showQR bool

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя на сервере Windkey.

Сервер выдаёт секрет TOTP. Добавьте его в приложение-аутентификатор:
без кода из него войти не получится.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Регистрация нового пользователя ===")
		fmt.Println()

		email := types.Prompt("Email: ")

		password, err := types.PromptSecret("Мастер-пароль: ")
		if err != nil {
			return err
		}
		passwordConfirm, err := types.PromptSecret("Повторите мастер-пароль: ")
		if err != nil {
			return err
		}
		if password != passwordConfirm {
			return fmt.Errorf("пароли не совпадают")
		}

		fmt.Println("Регистрация...")
		reg, err := app.Register(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(reg)
		}

		fmt.Println()
		fmt.Println("✅ Регистрация успешно завершена!")
		fmt.Println()
		fmt.Printf("Секрет TOTP:  %s\n", reg.TwoFactorSecret)
		fmt.Printf("otpauth URL:  %s\n", reg.OTPURL)
		if showQR {
			fmt.Println()
			fmt.Println("QR код (data URL, откройте в браузере):")
			fmt.Println(reg.QRCode)
		} else if strings.HasPrefix(reg.QRCode, "data:image/png") {
			fmt.Println("QR код: windkey auth register --qr")
		}
		fmt.Println()
		fmt.Println("Теперь вы можете войти в систему: windkey auth login")

		return nil
	},
}

func init() {
	RegisterCmd.Flags().BoolVar(&showQR, "qr", false, "вывести QR код как data URL")
}
