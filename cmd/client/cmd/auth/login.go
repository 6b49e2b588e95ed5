package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
	"windkey/internal/app/client/session"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему Windkey",
	Long: `Аутентификация на сервере Windkey.

Сначала проверяются email и мастер-пароль, затем запрашивается
6-значный код из приложения-аутентификатора. Если ввод кода прерван,
его можно отправить позже: windkey auth verify.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if app.Session().State() == session.Authenticated {
			fmt.Println("Вы уже вошли. Для смены пользователя: windkey auth logout")
			return nil
		}

		fmt.Println("=== Вход в систему ===")
		fmt.Println()

		email := types.Prompt("Email: ")
		password, err := types.PromptSecret("Мастер-пароль: ")
		if err != nil {
			return err
		}

		app.Session().Subscribe(printTransition)

		state, err := app.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		if state == session.AwaitingSecondFactor {
			if err := promptCode(cmd.Context(), app.Verify); err != nil {
				return err
			}
		}

		printWelcome(app.Session())
		return nil
	},
}

// promptCode спрашивает код до успеха; неверный код можно ввести заново
func promptCode(ctx context.Context, verify func(context.Context, string) error) error {
	const attempts = 3

	for i := 0; i < attempts; i++ {
		code := types.Prompt("Код из приложения-аутентификатора: ")
		err := verify(ctx, code)
		if err == nil {
			return nil
		}
		if errors.Is(err, session.ErrInvalidState) {
			return fmt.Errorf("сессия входа истекла, повторите: windkey auth login")
		}
		fmt.Printf("✗ %v\n", err)
	}

	return fmt.Errorf("код не подтверждён, повторите позже: windkey auth verify")
}

// printTransition показывает ход входа по переходам сессии
func printTransition(_, to session.State) {
	switch to {
	case session.Authenticating:
		fmt.Println("Аутентификация...")
	case session.AwaitingSecondFactor:
		fmt.Println("Требуется второй фактор")
	}
}

func printWelcome(m *session.Manager) {
	fmt.Println()
	if u := m.User(); u != nil {
		fmt.Printf("✅ Вход выполнен: %s\n", u.Email)
		return
	}
	fmt.Println("✅ Вход выполнен успешно!")
}
