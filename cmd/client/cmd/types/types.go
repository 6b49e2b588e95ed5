// Package types общие помощники команд клиента
package types

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"windkey/internal/app/client"
)

type contextKey string

// ClientAppKey ключ *client.App в контексте команды
const ClientAppKey contextKey = "app"

// App достаёт приложение из контекста команды
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// JSON сообщает, включён ли флаг --json
func JSON(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("json")
	return err == nil && v
}

func PrintJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var stdin = bufio.NewReader(os.Stdin)

// Prompt читает строку из stdin
func Prompt(label string) string {
	fmt.Print(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// PromptSecret читает строку без эха
func PromptSecret(label string) (string, error) {
	fmt.Print(label)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(secret), nil
}
