package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"windkey/cmd/client/cmd/auth"
	"windkey/cmd/client/cmd/category"
	"windkey/cmd/client/cmd/password"
	"windkey/cmd/client/cmd/types"
	"windkey/internal/app/client"
	"windkey/internal/app/client/config"
	"windkey/internal/utils/logger"
)

var (
	cfgFile    string
	debug      bool
	jsonOutput bool
	serverAddr string

	app *client.App
)

var rootCmd = &cobra.Command{
	Use:   "windkey",
	Short: "Windkey - консольный клиент менеджера паролей",
	Long: `Windkey хранит пароли на сервере в зашифрованном виде.

Вход защищён мастер-паролем и одноразовым TOTP кодом.
Последний загруженный список паролей доступен без сети.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

// run выполняет команду и закрывает хранилище в том числе после ошибки команды
func run() error {
	return errors.Join(rootCmd.Execute(), closeApp())
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverAddr != "" {
		cfg.ServerAddress = serverAddr
	}

	log := logger.New(cfg.Env)
	if !debug {
		log = slog.New(discardHandler{})
	}

	app, err = client.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}
	app.Resume(cmd.Context())

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func closeApp() error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

// discardHandler глушит логи без --debug
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }

func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h discardHandler) WithGroup(string) slog.Handler { return h }

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "server", "", "адрес сервера Windkey (host:port)")

	rootCmd.AddCommand(auth.AuthCmd, password.PasswordCmd, category.CategoryCmd)
	rootCmd.AddCommand(statsCmd, breachCmd, historyCmd)
}
