package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
)

var (
	statsBreaches bool
	historyLimit  int
	historyOffset int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Статистика хранилища",
	Long: `Сводка по сохранённым паролям: стойкость, повторы, длина.
С флагом --breaches пароли дополнительно проверяются по базе утечек.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		s, err := app.Stats(cmd.Context(), statsBreaches)
		if err != nil {
			return fmt.Errorf("ошибка получения статистики: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(s)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Всего паролей:\t%d\n", s.Total)
		fmt.Fprintf(w, "Очень слабых:\t%d\n", s.Strength.VeryWeak)
		fmt.Fprintf(w, "Слабых:\t%d\n", s.Strength.Weak)
		fmt.Fprintf(w, "Средних:\t%d\n", s.Strength.Medium)
		fmt.Fprintf(w, "Сильных:\t%d\n", s.Strength.Strong)
		fmt.Fprintf(w, "Очень сильных:\t%d\n", s.Strength.VeryStrong)
		fmt.Fprintf(w, "Повторяющихся:\t%d\n", s.Duplicates)
		fmt.Fprintf(w, "Средняя длина:\t%d\n", s.AverageLength)
		fmt.Fprintf(w, "Короче 8:\t%d\n", s.ShortPasswords)
		fmt.Fprintf(w, "Длиннее 16:\t%d\n", s.LongPasswords)
		if s.Breached != nil {
			fmt.Fprintf(w, "В утечках:\t%d\n", *s.Breached)
		}
		return w.Flush()
	},
}

var breachCmd = &cobra.Command{
	Use:   "breach",
	Short: "Проверить пароль по базе утечек",
	Long: `Пароль не покидает сервер Windkey целиком: во внешний сервис
уходят только первые 5 символов SHA-1 хэша.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		pw, err := types.PromptSecret("Пароль: ")
		if err != nil {
			return err
		}

		res, err := app.CheckBreach(cmd.Context(), pw)
		if err != nil {
			return fmt.Errorf("ошибка проверки: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(res)
		}

		if res.Breached {
			color.New(color.FgRed).Printf("✗ Пароль найден в утечках %d раз\n", res.Count)
			return nil
		}
		color.New(color.FgGreen).Println("✓ Пароль не найден в известных утечках")
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Журнал действий",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		page, err := app.History(cmd.Context(), historyLimit, historyOffset)
		if err != nil {
			return fmt.Errorf("ошибка получения журнала: %w", err)
		}

		if types.JSON(cmd) {
			return types.PrintJSON(page)
		}

		if len(page.Entries) == 0 {
			fmt.Println("Журнал пуст")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ВРЕМЯ\tДЕЙСТВИЕ\tДЕТАЛИ\tIP")
		for _, e := range page.Entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Action, e.Details, e.IPAddress)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nПоказано %d из %d\n", len(page.Entries), page.Total)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsBreaches, "breaches", false, "проверить пароли по базе утечек")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "количество записей (1..200)")
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "смещение")
}
