package password

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"windkey/cmd/client/cmd/types"
	"windkey/internal/domain/passgen"
)

var (
	genLength    int
	genNoUpper   bool
	genNoLower   bool
	genNoDigits  bool
	genNoSymbols bool
	genRemote    bool
)

var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Сгенерировать пароль",
	Long: `Генерирует пароль локально, с --remote на сервере тем же алгоритмом.
Каждый включённый класс символов встречается хотя бы раз.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		policy := passgen.Policy{
			Length:           genLength,
			IncludeUppercase: !genNoUpper,
			IncludeLowercase: !genNoLower,
			IncludeDigits:    !genNoDigits,
			IncludeSymbols:   !genNoSymbols,
		}

		var (
			pw       string
			strength passgen.StrengthResult
		)
		if genRemote {
			res, err := app.GenerateRemote(cmd.Context(), policy)
			if err != nil {
				return fmt.Errorf("ошибка генерации на сервере: %w", err)
			}
			pw, strength = res.Password, res.Strength
		} else {
			pw, strength, err = app.Generate(policy)
			if err != nil {
				return err
			}
		}

		if types.JSON(cmd) {
			return types.PrintJSON(struct {
				Password string                 `json:"password"`
				Length   int                    `json:"length"`
				Strength passgen.StrengthResult `json:"strength"`
			}{pw, len(pw), strength})
		}

		fmt.Println(pw)
		printStrength(strength)
		return nil
	},
}

// printStrength печатает оценку цветом её уровня
func printStrength(s passgen.StrengthResult) {
	var c *color.Color
	switch s.Color {
	case passgen.ColorSuccess:
		c = color.New(color.FgGreen)
	case passgen.ColorInfo:
		c = color.New(color.FgCyan)
	case passgen.ColorWarning:
		c = color.New(color.FgYellow)
	default:
		c = color.New(color.FgRed)
	}
	c.Printf("Стойкость: %s (%d/100)\n", s.Text, s.Score)
}

func init() {
	GenerateCmd.Flags().IntVarP(&genLength, "length", "l", passgen.DefaultLength, "длина (4..128)")
	GenerateCmd.Flags().BoolVar(&genNoUpper, "no-upper", false, "без заглавных букв")
	GenerateCmd.Flags().BoolVar(&genNoLower, "no-lower", false, "без строчных букв")
	GenerateCmd.Flags().BoolVar(&genNoDigits, "no-digits", false, "без цифр")
	GenerateCmd.Flags().BoolVar(&genNoSymbols, "no-symbols", false, "без спецсимволов")
	GenerateCmd.Flags().BoolVar(&genRemote, "remote", false, "сгенерировать на сервере")
}
