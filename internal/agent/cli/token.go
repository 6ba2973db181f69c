package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-auth/internal/agent/config"
)

// NewTokenLoginCmd создаёт CLI-команду для повторного входа по токену.
//
// Команда использует сохранённый токен для повторной аутентификации
// на сервере (GET /user/login). Сервер выпускает новый токен,
// который сохраняется в локальный конфигурационный файл.
//
// Команда не принимает аргументов. Перед выполнением требуется,
// чтобы токен уже был сохранён (после register или login).
//
// Пример использования:
//
//	userauth token-login
//
// Если токен отсутствует в конфигурации, команда завершится
// с ошибкой и предложит выполнить вход (login).
func NewTokenLoginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token-login",
		Short: "Повторный вход по сохранённому токену",
		Long: `Повторная аутентификация по сохранённому токену.
Сервер выпускает новый токен (старый остаётся валидным до своего истечения).

Пример:
  userauth token-login
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds.Token == "" {
				return fmt.Errorf("no token in config, run: userauth login")
			}

			c := NewAPIClient(app.ServerURL)
			// сервер проверяет токен и выдаёт новый
			resp, err := c.LoginWithToken(app.Creds.Token)
			if err != nil {
				return err
			}
			// сохраняет в структуру
			app.Creds.Token = resp.Token
			// сохраняет локально
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "token login ok (token rotated)")
			return nil
		},
	}

	return cmd
}
