package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-auth/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя в систему.
//
// Команда выполняет аутентификацию пользователя на сервере,
// получает токен и сохраняет его в локальный конфигурационный файл.
// Если флаг --password не указан, пароль запрашивается интерактивно.
//
// Пример использования:
//
//	userauth login --email test@example.com --password abcDef12
func NewLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Вход пользователя (получить токен)",
		Long: `Вход пользователя по email и паролю.

Пример:
  userauth login --email test@example.com --password abcDef12
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := ReadPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}

			// создаём API-клиент для общения с сервером
			c := NewAPIClient(app.ServerURL)
			// выполняем логин пользователя
			resp, err := c.Login(email, password)
			if err != nil {
				return err
			}

			// сохраняем полученный токен в состоянии приложения
			app.Creds.Token = resp.Token

			// сохраняем токен в локальный конфигурационный файл
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (token saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	cmd.Flags().StringVar(&password, "password", "", "password for login (prompted if empty)")
	cmd.MarkFlagRequired("email")

	return cmd
}
