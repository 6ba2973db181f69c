package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-user-auth/internal/agent/config"
	models "github.com/IvanChernomyrdin/go-user-auth/internal/shared/models"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Команда выполняет регистрацию пользователя на сервере с использованием
// email и пароля. Имя опционально. Если флаг --password не указан,
// пароль запрашивается интерактивно (без эха).
//
// Пример использования:
//
//	userauth register --email test@example.com --password abcDef12 --name "Test User"
//
// В случае успешной регистрации выданный токен сохраняется в локальный
// конфигурационный файл.
func NewRegisterCmd(app *App) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  userauth register --email test@example.com --password abcDef12
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				p, err := ReadPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}

			c := NewAPIClient(app.ServerURL)
			// выполняет добавление нового пользователя в бд
			resp, err := c.SignUp(models.SignUpRequest{
				Email:    email,
				Password: password,
				Name:     name,
			})
			if err != nil {
				return err
			}

			// сервер сразу выдаёт токен — сохраняем
			app.Creds.Token = resp.Token
			if err := config.Save(app.CredsPath, app.Creds); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registration successful (id=%s, token saved)\n", resp.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for registration")
	cmd.Flags().StringVar(&password, "password", "", "password for registration (prompted if empty)")
	cmd.Flags().StringVar(&name, "name", "", "display name (optional)")
	cmd.MarkFlagRequired("email")

	return cmd
}
