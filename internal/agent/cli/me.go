package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMeCmd создаёт CLI-команду для просмотра профиля текущего пользователя.
//
// Команда запрашивает GET /me с сохранённым токеном и выводит
// публичные поля пользователя. Токен при этом не ротируется.
//
// Пример использования:
//
//	userauth me
func NewMeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Профиль текущего пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds.Token == "" {
				return fmt.Errorf("no token in config, run: userauth login")
			}

			c := NewAPIClient(app.ServerURL)
			resp, err := c.Me(app.Creds.Token)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:         %s\n", resp.ID)
			fmt.Fprintf(out, "email:      %s\n", resp.Email)
			if resp.Name != "" {
				fmt.Fprintf(out, "name:       %s\n", resp.Name)
			}
			fmt.Fprintf(out, "active:     %v\n", resp.Active)
			if resp.LastLogin != nil {
				fmt.Fprintf(out, "last_login: %s\n", resp.LastLogin.Format("2006-01-02 15:04:05"))
			} else {
				fmt.Fprintln(out, "last_login: never")
			}
			return nil
		},
	}

	return cmd
}
