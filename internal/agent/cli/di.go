package cli

import (
	"github.com/IvanChernomyrdin/go-user-auth/internal/agent/api"
	"github.com/spf13/cobra"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = func(cmd *cobra.Command) (string, error) {
		return readPassword(cmd)
	}
)
