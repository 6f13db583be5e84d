package server

import (
	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var UseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Сделать профиль активным",
	Long:  `Активный профиль используется всеми командами, если не указан флаг --server.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if err := env.App.UseProfile(cmd.Context(), args[0]); err != nil {
			return err
		}

		env.Success("Профиль %s активен", args[0])
		return nil
	},
}
