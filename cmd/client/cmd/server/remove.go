package server

import (
	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var RemoveCmd = &cobra.Command{
	Use:     "remove [name]",
	Aliases: []string{"rm"},
	Short:   "Удалить профиль и его сниппеты",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if err := env.App.RemoveProfile(cmd.Context(), args[0]); err != nil {
			return err
		}

		env.Success("Профиль %s удален", args[0])
		return nil
	},
}
