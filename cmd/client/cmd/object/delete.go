package object

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var DeleteCmd = &cobra.Command{
	Use:     "delete [class] [id...]",
	Aliases: []string{"rm"},
	Short:   "Удалить объекты",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		api := env.App.Client()
		for _, id := range args[1:] {
			if err := api.DeleteObject(cmd.Context(), args[0], id); err != nil {
				return fmt.Errorf("ошибка удаления объекта %s: %w", id, err)
			}
			env.Success("Объект %s удален", id)
		}
		return nil
	},
}
