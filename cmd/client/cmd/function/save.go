package function

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var saveParams string

var SaveCmd = &cobra.Command{
	Use:   "save [snippet] [function]",
	Short: "Сохранить вызов функции",
	Long:  `Запоминает имя функции и параметры под именем сниппета для активного профиля.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		var params json.RawMessage
		if saveParams != "" {
			params = json.RawMessage(saveParams)
		}

		if err := env.App.SaveSnippet(cmd.Context(), args[0], args[1], params); err != nil {
			return err
		}

		env.Success("Сниппет %s сохранен", args[0])
		return nil
	},
}

func init() {
	SaveCmd.Flags().StringVar(&saveParams, "params", "", "параметры вызова в виде JSON")
}
