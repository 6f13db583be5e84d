package function

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var runSnippet string

var RunCmd = &cobra.Command{
	Use:   "run [name] [params]",
	Short: "Вызвать облачную функцию",
	Long: `Вызывает функцию POST /functions/<name>. Параметры передаются JSON-объектом.

С флагом --snippet имя функции и параметры берутся из сохраненного сниппета;
параметры из командной строки в этом случае заменяют сохраненные.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var (
			name   string
			params json.RawMessage
		)

		switch {
		case runSnippet != "":
			sn, err := env.App.GetSnippet(ctx, runSnippet)
			if err != nil {
				return fmt.Errorf("сниппет %s: %w", runSnippet, err)
			}
			name, params = sn.Function, sn.Params
			if len(args) > 0 {
				params = json.RawMessage(args[len(args)-1])
			}
		case len(args) == 0:
			return fmt.Errorf("укажите имя функции или --snippet")
		default:
			name = args[0]
			if len(args) == 2 {
				params = json.RawMessage(args[1])
			}
		}

		if len(params) > 0 && !json.Valid(params) {
			return fmt.Errorf("параметры должны быть JSON")
		}

		result, err := env.App.Client().RunFunction(ctx, name, params)
		if err != nil {
			return fmt.Errorf("ошибка вызова функции %s: %w", name, err)
		}

		if env.Structured() {
			return env.Print(map[string]any{"result": result})
		}
		return cli.PrintJSON(env.Out, result)
	},
}

func init() {
	RunCmd.Flags().StringVar(&runSnippet, "snippet", "", "вызвать сохраненный сниппет")
}
