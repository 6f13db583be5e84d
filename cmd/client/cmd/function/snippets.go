package function

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var snippetsDelete string

var SnippetsCmd = &cobra.Command{
	Use:   "snippets",
	Short: "Сохраненные вызовы функций",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if snippetsDelete != "" {
			if err := env.App.DeleteSnippet(ctx, snippetsDelete); err != nil {
				return err
			}
			env.Success("Сниппет %s удален", snippetsDelete)
			return nil
		}

		snippets, err := env.App.ListSnippets(ctx)
		if err != nil {
			return err
		}

		if env.Structured() {
			return env.Print(snippets)
		}

		if len(snippets) == 0 {
			fmt.Fprintln(env.Out, "Сниппеты не найдены")
			return nil
		}

		w := cli.NewTable(env.Out, "Имя", "Функция", "Параметры", "Обновлен")
		for _, sn := range snippets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				sn.Name,
				sn.Function,
				cli.Truncate(string(sn.Params), 40),
				sn.UpdatedAt.Format("2006-01-02 15:04"),
			)
		}
		return w.Flush()
	},
}

func init() {
	SnippetsCmd.Flags().StringVar(&snippetsDelete, "delete", "", "удалить сниппет")
}
