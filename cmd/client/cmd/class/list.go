package class

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список классов",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		schemas, err := env.App.Client().ListSchemas(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения схем: %w", err)
		}

		if env.Structured() {
			return env.Print(schemas)
		}

		if len(schemas) == 0 {
			fmt.Fprintln(env.Out, "Классы не найдены")
			return nil
		}

		w := cli.NewTable(env.Out, "Класс", "Полей")
		for _, s := range schemas {
			fmt.Fprintf(w, "%s\t%d\t\n", s.ClassName, s.CustomFieldCount())
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "\nВсего классов: %d\n", len(schemas))
		return nil
	},
}
