package class

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var ShowCmd = &cobra.Command{
	Use:   "show [class]",
	Short: "Схема класса",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		s, err := env.App.Client().GetSchema(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения схемы: %w", err)
		}

		if env.Structured() {
			return env.Print(s)
		}

		fmt.Fprintf(env.Out, "Класс: %s\n\n", s.ClassName)
		w := cli.NewTable(env.Out, "Поле", "Тип", "Цель", "Обязательное")
		for _, name := range s.FieldNames() {
			f := s.Fields[name]
			required := ""
			if f.Required {
				required = "да"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", name, f.Type, f.TargetClass, required)
		}
		return w.Flush()
	},
}
