package object

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/domain/object"
)

var GetCmd = &cobra.Command{
	Use:   "get [class] [id]",
	Short: "Просмотреть объект",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		s, err := loadSchema(ctx, env, args[0])
		if err != nil {
			return err
		}

		obj, err := env.App.Client().GetObject(ctx, args[0], args[1], s)
		if err != nil {
			return fmt.Errorf("ошибка получения объекта: %w", err)
		}

		if env.Structured() {
			return env.Print(obj)
		}

		w := cli.NewTable(env.Out, "Поле", "Тип", "Значение")
		for _, name := range s.FieldNames() {
			v, ok := obj.Value(name)
			if !ok {
				v = object.Undefined
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", name, s.Fields[name].Type, object.Format(v))
		}
		return w.Flush()
	},
}
