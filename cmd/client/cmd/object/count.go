package object

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/domain/query"
)

var countWhere []string

var CountCmd = &cobra.Command{
	Use:   "count [class]",
	Short: "Посчитать объекты класса",
	Args:  cobra.ExactArgs(1),
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

		b := query.NewBuilder(s)
		if err := addConditions(b, countWhere); err != nil {
			return err
		}

		n, err := env.App.Client().CountObjects(ctx, args[0], b.WhereJSON())
		if err != nil {
			return fmt.Errorf("ошибка подсчета объектов: %w", err)
		}

		if env.Structured() {
			return env.Print(map[string]any{"className": args[0], "count": n})
		}
		fmt.Fprintln(env.Out, n)
		return nil
	},
}

func init() {
	CountCmd.Flags().StringArrayVarP(&countWhere, "where", "w", nil, "условие фильтра, например score>=10")
}
