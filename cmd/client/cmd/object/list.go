package object

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/domain/object"
	"parsedash/internal/domain/query"
)

var (
	listWhere   []string
	listLimit   int
	listSkip    int
	listOrder   string
	listDesc    bool
	listColumns int
)

var ListCmd = &cobra.Command{
	Use:   "list [class]",
	Short: "Найти объекты класса",
	Long: `Читает объекты класса с фильтрами, сортировкой и пагинацией.

Пример:
  parsedash object list Player -w "score>=10" -w "active=true" --order updatedAt --desc --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		className := args[0]

		s, err := loadSchema(ctx, env, className)
		if err != nil {
			return err
		}

		b := query.NewBuilder(s)
		if err := b.Limit(listLimit); err != nil {
			return err
		}
		if listSkip > 0 {
			if err := b.Skip(listSkip); err != nil {
				return err
			}
		}
		if listOrder != "" {
			dir := query.Ascending
			if listDesc {
				dir = query.Descending
			}
			if err := b.OrderBy(listOrder, dir); err != nil {
				return err
			}
		}
		if err := addConditions(b, listWhere); err != nil {
			return err
		}

		env.Log.Debug("Запрос объектов", "class", className, "query", b.Encode())

		objects, err := env.App.Client().ListObjects(ctx, className, s, b.Encode())
		if err != nil {
			return fmt.Errorf("ошибка получения объектов: %w", err)
		}

		if env.Structured() {
			return env.Print(objects)
		}

		if len(objects) == 0 {
			fmt.Fprintln(env.Out, "Объекты не найдены")
			return nil
		}

		cols := columns(s, listColumns)
		w := cli.NewTable(env.Out, cols...)
		for _, obj := range objects {
			cells := make([]string, 0, len(cols))
			for _, col := range cols {
				v, _ := obj.Value(col)
				cells = append(cells, cli.Truncate(object.Format(v), 32))
			}
			fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "\nПоказано объектов: %d\n", len(objects))
		return nil
	},
}

func init() {
	ListCmd.Flags().StringArrayVarP(&listWhere, "where", "w", nil, "условие фильтра, например score>=10")
	ListCmd.Flags().IntVar(&listLimit, "limit", 100, "ограничение количества объектов")
	ListCmd.Flags().IntVar(&listSkip, "skip", 0, "смещение для пагинации")
	ListCmd.Flags().StringVar(&listOrder, "order", "", "поле сортировки")
	ListCmd.Flags().BoolVar(&listDesc, "desc", false, "сортировка по убыванию")
	ListCmd.Flags().IntVar(&listColumns, "columns", 6, "сколько полей показывать в таблице")
}
