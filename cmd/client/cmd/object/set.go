package object

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/domain/object"
	"parsedash/internal/domain/query"
)

var (
	setFields []string
	setUnset  []string
	setDryRun bool
)

var SetCmd = &cobra.Command{
	Use:   "set [class] [id]",
	Short: "Изменить поля объекта",
	Long: `Частично обновляет объект. Перед отправкой печатает разницу
между текущими и новыми значениями полей.

  --field name=value  задать значение (тип берется из схемы)
  --unset name        удалить значение поля`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		className, id := args[0], args[1]

		if len(setFields) == 0 && len(setUnset) == 0 {
			return fmt.Errorf("нужно указать хотя бы один --field или --unset")
		}

		s, err := loadSchema(ctx, env, className)
		if err != nil {
			return err
		}

		changes, err := parseAssignments(s, setFields)
		if err != nil {
			return err
		}
		unset := make(map[string]bool, len(setUnset))
		for _, name := range setUnset {
			if !s.HasField(name) {
				return fmt.Errorf("поле %q: %w", name, query.ErrUnknownField)
			}
			changes[name] = object.DeleteOp()
			unset[name] = true
		}

		current, err := env.App.Client().GetObject(ctx, className, id, s)
		if err != nil {
			return fmt.Errorf("ошибка получения объекта: %w", err)
		}

		before := make(map[string]any, len(changes))
		after := make(map[string]any, len(changes))
		for name, v := range changes {
			before[name] = current.Fields[name]
			if unset[name] {
				after[name] = object.Undefined
			} else {
				after[name] = v
			}
		}

		if !env.Structured() {
			cli.PrintDiff(env.Out, cli.FieldLines(before), cli.FieldLines(after))
		}
		if setDryRun {
			return nil
		}

		if err := env.App.Client().UpdateObject(ctx, className, id, changes); err != nil {
			return fmt.Errorf("ошибка обновления объекта: %w", err)
		}

		if env.Structured() {
			return env.Print(map[string]any{"objectId": id, "changes": changes})
		}
		env.Success("Объект %s обновлен", id)
		return nil
	},
}

func init() {
	SetCmd.Flags().StringArrayVarP(&setFields, "field", "f", nil, "новое значение поля name=value")
	SetCmd.Flags().StringArrayVar(&setUnset, "unset", nil, "удалить значение поля")
	SetCmd.Flags().BoolVar(&setDryRun, "dry-run", false, "только показать разницу")
}
