package object

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var (
	createFields []string
	createData   string
)

var CreateCmd = &cobra.Command{
	Use:   "create [class]",
	Short: "Создать объект",
	Long: `Создает объект из пар --field name=value (значения разбираются по схеме)
и/или JSON-объекта --data.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		fields := map[string]any{}
		if createData != "" {
			if err := json.Unmarshal([]byte(createData), &fields); err != nil {
				return fmt.Errorf("--data должен быть JSON-объектом: %w", err)
			}
		}

		if len(createFields) > 0 {
			s, err := loadSchema(ctx, env, args[0])
			if err != nil {
				return err
			}
			parsed, err := parseAssignments(s, createFields)
			if err != nil {
				return err
			}
			for name, v := range parsed {
				fields[name] = v
			}
		}

		obj, err := env.App.Client().CreateObject(ctx, args[0], fields)
		if err != nil {
			return fmt.Errorf("ошибка создания объекта: %w", err)
		}

		if env.Structured() {
			return env.Print(obj)
		}
		env.Success("Объект создан: %s", obj.ID)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringArrayVarP(&createFields, "field", "f", nil, "значение поля name=value")
	CreateCmd.Flags().StringVar(&createData, "data", "", "поля объекта в виде JSON")
}
