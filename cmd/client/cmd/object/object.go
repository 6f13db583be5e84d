package object

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/domain/object"
	"parsedash/internal/domain/query"
	"parsedash/internal/domain/schema"
)

// ObjectCmd - родительская команда для объектов классов
var ObjectCmd = &cobra.Command{
	Use:     "object",
	Aliases: []string{"obj"},
	Short:   "Объекты классов",
	Long: `Поиск, просмотр, создание, изменение и удаление объектов.

Условия фильтра задаются выражениями вида "score>=10", "name=Ann",
"active!=true". Тип значения берется из схемы класса.`,
}

func loadSchema(ctx context.Context, env *cli.Env, className string) (*schema.Schema, error) {
	s, err := env.App.Client().GetSchema(ctx, className)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения схемы %s: %w", className, err)
	}
	return s, nil
}

// addConditions разбирает выражения фильтра и добавляет их в построитель
func addConditions(b *query.Builder, exprs []string) error {
	for _, expr := range exprs {
		field, op, value, err := query.ParseCondition(expr)
		if err != nil {
			return err
		}
		if err := b.Where(field, op, value); err != nil {
			return fmt.Errorf("условие %q: %w", expr, err)
		}
	}
	return nil
}

// parseAssignments разбирает пары name=value в значения полей по схеме
func parseAssignments(s *schema.Schema, pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("ожидается name=value, получено %q", pair)
		}

		f, ok := s.Fields[name]
		if !ok {
			return nil, fmt.Errorf("поле %q: %w", name, query.ErrUnknownField)
		}

		v, err := object.ParseValue(f, raw)
		if err != nil {
			return nil, fmt.Errorf("поле %q: %w", name, err)
		}
		fields[name] = v
	}
	return fields, nil
}

// columns - поля для табличного вывода: системные и первые пользовательские
func columns(s *schema.Schema, max int) []string {
	var cols []string
	for _, name := range s.FieldNames() {
		if name == schema.FieldACL || name == schema.FieldCreatedAt {
			continue
		}
		cols = append(cols, name)
		if len(cols) == max {
			break
		}
	}
	return cols
}
