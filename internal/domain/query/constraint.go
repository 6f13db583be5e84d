package query

import (
	"bytes"
	"encoding/json"
	"strings"

	"parsedash/internal/domain/schema"
)

// Constraint - одно условие фильтра
type Constraint struct {
	Field string
	Op    Operator
	Value string
	Type  schema.FieldType
}

// Render возвращает фрагмент where-выражения для ограничения.
// Ограничение без поля, значения или типа дает пустую строку.
func Render(c Constraint) string {
	if c.Field == "" || c.Value == "" || c.Type == "" {
		return ""
	}

	key := quote(c.Field)
	value := literal(c.Type, c.Value)
	if c.Op == Equal {
		return key + ":" + value
	}
	return key + ":{" + quote(c.Op.Token()) + ":" + value + "}"
}

func literal(t schema.FieldType, value string) string {
	switch t {
	case schema.TypeString:
		return quote(value)
	case schema.TypeBoolean:
		return strings.ToLower(strings.TrimSpace(value))
	default:
		return value
	}
}

// quote кодирует строку как JSON-строку без HTML-экранирования
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func (c Constraint) String() string {
	return c.Field + " " + c.Op.String() + " " + c.Value
}
