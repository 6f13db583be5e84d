package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"parsedash/internal/domain/object"
	"parsedash/internal/domain/schema"
)

// systemFields есть у любого класса, даже если схема не загружена
var systemFields = map[string]schema.Field{
	schema.FieldObjectID:  {Type: schema.TypeString},
	schema.FieldCreatedAt: {Type: schema.TypeDate},
	schema.FieldUpdatedAt: {Type: schema.TypeDate},
}

// Builder собирает строку запроса: limit, skip, order и where.
// Ограничения проверяются при добавлении, а не при сериализации.
type Builder struct {
	schema *schema.Schema

	limit    int
	hasLimit bool
	skip     int
	hasSkip  bool

	order     string
	direction Direction

	constraints []Constraint
}

func NewBuilder(s *schema.Schema) *Builder {
	return &Builder{schema: s}
}

// Limit задает максимальное количество объектов в ответе
func (b *Builder) Limit(n int) error {
	if n < 0 {
		return fmt.Errorf("limit: %w", ErrNegative)
	}
	b.limit, b.hasLimit = n, true
	return nil
}

// Skip задает смещение
func (b *Builder) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("skip: %w", ErrNegative)
	}
	b.skip, b.hasSkip = n, true
	return nil
}

// OrderBy задает поле сортировки. Пустое поле сбрасывает сортировку.
func (b *Builder) OrderBy(field string, dir Direction) error {
	if field == "" {
		b.order = ""
		return nil
	}
	if _, ok := b.field(field); !ok {
		return fmt.Errorf("order %q: %w", field, ErrUnknownField)
	}
	b.order, b.direction = field, dir
	return nil
}

// Where добавляет ограничение. Тип поля берется из схемы; значение
// нормализуется под тип. Невалидное ограничение не добавляется.
func (b *Builder) Where(field string, op Operator, value string) error {
	c, err := b.resolve(field, op, value)
	if err != nil {
		return err
	}
	b.constraints = append(b.constraints, c)
	return nil
}

// Remove удаляет ограничение по индексу
func (b *Builder) Remove(i int) error {
	if i < 0 || i >= len(b.constraints) {
		return fmt.Errorf("constraint index %d out of range", i)
	}
	b.constraints = append(b.constraints[:i], b.constraints[i+1:]...)
	return nil
}

// Constraints возвращает копию списка ограничений в порядке добавления
func (b *Builder) Constraints() []Constraint {
	out := make([]Constraint, len(b.constraints))
	copy(out, b.constraints)
	return out
}

// Encode сериализует запрос. Порядок частей фиксирован:
// limit, skip, order, where. Пустой запрос дает пустую строку.
func (b *Builder) Encode() string {
	parts := make([]string, 0, 4)

	if b.hasLimit {
		parts = append(parts, "limit="+strconv.Itoa(b.limit))
	}
	if b.hasSkip {
		parts = append(parts, "skip="+strconv.Itoa(b.skip))
	}
	if b.order != "" {
		if b.direction == Descending {
			parts = append(parts, "order=-"+b.order)
		} else {
			parts = append(parts, "order="+b.order)
		}
	}
	if where := b.WhereJSON(); where != "" {
		parts = append(parts, "where="+where)
	}

	return strings.Join(parts, "&")
}

// WhereJSON возвращает только тело where-выражения или пустую строку
func (b *Builder) WhereJSON() string {
	fragments := make([]string, 0, len(b.constraints))
	for _, c := range b.constraints {
		if r := Render(c); r != "" {
			fragments = append(fragments, r)
		}
	}
	if len(fragments) == 0 {
		return ""
	}
	return "{" + strings.Join(fragments, ",") + "}"
}

func (b *Builder) field(name string) (schema.Field, bool) {
	if b.schema != nil {
		if f, ok := b.schema.Fields[name]; ok {
			return f, true
		}
	}
	f, ok := systemFields[name]
	return f, ok
}

func (b *Builder) resolve(field string, op Operator, value string) (Constraint, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return Constraint{}, ErrEmptyField
	}
	if !op.IsValid() {
		return Constraint{}, fmt.Errorf("%w: %d", ErrUnknownOperator, int(op))
	}
	if value == "" {
		return Constraint{}, fmt.Errorf("%s: %w", field, ErrEmptyValue)
	}

	f, ok := b.field(field)
	if !ok || f.Type == "" {
		return Constraint{}, fmt.Errorf("%s: %w", field, ErrUnknownField)
	}

	normalized, err := normalize(f, value)
	if err != nil {
		return Constraint{}, fmt.Errorf("%s (%s): %w", field, f.Type, err)
	}

	return Constraint{Field: field, Op: op, Value: normalized, Type: f.Type}, nil
}

// normalize приводит значение к литералу, который Render выведет как есть
func normalize(f schema.Field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)

	switch f.Type {
	case schema.TypeString:
		return value, nil

	case schema.TypeBoolean:
		lower := strings.ToLower(trimmed)
		if lower != "true" && lower != "false" {
			return "", fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}
		return lower, nil

	case schema.TypeNumber:
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidValue, value)
		}
		return trimmed, nil

	case schema.TypeDate, schema.TypePointer:
		v, err := object.ParseValue(f, trimmed)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return compactJSON(v)

	default:
		if !json.Valid([]byte(trimmed)) {
			return "", fmt.Errorf("%w: %q is not a JSON literal", ErrInvalidValue, value)
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(trimmed)); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return buf.String(), nil
	}
}

func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
