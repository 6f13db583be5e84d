package object

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parsedash/internal/domain/schema"
)

var (
	ErrNotFound     = errors.New("object not found")
	ErrInvalidValue = errors.New("invalid field value")
)

// undefined - маркер поля, которое объявлено в схеме, но отсутствует в объекте
type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined заполняет поля схемы, которых нет в ответе сервера
var Undefined any = undefined{}

// Object - запись класса
type Object struct {
	ID        string
	ClassName string
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    map[string]any
}

// ListResponse - ответ GET /classes/{class}
type ListResponse struct {
	Results []map[string]any `json:"results"`
	Count   *int             `json:"count,omitempty"`
}

// FromPayload собирает объект из сырого ответа. Набор полей берется из схемы:
// поля схемы, отсутствующие в ответе, получают значение Undefined.
func FromPayload(className string, raw map[string]any, s *schema.Schema) (*Object, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidValue)
	}

	obj := &Object{
		ClassName: className,
		Fields:    make(map[string]any, len(raw)),
	}

	if id, ok := raw[schema.FieldObjectID].(string); ok {
		obj.ID = id
	}

	var err error
	if obj.CreatedAt, err = parseTimestamp(raw[schema.FieldCreatedAt]); err != nil {
		return nil, fmt.Errorf("createdAt: %w", err)
	}
	if obj.UpdatedAt, err = parseTimestamp(raw[schema.FieldUpdatedAt]); err != nil {
		return nil, fmt.Errorf("updatedAt: %w", err)
	}

	for name, v := range raw {
		switch name {
		case schema.FieldObjectID, schema.FieldCreatedAt, schema.FieldUpdatedAt:
			continue
		}
		obj.Fields[name] = v
	}

	if s != nil {
		for name := range s.Fields {
			switch name {
			case schema.FieldObjectID, schema.FieldCreatedAt, schema.FieldUpdatedAt:
				continue
			}
			if _, ok := obj.Fields[name]; !ok {
				obj.Fields[name] = Undefined
			}
		}
	}

	return obj, nil
}

// Value возвращает значение поля
func (o *Object) Value(field string) (any, bool) {
	switch field {
	case schema.FieldObjectID:
		return o.ID, true
	case schema.FieldCreatedAt:
		return formatTimestamp(o.CreatedAt), !o.CreatedAt.IsZero()
	case schema.FieldUpdatedAt:
		return formatTimestamp(o.UpdatedAt), !o.UpdatedAt.IsZero()
	}
	v, ok := o.Fields[field]
	return v, ok
}

// IsUndefined сообщает, что поле объявлено в схеме, но не задано
func (o *Object) IsUndefined(field string) bool {
	v, ok := o.Fields[field]
	return ok && v == Undefined
}

// Pointer возвращает значение поля-указателя
func (o *Object) Pointer(field string) (Pointer, bool) {
	return AsPointer(o.Fields[field])
}

// File возвращает значение файлового поля
func (o *Object) File(field string) (File, bool) {
	return AsFile(o.Fields[field])
}

// Map возвращает объект в форме ответа сервера, без неопределенных полей
func (o *Object) Map() map[string]any {
	out := make(map[string]any, len(o.Fields)+3)
	if o.ID != "" {
		out[schema.FieldObjectID] = o.ID
	}
	if !o.CreatedAt.IsZero() {
		out[schema.FieldCreatedAt] = formatTimestamp(o.CreatedAt)
	}
	if !o.UpdatedAt.IsZero() {
		out[schema.FieldUpdatedAt] = formatTimestamp(o.UpdatedAt)
	}
	for name, v := range o.Fields {
		if v == Undefined {
			continue
		}
		out[name] = v
	}
	return out
}

func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Map())
}

// timestampLayout - формат дат Parse (миллисекунды, UTC)
const timestampLayout = "2006-01-02T15:04:05.000Z"

func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return parsed, nil
	default:
		if d, ok := AsDate(v); ok {
			return d, nil
		}
		return time.Time{}, fmt.Errorf("%w: unexpected timestamp %v", ErrInvalidValue, v)
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
