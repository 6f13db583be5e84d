package object

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"parsedash/internal/domain/schema"
)

// Pointer - ссылка на объект другого класса
type Pointer struct {
	ClassName string
	ObjectID  string
}

func (p Pointer) JSON() map[string]any {
	return map[string]any{
		"__type":    "Pointer",
		"className": p.ClassName,
		"objectId":  p.ObjectID,
	}
}

func (p Pointer) String() string {
	return p.ClassName + ":" + p.ObjectID
}

// File - загруженный файл
type File struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (f File) JSON() map[string]any {
	return map[string]any{
		"__type": "File",
		"name":   f.Name,
		"url":    f.URL,
	}
}

// DeleteOp снимает значение поля при частичном обновлении
func DeleteOp() map[string]any {
	return map[string]any{"__op": "Delete"}
}

// DateValue оборачивает время в формат Parse
func DateValue(t time.Time) map[string]any {
	return map[string]any{
		"__type": "Date",
		"iso":    formatTimestamp(t),
	}
}

func AsPointer(v any) (Pointer, bool) {
	m, ok := typed(v, "Pointer")
	if !ok {
		return Pointer{}, false
	}
	className, _ := m["className"].(string)
	objectID, _ := m["objectId"].(string)
	return Pointer{ClassName: className, ObjectID: objectID}, objectID != ""
}

func AsFile(v any) (File, bool) {
	m, ok := typed(v, "File")
	if !ok {
		return File{}, false
	}
	name, _ := m["name"].(string)
	url, _ := m["url"].(string)
	return File{Name: name, URL: url}, name != ""
}

func AsDate(v any) (time.Time, bool) {
	m, ok := typed(v, "Date")
	if !ok {
		return time.Time{}, false
	}
	iso, _ := m["iso"].(string)
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func typed(v any, kind string) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	t, _ := m["__type"].(string)
	return m, t == kind
}

// ParseValue переводит введенную строку в значение поля согласно его типу
func ParseValue(f schema.Field, raw string) (any, error) {
	switch f.Type {
	case schema.TypeString:
		return raw, nil

	case schema.TypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, raw)
		}
		return n, nil

	case schema.TypeBoolean:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, raw)
		}
		return b, nil

	case schema.TypeDate:
		trimmed := strings.TrimSpace(raw)
		if strings.HasPrefix(trimmed, "{") {
			return parseJSON(trimmed)
		}
		t, err := time.Parse(time.RFC3339Nano, trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an RFC 3339 date", ErrInvalidValue, raw)
		}
		return DateValue(t), nil

	case schema.TypePointer:
		trimmed := strings.TrimSpace(raw)
		if strings.HasPrefix(trimmed, "{") {
			return parseJSON(trimmed)
		}
		if trimmed == "" || f.TargetClass == "" {
			return nil, fmt.Errorf("%w: pointer needs an objectId and a target class", ErrInvalidValue)
		}
		return Pointer{ClassName: f.TargetClass, ObjectID: trimmed}.JSON(), nil

	default:
		return parseJSON(raw)
	}
}

func parseJSON(raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return v, nil
}

// Format возвращает значение поля в виде для вывода в терминал
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case undefined:
		return t.String()
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}

	if p, ok := AsPointer(v); ok {
		return p.String()
	}
	if f, ok := AsFile(v); ok {
		return f.Name
	}
	if d, ok := AsDate(v); ok {
		return formatTimestamp(d)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
