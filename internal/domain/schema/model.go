package schema

import (
	"errors"
	"sort"
)

var ErrNotFound = errors.New("class not found")

// Поля, которые сервер добавляет в каждый класс
const (
	FieldObjectID  = "objectId"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
	FieldACL       = "ACL"
)

// Field описывает одно поле класса
type Field struct {
	Type         FieldType `json:"type" yaml:"type"`
	TargetClass  string    `json:"targetClass,omitempty" yaml:"targetClass,omitempty"`
	Required     bool      `json:"required,omitempty" yaml:"required,omitempty"`
	DefaultValue any       `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

// Schema - снимок схемы класса на момент запроса
type Schema struct {
	ClassName             string           `json:"className" yaml:"className"`
	Fields                map[string]Field `json:"fields" yaml:"fields"`
	ClassLevelPermissions map[string]any   `json:"classLevelPermissions,omitempty" yaml:"classLevelPermissions,omitempty"`
	Indexes               map[string]any   `json:"indexes,omitempty" yaml:"indexes,omitempty"`
}

// ListResponse - ответ GET /schemas
type ListResponse struct {
	Results []Schema `json:"results"`
}

// New создает схему с системными полями
func New(className string) *Schema {
	return &Schema{
		ClassName: className,
		Fields: map[string]Field{
			FieldObjectID:  {Type: TypeString},
			FieldCreatedAt: {Type: TypeDate},
			FieldUpdatedAt: {Type: TypeDate},
			FieldACL:       {Type: TypeACL},
		},
	}
}

// FieldType возвращает объявленный тип поля
func (s *Schema) FieldType(name string) (FieldType, bool) {
	if s == nil || name == "" {
		return "", false
	}
	f, ok := s.Fields[name]
	if !ok {
		return "", false
	}
	return f.Type, true
}

// HasField проверяет наличие поля в схеме
func (s *Schema) HasField(name string) bool {
	_, ok := s.FieldType(name)
	return ok
}

// FieldNames возвращает имена полей: сначала системные, затем пользовательские по алфавиту
func (s *Schema) FieldNames() []string {
	if s == nil {
		return nil
	}

	system := []string{FieldObjectID, FieldCreatedAt, FieldUpdatedAt, FieldACL}
	names := make([]string, 0, len(s.Fields))
	for _, name := range system {
		if _, ok := s.Fields[name]; ok {
			names = append(names, name)
		}
	}

	custom := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		if !isSystemField(name) {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)

	return append(names, custom...)
}

// CustomFieldCount - количество пользовательских полей
func (s *Schema) CustomFieldCount() int {
	n := 0
	for name := range s.Fields {
		if !isSystemField(name) {
			n++
		}
	}
	return n
}

func isSystemField(name string) bool {
	switch name {
	case FieldObjectID, FieldCreatedAt, FieldUpdatedAt, FieldACL:
		return true
	}
	return false
}
