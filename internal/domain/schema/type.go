package schema

import "fmt"

// FieldType - объявленный тип поля класса
type FieldType string

const (
	TypeString   FieldType = "String"
	TypeNumber   FieldType = "Number"
	TypeBoolean  FieldType = "Boolean"
	TypeDate     FieldType = "Date"
	TypeArray    FieldType = "Array"
	TypeObject   FieldType = "Object"
	TypePointer  FieldType = "Pointer"
	TypeRelation FieldType = "Relation"
	TypeFile     FieldType = "File"
	TypeACL      FieldType = "ACL"
	TypeGeoPoint FieldType = "GeoPoint"
	TypePolygon  FieldType = "Polygon"
	TypeBytes    FieldType = "Bytes"
)

var knownTypes = map[FieldType]struct{}{
	TypeString:   {},
	TypeNumber:   {},
	TypeBoolean:  {},
	TypeDate:     {},
	TypeArray:    {},
	TypeObject:   {},
	TypePointer:  {},
	TypeRelation: {},
	TypeFile:     {},
	TypeACL:      {},
	TypeGeoPoint: {},
	TypePolygon:  {},
	TypeBytes:    {},
}

func (t FieldType) String() string {
	return string(t)
}

// IsValid проверяет, что тип известен серверу
func (t FieldType) IsValid() bool {
	_, ok := knownTypes[t]
	return ok
}

// ParseFieldType разбирает тип поля из строки
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown field type %q", s)
	}
	return t, nil
}
