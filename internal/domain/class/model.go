package class

import (
	"regexp"
	"time"

	"parsedash/internal/domain/object"
)

// Query - разобранные параметры GET /classes/{class}
type Query struct {
	Where map[string]any
	// поля сортировки, "-" в начале означает обратный порядок
	Order []string
	Limit int
	Skip  int
	Count bool
	Keys  []string
}

// DefaultLimit - размер страницы, если limit не указан
const DefaultLimit = 100

// FindResult - страница объектов и, по запросу, общее число совпадений
type FindResult struct {
	Results []*object.Object
	Count   *int
}

// File - загруженный файл
type File struct {
	Name        string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

var (
	classNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$|^_(User|Role|Installation|Session)$`)
	fieldNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// ValidClassName проверяет имя класса по правилам Parse
func ValidClassName(name string) bool {
	return classNamePattern.MatchString(name)
}

// ValidFieldName проверяет имя поля по правилам Parse
func ValidFieldName(name string) bool {
	return fieldNamePattern.MatchString(name)
}
