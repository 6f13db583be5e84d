package class

import (
	"errors"
	"fmt"

	"parsedash/internal/domain/object"
)

var (
	ErrClassNotFound    = errors.New("class does not exist")
	ErrClassExists      = errors.New("class already exists")
	ErrInvalidClassName = errors.New("invalid class name")
	ErrClassNotEmpty    = errors.New("class is not empty")
	ErrObjectNotFound   = object.ErrNotFound
	ErrInvalidQuery     = errors.New("invalid query")
	ErrInvalidKey       = errors.New("invalid field name")
	ErrIncorrectType    = errors.New("incorrect field type")
	ErrInvalidFileName  = errors.New("invalid file name")
	ErrFileNotFound     = errors.New("file not found")
)

// DomainError несет сообщение для клиента поверх одной из ошибок пакета
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func newError(err error, format string, args ...any) *DomainError {
	return &DomainError{Err: err, Message: fmt.Sprintf(format, args...)}
}
