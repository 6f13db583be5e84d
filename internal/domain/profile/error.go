package profile

import "errors"

var (
	ErrNotFound     = errors.New("profile not found")
	ErrDuplicate    = errors.New("profile with this name already exists")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoActive     = errors.New("no active profile")
)

type DomainError struct {
	Err     error
	Message string
	Field   string
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

func invalid(field, message string) *DomainError {
	return &DomainError{Err: ErrInvalidInput, Field: field, Message: message}
}
