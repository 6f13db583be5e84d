package query

import "errors"

var (
	ErrEmptyField      = errors.New("constraint field is empty")
	ErrEmptyValue      = errors.New("constraint value is empty")
	ErrUnknownField    = errors.New("field is not declared in the class schema")
	ErrInvalidValue    = errors.New("value does not match the field type")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrBadCondition    = errors.New("malformed condition")
	ErrNegative        = errors.New("value must not be negative")
)
